package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrOutOfStock   = errors.New("out of stock")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string
	Type        string
	Breed       string
	Age         int
	Price       float64
	Stock       int
	Description string
	Image       string
}

func (s *Service) Create(ctx context.Context, sellerID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(sellerID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Type) == "" || strings.TrimSpace(in.Breed) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.Age < 0 || in.Price < 0 {
		return Pet{}, ErrInvalidInput
	}

	// stock default 1, como el catálogo original
	stock := in.Stock
	if stock <= 0 {
		stock = 1
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Type:        strings.TrimSpace(in.Type),
		Breed:       strings.TrimSpace(in.Breed),
		Age:         in.Age,
		Price:       in.Price,
		Stock:       stock,
		Description: strings.TrimSpace(in.Description),
		Image:       strings.TrimSpace(in.Image),
		SellerID:    sellerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// List devuelve el catálogo completo, con o sin stock (vitrina pública).
func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListBySeller(ctx context.Context, sellerID string) ([]Pet, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

type UpdateInput struct {
	Name        *string
	Type        *string
	Breed       *string
	Age         *int
	Price       *float64
	Stock       *int
	Description *string
	Image       *string
}

// Update: sellerID vacío => admin, sin scoping de dueño.
func (s *Service) Update(ctx context.Context, id, sellerID string, in UpdateInput) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if sellerID != "" && p.SellerID != sellerID {
		return Pet{}, ErrNotFound
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		p.Type = strings.TrimSpace(*in.Type)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Age = *in.Age
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Stock = *in.Stock
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Image != nil {
		p.Image = strings.TrimSpace(*in.Image)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id, sellerID string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id, sellerID)
}

// ReduceStock descuenta unidades vendidas. Es un write separado del
// insert de la orden: no hay transacción que los envuelva.
func (s *Service) ReduceStock(ctx context.Context, id string, n int) (Pet, error) {
	if n <= 0 {
		return Pet{}, ErrInvalidInput
	}

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if p.Stock < n {
		return Pet{}, ErrOutOfStock
	}

	p.Stock -= n
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}
