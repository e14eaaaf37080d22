package accessories

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
	Description string
	Cost        float64
	Image       string
	AnimalType  string
	UseCase     string
	Stock       int
}

func (s *Service) Create(ctx context.Context, addedByID string, in CreateInput) (Accessory, error) {
	if strings.TrimSpace(addedByID) == "" {
		return Accessory{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.Image) == "" || strings.TrimSpace(in.UseCase) == "" {
		return Accessory{}, ErrInvalidInput
	}
	if in.Cost < 0 {
		return Accessory{}, ErrInvalidInput
	}

	animalType, ok := ParseAnimalType(strings.TrimSpace(in.AnimalType))
	if !ok {
		return Accessory{}, ErrInvalidInput
	}

	stock := in.Stock
	if stock <= 0 {
		stock = 1
	}

	now := s.now()
	a := Accessory{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Cost:        in.Cost,
		Image:       strings.TrimSpace(in.Image),
		AnimalType:  animalType,
		UseCase:     strings.TrimSpace(in.UseCase),
		Stock:       stock,
		IsAvailable: true,
		AddedByID:   addedByID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Accessory{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Accessory, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Accessory{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAvailable(ctx context.Context) ([]Accessory, error) {
	return s.repo.ListAvailable(ctx)
}

func (s *Service) ListByAnimalType(ctx context.Context, t string) ([]Accessory, error) {
	animalType, ok := ParseAnimalType(strings.TrimSpace(t))
	if !ok {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByAnimalType(ctx, animalType)
}

type UpdateInput struct {
	Name        *string
	Description *string
	Cost        *float64
	Image       *string
	AnimalType  *string
	UseCase     *string
	Stock       *int
	IsAvailable *bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Accessory, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Accessory{}, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
		a.Description = strings.TrimSpace(*in.Description)
	}
	if in.Cost != nil {
		if *in.Cost < 0 {
			return Accessory{}, ErrInvalidInput
		}
		a.Cost = *in.Cost
	}
	if in.Image != nil && strings.TrimSpace(*in.Image) != "" {
		a.Image = strings.TrimSpace(*in.Image)
	}
	if in.AnimalType != nil {
		t, ok := ParseAnimalType(strings.TrimSpace(*in.AnimalType))
		if !ok {
			return Accessory{}, ErrInvalidInput
		}
		a.AnimalType = t
	}
	if in.UseCase != nil && strings.TrimSpace(*in.UseCase) != "" {
		a.UseCase = strings.TrimSpace(*in.UseCase)
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return Accessory{}, ErrInvalidInput
		}
		a.Stock = *in.Stock
	}
	if in.IsAvailable != nil {
		a.IsAvailable = *in.IsAvailable
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Accessory{}, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// ReduceStock descuenta unidades compradas y apaga la disponibilidad
// cuando el stock llega a cero. Write separado del insert de la orden.
func (s *Service) ReduceStock(ctx context.Context, id string, n int) (Accessory, error) {
	if n <= 0 {
		return Accessory{}, ErrInvalidInput
	}

	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Accessory{}, err
	}
	if !a.IsAvailable || a.Stock < n {
		return Accessory{}, ErrOutOfStock
	}

	a.Stock -= n
	if a.Stock == 0 {
		a.IsAvailable = false
	}
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Accessory{}, err
	}
	return a, nil
}
