package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"petpal-api/internal/domain/accessories"
	"petpal-api/internal/domain/pets"
	"petpal-api/internal/domain/users"
	"petpal-api/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrNotAvailable   = errors.New("item not available")
	ErrBadTransition  = errors.New("invalid status transition")
	ErrNotServiceType = errors.New("order is not a service booking")
)

type Service struct {
	repo        Repository
	users       *users.Service
	pets        *pets.Service
	accessories *accessories.Service
	now         func() time.Time
}

func NewService(repo Repository, usersSvc *users.Service, petsSvc *pets.Service, accSvc *accessories.Service) *Service {
	return &Service{
		repo:        repo,
		users:       usersSvc,
		pets:        petsSvc,
		accessories: accSvc,
		now:         time.Now,
	}
}

// PurchasePet: política canónica de stock — exige stock > 0 y descuenta
// una unidad. Insert de la orden y update del stock son dos writes sin
// transacción (modelo heredado; ver DESIGN.md).
func (s *Service) PurchasePet(ctx context.Context, buyerID, petID string) (Order, error) {
	if strings.TrimSpace(buyerID) == "" || strings.TrimSpace(petID) == "" {
		return Order{}, ErrInvalidInput
	}

	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil || !pet.Available() {
		return Order{}, ErrNotAvailable
	}

	o := s.newOrder(buyerID, pet.SellerID, TypePet, pet.ID, KindPet, pet.Price)
	if err := s.repo.Create(ctx, o); err != nil {
		return Order{}, err
	}

	if _, err := s.pets.ReduceStock(ctx, pet.ID, 1); err != nil {
		// la orden ya quedó insertada; el caller ve el fallo del stock
		return Order{}, err
	}

	return o, nil
}

// PurchaseAccessory: amount = cost * quantity; descuenta stock y el
// servicio de accesorios apaga la disponibilidad al llegar a cero.
func (s *Service) PurchaseAccessory(ctx context.Context, buyerID, accessoryID string, quantity int) (Order, error) {
	if strings.TrimSpace(buyerID) == "" || strings.TrimSpace(accessoryID) == "" {
		return Order{}, ErrInvalidInput
	}
	if quantity <= 0 {
		quantity = 1
	}

	acc, err := s.accessories.GetByID(ctx, accessoryID)
	if err != nil || !acc.IsAvailable || acc.Stock < quantity {
		return Order{}, ErrNotAvailable
	}

	o := s.newOrder(buyerID, acc.AddedByID, TypeAccessory, acc.ID, KindAccessory, acc.Cost*float64(quantity))
	if err := s.repo.Create(ctx, o); err != nil {
		return Order{}, err
	}

	if _, err := s.accessories.ReduceStock(ctx, acc.ID, quantity); err != nil {
		return Order{}, err
	}

	return o, nil
}

type BookServiceInput struct {
	ProviderID  string
	ServiceType string
	Date        time.Time
	Time        string
}

// BookService crea una reserva como orden de servicio. El amount se fija
// al hourlyRate del provider en este momento y no se recalcula nunca.
func (s *Service) BookService(ctx context.Context, buyerID string, in BookServiceInput) (Order, error) {
	if strings.TrimSpace(buyerID) == "" || strings.TrimSpace(in.ProviderID) == "" {
		return Order{}, ErrInvalidInput
	}

	orderType, ok := ParseOrderType(strings.TrimSpace(in.ServiceType))
	if !ok || !orderType.IsService() {
		return Order{}, ErrInvalidInput
	}
	if in.Date.IsZero() || strings.TrimSpace(in.Time) == "" {
		return Order{}, ErrInvalidInput
	}

	provider, err := s.users.GetByID(ctx, in.ProviderID)
	if err != nil {
		return Order{}, ErrNotAvailable
	}
	if !provider.IsActive || provider.Role != orderType.ProviderRole() {
		return Order{}, ErrNotAvailable
	}

	o := s.newOrder(buyerID, provider.ID, orderType, provider.ID, KindUser, provider.HourlyRate)
	date := in.Date
	o.Date = &date
	o.Time = strings.TrimSpace(in.Time)

	if err := s.repo.Create(ctx, o); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (s *Service) newOrder(buyerID, sellerID string, t OrderType, itemID string, kind ItemKind, amount float64) Order {
	now := s.now()
	return Order{
		ID:        uuid.NewString(),
		BuyerID:   buyerID,
		SellerID:  sellerID,
		Type:      t,
		ItemID:    itemID,
		ItemKind:  kind,
		Amount:    amount,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Order{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListForBuyer(ctx context.Context, buyerID string) ([]Order, error) {
	return s.repo.ListByBuyer(ctx, buyerID)
}

func (s *Service) ListForSeller(ctx context.Context, sellerID string) ([]Order, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	return s.repo.ListAll(ctx)
}

// ListServiceBookings es la vista unificada de reservas:
// - mine=true  => perspectiva provider (órdenes donde soy seller)
// - mine=false => perspectiva buyer; admin sin mine ve todo
func (s *Service) ListServiceBookings(ctx context.Context, actor auth.Principal, typeFilter string, mine bool) ([]Order, error) {
	f := ServiceFilter{}

	if strings.TrimSpace(typeFilter) != "" {
		t, ok := ParseOrderType(strings.TrimSpace(typeFilter))
		if !ok || !t.IsService() {
			return nil, ErrInvalidInput
		}
		f.Type = t
	}

	switch {
	case mine:
		f.SellerID = actor.UserID
	case actor.Role == auth.RoleAdmin:
		// sin filtro: todas las reservas
	default:
		f.BuyerID = actor.UserID
	}

	return s.repo.ListServices(ctx, f)
}

// UpdateStatus aplica la máquina de estados de forma estricta.
// Sellers/providers solo tocan sus propias ventas; admin cualquiera.
func (s *Service) UpdateStatus(ctx context.Context, id string, next string, actor auth.Principal) (Order, error) {
	status, ok := ParseStatus(strings.TrimSpace(next))
	if !ok {
		return Order{}, ErrInvalidInput
	}

	o, err := s.GetByID(ctx, id)
	if err != nil {
		return Order{}, err
	}

	if actor.Role != auth.RoleAdmin && o.SellerID != actor.UserID {
		return Order{}, ErrForbidden
	}

	if !o.Status.CanTransitionTo(status) {
		return Order{}, ErrBadTransition
	}

	o.Status = status
	o.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, o); err != nil {
		return Order{}, err
	}
	return o, nil
}

// Delete: cancelación dura de una reserva, solo admin y solo órdenes de
// servicio. Las compras nunca se borran.
func (s *Service) Delete(ctx context.Context, id string, actor auth.Principal) error {
	if actor.Role != auth.RoleAdmin {
		return ErrForbidden
	}

	o, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !o.Type.IsService() {
		return ErrNotServiceType
	}

	return s.repo.Delete(ctx, o.ID)
}
