package appointments

import (
	"context"
	"errors"
	"strings"
	"time"

	"petpal-api/internal/domain/users"
	"petpal-api/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrProviderUnavailable = errors.New("service provider not available")
)

type Service struct {
	repo  Repository
	users *users.Service
	now   func() time.Time
}

func NewService(repo Repository, usersSvc *users.Service) *Service {
	return &Service{
		repo:  repo,
		users: usersSvc,
		now:   time.Now,
	}
}

type BookInput struct {
	ProviderID  string
	ServiceType string
	Date        time.Time
	Time        string
	Notes       string
}

// Book crea la reserva en pending. No se chequean choques de agenda:
// dos buyers pueden reservar el mismo provider/fecha/hora.
func (s *Service) Book(ctx context.Context, buyerID string, in BookInput) (Appointment, error) {
	if strings.TrimSpace(buyerID) == "" || strings.TrimSpace(in.ProviderID) == "" {
		return Appointment{}, ErrInvalidInput
	}

	serviceType, ok := ParseServiceType(strings.TrimSpace(in.ServiceType))
	if !ok {
		return Appointment{}, ErrInvalidInput
	}
	if in.Date.IsZero() || strings.TrimSpace(in.Time) == "" {
		return Appointment{}, ErrInvalidInput
	}

	provider, err := s.users.GetByID(ctx, in.ProviderID)
	if err != nil {
		return Appointment{}, ErrProviderUnavailable
	}
	if !provider.IsActive || provider.Role != serviceType.Role() {
		return Appointment{}, ErrProviderUnavailable
	}

	now := s.now()
	a := Appointment{
		ID:          uuid.NewString(),
		BuyerID:     buyerID,
		ProviderID:  in.ProviderID,
		ServiceType: serviceType,
		Date:        in.Date,
		Time:        strings.TrimSpace(in.Time),
		Status:      StatusPending,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListForBuyer(ctx context.Context, buyerID string) ([]Appointment, error) {
	return s.repo.ListByBuyer(ctx, buyerID)
}

func (s *Service) ListForProvider(ctx context.Context, providerID string) ([]Appointment, error) {
	return s.repo.ListByProvider(ctx, providerID)
}

func (s *Service) ListAll(ctx context.Context) ([]Appointment, error) {
	return s.repo.ListAll(ctx)
}

// Reschedule muta fecha/hora in place. El status NO vuelve a pending:
// una cita confirmada sigue confirmada tras moverla.
func (s *Service) Reschedule(ctx context.Context, id string, actor auth.Principal, date *time.Time, tm *string) (Appointment, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	if actor.Role != auth.RoleAdmin && actor.UserID != a.BuyerID {
		return Appointment{}, ErrForbidden
	}

	if date != nil {
		if date.IsZero() {
			return Appointment{}, ErrInvalidInput
		}
		a.Date = *date
	}
	if tm != nil {
		if strings.TrimSpace(*tm) == "" {
			return Appointment{}, ErrInvalidInput
		}
		a.Time = strings.TrimSpace(*tm)
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// Cancel borra el registro (sin audit trail, igual que el sistema original).
func (s *Service) Cancel(ctx context.Context, id string, actor auth.Principal) error {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if actor.Role != auth.RoleAdmin && actor.UserID != a.BuyerID && actor.UserID != a.ProviderID {
		return ErrForbidden
	}

	return s.repo.Delete(ctx, a.ID)
}
