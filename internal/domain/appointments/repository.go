package appointments

import "context"

// Los listados vienen ordenados ascendente por (fecha, hora).
type Repository interface {
	Create(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]Appointment, error)
	ListByProvider(ctx context.Context, providerID string) ([]Appointment, error)
	ListAll(ctx context.Context) ([]Appointment, error)
	Update(ctx context.Context, a Appointment) error
	Delete(ctx context.Context, id string) error
}
