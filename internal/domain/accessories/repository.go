package accessories

import "context"

type Repository interface {
	Create(ctx context.Context, a Accessory) error
	GetByID(ctx context.Context, id string) (Accessory, error)
	// ListAvailable ordena por fecha de alta descendente (lo nuevo primero).
	ListAvailable(ctx context.Context) ([]Accessory, error)
	// ListByAnimalType incluye los accesorios "All".
	ListByAnimalType(ctx context.Context, t AnimalType) ([]Accessory, error)
	Update(ctx context.Context, a Accessory) error
	Delete(ctx context.Context, id string) error
}
