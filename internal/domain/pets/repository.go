package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
	ListBySeller(ctx context.Context, sellerID string) ([]Pet, error)
	Update(ctx context.Context, p Pet) error
	// Delete con sellerID vacío borra sin scoping (admin);
	// con sellerID solo borra si la mascota le pertenece.
	Delete(ctx context.Context, id, sellerID string) error
}
