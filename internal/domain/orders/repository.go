package orders

import "context"

// ServiceFilter acota el listado unificado de reservas
// (solo órdenes de tipo servicio).
type ServiceFilter struct {
	Type     OrderType // "" = cualquier servicio
	BuyerID  string
	SellerID string
}

type Repository interface {
	Create(ctx context.Context, o Order) error
	GetByID(ctx context.Context, id string) (Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	// ListServices devuelve órdenes de servicio ascendente por (fecha, hora).
	ListServices(ctx context.Context, f ServiceFilter) ([]Order, error)
	Update(ctx context.Context, o Order) error
	Delete(ctx context.Context, id string) error
}
