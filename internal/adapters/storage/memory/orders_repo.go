package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"petpal-api/internal/domain/orders"
)

type ordersRepo struct {
	mu   sync.RWMutex
	byID map[string]orders.Order
}

func NewOrdersRepo() orders.Repository {
	return &ordersRepo{
		byID: make(map[string]orders.Order),
	}
}

func (r *ordersRepo) Create(ctx context.Context, o orders.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(o.ID) == "" {
		return orders.ErrInvalidInput
	}
	r.byID[o.ID] = o
	return nil
}

func (r *ordersRepo) GetByID(ctx context.Context, id string) (orders.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return orders.Order{}, orders.ErrNotFound
	}
	return o, nil
}

func (r *ordersRepo) ListByBuyer(ctx context.Context, buyerID string) ([]orders.Order, error) {
	return r.list(func(o orders.Order) bool { return o.BuyerID == buyerID }, byCreated)
}

func (r *ordersRepo) ListBySeller(ctx context.Context, sellerID string) ([]orders.Order, error) {
	return r.list(func(o orders.Order) bool { return o.SellerID == sellerID }, byCreated)
}

func (r *ordersRepo) ListAll(ctx context.Context) ([]orders.Order, error) {
	return r.list(func(orders.Order) bool { return true }, byCreated)
}

func (r *ordersRepo) ListServices(ctx context.Context, f orders.ServiceFilter) ([]orders.Order, error) {
	return r.list(func(o orders.Order) bool {
		if !o.Type.IsService() {
			return false
		}
		if f.Type != "" && o.Type != f.Type {
			return false
		}
		if f.BuyerID != "" && o.BuyerID != f.BuyerID {
			return false
		}
		if f.SellerID != "" && o.SellerID != f.SellerID {
			return false
		}
		return true
	}, bySchedule)
}

type orderLess func(a, b orders.Order) bool

func byCreated(a, b orders.Order) bool {
	return a.CreatedAt.Before(b.CreatedAt)
}

// bySchedule: ascendente por (fecha, hora) de la cita.
func bySchedule(a, b orders.Order) bool {
	switch {
	case a.Date == nil:
		return b.Date != nil
	case b.Date == nil:
		return false
	case !a.Date.Equal(*b.Date):
		return a.Date.Before(*b.Date)
	default:
		return a.Time < b.Time
	}
}

func (r *ordersRepo) list(keep func(orders.Order) bool, less orderLess) ([]orders.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]orders.Order, 0)
	for _, o := range r.byID {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out, nil
}

func (r *ordersRepo) Update(ctx context.Context, o orders.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[o.ID]; !exists {
		return orders.ErrNotFound
	}
	r.byID[o.ID] = o
	return nil
}

func (r *ordersRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return orders.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
