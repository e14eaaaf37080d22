package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"petpal-api/internal/domain/accessories"
)

type accessoriesRepo struct {
	mu   sync.RWMutex
	byID map[string]accessories.Accessory
}

func NewAccessoriesRepo() accessories.Repository {
	return &accessoriesRepo{
		byID: make(map[string]accessories.Accessory),
	}
}

func (r *accessoriesRepo) Create(ctx context.Context, a accessories.Accessory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return accessories.ErrInvalidInput
	}
	r.byID[a.ID] = a
	return nil
}

func (r *accessoriesRepo) GetByID(ctx context.Context, id string) (accessories.Accessory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return accessories.Accessory{}, accessories.ErrNotFound
	}
	return a, nil
}

func (r *accessoriesRepo) ListAvailable(ctx context.Context) ([]accessories.Accessory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]accessories.Accessory, 0)
	for _, a := range r.byID {
		if a.IsAvailable {
			out = append(out, a)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *accessoriesRepo) ListByAnimalType(ctx context.Context, t accessories.AnimalType) ([]accessories.Accessory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]accessories.Accessory, 0)
	for _, a := range r.byID {
		if !a.IsAvailable {
			continue
		}
		if a.AnimalType == t || a.AnimalType == accessories.AnimalAll {
			out = append(out, a)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *accessoriesRepo) Update(ctx context.Context, a accessories.Accessory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return accessories.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *accessoriesRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return accessories.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// Vitrina: lo más nuevo primero.
func sortNewestFirst(out []accessories.Accessory) {
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
}
