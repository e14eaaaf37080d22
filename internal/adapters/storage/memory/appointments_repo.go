package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"petpal-api/internal/domain/appointments"
)

type appointmentsRepo struct {
	mu   sync.RWMutex
	byID map[string]appointments.Appointment
}

func NewAppointmentsRepo() appointments.Repository {
	return &appointmentsRepo{
		byID: make(map[string]appointments.Appointment),
	}
}

func (r *appointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return appointments.ErrInvalidInput
	}
	r.byID[a.ID] = a
	return nil
}

func (r *appointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

func (r *appointmentsRepo) ListByBuyer(ctx context.Context, buyerID string) ([]appointments.Appointment, error) {
	return r.list(func(a appointments.Appointment) bool { return a.BuyerID == buyerID })
}

func (r *appointmentsRepo) ListByProvider(ctx context.Context, providerID string) ([]appointments.Appointment, error) {
	return r.list(func(a appointments.Appointment) bool { return a.ProviderID == providerID })
}

func (r *appointmentsRepo) ListAll(ctx context.Context) ([]appointments.Appointment, error) {
	return r.list(func(appointments.Appointment) bool { return true })
}

func (r *appointmentsRepo) list(keep func(appointments.Appointment) bool) ([]appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if keep(a) {
			out = append(out, a)
		}
	}

	// cronológico ascendente por (fecha, hora); "HH:MM" ordena lexicográfico
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Time < out[j].Time
	})

	return out, nil
}

func (r *appointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return appointments.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *appointmentsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return appointments.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
