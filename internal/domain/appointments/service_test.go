package appointments_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"petpal-api/internal/adapters/storage/memory"
	"petpal-api/internal/domain/appointments"
	"petpal-api/internal/domain/users"
	"petpal-api/internal/ports/auth"
)

type fixture struct {
	appointments *appointments.Service
	users        *users.Service
}

func newFixture() *fixture {
	usersSvc := users.NewService(memory.NewUsersRepo())
	return &fixture{
		appointments: appointments.NewService(memory.NewAppointmentsRepo(), usersSvc),
		users:        usersSvc,
	}
}

func (f *fixture) registerUser(t *testing.T, email, role string) users.User {
	t.Helper()

	u, err := f.users.Register(context.Background(), users.RegisterInput{
		Email:      email,
		Password:   "secret123",
		FullName:   "Test " + role,
		Age:        30,
		Sex:        "Female",
		Location:   "Lima",
		Role:       role,
		HourlyRate: 20,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return u
}

func TestBook_ProviderValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	vet := f.registerUser(t, "vet@test.com", "vet")
	buyer := f.registerUser(t, "buyer@test.com", "buyer")
	date := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	// tipo de servicio desconocido
	if _, err := f.appointments.Book(ctx, buyer.ID, appointments.BookInput{
		ProviderID:  vet.ID,
		ServiceType: "grooming",
		Date:        date,
		Time:        "09:00",
	}); !errors.Is(err, appointments.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	// provider con otro rol
	if _, err := f.appointments.Book(ctx, buyer.ID, appointments.BookInput{
		ProviderID:  vet.ID,
		ServiceType: "walker",
		Date:        date,
		Time:        "09:00",
	}); !errors.Is(err, appointments.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable role mismatch, got %v", err)
	}

	// provider inexistente
	if _, err := f.appointments.Book(ctx, buyer.ID, appointments.BookInput{
		ProviderID:  "ghost",
		ServiceType: "vet",
		Date:        date,
		Time:        "09:00",
	}); !errors.Is(err, appointments.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable unknown provider, got %v", err)
	}

	a, err := f.appointments.Book(ctx, buyer.ID, appointments.BookInput{
		ProviderID:  vet.ID,
		ServiceType: "vet",
		Date:        date,
		Time:        "09:00",
		Notes:       "annual checkup",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if a.Status != appointments.StatusPending {
		t.Fatalf("expected pending, got %s", a.Status)
	}

	// provider desactivado
	inactive := false
	if _, err := f.users.AdminUpdate(ctx, vet.ID, users.AdminUpdateInput{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := f.appointments.Book(ctx, buyer.ID, appointments.BookInput{
		ProviderID:  vet.ID,
		ServiceType: "vet",
		Date:        date,
		Time:        "09:00",
	}); !errors.Is(err, appointments.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable inactive, got %v", err)
	}
}

func TestBook_SameSlotTwice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	vet := f.registerUser(t, "vet@test.com", "vet")
	buyer := f.registerUser(t, "buyer@test.com", "buyer")

	in := appointments.BookInput{
		ProviderID:  vet.ID,
		ServiceType: "vet",
		Date:        time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Time:        "09:00",
	}

	// el mismo slot se puede reservar dos veces
	if _, err := f.appointments.Book(ctx, buyer.ID, in); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := f.appointments.Book(ctx, buyer.ID, in); err != nil {
		t.Fatalf("second booking same slot: %v", err)
	}

	got, err := f.appointments.ListForProvider(ctx, vet.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(got))
	}
}

func TestReschedule_KeepsStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	vet := f.registerUser(t, "vet@test.com", "vet")
	buyer := f.registerUser(t, "buyer@test.com", "buyer")

	a, err := f.appointments.Book(ctx, buyer.ID, appointments.BookInput{
		ProviderID:  vet.ID,
		ServiceType: "vet",
		Date:        time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Time:        "09:00",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	asBuyer := auth.Principal{UserID: buyer.ID, Role: auth.RoleBuyer}
	asVet := auth.Principal{UserID: vet.ID, Role: auth.RoleVet}

	// el provider no reprograma
	newTime := "15:00"
	if _, err := f.appointments.Reschedule(ctx, a.ID, asVet, nil, &newTime); !errors.Is(err, appointments.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	newDate := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)
	got, err := f.appointments.Reschedule(ctx, a.ID, asBuyer, &newDate, &newTime)
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if !got.Date.Equal(newDate) || got.Time != "15:00" {
		t.Fatalf("schedule not updated: %+v", got)
	}
	if got.Status != appointments.StatusPending {
		t.Fatalf("status must not change on reschedule, got %s", got.Status)
	}

	// hora vacía no pisa el valor
	empty := "  "
	if _, err := f.appointments.Reschedule(ctx, a.ID, asBuyer, nil, &empty); !errors.Is(err, appointments.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput empty time, got %v", err)
	}
}

func TestCancel_HardDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	vet := f.registerUser(t, "vet@test.com", "vet")
	buyer := f.registerUser(t, "buyer@test.com", "buyer")
	stranger := f.registerUser(t, "other@test.com", "buyer")

	a, err := f.appointments.Book(ctx, buyer.ID, appointments.BookInput{
		ProviderID:  vet.ID,
		ServiceType: "vet",
		Date:        time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Time:        "09:00",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	// un tercero no cancela
	if err := f.appointments.Cancel(ctx, a.ID, auth.Principal{UserID: stranger.ID, Role: auth.RoleBuyer}); !errors.Is(err, appointments.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// el provider sí
	if err := f.appointments.Cancel(ctx, a.ID, auth.Principal{UserID: vet.ID, Role: auth.RoleVet}); err != nil {
		t.Fatalf("provider cancel: %v", err)
	}

	// borrado duro: no queda rastro
	if _, err := f.appointments.GetByID(ctx, a.ID); !errors.Is(err, appointments.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after cancel, got %v", err)
	}
	if err := f.appointments.Cancel(ctx, a.ID, auth.Principal{UserID: buyer.ID, Role: auth.RoleBuyer}); !errors.Is(err, appointments.ErrNotFound) {
		t.Fatalf("expected ErrNotFound cancelling twice, got %v", err)
	}
}

func TestListings_AscendingBySchedule(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	vet := f.registerUser(t, "vet@test.com", "vet")
	buyer := f.registerUser(t, "buyer@test.com", "buyer")

	book := func(day int, hour string) {
		if _, err := f.appointments.Book(ctx, buyer.ID, appointments.BookInput{
			ProviderID:  vet.ID,
			ServiceType: "vet",
			Date:        time.Date(2026, 10, day, 0, 0, 0, 0, time.UTC),
			Time:        hour,
		}); err != nil {
			t.Fatalf("book day=%d %s: %v", day, hour, err)
		}
	}
	book(3, "09:00")
	book(1, "14:00")
	book(1, "08:00")

	got, err := f.appointments.ListForBuyer(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 appointments, got %d", len(got))
	}
	if got[0].Time != "08:00" || got[1].Time != "14:00" || got[2].Time != "09:00" {
		t.Fatalf("expected (date,time) ascending, got %v %v %v", got[0].Time, got[1].Time, got[2].Time)
	}
}
