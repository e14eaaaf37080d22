package orders

import (
	"testing"

	"petpal-api/internal/ports/auth"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestOrderType_IsService(t *testing.T) {
	services := []OrderType{TypeVet, TypeWalker, TypeDaycare}
	for _, s := range services {
		if !s.IsService() {
			t.Errorf("%s should be a service type", s)
		}
	}
	for _, p := range []OrderType{TypePet, TypeAccessory} {
		if p.IsService() {
			t.Errorf("%s should not be a service type", p)
		}
	}
}

func TestOrderType_ProviderRole(t *testing.T) {
	cases := map[OrderType]auth.Role{
		TypeVet:     auth.RoleVet,
		TypeWalker:  auth.RoleWalker,
		TypeDaycare: auth.RoleDaycare,
	}
	for typ, want := range cases {
		if got := typ.ProviderRole(); got != want {
			t.Errorf("%s: got role %q, want %q", typ, got, want)
		}
	}
	if TypePet.ProviderRole() != "" {
		t.Error("purchase types have no provider role")
	}
}

func TestParseOrderType(t *testing.T) {
	if _, ok := ParseOrderType("walker"); !ok {
		t.Error("walker should parse")
	}
	if _, ok := ParseOrderType("banana"); ok {
		t.Error("unknown type should not parse")
	}
	if _, ok := ParseOrderType(""); ok {
		t.Error("empty type should not parse")
	}
}
