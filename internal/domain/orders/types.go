package orders

import "petpal-api/internal/ports/auth"

// OrderType distingue compras de catálogo de reservas de servicio.
type OrderType string

const (
	TypePet       OrderType = "pet"
	TypeAccessory OrderType = "accessory"
	TypeVet       OrderType = "vet"
	TypeWalker    OrderType = "walker"
	TypeDaycare   OrderType = "daycare"
)

func ParseOrderType(s string) (OrderType, bool) {
	switch OrderType(s) {
	case TypePet, TypeAccessory, TypeVet, TypeWalker, TypeDaycare:
		return OrderType(s), true
	}
	return "", false
}

// IsService: la orden es una reserva con fecha/hora, no una compra.
func (t OrderType) IsService() bool {
	return t == TypeVet || t == TypeWalker || t == TypeDaycare
}

// ProviderRole devuelve el rol que atiende una orden de servicio.
func (t OrderType) ProviderRole() auth.Role {
	switch t {
	case TypeVet:
		return auth.RoleVet
	case TypeWalker:
		return auth.RoleWalker
	case TypeDaycare:
		return auth.RoleDaycare
	}
	return ""
}

// ItemKind es el tag de la referencia polimórfica item:
// una orden apunta a una mascota, un accesorio o un provider (user).
type ItemKind string

const (
	KindPet       ItemKind = "pet"
	KindAccessory ItemKind = "accessory"
	KindUser      ItemKind = "user"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// CanTransitionTo define la máquina de estados:
// pending -> confirmed -> completed, y pending|confirmed -> cancelled.
// Los estados finales (completed, cancelled) no salen a ningún lado.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}
