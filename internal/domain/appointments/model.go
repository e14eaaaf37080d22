package appointments

import (
	"time"

	"petpal-api/internal/ports/auth"
)

// ServiceType de la reserva.
// @Enum vet, walker, daycare
type ServiceType string

const (
	ServiceVet     ServiceType = "vet"
	ServiceWalker  ServiceType = "walker"
	ServiceDaycare ServiceType = "daycare"
)

func ParseServiceType(s string) (ServiceType, bool) {
	switch ServiceType(s) {
	case ServiceVet, ServiceWalker, ServiceDaycare:
		return ServiceType(s), true
	}
	return "", false
}

// Role devuelve el rol de provider que atiende este tipo de servicio.
func (t ServiceType) Role() auth.Role {
	switch t {
	case ServiceVet:
		return auth.RoleVet
	case ServiceWalker:
		return auth.RoleWalker
	case ServiceDaycare:
		return auth.RoleDaycare
	}
	return ""
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Appointment es la reserva standalone (camino legacy; las reservas
// nuevas también existen como Order de tipo servicio).
type Appointment struct {
	ID string

	BuyerID    string
	ProviderID string

	ServiceType ServiceType

	Date time.Time // día de la cita
	Time string    // "HH:MM"

	Status Status
	Notes  string

	CreatedAt time.Time
	UpdatedAt time.Time
}
