package users

import (
	"time"

	"petpal-api/internal/ports/auth"
)

// Sex del usuario.
// @Enum Male, Female
type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

// User es una cuenta del marketplace. El rol define qué puede hacer:
// buyers compran/agendan, sellers publican mascotas, providers
// (vet/walker/daycare) atienden reservas por hora, admin administra todo.
type User struct {
	ID           string
	Email        string // único, lowercase
	PasswordHash string

	FullName string
	Age      int
	Sex      Sex
	Location string

	Role       auth.Role
	HourlyRate float64 // solo relevante para roles no-buyer

	Image         string
	ContactNumber string

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
