package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"petpal-api/internal/ports/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
)

// bcryptCost replica el costo del sistema original.
const bcryptCost = 12

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RegisterInput struct {
	Email         string
	Password      string
	FullName      string
	Age           int
	Sex           string
	Location      string
	Role          string
	HourlyRate    float64
	Image         string
	ContactNumber string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || strings.TrimSpace(in.Password) == "" {
		return User{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.FullName) == "" || in.Age <= 0 || strings.TrimSpace(in.Location) == "" {
		return User{}, ErrInvalidInput
	}

	sex := Sex(strings.TrimSpace(in.Sex))
	if sex != SexMale && sex != SexFemale {
		return User{}, ErrInvalidInput
	}

	role := auth.RoleBuyer
	if strings.TrimSpace(in.Role) != "" {
		r, ok := auth.ParseRole(strings.TrimSpace(in.Role))
		if !ok {
			return User{}, ErrInvalidInput
		}
		role = r
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return User{}, err
	}

	// Buyers no cobran por hora; cualquier otro rol conserva su tarifa.
	rate := in.HourlyRate
	if role == auth.RoleBuyer {
		rate = 0
	}

	now := s.now()
	u := User{
		ID:            uuid.NewString(),
		Email:         email,
		PasswordHash:  string(hash),
		FullName:      strings.TrimSpace(in.FullName),
		Age:           in.Age,
		Sex:           sex,
		Location:      strings.TrimSpace(in.Location),
		Role:          role,
		HourlyRate:    rate,
		Image:         strings.TrimSpace(in.Image),
		ContactNumber: strings.TrimSpace(in.ContactNumber),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Login no distingue email desconocido de password incorrecto.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// PrincipalByID implementa auth.PrincipalSource para el middleware.
func (s *Service) PrincipalByID(ctx context.Context, userID string) (auth.Principal, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return auth.Principal{}, err
	}
	return auth.Principal{UserID: u.ID, Role: u.Role}, nil
}

// UpdateProfileInput: punteros para PATCH-style, nil = no tocar.
// El self-update nunca cambia role ni isActive.
type UpdateProfileInput struct {
	Email         *string
	FullName      *string
	Age           *int
	Sex           *string
	Location      *string
	HourlyRate    *float64
	Image         *string
	ContactNumber *string
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if err := applyProfile(&u, in); err != nil {
		return User{}, err
	}

	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// AdminUpdateInput extiende el self-update con role e isActive.
type AdminUpdateInput struct {
	UpdateProfileInput
	Role     *string
	IsActive *bool
}

func (s *Service) AdminUpdate(ctx context.Context, id string, in AdminUpdateInput) (User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if err := applyProfile(&u, in.UpdateProfileInput); err != nil {
		return User{}, err
	}
	if in.Role != nil {
		r, ok := auth.ParseRole(strings.TrimSpace(*in.Role))
		if !ok {
			return User{}, ErrInvalidInput
		}
		u.Role = r
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}

	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func applyProfile(u *User, in UpdateProfileInput) error {
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return ErrInvalidInput
		}
		u.Email = email
	}
	if in.FullName != nil {
		if strings.TrimSpace(*in.FullName) == "" {
			return ErrInvalidInput
		}
		u.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Age != nil {
		if *in.Age <= 0 {
			return ErrInvalidInput
		}
		u.Age = *in.Age
	}
	if in.Sex != nil {
		sex := Sex(strings.TrimSpace(*in.Sex))
		if sex != SexMale && sex != SexFemale {
			return ErrInvalidInput
		}
		u.Sex = sex
	}
	if in.Location != nil {
		u.Location = strings.TrimSpace(*in.Location)
	}
	if in.HourlyRate != nil {
		if *in.HourlyRate < 0 {
			return ErrInvalidInput
		}
		u.HourlyRate = *in.HourlyRate
	}
	if in.Image != nil {
		u.Image = strings.TrimSpace(*in.Image)
	}
	if in.ContactNumber != nil {
		u.ContactNumber = strings.TrimSpace(*in.ContactNumber)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// ListProviders devuelve providers activos de un rol (directorio público).
func (s *Service) ListProviders(ctx context.Context, role auth.Role) ([]User, error) {
	if !role.IsProvider() {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByRole(ctx, role, true)
}

// GetProvider 404 si el usuario no existe o su rol no coincide.
func (s *Service) GetProvider(ctx context.Context, role auth.Role, id string) (User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if u.Role != role {
		return User{}, ErrNotFound
	}
	return u, nil
}
