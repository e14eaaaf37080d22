package users

import (
	"context"

	"petpal-api/internal/ports/auth"
)

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	ListByRole(ctx context.Context, role auth.Role, activeOnly bool) ([]User, error)
	Update(ctx context.Context, u User) error
}
