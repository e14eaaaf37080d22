package postgres

import (
	"context"
	"database/sql"
	"strings"

	"petpal-api/internal/domain/users"
	"petpal-api/internal/ports/auth"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userColumns = `
	id, email, password_hash,
	full_name, age, sex, location,
	role, hourly_rate, image, contact_number, is_active,
	created_at, updated_at
`

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, password_hash,
			full_name, age, sex, location,
			role, hourly_rate, image, contact_number, is_active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.FullName,
		u.Age,
		u.Sex,
		u.Location,
		u.Role,
		u.HourlyRate,
		u.Image,
		u.ContactNumber,
		u.IsActive,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil && strings.Contains(err.Error(), "users_email_key") {
		return users.ErrEmailTaken
	}
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *UsersRepo) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *UsersRepo) ListByRole(ctx context.Context, role auth.Role, activeOnly bool) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE role = $1 AND (NOT $2 OR is_active)
		ORDER BY created_at ASC
	`, role, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET
			email = $2,
			password_hash = $3,
			full_name = $4,
			age = $5,
			sex = $6,
			location = $7,
			role = $8,
			hourly_rate = $9,
			image = $10,
			contact_number = $11,
			is_active = $12,
			updated_at = $13
		WHERE id = $1
	`,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.FullName,
		u.Age,
		u.Sex,
		u.Location,
		u.Role,
		u.HourlyRate,
		u.Image,
		u.ContactNumber,
		u.IsActive,
		u.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return users.ErrEmailTaken
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (users.User, error) {
	var u users.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&u.Age,
		&u.Sex,
		&u.Location,
		&u.Role,
		&u.HourlyRate,
		&u.Image,
		&u.ContactNumber,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

func scanUsers(rows *sql.Rows) ([]users.User, error) {
	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
