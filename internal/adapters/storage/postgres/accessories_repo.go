package postgres

import (
	"context"
	"database/sql"

	"petpal-api/internal/domain/accessories"
)

type AccessoriesRepo struct {
	db *sql.DB
}

func NewAccessoriesRepo(db *sql.DB) *AccessoriesRepo {
	return &AccessoriesRepo{db: db}
}

const accessoryColumns = `
	id, name, description, cost, image,
	animal_type, use_case, stock, is_available, added_by_id,
	created_at, updated_at
`

func (r *AccessoriesRepo) Create(ctx context.Context, a accessories.Accessory) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accessories (
			id, name, description, cost, image,
			animal_type, use_case, stock, is_available, added_by_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		a.ID,
		a.Name,
		a.Description,
		a.Cost,
		a.Image,
		a.AnimalType,
		a.UseCase,
		a.Stock,
		a.IsAvailable,
		a.AddedByID,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AccessoriesRepo) GetByID(ctx context.Context, id string) (accessories.Accessory, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+accessoryColumns+`
		FROM accessories
		WHERE id = $1
	`, id)
	return scanAccessory(row)
}

func (r *AccessoriesRepo) ListAvailable(ctx context.Context) ([]accessories.Accessory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+accessoryColumns+`
		FROM accessories
		WHERE is_available
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAccessories(rows)
}

// ListByAnimalType incluye los "All" junto al tipo pedido.
func (r *AccessoriesRepo) ListByAnimalType(ctx context.Context, t accessories.AnimalType) ([]accessories.Accessory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+accessoryColumns+`
		FROM accessories
		WHERE is_available AND animal_type IN ($1, 'All')
		ORDER BY created_at DESC
	`, t)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAccessories(rows)
}

func (r *AccessoriesRepo) Update(ctx context.Context, a accessories.Accessory) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accessories
		SET
			name = $2,
			description = $3,
			cost = $4,
			image = $5,
			animal_type = $6,
			use_case = $7,
			stock = $8,
			is_available = $9,
			updated_at = $10
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		a.Description,
		a.Cost,
		a.Image,
		a.AnimalType,
		a.UseCase,
		a.Stock,
		a.IsAvailable,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return accessories.ErrNotFound
	}
	return nil
}

func (r *AccessoriesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM accessories
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return accessories.ErrNotFound
	}
	return nil
}

func scanAccessory(row rowScanner) (accessories.Accessory, error) {
	var a accessories.Accessory
	if err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Description,
		&a.Cost,
		&a.Image,
		&a.AnimalType,
		&a.UseCase,
		&a.Stock,
		&a.IsAvailable,
		&a.AddedByID,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return accessories.Accessory{}, accessories.ErrNotFound
		}
		return accessories.Accessory{}, err
	}
	return a, nil
}

func scanAccessories(rows *sql.Rows) ([]accessories.Accessory, error) {
	out := make([]accessories.Accessory, 0)
	for rows.Next() {
		a, err := scanAccessory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
