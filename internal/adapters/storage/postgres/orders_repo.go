package postgres

import (
	"context"
	"database/sql"
	"time"

	"petpal-api/internal/domain/orders"
)

type OrdersRepo struct {
	db *sql.DB
}

func NewOrdersRepo(db *sql.DB) *OrdersRepo {
	return &OrdersRepo{db: db}
}

const orderColumns = `
	id, buyer_id, seller_id, type,
	item_id, item_kind, amount, status,
	date, time, created_at, updated_at
`

func (r *OrdersRepo) Create(ctx context.Context, o orders.Order) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (
			id, buyer_id, seller_id, type,
			item_id, item_kind, amount, status,
			date, time, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		o.ID,
		o.BuyerID,
		nullString(o.SellerID),
		o.Type,
		o.ItemID,
		o.ItemKind,
		o.Amount,
		o.Status,
		nullDate(o.Date),
		nullString(o.Time),
		o.CreatedAt,
		o.UpdatedAt,
	)
	return err
}

func (r *OrdersRepo) GetByID(ctx context.Context, id string) (orders.Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id)
	return scanOrder(row)
}

func (r *OrdersRepo) ListByBuyer(ctx context.Context, buyerID string) ([]orders.Order, error) {
	return r.listWhere(ctx, `WHERE buyer_id = $1`, buyerID)
}

func (r *OrdersRepo) ListBySeller(ctx context.Context, sellerID string) ([]orders.Order, error) {
	return r.listWhere(ctx, `WHERE seller_id = $1`, sellerID)
}

func (r *OrdersRepo) ListAll(ctx context.Context) ([]orders.Order, error) {
	return r.listWhere(ctx, ``)
}

func (r *OrdersRepo) listWhere(ctx context.Context, where string, args ...any) ([]orders.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		`+where+`
		ORDER BY created_at ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// ListServices filtra solo órdenes de servicio; los filtros vacíos
// no acotan. Ascendente por (fecha, hora) de la cita.
func (r *OrdersRepo) ListServices(ctx context.Context, f orders.ServiceFilter) ([]orders.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE type IN ('vet', 'walker', 'daycare')
		  AND ($1 = '' OR type = $1)
		  AND ($2 = '' OR buyer_id = $2)
		  AND ($3 = '' OR seller_id = $3)
		ORDER BY date ASC, time ASC
	`, string(f.Type), f.BuyerID, f.SellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *OrdersRepo) Update(ctx context.Context, o orders.Order) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET
			status = $2,
			date = $3,
			time = $4,
			updated_at = $5
		WHERE id = $1
	`,
		o.ID,
		o.Status,
		nullDate(o.Date),
		nullString(o.Time),
		o.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return orders.ErrNotFound
	}
	return nil
}

func (r *OrdersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM orders
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return orders.ErrNotFound
	}
	return nil
}

func scanOrder(row rowScanner) (orders.Order, error) {
	var (
		o      orders.Order
		seller sql.NullString
		date   sql.NullTime
		hour   sql.NullString
	)
	if err := row.Scan(
		&o.ID,
		&o.BuyerID,
		&seller,
		&o.Type,
		&o.ItemID,
		&o.ItemKind,
		&o.Amount,
		&o.Status,
		&date,
		&hour,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return orders.Order{}, orders.ErrNotFound
		}
		return orders.Order{}, err
	}
	o.SellerID = seller.String
	if date.Valid {
		d := date.Time
		o.Date = &d
	}
	o.Time = hour.String
	return o, nil
}

func scanOrders(rows *sql.Rows) ([]orders.Order, error) {
	out := make([]orders.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
