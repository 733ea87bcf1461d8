package stock

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Upsert(ctx context.Context, s *Stock) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stocks (product_number, quantity)
		VALUES ($1,$2)
		ON CONFLICT (product_number)
		DO UPDATE SET quantity=EXCLUDED.quantity, updated_at=NOW()`,
		s.ProductNumber, s.Quantity)
	return err
}

func (r *postgresRepo) GetByProductNumber(ctx context.Context, productNumber string) (*Stock, error) {
	s := &Stock{}
	err := r.db.QueryRowContext(ctx, `
		SELECT product_number, quantity, updated_at
		FROM stocks WHERE product_number=$1`, productNumber).
		Scan(&s.ProductNumber, &s.Quantity, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %s: %w", productNumber, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) FindAllByProductNumberIn(ctx context.Context, productNumbers []string) ([]*Stock, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_number, quantity, updated_at
		FROM stocks WHERE product_number = ANY($1)`, pq.Array(productNumbers))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stocks []*Stock
	for rows.Next() {
		s := &Stock{}
		if err := rows.Scan(&s.ProductNumber, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, err
		}
		stocks = append(stocks, s)
	}
	return stocks, rows.Err()
}
