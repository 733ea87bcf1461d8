package catalog

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products
		  (id, product_number, type, selling_status, name, price)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.ProductNumber, p.Type, p.SellingStatus, p.Name, p.Price)
	return err
}

func (r *postgresRepo) FindAllByProductNumberIn(ctx context.Context, productNumbers []string) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,product_number,type,selling_status,name,price,created_at,updated_at
		FROM products WHERE product_number = ANY($1)`, pq.Array(productNumbers))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *postgresRepo) FindAllBySellingStatusIn(ctx context.Context, statuses []SellingStatus) ([]*Product, error) {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,product_number,type,selling_status,name,price,created_at,updated_at
		FROM products WHERE selling_status = ANY($1)
		ORDER BY product_number ASC`, pq.Array(values))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *postgresRepo) FindLatestProductNumber(ctx context.Context) (string, error) {
	var number string
	err := r.db.QueryRowContext(ctx, `
		SELECT product_number FROM products
		ORDER BY product_number DESC LIMIT 1`).Scan(&number)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return number, nil
}

func scanProducts(rows *sql.Rows) ([]*Product, error) {
	var products []*Product
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(&p.ID, &p.ProductNumber, &p.Type, &p.SellingStatus,
			&p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
