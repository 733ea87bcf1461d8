package order

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/cafekiosk/cafekiosk-backend/internal/modules/catalog"
	"github.com/cafekiosk/cafekiosk-backend/internal/modules/stock"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) FindProductsByNumberIn(ctx context.Context, productNumbers []string) ([]*catalog.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,product_number,type,selling_status,name,price,created_at,updated_at
		FROM products WHERE product_number = ANY($1)`, pq.Array(productNumbers))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*catalog.Product
	for rows.Next() {
		p := &catalog.Product{}
		if err := rows.Scan(&p.ID, &p.ProductNumber, &p.Type, &p.SellingStatus,
			&p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// CreateOrder locks the touched stock rows, checks and applies the
// deductions, and inserts the order with its line items, all in a single
// transaction. Any failure rolls the whole unit back.
func (r *postgresRepo) CreateOrder(ctx context.Context, o *Order, deductions map[string]int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if len(deductions) > 0 {
		if err := r.deductStocks(ctx, tx, deductions); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, status, total_price, registered_at)
		VALUES ($1,$2,$3,$4)`,
		o.ID, o.Status, o.TotalPrice, o.RegisteredAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.LineItems {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_line_items (id, order_id, product_number, price)
			VALUES ($1,$2,$3,$4)`,
			item.ID, o.ID, item.ProductNumber, item.Price)
		if err != nil {
			return fmt.Errorf("insert line item: %w", err)
		}
	}

	return tx.Commit()
}

// deductStocks fetches the affected stock rows under FOR UPDATE so that
// concurrent orders on the same products serialize on the row locks, then
// validates and decrements through the ledger. Rows are locked in product
// number order; two orders touching the same set cannot deadlock.
func (r *postgresRepo) deductStocks(ctx context.Context, tx *sql.Tx, deductions map[string]int) error {
	numbers := make([]string, 0, len(deductions))
	for number := range deductions {
		numbers = append(numbers, number)
	}
	sort.Strings(numbers)

	rows, err := tx.QueryContext(ctx, `
		SELECT product_number, quantity FROM stocks
		WHERE product_number = ANY($1)
		ORDER BY product_number ASC
		FOR UPDATE`, pq.Array(numbers))
	if err != nil {
		return fmt.Errorf("lock stocks: %w", err)
	}

	stocks := make(map[string]*stock.Stock, len(numbers))
	for rows.Next() {
		s := &stock.Stock{}
		if err := rows.Scan(&s.ProductNumber, &s.Quantity); err != nil {
			rows.Close()
			return err
		}
		stocks[s.ProductNumber] = s
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	if err := stock.Apply(stocks, deductions); err != nil {
		return err
	}

	for _, number := range numbers {
		_, err := tx.ExecContext(ctx, `
			UPDATE stocks SET quantity=$1, updated_at=NOW()
			WHERE product_number=$2`,
			stocks[number].Quantity, number)
		if err != nil {
			return fmt.Errorf("update stock: %w", err)
		}
	}
	return nil
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	o := &Order{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, status, total_price, registered_at, created_at, updated_at
		FROM orders WHERE id=$1`, uid).
		Scan(&o.ID, &o.Status, &o.TotalPrice, &o.RegisteredAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.LineItems, err = r.listLineItems(ctx, o.ID)
	return o, err
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status OrderStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	return err
}

func (r *postgresRepo) FindPaymentCompletedOrdersBetween(ctx context.Context, from, to time.Time) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, status, total_price, registered_at, created_at, updated_at
		FROM orders
		WHERE status=$1 AND registered_at >= $2 AND registered_at < $3`,
		StatusPaymentCompleted, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o := &Order{}
		if err := rows.Scan(&o.ID, &o.Status, &o.TotalPrice, &o.RegisteredAt,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *postgresRepo) listLineItems(ctx context.Context, orderID uuid.UUID) ([]*LineItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_number, price
		FROM order_line_items WHERE order_id=$1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*LineItem
	for rows.Next() {
		item := &LineItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductNumber, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
