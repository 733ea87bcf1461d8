package order

import (
	"context"
	"time"

	"github.com/cafekiosk/cafekiosk-backend/internal/modules/catalog"
)

// Repository defines data access for orders. It also reads the catalog and
// stock tables directly: product resolution is a plain batch read, and the
// stock deduction has to share the order's transaction.
type Repository interface {
	// FindProductsByNumberIn returns the distinct catalog products matching
	// the given numbers. The result preserves neither input order nor
	// duplicates; callers re-expand against the requested list.
	FindProductsByNumberIn(ctx context.Context, productNumbers []string) ([]*catalog.Product, error)

	// CreateOrder persists the order with its line items and applies the
	// given stock deductions inside one transaction. The touched stock rows
	// stay locked from the sufficiency check through the decrement; if any
	// product's quantity cannot cover its count, nothing is written and the
	// error wraps stock.ErrInsufficient.
	CreateOrder(ctx context.Context, o *Order, deductions map[string]int) error

	GetOrderByID(ctx context.Context, id string) (*Order, error)

	UpdateStatus(ctx context.Context, id string, status OrderStatus) error

	// FindPaymentCompletedOrdersBetween returns PAYMENT_COMPLETED orders
	// with registered_at in [from, to).
	FindPaymentCompletedOrdersBetween(ctx context.Context, from, to time.Time) ([]*Order, error)
}
