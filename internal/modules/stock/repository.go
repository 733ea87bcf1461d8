package stock

import "context"

// Repository defines stock data access for the administrative surface.
// Order-time deductions do not go through here: they run inside the order
// repository's transaction so the row locks span check and decrement.
type Repository interface {
	// Upsert creates the stock row or replaces its quantity.
	Upsert(ctx context.Context, s *Stock) error

	GetByProductNumber(ctx context.Context, productNumber string) (*Stock, error)

	FindAllByProductNumberIn(ctx context.Context, productNumbers []string) ([]*Stock, error)
}
