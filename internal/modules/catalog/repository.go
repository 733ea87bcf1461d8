package catalog

import "context"

// Repository defines catalog data access.
type Repository interface {
	Create(ctx context.Context, p *Product) error

	// FindAllByProductNumberIn returns the distinct products matching the
	// given numbers. Duplicates in the input collapse; no input-order
	// guarantee.
	FindAllByProductNumberIn(ctx context.Context, productNumbers []string) ([]*Product, error)

	FindAllBySellingStatusIn(ctx context.Context, statuses []SellingStatus) ([]*Product, error)

	// FindLatestProductNumber returns the highest assigned product number,
	// or "" when the catalog is empty.
	FindLatestProductNumber(ctx context.Context) (string, error)
}
