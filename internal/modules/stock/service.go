package stock

import (
	"context"
	"fmt"
)

// Service defines the administrative stock operations.
type Service interface {
	// UpsertStock sets the on-hand quantity for a product number, creating
	// the row if it does not exist.
	UpsertStock(ctx context.Context, productNumber string, quantity int) (*Stock, error)

	GetStock(ctx context.Context, productNumber string) (*Stock, error)
}

// UpsertStockRequest is the payload for setting a stock quantity.
type UpsertStockRequest struct {
	Quantity int `json:"quantity"`
}

type service struct{ repo Repository }

// NewService creates a new stock service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) UpsertStock(ctx context.Context, productNumber string, quantity int) (*Stock, error) {
	if productNumber == "" {
		return nil, fmt.Errorf("product number is required")
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative")
	}
	st := &Stock{ProductNumber: productNumber, Quantity: quantity}
	if err := s.repo.Upsert(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to persist stock: %w", err)
	}
	return st, nil
}

func (s *service) GetStock(ctx context.Context, productNumber string) (*Stock, error) {
	return s.repo.GetByProductNumber(ctx, productNumber)
}
