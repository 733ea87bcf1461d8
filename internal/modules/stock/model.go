package stock

import (
	"errors"
	"fmt"
	"time"
)

// ErrInsufficient is returned when a stock-tracked product's available
// quantity cannot cover the requested deduction.
var ErrInsufficient = errors.New("insufficient stock")

// ErrNotFound is returned when no stock row exists for a product number.
var ErrNotFound = errors.New("stock not found")

// Stock is the on-hand quantity for a stock-tracked product, keyed by the
// product's business number. Quantity never goes below zero.
type Stock struct {
	ProductNumber string    `json:"product_number"`
	Quantity      int       `json:"quantity"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// QuantityLessThan reports whether the on-hand quantity is below quantity.
func (s *Stock) QuantityLessThan(quantity int) bool {
	return s.Quantity < quantity
}

// Deduct removes quantity units. Callers check sufficiency first; Deduct
// still refuses to drive the quantity negative.
func (s *Stock) Deduct(quantity int) error {
	if s.QuantityLessThan(quantity) {
		return fmt.Errorf("product %s: %w", s.ProductNumber, ErrInsufficient)
	}
	s.Quantity -= quantity
	return nil
}
