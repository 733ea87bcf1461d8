package stock

import (
	"fmt"

	"github.com/cafekiosk/cafekiosk-backend/internal/modules/catalog"
)

// DeductionCounts tallies, per product number, how many units of each
// stock-tracked product appear in the requested list. Duplicates in the
// list are separate units; non-tracked types are skipped entirely.
func DeductionCounts(products []*catalog.Product) map[string]int {
	counts := make(map[string]int)
	for _, p := range products {
		if !p.Type.IsStockTracked() {
			continue
		}
		counts[p.ProductNumber]++
	}
	return counts
}

// Apply validates every requested deduction against the fetched stocks and
// only then mutates quantities, so a failure on any product leaves every
// stock untouched. A tracked product with no stock row counts as
// insufficient.
//
// Apply only orders the check-then-deduct within one call; serializing
// concurrent deductions of the same row is the caller's job (the order
// repository holds row locks around it).
func Apply(stocks map[string]*Stock, counts map[string]int) error {
	for number, count := range counts {
		s, ok := stocks[number]
		if !ok || s.QuantityLessThan(count) {
			return fmt.Errorf("product %s: %w", number, ErrInsufficient)
		}
	}
	for number, count := range counts {
		if err := stocks[number].Deduct(count); err != nil {
			return err
		}
	}
	return nil
}
