package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cafekiosk/cafekiosk-backend/internal/modules/catalog"
	"github.com/cafekiosk/cafekiosk-backend/internal/modules/stock"
)

// ErrProductNotFound is returned when a requested product number has no
// catalog entry.
var ErrProductNotFound = errors.New("product not found")

// Service defines the order business logic.
type Service interface {
	// CreateOrder places an order for the requested product numbers.
	// Duplicate numbers are separate units. registeredAt is the business
	// timestamp recorded on the order; callers supply it so the result is
	// deterministic.
	CreateOrder(ctx context.Context, req CreateOrderRequest, registeredAt time.Time) (*Order, error)

	// GetOrder retrieves a full order with its line items.
	GetOrder(ctx context.Context, id string) (*Order, error)

	// UpdateStatus advances an order to a new lifecycle status.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)
}

type service struct {
	repo Repository
}

// NewService creates a new order service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// validTransitions defines the allowed status state machine.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusInit:             {StatusPaymentCompleted, StatusPaymentFailed, StatusCanceled},
	StatusPaymentCompleted: {StatusReceived, StatusCanceled},
	StatusPaymentFailed:    {},
	StatusReceived:         {StatusCompleted},
	StatusCompleted:        {},
	StatusCanceled:         {},
}

func (s *service) CreateOrder(ctx context.Context, req CreateOrderRequest, registeredAt time.Time) (*Order, error) {
	if len(req.ProductNumbers) == 0 {
		return nil, fmt.Errorf("product_numbers must not be empty")
	}

	products, err := s.resolveProducts(ctx, req.ProductNumbers)
	if err != nil {
		return nil, err
	}

	deductions := stock.DeductionCounts(products)
	o := NewOrder(products, registeredAt)

	if err := s.repo.CreateOrder(ctx, o, deductions); err != nil {
		return nil, err
	}
	return o, nil
}

// resolveProducts turns the requested numbers into one product reference per
// requested unit. The store fetch collapses duplicates, so the requested
// list is re-expanded through a number-keyed index instead of being returned
// as fetched.
func (s *service) resolveProducts(ctx context.Context, productNumbers []string) ([]*catalog.Product, error) {
	found, err := s.repo.FindProductsByNumberIn(ctx, productNumbers)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	index := make(map[string]*catalog.Product, len(found))
	for _, p := range found {
		index[p.ProductNumber] = p
	}

	products := make([]*catalog.Product, 0, len(productNumbers))
	for _, number := range productNumbers {
		p, ok := index[number]
		if !ok {
			return nil, fmt.Errorf("product %s: %w", number, ErrProductNotFound)
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	newStatus := OrderStatus(strings.ToUpper(req.Status))
	valid := false
	for _, allowed := range validTransitions[o.Status] {
		if allowed == newStatus {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("cannot transition order from %s to %s", o.Status, newStatus)
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	o.Status = newStatus
	return o, nil
}
