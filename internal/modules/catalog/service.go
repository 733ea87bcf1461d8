package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Service defines catalog business logic.
type Service interface {
	// CreateProduct registers a product under the next sequential product
	// number.
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)

	// GetSellingProducts lists the products whose selling status is
	// displayable on the menu board.
	GetSellingProducts(ctx context.Context) ([]*Product, error)
}

type service struct{ repo Repository }

// NewService creates a new catalog service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("price must be positive")
	}

	productType := ProductType(strings.ToUpper(req.Type))
	switch productType {
	case TypeHandmade, TypeBottle, TypeBakery:
	default:
		return nil, fmt.Errorf("invalid product type: %s (allowed: HANDMADE, BOTTLE, BAKERY)", req.Type)
	}

	status := SellingStatus(strings.ToUpper(req.SellingStatus))
	switch status {
	case SellingStatusSelling, SellingStatusHold, SellingStatusStop:
	default:
		return nil, fmt.Errorf("invalid selling status: %s (allowed: SELLING, HOLD, STOP_SELLING)", req.SellingStatus)
	}

	number, err := s.nextProductNumber(ctx)
	if err != nil {
		return nil, err
	}

	p := &Product{
		ID:            uuid.New(),
		ProductNumber: number,
		Type:          productType,
		SellingStatus: status,
		Name:          req.Name,
		Price:         req.Price,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to persist product: %w", err)
	}
	return p, nil
}

func (s *service) GetSellingProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.FindAllBySellingStatusIn(ctx, DisplayStatuses())
}

// nextProductNumber assigns latest + 1 zero-padded to three digits, "001"
// when the catalog is empty. Two concurrent creates can race on the same
// number; the unique index on product_number rejects the loser.
func (s *service) nextProductNumber(ctx context.Context) (string, error) {
	latest, err := s.repo.FindLatestProductNumber(ctx)
	if err != nil {
		return "", err
	}
	if latest == "" {
		return "001", nil
	}
	n, err := strconv.Atoi(latest)
	if err != nil {
		return "", fmt.Errorf("malformed latest product number %q: %w", latest, err)
	}
	return fmt.Sprintf("%03d", n+1), nil
}
