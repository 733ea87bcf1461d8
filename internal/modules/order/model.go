package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/cafekiosk/cafekiosk-backend/internal/modules/catalog"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusInit             OrderStatus = "INIT"
	StatusCanceled         OrderStatus = "CANCELED"
	StatusPaymentCompleted OrderStatus = "PAYMENT_COMPLETED"
	StatusPaymentFailed    OrderStatus = "PAYMENT_FAILED"
	StatusReceived         OrderStatus = "RECEIVED"
	StatusCompleted        OrderStatus = "COMPLETED"
)

// Order is a customer's order: one line item per requested unit and a total
// equal to the sum of the line-item prices.
type Order struct {
	ID           uuid.UUID   `json:"id"`
	Status       OrderStatus `json:"status"`
	TotalPrice   int         `json:"total_price"`
	RegisteredAt time.Time   `json:"registered_at"`
	LineItems    []*LineItem `json:"line_items,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// LineItem is one requested unit of a product, carrying the price as it was
// at order time. Later catalog price changes do not touch it.
type LineItem struct {
	ID            uuid.UUID `json:"id"`
	OrderID       uuid.UUID `json:"order_id"`
	ProductNumber string    `json:"product_number"`
	Price         int       `json:"price"`
}

// NewOrder builds the order aggregate for a resolved product list: one line
// item per element, duplicates included, total = sum of price snapshots.
// registeredAt is supplied by the caller, never sampled here.
func NewOrder(products []*catalog.Product, registeredAt time.Time) *Order {
	o := &Order{
		ID:           uuid.New(),
		Status:       StatusInit,
		RegisteredAt: registeredAt,
	}
	for _, p := range products {
		o.LineItems = append(o.LineItems, &LineItem{
			ID:            uuid.New(),
			OrderID:       o.ID,
			ProductNumber: p.ProductNumber,
			Price:         p.Price,
		})
		o.TotalPrice += p.Price
	}
	return o
}

// CreateOrderRequest is the payload for placing an order. Duplicate product
// numbers are separate units of the same product.
type CreateOrderRequest struct {
	ProductNumbers []string `json:"product_numbers"`
}

// UpdateStatusRequest is the payload for advancing an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
