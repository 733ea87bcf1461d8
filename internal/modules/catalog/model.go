package catalog

import (
	"time"

	"github.com/google/uuid"
)

// ProductType classifies how a product is prepared, which decides whether
// inventory is tracked for it.
type ProductType string

const (
	TypeHandmade ProductType = "HANDMADE"
	TypeBottle   ProductType = "BOTTLE"
	TypeBakery   ProductType = "BAKERY"
)

// IsStockTracked reports whether stock accounting applies to the type.
// Handmade drinks are made to order and carry no stock row.
func (t ProductType) IsStockTracked() bool {
	return t == TypeBottle || t == TypeBakery
}

// SellingStatus indicates whether a product can currently be sold.
type SellingStatus string

const (
	SellingStatusSelling SellingStatus = "SELLING"
	SellingStatusHold    SellingStatus = "HOLD"
	SellingStatusStop    SellingStatus = "STOP_SELLING"
)

// DisplayStatuses returns the selling statuses shown on the menu board.
func DisplayStatuses() []SellingStatus {
	return []SellingStatus{SellingStatusSelling, SellingStatusHold}
}

// Product is an entry in the cafe's menu catalog. The product number is the
// stable business key; orders reference it, never the row id.
type Product struct {
	ID            uuid.UUID     `json:"id"`
	ProductNumber string        `json:"product_number"`
	Type          ProductType   `json:"type"`
	SellingStatus SellingStatus `json:"selling_status"`
	Name          string        `json:"name"`
	Price         int           `json:"price"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// CreateProductRequest is the payload for registering a menu product.
type CreateProductRequest struct {
	Type          string `json:"type"`
	SellingStatus string `json:"selling_status"`
	Name          string `json:"name"`
	Price         int    `json:"price"`
}
