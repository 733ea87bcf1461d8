package order

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafekiosk/cafekiosk-backend/internal/modules/catalog"
)

func TestNewOrder(t *testing.T) {
	registeredAt := time.Date(2024, 8, 6, 14, 30, 0, 0, time.UTC)
	products := []*catalog.Product{
		{ProductNumber: "001", Type: catalog.TypeHandmade, Price: 1000},
		{ProductNumber: "001", Type: catalog.TypeHandmade, Price: 1000},
		{ProductNumber: "002", Type: catalog.TypeBakery, Price: 3000},
	}

	o := NewOrder(products, registeredAt)

	assert.NotEqual(t, uuid.Nil, o.ID)
	assert.Equal(t, StatusInit, o.Status)
	assert.Equal(t, registeredAt, o.RegisteredAt)
	assert.Equal(t, 5000, o.TotalPrice)

	require.Len(t, o.LineItems, len(products))
	for i, item := range o.LineItems {
		assert.Equal(t, o.ID, item.OrderID)
		assert.Equal(t, products[i].ProductNumber, item.ProductNumber)
		assert.Equal(t, products[i].Price, item.Price)
	}
}

func TestNewOrderPriceSnapshot(t *testing.T) {
	p := &catalog.Product{ProductNumber: "001", Price: 1000}
	o := NewOrder([]*catalog.Product{p}, time.Now())

	p.Price = 9999

	assert.Equal(t, 1000, o.LineItems[0].Price, "line item keeps the price at order time")
	assert.Equal(t, 1000, o.TotalPrice)
}
