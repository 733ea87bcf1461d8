package kiosk

import (
	"errors"
	"fmt"
	"time"

	"github.com/cafekiosk/cafekiosk-backend/internal/modules/catalog"
	"github.com/cafekiosk/cafekiosk-backend/internal/modules/order"
)

// ErrShopClosed is returned when checkout is attempted outside shop hours.
var ErrShopClosed = errors.New("shop is closed")

// Shop hours. Checkout at exactly open or close time is allowed.
const (
	OpenHour  = 10
	CloseHour = 22
)

// Kiosk is the front-of-house cart. It accumulates products as the customer
// taps them and turns the cart into an order request at checkout. The
// order-of-record path does not re-check shop hours; this is the only gate.
type Kiosk struct {
	products []*catalog.Product
}

func New() *Kiosk { return &Kiosk{} }

// Add puts count units of the product into the cart.
func (k *Kiosk) Add(p *catalog.Product, count int) error {
	if count <= 0 {
		return fmt.Errorf("count must be at least 1")
	}
	for i := 0; i < count; i++ {
		k.products = append(k.products, p)
	}
	return nil
}

// Remove takes one unit of the product out of the cart.
func (k *Kiosk) Remove(p *catalog.Product) {
	for i, item := range k.products {
		if item.ProductNumber == p.ProductNumber {
			k.products = append(k.products[:i], k.products[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (k *Kiosk) Clear() { k.products = nil }

// TotalPrice sums the prices of everything in the cart.
func (k *Kiosk) TotalPrice() int {
	total := 0
	for _, p := range k.products {
		total += p.Price
	}
	return total
}

// CreateOrder validates shop hours and emits the order request for the cart
// contents, one product number per unit in tap order.
func (k *Kiosk) CreateOrder(at time.Time) (order.CreateOrderRequest, error) {
	if !withinShopHours(at) {
		return order.CreateOrderRequest{}, ErrShopClosed
	}
	numbers := make([]string, 0, len(k.products))
	for _, p := range k.products {
		numbers = append(numbers, p.ProductNumber)
	}
	return order.CreateOrderRequest{ProductNumbers: numbers}, nil
}

func withinShopHours(at time.Time) bool {
	open := time.Date(at.Year(), at.Month(), at.Day(), OpenHour, 0, 0, 0, at.Location())
	closing := time.Date(at.Year(), at.Month(), at.Day(), CloseHour, 0, 0, 0, at.Location())
	return !at.Before(open) && !at.After(closing)
}
