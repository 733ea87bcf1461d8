package order

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafekiosk/cafekiosk-backend/internal/modules/catalog"
	"github.com/cafekiosk/cafekiosk-backend/internal/modules/stock"
)

func setup(t *testing.T) (Service, *mockRepository) {
	t.Helper()
	repo := newMockRepository()
	return NewService(repo), repo
}

func TestCreateOrder(t *testing.T) {
	svc, repo := setup(t)
	repo.addProduct("001", catalog.TypeHandmade, 1000)
	repo.addProduct("002", catalog.TypeHandmade, 3000)
	repo.addProduct("003", catalog.TypeHandmade, 5000)
	registeredAt := time.Date(2024, 8, 6, 12, 0, 0, 0, time.UTC)

	o, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		ProductNumbers: []string{"001", "002"},
	}, registeredAt)

	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, StatusInit, o.Status)
	assert.Equal(t, 4000, o.TotalPrice)
	assert.Equal(t, registeredAt, o.RegisteredAt)
	assert.ElementsMatch(t, []lineItemView{{"001", 1000}, {"002", 3000}}, lineItemViews(o))

	saved, ok := repo.orders[o.ID.String()]
	require.True(t, ok)
	assert.Equal(t, o.TotalPrice, saved.TotalPrice)
}

func TestCreateOrderWithDuplicateProductNumbers(t *testing.T) {
	svc, repo := setup(t)
	repo.addProduct("001", catalog.TypeHandmade, 1000)

	o, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		ProductNumbers: []string{"001", "001"},
	}, time.Now())

	require.NoError(t, err)
	require.Len(t, o.LineItems, 2)
	assert.Equal(t, 2000, o.TotalPrice)
	assert.ElementsMatch(t, []lineItemView{{"001", 1000}, {"001", 1000}}, lineItemViews(o))
}

func TestCreateOrderTotalIgnoresRequestOrder(t *testing.T) {
	svc, repo := setup(t)
	repo.addProduct("001", catalog.TypeHandmade, 1000)
	repo.addProduct("002", catalog.TypeHandmade, 3000)

	first, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		ProductNumbers: []string{"001", "002"},
	}, time.Now())
	require.NoError(t, err)

	second, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		ProductNumbers: []string{"002", "001"},
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, first.TotalPrice, second.TotalPrice)
	assert.ElementsMatch(t, lineItemViews(first), lineItemViews(second))
}

func TestCreateOrderDeductsStock(t *testing.T) {
	svc, repo := setup(t)
	repo.addProduct("001", catalog.TypeBottle, 1000)
	repo.addProduct("002", catalog.TypeBakery, 3000)
	repo.addProduct("003", catalog.TypeHandmade, 5000)
	repo.setStock("001", 2)
	repo.setStock("002", 2)

	o, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		ProductNumbers: []string{"001", "001", "002", "003"},
	}, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 10000, o.TotalPrice)
	require.Len(t, o.LineItems, 4)
	assert.Equal(t, 0, repo.stocks["001"].Quantity)
	assert.Equal(t, 1, repo.stocks["002"].Quantity)
}

func TestCreateOrderStockAllOrNothing(t *testing.T) {
	svc, repo := setup(t)
	repo.addProduct("001", catalog.TypeBottle, 1000)
	repo.addProduct("002", catalog.TypeBakery, 3000)
	repo.setStock("001", 2)
	repo.setStock("002", 0)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		ProductNumbers: []string{"001", "002"},
	}, time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, stock.ErrInsufficient)
	assert.Equal(t, 2, repo.stocks["001"].Quantity, "passing product must stay untouched")
	assert.Empty(t, repo.orders, "no order may be persisted on a failed deduction")
}

func TestCreateOrderStockExhaustion(t *testing.T) {
	svc, repo := setup(t)
	repo.addProduct("001", catalog.TypeBottle, 1000)
	repo.setStock("001", 2)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		ProductNumbers: []string{"001", "001"},
	}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, repo.stocks["001"].Quantity)

	_, err = svc.CreateOrder(context.Background(), CreateOrderRequest{
		ProductNumbers: []string{"001"},
	}, time.Now())
	assert.ErrorIs(t, err, stock.ErrInsufficient)
}

func TestCreateOrderNonTrackedTypeNeedsNoStockRow(t *testing.T) {
	svc, repo := setup(t)
	repo.addProduct("001", catalog.TypeHandmade, 1000)

	for i := 0; i < 3; i++ {
		o, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
			ProductNumbers: []string{"001", "001", "001"},
		}, time.Now())
		require.NoError(t, err)
		assert.Equal(t, 3000, o.TotalPrice)
	}
}

func TestCreateOrderProductNotFound(t *testing.T) {
	svc, repo := setup(t)
	repo.addProduct("001", catalog.TypeHandmade, 1000)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		ProductNumbers: []string{"001", "999"},
	}, time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Contains(t, err.Error(), "999")
	assert.Empty(t, repo.orders)
}

func TestCreateOrderEmptyRequest(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{}, time.Now())
	require.Error(t, err)
}

func TestCreateOrderConcurrentDeductions(t *testing.T) {
	const n = 8
	svc, repo := setup(t)
	repo.addProduct("001", catalog.TypeBottle, 1000)
	repo.setStock("001", n)

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateOrder(context.Background(), CreateOrderRequest{
				ProductNumbers: []string{"001"},
			}, time.Now())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "order %d", i)
	}
	assert.Equal(t, 0, repo.stocks["001"].Quantity, "no overdraw, no lost update")
	assert.Len(t, repo.orders, n)
}

func TestUpdateStatus(t *testing.T) {
	svc, repo := setup(t)
	repo.addProduct("001", catalog.TypeHandmade, 1000)

	o, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		ProductNumbers: []string{"001"},
	}, time.Now())
	require.NoError(t, err)

	t.Run("valid transition", func(t *testing.T) {
		updated, err := svc.UpdateStatus(context.Background(), o.ID.String(), UpdateStatusRequest{
			Status: "PAYMENT_COMPLETED",
		})
		require.NoError(t, err)
		assert.Equal(t, StatusPaymentCompleted, updated.Status)
	})

	t.Run("invalid transition", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), o.ID.String(), UpdateStatusRequest{
			Status: "COMPLETED",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot transition")
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), "missing", UpdateStatusRequest{
			Status: "CANCELED",
		})
		require.Error(t, err)
	})
}

type lineItemView struct {
	ProductNumber string
	Price         int
}

func lineItemViews(o *Order) []lineItemView {
	views := make([]lineItemView, 0, len(o.LineItems))
	for _, item := range o.LineItems {
		views = append(views, lineItemView{item.ProductNumber, item.Price})
	}
	return views
}

var _ Repository = &mockRepository{}

// mockRepository keeps everything in maps and serializes CreateOrder under a
// mutex, standing in for the row locks the postgres repository takes.
type mockRepository struct {
	mu       sync.Mutex
	products map[string]*catalog.Product
	stocks   map[string]*stock.Stock
	orders   map[string]*Order
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		products: make(map[string]*catalog.Product),
		stocks:   make(map[string]*stock.Stock),
		orders:   make(map[string]*Order),
	}
}

func (m *mockRepository) addProduct(number string, productType catalog.ProductType, price int) {
	m.products[number] = &catalog.Product{
		ProductNumber: number,
		Type:          productType,
		SellingStatus: catalog.SellingStatusSelling,
		Name:          "menu item",
		Price:         price,
	}
}

func (m *mockRepository) setStock(number string, quantity int) {
	m.stocks[number] = &stock.Stock{ProductNumber: number, Quantity: quantity}
}

func (m *mockRepository) FindProductsByNumberIn(ctx context.Context, productNumbers []string) ([]*catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]bool)
	var found []*catalog.Product
	for _, number := range productNumbers {
		if seen[number] {
			continue
		}
		seen[number] = true
		if p, ok := m.products[number]; ok {
			found = append(found, p)
		}
	}
	return found, nil
}

func (m *mockRepository) CreateOrder(ctx context.Context, o *Order, deductions map[string]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	view := make(map[string]*stock.Stock, len(deductions))
	for number := range deductions {
		if s, ok := m.stocks[number]; ok {
			view[number] = s
		}
	}
	if err := stock.Apply(view, deductions); err != nil {
		return err
	}

	clone := *o
	m.orders[o.ID.String()] = &clone
	return nil
}

func (m *mockRepository) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s not found", id)
	}
	clone := *o
	return &clone, nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id string, status OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return errors.New("order not found")
	}
	o.Status = status
	return nil
}

func (m *mockRepository) FindPaymentCompletedOrdersBetween(ctx context.Context, from, to time.Time) ([]*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*Order
	for _, o := range m.orders {
		if o.Status != StatusPaymentCompleted {
			continue
		}
		if o.RegisteredAt.Before(from) || !o.RegisteredAt.Before(to) {
			continue
		}
		clone := *o
		result = append(result, &clone)
	}
	return result, nil
}
