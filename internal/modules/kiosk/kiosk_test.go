package kiosk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafekiosk/cafekiosk-backend/internal/modules/catalog"
)

var (
	americano = &catalog.Product{ProductNumber: "001", Type: catalog.TypeHandmade, Name: "americano", Price: 4000}
	latte     = &catalog.Product{ProductNumber: "002", Type: catalog.TypeHandmade, Name: "latte", Price: 4500}
)

func TestAdd(t *testing.T) {
	k := New()

	require.NoError(t, k.Add(americano, 1))
	require.NoError(t, k.Add(latte, 2))

	assert.Equal(t, 13000, k.TotalPrice())
}

func TestAddRejectsNonPositiveCount(t *testing.T) {
	k := New()

	assert.Error(t, k.Add(americano, 0))
	assert.Error(t, k.Add(americano, -1))
	assert.Equal(t, 0, k.TotalPrice())
}

func TestRemove(t *testing.T) {
	k := New()
	require.NoError(t, k.Add(americano, 2))

	k.Remove(americano)

	assert.Equal(t, 4000, k.TotalPrice(), "only one unit is removed")
}

func TestClear(t *testing.T) {
	k := New()
	require.NoError(t, k.Add(americano, 1))
	require.NoError(t, k.Add(latte, 1))

	k.Clear()

	assert.Equal(t, 0, k.TotalPrice())
}

func TestCreateOrderPreservesDuplicates(t *testing.T) {
	k := New()
	require.NoError(t, k.Add(americano, 2))
	require.NoError(t, k.Add(latte, 1))

	req, err := k.CreateOrder(time.Date(2024, 8, 6, 12, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, []string{"001", "001", "002"}, req.ProductNumbers)
}

func TestCreateOrderShopHours(t *testing.T) {
	k := New()
	require.NoError(t, k.Add(americano, 1))

	cases := []struct {
		name string
		at   time.Time
		open bool
	}{
		{"right at open", time.Date(2024, 8, 6, 10, 0, 0, 0, time.UTC), true},
		{"one minute before open", time.Date(2024, 8, 6, 9, 59, 0, 0, time.UTC), false},
		{"right at close", time.Date(2024, 8, 6, 22, 0, 0, 0, time.UTC), true},
		{"one minute after close", time.Date(2024, 8, 6, 22, 1, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := k.CreateOrder(tc.at)
			if tc.open {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrShopClosed)
			}
		})
	}
}
