package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-poultry-service/internal/apperror"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, stock int, price string) *model.Product {
	return &model.Product{
		BaseModel: model.BaseModel{ID: id},
		Name:      "product " + id,
		Category:  "Chicken",
		Stock:     stock,
		Price:     decimal.RequireFromString(price),
	}
}

var tenPercent = decimal.RequireFromString("0.10")

func TestAddItem_SubtotalIsPriceTimesQuantity(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(product("a", 10, "5.00"), 4))

	totals := c.ComputeTotals(tenPercent)
	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, totals.Tax.Equal(decimal.RequireFromString("2.00")))
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("22.00")))
}

func TestAddItem_MergesSameProduct(t *testing.T) {
	c := New()
	p := product("a", 10, "5.00")

	require.NoError(t, c.AddItem(p, 3))
	require.NoError(t, c.AddItem(p, 4))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 7, lines[0].Quantity)
	assert.Equal(t, 7, c.Reserved("a"))

	available, ok := c.Available("a")
	require.True(t, ok)
	assert.Equal(t, 3, available)
}

func TestAddItem_KeepsFirstCapturedPrice(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(product("a", 10, "5.00"), 1))
	require.NoError(t, c.AddItem(product("a", 10, "6.00"), 1))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("5.00")))
}

func TestAddItem_RejectsBadQuantities(t *testing.T) {
	c := New()
	p := product("a", 5, "1.00")

	assert.ErrorIs(t, c.AddItem(p, 0), apperror.ErrInvalidQuantity)
	assert.ErrorIs(t, c.AddItem(p, -2), apperror.ErrInvalidQuantity)
	assert.ErrorIs(t, c.AddItem(p, 6), apperror.ErrInsufficientStock)

	require.NoError(t, c.AddItem(p, 5))
	err := c.AddItem(p, 1)
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "available 0")

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity, "a rejected add must leave the cart unchanged")
}

func TestAddItem_UsesRefreshedStock(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(product("a", 10, "1.00"), 6))

	// Someone else sold 6 in the meantime.
	err := c.AddItem(product("a", 4, "1.00"), 1)
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
}

func TestRemoveItem_RestoresAvailableStock(t *testing.T) {
	c := New()
	p := product("a", 10, "2.50")

	require.NoError(t, c.AddItem(p, 4))
	before, _ := c.Available("a")

	removed, err := c.RemoveItem("a")
	require.NoError(t, err)
	assert.Equal(t, 4, removed.Quantity)

	restored, ok := c.Available("a")
	require.True(t, ok)
	assert.Equal(t, 10, restored)

	require.NoError(t, c.AddItem(p, 4))
	again, _ := c.Available("a")
	assert.Equal(t, before, again)

	_, err = c.RemoveItem("missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestClear(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(product("a", 10, "1.00"), 2))
	require.NoError(t, c.AddItem(product("b", 10, "1.00"), 3))
	require.False(t, c.IsEmpty())

	c.Clear()

	assert.True(t, c.IsEmpty())
	available, _ := c.Available("b")
	assert.Equal(t, 10, available)
}

func TestLines_PreserveInsertionOrderAndAreCopies(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(product("b", 10, "1.00"), 1))
	require.NoError(t, c.AddItem(product("a", 10, "1.00"), 1))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "b", lines[0].ProductID)
	assert.Equal(t, "a", lines[1].ProductID)

	lines[0].Quantity = 99
	assert.Equal(t, 1, c.Reserved("b"))
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		lines    []Line
		rate     string
		subtotal string
		tax      string
		total    string
	}{
		{
			name:  "two lines at ten percent",
			lines: []Line{
				{ProductID: "a", UnitPrice: decimal.RequireFromString("5.00"), Quantity: 10},
				{ProductID: "b", UnitPrice: decimal.RequireFromString("7.50"), Quantity: 2},
			},
			rate:     "0.10",
			subtotal: "65.00",
			tax:      "6.50",
			total:    "71.50",
		},
		{
			name:     "tax rounds half up to cents",
			lines:    []Line{{ProductID: "a", UnitPrice: decimal.RequireFromString("0.25"), Quantity: 1}},
			rate:     "0.10",
			subtotal: "0.25",
			tax:      "0.03",
			total:    "0.28",
		},
		{
			name:     "empty",
			rate:     "0.10",
			subtotal: "0",
			tax:      "0",
			total:    "0",
		},
		{
			name:     "zero rate",
			lines:    []Line{{ProductID: "a", UnitPrice: decimal.RequireFromString("3.33"), Quantity: 3}},
			rate:     "0",
			subtotal: "9.99",
			tax:      "0",
			total:    "9.99",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.lines, decimal.RequireFromString(tt.rate))
			assert.True(t, got.Subtotal.Equal(decimal.RequireFromString(tt.subtotal)), got.Subtotal.String())
			assert.True(t, got.Tax.Equal(decimal.RequireFromString(tt.tax)), got.Tax.String())
			assert.True(t, got.Total.Equal(decimal.RequireFromString(tt.total)), got.Total.String())
		})
	}
}

func TestCart_ConcurrentAddsNeverOverReserve(t *testing.T) {
	c := New()
	p := product("a", 50, "1.00")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.AddItem(p, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, c.Reserved("a"))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	a := r.Get("user-a")
	assert.Same(t, a, r.Get("user-a"))
	assert.NotSame(t, a, r.Get("user-b"))
	assert.Equal(t, 2, r.Len())

	r.Drop("user-a")
	assert.NotSame(t, a, r.Get("user-a"))
}

func TestRegistry_SweepDropsIdleCarts(t *testing.T) {
	r := NewRegistry()
	clock := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }

	stale := r.Get("user-expired")
	r.Get("user-active")

	clock = clock.Add(13 * time.Hour)
	r.Get("user-active")

	assert.Equal(t, 1, r.Sweep(12*time.Hour))
	assert.Equal(t, 1, r.Len())
	assert.NotSame(t, stale, r.Get("user-expired"))
	assert.Zero(t, r.Sweep(12*time.Hour))
}

func TestRegistry_RunSweeperStopsWithContext(t *testing.T) {
	r := NewRegistry()
	r.Get("user-a")

	ctx, cancel := context.WithCancel(context.Background())
	swept := make(chan int, 1)
	done := make(chan struct{})
	go func() {
		r.RunSweeper(ctx, time.Millisecond, 0, func(n int) {
			select {
			case swept <- n:
			default:
			}
		})
		close(done)
	}()

	select {
	case n := <-swept:
		assert.Equal(t, 1, n)
	case <-time.After(time.Second):
		t.Fatal("sweeper never ran")
	}
	cancel()
	<-done
	assert.Zero(t, r.Len())
}

func TestCheckout_ClearsOnlyOnSuccess(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(product("a", 10, "5.00"), 2))

	failed := errors.New("store unavailable")
	err := c.Checkout(func(lines []Line) error {
		require.Len(t, lines, 1)
		return failed
	})
	assert.ErrorIs(t, err, failed)
	assert.Equal(t, 2, c.Reserved("a"))

	var placed []Line
	require.NoError(t, c.Checkout(func(lines []Line) error {
		placed = lines
		return nil
	}))
	assert.Len(t, placed, 1)
	assert.True(t, c.IsEmpty())
}

func TestCheckout_HoldsCartWhilePlacing(t *testing.T) {
	c := New()
	p := product("a", 10, "5.00")
	require.NoError(t, c.AddItem(p, 2))

	entered := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = c.Checkout(func([]Line) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	var secondSaw []Line
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = c.Checkout(func(lines []Line) error {
			secondSaw = lines
			return nil
		})
	}()
	go func() {
		defer wg.Done()
		_ = c.AddItem(p, 1)
	}()

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	placedAgain := 0
	for _, l := range secondSaw {
		placedAgain += l.Quantity
	}
	assert.LessOrEqual(t, placedAgain, 1, "the first checkout's lines are never placed twice")
	assert.Equal(t, 1, placedAgain+c.Reserved("a"), "the concurrent add is kept")
}
