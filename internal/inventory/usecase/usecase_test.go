package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fekuna/omnipos-poultry-service/internal/apperror"
	"github.com/fekuna/omnipos-poultry-service/internal/cache"
	"github.com/fekuna/omnipos-poultry-service/internal/database/dbtest"
	feedrepo "github.com/fekuna/omnipos-poultry-service/internal/feed/repository"
	"github.com/fekuna/omnipos-poultry-service/internal/inventory"
	"github.com/fekuna/omnipos-poultry-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-poultry-service/internal/inventory/repository"
	"github.com/fekuna/omnipos-poultry-service/internal/inventory/usecase"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
	productrepo "github.com/fekuna/omnipos-poultry-service/internal/product/repository"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db          *sqlx.DB
	uc          inventory.UseCase
	mr          *miniredis.Miniredis
	invalidated int
	adjusted    []string
	product     *model.Product
	feed        *model.Feed
}

func (f *fixture) InvalidateListCache(context.Context) { f.invalidated++ }
func (f *fixture) StockAdjusted(itemType, movementType string) {
	f.adjusted = append(f.adjusted, itemType+"/"+movementType)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{db: dbtest.NewSQLite(t), mr: miniredis.RunT(t)}

	rc, err := cache.NewRedisClient(&cache.Config{Addr: f.mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { rc.Close() })

	now := time.Now().UTC()
	f.product = &model.Product{
		BaseModel: model.BaseModel{ID: "p-wings", CreatedAt: now, UpdatedAt: now},
		Name:      "Chicken Wings",
		Category:  "Chicken",
		Stock:     10,
		Price:     decimal.NewFromInt(4),
	}
	require.NoError(t, productrepo.NewSQLRepository(f.db).Create(ctx, f.product))

	f.feed = &model.Feed{
		BaseModel: model.BaseModel{ID: "f-layer", CreatedAt: now, UpdatedAt: now},
		Name:      "Layer Mash",
		Category:  "Layer",
		Level:     30,
	}
	require.NoError(t, feedrepo.NewSQLRepository(f.db).Create(ctx, f.feed))

	f.uc = usecase.NewInventoryUseCase(repository.NewSQLRepository(f.db), rc, f, f, 20, logger.NewNop())
	return f
}

func (f *fixture) level(t *testing.T, itemType model.ItemType, id string) int {
	t.Helper()
	lvl, err := repository.NewSQLRepository(f.db).GetLevel(context.Background(), itemType, id)
	require.NoError(t, err)
	require.NotNil(t, lvl)
	return lvl.Level
}

func TestAdjustStock_ProductAndFeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m, err := f.uc.AdjustStock(ctx, &dto.AdjustStockInput{
		ItemType: model.ItemProduct, ItemID: f.product.ID, Change: 5, Notes: "recount", UserID: "u-1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.MovementAdjustment, m.MovementType)
	assert.Equal(t, 10, m.QuantityBefore)
	assert.Equal(t, 15, m.QuantityAfter)
	assert.Equal(t, 15, f.level(t, model.ItemProduct, f.product.ID))
	assert.Equal(t, 1, f.invalidated)

	m, err = f.uc.AdjustStock(ctx, &dto.AdjustStockInput{ItemType: model.ItemFeed, ItemID: f.feed.ID, Change: -12})
	require.NoError(t, err)
	assert.Equal(t, 30, m.QuantityBefore)
	assert.Equal(t, 18, m.QuantityAfter)
	assert.Equal(t, 1, f.invalidated, "feed changes do not touch the product cache")
	assert.Equal(t, []string{"product/adjustment", "feed/adjustment"}, f.adjusted)

	movements, count, err := f.uc.ListMovements(ctx, &dto.MovementFilters{ItemType: model.ItemFeed})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, movements, 1)
	assert.Equal(t, -12, movements[0].QuantityChange)
	assert.Nil(t, movements[0].CreatedBy)

	assert.Empty(t, f.mr.Keys(), "locks are released")
}

func TestAdjustStock_RejectsNegativeResultWithoutWriting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.AdjustStock(ctx, &dto.AdjustStockInput{ItemType: model.ItemProduct, ItemID: f.product.ID, Change: -11})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, 10, f.level(t, model.ItemProduct, f.product.ID))

	_, count, err := f.uc.ListMovements(ctx, &dto.MovementFilters{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAdjustStock_InputErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input dto.AdjustStockInput
		want  error
	}{
		{"zero change", dto.AdjustStockInput{ItemType: model.ItemProduct, ItemID: f.product.ID}, apperror.ErrValidation},
		{"unknown item type", dto.AdjustStockInput{ItemType: "egg", ItemID: "x", Change: 1}, apperror.ErrValidation},
		{"negative restock", dto.AdjustStockInput{ItemType: model.ItemFeed, ItemID: f.feed.ID, Change: -1, MovementType: model.MovementRestock}, apperror.ErrValidation},
		{"sale is not manual", dto.AdjustStockInput{ItemType: model.ItemFeed, ItemID: f.feed.ID, Change: -1, MovementType: model.MovementSale}, apperror.ErrValidation},
		{"missing item", dto.AdjustStockInput{ItemType: model.ItemProduct, ItemID: "nope", Change: 1}, apperror.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.AdjustStock(ctx, &tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAdjustStock_BusyLock(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.mr.Set("lock:inventory:product:"+f.product.ID, "someone-else"))

	_, err := f.uc.AdjustStock(context.Background(), &dto.AdjustStockInput{ItemType: model.ItemProduct, ItemID: f.product.ID, Change: 1})
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, 10, f.level(t, model.ItemProduct, f.product.ID))

	got, err := f.mr.Get("lock:inventory:product:" + f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got, "a foreign lock must not be released")
}

type countingLocker struct {
	cache.Noop
	attempts int
}

func (l *countingLocker) AcquireLock(context.Context, string, string, time.Duration) (bool, error) {
	l.attempts++
	return false, nil
}

func TestAdjustStock_BusyLockGivesUpWithoutTrailingWait(t *testing.T) {
	f := newFixture(t)
	locker := &countingLocker{}
	uc := usecase.NewInventoryUseCase(repository.NewSQLRepository(f.db), locker, f, f, 20, logger.NewNop())

	start := time.Now()
	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{ItemType: model.ItemProduct, ItemID: f.product.ID, Change: 1})
	elapsed := time.Since(start)

	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, 3, locker.attempts)
	assert.Less(t, elapsed, 300*time.Millisecond, "two waits between three attempts, none after the last")
}

func TestAdjustStock_BusyLockStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	locker := &countingLocker{}
	uc := usecase.NewInventoryUseCase(repository.NewSQLRepository(f.db), locker, f, f, 20, logger.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := uc.AdjustStock(ctx, &dto.AdjustStockInput{ItemType: model.ItemProduct, ItemID: f.product.ID, Change: 1})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, locker.attempts)
	assert.Equal(t, 10, f.level(t, model.ItemProduct, f.product.ID))
}

func TestListLowStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	levels, err := f.uc.ListLowStock(ctx, -1)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, model.ItemProduct, levels[0].ItemType)
	assert.Equal(t, "Chicken Wings", levels[0].Name)

	levels, err = f.uc.ListLowStock(ctx, 30)
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, 10, levels[0].Level)
	assert.Equal(t, model.ItemFeed, levels[1].ItemType)
}
