package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-poultry-service/internal/dashboard"
	"github.com/fekuna/omnipos-poultry-service/internal/dashboard/repository"
	"github.com/fekuna/omnipos-poultry-service/internal/dashboard/usecase"
	"github.com/fekuna/omnipos-poultry-service/internal/database/dbtest"
	feedrepo "github.com/fekuna/omnipos-poultry-service/internal/feed/repository"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
	orderrepo "github.com/fekuna/omnipos-poultry-service/internal/order/repository"
	productrepo "github.com/fekuna/omnipos-poultry-service/internal/product/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T) (dashboard.UseCase, *sqlx.DB) {
	t.Helper()
	db := dbtest.NewSQLite(t)
	return usecase.NewDashboardUseCase(repository.NewSQLRepository(db), logger.NewNop()), db
}

func seedCatalog(t *testing.T, db *sqlx.DB) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	products := productrepo.NewSQLRepository(db)
	for _, p := range []struct {
		name, category string
		stock          int
	}{
		{"Whole Chicken", "Chicken", 20},
		{"Chicken Wings", "Chicken", 15},
		{"Duck Eggs", "Eggs", 40},
	} {
		require.NoError(t, products.Create(ctx, &model.Product{
			BaseModel: model.BaseModel{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
			Name:      p.name,
			Category:  p.category,
			Stock:     p.stock,
			Price:     decimal.NewFromInt(3),
		}))
	}

	require.NoError(t, feedrepo.NewSQLRepository(db).Create(ctx, &model.Feed{
		BaseModel: model.BaseModel{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		Name:      "Layer Mash",
		Category:  "Layer",
		Level:     12,
	}))
}

func seedOrder(t *testing.T, db *sqlx.DB, at time.Time, total string) {
	t.Helper()
	err := orderrepo.NewSQLRepository(db).CreateWithItems(context.Background(), &model.Order{
		ID:           uuid.NewString(),
		CustomerName: "Maria",
		OrderDate:    at,
		Subtotal:     decimal.RequireFromString(total),
		Tax:          decimal.Zero,
		Total:        decimal.RequireFromString(total),
		TaxRate:      decimal.Zero,
	}, nil)
	require.NoError(t, err)
}

func TestSummary(t *testing.T) {
	uc, db := newUseCase(t)
	ctx := context.Background()

	s, err := uc.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, s.Orders)
	assert.True(t, s.Revenue.IsZero())

	seedCatalog(t, db)
	seedOrder(t, db, time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), "71.50")
	seedOrder(t, db, time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC), "0.10")
	seedOrder(t, db, time.Date(2026, 1, 21, 10, 0, 0, 0, time.UTC), "0.20")

	s, err = uc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Products)
	assert.Equal(t, 1, s.Feeds)
	assert.Equal(t, 0, s.Users)
	assert.Equal(t, 3, s.Orders)
	assert.True(t, s.Revenue.Equal(decimal.RequireFromString("71.80")), s.Revenue.String())
}

func TestMonthlySales_AscendingByMonth(t *testing.T) {
	uc, db := newUseCase(t)

	seedOrder(t, db, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), "10.00")
	seedOrder(t, db, time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC), "4.00")
	seedOrder(t, db, time.Date(2026, 3, 28, 9, 0, 0, 0, time.UTC), "2.50")
	seedOrder(t, db, time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC), "7.25")

	months, err := uc.MonthlySales(context.Background())
	require.NoError(t, err)
	require.Len(t, months, 3)

	assert.Equal(t, "2025-12", months[0].Month)
	assert.Equal(t, "2026-01", months[1].Month)
	assert.Equal(t, "2026-03", months[2].Month)
	assert.Equal(t, 2, months[2].Orders)
	assert.True(t, months[2].Total.Equal(decimal.RequireFromString("12.50")), months[2].Total.String())
}

func TestStockByCategory(t *testing.T) {
	uc, db := newUseCase(t)
	seedCatalog(t, db)

	rows, err := uc.StockByCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Chicken", rows[0].Category)
	assert.Equal(t, 2, rows[0].Products)
	assert.Equal(t, 35, rows[0].Stock)
	assert.Equal(t, "Eggs", rows[1].Category)
	assert.Equal(t, 40, rows[1].Stock)
}
