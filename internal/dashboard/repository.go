package dashboard

import (
	"context"

	"github.com/fekuna/omnipos-poultry-service/internal/dashboard/dto"
)

type Repository interface {
	Counts(ctx context.Context) (*dto.Summary, error)
	OrderTotals(ctx context.Context) ([]dto.OrderTotal, error)
	StockByCategory(ctx context.Context) ([]dto.CategoryStock, error)
}
