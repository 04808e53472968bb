package dashboard

import (
	"context"

	"github.com/fekuna/omnipos-poultry-service/internal/dashboard/dto"
)

type UseCase interface {
	Summary(ctx context.Context) (*dto.Summary, error)
	MonthlySales(ctx context.Context) ([]dto.MonthlySales, error)
	StockByCategory(ctx context.Context) ([]dto.CategoryStock, error)
}
