package inventory

import (
	"context"

	"github.com/fekuna/omnipos-poultry-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
)

type UseCase interface {
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.StockMovement, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
	// ListLowStock uses the configured threshold when threshold is negative.
	ListLowStock(ctx context.Context, threshold int) ([]model.StockLevel, error)
}
