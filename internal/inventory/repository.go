package inventory

import (
	"context"

	"github.com/fekuna/omnipos-poultry-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
)

type Repository interface {
	GetLevel(ctx context.Context, itemType model.ItemType, itemID string) (*model.StockLevel, error)
	ListLowStock(ctx context.Context, threshold int) ([]model.StockLevel, error)

	// AdjustStockWithMovement applies movement.QuantityChange and records the
	// movement in one transaction, filling in the before and after figures.
	AdjustStockWithMovement(ctx context.Context, movement *model.StockMovement) error
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}
