package order

import (
	"context"

	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/fekuna/omnipos-poultry-service/internal/order/dto"
)

type Repository interface {
	// CreateWithItems inserts the order and its items and decrements product
	// stock in a single transaction. Nothing is written if any step fails.
	CreateWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindItems(ctx context.Context, orderID string) ([]model.OrderItem, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
}
