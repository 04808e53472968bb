package feed

import (
	"context"

	"github.com/fekuna/omnipos-poultry-service/internal/feed/dto"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, feed *model.Feed) error
	FindByID(ctx context.Context, id string) (*model.Feed, error)
	FindAll(ctx context.Context, filters *dto.FeedFilters) ([]model.Feed, int, error)
	Update(ctx context.Context, feed *model.Feed) error
	Delete(ctx context.Context, id string) (bool, error)
}
