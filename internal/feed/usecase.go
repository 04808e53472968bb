package feed

import (
	"context"

	"github.com/fekuna/omnipos-poultry-service/internal/feed/dto"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
)

type UseCase interface {
	CreateFeed(ctx context.Context, input *dto.CreateFeedInput) (*model.Feed, error)
	GetFeed(ctx context.Context, id string) (*model.Feed, error)
	ListFeeds(ctx context.Context, filters *dto.FeedFilters) ([]model.Feed, int, error)
	UpdateFeed(ctx context.Context, input *dto.UpdateFeedInput) (*model.Feed, error)
	DeleteFeed(ctx context.Context, id string) error
}
