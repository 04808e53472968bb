package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-poultry-service/internal/apperror"
	"github.com/fekuna/omnipos-poultry-service/internal/feed"
	"github.com/fekuna/omnipos-poultry-service/internal/feed/dto"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/google/uuid"
)

type feedUseCase struct {
	repo   feed.Repository
	logger logger.ZapLogger
}

func NewFeedUseCase(repo feed.Repository, log logger.ZapLogger) feed.UseCase {
	return &feedUseCase{repo: repo, logger: log}
}

func (uc *feedUseCase) CreateFeed(ctx context.Context, input *dto.CreateFeedInput) (*model.Feed, error) {
	name, category, err := validateFields(input.Name, input.Category, input.Level)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	f := &model.Feed{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      name,
		Category:  category,
		Level:     input.Level,
	}
	if err := uc.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (uc *feedUseCase) GetFeed(ctx context.Context, id string) (*model.Feed, error) {
	f, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, apperror.NotFound("feed", id)
	}
	return f, nil
}

func (uc *feedUseCase) ListFeeds(ctx context.Context, filters *dto.FeedFilters) ([]model.Feed, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *feedUseCase) UpdateFeed(ctx context.Context, input *dto.UpdateFeedInput) (*model.Feed, error) {
	name, category, err := validateFields(input.Name, input.Category, input.Level)
	if err != nil {
		return nil, err
	}

	f, err := uc.GetFeed(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	f.Name = name
	f.Category = category
	f.Level = input.Level
	f.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (uc *feedUseCase) DeleteFeed(ctx context.Context, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("feed", id)
	}
	return nil
}

func validateFields(name, category string, level int) (string, string, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	switch {
	case name == "":
		return "", "", apperror.Validation("feed name is required")
	case category == "":
		return "", "", apperror.Validation("feed category is required")
	case level < 0:
		return "", "", apperror.Validationf("level must not be negative, got %d", level)
	}
	return name, category, nil
}
