package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-poultry-service/internal/apperror"
	"github.com/fekuna/omnipos-poultry-service/internal/cache"
	"github.com/fekuna/omnipos-poultry-service/internal/inventory"
	"github.com/fekuna/omnipos-poultry-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	lockAttempts = 3
	lockBackoff  = 100 * time.Millisecond
	lockTTL      = 5 * time.Second
)

// ProductCache is told when product stock changes so cached lists go stale.
type ProductCache interface {
	InvalidateListCache(ctx context.Context)
}

type Recorder interface {
	StockAdjusted(itemType, movementType string)
}

type inventoryUseCase struct {
	repo              inventory.Repository
	locker            cache.Locker
	products          ProductCache
	metrics           Recorder
	lowStockThreshold int
	logger            logger.ZapLogger
}

func NewInventoryUseCase(
	repo inventory.Repository,
	locker cache.Locker,
	products ProductCache,
	metrics Recorder,
	lowStockThreshold int,
	log logger.ZapLogger,
) inventory.UseCase {
	if locker == nil {
		locker = cache.Noop{}
	}
	return &inventoryUseCase{
		repo:              repo,
		locker:            locker,
		products:          products,
		metrics:           metrics,
		lowStockThreshold: lowStockThreshold,
		logger:            log,
	}
}

// acquireLock tries lockAttempts times, lockBackoff apart, and gives up early
// when ctx ends.
func (uc *inventoryUseCase) acquireLock(ctx context.Context, key, value string) error {
	for i := 0; i < lockAttempts; i++ {
		ok, err := uc.locker.AcquireLock(ctx, key, value, lockTTL)
		if err != nil {
			uc.logger.Error("failed to acquire lock redis error", zap.Error(err))
		}
		if ok {
			return nil
		}
		if i == lockAttempts-1 {
			break
		}

		timer := time.NewTimer(lockBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return apperror.Conflict("item is being adjusted elsewhere, try again")
}

func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.StockMovement, error) {
	movementType := input.MovementType
	if movementType == "" {
		movementType = model.MovementAdjustment
	}

	switch {
	case !input.ItemType.Valid():
		return nil, apperror.Validationf("item_type must be product or feed, got %q", input.ItemType)
	case input.ItemID == "":
		return nil, apperror.Validation("item_id is required")
	case input.Change == 0:
		return nil, apperror.Validation("quantity change must not be zero")
	case movementType != model.MovementAdjustment && movementType != model.MovementRestock:
		return nil, apperror.Validationf("movement_type must be adjustment or restock, got %q", movementType)
	case movementType == model.MovementRestock && input.Change < 0:
		return nil, apperror.Validation("restock quantity must be positive")
	}

	// 0. Acquire lock
	lockKey := fmt.Sprintf("lock:inventory:%s:%s", input.ItemType, input.ItemID)
	lockValue := uuid.New().String()
	if err := uc.acquireLock(ctx, lockKey, lockValue); err != nil {
		return nil, err
	}
	defer func() {
		if err := uc.locker.ReleaseLock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			uc.logger.Warn("failed to release inventory lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	var refID, createdBy *string
	if input.ReferenceID != "" {
		refID = &input.ReferenceID
	}
	if input.UserID != "" {
		createdBy = &input.UserID
	}

	// 1. Apply and log
	movement := &model.StockMovement{
		ID:             uuid.New().String(),
		ItemType:       input.ItemType,
		ItemID:         input.ItemID,
		MovementType:   movementType,
		QuantityChange: input.Change,
		ReferenceID:    refID,
		Notes:          input.Notes,
		CreatedBy:      createdBy,
		CreatedAt:      time.Now().UTC(),
	}
	if err := uc.repo.AdjustStockWithMovement(ctx, movement); err != nil {
		return nil, err
	}

	if input.ItemType == model.ItemProduct && uc.products != nil {
		uc.products.InvalidateListCache(ctx)
	}
	if uc.metrics != nil {
		uc.metrics.StockAdjusted(string(input.ItemType), movementType)
	}

	uc.logger.Info("stock adjusted",
		zap.String("item_type", string(input.ItemType)),
		zap.String("item_id", input.ItemID),
		zap.String("movement_type", movementType),
		zap.Int("before", movement.QuantityBefore),
		zap.Int("after", movement.QuantityAfter),
	)
	return movement, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	if filters.ItemType != "" && !filters.ItemType.Valid() {
		return nil, 0, apperror.Validationf("unknown item type %q", filters.ItemType)
	}
	return uc.repo.ListMovements(ctx, filters)
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context, threshold int) ([]model.StockLevel, error) {
	if threshold < 0 {
		threshold = uc.lowStockThreshold
	}
	return uc.repo.ListLowStock(ctx, threshold)
}
