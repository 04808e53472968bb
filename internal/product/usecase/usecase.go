package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-poultry-service/internal/apperror"
	"github.com/fekuna/omnipos-poultry-service/internal/cache"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/fekuna/omnipos-poultry-service/internal/product"
	"github.com/fekuna/omnipos-poultry-service/internal/product/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	listCachePrefix = "products:list:"
	listCacheTTL    = 5 * time.Minute
)

type productUseCase struct {
	repo   product.Repository
	cache  cache.Cache
	logger logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, c cache.Cache, log logger.ZapLogger) product.UseCase {
	if c == nil {
		c = cache.Noop{}
	}
	return &productUseCase{
		repo:   repo,
		cache:  c,
		logger: log,
	}
}

type listResult struct {
	Products []model.Product
	Count    int
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	name, category, err := validateFields(input.Name, input.Category, input.Stock, input.Price)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      name,
		Category:  category,
		Stock:     input.Stock,
		Price:     input.Price.Round(2),
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.InvalidateListCache(ctx)
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("product", id)
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey, err := uc.generateCacheKey(filters)
	if err == nil {
		var cached listResult
		hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("product list cache read failed", zap.Error(err))
		}
		if hit {
			return cached.Products, cached.Count, nil
		}
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if cacheKey != "" {
		if err := uc.cache.SetJSON(ctx, cacheKey, listResult{Products: products, Count: count}, listCacheTTL); err != nil {
			uc.logger.Warn("product list cache write failed", zap.Error(err))
		}
	}

	return products, count, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	name, category, err := validateFields(input.Name, input.Category, input.Stock, input.Price)
	if err != nil {
		return nil, err
	}

	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("product", input.ID)
	}

	p.Name = name
	p.Category = category
	p.Stock = input.Stock
	p.Price = input.Price.Round(2)
	p.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.InvalidateListCache(ctx)
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("product", id)
	}

	uc.InvalidateListCache(ctx)
	return nil
}

func (uc *productUseCase) InvalidateListCache(ctx context.Context) {
	if err := uc.cache.DeleteByPrefix(ctx, listCachePrefix); err != nil {
		uc.logger.Warn("product list cache invalidation failed", zap.Error(err))
	}
}

func (uc *productUseCase) generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", listCachePrefix, md5.Sum(data)), nil
}

func validateFields(name, category string, stock int, price decimal.Decimal) (string, string, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	switch {
	case name == "":
		return "", "", apperror.Validation("product name is required")
	case category == "":
		return "", "", apperror.Validation("product category is required")
	case stock < 0:
		return "", "", apperror.Validationf("stock must not be negative, got %d", stock)
	case price.IsNegative():
		return "", "", apperror.Validationf("price must not be negative, got %s", price)
	}
	return name, category, nil
}
