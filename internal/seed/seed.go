// Package seed prepares a fresh store: a first Admin account and, on request,
// the sample poultry catalog.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-poultry-service/internal/feed"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/fekuna/omnipos-poultry-service/internal/product"
	"github.com/fekuna/omnipos-poultry-service/internal/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Options struct {
	AdminEmail    string
	AdminPassword string
	SampleCatalog bool
}

type Seeder struct {
	users    user.UseCase
	products product.Repository
	feeds    feed.Repository
	logger   logger.ZapLogger
}

func NewSeeder(users user.UseCase, products product.Repository, feeds feed.Repository, log logger.ZapLogger) *Seeder {
	return &Seeder{users: users, products: products, feeds: feeds, logger: log}
}

// Run creates the default Admin when no Admin exists. The sample catalog is
// inserted only into an empty products table.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	created, err := s.users.EnsureAdmin(ctx, opts.AdminEmail, opts.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		s.logger.Info("default admin created", zap.String("email", opts.AdminEmail))
	}

	if !opts.SampleCatalog {
		return nil
	}

	count, err := s.products.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, p := range sampleProducts {
		err := s.products.Create(ctx, &model.Product{
			BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
			Name:      p.name,
			Category:  p.category,
			Stock:     p.stock,
			Price:     decimal.RequireFromString(p.price),
		})
		if err != nil {
			return fmt.Errorf("seed product %q: %w", p.name, err)
		}
	}
	for _, f := range sampleFeeds {
		err := s.feeds.Create(ctx, &model.Feed{
			BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
			Name:      f.name,
			Category:  f.category,
			Level:     f.level,
		})
		if err != nil {
			return fmt.Errorf("seed feed %q: %w", f.name, err)
		}
	}

	s.logger.Info("sample catalog inserted",
		zap.Int("products", len(sampleProducts)),
		zap.Int("feeds", len(sampleFeeds)),
	)
	return nil
}
