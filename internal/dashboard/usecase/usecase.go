package usecase

import (
	"context"

	"github.com/fekuna/omnipos-poultry-service/internal/dashboard"
	"github.com/fekuna/omnipos-poultry-service/internal/dashboard/dto"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/shopspring/decimal"
)

type dashboardUseCase struct {
	repo   dashboard.Repository
	logger logger.ZapLogger
}

func NewDashboardUseCase(repo dashboard.Repository, log logger.ZapLogger) dashboard.UseCase {
	return &dashboardUseCase{
		repo:   repo,
		logger: log,
	}
}

// Summary adds revenue up as decimals; SQLite would sum NUMERIC columns as
// floating point.
func (uc *dashboardUseCase) Summary(ctx context.Context) (*dto.Summary, error) {
	s, err := uc.repo.Counts(ctx)
	if err != nil {
		return nil, err
	}

	totals, err := uc.repo.OrderTotals(ctx)
	if err != nil {
		return nil, err
	}
	s.Revenue = decimal.Zero
	for _, t := range totals {
		s.Revenue = s.Revenue.Add(t.Total)
	}
	return s, nil
}

// MonthlySales buckets orders by the UTC month of their order date, oldest
// month first.
func (uc *dashboardUseCase) MonthlySales(ctx context.Context) ([]dto.MonthlySales, error) {
	totals, err := uc.repo.OrderTotals(ctx)
	if err != nil {
		return nil, err
	}

	months := []dto.MonthlySales{}
	for _, t := range totals {
		month := t.OrderDate.UTC().Format("2006-01")
		if n := len(months); n > 0 && months[n-1].Month == month {
			months[n-1].Orders++
			months[n-1].Total = months[n-1].Total.Add(t.Total)
			continue
		}
		months = append(months, dto.MonthlySales{Month: month, Orders: 1, Total: t.Total})
	}
	return months, nil
}

func (uc *dashboardUseCase) StockByCategory(ctx context.Context) ([]dto.CategoryStock, error) {
	return uc.repo.StockByCategory(ctx)
}
