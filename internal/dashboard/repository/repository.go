package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-poultry-service/internal/dashboard/dto"
	"github.com/jmoiron/sqlx"
)

type SQLRepository struct {
	DB *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) Counts(ctx context.Context) (*dto.Summary, error) {
	var s dto.Summary
	query := `
        SELECT
            (SELECT count(*) FROM users) AS users,
            (SELECT count(*) FROM products) AS products,
            (SELECT count(*) FROM feeds) AS feeds,
            (SELECT count(*) FROM orders) AS orders
    `
	if err := r.DB.GetContext(ctx, &s, query); err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}
	return &s, nil
}

func (r *SQLRepository) OrderTotals(ctx context.Context) ([]dto.OrderTotal, error) {
	totals := []dto.OrderTotal{}
	query := `SELECT order_date, total FROM orders ORDER BY order_date`
	if err := r.DB.SelectContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("list order totals: %w", err)
	}
	return totals, nil
}

func (r *SQLRepository) StockByCategory(ctx context.Context) ([]dto.CategoryStock, error) {
	rows := []dto.CategoryStock{}
	query := `
        SELECT category, count(*) AS products, COALESCE(SUM(stock), 0) AS stock
        FROM products
        GROUP BY category
        ORDER BY category
    `
	if err := r.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("stock by category: %w", err)
	}
	return rows, nil
}
