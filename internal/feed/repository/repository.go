package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-poultry-service/internal/feed/dto"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type SQLRepository struct {
	DB *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) Create(ctx context.Context, f *model.Feed) error {
	query := `
        INSERT INTO feeds (id, name, category, level, created_at, updated_at)
        VALUES (:id, :name, :category, :level, :created_at, :updated_at)
    `
	if _, err := r.DB.NamedExecContext(ctx, query, f); err != nil {
		return fmt.Errorf("insert feed: %w", err)
	}
	return nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id string) (*model.Feed, error) {
	var feed model.Feed
	err := r.DB.GetContext(ctx, &feed, r.DB.Rebind(`SELECT * FROM feeds WHERE id = ? LIMIT 1`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find feed: %w", err)
	}
	return &feed, nil
}

func (r *SQLRepository) FindAll(ctx context.Context, f *dto.FeedFilters) ([]model.Feed, int, error) {
	feeds := []model.Feed{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}
	if f.Category != "" {
		conditions = append(conditions, "category = :category")
		args["category"] = f.Category
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "LOWER(name) LIKE :search")
		args["search"] = "%" + strings.ToLower(f.SearchQuery) + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := r.DB.BindNamed("SELECT count(*) FROM feeds"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.GetContext(ctx, &count, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count feeds: %w", err)
	}

	query := "SELECT * FROM feeds" + whereClause + " ORDER BY name, id"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	listQuery, listArgs, err := r.DB.BindNamed(query, args)
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.SelectContext(ctx, &feeds, listQuery, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("list feeds: %w", err)
	}

	return feeds, count, nil
}

func (r *SQLRepository) Update(ctx context.Context, f *model.Feed) error {
	query := `
        UPDATE feeds
        SET name = :name, category = :category, level = :level, updated_at = :updated_at
        WHERE id = :id
    `
	if _, err := r.DB.NamedExecContext(ctx, query, f); err != nil {
		return fmt.Errorf("update feed: %w", err)
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM feeds WHERE id = ?"), id)
	if err != nil {
		return false, fmt.Errorf("delete feed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
