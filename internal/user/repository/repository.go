package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/fekuna/omnipos-poultry-service/internal/user/dto"
	"github.com/jmoiron/sqlx"
)

type SQLRepository struct {
	DB *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) Create(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (id, name, role, email, password, created_at, updated_at)
        VALUES (:id, :name, :role, :email, :password, :created_at, :updated_at)
    `
	if _, err := r.DB.NamedExecContext(ctx, query, u); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, `SELECT * FROM users WHERE id = ? LIMIT 1`, id)
}

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, `SELECT * FROM users WHERE email = ? LIMIT 1`, email)
}

func (r *SQLRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var u model.User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(query), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *SQLRepository) FindAll(ctx context.Context, f *dto.UserFilters) ([]model.User, int, error) {
	users := []model.User{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}
	if f.Role != "" {
		conditions = append(conditions, "role = :role")
		args["role"] = string(f.Role)
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(LOWER(name) LIKE :search OR email LIKE :search)")
		args["search"] = "%" + strings.ToLower(f.SearchQuery) + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := r.DB.BindNamed("SELECT count(*) FROM users"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.GetContext(ctx, &count, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := "SELECT * FROM users" + whereClause + " ORDER BY name, id"
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
	if err := r.DB.SelectContext(ctx, &users, listQuery, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, count, nil
}

func (r *SQLRepository) Update(ctx context.Context, u *model.User) error {
	query := `
        UPDATE users
        SET name = :name, role = :role, email = :email, password = :password, updated_at = :updated_at
        WHERE id = :id
    `
	if _, err := r.DB.NamedExecContext(ctx, query, u); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM users WHERE id = ?"), id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLRepository) IsEmailUnique(ctx context.Context, email, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM users WHERE email = ?`
	args := []interface{}{email}
	if excludeID != "" {
		query += ` AND id != ?`
		args = append(args, excludeID)
	}

	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind(query), args...); err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *SQLRepository) CountByRole(ctx context.Context, role model.Role) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, r.DB.Rebind(`SELECT count(*) FROM users WHERE role = ?`), string(role))
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return count, nil
}
