package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-poultry-service/internal/apperror"
	"github.com/fekuna/omnipos-poultry-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type SQLRepository struct {
	DB *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

// stockColumn maps an item type to its table and quantity column.
func stockColumn(t model.ItemType) (table, column string, err error) {
	switch t {
	case model.ItemProduct:
		return "products", "stock", nil
	case model.ItemFeed:
		return "feeds", "level", nil
	}
	return "", "", apperror.Validationf("unknown item type %q", t)
}

const insertMovementQuery = `
    INSERT INTO stock_movements (
        id, item_type, item_id, movement_type, quantity_change,
        quantity_before, quantity_after, reference_id, notes, created_by, created_at
    )
    VALUES (
        :id, :item_type, :item_id, :movement_type, :quantity_change,
        :quantity_before, :quantity_after, :reference_id, :notes, :created_by, :created_at
    )
`

// InsertMovement writes m through e, which may be a *sqlx.Tx so the audit
// row commits with the stock change it describes.
func InsertMovement(ctx context.Context, e sqlx.ExtContext, m *model.StockMovement) error {
	if _, err := sqlx.NamedExecContext(ctx, e, insertMovementQuery, m); err != nil {
		return fmt.Errorf("failed to log movement: %w", err)
	}
	return nil
}

func (r *SQLRepository) GetLevel(ctx context.Context, itemType model.ItemType, itemID string) (*model.StockLevel, error) {
	return getLevel(ctx, r.DB, itemType, itemID)
}

func getLevel(ctx context.Context, q sqlx.ExtContext, itemType model.ItemType, itemID string) (*model.StockLevel, error) {
	table, column, err := stockColumn(itemType)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id AS item_id, name, category, %s AS level FROM %s WHERE id = ?`, column, table)
	var level model.StockLevel
	err = sqlx.GetContext(ctx, q, &level, q.Rebind(query), itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s level: %w", itemType, err)
	}
	level.ItemType = itemType
	return &level, nil
}

func (r *SQLRepository) ListLowStock(ctx context.Context, threshold int) ([]model.StockLevel, error) {
	levels := []model.StockLevel{}
	query := r.DB.Rebind(`
        SELECT 'product' AS item_type, id AS item_id, name, category, stock AS level
        FROM products WHERE stock <= ?
        UNION ALL
        SELECT 'feed' AS item_type, id AS item_id, name, category, level
        FROM feeds WHERE level <= ?
        ORDER BY level, name
    `)
	if err := r.DB.SelectContext(ctx, &levels, query, threshold, threshold); err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return levels, nil
}

func (r *SQLRepository) AdjustStockWithMovement(ctx context.Context, m *model.StockMovement) error {
	table, column, err := stockColumn(m.ItemType)
	if err != nil {
		return err
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1. Apply the change unless it would go below zero
	update := tx.Rebind(fmt.Sprintf(
		`UPDATE %[1]s SET %[2]s = %[2]s + ?, updated_at = ? WHERE id = ? AND %[2]s + ? >= 0`, table, column))
	res, err := tx.ExecContext(ctx, update, m.QuantityChange, m.CreatedAt, m.ItemID, m.QuantityChange)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", table, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	current, err := getLevel(ctx, tx, m.ItemType, m.ItemID)
	if err != nil {
		return err
	}
	if current == nil {
		return apperror.NotFound(string(m.ItemType), m.ItemID)
	}
	if rows == 0 {
		return apperror.Validationf("%s %s has %d on hand, cannot apply %+d",
			m.ItemType, current.Name, current.Level, m.QuantityChange)
	}

	// 2. Log movement
	m.QuantityAfter = current.Level
	m.QuantityBefore = current.Level - m.QuantityChange
	if err := InsertMovement(ctx, tx, m); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SQLRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	items := []model.StockMovement{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ItemType != "" {
		conditions = append(conditions, "item_type = :item_type")
		args["item_type"] = string(f.ItemType)
	}
	if f.ItemID != "" {
		conditions = append(conditions, "item_id = :item_id")
		args["item_id"] = f.ItemID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := r.DB.BindNamed("SELECT count(*) FROM stock_movements"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.GetContext(ctx, &count, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := "SELECT * FROM stock_movements" + whereClause + " ORDER BY created_at DESC, id"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &items, args); err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	return items, count, nil
}
