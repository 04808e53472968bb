package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-poultry-service/internal/apperror"
	invrepo "github.com/fekuna/omnipos-poultry-service/internal/inventory/repository"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/fekuna/omnipos-poultry-service/internal/order/dto"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type SQLRepository struct {
	DB *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) CreateWithItems(ctx context.Context, o *model.Order, items []model.OrderItem) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1. Order header
	insertOrder := `
        INSERT INTO orders (id, customer_name, order_date, subtotal, tax, total, tax_rate, cashier_id)
        VALUES (:id, :customer_name, :order_date, :subtotal, :tax, :total, :tax_rate, :cashier_id)
    `
	if _, err := tx.NamedExecContext(ctx, insertOrder, o); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	insertItem := `
        INSERT INTO order_items (id, order_id, line_no, product_id, product_name, quantity, price)
        VALUES (:id, :order_id, :line_no, :product_id, :product_name, :quantity, :price)
    `
	reserve := tx.Rebind(`
		UPDATE products
		SET stock = stock - ?, updated_at = ?
		WHERE id = ? AND stock >= ?
	`)
	currentStock := tx.Rebind(`SELECT stock FROM products WHERE id = ?`)

	for i := range items {
		item := &items[i]

		// 2. Line item
		if _, err := tx.NamedExecContext(ctx, insertItem, item); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}

		// 3. Stock decrement, only if enough is still on hand
		res, err := tx.ExecContext(ctx, reserve, item.Quantity, o.OrderDate, item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}

		var after int
		err = tx.GetContext(ctx, &after, currentStock, item.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperror.NotFound("product", item.ProductID)
			}
			return fmt.Errorf("failed to read stock: %w", err)
		}
		if rows == 0 {
			return apperror.InsufficientStock(item.ProductName, item.Quantity, after)
		}

		// 4. Audit trail
		orderID := o.ID
		err = invrepo.InsertMovement(ctx, tx, &model.StockMovement{
			ID:             uuid.New().String(),
			ItemType:       model.ItemProduct,
			ItemID:         item.ProductID,
			MovementType:   model.MovementSale,
			QuantityChange: -item.Quantity,
			QuantityBefore: after + item.Quantity,
			QuantityAfter:  after,
			ReferenceID:    &orderID,
			Notes:          "sale to " + o.CustomerName,
			CreatedBy:      o.CashierID,
			CreatedAt:      o.OrderDate,
		})
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *SQLRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	err := r.DB.GetContext(ctx, &o, r.DB.Rebind(`SELECT * FROM orders WHERE id = ? LIMIT 1`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &o, nil
}

func (r *SQLRepository) FindItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	items := []model.OrderItem{}
	query := r.DB.Rebind(`SELECT * FROM order_items WHERE order_id = ? ORDER BY line_no`)
	if err := r.DB.SelectContext(ctx, &items, query, orderID); err != nil {
		return nil, fmt.Errorf("find order items: %w", err)
	}
	return items, nil
}

func (r *SQLRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	orders := []model.Order{}
	var count int

	whereClause := ""
	args := map[string]interface{}{}
	if f.CustomerSearch != "" {
		whereClause = " WHERE LOWER(customer_name) LIKE :search"
		args["search"] = "%" + strings.ToLower(f.CustomerSearch) + "%"
	}

	countQuery, countArgs, err := r.DB.BindNamed("SELECT count(*) FROM orders"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.GetContext(ctx, &count, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := "SELECT * FROM orders" + whereClause + " ORDER BY order_date DESC, id"
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
	if err := r.DB.SelectContext(ctx, &orders, listQuery, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, count, nil
}
