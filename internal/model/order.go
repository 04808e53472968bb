package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID           string          `db:"id" json:"id"`
	CustomerName string          `db:"customer_name" json:"customer_name"`
	OrderDate    time.Time       `db:"order_date" json:"order_date"`
	Subtotal     decimal.Decimal `db:"subtotal" json:"subtotal"`
	Tax          decimal.Decimal `db:"tax" json:"tax"`
	Total        decimal.Decimal `db:"total" json:"total"`
	TaxRate      decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	CashierID    *string         `db:"cashier_id" json:"cashier_id,omitempty"`
}

type OrderItem struct {
	ID          string          `db:"id" json:"id"`
	OrderID     string          `db:"order_id" json:"order_id"`
	LineNo      int             `db:"line_no" json:"line_no"`
	ProductID   string          `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Quantity    int             `db:"quantity" json:"quantity"`
	Price       decimal.Decimal `db:"price" json:"price"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
