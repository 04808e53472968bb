package dto

import (
	"time"

	"github.com/fekuna/omnipos-poultry-service/internal/cart"
	"github.com/shopspring/decimal"
)

type OrderFilters struct {
	CustomerSearch string
	Page           int
	PageSize       int
}

type CheckoutInput struct {
	CustomerName string
	Lines        []cart.Line
	CashierID    string
}

type ReceiptLine struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type Receipt struct {
	OrderID      string          `json:"order_id"`
	CustomerName string          `json:"customer_name"`
	OrderDate    time.Time       `json:"order_date"`
	CashierID    *string         `json:"cashier_id,omitempty"`
	Items        []ReceiptLine   `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
}
