package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type Summary struct {
	Users    int             `db:"users" json:"users"`
	Products int             `db:"products" json:"products"`
	Feeds    int             `db:"feeds" json:"feeds"`
	Orders   int             `db:"orders" json:"orders"`
	Revenue  decimal.Decimal `db:"-" json:"revenue"`
}

type OrderTotal struct {
	OrderDate time.Time       `db:"order_date"`
	Total     decimal.Decimal `db:"total"`
}

// MonthlySales is one month of sales. Month is formatted YYYY-MM.
type MonthlySales struct {
	Month  string          `json:"month"`
	Orders int             `json:"orders"`
	Total  decimal.Decimal `json:"total"`
}

type CategoryStock struct {
	Category string `db:"category" json:"category"`
	Products int    `db:"products" json:"products"`
	Stock    int    `db:"stock" json:"stock"`
}
