package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Name     string          `db:"name" json:"name"`
	Category string          `db:"category" json:"category"`
	Stock    int             `db:"stock" json:"stock"`
	Price    decimal.Decimal `db:"price" json:"price"`
}
