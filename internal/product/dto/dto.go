package dto

import "github.com/shopspring/decimal"

type ProductFilters struct {
	Category    string `json:"category"`
	SearchQuery string `json:"search"`     // name substring, case-insensitive
	SortBy      string `json:"sort_by"`    // name, price, stock, created_at
	SortOrder   string `json:"sort_order"` // asc, desc
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}

type CreateProductInput struct {
	Name     string
	Category string
	Stock    int
	Price    decimal.Decimal
}

type UpdateProductInput struct {
	ID       string
	Name     string
	Category string
	Stock    int
	Price    decimal.Decimal
}
