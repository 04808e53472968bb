package dto

import "github.com/fekuna/omnipos-poultry-service/internal/model"

type MovementFilters struct {
	ItemType     model.ItemType
	ItemID       string
	MovementType string
	Page         int
	PageSize     int
}

// AdjustStockInput applies Change to a product's stock or a feed's level.
type AdjustStockInput struct {
	ItemType     model.ItemType
	ItemID       string
	Change       int
	MovementType string // adjustment (default) or restock
	ReferenceID  string
	Notes        string
	UserID       string
}
