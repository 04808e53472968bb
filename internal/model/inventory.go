package model

import "time"

type ItemType string

const (
	ItemProduct ItemType = "product"
	ItemFeed    ItemType = "feed"
)

func (t ItemType) Valid() bool {
	return t == ItemProduct || t == ItemFeed
}

const (
	MovementSale       = "sale"
	MovementAdjustment = "adjustment"
	MovementRestock    = "restock"
)

type StockMovement struct {
	ID             string    `db:"id" json:"id"`
	ItemType       ItemType  `db:"item_type" json:"item_type"`
	ItemID         string    `db:"item_id" json:"item_id"`
	MovementType   string    `db:"movement_type" json:"movement_type"`
	QuantityChange int       `db:"quantity_change" json:"quantity_change"`
	QuantityBefore int       `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  int       `db:"quantity_after" json:"quantity_after"`
	ReferenceID    *string   `db:"reference_id" json:"reference_id,omitempty"`
	Notes          string    `db:"notes" json:"notes"`
	CreatedBy      *string   `db:"created_by" json:"created_by,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// StockLevel is a product or feed row reduced to its stock figure.
type StockLevel struct {
	ItemType ItemType `db:"item_type" json:"item_type"`
	ItemID   string   `db:"item_id" json:"item_id"`
	Name     string   `db:"name" json:"name"`
	Category string   `db:"category" json:"category"`
	Level    int      `db:"level" json:"level"`
}
