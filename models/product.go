package models

import (
	"github.com/google/uuid"
)

type ProductionArea string

const (
	AreaKitchen ProductionArea = "kitchen"
	AreaBar     ProductionArea = "bar"
	AreaGrill   ProductionArea = "grill"

	// AreaAll is not a station; it is the wildcard accepted by KDS
	// and item-ready operations.
	AreaAll ProductionArea = "ALL"
)

func (a ProductionArea) IsValid() bool {
	return a == AreaKitchen || a == AreaBar || a == AreaGrill
}

// Ingredient is one recipe line: how much of a stocked item a single
// unit of the product consumes.
type Ingredient struct {
	InventoryItemID uuid.UUID `db:"inventory_item_id" json:"inventory_item_id"`
	Quantity        float64   `db:"quantity" json:"quantity"`
}

// ComboItem is one line of a combo: a nested product and how many of it
// the combo bundles.
type ComboItem struct {
	ProductID uuid.UUID `db:"product_id" json:"product_id"`
	Quantity  float64   `db:"quantity" json:"quantity"`
}

// Product is a sellable item. Combos carry ComboItems instead of their
// own ingredient list; cost and deductions flow through the nested
// products. Products are deactivated, never deleted, so historical
// orders keep valid snapshots.
type Product struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	Name           string         `db:"name" json:"name"`
	Price          float64        `db:"price" json:"price"`
	Cost           float64        `db:"cost" json:"cost"`
	Category       string         `db:"category" json:"category"`
	ProductionArea ProductionArea `db:"production_area" json:"production_area"`
	Ingredients    []Ingredient   `db:"-" json:"ingredients,omitempty"`
	IsCombo        bool           `db:"is_combo" json:"is_combo"`
	ComboItems     []ComboItem    `db:"-" json:"combo_items,omitempty"`
	IsActive       bool           `db:"is_active" json:"is_active"`
}
