package models

import (
	"github.com/google/uuid"
)

// SupplierOffer is a purchasable price for an inventory item from one
// supplier. Replenishment itself is handled outside this service.
type SupplierOffer struct {
	Supplier string  `db:"supplier" json:"supplier"`
	Price    float64 `db:"price" json:"price"`
}

// InventoryItem is a stocked raw ingredient, scoped to one branch.
// Stock is signed: over-selling drives it negative rather than failing
// the sale, and the shortfall surfaces through the low-stock alert.
type InventoryItem struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	BranchID       uuid.UUID       `db:"branch_id" json:"branch_id"`
	Name           string          `db:"name" json:"name"`
	Unit           string          `db:"unit" json:"unit"`
	Stock          float64         `db:"stock" json:"stock"`
	MinStock       float64         `db:"min_stock" json:"min_stock"`
	MaxStock       float64         `db:"max_stock" json:"max_stock"`
	Cost           float64         `db:"cost" json:"cost"`
	SupplierOffers []SupplierOffer `db:"-" json:"supplier_offers,omitempty"`
}

// IsLowStock reports whether the item has fallen to or below its
// configured minimum.
func (i InventoryItem) IsLowStock() bool {
	return i.Stock <= i.MinStock
}
