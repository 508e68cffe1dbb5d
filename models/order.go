package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderType string

const (
	OrderDineIn   OrderType = "dine_in"
	OrderTakeaway OrderType = "takeaway"
	OrderDelivery OrderType = "delivery"
)

func (t OrderType) IsValid() bool {
	return t == OrderDineIn || t == OrderTakeaway || t == OrderDelivery
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCancelled OrderStatus = "CANCELLED"

	// Reserved for delivery fulfillment; nothing in the kitchen-to-payment
	// path produces these, but open-order filters treat them as active.
	StatusOnWay     OrderStatus = "ON_WAY"
	StatusDelivered OrderStatus = "DELIVERED"
)

// IsTerminal reports whether the status ends the order's lifecycle.
// Terminal orders are immutable except for audit fields.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type ItemStatus string

const (
	ItemPending ItemStatus = "PENDING"
	ItemReady   ItemStatus = "READY"
)

// OrderItem is one cart line frozen into the order: a product snapshot
// plus quantity and its own production status. The snapshot keeps
// historical orders intact when the catalog changes.
type OrderItem struct {
	Product  Product    `json:"product"`
	Quantity float64    `json:"quantity"`
	Status   ItemStatus `json:"status"`
	Notes    string     `json:"notes,omitempty"`
}

// Order is the central transactional record. Totals hold
// total = subtotal + tax - discount; tips and split counts live only at
// payment time and are never persisted here.
type Order struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	BranchID      uuid.UUID   `db:"branch_id" json:"branch_id"`
	TableID       *uuid.UUID  `db:"table_id" json:"table_id,omitempty"`
	Type          OrderType   `db:"type" json:"type"`
	Status        OrderStatus `db:"status" json:"status"`
	Items         []OrderItem `db:"-" json:"items"`
	Subtotal      float64     `db:"subtotal" json:"subtotal"`
	Tax           float64     `db:"tax" json:"tax"`
	Discount      float64     `db:"discount" json:"discount"`
	Total         float64     `db:"total" json:"total"`
	TotalCost     float64     `db:"total_cost" json:"total_cost"`
	PaymentMethod *string     `db:"payment_method" json:"payment_method,omitempty"`
	CustomerID    *uuid.UUID  `db:"customer_id" json:"customer_id,omitempty"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	ReadyAt       *time.Time  `db:"ready_at" json:"ready_at,omitempty"`
}

// AllItemsReady reports whether every item in the order has finished
// production.
func (o Order) AllItemsReady() bool {
	for _, item := range o.Items {
		if item.Status != ItemReady {
			return false
		}
	}
	return len(o.Items) > 0
}

// IsOpen reports whether the order still counts toward active views and
// table bills.
func (o Order) IsOpen() bool {
	return !o.Status.IsTerminal()
}
