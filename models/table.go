package models

import (
	"github.com/google/uuid"
)

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
)

// Table is a dine-in seating unit. CurrentOrderID is informational (the
// most recently bound order); the authoritative bill is the sum of all
// open orders referencing the table.
type Table struct {
	ID             uuid.UUID   `db:"id" json:"id"`
	BranchID       uuid.UUID   `db:"branch_id" json:"branch_id"`
	Name           string      `db:"name" json:"name"`
	Seats          int         `db:"seats" json:"seats"`
	Status         TableStatus `db:"status" json:"status"`
	CurrentOrderID *uuid.UUID  `db:"current_order_id" json:"current_order_id,omitempty"`
}
