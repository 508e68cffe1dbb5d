package models

import (
	"time"

	"github.com/google/uuid"
)

// CashRegister is a persistent point-of-sale terminal.
type CashRegister struct {
	ID       uuid.UUID `db:"id" json:"id"`
	BranchID uuid.UUID `db:"branch_id" json:"branch_id"`
	Name     string    `db:"name" json:"name"`
	IsOpen   bool      `db:"is_open" json:"is_open"`
	IsActive bool      `db:"is_active" json:"is_active"`
}

// RegisterSession is one open-to-close shift on a register. TotalSales
// only ever increases, by the total of each payment processed while the
// session is open. ExpectedAmount and Discrepancy are filled at close
// as reporting values; nothing here enforces the count.
type RegisterSession struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	RegisterID     uuid.UUID  `db:"register_id" json:"register_id"`
	UserID         uuid.UUID  `db:"user_id" json:"user_id"`
	UserName       string     `db:"user_name" json:"user_name"`
	OpeningAmount  float64    `db:"opening_amount" json:"opening_amount"`
	TotalSales     float64    `db:"total_sales" json:"total_sales"`
	StartTime      time.Time  `db:"start_time" json:"start_time"`
	ClosingAmount  *float64   `db:"closing_amount" json:"closing_amount,omitempty"`
	EndTime        *time.Time `db:"end_time" json:"end_time,omitempty"`
	ExpectedAmount *float64   `db:"expected_amount" json:"expected_amount,omitempty"`
	Discrepancy    *float64   `db:"discrepancy" json:"discrepancy,omitempty"`
}

// IsClosed reports whether the session has been closed out.
func (s RegisterSession) IsClosed() bool {
	return s.EndTime != nil
}
