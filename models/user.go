package models

import (
	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
	RoleWaiter  Role = "waiter"
	RoleChef    Role = "chef"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleCashier || r == RoleWaiter || r == RoleChef
}

// Staff is the identity attached to requests by the external auth
// service. Login and PIN handling live outside this service; we only
// consume the claims.
type Staff struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Role     Role      `json:"role"`
	BranchID uuid.UUID `json:"branch_id"`
}
