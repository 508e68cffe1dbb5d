package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/ray-remotestate/pos/models"
)

// Repository owns all shared state. Implementations synchronize
// internally (mutex or SQL transactions) and hand out copies, never
// aliases into their own collections. Multi-entity mutations that must
// commit together are single calls here.
type Repository interface {
	// products
	GetProduct(ctx context.Context, id uuid.UUID) (models.Product, error)
	UpsertProduct(ctx context.Context, p models.Product) error

	// inventory
	GetInventoryItem(ctx context.Context, branchID, itemID uuid.UUID) (models.InventoryItem, error)
	ListInventory(ctx context.Context, branchID uuid.UUID) ([]models.InventoryItem, error)
	UpsertInventoryItem(ctx context.Context, item models.InventoryItem) error
	// DeductStock subtracts qty[itemID] from each matching item of the
	// branch in one commit. Unknown ids are skipped and reported in
	// missing; stock may go negative. Touched items are returned with
	// their post-deduction values.
	DeductStock(ctx context.Context, branchID uuid.UUID, qty map[uuid.UUID]float64) (touched []models.InventoryItem, missing []uuid.UUID, err error)

	// orders
	// CreateOrder persists the order and applies the stock deduction as
	// one unit: an order never exists without its matching deduction.
	CreateOrder(ctx context.Context, order models.Order, deduct map[uuid.UUID]float64) (touched []models.InventoryItem, missing []uuid.UUID, err error)
	GetOrder(ctx context.Context, id uuid.UUID) (models.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, mutate func(*models.Order) error) (models.Order, error)
	ListOpenOrders(ctx context.Context, branchID uuid.UUID) ([]models.Order, error)
	ListOpenOrdersByTable(ctx context.Context, tableID uuid.UUID) ([]models.Order, error)
	// SettleTable completes every open order bound to the table with the
	// given payment method and frees the table, as one batch. Returns
	// the completed orders.
	SettleTable(ctx context.Context, tableID uuid.UUID, paymentMethod string) ([]models.Order, error)

	// tables
	GetTable(ctx context.Context, id uuid.UUID) (models.Table, error)
	UpsertTable(ctx context.Context, t models.Table) error
	UpdateTable(ctx context.Context, id uuid.UUID, mutate func(*models.Table) error) (models.Table, error)

	// registers
	GetRegister(ctx context.Context, id uuid.UUID) (models.CashRegister, error)
	UpsertRegister(ctx context.Context, r models.CashRegister) error
	// OpenSession stores the session and marks the register open; it
	// fails with ErrConflict if the register already has an open session.
	OpenSession(ctx context.Context, s models.RegisterSession) error
	// CurrentSession returns the open session for the register, or
	// ErrNotFound if none is open.
	CurrentSession(ctx context.Context, registerID uuid.UUID) (models.RegisterSession, error)
	UpdateSession(ctx context.Context, id uuid.UUID, mutate func(*models.RegisterSession) error) (models.RegisterSession, error)
	// CloseSession applies the mutator and clears the register's open
	// flag in one commit.
	CloseSession(ctx context.Context, id uuid.UUID, mutate func(*models.RegisterSession) error) (models.RegisterSession, error)
}
