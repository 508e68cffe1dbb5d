package dbhelper

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ray-remotestate/pos/models"
	"github.com/ray-remotestate/pos/store"
)

const orderColumns = `id, branch_id, table_id, type, status, items, subtotal, tax, discount, total, total_cost, payment_method, customer_id, created_at, ready_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (models.Order, error) {
	var o models.Order
	var items []byte
	err := row.Scan(&o.ID, &o.BranchID, &o.TableID, &o.Type, &o.Status, &items,
		&o.Subtotal, &o.Tax, &o.Discount, &o.Total, &o.TotalCost,
		&o.PaymentMethod, &o.CustomerID, &o.CreatedAt, &o.ReadyAt)
	if err != nil {
		return models.Order{}, err
	}
	if err := unmarshalJSON(items, &o.Items); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func insertOrderTx(ctx context.Context, tx *sql.Tx, o models.Order) error {
	items, err := marshalJSON(o.Items)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		o.ID, o.BranchID, o.TableID, o.Type, o.Status, items,
		o.Subtotal, o.Tax, o.Discount, o.Total, o.TotalCost,
		o.PaymentMethod, o.CustomerID, o.CreatedAt, o.ReadyAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("order %s already exists: %w", o.ID, store.ErrConflict)
	}
	return err
}

// CreateOrder writes the order and its stock deduction in one
// transaction, so neither can exist without the other.
func (s *PgStore) CreateOrder(ctx context.Context, order models.Order, deduct map[uuid.UUID]float64) ([]models.InventoryItem, []uuid.UUID, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	touched, missing, err := deductStockTx(ctx, tx, order.BranchID, deduct)
	if err != nil {
		return nil, nil, err
	}
	if err := insertOrderTx(ctx, tx, order); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return touched, missing, nil
}

func (s *PgStore) GetOrder(ctx context.Context, id uuid.UUID) (models.Order, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, fmt.Errorf("order %s: %w", id, store.ErrNotFound)
	}
	return o, err
}

func (s *PgStore) UpdateOrder(ctx context.Context, id uuid.UUID, mutate func(*models.Order) error) (models.Order, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Order{}, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, fmt.Errorf("order %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return models.Order{}, err
	}

	if err := mutate(&o); err != nil {
		return models.Order{}, err
	}

	items, err := marshalJSON(o.Items)
	if err != nil {
		return models.Order{}, err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $2, items = $3, payment_method = $4, ready_at = $5,
			subtotal = $6, tax = $7, discount = $8, total = $9
		WHERE id = $1`,
		o.ID, o.Status, items, o.PaymentMethod, o.ReadyAt,
		o.Subtotal, o.Tax, o.Discount, o.Total)
	if err != nil {
		return models.Order{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (s *PgStore) listOrders(ctx context.Context, query string, args ...interface{}) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *PgStore) ListOpenOrders(ctx context.Context, branchID uuid.UUID) ([]models.Order, error) {
	return s.listOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE branch_id = $1 AND status NOT IN ('COMPLETED', 'CANCELLED')
		ORDER BY created_at`, branchID)
}

func (s *PgStore) ListOpenOrdersByTable(ctx context.Context, tableID uuid.UUID) ([]models.Order, error) {
	return s.listOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE table_id = $1 AND status NOT IN ('COMPLETED', 'CANCELLED')
		ORDER BY created_at`, tableID)
}

// SettleTable completes every open order on the table and frees the
// table in one transaction.
func (s *PgStore) SettleTable(ctx context.Context, tableID uuid.UUID, paymentMethod string) ([]models.Order, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		UPDATE orders
		SET status = 'COMPLETED', payment_method = $2
		WHERE table_id = $1 AND status NOT IN ('COMPLETED', 'CANCELLED')
		RETURNING `+orderColumns, tableID, paymentMethod)
	if err != nil {
		return nil, err
	}

	var completed []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		completed = append(completed, o)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	_, err = tx.ExecContext(ctx, `
		UPDATE tables
		SET status = 'available', current_order_id = NULL
		WHERE id = $1`, tableID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return completed, nil
}
