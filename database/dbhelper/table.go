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

const tableColumns = `id, branch_id, name, seats, status, current_order_id`

func scanTable(row interface{ Scan(...interface{}) error }) (models.Table, error) {
	var t models.Table
	err := row.Scan(&t.ID, &t.BranchID, &t.Name, &t.Seats, &t.Status, &t.CurrentOrderID)
	return t, err
}

func (s *PgStore) GetTable(ctx context.Context, id uuid.UUID) (models.Table, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+tableColumns+` FROM tables WHERE id = $1`, id)
	t, err := scanTable(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Table{}, fmt.Errorf("table %s: %w", id, store.ErrNotFound)
	}
	return t, err
}

func (s *PgStore) UpsertTable(ctx context.Context, t models.Table) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tables (id, branch_id, name, seats, status, current_order_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			branch_id = EXCLUDED.branch_id,
			name = EXCLUDED.name,
			seats = EXCLUDED.seats,
			status = EXCLUDED.status,
			current_order_id = EXCLUDED.current_order_id`,
		t.ID, t.BranchID, t.Name, t.Seats, t.Status, t.CurrentOrderID)
	return err
}

func (s *PgStore) UpdateTable(ctx context.Context, id uuid.UUID, mutate func(*models.Table) error) (models.Table, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Table{}, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+tableColumns+` FROM tables WHERE id = $1 FOR UPDATE`, id)
	t, err := scanTable(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Table{}, fmt.Errorf("table %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return models.Table{}, err
	}

	if err := mutate(&t); err != nil {
		return models.Table{}, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE tables SET status = $2, current_order_id = $3, name = $4, seats = $5 WHERE id = $1`,
		t.ID, t.Status, t.CurrentOrderID, t.Name, t.Seats)
	if err != nil {
		return models.Table{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Table{}, err
	}
	return t, nil
}
