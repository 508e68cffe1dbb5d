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

const sessionColumns = `id, register_id, user_id, user_name, opening_amount, total_sales, start_time, closing_amount, end_time, expected_amount, discrepancy`

func scanSession(row interface{ Scan(...interface{}) error }) (models.RegisterSession, error) {
	var s models.RegisterSession
	err := row.Scan(&s.ID, &s.RegisterID, &s.UserID, &s.UserName,
		&s.OpeningAmount, &s.TotalSales, &s.StartTime,
		&s.ClosingAmount, &s.EndTime, &s.ExpectedAmount, &s.Discrepancy)
	return s, err
}

func (s *PgStore) GetRegister(ctx context.Context, id uuid.UUID) (models.CashRegister, error) {
	var r models.CashRegister
	err := s.db.QueryRowContext(ctx, `
		SELECT id, branch_id, name, is_open, is_active
		FROM cash_registers
		WHERE id = $1`, id).Scan(&r.ID, &r.BranchID, &r.Name, &r.IsOpen, &r.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CashRegister{}, fmt.Errorf("register %s: %w", id, store.ErrNotFound)
	}
	return r, err
}

func (s *PgStore) UpsertRegister(ctx context.Context, r models.CashRegister) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cash_registers (id, branch_id, name, is_open, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			branch_id = EXCLUDED.branch_id,
			name = EXCLUDED.name,
			is_open = EXCLUDED.is_open,
			is_active = EXCLUDED.is_active`,
		r.ID, r.BranchID, r.Name, r.IsOpen, r.IsActive)
	return err
}

// OpenSession relies on the partial unique index over open sessions:
// a second open for the same register fails the insert, which is
// surfaced as ErrConflict.
func (s *PgStore) OpenSession(ctx context.Context, sess models.RegisterSession) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO register_sessions (id, register_id, user_id, user_name, opening_amount, total_sales, start_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sess.ID, sess.RegisterID, sess.UserID, sess.UserName,
		sess.OpeningAmount, sess.TotalSales, sess.StartTime)
	if isUniqueViolation(err) {
		return fmt.Errorf("register %s already has an open session: %w", sess.RegisterID, store.ErrConflict)
	}
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE cash_registers SET is_open = true WHERE id = $1`, sess.RegisterID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *PgStore) CurrentSession(ctx context.Context, registerID uuid.UUID) (models.RegisterSession, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+sessionColumns+`
		FROM register_sessions
		WHERE register_id = $1 AND end_time IS NULL`, registerID)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RegisterSession{}, fmt.Errorf("no open session for register %s: %w", registerID, store.ErrNotFound)
	}
	return sess, err
}

func (s *PgStore) updateSessionTx(ctx context.Context, tx *sql.Tx, id uuid.UUID, mutate func(*models.RegisterSession) error) (models.RegisterSession, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM register_sessions WHERE id = $1 FOR UPDATE`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RegisterSession{}, fmt.Errorf("session %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return models.RegisterSession{}, err
	}

	if err := mutate(&sess); err != nil {
		return models.RegisterSession{}, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE register_sessions
		SET total_sales = $2, closing_amount = $3, end_time = $4, expected_amount = $5, discrepancy = $6
		WHERE id = $1`,
		sess.ID, sess.TotalSales, sess.ClosingAmount, sess.EndTime, sess.ExpectedAmount, sess.Discrepancy)
	if err != nil {
		return models.RegisterSession{}, err
	}
	return sess, nil
}

func (s *PgStore) UpdateSession(ctx context.Context, id uuid.UUID, mutate func(*models.RegisterSession) error) (models.RegisterSession, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.RegisterSession{}, err
	}
	defer tx.Rollback()

	sess, err := s.updateSessionTx(ctx, tx, id, mutate)
	if err != nil {
		return models.RegisterSession{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.RegisterSession{}, err
	}
	return sess, nil
}

func (s *PgStore) CloseSession(ctx context.Context, id uuid.UUID, mutate func(*models.RegisterSession) error) (models.RegisterSession, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.RegisterSession{}, err
	}
	defer tx.Rollback()

	sess, err := s.updateSessionTx(ctx, tx, id, mutate)
	if err != nil {
		return models.RegisterSession{}, err
	}

	_, err = tx.ExecContext(ctx, `UPDATE cash_registers SET is_open = false WHERE id = $1`, sess.RegisterID)
	if err != nil {
		return models.RegisterSession{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.RegisterSession{}, err
	}
	return sess, nil
}
