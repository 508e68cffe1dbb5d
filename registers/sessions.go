// Package registers manages cash-register shifts: one open session per
// register, an additive sales accumulator, and close-out reconciliation
// values.
package registers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/pos/models"
	"github.com/ray-remotestate/pos/store"
)

type Manager struct {
	repo store.Repository
}

func NewManager(repo store.Repository) *Manager {
	return &Manager{repo: repo}
}

// Open starts a shift on the register. At most one session may be open
// per register; a second open is a conflict, enforced by the store in
// the same commit that records the session.
func (m *Manager) Open(ctx context.Context, registerID, userID uuid.UUID, userName string, openingAmount float64) (models.RegisterSession, error) {
	if openingAmount < 0 {
		return models.RegisterSession{}, fmt.Errorf("negative opening amount: %w", store.ErrValidation)
	}

	reg, err := m.repo.GetRegister(ctx, registerID)
	if err != nil {
		return models.RegisterSession{}, err
	}
	if !reg.IsActive {
		return models.RegisterSession{}, fmt.Errorf("register %q is inactive: %w", reg.Name, store.ErrConflict)
	}

	sess := models.RegisterSession{
		ID:            uuid.New(),
		RegisterID:    registerID,
		UserID:        userID,
		UserName:      userName,
		OpeningAmount: openingAmount,
		StartTime:     time.Now().UTC(),
	}
	if err := m.repo.OpenSession(ctx, sess); err != nil {
		return models.RegisterSession{}, err
	}

	logrus.WithFields(logrus.Fields{
		"register_id": registerID,
		"session_id":  sess.ID,
		"user":        userName,
	}).Info("register session opened")
	return sess, nil
}

// RecordSale adds a completed payment to the register's open session.
// Strictly additive; if there is no open session to receive the sale,
// the payment fails.
func (m *Manager) RecordSale(ctx context.Context, registerID uuid.UUID, amount float64) (models.RegisterSession, error) {
	if amount < 0 {
		return models.RegisterSession{}, fmt.Errorf("negative sale amount: %w", store.ErrValidation)
	}

	sess, err := m.repo.CurrentSession(ctx, registerID)
	if err != nil {
		return models.RegisterSession{}, fmt.Errorf("no open session to record sale: %w", err)
	}

	return m.repo.UpdateSession(ctx, sess.ID, func(s *models.RegisterSession) error {
		if s.IsClosed() {
			return fmt.Errorf("session %s is closed: %w", s.ID, store.ErrConflict)
		}
		s.TotalSales += amount
		return nil
	})
}

// Close ends the register's open session. Expected amount and the
// discrepancy against the counted drawer are recorded as reporting
// values; the close succeeds regardless of the difference.
func (m *Manager) Close(ctx context.Context, registerID uuid.UUID, closingAmount float64) (models.RegisterSession, error) {
	sess, err := m.repo.CurrentSession(ctx, registerID)
	if err != nil {
		return models.RegisterSession{}, err
	}

	closed, err := m.repo.CloseSession(ctx, sess.ID, func(s *models.RegisterSession) error {
		if s.IsClosed() {
			return fmt.Errorf("session %s already closed: %w", s.ID, store.ErrConflict)
		}
		now := time.Now().UTC()
		expected := s.OpeningAmount + s.TotalSales
		discrepancy := closingAmount - expected
		s.ClosingAmount = &closingAmount
		s.EndTime = &now
		s.ExpectedAmount = &expected
		s.Discrepancy = &discrepancy
		return nil
	})
	if err != nil {
		return models.RegisterSession{}, err
	}

	logrus.WithFields(logrus.Fields{
		"register_id": registerID,
		"session_id":  closed.ID,
		"expected":    *closed.ExpectedAmount,
		"counted":     closingAmount,
		"discrepancy": *closed.Discrepancy,
	}).Info("register session closed")
	return closed, nil
}

// Current returns the register's open session.
func (m *Manager) Current(ctx context.Context, registerID uuid.UUID) (models.RegisterSession, error) {
	return m.repo.CurrentSession(ctx, registerID)
}
