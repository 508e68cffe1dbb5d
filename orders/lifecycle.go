package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ray-remotestate/pos/models"
	"github.com/ray-remotestate/pos/store"
)

// Order state machine: PENDING -> PREPARING -> READY -> COMPLETED, with
// CANCELLED reachable from any non-terminal state. Items only move
// PENDING -> READY. ON_WAY/DELIVERED are reserved for an external
// delivery flow and are never produced here.

func validTarget(s models.OrderStatus) bool {
	switch s {
	case models.StatusPending, models.StatusPreparing, models.StatusReady,
		models.StatusCompleted, models.StatusCancelled,
		models.StatusOnWay, models.StatusDelivered:
		return true
	}
	return false
}

// stampReady records readyAt exactly once. Returns true only on the
// first stamp, so the kitchen-ready signal never fires twice for one
// order.
func stampReady(o *models.Order) bool {
	if o.ReadyAt != nil {
		return false
	}
	now := time.Now().UTC()
	o.ReadyAt = &now
	return true
}

// SetStatus overwrites the order status. Terminal orders reject further
// mutation. Moving to READY stamps readyAt and fires the ready signal,
// idempotently.
func (s *Service) SetStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) (models.Order, error) {
	if !validTarget(status) {
		return models.Order{}, fmt.Errorf("unknown status %q: %w", status, store.ErrValidation)
	}

	ring := false
	updated, err := s.repo.UpdateOrder(ctx, orderID, func(o *models.Order) error {
		if o.Status.IsTerminal() {
			return fmt.Errorf("order %s is %s: %w", o.ID, o.Status, store.ErrConflict)
		}
		o.Status = status
		if status == models.StatusReady {
			ring = stampReady(o)
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	if ring {
		s.notifier.OrderReady(updated)
	}
	return updated, nil
}

// MarkAreaReady flips every item whose production area matches (or all
// items for AreaAll) to READY. If that leaves every item in the order
// ready, the order itself is promoted to READY. Stations complete their
// portions independently; the order only flips once the last one
// finishes. Safe to call repeatedly.
func (s *Service) MarkAreaReady(ctx context.Context, orderID uuid.UUID, area models.ProductionArea) (models.Order, error) {
	if area != models.AreaAll && !area.IsValid() {
		return models.Order{}, fmt.Errorf("unknown production area %q: %w", area, store.ErrValidation)
	}

	ring := false
	updated, err := s.repo.UpdateOrder(ctx, orderID, func(o *models.Order) error {
		if o.Status.IsTerminal() {
			return fmt.Errorf("order %s is %s: %w", o.ID, o.Status, store.ErrConflict)
		}

		items := make([]models.OrderItem, len(o.Items))
		copy(items, o.Items)
		for i := range items {
			if area == models.AreaAll || items[i].Product.ProductionArea == area {
				items[i].Status = models.ItemReady
			}
		}
		o.Items = items

		if o.AllItemsReady() {
			o.Status = models.StatusReady
			ring = stampReady(o)
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	if ring {
		s.notifier.OrderReady(updated)
	}
	return updated, nil
}

// Cancel terminates the order. Cancelled orders drop out of active
// views, table bills and KDS queues but stay on record.
func (s *Service) Cancel(ctx context.Context, orderID uuid.UUID) (models.Order, error) {
	return s.repo.UpdateOrder(ctx, orderID, func(o *models.Order) error {
		if o.Status.IsTerminal() {
			return fmt.Errorf("order %s is %s: %w", o.ID, o.Status, store.ErrConflict)
		}
		o.Status = models.StatusCancelled
		return nil
	})
}

// SettleOrder completes a single ad-hoc order with the given payment
// method and records the revenue into the register's open session.
func (s *Service) SettleOrder(ctx context.Context, orderID uuid.UUID, paymentMethod string, registerID *uuid.UUID) (models.Order, error) {
	if err := s.ensureSession(ctx, registerID); err != nil {
		return models.Order{}, err
	}

	updated, err := s.repo.UpdateOrder(ctx, orderID, func(o *models.Order) error {
		if o.Status.IsTerminal() {
			return fmt.Errorf("order %s is %s: %w", o.ID, o.Status, store.ErrConflict)
		}
		o.Status = models.StatusCompleted
		o.PaymentMethod = &paymentMethod
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	if err := s.recordSale(ctx, registerID, updated.Total); err != nil {
		return models.Order{}, err
	}
	return updated, nil
}

// SettleTable closes the table's bill: every open order bound to the
// table is completed with the same payment method in one batch, the
// table flips back to available and the combined revenue is recorded
// once. Settling a table with nothing open is a conflict.
func (s *Service) SettleTable(ctx context.Context, tableID uuid.UUID, paymentMethod string, registerID *uuid.UUID) ([]models.Order, error) {
	if _, err := s.repo.GetTable(ctx, tableID); err != nil {
		return nil, err
	}

	open, err := s.repo.ListOpenOrdersByTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		return nil, fmt.Errorf("table %s has no open orders: %w", tableID, store.ErrConflict)
	}
	if err := s.ensureSession(ctx, registerID); err != nil {
		return nil, err
	}

	completed, err := s.repo.SettleTable(ctx, tableID, paymentMethod)
	if err != nil {
		return nil, err
	}

	var revenue float64
	for _, o := range completed {
		revenue += o.Total
	}
	if err := s.recordSale(ctx, registerID, revenue); err != nil {
		return nil, err
	}
	return completed, nil
}
