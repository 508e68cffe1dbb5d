// Package orders turns carts into persisted orders and drives them
// through the kitchen-to-payment lifecycle.
package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/pos/alerts"
	"github.com/ray-remotestate/pos/inventory"
	"github.com/ray-remotestate/pos/models"
	"github.com/ray-remotestate/pos/store"
)

// SaleRecorder accumulates a completed payment into the register's open
// session. Implemented by registers.Manager.
type SaleRecorder interface {
	RecordSale(ctx context.Context, registerID uuid.UUID, amount float64) (models.RegisterSession, error)
}

type Service struct {
	repo     store.Repository
	ledger   *inventory.Ledger
	notifier alerts.Notifier
	sales    SaleRecorder
	taxRate  float64
}

func NewService(repo store.Repository, ledger *inventory.Ledger, notifier alerts.Notifier, sales SaleRecorder, taxRate float64) *Service {
	return &Service{
		repo:     repo,
		ledger:   ledger,
		notifier: notifier,
		sales:    sales,
		taxRate:  taxRate,
	}
}

// CartLine is one submitted cart row, by product reference.
type CartLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  float64   `json:"quantity"`
	Notes     string    `json:"notes,omitempty"`
}

// ResolveCart loads current product snapshots for the submitted lines.
func (s *Service) ResolveCart(ctx context.Context, lines []CartLine) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		p, err := s.repo.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, models.OrderItem{
			Product:  p,
			Quantity: line.Quantity,
			Notes:    line.Notes,
		})
	}
	return items, nil
}

// SubmitOptions extends BuildOptions with the register used for a
// direct payment, so pay-now orders land in the open session.
type SubmitOptions struct {
	BuildOptions
	RegisterID *uuid.UUID
}

// Submit builds the order, commits it together with its stock
// deduction, binds dine-in orders to their table and, for direct
// payments that complete immediately, records the sale. Returns the
// created order and the names of any items left at or below minimum
// stock.
func (s *Service) Submit(ctx context.Context, cart []models.OrderItem, typ models.OrderType, branchID uuid.UUID, opts SubmitOptions) (models.Order, []string, error) {
	order, err := Build(cart, typ, branchID, s.taxRate, opts.BuildOptions)
	if err != nil {
		return models.Order{}, nil, err
	}

	// validate the table and the register before committing anything
	if order.TableID != nil {
		if _, err := s.repo.GetTable(ctx, *order.TableID); err != nil {
			return models.Order{}, nil, err
		}
	}
	if order.Status == models.StatusCompleted {
		if err := s.ensureSession(ctx, opts.RegisterID); err != nil {
			return models.Order{}, nil, err
		}
	}

	qty, warnings, err := s.ledger.Requirements(ctx, order.Items)
	if err != nil {
		return models.Order{}, nil, err
	}
	if warnings.ErrorOrNil() != nil {
		logrus.WithField("order_id", order.ID).Warnf("recipe expansion incomplete: %v", warnings)
	}

	touched, missing, err := s.repo.CreateOrder(ctx, order, qty)
	if err != nil {
		return models.Order{}, nil, err
	}
	inventory.ReportMissing(branchID, missing)

	low := inventory.LowStockNames(touched)
	s.notifier.LowStock(branchID.String(), low)

	if order.TableID != nil {
		orderID := order.ID
		if _, err := s.repo.UpdateTable(ctx, *order.TableID, func(t *models.Table) error {
			t.Status = models.TableOccupied
			t.CurrentOrderID = &orderID
			return nil
		}); err != nil {
			return models.Order{}, nil, fmt.Errorf("binding order to table: %w", err)
		}
	}

	if order.Status == models.StatusCompleted {
		if err := s.recordSale(ctx, opts.RegisterID, order.Total); err != nil {
			return models.Order{}, nil, err
		}
	}
	return order, low, nil
}

// Get returns one order.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (models.Order, error) {
	return s.repo.GetOrder(ctx, id)
}

// OpenOrders lists the branch's non-terminal orders.
func (s *Service) OpenOrders(ctx context.Context, branchID uuid.UUID) ([]models.Order, error) {
	return s.repo.ListOpenOrders(ctx, branchID)
}

// TableBill returns the table's outstanding balance and the open orders
// behind it.
func (s *Service) TableBill(ctx context.Context, tableID uuid.UUID) (float64, []models.Order, error) {
	open, err := s.repo.ListOpenOrdersByTable(ctx, tableID)
	if err != nil {
		return 0, nil, err
	}
	return BillFor(tableID, open), open, nil
}

// ensureSession checks the register has an open session to receive the
// payment. Runs before the order commit so a closed register rejects
// the whole operation instead of stranding a completed order.
func (s *Service) ensureSession(ctx context.Context, registerID *uuid.UUID) error {
	if registerID == nil || s.sales == nil {
		return nil
	}
	if _, err := s.repo.CurrentSession(ctx, *registerID); err != nil {
		return fmt.Errorf("register %s cannot take the payment: %w", *registerID, err)
	}
	return nil
}

func (s *Service) recordSale(ctx context.Context, registerID *uuid.UUID, amount float64) error {
	if registerID == nil || s.sales == nil {
		return nil
	}
	if _, err := s.sales.RecordSale(ctx, *registerID, amount); err != nil {
		return fmt.Errorf("recording sale: %w", err)
	}
	return nil
}
