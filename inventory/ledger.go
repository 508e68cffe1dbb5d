// Package inventory holds the stock ledger: recipe-based deduction with
// recursive combo expansion and low-stock detection.
package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/pos/alerts"
	"github.com/ray-remotestate/pos/models"
	"github.com/ray-remotestate/pos/store"
)

type Ledger struct {
	repo     store.Repository
	notifier alerts.Notifier
}

func NewLedger(repo store.Repository, notifier alerts.Notifier) *Ledger {
	return &Ledger{repo: repo, notifier: notifier}
}

// Requirements flattens the cart into per-inventory-item quantities by
// recursively expanding combos. A combo cycle aborts the whole
// expansion with ErrInvariant before anything is deducted. A combo line
// referencing a product that no longer exists is skipped; each skip is
// warn-logged and aggregated into the returned warnings value so the
// caller can surface the under-deduction.
func (l *Ledger) Requirements(ctx context.Context, items []models.OrderItem) (map[uuid.UUID]float64, *multierror.Error, error) {
	qty := make(map[uuid.UUID]float64)
	var warnings *multierror.Error

	for _, item := range items {
		visited := map[uuid.UUID]bool{}
		if err := l.expand(ctx, item.Product, item.Quantity, visited, qty, &warnings); err != nil {
			return nil, nil, err
		}
	}
	return qty, warnings, nil
}

// expand walks one product subtree. visited holds the ancestor path of
// the current recursion branch, not all products ever seen, so a combo
// may legitimately bundle the same product twice through different
// parents while a self-reference at any depth fails fast.
func (l *Ledger) expand(ctx context.Context, p models.Product, quantity float64, visited map[uuid.UUID]bool, qty map[uuid.UUID]float64, warnings **multierror.Error) error {
	if visited[p.ID] {
		return fmt.Errorf("combo cycle through product %q (%s): %w", p.Name, p.ID, store.ErrInvariant)
	}

	if p.IsCombo {
		visited[p.ID] = true
		defer delete(visited, p.ID)

		for _, ci := range p.ComboItems {
			sub, err := l.repo.GetProduct(ctx, ci.ProductID)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"combo_id":   p.ID,
					"product_id": ci.ProductID,
				}).Warn("combo references missing product, skipping line")
				*warnings = multierror.Append(*warnings, fmt.Errorf("combo %q: missing product %s", p.Name, ci.ProductID))
				continue
			}
			if err := l.expand(ctx, sub, quantity*ci.Quantity, visited, qty, warnings); err != nil {
				return err
			}
		}
		return nil
	}

	for _, ing := range p.Ingredients {
		qty[ing.InventoryItemID] += ing.Quantity * quantity
	}
	return nil
}

// Deduct applies the cart's flattened requirements against the branch
// stock in one commit and reports which items fell to or below their
// minimum. Over-selling is allowed; negative stock is a signal, not an
// error. Inventory references that do not exist in the branch are
// skipped and warn-logged (known soft-fail: the sale proceeds
// under-deducted).
func (l *Ledger) Deduct(ctx context.Context, branchID uuid.UUID, items []models.OrderItem) ([]string, error) {
	qty, warnings, err := l.Requirements(ctx, items)
	if err != nil {
		return nil, err
	}
	if warnings.ErrorOrNil() != nil {
		logrus.WithField("branch_id", branchID).Warnf("deduction incomplete: %v", warnings)
	}

	touched, missing, err := l.repo.DeductStock(ctx, branchID, qty)
	if err != nil {
		return nil, err
	}
	ReportMissing(branchID, missing)

	low := LowStockNames(touched)
	l.notifier.LowStock(branchID.String(), low)
	return low, nil
}

// LowStockNames extracts the deduplicated, sorted names of items at or
// below their minimum stock.
func LowStockNames(items []models.InventoryItem) []string {
	seen := map[string]bool{}
	var names []string
	for _, item := range items {
		if item.IsLowStock() && !seen[item.Name] {
			seen[item.Name] = true
			names = append(names, item.Name)
		}
	}
	sort.Strings(names)
	return names
}

// ReportMissing logs inventory references a deduction could not
// resolve.
func ReportMissing(branchID uuid.UUID, missing []uuid.UUID) {
	for _, id := range missing {
		logrus.WithFields(logrus.Fields{
			"branch_id":         branchID,
			"inventory_item_id": id,
		}).Warn("recipe references missing inventory item, line skipped")
	}
}
