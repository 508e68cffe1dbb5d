package orders

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ray-remotestate/pos/models"
	"github.com/ray-remotestate/pos/store"
)

// BuildOptions carries the optional parts of an order submission. A
// non-nil PaymentMethod selects the direct-payment entry point
// (pay-now, no separate send step).
type BuildOptions struct {
	TableID       *uuid.UUID
	CustomerID    *uuid.UUID
	Discount      float64
	PaymentMethod *string
}

// Build constructs an Order from a cart. It validates before computing
// anything; on success every item starts PENDING and the order status
// reflects the entry point: send-to-kitchen orders start PREPARING,
// direct payments complete immediately unless they are dine-in and
// still need kitchen routing.
func Build(cart []models.OrderItem, typ models.OrderType, branchID uuid.UUID, taxRate float64, opts BuildOptions) (models.Order, error) {
	if len(cart) == 0 {
		return models.Order{}, fmt.Errorf("cart is empty: %w", store.ErrValidation)
	}
	if !typ.IsValid() {
		return models.Order{}, fmt.Errorf("unknown order type %q: %w", typ, store.ErrValidation)
	}
	if typ == models.OrderDineIn && opts.TableID == nil {
		return models.Order{}, fmt.Errorf("dine-in order needs a table: %w", store.ErrValidation)
	}
	if opts.Discount < 0 {
		return models.Order{}, fmt.Errorf("negative discount: %w", store.ErrValidation)
	}

	var subtotal, totalCost float64
	items := make([]models.OrderItem, 0, len(cart))
	for _, line := range cart {
		if line.Quantity <= 0 {
			return models.Order{}, fmt.Errorf("product %q: quantity must be positive: %w", line.Product.Name, store.ErrValidation)
		}
		if !line.Product.IsActive {
			return models.Order{}, fmt.Errorf("product %q is not for sale: %w", line.Product.Name, store.ErrValidation)
		}
		subtotal += line.Product.Price * line.Quantity
		totalCost += line.Product.Cost * line.Quantity
		line.Status = models.ItemPending
		items = append(items, line)
	}

	tax := subtotal * taxRate
	total := subtotal + tax - opts.Discount
	if total < 0 {
		total = 0
	}

	status := models.StatusPreparing
	if opts.PaymentMethod != nil && typ != models.OrderDineIn {
		// cash-and-carry checkout skips the kitchen workflow entirely
		status = models.StatusCompleted
	}

	return models.Order{
		ID:            uuid.New(),
		BranchID:      branchID,
		TableID:       opts.TableID,
		Type:          typ,
		Status:        status,
		Items:         items,
		Subtotal:      subtotal,
		Tax:           tax,
		Discount:      opts.Discount,
		Total:         total,
		TotalCost:     totalCost,
		PaymentMethod: opts.PaymentMethod,
		CustomerID:    opts.CustomerID,
		CreatedAt:     time.Now().UTC(),
	}, nil
}
