package orders

import (
	"github.com/google/uuid"

	"github.com/ray-remotestate/pos/models"
)

// BillFor sums the totals of the table's open orders. Cancelled and
// completed orders never count. Derived on every call; nothing caches
// this.
func BillFor(tableID uuid.UUID, all []models.Order) float64 {
	var total float64
	for _, o := range all {
		if o.TableID != nil && *o.TableID == tableID && o.IsOpen() {
			total += o.Total
		}
	}
	return total
}

// CheckoutTotal is the displayed grand total for an in-progress
// checkout: the table bill plus the tax-inclusive total of the
// not-yet-sent cart, minus the discount, plus the tip. The discount
// applies to the combined base and is capped so the pre-tip amount
// never goes negative. Tip and split count are payment-time values
// only; they are never written back to an order.
func CheckoutTotal(bill, cartTotal, discount, tip float64) float64 {
	total := bill + cartTotal - discount
	if total < 0 {
		total = 0
	}
	return total + tip
}
