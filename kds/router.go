// Package kds filters and groups active orders for kitchen-station
// displays. Pure functions over order snapshots; handlers feed them
// from the repository.
package kds

import (
	"sort"

	"github.com/ray-remotestate/pos/models"
)

func itemInArea(item models.OrderItem, area models.ProductionArea) bool {
	return area == models.AreaAll || item.Product.ProductionArea == area
}

// VisibleOrders returns the station's queue: orders still in production
// (PENDING or PREPARING) that contain at least one item for the area,
// oldest first.
func VisibleOrders(all []models.Order, area models.ProductionArea) []models.Order {
	var visible []models.Order
	for _, o := range all {
		if o.Status != models.StatusPending && o.Status != models.StatusPreparing {
			continue
		}
		for _, item := range o.Items {
			if itemInArea(item, area) {
				visible = append(visible, o)
				break
			}
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].CreatedAt.Before(visible[j].CreatedAt)
	})
	return visible
}

// IsAreaComplete reports whether every item of the order belonging to
// the area is READY. An order with no items in the area counts as
// complete for it.
func IsAreaComplete(o models.Order, area models.ProductionArea) bool {
	for _, item := range o.Items {
		if itemInArea(item, area) && item.Status != models.ItemReady {
			return false
		}
	}
	return true
}
