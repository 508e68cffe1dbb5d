package handlers

import (
	"net/http"

	"github.com/ray-remotestate/pos/models"
	"github.com/ray-remotestate/pos/utils"
)

type inventoryRow struct {
	models.InventoryItem
	LowStock bool `json:"low_stock"`
}

// ListInventory is the read-only stock view feeding the replenishment
// screen. Stock itself is only ever mutated by sales and purchases,
// never through this API.
func (a *API) ListInventory(w http.ResponseWriter, r *http.Request) {
	branchID, err := branchFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items, err := a.Repo.ListInventory(r.Context(), branchID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	rows := make([]inventoryRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, inventoryRow{InventoryItem: item, LowStock: item.IsLowStock()})
	}
	utils.RespondJSON(w, http.StatusOK, rows)
}
