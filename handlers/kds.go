package handlers

import (
	"net/http"

	"github.com/ray-remotestate/pos/kds"
	"github.com/ray-remotestate/pos/models"
	"github.com/ray-remotestate/pos/utils"
)

type kdsOrder struct {
	models.Order
	AreaComplete bool `json:"area_complete"`
}

// GetKDS returns the station queue for ?area= (kitchen|bar|grill|ALL),
// oldest order first, each flagged with whether the station's portion
// is done.
func (a *API) GetKDS(w http.ResponseWriter, r *http.Request) {
	branchID, err := branchFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	area := models.ProductionArea(r.URL.Query().Get("area"))
	if area == "" {
		area = models.AreaAll
	}
	if area != models.AreaAll && !area.IsValid() {
		http.Error(w, "unknown production area", http.StatusBadRequest)
		return
	}

	open, err := a.Orders.OpenOrders(r.Context(), branchID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	visible := kds.VisibleOrders(open, area)
	queue := make([]kdsOrder, 0, len(visible))
	for _, o := range visible {
		queue = append(queue, kdsOrder{Order: o, AreaComplete: kds.IsAreaComplete(o, area)})
	}
	utils.RespondJSON(w, http.StatusOK, queue)
}
