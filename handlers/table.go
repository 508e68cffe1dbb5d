package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ray-remotestate/pos/models"
	"github.com/ray-remotestate/pos/utils"
)

type settleTableRequest struct {
	PaymentMethod string     `json:"payment_method"`
	RegisterID    *uuid.UUID `json:"register_id,omitempty"`
}

type settleTableResponse struct {
	Orders []models.Order `json:"orders"`
	Total  float64        `json:"total"`
}

func (a *API) SettleTable(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid table id", http.StatusBadRequest)
		return
	}

	var req settleTableRequest
	if err := utils.ParseBody(r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if req.PaymentMethod == "" {
		http.Error(w, "missing payment method", http.StatusBadRequest)
		return
	}

	completed, err := a.Orders.SettleTable(r.Context(), id, req.PaymentMethod, req.RegisterID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	var total float64
	for _, o := range completed {
		total += o.Total
	}
	utils.RespondJSON(w, http.StatusOK, settleTableResponse{Orders: completed, Total: total})
}

type tableBillResponse struct {
	TableID uuid.UUID      `json:"table_id"`
	Total   float64        `json:"total"`
	Orders  []models.Order `json:"orders"`
}

func (a *API) GetTableBill(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid table id", http.StatusBadRequest)
		return
	}

	total, open, err := a.Orders.TableBill(r.Context(), id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, tableBillResponse{TableID: id, Total: total, Orders: open})
}
