package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ray-remotestate/pos/models"
	"github.com/ray-remotestate/pos/orders"
	"github.com/ray-remotestate/pos/store"
	"github.com/ray-remotestate/pos/utils"
)

type createOrderRequest struct {
	Items         []orders.CartLine `json:"items"`
	Type          models.OrderType  `json:"type"`
	BranchID      uuid.UUID         `json:"branch_id"`
	TableID       *uuid.UUID        `json:"table_id,omitempty"`
	CustomerID    *uuid.UUID        `json:"customer_id,omitempty"`
	Discount      float64           `json:"discount,omitempty"`
	PaymentMethod *string           `json:"payment_method,omitempty"`
	RegisterID    *uuid.UUID        `json:"register_id,omitempty"`
}

type createOrderResponse struct {
	Order    models.Order `json:"order"`
	LowStock []string     `json:"low_stock,omitempty"`
}

func (a *API) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := utils.ParseBody(r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	cart, err := a.Orders.ResolveCart(r.Context(), req.Items)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	order, low, err := a.Orders.Submit(r.Context(), cart, req.Type, req.BranchID, orders.SubmitOptions{
		BuildOptions: orders.BuildOptions{
			TableID:       req.TableID,
			CustomerID:    req.CustomerID,
			Discount:      req.Discount,
			PaymentMethod: req.PaymentMethod,
		},
		RegisterID: req.RegisterID,
	})
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, createOrderResponse{Order: order, LowStock: low})
}

func (a *API) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	order, err := a.Orders.Get(r.Context(), id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, order)
}

func (a *API) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := utils.ParseBody(r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	order, err := a.Orders.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, order)
}

func (a *API) MarkItemsReady(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req struct {
		Area models.ProductionArea `json:"area"`
	}
	if err := utils.ParseBody(r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	order, err := a.Orders.MarkAreaReady(r.Context(), id, req.Area)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, order)
}

func (a *API) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	order, err := a.Orders.Cancel(r.Context(), id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, order)
}

func (a *API) SettleOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req struct {
		PaymentMethod string     `json:"payment_method"`
		RegisterID    *uuid.UUID `json:"register_id,omitempty"`
	}
	if err := utils.ParseBody(r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if req.PaymentMethod == "" {
		http.Error(w, "missing payment method", http.StatusBadRequest)
		return
	}

	order, err := a.Orders.SettleOrder(r.Context(), id, req.PaymentMethod, req.RegisterID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, order)
}

func (a *API) ListOpenOrders(w http.ResponseWriter, r *http.Request) {
	branchID, err := branchFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	open, err := a.Orders.OpenOrders(r.Context(), branchID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, open)
}

func branchFromQuery(r *http.Request) (uuid.UUID, error) {
	raw := r.URL.Query().Get("branch_id")
	if raw == "" {
		return uuid.Nil, fmt.Errorf("missing branch_id: %w", store.ErrValidation)
	}
	return uuid.Parse(raw)
}
