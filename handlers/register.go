package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ray-remotestate/pos/middlewares"
	"github.com/ray-remotestate/pos/utils"
)

func (a *API) OpenRegister(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid register id", http.StatusBadRequest)
		return
	}

	claims, err := middlewares.GetAuthenticatedStaff(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		OpeningAmount float64 `json:"opening_amount"`
	}
	if err := utils.ParseBody(r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	sess, err := a.Registers.Open(r.Context(), id, claims.UserID, claims.Name, req.OpeningAmount)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, sess)
}

func (a *API) CloseRegister(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid register id", http.StatusBadRequest)
		return
	}

	var req struct {
		ClosingAmount float64 `json:"closing_amount"`
	}
	if err := utils.ParseBody(r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	sess, err := a.Registers.Close(r.Context(), id, req.ClosingAmount)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, sess)
}
