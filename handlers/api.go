package handlers

import (
	"github.com/ray-remotestate/pos/orders"
	"github.com/ray-remotestate/pos/registers"
	"github.com/ray-remotestate/pos/store"
)

// API bundles the services behind the HTTP boundary.
type API struct {
	Orders    *orders.Service
	Registers *registers.Manager
	Repo      store.Repository
}

func NewAPI(orderSvc *orders.Service, registerMgr *registers.Manager, repo store.Repository) *API {
	return &API{
		Orders:    orderSvc,
		Registers: registerMgr,
		Repo:      repo,
	}
}
