package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/atomic"

	"github.com/ray-remotestate/pos/handlers"
	"github.com/ray-remotestate/pos/middlewares"
)

type Server struct {
	Router *mux.Router
	server *http.Server
	ready  atomic.Bool
}

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

func SetupRoutes(api *handlers.API) *Server {
	svr := &Server{}
	router := mux.NewRouter()
	authRoutes := router.PathPrefix("/api").Subrouter()
	authRoutes.Use(middlewares.AuthMiddleware)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, fmt.Sprintf(`{"alive": %t}`, svr.ready.Load()))
	}).Methods("GET")

	// order taking and table bills: waiters, cashiers, admins
	orderRoutes := authRoutes.NewRoute().Subrouter()
	orderRoutes.Use(middlewares.RequireAccess(middlewares.ResourceOrders))

	orderRoutes.HandleFunc("/orders", api.CreateOrder).Methods("POST")
	orderRoutes.HandleFunc("/orders", api.ListOpenOrders).Methods("GET")
	orderRoutes.HandleFunc("/orders/{id}", api.GetOrder).Methods("GET")
	orderRoutes.HandleFunc("/orders/{id}/status", api.UpdateOrderStatus).Methods("PATCH")
	orderRoutes.HandleFunc("/orders/{id}/items", api.MarkItemsReady).Methods("PATCH")
	orderRoutes.HandleFunc("/orders/{id}/cancel", api.CancelOrder).Methods("POST")
	orderRoutes.HandleFunc("/orders/{id}/settle", api.SettleOrder).Methods("POST")
	orderRoutes.HandleFunc("/tables/{id}/settle", api.SettleTable).Methods("POST")
	orderRoutes.HandleFunc("/tables/{id}/bill", api.GetTableBill).Methods("GET")

	// kitchen display: chefs and admins
	kdsRoutes := authRoutes.NewRoute().Subrouter()
	kdsRoutes.Use(middlewares.RequireAccess(middlewares.ResourceKDS))

	kdsRoutes.HandleFunc("/kds", api.GetKDS).Methods("GET")

	// cash registers: cashiers and admins
	registerRoutes := authRoutes.NewRoute().Subrouter()
	registerRoutes.Use(middlewares.RequireAccess(middlewares.ResourceRegisters))

	registerRoutes.HandleFunc("/registers/{id}/open", api.OpenRegister).Methods("POST")
	registerRoutes.HandleFunc("/registers/{id}/close", api.CloseRegister).Methods("POST")

	inventoryRoutes := authRoutes.NewRoute().Subrouter()
	inventoryRoutes.Use(middlewares.RequireAccess(middlewares.ResourceInventory))

	inventoryRoutes.HandleFunc("/inventory", api.ListInventory).Methods("GET")

	svr.Router = router
	return svr
}

func (svr *Server) Run(port string) error {
	svr.server = &http.Server{
		Addr:              port,
		Handler:           svr.Router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	svr.ready.Store(true)
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	svr.ready.Store(false)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}
