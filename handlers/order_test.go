package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ray-remotestate/pos/alerts"
	"github.com/ray-remotestate/pos/handlers"
	"github.com/ray-remotestate/pos/inventory"
	"github.com/ray-remotestate/pos/models"
	"github.com/ray-remotestate/pos/orders"
	"github.com/ray-remotestate/pos/registers"
	"github.com/ray-remotestate/pos/store/memory"
)

type apiFixture struct {
	api    *handlers.API
	repo   *memory.Store
	branch uuid.UUID
	table  uuid.UUID
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	repo := memory.New()
	notifier := alerts.NewLogNotifier()
	mgr := registers.NewManager(repo)
	svc := orders.NewService(repo, inventory.NewLedger(repo, notifier), notifier, mgr, 0.16)

	f := &apiFixture{
		api:    handlers.NewAPI(svc, mgr, repo),
		repo:   repo,
		branch: uuid.New(),
		table:  uuid.New(),
	}
	require.NoError(t, repo.UpsertTable(context.Background(), models.Table{
		ID: f.table, BranchID: f.branch, Name: "T1", Seats: 2, Status: models.TableAvailable,
	}))
	return f
}

func (f *apiFixture) seedProduct(t *testing.T, name string, price float64, area models.ProductionArea) models.Product {
	t.Helper()
	ctx := context.Background()
	invID := uuid.New()
	require.NoError(t, f.repo.UpsertInventoryItem(ctx, models.InventoryItem{
		ID: invID, BranchID: f.branch, Name: name + " base", Stock: 50, MinStock: 5,
	}))
	p := models.Product{
		ID:             uuid.New(),
		Name:           name,
		Price:          price,
		ProductionArea: area,
		Ingredients:    []models.Ingredient{{InventoryItemID: invID, Quantity: 1}},
		IsActive:       true,
	}
	require.NoError(t, f.repo.UpsertProduct(ctx, p))
	return p
}

// router wires the handlers without the auth middleware; claims-based
// gating is covered in the middlewares package tests.
func (f *apiFixture) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/orders", f.api.CreateOrder).Methods("POST")
	r.HandleFunc("/orders/{id}/status", f.api.UpdateOrderStatus).Methods("PATCH")
	r.HandleFunc("/orders/{id}/items", f.api.MarkItemsReady).Methods("PATCH")
	r.HandleFunc("/orders/{id}/cancel", f.api.CancelOrder).Methods("POST")
	r.HandleFunc("/orders/{id}/settle", f.api.SettleOrder).Methods("POST")
	r.HandleFunc("/tables/{id}/settle", f.api.SettleTable).Methods("POST")
	r.HandleFunc("/tables/{id}/bill", f.api.GetTableBill).Methods("GET")
	r.HandleFunc("/kds", f.api.GetKDS).Methods("GET")
	return r
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrderEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	p := f.seedProduct(t, "Hamburguesa", 12.00, models.AreaGrill)
	router := f.router()

	rec := doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"items":     []map[string]interface{}{{"product_id": p.ID, "quantity": 2}},
		"type":      "dine_in",
		"branch_id": f.branch,
		"table_id":  f.table,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 27.84, resp.Order.Total, 1e-9)
	assert.Equal(t, models.StatusPreparing, resp.Order.Status)

	// empty cart is rejected before any mutation
	rec = doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"items":     []map[string]interface{}{},
		"type":      "takeaway",
		"branch_id": f.branch,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown product
	rec = doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"items":     []map[string]interface{}{{"product_id": uuid.New(), "quantity": 1}},
		"type":      "takeaway",
		"branch_id": f.branch,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderStatusAndKDSFlow(t *testing.T) {
	f := newAPIFixture(t)
	p := f.seedProduct(t, "Hamburguesa", 12.00, models.AreaGrill)
	router := f.router()

	rec := doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"items":     []map[string]interface{}{{"product_id": p.ID, "quantity": 1}},
		"type":      "dine_in",
		"branch_id": f.branch,
		"table_id":  f.table,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// visible on the grill station, absent from the bar
	rec = doJSON(t, router, "GET", fmt.Sprintf("/kds?branch_id=%s&area=grill", f.branch), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var queue []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &queue))
	assert.Len(t, queue, 1)
	assert.Equal(t, false, queue[0]["area_complete"])

	rec = doJSON(t, router, "GET", fmt.Sprintf("/kds?branch_id=%s&area=bar", f.branch), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &queue))
	assert.Empty(t, queue)

	// grill finishes its portion; the one-item order goes READY
	rec = doJSON(t, router, "PATCH", "/orders/"+created.Order.ID.String()+"/items",
		map[string]interface{}{"area": "grill"})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, models.StatusReady, updated.Status)

	// settle the table
	rec = doJSON(t, router, "POST", "/tables/"+f.table.String()+"/settle",
		map[string]interface{}{"payment_method": "cash"})
	require.Equal(t, http.StatusOK, rec.Code)

	// settling again conflicts
	rec = doJSON(t, router, "POST", "/tables/"+f.table.String()+"/settle",
		map[string]interface{}{"payment_method": "cash"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// terminal order rejects cancellation
	rec = doJSON(t, router, "POST", "/orders/"+created.Order.ID.String()+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSettleOrderEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	p := f.seedProduct(t, "Torta", 6.00, models.AreaKitchen)
	router := f.router()
	ctx := context.Background()

	// a takeaway sent without payment stays open at the counter
	rec := doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"items":     []map[string]interface{}{{"product_id": p.ID, "quantity": 1}},
		"type":      "takeaway",
		"branch_id": f.branch,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, models.StatusPreparing, created.Order.Status)

	registerID := uuid.New()
	require.NoError(t, f.repo.UpsertRegister(ctx, models.CashRegister{
		ID: registerID, BranchID: f.branch, Name: "Caja 1", IsActive: true,
	}))

	// the register has no open session yet, so the payment is refused
	// and the order stays exactly as it was
	rec = doJSON(t, router, "POST", "/orders/"+created.Order.ID.String()+"/settle",
		map[string]interface{}{"payment_method": "card", "register_id": registerID})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	mgr := registers.NewManager(f.repo)
	_, err := mgr.Open(ctx, registerID, uuid.New(), "ana", 100)
	require.NoError(t, err)

	rec = doJSON(t, router, "POST", "/orders/"+created.Order.ID.String()+"/settle",
		map[string]interface{}{"payment_method": "card", "register_id": registerID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var settled models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settled))
	assert.Equal(t, models.StatusCompleted, settled.Status)
	require.NotNil(t, settled.PaymentMethod)
	assert.Equal(t, "card", *settled.PaymentMethod)

	sess, err := mgr.Current(ctx, registerID)
	require.NoError(t, err)
	assert.InDelta(t, created.Order.Total, sess.TotalSales, 1e-9)

	// paying twice conflicts
	rec = doJSON(t, router, "POST", "/orders/"+created.Order.ID.String()+"/settle",
		map[string]interface{}{"payment_method": "cash", "register_id": registerID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// missing payment method is rejected up front
	rec = doJSON(t, router, "POST", "/orders/"+created.Order.ID.String()+"/settle",
		map[string]interface{}{"register_id": registerID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTableBillEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	p := f.seedProduct(t, "Taco", 5.00, models.AreaKitchen)
	router := f.router()

	for i := 0; i < 2; i++ {
		rec := doJSON(t, router, "POST", "/orders", map[string]interface{}{
			"items":     []map[string]interface{}{{"product_id": p.ID, "quantity": 1}},
			"type":      "dine_in",
			"branch_id": f.branch,
			"table_id":  f.table,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, "GET", "/tables/"+f.table.String()+"/bill", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var bill struct {
		Total  float64        `json:"total"`
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bill))
	assert.Len(t, bill.Orders, 2)
	assert.InDelta(t, 11.60, bill.Total, 1e-9) // 2 x (5.00 * 1.16)
}
