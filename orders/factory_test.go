package orders

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ray-remotestate/pos/models"
	"github.com/ray-remotestate/pos/store"
)

func cartOf(items ...models.OrderItem) []models.OrderItem {
	return items
}

func product(name string, price, cost float64, area models.ProductionArea) models.Product {
	return models.Product{
		ID:             uuid.New(),
		Name:           name,
		Price:          price,
		Cost:           cost,
		ProductionArea: area,
		IsActive:       true,
	}
}

func TestBuildTotals(t *testing.T) {
	branch := uuid.New()
	cart := cartOf(models.OrderItem{Product: product("Hamburguesa", 12.00, 4.50, models.AreaGrill), Quantity: 2})

	order, err := Build(cart, models.OrderTakeaway, branch, 0.16, BuildOptions{})
	require.NoError(t, err)

	assert.InDelta(t, 24.00, order.Subtotal, 1e-9)
	assert.InDelta(t, 3.84, order.Tax, 1e-9)
	assert.InDelta(t, 27.84, order.Total, 1e-9)
	assert.InDelta(t, 9.00, order.TotalCost, 1e-9)
	assert.InDelta(t, order.Subtotal+order.Tax-order.Discount, order.Total, 1e-9)
	assert.Equal(t, branch, order.BranchID)
	for _, item := range order.Items {
		assert.Equal(t, models.ItemPending, item.Status)
	}
}

func TestBuildDiscountFloor(t *testing.T) {
	cart := cartOf(models.OrderItem{Product: product("Cola", 2.00, 0.50, models.AreaBar), Quantity: 1})

	order, err := Build(cart, models.OrderTakeaway, uuid.New(), 0.16, BuildOptions{Discount: 100})
	require.NoError(t, err)
	assert.Equal(t, 0.0, order.Total)
}

func TestBuildStatusByEntryPoint(t *testing.T) {
	cash := "cash"
	tableID := uuid.New()
	cart := cartOf(models.OrderItem{Product: product("Cerveza", 3.50, 1.00, models.AreaBar), Quantity: 1})

	sent, err := Build(cart, models.OrderDineIn, uuid.New(), 0.16, BuildOptions{TableID: &tableID})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, sent.Status)
	assert.Nil(t, sent.PaymentMethod)

	walkUp, err := Build(cart, models.OrderTakeaway, uuid.New(), 0.16, BuildOptions{PaymentMethod: &cash})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, walkUp.Status)

	dineInPaid, err := Build(cart, models.OrderDineIn, uuid.New(), 0.16, BuildOptions{TableID: &tableID, PaymentMethod: &cash})
	require.NoError(t, err)
	// paid dine-in still needs kitchen routing
	assert.Equal(t, models.StatusPreparing, dineInPaid.Status)
}

func TestBuildValidation(t *testing.T) {
	valid := cartOf(models.OrderItem{Product: product("Taco", 5.00, 1.50, models.AreaKitchen), Quantity: 1})

	_, err := Build(nil, models.OrderTakeaway, uuid.New(), 0.16, BuildOptions{})
	assert.ErrorIs(t, err, store.ErrValidation)

	_, err = Build(valid, models.OrderDineIn, uuid.New(), 0.16, BuildOptions{})
	assert.ErrorIs(t, err, store.ErrValidation, "dine-in without a table")

	_, err = Build(valid, models.OrderType("drive_thru"), uuid.New(), 0.16, BuildOptions{})
	assert.ErrorIs(t, err, store.ErrValidation)

	zeroQty := cartOf(models.OrderItem{Product: product("Taco", 5.00, 1.50, models.AreaKitchen), Quantity: 0})
	_, err = Build(zeroQty, models.OrderTakeaway, uuid.New(), 0.16, BuildOptions{})
	assert.ErrorIs(t, err, store.ErrValidation)

	inactive := product("Retired", 9.00, 2.00, models.AreaKitchen)
	inactive.IsActive = false
	_, err = Build(cartOf(models.OrderItem{Product: inactive, Quantity: 1}), models.OrderTakeaway, uuid.New(), 0.16, BuildOptions{})
	assert.ErrorIs(t, err, store.ErrValidation)

	_, err = Build(valid, models.OrderTakeaway, uuid.New(), 0.16, BuildOptions{Discount: -1})
	assert.ErrorIs(t, err, store.ErrValidation)
}
