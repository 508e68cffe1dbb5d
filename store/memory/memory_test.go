package memory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ray-remotestate/pos/models"
	"github.com/ray-remotestate/pos/store/memory"
)

func TestGetProductHandsOutACopy(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	invID := uuid.New()
	sub := uuid.New()
	p := models.Product{
		ID:          uuid.New(),
		Name:        "Hamburguesa",
		Price:       12.00,
		IsActive:    true,
		Ingredients: []models.Ingredient{{InventoryItemID: invID, Quantity: 0.2}},
		ComboItems:  []models.ComboItem{{ProductID: sub, Quantity: 1}},
	}
	require.NoError(t, repo.UpsertProduct(ctx, p))

	// mutating the caller's value after the upsert must not reach the
	// store, and mutating a read copy must not either
	p.Ingredients[0].Quantity = 99
	p.ComboItems[0].Quantity = 99

	got, err := repo.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, got.Ingredients[0].Quantity, 1e-9)
	assert.InDelta(t, 1, got.ComboItems[0].Quantity, 1e-9)

	got.Ingredients[0].Quantity = 7
	again, err := repo.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, again.Ingredients[0].Quantity, 1e-9)
}

func TestOrderReadsDoNotAliasStoredItems(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	order := models.Order{
		ID:       uuid.New(),
		BranchID: uuid.New(),
		Type:     models.OrderTakeaway,
		Status:   models.StatusPreparing,
		Items: []models.OrderItem{{
			Product: models.Product{
				ID:          uuid.New(),
				Name:        "Taco",
				Ingredients: []models.Ingredient{{InventoryItemID: uuid.New(), Quantity: 1}},
			},
			Quantity: 2,
			Status:   models.ItemPending,
		}},
	}
	_, _, err := repo.CreateOrder(ctx, order, nil)
	require.NoError(t, err)

	got, err := repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	got.Items[0].Status = models.ItemReady
	got.Items[0].Product.Ingredients[0].Quantity = 99

	again, err := repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ItemPending, again.Items[0].Status)
	assert.InDelta(t, 1, again.Items[0].Product.Ingredients[0].Quantity, 1e-9)
}
