package orders

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ray-remotestate/pos/models"
)

func TestBillForSumsOnlyOpenOrdersOfTable(t *testing.T) {
	tableID := uuid.New()
	otherTable := uuid.New()

	all := []models.Order{
		{TableID: &tableID, Status: models.StatusPreparing, Total: 27.84},
		{TableID: &tableID, Status: models.StatusReady, Total: 15.00},
		{TableID: &tableID, Status: models.StatusCompleted, Total: 99.99},
		{TableID: &tableID, Status: models.StatusCancelled, Total: 50.00},
		{TableID: &otherTable, Status: models.StatusPreparing, Total: 10.00},
		{Status: models.StatusPreparing, Total: 7.00}, // takeaway, no table
	}

	assert.InDelta(t, 42.84, BillFor(tableID, all), 1e-9)
	assert.InDelta(t, 10.00, BillFor(otherTable, all), 1e-9)
	assert.Equal(t, 0.0, BillFor(uuid.New(), all))
}

func TestCheckoutTotal(t *testing.T) {
	assert.InDelta(t, 50.00, CheckoutTotal(30, 20, 0, 0), 1e-9)
	assert.InDelta(t, 45.00, CheckoutTotal(30, 20, 5, 0), 1e-9)
	assert.InDelta(t, 48.00, CheckoutTotal(30, 20, 5, 3), 1e-9)
	// discount can never push the bill below zero; tip rides on top
	assert.InDelta(t, 2.00, CheckoutTotal(10, 5, 100, 2), 1e-9)
}
