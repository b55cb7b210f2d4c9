package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockive-backend/internal/models"
)

func TestPurchaseOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from    models.PurchaseOrderStatus
		to      models.PurchaseOrderStatus
		allowed bool
	}{
		{models.PurchaseOrderStatusDraft, models.PurchaseOrderStatusSubmitted, true},
		{models.PurchaseOrderStatusDraft, models.PurchaseOrderStatusCancelled, true},
		{models.PurchaseOrderStatusDraft, models.PurchaseOrderStatusReceived, false},
		{models.PurchaseOrderStatusSubmitted, models.PurchaseOrderStatusReceived, true},
		{models.PurchaseOrderStatusSubmitted, models.PurchaseOrderStatusCancelled, true},
		{models.PurchaseOrderStatusSubmitted, models.PurchaseOrderStatusDraft, false},
		{models.PurchaseOrderStatusReceived, models.PurchaseOrderStatusCancelled, false},
		{models.PurchaseOrderStatusReceived, models.PurchaseOrderStatusSubmitted, false},
		{models.PurchaseOrderStatusCancelled, models.PurchaseOrderStatusSubmitted, false},
		{models.PurchaseOrderStatusCancelled, models.PurchaseOrderStatusDraft, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestPurchaseOrderItemLineTotal(t *testing.T) {
	item := &models.PurchaseOrderItem{Quantity: 12, UnitCost: 45.50}
	assert.InDelta(t, 546.0, item.LineTotal(), 0.001)

	empty := &models.PurchaseOrderItem{}
	assert.Zero(t, empty.LineTotal())
}
