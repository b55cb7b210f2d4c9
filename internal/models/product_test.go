package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stockive-backend/internal/models"
)

func TestProductIsLowStock(t *testing.T) {
	product := &models.Product{Quantity: 5, LowStockThreshold: 5}
	assert.True(t, product.IsLowStock())

	product.Quantity = 6
	assert.False(t, product.IsLowStock())

	product.Quantity = 0
	assert.True(t, product.IsLowStock())
}

func TestProductExpiry(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	noExpiry := &models.Product{}
	assert.False(t, noExpiry.IsExpired(now))
	assert.False(t, noExpiry.ExpiresWithin(now, 7*24*time.Hour))

	past := now.Add(-24 * time.Hour)
	expired := &models.Product{ExpiryDate: &past}
	assert.True(t, expired.IsExpired(now))
	// Already-expired products still count as expiring
	assert.True(t, expired.ExpiresWithin(now, 7*24*time.Hour))

	soon := now.Add(3 * 24 * time.Hour)
	expiring := &models.Product{ExpiryDate: &soon}
	assert.False(t, expiring.IsExpired(now))
	assert.True(t, expiring.ExpiresWithin(now, 7*24*time.Hour))
	assert.False(t, expiring.ExpiresWithin(now, 2*24*time.Hour))
}
