package services_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockive-backend/internal/models"
	"stockive-backend/internal/services"
)

func setupOrderFixtures(t *testing.T) (*sql.DB, *services.PurchaseOrderService, *services.ProductService, *models.User, *models.Store, *models.Supplier, *models.Product) {
	t.Helper()

	db := newTestDB(t)
	user := createTestUser(t, db, "orders@example.com")
	store := createTestStore(t, db, user.ID, "Order Store", false, nil)

	supplierService := services.NewSupplierService(db)
	supplier, err := supplierService.CreateSupplier(&models.SupplierCreation{
		Name: "Acme Wholesale",
	}, user.ID)
	require.NoError(t, err)

	product := createTestProduct(t, db, user.ID, "Rice 2kg", store.ID, 10)

	productService := services.NewProductService(db, 5, 7, 14)
	orderService := services.NewPurchaseOrderService(db, productService)
	return db, orderService, productService, user, store, supplier, product
}

func TestPurchaseOrderLifecycle(t *testing.T) {
	_, orderService, productService, user, store, supplier, product := setupOrderFixtures(t)

	order, err := orderService.CreatePurchaseOrder(&models.PurchaseOrderCreation{
		SupplierID: supplier.ID,
		StoreID:    store.ID,
		Items: []models.PurchaseOrderItemCreation{
			{ProductID: product.ID, Quantity: 20, UnitCost: 85},
		},
	}, user.ID)
	require.NoError(t, err)

	assert.Equal(t, models.PurchaseOrderStatusDraft, order.Status)
	assert.InDelta(t, 1700.0, order.TotalCost, 0.001)
	require.Len(t, order.Items, 1)
	// Product name is snapshotted at order time
	assert.Equal(t, "Rice 2kg", order.Items[0].ProductName)

	submitted, err := orderService.SubmitPurchaseOrder(order.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PurchaseOrderStatusSubmitted, submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)

	received, err := orderService.ReceivePurchaseOrder(order.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PurchaseOrderStatusReceived, received.Status)
	assert.NotNil(t, received.ReceivedAt)

	// Receiving restocks the product
	restocked, err := productService.GetProduct(product.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, restocked.Quantity)
}

func TestPurchaseOrderIllegalTransitions(t *testing.T) {
	_, orderService, _, user, store, supplier, product := setupOrderFixtures(t)

	order, err := orderService.CreatePurchaseOrder(&models.PurchaseOrderCreation{
		SupplierID: supplier.ID,
		StoreID:    store.ID,
		Items: []models.PurchaseOrderItemCreation{
			{ProductID: product.ID, Quantity: 5, UnitCost: 10},
		},
	}, user.ID)
	require.NoError(t, err)

	// Draft orders cannot be received directly
	_, err = orderService.ReceivePurchaseOrder(order.ID, user.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	_, err = orderService.CancelPurchaseOrder(order.ID, user.ID)
	require.NoError(t, err)

	// Cancelled is terminal
	_, err = orderService.SubmitPurchaseOrder(order.ID, user.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestCreatePurchaseOrderValidation(t *testing.T) {
	_, orderService, _, user, store, supplier, _ := setupOrderFixtures(t)

	_, err := orderService.CreatePurchaseOrder(&models.PurchaseOrderCreation{
		SupplierID: supplier.ID,
		StoreID:    store.ID,
		Items:      []models.PurchaseOrderItemCreation{},
	}, user.ID)
	assert.Error(t, err)

	_, err = orderService.CreatePurchaseOrder(&models.PurchaseOrderCreation{
		SupplierID: supplier.ID,
		StoreID:    store.ID,
		Items: []models.PurchaseOrderItemCreation{
			{ProductID: "no-such-product", Quantity: 5, UnitCost: 10},
		},
	}, user.ID)
	assert.Error(t, err)
}

func TestGetPurchasingReport(t *testing.T) {
	_, orderService, _, user, store, supplier, product := setupOrderFixtures(t)

	for i := 0; i < 2; i++ {
		order, err := orderService.CreatePurchaseOrder(&models.PurchaseOrderCreation{
			SupplierID: supplier.ID,
			StoreID:    store.ID,
			Items: []models.PurchaseOrderItemCreation{
				{ProductID: product.ID, Quantity: 10, UnitCost: 50},
			},
		}, user.ID)
		require.NoError(t, err)

		_, err = orderService.SubmitPurchaseOrder(order.ID, user.ID)
		require.NoError(t, err)
		_, err = orderService.ReceivePurchaseOrder(order.ID, user.ID)
		require.NoError(t, err)
	}

	// A draft order does not count toward spend
	_, err := orderService.CreatePurchaseOrder(&models.PurchaseOrderCreation{
		SupplierID: supplier.ID,
		StoreID:    store.ID,
		Items: []models.PurchaseOrderItemCreation{
			{ProductID: product.ID, Quantity: 1, UnitCost: 999},
		},
	}, user.ID)
	require.NoError(t, err)

	report, err := orderService.GetPurchasingReport(user.ID)
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, "Acme Wholesale", report[0].SupplierName)
	assert.Equal(t, 2, report[0].OrderCount)
	assert.InDelta(t, 1000.0, report[0].TotalSpend, 0.001)
}
