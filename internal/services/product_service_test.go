package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockive-backend/internal/models"
	"stockive-backend/internal/services"
	"stockive-backend/internal/storectx"
)

func TestCreateProductDefaults(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "products@example.com")
	productService := services.NewProductService(db, 5, 7, 14)

	product, err := productService.CreateProduct(&models.ProductCreation{
		Name:     "Unbucketed Soap",
		Price:    50,
		Quantity: 10,
	}, user.ID)
	require.NoError(t, err)

	// Missing store reference lands in the default bucket
	assert.Equal(t, storectx.DefaultStoreRef, product.SupermarketID)
	assert.Equal(t, "general", product.Category)
	assert.Equal(t, 5, product.LowStockThreshold)
}

func TestGetProductsFilters(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "filters@example.com")
	store := createTestStore(t, db, user.ID, "Filter Store", false, nil)
	productService := services.NewProductService(db, 5, 7, 14)

	createTestProduct(t, db, user.ID, "Fresh Milk", store.ID, 10)
	createTestProduct(t, db, user.ID, "Brown Bread", store.ID, 10)
	createTestProduct(t, db, user.ID, "Elsewhere", "some-other-ref", 10)

	byStore, err := productService.GetProducts(user.ID, services.ProductFilters{StoreRef: store.ID}, 50, 0)
	require.NoError(t, err)
	assert.Len(t, byStore, 2)

	bySearch, err := productService.GetProducts(user.ID, services.ProductFilters{Search: "milk"}, 50, 0)
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Fresh Milk", bySearch[0].Name)

	all, err := productService.GetProducts(user.ID, services.ProductFilters{}, 2, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLowStockExpiringAndClearance(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alerts@example.com")
	productService := services.NewProductService(db, 5, 7, 14)

	threshold := 5
	soon := time.Now().Add(3 * 24 * time.Hour)
	far := time.Now().Add(60 * 24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)

	mk := func(name string, qty int, expiry *time.Time) {
		_, err := productService.CreateProduct(&models.ProductCreation{
			Name:              name,
			Price:             10,
			Quantity:          qty,
			ExpiryDate:        expiry,
			LowStockThreshold: &threshold,
		}, user.ID)
		require.NoError(t, err)
	}

	mk("Low", 2, nil)
	mk("Healthy", 50, &far)
	mk("Expiring", 50, &soon)
	mk("Expired", 50, &past)
	mk("Clearance Empty", 0, &soon)

	low, err := productService.GetLowStockProducts(user.ID)
	require.NoError(t, err)
	require.Len(t, low, 2) // "Low" and the zero-quantity product
	names := []string{low[0].Name, low[1].Name}
	assert.Contains(t, names, "Low")
	assert.Contains(t, names, "Clearance Empty")

	expiring, err := productService.GetExpiringProducts(user.ID)
	require.NoError(t, err)
	// Expired products surface in the expiry report too
	assert.Len(t, expiring, 3)

	clearance, err := productService.GetClearanceProducts(user.ID)
	require.NoError(t, err)
	// Only in-stock, not-yet-expired products qualify for markdown
	require.Len(t, clearance, 1)
	assert.Equal(t, "Expiring", clearance[0].Name)
}

func TestUpdateProduct(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "update@example.com")
	productService := services.NewProductService(db, 5, 7, 14)
	product := createTestProduct(t, db, user.ID, "Old Name", "ref", 10)

	newName := "New Name"
	newQty := 25
	updated, err := productService.UpdateProduct(product.ID, user.ID, &models.ProductUpdate{
		Name:     &newName,
		Quantity: &newQty,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, 25, updated.Quantity)

	_, err = productService.UpdateProduct("missing", user.ID, &models.ProductUpdate{Name: &newName})
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestDecorateStoreNames(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "decorate@example.com")
	storeService := services.NewStoreService(db)
	productService := services.NewProductService(db, 5, 7, 14)

	main := createTestStore(t, db, user.ID, "Main Market", false, nil)
	sub := createTestStore(t, db, user.ID, "Branch", true, &main.ID)

	createTestProduct(t, db, user.ID, "ById", main.ID, 1)
	createTestProduct(t, db, user.ID, "ByName", "branch", 1) // case-insensitive name ref
	createTestProduct(t, db, user.ID, "Dangling", "no-such-store", 1)

	ctx, err := storeService.GetStoreContext(user)
	require.NoError(t, err)

	products, err := productService.GetProducts(user.ID, services.ProductFilters{}, 50, 0)
	require.NoError(t, err)
	productService.DecorateStoreNames(products, ctx)

	byName := map[string]string{}
	for _, p := range products {
		byName[p.Name] = p.StoreName
	}
	assert.Equal(t, "Main Market", byName["ById"])
	assert.Equal(t, sub.Name, byName["ByName"])
	// Unresolvable references fall back to the main store name
	assert.Equal(t, "Main Market", byName["Dangling"])
}
