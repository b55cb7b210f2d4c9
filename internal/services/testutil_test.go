package services_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"stockive-backend/database"
	"stockive-backend/internal/models"
	"stockive-backend/internal/services"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "stockive_test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sql.DB, email string) *models.User {
	t.Helper()

	userService := services.NewUserService(db)
	user, err := userService.CreateUser(&models.UserRegistration{
		Email:     email,
		FirstName: "Test",
		LastName:  "Owner",
		Password:  "password123",
	})
	require.NoError(t, err)
	return user
}

func createTestStore(t *testing.T, db *sql.DB, ownerID, name string, isSub bool, parentID *string) *models.Store {
	t.Helper()

	storeService := services.NewStoreService(db)
	store, err := storeService.CreateStore(&models.StoreCreation{
		Name:       name,
		IsSubStore: isSub,
		ParentID:   parentID,
	}, ownerID)
	require.NoError(t, err)
	return store
}

func createTestProduct(t *testing.T, db *sql.DB, ownerID, name, storeRef string, quantity int) *models.Product {
	t.Helper()

	productService := services.NewProductService(db, 5, 7, 14)
	product, err := productService.CreateProduct(&models.ProductCreation{
		Name:          name,
		Price:         100,
		Quantity:      quantity,
		SupermarketID: storeRef,
	}, ownerID)
	require.NoError(t, err)
	return product
}
