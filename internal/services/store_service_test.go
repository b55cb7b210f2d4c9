package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockive-backend/internal/models"
	"stockive-backend/internal/services"
)

func TestCreateAndGetStore(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "stores@example.com")
	storeService := services.NewStoreService(db)

	main := createTestStore(t, db, user.ID, "Downtown Market", false, nil)
	sub := createTestStore(t, db, user.ID, "Downtown Kiosk", true, &main.ID)

	fetched, err := storeService.GetStore(sub.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, fetched.IsSubStore)
	require.NotNil(t, fetched.ParentID)
	assert.Equal(t, main.ID, *fetched.ParentID)

	// Stores are invisible to other owners
	stranger := createTestUser(t, db, "stranger@example.com")
	_, err = storeService.GetStore(main.ID, stranger.ID)
	assert.ErrorIs(t, err, services.ErrStoreNotFound)
}

func TestCreateSubStoreRequiresOwnParent(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other-owner@example.com")
	otherMain := createTestStore(t, db, other.ID, "Not Yours", false, nil)

	storeService := services.NewStoreService(db)
	_, err := storeService.CreateStore(&models.StoreCreation{
		Name:       "Orphan Kiosk",
		IsSubStore: true,
		ParentID:   &otherMain.ID,
	}, owner.ID)
	assert.Error(t, err)
}

func TestEnsureDefaultStore(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "default@example.com")
	storeService := services.NewStoreService(db)

	store, created, err := storeService.EnsureDefaultStore(user.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Main Store", store.Name)
	assert.False(t, store.IsSubStore)

	// Second call is a no-op
	again, created, err := storeService.EnsureDefaultStore(user.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, store.ID, again.ID)
}

func TestGetStoreContext(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "context@example.com")
	storeService := services.NewStoreService(db)

	main := createTestStore(t, db, user.ID, "Main Market", false, nil)
	createTestStore(t, db, user.ID, "Branch A", true, &main.ID)
	createTestStore(t, db, user.ID, "Branch B", true, &main.ID)

	ctx, err := storeService.GetStoreContext(user)
	require.NoError(t, err)

	assert.True(t, ctx.IsMultiStore)
	assert.Equal(t, 3, ctx.TotalStores)
	require.NotNil(t, ctx.MainStore)
	assert.Equal(t, main.ID, ctx.MainStore.ID)
	assert.Len(t, ctx.SubStores, 2)
}

func TestGetStoreContextSingleStore(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "single@example.com")
	storeService := services.NewStoreService(db)

	main := createTestStore(t, db, user.ID, "Only Store", false, nil)

	ctx, err := storeService.GetStoreContext(user)
	require.NoError(t, err)

	assert.False(t, ctx.IsMultiStore)
	assert.Equal(t, 1, ctx.TotalStores)
	require.NotNil(t, ctx.MainStore)
	assert.Equal(t, main.ID, ctx.MainStore.ID)
	assert.Empty(t, ctx.SubStores)
}

func TestUpdatePOSConfigAndMarkSynced(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "pos@example.com")
	storeService := services.NewStoreService(db)
	store := createTestStore(t, db, user.ID, "POS Store", false, nil)

	enabled := true
	provider := "square"
	updated, err := storeService.UpdatePOSConfig(store.ID, user.ID, &models.POSConfigUpdate{
		Enabled:     &enabled,
		Provider:    &provider,
		SyncEnabled: &enabled,
	})
	require.NoError(t, err)
	assert.True(t, updated.POS.Enabled)
	assert.True(t, updated.POS.SyncEnabled)
	require.NotNil(t, updated.POS.Provider)
	assert.Equal(t, "square", *updated.POS.Provider)

	syncedAt := time.Now()
	require.NoError(t, storeService.MarkSynced(store.ID, syncedAt))

	fetched, err := storeService.GetStore(store.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.POS.LastSyncAt)
	assert.WithinDuration(t, syncedAt, *fetched.POS.LastSyncAt, time.Second)
}

func TestDeleteStoreRemovesIdReferencedProducts(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "delete@example.com")
	storeService := services.NewStoreService(db)
	productService := services.NewProductService(db, 5, 7, 14)

	store := createTestStore(t, db, user.ID, "Doomed Store", false, nil)
	createTestProduct(t, db, user.ID, "By ID", store.ID, 5)

	// Legacy name reference survives the delete; only id-bucketed
	// products cascade
	createTestProduct(t, db, user.ID, "By Name", "Doomed Store", 5)

	require.NoError(t, storeService.DeleteStore(store.ID, user.ID))

	products, err := productService.GetProducts(user.ID, services.ProductFilters{}, 50, 0)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "By Name", products[0].Name)
}
