package api_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockive-backend/internal/api"
	"stockive-backend/internal/models"
	"stockive-backend/internal/services"
)

func newProductRouter(db *sql.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handlers := api.NewProductHandlers(
		services.NewProductService(db, 5, 7, 14),
		services.NewStoreService(db),
		services.NewBarcodeService(db, "200"),
		services.NewUserService(db),
	)
	router := gin.New()
	router.GET("/products", setUser(userID), handlers.GetProducts)
	return router
}

type productListResponse struct {
	Success bool             `json:"success"`
	Data    []models.Product `json:"data"`
}

func TestGetProductsDecoratesStoreNames(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "list@example.com")

	store, err := services.NewStoreService(db).CreateStore(&models.StoreCreation{Name: "HQ Market"}, user.ID)
	require.NoError(t, err)
	_, err = services.NewProductService(db, 5, 7, 14).CreateProduct(&models.ProductCreation{
		Name:          "Milk",
		Price:         50,
		Quantity:      10,
		SupermarketID: store.ID,
	}, user.ID)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	newProductRouter(db, user.ID).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp productListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "HQ Market", resp.Data[0].StoreName)
}

func TestGetProductsSurvivesDeletedAccount(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "gone@example.com")

	_, err := services.NewProductService(db, 5, 7, 14).CreateProduct(&models.ProductCreation{
		Name:     "Milk",
		Price:    50,
		Quantity: 10,
	}, user.ID)
	require.NoError(t, err)

	// Simulate the account row vanishing under a still-valid token
	conn, err := db.Conn(context.Background())
	require.NoError(t, err)
	_, err = conn.ExecContext(context.Background(), "PRAGMA foreign_keys = OFF")
	require.NoError(t, err)
	_, err = conn.ExecContext(context.Background(), "DELETE FROM users WHERE id = ?", user.ID)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	w := httptest.NewRecorder()
	newProductRouter(db, user.ID).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	// The list degrades to undecorated store names, and the body must be
	// exactly one JSON document
	require.Equal(t, http.StatusOK, w.Code)
	decoder := json.NewDecoder(bytes.NewReader(w.Body.Bytes()))
	var resp productListResponse
	require.NoError(t, decoder.Decode(&resp))
	var extra json.RawMessage
	assert.Equal(t, io.EOF, decoder.Decode(&extra))

	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Empty(t, resp.Data[0].StoreName)
}
