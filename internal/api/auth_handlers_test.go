package api_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockive-backend/internal/api"
	"stockive-backend/internal/services"
)

func newAuthRouter(db *sql.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handlers := api.NewAuthHandlers(
		services.NewUserService(db),
		services.NewAuthService("test-secret", 3600),
		services.NewStoreService(db),
	)
	router := gin.New()
	router.POST("/auth/login", handlers.Login)
	return router
}

func postLogin(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestLoginProvisionsDefaultStore(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "heal@example.com")
	storeService := services.NewStoreService(db)
	router := newAuthRouter(db)

	stores, err := storeService.GetStoresByOwner(user.ID)
	require.NoError(t, err)
	require.Empty(t, stores)

	body := `{"email":"heal@example.com","password":"password123"}`
	w := postLogin(router, body)
	require.Equal(t, http.StatusOK, w.Code)

	stores, err = storeService.GetStoresByOwner(user.ID)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "Main Store", stores[0].Name)
	assert.False(t, stores[0].IsSubStore)

	// A second login does not create another store
	w = postLogin(router, body)
	require.Equal(t, http.StatusOK, w.Code)

	stores, err = storeService.GetStoresByOwner(user.ID)
	require.NoError(t, err)
	assert.Len(t, stores, 1)
}
