package api_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
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

	user, err := services.NewUserService(db).CreateUser(&models.UserRegistration{
		Email:     email,
		FirstName: "Test",
		LastName:  "Owner",
		Password:  "password123",
	})
	require.NoError(t, err)
	return user
}

// setUser stands in for the auth middleware on test routers
func setUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}
