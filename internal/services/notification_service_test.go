package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockive-backend/internal/models"
	"stockive-backend/internal/services"
)

func TestCreateAndListNotifications(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "notify@example.com")
	notificationService := services.NewNotificationService(db, nil)

	require.NoError(t, notificationService.CreateNotification(&models.Notification{
		UserID:  user.ID,
		Type:    models.NotificationTypeLowStock,
		Title:   "Low stock",
		Message: "Milk is down to 2 units",
	}))
	require.NoError(t, notificationService.CreateNotification(&models.Notification{
		UserID:  user.ID,
		Type:    models.NotificationTypeExpired,
		Title:   "Expiry alert",
		Message: "Yogurt expired",
	}))

	all, err := notificationService.GetNotifications(user.ID, false, 50)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, notificationService.MarkRead(all[0].ID, user.ID))

	unread, err := notificationService.GetNotifications(user.ID, true, 50)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	require.NoError(t, notificationService.MarkAllRead(user.ID))
	unread, err = notificationService.GetNotifications(user.ID, true, 50)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestMarkReadScopedToUser(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner-n@example.com")
	other := createTestUser(t, db, "other-n@example.com")
	notificationService := services.NewNotificationService(db, nil)

	n := &models.Notification{
		UserID:  owner.ID,
		Type:    models.NotificationTypeLowStock,
		Title:   "Low stock",
		Message: "Bread is low",
	}
	require.NoError(t, notificationService.CreateNotification(n))

	err := notificationService.MarkRead(n.ID, other.ID)
	assert.Error(t, err)
}

func TestAlertSchedulerClampsInterval(t *testing.T) {
	db := newTestDB(t)
	productService := services.NewProductService(db, 5, 7, 14)
	notificationService := services.NewNotificationService(db, nil)

	scheduler := services.NewAlertScheduler(notificationService, productService, 0)
	scheduler.Start()
	scheduler.Stop()
}

func TestScanInventoryAlerts(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "scan@example.com")
	productService := services.NewProductService(db, 5, 7, 14)
	notificationService := services.NewNotificationService(db, nil)

	past := time.Now().Add(-24 * time.Hour)
	threshold := 5
	_, err := productService.CreateProduct(&models.ProductCreation{
		Name:              "Low Sugar",
		Price:             10,
		Quantity:          1,
		LowStockThreshold: &threshold,
	}, user.ID)
	require.NoError(t, err)
	_, err = productService.CreateProduct(&models.ProductCreation{
		Name:       "Expired Juice",
		Price:      10,
		Quantity:   50,
		ExpiryDate: &past,
	}, user.ID)
	require.NoError(t, err)

	require.NoError(t, notificationService.ScanInventoryAlerts(productService))

	notifications, err := notificationService.GetNotifications(user.ID, false, 50)
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	types := map[models.NotificationType]bool{}
	for _, n := range notifications {
		types[n.Type] = true
	}
	assert.True(t, types[models.NotificationTypeLowStock])
	assert.True(t, types[models.NotificationTypeExpired])

	// A second scan inside the suppression window adds nothing
	require.NoError(t, notificationService.ScanInventoryAlerts(productService))
	notifications, err = notificationService.GetNotifications(user.ID, false, 50)
	require.NoError(t, err)
	assert.Len(t, notifications, 2)
}
