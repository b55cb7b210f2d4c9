package services

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"stockive-backend/internal/models"
)

// NotificationService persists inventory alerts and pushes them to live
// dashboard sessions
type NotificationService struct {
	db        *sql.DB
	wsService *WebSocketService
}

// NewNotificationService creates a new notification service
func NewNotificationService(db *sql.DB, wsService *WebSocketService) *NotificationService {
	return &NotificationService{db: db, wsService: wsService}
}

// CreateNotification persists an alert and pushes it over the websocket
func (s *NotificationService) CreateNotification(notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO notifications (id, user_id, type, title, message, product_id, store_id, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		notification.ID, notification.UserID, notification.Type, notification.Title,
		notification.Message, notification.ProductID, notification.StoreID,
		notification.IsRead, notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	if s.wsService != nil {
		s.wsService.NotifyUser(notification.UserID, string(notification.Type), notification.Message, notification)
	}
	return nil
}

// GetNotifications lists a user's notifications, newest first
func (s *NotificationService) GetNotifications(userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, product_id, store_id, is_read, created_at
		FROM notifications WHERE user_id = ?
	`
	args := []interface{}{userID}
	if unreadOnly {
		query += " AND is_read = 0"
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.ProductID, &n.StoreID, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead marks one notification read
func (s *NotificationService) MarkRead(id, userID string) error {
	result, err := s.db.Exec("UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkAllRead marks every notification of a user read
func (s *NotificationService) MarkAllRead(userID string) error {
	_, err := s.db.Exec("UPDATE notifications SET is_read = 1 WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// ScanInventoryAlerts raises alerts for low-stock and expiring products
// across all owners. Alerts already raised for a product in the last 24
// hours are not repeated.
func (s *NotificationService) ScanInventoryAlerts(productService *ProductService) error {
	rows, err := s.db.Query("SELECT DISTINCT owner_id FROM products")
	if err != nil {
		return fmt.Errorf("failed to list product owners: %w", err)
	}
	defer rows.Close()

	owners := []string{}
	for rows.Next() {
		var ownerID string
		if err := rows.Scan(&ownerID); err != nil {
			return err
		}
		owners = append(owners, ownerID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, ownerID := range owners {
		if err := s.scanOwner(ownerID, productService); err != nil {
			log.Printf("Inventory alert scan failed for owner %s: %v", ownerID, err)
		}
	}
	return nil
}

func (s *NotificationService) scanOwner(ownerID string, productService *ProductService) error {
	lowStock, err := productService.GetLowStockProducts(ownerID)
	if err != nil {
		return err
	}
	for i := range lowStock {
		p := &lowStock[i]
		if s.recentlyAlerted(ownerID, p.ID, models.NotificationTypeLowStock) {
			continue
		}
		err := s.CreateNotification(&models.Notification{
			UserID:    ownerID,
			Type:      models.NotificationTypeLowStock,
			Title:     "Low stock",
			Message:   fmt.Sprintf("%s is down to %d units", p.Name, p.Quantity),
			ProductID: &p.ID,
		})
		if err != nil {
			return err
		}
	}

	expiring, err := productService.GetExpiringProducts(ownerID)
	if err != nil {
		return err
	}
	now := time.Now()
	for i := range expiring {
		p := &expiring[i]
		alertType := models.NotificationTypeExpiringSoon
		message := fmt.Sprintf("%s expires on %s", p.Name, p.ExpiryDate.Format("2006-01-02"))
		if p.IsExpired(now) {
			alertType = models.NotificationTypeExpired
			message = fmt.Sprintf("%s expired on %s", p.Name, p.ExpiryDate.Format("2006-01-02"))
		}
		if s.recentlyAlerted(ownerID, p.ID, alertType) {
			continue
		}
		err := s.CreateNotification(&models.Notification{
			UserID:    ownerID,
			Type:      alertType,
			Title:     "Expiry alert",
			Message:   message,
			ProductID: &p.ID,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *NotificationService) recentlyAlerted(userID, productID string, alertType models.NotificationType) bool {
	var count int
	since := time.Now().Add(-24 * time.Hour)
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM notifications WHERE user_id = ? AND product_id = ? AND type = ? AND created_at > ?",
		userID, productID, alertType, since,
	).Scan(&count)
	if err != nil {
		return false
	}
	return count > 0
}

// AlertScheduler runs the inventory alert scan on an interval
type AlertScheduler struct {
	notificationService *NotificationService
	productService      *ProductService
	interval            time.Duration
	stop                chan struct{}
}

// NewAlertScheduler creates a scheduler with the given interval,
// clamped to at least one minute
func NewAlertScheduler(notificationService *NotificationService, productService *ProductService, intervalMinutes int) *AlertScheduler {
	if intervalMinutes < 1 {
		intervalMinutes = 1
	}
	return &AlertScheduler{
		notificationService: notificationService,
		productService:      productService,
		interval:            time.Duration(intervalMinutes) * time.Minute,
		stop:                make(chan struct{}),
	}
}

// Start launches the scan loop
func (s *AlertScheduler) Start() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.notificationService.ScanInventoryAlerts(s.productService); err != nil {
					log.Printf("Inventory alert scan failed: %v", err)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the scan loop
func (s *AlertScheduler) Stop() {
	close(s.stop)
}
