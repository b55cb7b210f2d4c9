package models

import (
	"time"
)

// NotificationType represents the kind of inventory alert
type NotificationType string

const (
	NotificationTypeLowStock     NotificationType = "low_stock"
	NotificationTypeExpiringSoon NotificationType = "expiring_soon"
	NotificationTypeExpired      NotificationType = "expired"
	NotificationTypePOSSync      NotificationType = "pos_sync"
)

// Notification represents an alert delivered to a user
type Notification struct {
	ID        string           `json:"id" db:"id"`
	UserID    string           `json:"userId" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	ProductID *string          `json:"productId,omitempty" db:"product_id"`
	StoreID   *string          `json:"storeId,omitempty" db:"store_id"`
	IsRead    bool             `json:"isRead" db:"is_read"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}
