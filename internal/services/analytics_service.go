package services

import (
	"database/sql"
	"fmt"
	"time"

	"stockive-backend/internal/models"
	"stockive-backend/internal/storectx"
)

// AnalyticsService computes dashboard aggregates over an owner's inventory
type AnalyticsService struct {
	db                *sql.DB
	expiryWarningDays int
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(db *sql.DB, expiryWarningDays int) *AnalyticsService {
	return &AnalyticsService{db: db, expiryWarningDays: expiryWarningDays}
}

// DashboardStats is the aggregate payload behind the dashboard view
type DashboardStats struct {
	TotalProducts     int              `json:"totalProducts"`
	TotalStores       int              `json:"totalStores"`
	TotalSuppliers    int              `json:"totalSuppliers"`
	InventoryValue    float64          `json:"inventoryValue"`
	LowStockCount     int              `json:"lowStockCount"`
	ExpiringSoonCount int              `json:"expiringSoonCount"`
	ExpiredCount      int              `json:"expiredCount"`
	OpenOrderCount    int              `json:"openOrderCount"`
	StoreBreakdown    []StoreInventory `json:"storeBreakdown"`
}

// StoreInventory summarizes one store's slice of the inventory. StoreRef
// is the raw product reference bucket; StoreName is resolved through the
// display fallback chain, so unreconciled buckets still render.
type StoreInventory struct {
	StoreRef       string  `json:"storeRef"`
	StoreName      string  `json:"storeName"`
	ProductCount   int     `json:"productCount"`
	TotalQuantity  int     `json:"totalQuantity"`
	InventoryValue float64 `json:"inventoryValue"`
}

// GetDashboardStats assembles the dashboard aggregates for an owner
func (s *AnalyticsService) GetDashboardStats(ownerID string, ctx storectx.StoreContext) (*DashboardStats, error) {
	stats := &DashboardStats{
		TotalStores:    ctx.TotalStores,
		StoreBreakdown: []StoreInventory{},
	}

	err := s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(price * quantity), 0) FROM products WHERE owner_id = ?",
		ownerID,
	).Scan(&stats.TotalProducts, &stats.InventoryValue)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate products: %w", err)
	}

	err = s.db.QueryRow("SELECT COUNT(*) FROM suppliers WHERE owner_id = ?", ownerID).Scan(&stats.TotalSuppliers)
	if err != nil {
		return nil, fmt.Errorf("failed to count suppliers: %w", err)
	}

	err = s.db.QueryRow(
		"SELECT COUNT(*) FROM products WHERE owner_id = ? AND quantity <= low_stock_threshold",
		ownerID,
	).Scan(&stats.LowStockCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count low stock: %w", err)
	}

	now := time.Now()
	cutoff := now.Add(time.Duration(s.expiryWarningDays) * 24 * time.Hour)
	err = s.db.QueryRow(
		"SELECT COUNT(*) FROM products WHERE owner_id = ? AND expiry_date IS NOT NULL AND expiry_date > ? AND expiry_date <= ?",
		ownerID, now, cutoff,
	).Scan(&stats.ExpiringSoonCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count expiring products: %w", err)
	}

	err = s.db.QueryRow(
		"SELECT COUNT(*) FROM products WHERE owner_id = ? AND expiry_date IS NOT NULL AND expiry_date <= ?",
		ownerID, now,
	).Scan(&stats.ExpiredCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count expired products: %w", err)
	}

	err = s.db.QueryRow(
		"SELECT COUNT(*) FROM purchase_orders WHERE owner_id = ? AND status IN (?, ?)",
		ownerID, models.PurchaseOrderStatusDraft, models.PurchaseOrderStatusSubmitted,
	).Scan(&stats.OpenOrderCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count open orders: %w", err)
	}

	breakdown, err := s.storeBreakdown(ownerID, ctx)
	if err != nil {
		return nil, err
	}
	stats.StoreBreakdown = breakdown

	return stats, nil
}

func (s *AnalyticsService) storeBreakdown(ownerID string, ctx storectx.StoreContext) ([]StoreInventory, error) {
	rows, err := s.db.Query(
		`SELECT supermarket_id, COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(price * quantity), 0)
		 FROM products WHERE owner_id = ?
		 GROUP BY supermarket_id
		 ORDER BY SUM(price * quantity) DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate per store: %w", err)
	}
	defer rows.Close()

	fallback := ""
	if ctx.MainStore != nil {
		fallback = ctx.MainStore.Name
	}

	breakdown := []StoreInventory{}
	for rows.Next() {
		var entry StoreInventory
		if err := rows.Scan(&entry.StoreRef, &entry.ProductCount, &entry.TotalQuantity, &entry.InventoryValue); err != nil {
			return nil, err
		}
		entry.StoreName = storectx.ResolveStoreName(ctx.UserStores, entry.StoreRef, fallback)
		breakdown = append(breakdown, entry)
	}
	return breakdown, rows.Err()
}
