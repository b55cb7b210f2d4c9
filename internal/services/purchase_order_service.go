package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stockive-backend/internal/models"
	"stockive-backend/internal/utils"
)

// ErrPurchaseOrderNotFound is returned when a purchase order id does not
// resolve for the requesting owner
var ErrPurchaseOrderNotFound = errors.New("purchase order not found")

// ErrInvalidTransition is returned for illegal status changes
var ErrInvalidTransition = errors.New("invalid purchase order status transition")

// PurchaseOrderService handles purchase order business logic
type PurchaseOrderService struct {
	db             *sql.DB
	productService *ProductService
}

// NewPurchaseOrderService creates a new purchase order service
func NewPurchaseOrderService(db *sql.DB, productService *ProductService) *PurchaseOrderService {
	return &PurchaseOrderService{db: db, productService: productService}
}

const purchaseOrderColumns = `id, supplier_id, store_id, status, total_cost, notes, owner_id,
	submitted_at, received_at, created_at, updated_at`

// CreatePurchaseOrder creates a draft order with its line items
func (s *PurchaseOrderService) CreatePurchaseOrder(creation *models.PurchaseOrderCreation, ownerID string) (*models.PurchaseOrder, error) {
	if err := utils.ValidateStruct(creation); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if len(creation.Items) == 0 {
		return nil, errors.New("purchase order requires at least one item")
	}

	order := &models.PurchaseOrder{
		ID:         uuid.New().String(),
		SupplierID: creation.SupplierID,
		StoreID:    creation.StoreID,
		Status:     models.PurchaseOrderStatusDraft,
		Notes:      creation.Notes,
		OwnerID:    ownerID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, itemCreation := range creation.Items {
		if err := utils.ValidateStruct(&itemCreation); err != nil {
			return nil, fmt.Errorf("validation error: %w", err)
		}

		product, err := s.productService.GetProduct(itemCreation.ProductID, ownerID)
		if err != nil {
			return nil, fmt.Errorf("item product %s: %w", itemCreation.ProductID, err)
		}

		item := models.PurchaseOrderItem{
			ID:              uuid.New().String(),
			PurchaseOrderID: order.ID,
			ProductID:       product.ID,
			ProductName:     product.Name,
			Quantity:        itemCreation.Quantity,
			UnitCost:        itemCreation.UnitCost,
		}
		order.Items = append(order.Items, item)
		order.TotalCost += item.LineTotal()
	}

	query := `
		INSERT INTO purchase_orders (
			id, supplier_id, store_id, status, total_cost, notes, owner_id,
			submitted_at, received_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.Exec(query,
		order.ID, order.SupplierID, order.StoreID, order.Status, order.TotalCost,
		order.Notes, order.OwnerID, order.SubmittedAt, order.ReceivedAt,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert purchase order: %w", err)
	}

	itemQuery := `
		INSERT INTO purchase_order_items (
			id, purchase_order_id, product_id, product_name, quantity, unit_cost
		) VALUES (?, ?, ?, ?, ?, ?)
	`
	for _, item := range order.Items {
		if _, err := tx.Exec(itemQuery, item.ID, item.PurchaseOrderID, item.ProductID, item.ProductName, item.Quantity, item.UnitCost); err != nil {
			return nil, fmt.Errorf("failed to insert purchase order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit purchase order: %w", err)
	}

	return order, nil
}

// GetPurchaseOrder fetches an order with its items, scoped to the owner
func (s *PurchaseOrderService) GetPurchaseOrder(id, ownerID string) (*models.PurchaseOrder, error) {
	query := fmt.Sprintf("SELECT %s FROM purchase_orders WHERE id = ? AND owner_id = ?", purchaseOrderColumns)
	var order models.PurchaseOrder
	err := s.db.QueryRow(query, id, ownerID).Scan(
		&order.ID, &order.SupplierID, &order.StoreID, &order.Status, &order.TotalCost,
		&order.Notes, &order.OwnerID, &order.SubmittedAt, &order.ReceivedAt,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPurchaseOrderNotFound
		}
		return nil, err
	}

	items, err := s.getItems(order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

// GetPurchaseOrdersByOwner lists orders, optionally filtered by status
func (s *PurchaseOrderService) GetPurchaseOrdersByOwner(ownerID string, status models.PurchaseOrderStatus) ([]models.PurchaseOrder, error) {
	query := `
		SELECT po.id, po.supplier_id, po.store_id, po.status, po.total_cost, po.notes,
			po.owner_id, po.submitted_at, po.received_at, po.created_at, po.updated_at,
			COALESCE(s.name, '')
		FROM purchase_orders po
		LEFT JOIN suppliers s ON s.id = po.supplier_id
		WHERE po.owner_id = ?
	`
	args := []interface{}{ownerID}
	if status != "" {
		query += " AND po.status = ?"
		args = append(args, status)
	}
	query += " ORDER BY po.created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase orders: %w", err)
	}
	defer rows.Close()

	orders := []models.PurchaseOrder{}
	for rows.Next() {
		var order models.PurchaseOrder
		err := rows.Scan(
			&order.ID, &order.SupplierID, &order.StoreID, &order.Status, &order.TotalCost,
			&order.Notes, &order.OwnerID, &order.SubmittedAt, &order.ReceivedAt,
			&order.CreatedAt, &order.UpdatedAt, &order.SupplierName,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// SubmitPurchaseOrder moves a draft order to submitted
func (s *PurchaseOrderService) SubmitPurchaseOrder(id, ownerID string) (*models.PurchaseOrder, error) {
	return s.transition(id, ownerID, models.PurchaseOrderStatusSubmitted)
}

// CancelPurchaseOrder cancels a draft or submitted order
func (s *PurchaseOrderService) CancelPurchaseOrder(id, ownerID string) (*models.PurchaseOrder, error) {
	return s.transition(id, ownerID, models.PurchaseOrderStatusCancelled)
}

// ReceivePurchaseOrder marks a submitted order received and increments
// product stock for every line item in one transaction
func (s *PurchaseOrderService) ReceivePurchaseOrder(id, ownerID string) (*models.PurchaseOrder, error) {
	order, err := s.GetPurchaseOrder(id, ownerID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(models.PurchaseOrderStatusReceived) {
		return nil, fmt.Errorf("%w: %s -> received", ErrInvalidTransition, order.Status)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range order.Items {
		if err := s.productService.AdjustQuantity(tx, item.ProductID, ownerID, item.Quantity); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	result, err := tx.Exec(
		"UPDATE purchase_orders SET status = ?, received_at = ?, updated_at = ? WHERE id = ? AND owner_id = ? AND status = ?",
		models.PurchaseOrderStatusReceived, now, now, id, ownerID, models.PurchaseOrderStatusSubmitted,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to mark order received: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: order changed concurrently", ErrInvalidTransition)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit receive: %w", err)
	}

	order.Status = models.PurchaseOrderStatusReceived
	order.ReceivedAt = &now
	order.UpdatedAt = now
	return order, nil
}

// GetPurchasingReport aggregates received spend per supplier for the owner
func (s *PurchaseOrderService) GetPurchasingReport(ownerID string) ([]SupplierSpend, error) {
	query := `
		SELECT po.supplier_id, COALESCE(s.name, 'Unknown Supplier'), COUNT(*), SUM(po.total_cost)
		FROM purchase_orders po
		LEFT JOIN suppliers s ON s.id = po.supplier_id
		WHERE po.owner_id = ? AND po.status = ?
		GROUP BY po.supplier_id
		ORDER BY SUM(po.total_cost) DESC
	`
	rows, err := s.db.Query(query, ownerID, models.PurchaseOrderStatusReceived)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchasing report: %w", err)
	}
	defer rows.Close()

	report := []SupplierSpend{}
	for rows.Next() {
		var entry SupplierSpend
		if err := rows.Scan(&entry.SupplierID, &entry.SupplierName, &entry.OrderCount, &entry.TotalSpend); err != nil {
			return nil, err
		}
		report = append(report, entry)
	}
	return report, rows.Err()
}

// SupplierSpend is one row of the purchasing report
type SupplierSpend struct {
	SupplierID   string  `json:"supplierId"`
	SupplierName string  `json:"supplierName"`
	OrderCount   int     `json:"orderCount"`
	TotalSpend   float64 `json:"totalSpend"`
}

func (s *PurchaseOrderService) transition(id, ownerID string, next models.PurchaseOrderStatus) (*models.PurchaseOrder, error) {
	order, err := s.GetPurchaseOrder(id, ownerID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}

	now := time.Now()
	query := "UPDATE purchase_orders SET status = ?, updated_at = ?"
	args := []interface{}{next, now}
	if next == models.PurchaseOrderStatusSubmitted {
		query += ", submitted_at = ?"
		args = append(args, now)
	}
	query += " WHERE id = ? AND owner_id = ?"
	args = append(args, id, ownerID)

	if _, err := s.db.Exec(query, args...); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = next
	order.UpdatedAt = now
	if next == models.PurchaseOrderStatusSubmitted {
		order.SubmittedAt = &now
	}
	return order, nil
}

func (s *PurchaseOrderService) getItems(orderID string) ([]models.PurchaseOrderItem, error) {
	rows, err := s.db.Query(
		"SELECT id, purchase_order_id, product_id, product_name, quantity, unit_cost FROM purchase_order_items WHERE purchase_order_id = ?",
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := []models.PurchaseOrderItem{}
	for rows.Next() {
		var item models.PurchaseOrderItem
		if err := rows.Scan(&item.ID, &item.PurchaseOrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitCost); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
