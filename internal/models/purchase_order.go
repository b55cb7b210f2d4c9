package models

import (
	"time"
)

// PurchaseOrderStatus represents the lifecycle state of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "draft"
	PurchaseOrderStatusSubmitted PurchaseOrderStatus = "submitted"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// PurchaseOrder represents an order placed with a supplier
type PurchaseOrder struct {
	ID          string              `json:"id" db:"id"`
	SupplierID  string              `json:"supplierId" db:"supplier_id"`
	StoreID     string              `json:"storeId" db:"store_id"`
	Status      PurchaseOrderStatus `json:"status" db:"status"`
	TotalCost   float64             `json:"totalCost" db:"total_cost"`
	Notes       *string             `json:"notes,omitempty" db:"notes"`
	OwnerID     string              `json:"ownerId" db:"owner_id"`
	SubmittedAt *time.Time          `json:"submittedAt,omitempty" db:"submitted_at"`
	ReceivedAt  *time.Time          `json:"receivedAt,omitempty" db:"received_at"`
	CreatedAt   time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time           `json:"updatedAt" db:"updated_at"`

	// Joined data (populated when needed)
	Items        []PurchaseOrderItem `json:"items,omitempty"`
	SupplierName string              `json:"supplierName,omitempty"`
}

// PurchaseOrderItem represents a line item within a purchase order
type PurchaseOrderItem struct {
	ID              string  `json:"id" db:"id"`
	PurchaseOrderID string  `json:"purchaseOrderId" db:"purchase_order_id"`
	ProductID       string  `json:"productId" db:"product_id"`
	ProductName     string  `json:"productName" db:"product_name"`
	Quantity        int     `json:"quantity" db:"quantity"`
	UnitCost        float64 `json:"unitCost" db:"unit_cost"`
}

// PurchaseOrderCreation represents data for creating a purchase order
type PurchaseOrderCreation struct {
	SupplierID string                      `json:"supplierId" validate:"required"`
	StoreID    string                      `json:"storeId" validate:"required"`
	Notes      *string                     `json:"notes,omitempty"`
	Items      []PurchaseOrderItemCreation `json:"items" validate:"required"`
}

// PurchaseOrderItemCreation represents a line item in a creation request
type PurchaseOrderItemCreation struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitCost  float64 `json:"unitCost" validate:"gte=0"`
}

// LineTotal returns quantity times unit cost for an item
func (i *PurchaseOrderItem) LineTotal() float64 {
	return float64(i.Quantity) * i.UnitCost
}

// CanTransitionTo reports whether a status change is legal.
// Draft orders may be submitted or cancelled; submitted orders may be
// received or cancelled; received and cancelled are terminal.
func (s PurchaseOrderStatus) CanTransitionTo(next PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusDraft:
		return next == PurchaseOrderStatusSubmitted || next == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusSubmitted:
		return next == PurchaseOrderStatusReceived || next == PurchaseOrderStatusCancelled
	default:
		return false
	}
}
