package models

import (
	"time"
)

// Product represents a catalog item tracked in a store's inventory.
// SupermarketID is a loose reference: historical API versions stored a
// store id, a store name, or even an address string in this field, so
// display lookups must degrade gracefully.
type Product struct {
	ID                string     `json:"id" db:"id"`
	Name              string     `json:"name" db:"name"`
	Category          string     `json:"category" db:"category"`
	Supplier          *string    `json:"supplier,omitempty" db:"supplier"`
	Price             float64    `json:"price" db:"price"`
	Quantity          int        `json:"quantity" db:"quantity"`
	ExpiryDate        *time.Time `json:"expiryDate,omitempty" db:"expiry_date"`
	SupermarketID     string     `json:"supermarketId" db:"supermarket_id"`
	Barcode           *string    `json:"barcode,omitempty" db:"barcode"`
	LowStockThreshold int        `json:"lowStockThreshold" db:"low_stock_threshold"`
	OwnerID           string     `json:"ownerId" db:"owner_id"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time  `json:"updatedAt" db:"updated_at"`

	// Populated at read time for list views
	StoreName string `json:"storeName,omitempty"`
}

// ProductCreation represents data for creating a new product
type ProductCreation struct {
	Name              string     `json:"name" validate:"required,min=1,max=200"`
	Category          string     `json:"category" validate:"max=100"`
	Supplier          *string    `json:"supplier,omitempty"`
	Price             float64    `json:"price" validate:"gte=0"`
	Quantity          int        `json:"quantity" validate:"gte=0"`
	ExpiryDate        *time.Time `json:"expiryDate,omitempty"`
	SupermarketID     string     `json:"supermarketId"`
	Barcode           *string    `json:"barcode,omitempty"`
	LowStockThreshold *int       `json:"lowStockThreshold,omitempty"`
}

// ProductUpdate represents product update data
type ProductUpdate struct {
	Name              *string    `json:"name,omitempty"`
	Category          *string    `json:"category,omitempty"`
	Supplier          *string    `json:"supplier,omitempty"`
	Price             *float64   `json:"price,omitempty"`
	Quantity          *int       `json:"quantity,omitempty"`
	ExpiryDate        *time.Time `json:"expiryDate,omitempty"`
	SupermarketID     *string    `json:"supermarketId,omitempty"`
	Barcode           *string    `json:"barcode,omitempty"`
	LowStockThreshold *int       `json:"lowStockThreshold,omitempty"`
}

// IsLowStock reports whether the quantity has fallen to the threshold
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}

// IsExpired reports whether the product is past its expiry date
func (p *Product) IsExpired(now time.Time) bool {
	return p.ExpiryDate != nil && p.ExpiryDate.Before(now)
}

// ExpiresWithin reports whether the product expires inside the window.
// Already-expired products count as expiring.
func (p *Product) ExpiresWithin(now time.Time, window time.Duration) bool {
	if p.ExpiryDate == nil {
		return false
	}
	return p.ExpiryDate.Before(now.Add(window))
}
