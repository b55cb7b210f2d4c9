package services

import (
	"database/sql"
	"fmt"
	"time"

	"stockive-backend/internal/models"
	"stockive-backend/internal/storectx"
)

// BarcodeService issues EAN-13 codes and builds product ticket payloads.
// Codes are composed from the configured company prefix and a per-owner
// sequence; rendering the bars is a client concern.
type BarcodeService struct {
	db            *sql.DB
	companyPrefix string
}

// NewBarcodeService creates a new barcode service
func NewBarcodeService(db *sql.DB, companyPrefix string) *BarcodeService {
	return &BarcodeService{db: db, companyPrefix: companyPrefix}
}

// ProductTicket is the printable shelf ticket payload for a product
type ProductTicket struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Barcode     string  `json:"barcode"`
	StoreName   string  `json:"storeName"`
	GeneratedAt string  `json:"generatedAt"`
}

// NextBarcode allocates the next EAN-13 code for an owner. The sequence
// row is upserted and incremented in one transaction so concurrent
// allocations never collide.
func (s *BarcodeService) NextBarcode(ownerID string) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("INSERT OR IGNORE INTO barcode_sequence (owner_id, next_value) VALUES (?, 1)", ownerID); err != nil {
		return "", fmt.Errorf("failed to seed barcode sequence: %w", err)
	}

	var next int64
	if err := tx.QueryRow("SELECT next_value FROM barcode_sequence WHERE owner_id = ?", ownerID).Scan(&next); err != nil {
		return "", fmt.Errorf("failed to read barcode sequence: %w", err)
	}

	if _, err := tx.Exec("UPDATE barcode_sequence SET next_value = next_value + 1 WHERE owner_id = ?", ownerID); err != nil {
		return "", fmt.Errorf("failed to advance barcode sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit barcode sequence: %w", err)
	}

	return ComposeEAN13(s.companyPrefix, next)
}

// AssignBarcode allocates a code and stores it on the product
func (s *BarcodeService) AssignBarcode(product *models.Product) error {
	code, err := s.NextBarcode(product.OwnerID)
	if err != nil {
		return err
	}

	now := time.Now()
	if _, err := s.db.Exec("UPDATE products SET barcode = ?, updated_at = ? WHERE id = ? AND owner_id = ?", code, now, product.ID, product.OwnerID); err != nil {
		return fmt.Errorf("failed to store barcode: %w", err)
	}

	product.Barcode = &code
	product.UpdatedAt = now
	return nil
}

// BuildTicket assembles the shelf ticket for a product, resolving the
// store name through the display fallback chain
func (s *BarcodeService) BuildTicket(product *models.Product, ctx storectx.StoreContext) ProductTicket {
	fallback := ""
	if ctx.MainStore != nil {
		fallback = ctx.MainStore.Name
	}

	barcode := ""
	if product.Barcode != nil {
		barcode = *product.Barcode
	}

	return ProductTicket{
		ProductID:   product.ID,
		ProductName: product.Name,
		Price:       product.Price,
		Barcode:     barcode,
		StoreName:   storectx.ResolveStoreName(ctx.UserStores, product.SupermarketID, fallback),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// ComposeEAN13 builds a full 13-digit code from a numeric company prefix
// and a sequence value. The item reference is zero-padded to fill the 12
// payload digits before the check digit.
func ComposeEAN13(companyPrefix string, sequence int64) (string, error) {
	if sequence < 0 {
		return "", fmt.Errorf("negative barcode sequence: %d", sequence)
	}
	itemDigits := 12 - len(companyPrefix)
	if itemDigits < 1 {
		return "", fmt.Errorf("company prefix too long: %s", companyPrefix)
	}

	payload := fmt.Sprintf("%s%0*d", companyPrefix, itemDigits, sequence)
	if len(payload) != 12 {
		return "", fmt.Errorf("barcode sequence overflow for prefix %s: %d", companyPrefix, sequence)
	}

	check, err := ean13CheckDigit(payload)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", payload, check), nil
}

// ValidateEAN13 reports whether a string is a well-formed EAN-13 code
func ValidateEAN13(code string) bool {
	if len(code) != 13 {
		return false
	}
	check, err := ean13CheckDigit(code[:12])
	if err != nil {
		return false
	}
	return int(code[12]-'0') == check
}

// ean13CheckDigit computes the modulo-10 check digit over 12 payload
// digits: odd positions weight 1, even positions weight 3.
func ean13CheckDigit(payload string) (int, error) {
	if len(payload) != 12 {
		return 0, fmt.Errorf("EAN-13 payload must be 12 digits, got %d", len(payload))
	}
	sum := 0
	for i, r := range payload {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("EAN-13 payload must be numeric, got %q", payload)
		}
		digit := int(r - '0')
		if i%2 == 1 {
			digit *= 3
		}
		sum += digit
	}
	return (10 - sum%10) % 10, nil
}
