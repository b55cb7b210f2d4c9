package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"stockive-backend/internal/models"
	"stockive-backend/internal/storectx"
	"stockive-backend/internal/utils"
)

// ErrProductNotFound is returned when a product id does not resolve for
// the requesting owner
var ErrProductNotFound = errors.New("product not found")

// ProductFilters narrows product list queries
type ProductFilters struct {
	Category string
	StoreRef string
	Search   string
	Supplier string
}

// ProductService handles product-related business logic
type ProductService struct {
	db              *sql.DB
	defaultLowStock int
	clearanceWindow time.Duration
	expiryWarning   time.Duration
}

// NewProductService creates a new product service
func NewProductService(db *sql.DB, defaultLowStock, expiryWarningDays, clearanceWindowDays int) *ProductService {
	return &ProductService{
		db:              db,
		defaultLowStock: defaultLowStock,
		expiryWarning:   time.Duration(expiryWarningDays) * 24 * time.Hour,
		clearanceWindow: time.Duration(clearanceWindowDays) * 24 * time.Hour,
	}
}

const productColumns = `id, name, category, supplier, price, quantity, expiry_date,
	supermarket_id, barcode, low_stock_threshold, owner_id, created_at, updated_at`

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(creation *models.ProductCreation, ownerID string) (*models.Product, error) {
	if err := utils.ValidateStruct(creation); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	threshold := s.defaultLowStock
	if creation.LowStockThreshold != nil {
		threshold = *creation.LowStockThreshold
	}

	storeRef := strings.TrimSpace(creation.SupermarketID)
	if storeRef == "" {
		storeRef = storectx.DefaultStoreRef
	}

	category := strings.TrimSpace(creation.Category)
	if category == "" {
		category = "general"
	}

	product := &models.Product{
		ID:                uuid.New().String(),
		Name:              utils.SanitizeString(creation.Name),
		Category:          category,
		Supplier:          creation.Supplier,
		Price:             creation.Price,
		Quantity:          creation.Quantity,
		ExpiryDate:        creation.ExpiryDate,
		SupermarketID:     storeRef,
		Barcode:           creation.Barcode,
		LowStockThreshold: threshold,
		OwnerID:           ownerID,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	query := `
		INSERT INTO products (
			id, name, category, supplier, price, quantity, expiry_date,
			supermarket_id, barcode, low_stock_threshold, owner_id,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		product.ID, product.Name, product.Category, product.Supplier,
		product.Price, product.Quantity, product.ExpiryDate,
		product.SupermarketID, product.Barcode, product.LowStockThreshold,
		product.OwnerID, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return product, nil
}

// GetProduct fetches a product by id, scoped to the owner
func (s *ProductService) GetProduct(id, ownerID string) (*models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = ? AND owner_id = ?", productColumns)
	product, err := scanProduct(s.db.QueryRow(query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// GetProducts lists products for an owner with optional filters
func (s *ProductService) GetProducts(ownerID string, filters ProductFilters, limit, offset int) ([]models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE owner_id = ?", productColumns)
	args := []interface{}{ownerID}

	if filters.Category != "" {
		query += " AND category = ?"
		args = append(args, filters.Category)
	}
	if filters.StoreRef != "" {
		query += " AND supermarket_id = ?"
		args = append(args, filters.StoreRef)
	}
	if filters.Supplier != "" {
		query += " AND supplier = ?"
		args = append(args, filters.Supplier)
	}
	if filters.Search != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+filters.Search+"%")
	}

	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	return s.queryProducts(query, args...)
}

// GetLowStockProducts lists products at or below their stock threshold
func (s *ProductService) GetLowStockProducts(ownerID string) ([]models.Product, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM products WHERE owner_id = ? AND quantity <= low_stock_threshold ORDER BY quantity ASC",
		productColumns,
	)
	return s.queryProducts(query, ownerID)
}

// GetExpiringProducts lists products expiring inside the warning window,
// including already-expired stock
func (s *ProductService) GetExpiringProducts(ownerID string) ([]models.Product, error) {
	cutoff := time.Now().Add(s.expiryWarning)
	query := fmt.Sprintf(
		"SELECT %s FROM products WHERE owner_id = ? AND expiry_date IS NOT NULL AND expiry_date <= ? ORDER BY expiry_date ASC",
		productColumns,
	)
	return s.queryProducts(query, ownerID, cutoff)
}

// GetClearanceProducts lists sellable products inside the clearance
// window: close enough to expiry to discount, not yet expired
func (s *ProductService) GetClearanceProducts(ownerID string) ([]models.Product, error) {
	now := time.Now()
	cutoff := now.Add(s.clearanceWindow)
	query := fmt.Sprintf(
		"SELECT %s FROM products WHERE owner_id = ? AND quantity > 0 AND expiry_date IS NOT NULL AND expiry_date > ? AND expiry_date <= ? ORDER BY expiry_date ASC",
		productColumns,
	)
	return s.queryProducts(query, ownerID, now, cutoff)
}

// UpdateProduct applies a partial update
func (s *ProductService) UpdateProduct(id, ownerID string, update *models.ProductUpdate) (*models.Product, error) {
	product, err := s.GetProduct(id, ownerID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		product.Name = utils.SanitizeString(*update.Name)
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Supplier != nil {
		product.Supplier = update.Supplier
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Quantity != nil {
		product.Quantity = *update.Quantity
	}
	if update.ExpiryDate != nil {
		product.ExpiryDate = update.ExpiryDate
	}
	if update.SupermarketID != nil {
		ref := strings.TrimSpace(*update.SupermarketID)
		if ref == "" {
			ref = storectx.DefaultStoreRef
		}
		product.SupermarketID = ref
	}
	if update.Barcode != nil {
		product.Barcode = update.Barcode
	}
	if update.LowStockThreshold != nil {
		product.LowStockThreshold = *update.LowStockThreshold
	}
	product.UpdatedAt = time.Now()

	query := `
		UPDATE products SET name = ?, category = ?, supplier = ?, price = ?, quantity = ?,
			expiry_date = ?, supermarket_id = ?, barcode = ?, low_stock_threshold = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?
	`
	_, err = s.db.Exec(query,
		product.Name, product.Category, product.Supplier, product.Price, product.Quantity,
		product.ExpiryDate, product.SupermarketID, product.Barcode, product.LowStockThreshold,
		product.UpdatedAt, id, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// AdjustQuantity changes stock by a delta inside an existing transaction
func (s *ProductService) AdjustQuantity(tx *sql.Tx, productID, ownerID string, delta int) error {
	result, err := tx.Exec(
		"UPDATE products SET quantity = quantity + ?, updated_at = ? WHERE id = ? AND owner_id = ? AND quantity + ? >= 0",
		delta, time.Now(), productID, ownerID, delta,
	)
	if err != nil {
		return fmt.Errorf("failed to adjust quantity: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("quantity adjustment rejected for product %s", productID)
	}
	return nil
}

// DeleteProduct removes a product
func (s *ProductService) DeleteProduct(id, ownerID string) error {
	result, err := s.db.Exec("DELETE FROM products WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProductNotFound
	}
	return nil
}

// GetProductByBarcode fetches a product by barcode, scoped to the owner
func (s *ProductService) GetProductByBarcode(barcode, ownerID string) (*models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE barcode = ? AND owner_id = ?", productColumns)
	product, err := scanProduct(s.db.QueryRow(query, barcode, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// DecorateStoreNames resolves a display store name for each product
// through the fallback chain, using the owner's main store as the final
// caller fallback
func (s *ProductService) DecorateStoreNames(products []models.Product, ctx storectx.StoreContext) {
	fallback := ""
	if ctx.MainStore != nil {
		fallback = ctx.MainStore.Name
	}
	for i := range products {
		products[i].StoreName = storectx.ResolveStoreName(ctx.UserStores, products[i].SupermarketID, fallback)
	}
}

func (s *ProductService) queryProducts(query string, args ...interface{}) ([]models.Product, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.Category, &p.Supplier, &p.Price, &p.Quantity,
			&p.ExpiryDate, &p.SupermarketID, &p.Barcode, &p.LowStockThreshold,
			&p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func scanProduct(row *sql.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Supplier, &p.Price, &p.Quantity,
		&p.ExpiryDate, &p.SupermarketID, &p.Barcode, &p.LowStockThreshold,
		&p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
