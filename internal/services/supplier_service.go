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

// ErrSupplierNotFound is returned when a supplier id does not resolve for
// the requesting owner
var ErrSupplierNotFound = errors.New("supplier not found")

// SupplierService handles supplier-related business logic
type SupplierService struct {
	db *sql.DB
}

// NewSupplierService creates a new supplier service
func NewSupplierService(db *sql.DB) *SupplierService {
	return &SupplierService{db: db}
}

const supplierColumns = `id, name, contact_person, phone, email, address, owner_id, created_at, updated_at`

// CreateSupplier creates a new supplier
func (s *SupplierService) CreateSupplier(creation *models.SupplierCreation, ownerID string) (*models.Supplier, error) {
	if err := utils.ValidateStruct(creation); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	supplier := &models.Supplier{
		ID:            uuid.New().String(),
		Name:          utils.SanitizeString(creation.Name),
		ContactPerson: creation.ContactPerson,
		Phone:         creation.Phone,
		Email:         creation.Email,
		Address:       creation.Address,
		OwnerID:       ownerID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	query := `
		INSERT INTO suppliers (
			id, name, contact_person, phone, email, address, owner_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		supplier.ID, supplier.Name, supplier.ContactPerson, supplier.Phone,
		supplier.Email, supplier.Address, supplier.OwnerID,
		supplier.CreatedAt, supplier.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert supplier: %w", err)
	}

	return supplier, nil
}

// GetSupplier fetches a supplier by id, scoped to the owner
func (s *SupplierService) GetSupplier(id, ownerID string) (*models.Supplier, error) {
	query := fmt.Sprintf("SELECT %s FROM suppliers WHERE id = ? AND owner_id = ?", supplierColumns)
	var supplier models.Supplier
	err := s.db.QueryRow(query, id, ownerID).Scan(
		&supplier.ID, &supplier.Name, &supplier.ContactPerson, &supplier.Phone,
		&supplier.Email, &supplier.Address, &supplier.OwnerID,
		&supplier.CreatedAt, &supplier.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// GetSuppliersByOwner lists all suppliers for a user
func (s *SupplierService) GetSuppliersByOwner(ownerID string) ([]models.Supplier, error) {
	query := fmt.Sprintf("SELECT %s FROM suppliers WHERE owner_id = ? ORDER BY name ASC", supplierColumns)
	rows, err := s.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := []models.Supplier{}
	for rows.Next() {
		var supplier models.Supplier
		err := rows.Scan(
			&supplier.ID, &supplier.Name, &supplier.ContactPerson, &supplier.Phone,
			&supplier.Email, &supplier.Address, &supplier.OwnerID,
			&supplier.CreatedAt, &supplier.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, rows.Err()
}

// UpdateSupplier applies a partial update
func (s *SupplierService) UpdateSupplier(id, ownerID string, update *models.SupplierUpdate) (*models.Supplier, error) {
	supplier, err := s.GetSupplier(id, ownerID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		supplier.Name = utils.SanitizeString(*update.Name)
	}
	if update.ContactPerson != nil {
		supplier.ContactPerson = update.ContactPerson
	}
	if update.Phone != nil {
		supplier.Phone = update.Phone
	}
	if update.Email != nil {
		supplier.Email = update.Email
	}
	if update.Address != nil {
		supplier.Address = update.Address
	}
	supplier.UpdatedAt = time.Now()

	query := `
		UPDATE suppliers SET name = ?, contact_person = ?, phone = ?, email = ?, address = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?
	`
	if _, err := s.db.Exec(query, supplier.Name, supplier.ContactPerson, supplier.Phone, supplier.Email, supplier.Address, supplier.UpdatedAt, id, ownerID); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}

	return supplier, nil
}

// DeleteSupplier removes a supplier. Purchase orders keep their supplier
// reference; history stays intact.
func (s *SupplierService) DeleteSupplier(id, ownerID string) error {
	result, err := s.db.Exec("DELETE FROM suppliers WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSupplierNotFound
	}
	return nil
}
