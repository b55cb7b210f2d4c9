package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stockive-backend/internal/models"
	"stockive-backend/internal/storectx"
	"stockive-backend/internal/utils"
)

// ErrStoreNotFound is returned when a store id does not resolve for the
// requesting owner
var ErrStoreNotFound = errors.New("store not found")

// StoreService handles store-related business logic
type StoreService struct {
	db *sql.DB
}

// NewStoreService creates a new store service
func NewStoreService(db *sql.DB) *StoreService {
	return &StoreService{db: db}
}

const storeColumns = `id, name, address, phone, email, is_sub_store, parent_id, owner_id,
	pos_enabled, pos_provider, pos_sync_enabled, pos_last_sync_at, created_at, updated_at`

// CreateStore creates a new store for the owner
func (s *StoreService) CreateStore(creation *models.StoreCreation, ownerID string) (*models.Store, error) {
	if err := utils.ValidateStruct(creation); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	// A sub-store should carry a parent reference; a missing or dangling
	// one is tolerated downstream, but a parent pointing at another owner
	// is not
	if creation.ParentID != nil && *creation.ParentID != "" {
		if _, err := s.GetStore(*creation.ParentID, ownerID); err != nil {
			if errors.Is(err, ErrStoreNotFound) {
				return nil, errors.New("parent store not found")
			}
			return nil, err
		}
	}

	store := &models.Store{
		ID:         uuid.New().String(),
		Name:       utils.SanitizeString(creation.Name),
		Address:    creation.Address,
		Phone:      creation.Phone,
		Email:      creation.Email,
		IsSubStore: creation.IsSubStore,
		ParentID:   creation.ParentID,
		OwnerID:    ownerID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	query := `
		INSERT INTO stores (
			id, name, address, phone, email, is_sub_store, parent_id, owner_id,
			pos_enabled, pos_provider, pos_sync_enabled, pos_last_sync_at,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		store.ID, store.Name, store.Address, store.Phone, store.Email,
		store.IsSubStore, store.ParentID, store.OwnerID,
		store.POS.Enabled, store.POS.Provider, store.POS.SyncEnabled, store.POS.LastSyncAt,
		store.CreatedAt, store.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert store: %w", err)
	}

	return store, nil
}

// EnsureDefaultStore creates a main store for owners that have none.
// Triggered on first login so every account always has a store to hang
// products on.
func (s *StoreService) EnsureDefaultStore(ownerID string) (*models.Store, bool, error) {
	stores, err := s.GetStoresByOwner(ownerID)
	if err != nil {
		return nil, false, err
	}
	if len(stores) > 0 {
		return &stores[0], false, nil
	}

	store, err := s.CreateStore(&models.StoreCreation{Name: "Main Store"}, ownerID)
	if err != nil {
		return nil, false, err
	}
	return store, true, nil
}

// GetStore fetches a store by id, scoped to the owner
func (s *StoreService) GetStore(id, ownerID string) (*models.Store, error) {
	query := fmt.Sprintf("SELECT %s FROM stores WHERE id = ? AND owner_id = ?", storeColumns)
	store, err := scanStore(s.db.QueryRow(query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return store, nil
}

// GetStoresByOwner lists all stores owned by a user, main stores first
func (s *StoreService) GetStoresByOwner(ownerID string) ([]models.Store, error) {
	query := fmt.Sprintf("SELECT %s FROM stores WHERE owner_id = ? ORDER BY is_sub_store ASC, created_at ASC", storeColumns)
	rows, err := s.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	stores := []models.Store{}
	for rows.Next() {
		store, err := scanStoreRows(rows)
		if err != nil {
			return nil, err
		}
		stores = append(stores, *store)
	}
	return stores, rows.Err()
}

// GetStoreContext classifies the owner's stores into the derived context
func (s *StoreService) GetStoreContext(user *models.User) (storectx.StoreContext, error) {
	if user == nil {
		return storectx.Classify(nil, nil), nil
	}
	stores, err := s.GetStoresByOwner(user.ID)
	if err != nil {
		return storectx.StoreContext{}, err
	}
	return storectx.Classify(stores, user), nil
}

// UpdateStore applies a partial update
func (s *StoreService) UpdateStore(id, ownerID string, update *models.StoreUpdate) (*models.Store, error) {
	store, err := s.GetStore(id, ownerID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		store.Name = utils.SanitizeString(*update.Name)
	}
	if update.Address != nil {
		store.Address = update.Address
	}
	if update.Phone != nil {
		store.Phone = update.Phone
	}
	if update.Email != nil {
		store.Email = update.Email
	}
	if update.ParentID != nil {
		store.ParentID = update.ParentID
	}
	store.UpdatedAt = time.Now()

	query := `
		UPDATE stores SET name = ?, address = ?, phone = ?, email = ?, parent_id = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?
	`
	if _, err := s.db.Exec(query, store.Name, store.Address, store.Phone, store.Email, store.ParentID, store.UpdatedAt, id, ownerID); err != nil {
		return nil, fmt.Errorf("failed to update store: %w", err)
	}

	return store, nil
}

// UpdatePOSConfig updates the store's POS integration settings
func (s *StoreService) UpdatePOSConfig(id, ownerID string, update *models.POSConfigUpdate) (*models.Store, error) {
	store, err := s.GetStore(id, ownerID)
	if err != nil {
		return nil, err
	}

	if update.Enabled != nil {
		store.POS.Enabled = *update.Enabled
	}
	if update.Provider != nil {
		store.POS.Provider = update.Provider
	}
	if update.SyncEnabled != nil {
		store.POS.SyncEnabled = *update.SyncEnabled
	}
	store.UpdatedAt = time.Now()

	query := `
		UPDATE stores SET pos_enabled = ?, pos_provider = ?, pos_sync_enabled = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?
	`
	if _, err := s.db.Exec(query, store.POS.Enabled, store.POS.Provider, store.POS.SyncEnabled, store.UpdatedAt, id, ownerID); err != nil {
		return nil, fmt.Errorf("failed to update POS config: %w", err)
	}

	return store, nil
}

// MarkSynced stamps the store's last POS sync time
func (s *StoreService) MarkSynced(id string, at time.Time) error {
	_, err := s.db.Exec("UPDATE stores SET pos_last_sync_at = ?, updated_at = ? WHERE id = ?", at, at, id)
	if err != nil {
		return fmt.Errorf("failed to mark store synced: %w", err)
	}
	return nil
}

// DeleteStore removes a store and its products in one transaction.
// Products referencing the store by name or address rather than id are
// left in place; only exact id references cascade.
func (s *StoreService) DeleteStore(id, ownerID string) error {
	if _, err := s.GetStore(id, ownerID); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM products WHERE supermarket_id = ? AND owner_id = ?", id, ownerID); err != nil {
		return fmt.Errorf("failed to delete store products: %w", err)
	}

	// Sub-stores keep their parent reference; a dangling parent is
	// tolerated by the classifier
	if _, err := tx.Exec("DELETE FROM stores WHERE id = ? AND owner_id = ?", id, ownerID); err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStore(row *sql.Row) (*models.Store, error) {
	return scanStoreFrom(row)
}

func scanStoreRows(rows *sql.Rows) (*models.Store, error) {
	return scanStoreFrom(rows)
}

func scanStoreFrom(scanner rowScanner) (*models.Store, error) {
	var store models.Store
	err := scanner.Scan(
		&store.ID, &store.Name, &store.Address, &store.Phone, &store.Email,
		&store.IsSubStore, &store.ParentID, &store.OwnerID,
		&store.POS.Enabled, &store.POS.Provider, &store.POS.SyncEnabled, &store.POS.LastSyncAt,
		&store.CreatedAt, &store.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &store, nil
}
