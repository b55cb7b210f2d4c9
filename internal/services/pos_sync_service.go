package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2/clientcredentials"

	"stockive-backend/config"
	"stockive-backend/internal/models"
	"stockive-backend/internal/storectx"
)

// ErrPOSNotConfigured is returned when sync is requested without POS
// credentials in the environment
var ErrPOSNotConfigured = errors.New("POS integration is not configured")

// POSSyncService pulls product records from an external POS provider and
// imports them into the local inventory. Provider payloads are
// heterogeneous, so each record's store reference goes through the
// identifier reconciler before import.
type POSSyncService struct {
	db             *sql.DB
	cfg            *config.Config
	storeService   *StoreService
	productService *ProductService
	wsService      *WebSocketService
	httpClient     *http.Client
}

// POSSyncResult summarizes one sync run
type POSSyncResult struct {
	SyncID            string    `json:"syncId"`
	StoreID           string    `json:"storeId"`
	Provider          string    `json:"provider"`
	Status            string    `json:"status"`
	RecordsReceived   int       `json:"recordsReceived"`
	RecordsImported   int       `json:"recordsImported"`
	RecordsUnresolved int       `json:"recordsUnresolved"`
	StartedAt         time.Time `json:"startedAt"`
	FinishedAt        time.Time `json:"finishedAt"`
}

// POSSyncLogEntry is one persisted sync run
type POSSyncLogEntry struct {
	ID                string     `json:"id"`
	StoreID           string     `json:"storeId"`
	Provider          string     `json:"provider"`
	Status            string     `json:"status"`
	RecordsReceived   int        `json:"recordsReceived"`
	RecordsImported   int        `json:"recordsImported"`
	RecordsUnresolved int        `json:"recordsUnresolved"`
	Error             *string    `json:"error,omitempty"`
	StartedAt         time.Time  `json:"startedAt"`
	FinishedAt        *time.Time `json:"finishedAt,omitempty"`
}

type posProductPage struct {
	Products []map[string]interface{} `json:"products"`
	HasMore  bool                     `json:"hasMore"`
}

// NewPOSSyncService creates a new POS sync service. The HTTP client
// carries OAuth2 client-credentials tokens when the integration is
// configured.
func NewPOSSyncService(db *sql.DB, cfg *config.Config, storeService *StoreService, productService *ProductService, wsService *WebSocketService) *POSSyncService {
	service := &POSSyncService{
		db:             db,
		cfg:            cfg,
		storeService:   storeService,
		productService: productService,
		wsService:      wsService,
	}

	if cfg.POSConfigured() {
		ccConfig := &clientcredentials.Config{
			ClientID:     cfg.POSClientID,
			ClientSecret: cfg.POSClientSecret,
			TokenURL:     cfg.POSTokenURL,
		}
		service.httpClient = ccConfig.Client(context.Background())
		service.httpClient.Timeout = 30 * time.Second
	}

	return service
}

// SyncStore pulls the provider's product feed for one store and imports
// it. The store must belong to the owner and have POS sync enabled.
func (s *POSSyncService) SyncStore(ctx context.Context, storeID, ownerID string) (*POSSyncResult, error) {
	if s.httpClient == nil {
		return nil, ErrPOSNotConfigured
	}

	store, err := s.storeService.GetStore(storeID, ownerID)
	if err != nil {
		return nil, err
	}
	if !store.POS.Enabled || !store.POS.SyncEnabled {
		return nil, fmt.Errorf("POS sync is not enabled for store %s", store.Name)
	}

	provider := "generic"
	if store.POS.Provider != nil && *store.POS.Provider != "" {
		provider = *store.POS.Provider
	}

	result := &POSSyncResult{
		SyncID:    uuid.New().String(),
		StoreID:   store.ID,
		Provider:  provider,
		Status:    "running",
		StartedAt: time.Now(),
	}
	if err := s.insertSyncLog(result); err != nil {
		return nil, err
	}

	syncErr := s.pullAndImport(ctx, store, ownerID, provider, result)

	result.FinishedAt = time.Now()
	if syncErr != nil {
		result.Status = "failed"
	} else {
		result.Status = "completed"
	}
	if err := s.finishSyncLog(result, syncErr); err != nil {
		return nil, err
	}

	if syncErr != nil {
		s.notify(ownerID, "pos_sync", fmt.Sprintf("POS sync for %s failed", store.Name), result)
		return result, syncErr
	}

	if err := s.storeService.MarkSynced(store.ID, result.FinishedAt); err != nil {
		return nil, err
	}

	s.notify(ownerID, "pos_sync",
		fmt.Sprintf("POS sync for %s imported %d of %d records", store.Name, result.RecordsImported, result.RecordsReceived),
		result)
	return result, nil
}

func (s *POSSyncService) pullAndImport(ctx context.Context, store *models.Store, ownerID, provider string, result *POSSyncResult) error {
	stores, err := s.storeService.GetStoresByOwner(ownerID)
	if err != nil {
		return err
	}

	page := 1
	for {
		records, hasMore, err := s.fetchPage(ctx, provider, page)
		if err != nil {
			return err
		}
		result.RecordsReceived += len(records)

		for _, record := range records {
			imported, err := s.importRecord(record, store, stores, ownerID)
			if err != nil {
				return err
			}
			if imported {
				result.RecordsImported++
			} else {
				result.RecordsUnresolved++
			}
		}

		if !hasMore {
			return nil
		}
		page++
	}
}

func (s *POSSyncService) fetchPage(ctx context.Context, provider string, page int) ([]map[string]interface{}, bool, error) {
	endpoint, err := url.Parse(s.cfg.POSAPIBaseURL)
	if err != nil {
		return nil, false, fmt.Errorf("invalid POS API base URL: %w", err)
	}
	endpoint = endpoint.JoinPath("products")

	query := endpoint.Query()
	query.Set("provider", provider)
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("pageSize", fmt.Sprintf("%d", s.cfg.POSSyncPageSize))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("POS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("POS API returned status %d", resp.StatusCode)
	}

	var payload posProductPage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("failed to decode POS payload: %w", err)
	}
	return payload.Products, payload.HasMore, nil
}

// importRecord upserts one provider record. Records whose store
// reference cannot be reconciled still import, bucketed under the store
// being synced, but count as unresolved.
func (s *POSSyncService) importRecord(record map[string]interface{}, store *models.Store, stores []models.Store, ownerID string) (bool, error) {
	name := stringField(record, "name", "title", "productName", "product_name")
	if name == "" {
		return false, nil
	}

	storeRef, resolved := storectx.ReconcileStoreRef(record)
	if !resolved {
		storeRef = store.ID
	} else if storectx.ResolveStoreName(stores, storeRef, "") == storectx.UnknownStoreName {
		// Reconciled to something no local store matches; keep the
		// record under the synced store so it stays visible
		storeRef = store.ID
		resolved = false
	}

	creation := &models.ProductCreation{
		Name:          name,
		Category:      stringField(record, "category", "department"),
		Price:         floatField(record, "price", "unitPrice", "unit_price"),
		Quantity:      intField(record, "quantity", "stock", "stockLevel", "stock_level"),
		SupermarketID: storeRef,
	}
	if barcode := stringField(record, "barcode", "ean", "gtin", "sku"); barcode != "" {
		creation.Barcode = &barcode
	}
	if expiry := timeField(record, "expiryDate", "expiry_date", "bestBefore", "best_before"); expiry != nil {
		creation.ExpiryDate = expiry
	}

	if creation.Barcode != nil {
		existing, err := s.productService.GetProductByBarcode(*creation.Barcode, ownerID)
		if err != nil && !errors.Is(err, ErrProductNotFound) {
			return false, err
		}
		if existing != nil {
			update := &models.ProductUpdate{
				Name:          &creation.Name,
				Price:         &creation.Price,
				Quantity:      &creation.Quantity,
				SupermarketID: &creation.SupermarketID,
				ExpiryDate:    creation.ExpiryDate,
			}
			if _, err := s.productService.UpdateProduct(existing.ID, ownerID, update); err != nil {
				return false, err
			}
			return resolved, nil
		}
	}

	if _, err := s.productService.CreateProduct(creation, ownerID); err != nil {
		return false, err
	}
	return resolved, nil
}

// GetSyncHistory lists past sync runs for a store, newest first
func (s *POSSyncService) GetSyncHistory(storeID, ownerID string, limit int) ([]POSSyncLogEntry, error) {
	if _, err := s.storeService.GetStore(storeID, ownerID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT id, store_id, provider, status, records_received, records_imported,
			records_unresolved, error, started_at, finished_at
		 FROM pos_sync_log WHERE store_id = ? ORDER BY started_at DESC LIMIT ?`,
		storeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync history: %w", err)
	}
	defer rows.Close()

	history := []POSSyncLogEntry{}
	for rows.Next() {
		var entry POSSyncLogEntry
		err := rows.Scan(
			&entry.ID, &entry.StoreID, &entry.Provider, &entry.Status,
			&entry.RecordsReceived, &entry.RecordsImported, &entry.RecordsUnresolved,
			&entry.Error, &entry.StartedAt, &entry.FinishedAt,
		)
		if err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}

func (s *POSSyncService) insertSyncLog(result *POSSyncResult) error {
	_, err := s.db.Exec(
		`INSERT INTO pos_sync_log (id, store_id, provider, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		result.SyncID, result.StoreID, result.Provider, result.Status, result.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sync log: %w", err)
	}
	return nil
}

func (s *POSSyncService) finishSyncLog(result *POSSyncResult, syncErr error) error {
	var errText *string
	if syncErr != nil {
		msg := syncErr.Error()
		errText = &msg
	}
	_, err := s.db.Exec(
		`UPDATE pos_sync_log SET status = ?, records_received = ?, records_imported = ?,
			records_unresolved = ?, error = ?, finished_at = ? WHERE id = ?`,
		result.Status, result.RecordsReceived, result.RecordsImported,
		result.RecordsUnresolved, errText, result.FinishedAt, result.SyncID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish sync log: %w", err)
	}
	return nil
}

func (s *POSSyncService) notify(userID, eventType, message string, data interface{}) {
	if s.wsService != nil {
		s.wsService.NotifyUser(userID, eventType, message, data)
	}
}

func stringField(record map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if value, ok := record[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func floatField(record map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		switch value := record[key].(type) {
		case float64:
			return value
		case string:
			var f float64
			if _, err := fmt.Sscanf(value, "%g", &f); err == nil {
				return f
			}
		}
	}
	return 0
}

func intField(record map[string]interface{}, keys ...string) int {
	for _, key := range keys {
		switch value := record[key].(type) {
		case float64:
			return int(value)
		case string:
			var n int
			if _, err := fmt.Sscanf(value, "%d", &n); err == nil {
				return n
			}
		}
	}
	return 0
}

func timeField(record map[string]interface{}, keys ...string) *time.Time {
	for _, key := range keys {
		value, ok := record[key].(string)
		if !ok || value == "" {
			continue
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, value); err == nil {
				return &t
			}
		}
	}
	return nil
}
