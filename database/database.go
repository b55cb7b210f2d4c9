package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Initialize creates and returns a database connection
func Initialize(databaseURL string) (*sql.DB, error) {
	// Add SQLite-specific parameters for better concurrent access
	if !strings.Contains(databaseURL, "?") && !strings.Contains(databaseURL, ":memory:") {
		databaseURL = databaseURL + "?_busy_timeout=30000&_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000&_foreign_keys=1"
	}

	db, err := sql.Open("sqlite3", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(0) // No limit

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set SQLite pragmas for better concurrent access
	pragmas := []string{
		"PRAGMA busy_timeout = 30000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = 1000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA temp_store = memory",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			log.Printf("Warning: failed to set pragma %s: %v", pragma, err)
		}
	}

	log.Println("Database connection established successfully")
	return db, nil
}

// Migrate runs database migrations
func Migrate(db *sql.DB) error {
	migrations := []string{
		createUsersTable,
		createStoresTable,
		createSuppliersTable,
		createProductsTable,
		createPurchaseOrdersTable,
		createPurchaseOrderItemsTable,
		createNotificationsTable,
		createPOSSyncLogTable,
		createBarcodeSequenceTable,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	// Indexes that back the hot list queries
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_stores_owner_id ON stores(owner_id)",
		"CREATE INDEX IF NOT EXISTS idx_stores_parent_id ON stores(parent_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_store_ref ON products(supermarket_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_owner_id ON products(owner_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_expiry ON products(expiry_date)",
		"CREATE INDEX IF NOT EXISTS idx_products_barcode ON products(barcode)",
		"CREATE INDEX IF NOT EXISTS idx_suppliers_owner_id ON suppliers(owner_id)",
		"CREATE INDEX IF NOT EXISTS idx_purchase_orders_owner_id ON purchase_orders(owner_id)",
		"CREATE INDEX IF NOT EXISTS idx_purchase_orders_status ON purchase_orders(status)",
		"CREATE INDEX IF NOT EXISTS idx_po_items_order_id ON purchase_order_items(purchase_order_id)",
		"CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id, is_read)",
		"CREATE INDEX IF NOT EXISTS idx_pos_sync_log_store ON pos_sync_log(store_id, started_at DESC)",
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			log.Printf("Warning: failed to create index: %v", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT UNIQUE NOT NULL,
	phone TEXT,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'user',
	status TEXT NOT NULL DEFAULT 'active',
	subscription_plan TEXT NOT NULL DEFAULT 'basic',
	language TEXT NOT NULL DEFAULT 'en',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
)`

const createStoresTable = `
CREATE TABLE IF NOT EXISTS stores (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	address TEXT,
	phone TEXT,
	email TEXT,
	is_sub_store INTEGER NOT NULL DEFAULT 0,
	parent_id TEXT,
	owner_id TEXT NOT NULL,
	pos_enabled INTEGER NOT NULL DEFAULT 0,
	pos_provider TEXT,
	pos_sync_enabled INTEGER NOT NULL DEFAULT 0,
	pos_last_sync_at DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (owner_id) REFERENCES users(id)
)`

const createSuppliersTable = `
CREATE TABLE IF NOT EXISTS suppliers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	contact_person TEXT,
	phone TEXT,
	email TEXT,
	address TEXT,
	owner_id TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (owner_id) REFERENCES users(id)
)`

const createProductsTable = `
CREATE TABLE IF NOT EXISTS products (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT 'general',
	supplier TEXT,
	price REAL NOT NULL DEFAULT 0,
	quantity INTEGER NOT NULL DEFAULT 0,
	expiry_date DATETIME,
	supermarket_id TEXT NOT NULL DEFAULT 'default',
	barcode TEXT,
	low_stock_threshold INTEGER NOT NULL DEFAULT 5,
	owner_id TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (owner_id) REFERENCES users(id)
)`

const createPurchaseOrdersTable = `
CREATE TABLE IF NOT EXISTS purchase_orders (
	id TEXT PRIMARY KEY,
	supplier_id TEXT NOT NULL,
	store_id TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'draft',
	total_cost REAL NOT NULL DEFAULT 0,
	notes TEXT,
	owner_id TEXT NOT NULL,
	submitted_at DATETIME,
	received_at DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (supplier_id) REFERENCES suppliers(id),
	FOREIGN KEY (owner_id) REFERENCES users(id)
)`

const createPurchaseOrderItemsTable = `
CREATE TABLE IF NOT EXISTS purchase_order_items (
	id TEXT PRIMARY KEY,
	purchase_order_id TEXT NOT NULL,
	product_id TEXT NOT NULL,
	product_name TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	unit_cost REAL NOT NULL,
	FOREIGN KEY (purchase_order_id) REFERENCES purchase_orders(id) ON DELETE CASCADE,
	FOREIGN KEY (product_id) REFERENCES products(id)
)`

const createNotificationsTable = `
CREATE TABLE IF NOT EXISTS notifications (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	type TEXT NOT NULL,
	title TEXT NOT NULL,
	message TEXT NOT NULL,
	product_id TEXT,
	store_id TEXT,
	is_read INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id)
)`

const createPOSSyncLogTable = `
CREATE TABLE IF NOT EXISTS pos_sync_log (
	id TEXT PRIMARY KEY,
	store_id TEXT NOT NULL,
	provider TEXT NOT NULL,
	status TEXT NOT NULL,
	records_received INTEGER NOT NULL DEFAULT 0,
	records_imported INTEGER NOT NULL DEFAULT 0,
	records_unresolved INTEGER NOT NULL DEFAULT 0,
	error TEXT,
	started_at DATETIME NOT NULL,
	finished_at DATETIME,
	FOREIGN KEY (store_id) REFERENCES stores(id)
)`

const createBarcodeSequenceTable = `
CREATE TABLE IF NOT EXISTS barcode_sequence (
	owner_id TEXT PRIMARY KEY,
	next_value INTEGER NOT NULL DEFAULT 1,
	FOREIGN KEY (owner_id) REFERENCES users(id)
)`
