package models

import (
	"time"
)

// Store represents a retail location, either independent ("main") or
// dependent on another store ("sub-store")
type Store struct {
	ID         string     `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	Address    *string    `json:"address,omitempty" db:"address"`
	Phone      *string    `json:"phone,omitempty" db:"phone"`
	Email      *string    `json:"email,omitempty" db:"email"`
	IsSubStore bool       `json:"isSubStore" db:"is_sub_store"`
	ParentID   *string    `json:"parentId,omitempty" db:"parent_id"`
	OwnerID    string     `json:"ownerId" db:"owner_id"`
	POS        POSConfig  `json:"posSystem"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}

// POSConfig describes a store's link to an external point-of-sale system
type POSConfig struct {
	Enabled     bool       `json:"enabled" db:"pos_enabled"`
	Provider    *string    `json:"provider,omitempty" db:"pos_provider"`
	SyncEnabled bool       `json:"syncEnabled" db:"pos_sync_enabled"`
	LastSyncAt  *time.Time `json:"lastSyncAt,omitempty" db:"pos_last_sync_at"`
}

// StoreCreation represents data for creating a new store
type StoreCreation struct {
	Name       string  `json:"name" validate:"required,min=2,max=100"`
	Address    *string `json:"address,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty"`
	IsSubStore bool    `json:"isSubStore"`
	ParentID   *string `json:"parentId,omitempty"`
}

// StoreUpdate represents store update data
type StoreUpdate struct {
	Name     *string `json:"name,omitempty"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	ParentID *string `json:"parentId,omitempty"`
}

// POSConfigUpdate represents POS configuration update data
type POSConfigUpdate struct {
	Enabled     *bool   `json:"enabled,omitempty"`
	Provider    *string `json:"provider,omitempty"`
	SyncEnabled *bool   `json:"syncEnabled,omitempty"`
}

// HasParent reports whether the store carries a parent reference.
// A sub-store with a missing or dangling parent is tolerated; callers
// render no parent link when the reference does not resolve.
func (s *Store) HasParent() bool {
	return s.ParentID != nil && *s.ParentID != ""
}

// DisplayAddress returns the store address or an empty string
func (s *Store) DisplayAddress() string {
	if s.Address != nil {
		return *s.Address
	}
	return ""
}
