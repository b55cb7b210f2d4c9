package storectx

import (
	"stockive-backend/internal/models"
)

// StoreContext is a derived, non-persisted summary of a user's store
// hierarchy. It is recomputed from a fresh snapshot on every request and
// retains no state between calls.
type StoreContext struct {
	IsMultiStore bool           `json:"isMultiStore"`
	UserStores   []models.Store `json:"userStores"`
	MainStore    *models.Store  `json:"mainStore"`
	SubStores    []models.Store `json:"subStores"`
	TotalStores  int            `json:"totalStores"`
}

// Classify partitions a store list into main and sub groups for the given
// user. The input list is trusted to already be scoped to the user; the
// store service enforces owner scoping at the SQL layer.
//
// A nil user yields the all-empty context regardless of the list. A list
// holding only sub-stores yields a nil MainStore even though SubStores is
// non-empty (dangling hierarchy, tolerated).
func Classify(stores []models.Store, user *models.User) StoreContext {
	if user == nil {
		return StoreContext{
			IsMultiStore: false,
			UserStores:   []models.Store{},
			MainStore:    nil,
			SubStores:    []models.Store{},
			TotalStores:  0,
		}
	}

	userStores := stores
	if userStores == nil {
		userStores = []models.Store{}
	}

	var mainStore *models.Store
	subStores := []models.Store{}
	for i := range userStores {
		if userStores[i].IsSubStore {
			subStores = append(subStores, userStores[i])
			continue
		}
		if mainStore == nil {
			main := userStores[i]
			mainStore = &main
		}
	}

	return StoreContext{
		IsMultiStore: len(userStores) > 1,
		UserStores:   userStores,
		MainStore:    mainStore,
		SubStores:    subStores,
		TotalStores:  len(userStores),
	}
}
