package storectx

import (
	"strings"

	"stockive-backend/internal/models"
)

// UnknownStoreName is the terminal fallback of the display-name chain
const UnknownStoreName = "Unknown Store"

// ResolveStoreName turns a product's loose store reference into a display
// name. Resolution order, first match wins:
//
//  1. exact match against a store id
//  2. case-insensitive, trimmed match against a store name
//  3. case-insensitive, trimmed match against a store address (legacy
//     backends stored location text in the reference field)
//  4. the caller-supplied fallback, if non-empty
//  5. UnknownStoreName
//
// The result is always non-empty; the id match takes priority over name
// and address matches even when the reference is ambiguous.
func ResolveStoreName(stores []models.Store, ref string, fallback string) string {
	for i := range stores {
		if stores[i].ID == ref && stores[i].Name != "" {
			return stores[i].Name
		}
	}

	needle := strings.ToLower(strings.TrimSpace(ref))
	if needle != "" {
		for i := range stores {
			if strings.ToLower(strings.TrimSpace(stores[i].Name)) == needle && stores[i].Name != "" {
				return stores[i].Name
			}
		}
		for i := range stores {
			if stores[i].Address == nil || stores[i].Name == "" {
				continue
			}
			if strings.ToLower(strings.TrimSpace(*stores[i].Address)) == needle {
				return stores[i].Name
			}
		}
	}

	if trimmed := strings.TrimSpace(fallback); trimmed != "" {
		return trimmed
	}
	return UnknownStoreName
}
