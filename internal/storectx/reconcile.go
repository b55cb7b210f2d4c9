package storectx

import (
	"strconv"
	"strings"
)

// DefaultStoreRef is the legacy display bucket for products whose store
// reference could not be reconciled. It aliases "field genuinely absent"
// and "field present but shape unrecognized" into one value; callers that
// need to tell those apart use ReconcileStoreRef and inspect ok.
const DefaultStoreRef = "default"

// storeRefCandidates is the ordered synonym table for store reference
// fields across historical API versions. Order is significant: the first
// candidate with a usable value wins.
var storeRefCandidates = []string{
	"supermarketId",
	"supermarket_id",
	"supermarketID",
	"supermarket_uuid",
	"supermarket",
	"storeId",
	"store_id",
	"storeID",
	"store_uuid",
	"store",
	"marketId",
	"market_id",
	"market",
	"shopId",
	"shop_id",
	"shop",
	"branchId",
	"branch_id",
	"branch",
	"location",
}

// idCandidates is the shorter synonym table used when a winning candidate
// turns out to be a nested object rather than a scalar.
var idCandidates = []string{
	"id",
	"pk",
	"uuid",
	"uid",
	"identifier",
	"name",
}

// ReconcileStoreRef collapses the synonymous store reference fields of a
// decoded record into one canonical string. It returns ok=false when no
// candidate carries a usable value; it never panics.
func ReconcileStoreRef(record map[string]interface{}) (string, bool) {
	return Reconcile(record, storeRefCandidates)
}

// ReconcileStoreRefOrDefault preserves the legacy behavior of bucketing
// every unresolvable reference under DefaultStoreRef.
func ReconcileStoreRefOrDefault(record map[string]interface{}) string {
	if ref, ok := ReconcileStoreRef(record); ok {
		return ref
	}
	return DefaultStoreRef
}

// Reconcile returns the first candidate field whose value is non-null and
// non-empty after trimming. A candidate holding a nested object is resolved
// through the id candidate list; if the nested lookup fails the scan moves
// on to the next candidate.
func Reconcile(record map[string]interface{}, candidates []string) (string, bool) {
	if record == nil {
		return "", false
	}
	for _, key := range candidates {
		value, exists := record[key]
		if !exists || value == nil {
			continue
		}
		if s, ok := coerceScalar(value); ok {
			return s, true
		}
		if nested, ok := value.(map[string]interface{}); ok {
			if s, ok := reconcileNested(nested); ok {
				return s, true
			}
		}
	}
	return "", false
}

func reconcileNested(record map[string]interface{}) (string, bool) {
	for _, key := range idCandidates {
		value, exists := record[key]
		if !exists || value == nil {
			continue
		}
		if s, ok := coerceScalar(value); ok {
			return s, true
		}
	}
	return "", false
}

// coerceScalar turns a decoded JSON scalar into a canonical identifier
// string. Booleans, arrays, and objects are not identifiers.
func coerceScalar(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		return trimmed, trimmed != ""
	case float64:
		// Numeric ids decode as float64; keep integral values undecorated
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}
