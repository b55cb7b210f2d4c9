// Package storectx derives a user's store context from backend records.
//
// The package absorbs three generations of inconsistent API field naming:
// store references arrive as ids, names, addresses, or nested objects under
// half a dozen synonymous keys. Everything in here is a pure, synchronous
// projection over in-memory lists; no function panics, and every lookup
// degrades to a documented fallback instead of failing.
package storectx
