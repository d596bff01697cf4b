package ports

import "github.com/mka-platform/lms-api/internal/core/domain"

// FallbackStore is the process-local substitute consulted while the durable
// store is unreachable. It holds whatever was written during the outage and
// resets on restart; it is never reconciled with the durable store.
type FallbackStore interface {
	// Create assigns an id (unique within the cache only) and appends the
	// record. It cannot fail.
	Create(user domain.User) domain.User
	// List returns the cached records in insertion order.
	List() []domain.User
	// Remove deletes the record with the given id, reporting whether one
	// was present.
	Remove(id int64) bool
}
