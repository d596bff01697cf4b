// Package memory provides the in-process fallback user store consulted while
// Postgres is unreachable. Contents are volatile: they live for the lifetime
// of the process and are never reconciled back into the durable store.
package memory

import (
	"math/rand"
	"sync"
	"time"

	"github.com/mka-platform/lms-api/internal/core/domain"
)

// idRange is the span fallback ids are drawn from. The draw is random rather
// than sequential so ids minted during an outage are unlikely to collide
// with rows already in Postgres; collisions against the durable store are
// not checked, only re-draws within this cache.
const idRange = 1 << 31

// FallbackStore is a mutex-guarded ordered list of user records. It is
// constructed once per process and injected wherever a fallback path exists.
type FallbackStore struct {
	mu    sync.Mutex
	users []domain.User
}

// NewFallbackStore returns a store seeded with the bootstrap administrator
// account, so the admin UI stays reachable even when the very first request
// arrives during an outage.
func NewFallbackStore() *FallbackStore {
	return &FallbackStore{
		users: []domain.User{
			{
				ID:        1,
				Email:     "khalil@gmail.com",
				Role:      domain.RoleAdmin,
				Name:      "khalil",
				Skills:    []string{},
				CreatedAt: time.Now().UTC(),
				UpdatedAt: time.Now().UTC(),
			},
		},
	}
}

// Create assigns a random id unique within the cache and appends the record.
func (s *FallbackStore) Create(user domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.nextID()
	if user.Skills == nil {
		user.Skills = []string{}
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	s.users = append(s.users, user)
	return user
}

// List returns a copy of the cached records in insertion order.
func (s *FallbackStore) List() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

// Remove splices out the record with the given id, reporting whether one
// was found.
func (s *FallbackStore) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return true
		}
	}
	return false
}

// Len reports the number of cached records.
func (s *FallbackStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// nextID draws random ids until one not already present in the cache comes
// up. Callers must hold the mutex.
func (s *FallbackStore) nextID() int64 {
	for {
		id := rand.Int63n(idRange-2) + 2 // skip the seeded admin's id
		taken := false
		for _, u := range s.users {
			if u.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}
