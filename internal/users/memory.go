package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrymomot/fanburst"
)

// MemoryStore keeps users in process memory. Data is lost on restart.
type MemoryStore struct {
	users map[string]*User
	now   func() time.Time
	mu    sync.Mutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*User),
		now:   time.Now,
	}
}

// FindOrCreate implements Store.
func (s *MemoryStore) FindOrCreate(_ context.Context, p *fanburst.Profile) (*User, error) {
	if err := validateProfile(p); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := identityKey(p.Provider, p.ID)
	now := s.now().UTC()
	u, ok := s.users[key]
	if !ok {
		u = newUser(p, now)
		s.users[key] = u
	} else {
		u.refresh(p, now)
	}

	cp := *u
	return &cp, nil
}

// Len returns the number of stored users.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}
