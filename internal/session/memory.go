package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory; they vanish on restart.
// Expired entries are dropped on load and swept at most once per TTL on save.
type MemoryStore struct {
	mu        sync.RWMutex
	ttl       time.Duration
	now       func() time.Time
	entries   map[string]memoryEntry
	nextSweep time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) expired(entry memoryEntry, now time.Time) bool {
	return s.ttl > 0 && !now.Before(entry.expiresAt)
}

func (s *MemoryStore) Load(_ context.Context, id string) (State, error) {
	if err := ValidateID(id); err != nil {
		return State{}, err
	}

	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return State{}, nil
	}

	now := s.now()
	if !s.expired(entry, now) {
		return entry.state, nil
	}

	// A Save may have replaced the entry since the read lock was released.
	s.mu.Lock()
	if current, ok := s.entries[id]; ok && s.expired(current, now) {
		delete(s.entries, id)
	}
	s.mu.Unlock()
	return State{}, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, state State) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memoryEntry{state: state, expiresAt: now.Add(s.ttl)}
	s.sweepLocked(now)
	return nil
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	if s.ttl <= 0 || now.Before(s.nextSweep) {
		return
	}
	for id, entry := range s.entries {
		if s.expired(entry, now) {
			delete(s.entries, id)
		}
	}
	s.nextSweep = now.Add(s.ttl)
}

func (s *MemoryStore) Health(context.Context) error {
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
