package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/samvad-hq/mock-interview-client/internal/domain"
)

type memoryEntry struct {
	session domain.Session
	expiry  time.Time
}

// memoryStore keeps sessions for the lifetime of the process.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

func newMemoryStore(opts Options) *memoryStore {
	return &memoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     opts.SessionTTL,
	}
}

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) PutSession(s domain.Session) error {
	m.mu.Lock()
	m.entries[s.ID] = memoryEntry{session: s, expiry: time.Now().Add(m.ttl)}
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Session(id string) (domain.Session, error) {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok || !e.expiry.After(time.Now()) {
		return domain.Session{}, ErrNotFound
	}
	return e.session, nil
}

func (m *memoryStore) Sessions() ([]domain.Session, error) {
	now := time.Now()
	m.mu.RLock()
	out := make([]domain.Session, 0, len(m.entries))
	for _, e := range m.entries {
		if e.expiry.After(now) {
			out = append(out, e.session)
		}
	}
	m.mu.RUnlock()
	sortSessions(out)
	return out, nil
}

func (m *memoryStore) DeleteSession(id string) error {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}

// sortSessions orders sessions most recently updated first.
func sortSessions(sessions []domain.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
}
