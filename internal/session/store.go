package session

import "sync"

// Store maps a user id to that user's in-progress session. Implementations
// are process-local; nothing survives a restart.
type Store interface {
	Put(userID int64, s *Session)
	Get(userID int64) (*Session, bool)
	Delete(userID int64)
}

// MemoryStore keeps sessions in a map. Different users never contend on
// the same key; same-key races resolve last-write-wins.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]*Session)}
}

func (m *MemoryStore) Put(userID int64, s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = s
}

func (m *MemoryStore) Get(userID int64) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	return s, ok
}

func (m *MemoryStore) Delete(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
