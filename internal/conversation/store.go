package conversation

import (
	"context"
	"errors"
	"sync"
)

// ErrSessionNotFound indicates the requested session has no stored state.
var ErrSessionNotFound = errors.New("conversation: session not found")

// Store defines the interface for session state persistence.
type Store interface {
	Get(ctx context.Context, sessionID string) (*State, error)
	Put(ctx context.Context, state *State) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore keeps session state in a process-local map. State is lost on
// restart; the Redis store is the durable alternative.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*State),
	}
}

// Get returns a copy of the stored state so callers cannot mutate the map
// contents through aliases.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return state.Clone(), nil
}

// Put stores a copy of the state keyed by its session id.
func (s *MemoryStore) Put(ctx context.Context, state *State) error {
	if state == nil || state.SessionID == "" {
		return errors.New("conversation: state with session id is required")
	}

	s.mu.Lock()
	s.sessions[state.SessionID] = state.Clone()
	s.mu.Unlock()
	return nil
}

// Delete removes a session. Deleting an unknown session is not an error.
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}
