// apps/go-solver/internal/store/memory.go
//
// In-memory implementation of the Store interface for solver sessions.
// This is a lightweight persistence layer for ephemeral HTTP sessions,
// primarily in development/testing, or when durability is not required.
//
// Characteristics:
//   - Stores *Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - ErrNotFound is returned for missing session IDs on Get() and Delete().

package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// ErrNotFound is returned when a session ID has no stored session.
var ErrNotFound = errors.New("session not found")

// Session is one in-flight solver conversation over HTTP.
type Session struct {
	ID        string
	Solver    *solver.Solver
	CreatedAt time.Time
}

// NewSession wraps a solver with a fresh random ID.
func NewSession(s *solver.Solver) *Session {
	return &Session{
		ID:        newID(),
		Solver:    s,
		CreatedAt: time.Now().UTC(),
	}
}

// Store defines the persistence interface for solver sessions.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID.
	// Returns ErrNotFound if the session is not stored.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session by ID.
	// Returns ErrNotFound if the session is not stored.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions map
	sessions map[string]*Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

// Delete removes the session from the map.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

// newID returns 16 random bytes hex-encoded. crypto/rand failing means the
// process environment is broken beyond recovery.
func newID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
