package data

import (
	"errors"
	"sync"
	"time"

	"tvm-engine/internal/finance"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

// Session is a cash-flow series held between requests. The series itself
// does no locking, so every access goes through Do.
type Session struct {
	ID        string
	Name      string
	CreatedAt time.Time

	mu        sync.Mutex
	series    *finance.CashFlowSeries
	expiresAt time.Time
}

// Do runs fn with exclusive access to the session's series.
func (s *Session) Do(fn func(series *finance.CashFlowSeries) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.series)
}

// SessionStore keeps sessions in memory and drops them after a period
// without access.
type SessionStore struct {
	mu    sync.RWMutex
	store map[string]*Session
	ttl   time.Duration
	now   func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessionStore returns an empty store. When sweep > 0 a goroutine
// removes expired sessions at that interval until Close is called.
func NewSessionStore(ttl, sweep time.Duration) *SessionStore {
	c := &SessionStore{
		store: make(map[string]*Session),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	if sweep > 0 {
		go c.cleanup(sweep)
	}
	return c
}

// Create stores series under a new random id.
func (c *SessionStore) Create(name string, series *finance.CashFlowSeries) *Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	s := &Session{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		series:    series,
		expiresAt: now.Add(c.ttl),
	}
	c.store[s.ID] = s
	return s
}

// Get returns the session and extends its lifetime.
func (c *SessionStore) Get(id string) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.store[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := c.now()
	if now.After(s.expiresAt) {
		delete(c.store, id)
		return nil, ErrSessionNotFound
	}
	s.expiresAt = now.Add(c.ttl)
	return s, nil
}

// Delete removes a session.
func (c *SessionStore) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.store[id]; !ok {
		return ErrSessionNotFound
	}
	delete(c.store, id)
	return nil
}

func (c *SessionStore) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Close stops the sweeper.
func (c *SessionStore) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// sweep removes expired sessions and reports how many went.
func (c *SessionStore) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for id, s := range c.store {
		if now.After(s.expiresAt) {
			delete(c.store, id)
			n++
		}
	}
	return n
}

func (c *SessionStore) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stop:
			return
		}
	}
}
