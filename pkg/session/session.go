// Package session keeps the live simulation sessions of the HTTP server.
//
// Each session owns one [sim.Player], so a client can start, pause and scrub
// a run that keeps advancing on the server between requests. Sessions live
// in memory only; idle sessions are dropped by [Store.Cleanup].
//
// # Usage
//
//	store := session.NewStore(session.DefaultTTL, logger)
//	sess := store.Create(sim.WithLogger(logger))
//	sess.Player.Toggle()
//
//	sess, err = store.Get(id) // refreshes the idle timer
//	store.Delete(id)          // stops the player
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/reactorsim/pkg/errors"
	"github.com/matzehuels/reactorsim/pkg/sim"
)

// Default durations.
const (
	// DefaultTTL is how long a session may sit idle before Cleanup drops it.
	DefaultTTL = 30 * time.Minute

	// DefaultCleanupInterval is how often the server sweeps idle sessions.
	DefaultCleanupInterval = time.Minute
)

// Session is a simulation run addressed by ID.
type Session struct {
	ID        string
	Player    *sim.Player
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// LastSeen returns when the session was last created or fetched.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// IsExpired returns true if the session has been idle longer than ttl.
// A non-positive ttl never expires.
func (s *Session) IsExpired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(s.LastSeen()) > ttl
}

// Store is an in-memory session registry. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	logger   *log.Logger
	now      func() time.Time
}

// NewStore creates an empty store. Sessions idle longer than ttl are removed
// by Cleanup.
func NewStore(ttl time.Duration, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// GenerateID creates a random session ID.
func GenerateID() string {
	return uuid.NewString()
}

// Create starts a new session with a player built from opts.
func (s *Store) Create(opts ...sim.Option) *Session {
	now := s.now()
	sess := &Session{
		ID:        GenerateID(),
		CreatedAt: now,
		lastSeen:  now,
	}
	sess.Player = sim.NewPlayer(opts...)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Debug("session created", "id", sess.ID)
	return sess
}

// Get returns the session with the given ID and refreshes its idle timer.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	sess.touch(s.now())
	return sess, nil
}

// Delete stops and removes a session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	sess.Player.Close()
	s.logger.Debug("session deleted", "id", id)
	return nil
}

// IDs returns the IDs of all live sessions, sorted.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Cleanup stops and removes idle sessions and returns how many were removed.
func (s *Store) Cleanup() int {
	now := s.now()
	var expired []*Session

	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.IsExpired(now, s.ttl) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Player.Close()
	}
	if len(expired) > 0 {
		s.logger.Info("dropped idle sessions", "count", len(expired))
	}
	return len(expired)
}

// Close stops every session.
func (s *Store) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Player.Close()
	}
}
