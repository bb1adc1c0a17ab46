// Package history keeps a bounded rolling conversation memory per session.
package history

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Turn is one (user, bot) exchange.
type Turn struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}

// Store holds the last N turns per session, oldest evicted first. Idle
// sessions expire via the cache TTL so the session table cannot grow without
// bound.
type Store struct {
	mu       sync.Mutex
	sessions *cache.Cache
	capacity int
}

func NewStore(capacity int, sessionTTL time.Duration) *Store {
	if capacity <= 0 {
		capacity = 10
	}
	if sessionTTL <= 0 {
		sessionTTL = 1 * time.Hour
	}
	return &Store{
		sessions: cache.New(sessionTTL, 10*time.Minute),
		capacity: capacity,
	}
}

// Add appends a turn to the session's history, evicting the oldest turn once
// the capacity is exceeded.
func (s *Store) Add(sessionID, userText, botText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var turns []Turn
	if raw, found := s.sessions.Get(sessionID); found {
		turns = raw.([]Turn)
	}
	turns = append(turns, Turn{User: userText, Bot: botText})
	if len(turns) > s.capacity {
		turns = turns[len(turns)-s.capacity:]
	}
	s.sessions.Set(sessionID, turns, cache.DefaultExpiration)
}

// Get returns the session's turns oldest first. Unknown sessions yield an
// empty slice, never an error.
func (s *Store) Get(sessionID string) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found := s.sessions.Get(sessionID)
	if !found {
		return []Turn{}
	}
	turns := raw.([]Turn)
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// Clear drops the session's history.
func (s *Store) Clear(sessionID string) {
	s.sessions.Delete(sessionID)
}
