package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rg-thatha/storefront/internal/domain"
)

// DefaultTTL bounds how long an idle session keeps its in-memory state.
const DefaultTTL = 12 * time.Hour

// ErrNotFound indicates the session id has no live state.
var ErrNotFound = errors.New("session: not found")

// State is the per-session interactive storefront state. It is owned
// exclusively by one browsing session and discarded when the session
// expires; nothing here is persisted.
type State struct {
	Cart    *domain.CartState
	Images  map[int]*domain.ImageStatus
	Gallery *domain.Gallery
}

func newState() *State {
	return &State{
		Cart:   domain.NewCartState(),
		Images: map[int]*domain.ImageStatus{},
	}
}

// ImageStatus returns the load-status record for a product, lazily creating
// it on first access.
func (s *State) ImageStatus(id int) *domain.ImageStatus {
	if s.Images == nil {
		s.Images = map[int]*domain.ImageStatus{}
	}
	st, ok := s.Images[id]
	if !ok {
		st = &domain.ImageStatus{Single: domain.LoadUnknown, Slot: domain.LoadUnknown}
		s.Images[id] = st
	}
	return st
}

type entry struct {
	mu      sync.Mutex
	state   *State
	expires time.Time
}

// Store keeps per-session state in memory. Each session's updates are
// serialised by a per-session mutex, matching the single-threaded event
// ordering of the interactive UI.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	clock    func() time.Time
	newID    func() string
}

// StoreOption customises Store construction.
type StoreOption func(*Store)

// WithTTL overrides the idle-session retention window.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock injects a clock, primarily for tests.
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewStore constructs an empty in-memory session store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		sessions: make(map[string]*entry),
		ttl:      DefaultTTL,
		clock:    time.Now,
		newID:    func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure returns a live session id: the provided one when it is still valid,
// otherwise a freshly created session. The second return reports whether a
// new session was created.
func (s *Store) Ensure(id string) (string, bool) {
	now := s.clock().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)

	id = strings.TrimSpace(id)
	if id != "" {
		if e, ok := s.sessions[id]; ok {
			e.expires = now.Add(s.ttl)
			return id, false
		}
	}

	id = s.newID()
	s.sessions[id] = &entry{
		state:   newState(),
		expires: now.Add(s.ttl),
	}
	return id, true
}

// Update runs fn against the session state under the per-session lock.
func (s *Store) Update(id string, fn func(*State) error) error {
	now := s.clock().UTC()

	s.mu.Lock()
	e, ok := s.sessions[id]
	if ok && !now.Before(e.expires) {
		delete(s.sessions, id)
		ok = false
	}
	if ok {
		e.expires = now.Add(s.ttl)
	}
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.state)
}

// View is Update under a read-only intent; the per-session lock still
// serialises it against writers.
func (s *Store) View(id string, fn func(*State) error) error {
	return s.Update(id, fn)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// pruneLocked drops expired sessions. Called with s.mu held; pruning happens
// on access rather than in a background janitor.
func (s *Store) pruneLocked(now time.Time) {
	for id, e := range s.sessions {
		if !now.Before(e.expires) {
			delete(s.sessions, id)
		}
	}
}
