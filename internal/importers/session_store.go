package importers

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("import session not found")

// Session is one interactive import. Its Workflow is only reachable through
// Do, which holds the session lock.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	workflow  *Workflow
	updatedAt time.Time
	clock     func() time.Time
}

// Do runs fn with exclusive access to the session workflow.
func (s *Session) Do(fn func(w *Workflow) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = s.clock()
	return fn(s.workflow)
}

// idleSince reports when the session was last used. It does not wait: a
// session held by Do reports false.
func (s *Session) idleSince() (time.Time, bool) {
	if !s.mu.TryLock() {
		return time.Time{}, false
	}
	defer s.mu.Unlock()
	return s.updatedAt, true
}

// SessionStore keeps in-flight import sessions in memory.
type SessionStore struct {
	mu             sync.RWMutex
	sessions       map[string]*Session
	largeThreshold int
	now            func() time.Time
}

func NewSessionStore(largeThreshold int) *SessionStore {
	return &SessionStore{
		sessions:       make(map[string]*Session),
		largeThreshold: largeThreshold,
		now:            time.Now,
	}
}

// Create starts a session in the upload stage.
func (s *SessionStore) Create() *Session {
	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		workflow:  NewWorkflow(s.largeThreshold),
		updatedAt: now,
		clock:     s.now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete discards a session. It reports whether the session existed.
func (s *SessionStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Sweep discards sessions idle for longer than maxIdle and returns how many
// were removed. Sessions in use are skipped until a later sweep.
func (s *SessionStore) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		last, ok := sess.idleSince()
		if ok && last.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
