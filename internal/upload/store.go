package upload

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// session holds the buffered chunks of one in-progress upload. The slot
// count is fixed when the session is created; an empty string marks a slot
// that has not been received yet.
type session struct {
	chunks    []string
	lastTouch time.Time
}

func (s *session) complete() bool {
	for _, c := range s.chunks {
		if c == "" {
			return false
		}
	}
	return true
}

// Store buffers chunked audio uploads in memory, keyed by a client-supplied
// session id. All session mutation goes through the store; callers never hold
// a session across calls.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// Ensure creates the session for id if it does not exist, with totalChunks
// empty slots. An existing session is reused as-is; its slot count does not
// change even if totalChunks differs.
func (s *Store) Ensure(id string, totalChunks int) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: missing session id", ErrInvalidRequest)
	}
	if totalChunks <= 0 {
		return fmt.Errorf("%w: totalChunks must be positive, got %d", ErrInvalidRequest, totalChunks)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked(id, totalChunks)
	return nil
}

func (s *Store) ensureLocked(id string, totalChunks int) *session {
	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{
			chunks:    make([]string, totalChunks),
			lastTouch: s.now(),
		}
		s.sessions[id] = sess
	}
	return sess
}

// Ingest validates and stores one chunk, creating the session on first
// contact. Re-sending an index overwrites the previous content, so client
// retries are idempotent. It reports whether every slot is now filled.
// On a validation error no session is created or mutated.
func (s *Store) Ingest(id string, chunkIndex, totalChunks int, chunk string) (complete bool, err error) {
	if strings.TrimSpace(id) == "" {
		return false, fmt.Errorf("%w: missing session id", ErrInvalidRequest)
	}
	if totalChunks <= 0 {
		return false, fmt.Errorf("%w: totalChunks must be positive, got %d", ErrInvalidRequest, totalChunks)
	}
	if chunkIndex < 0 || chunkIndex >= totalChunks {
		return false, fmt.Errorf("%w: chunkIndex %d out of range [0,%d)", ErrInvalidRequest, chunkIndex, totalChunks)
	}
	if chunk == "" {
		return false, fmt.Errorf("%w: empty chunk payload", ErrInvalidRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions[id]
	if sess != nil && chunkIndex >= len(sess.chunks) {
		// The slot count was fixed by an earlier request with a smaller
		// totalChunks; writing past it would corrupt the session.
		return false, fmt.Errorf("%w: chunkIndex %d out of range for session with %d chunks", ErrInvalidRequest, chunkIndex, len(sess.chunks))
	}
	if sess == nil {
		sess = s.ensureLocked(id, totalChunks)
	}

	sess.chunks[chunkIndex] = chunk
	sess.lastTouch = s.now()
	return sess.complete(), nil
}

// Payload returns the session's chunks concatenated in index order, skipping
// unfilled slots. The second return reports whether the session exists.
func (s *Store) Payload(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return "", false
	}
	return strings.Join(sess.chunks, ""), true
}

// Complete reports whether every slot of the session is filled.
func (s *Store) Complete(id string) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false, false
	}
	return sess.complete(), true
}

// Touch refreshes the session's idle timestamp.
func (s *Store) Touch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.lastTouch = s.now()
	}
}

// Delete removes the session. Deleting an absent session is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// SweepExpired removes every session idle for longer than ttl and returns
// the number removed.
func (s *Store) SweepExpired(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastTouch) > ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
