package session

import (
	"sync"
	"time"

	"shopbot/internal/domain"
)

// Store holds every user's session for the lifetime of the process. There is
// no eviction: a long-running process accumulates sessions, which is an
// accepted cost at this deployment's user counts.
//
// Webhook handlers and HTTP handlers run on separate goroutines, so unlike
// the cooperative single-threaded model this was ported from, the map needs a
// lock. All accessors return copies; callers never hold references into the
// map.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*domain.Session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*domain.Session),
		now:      time.Now,
	}
}

// GetOrCreate returns the user's session, creating an empty one on first
// contact.
func (s *Store) GetOrCreate(userID int64, displayName string) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = &domain.Session{
			UserID:      userID,
			DisplayName: displayName,
			CreatedAt:   s.now(),
		}
		s.sessions[userID] = sess
	}
	return snapshot(sess)
}

func (s *Store) Get(userID int64) (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return domain.Session{}, false
	}
	return snapshot(sess), true
}

// SetContactProfile saves checkout contact data, creating the session if the
// user only ever talked to the HTTP surface.
func (s *Store) SetContactProfile(userID int64, profile domain.ContactProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.ensure(userID)
	p := profile
	sess.Contact = &p
}

func (s *Store) SetCart(userID int64, cart []domain.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.ensure(userID)
	sess.Cart = append([]domain.CartLine(nil), cart...)
}

// ClearCart empties the cart. Idempotent: clearing an empty or absent cart is
// a no-op.
func (s *Store) ClearCart(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[userID]; ok {
		sess.Cart = nil
	}
}

// Len reports the number of live sessions, for observability.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) ensure(userID int64) *domain.Session {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &domain.Session{
			UserID:    userID,
			CreatedAt: s.now(),
		}
		s.sessions[userID] = sess
	}
	return sess
}

func snapshot(sess *domain.Session) domain.Session {
	out := *sess
	out.Cart = append([]domain.CartLine(nil), sess.Cart...)
	if sess.Contact != nil {
		c := *sess.Contact
		out.Contact = &c
	}
	return out
}
