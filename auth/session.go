package auth

import (
	"sync"
	"time"
)

// State is a step of the session lifecycle.
type State int

const (
	NoToken State = iota
	Exchanging
	Authenticated
	Expired
)

func (s State) String() string {
	return [...]string{"no token", "exchanging", "authenticated", "expired"}[s]
}

// Session tracks one adapter's token and the identity it resolved.
// Expiry is evaluated lazily against the wall clock; there is no timer.
type Session struct {
	mu       sync.Mutex
	exchange bool
	token    string
	expiry   time.Time
	userID   int
	username string

	// Now is the clock, replaceable in tests.
	Now func() time.Time
}

func (s *Session) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// State reports the current lifecycle step.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() State {
	switch {
	case s.exchange:
		return Exchanging
	case s.token == "":
		return NoToken
	case !s.expiry.IsZero() && !s.now().Before(s.expiry):
		return Expired
	default:
		return Authenticated
	}
}

// Begin marks a handshake in progress.
func (s *Session) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchange = true
}

// Authenticate stores a token. A zero expiry never expires.
func (s *Session) Authenticate(token string, expiry time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchange = false
	s.token = token
	s.expiry = expiry
}

// AuthenticateFor stores a token valid for ttl from now and returns its expiry.
// A non-positive ttl never expires.
func (s *Session) AuthenticateFor(token string, ttl time.Duration) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchange = false
	s.token = token
	s.expiry = time.Time{}
	if ttl > 0 {
		s.expiry = s.now().Add(ttl)
	}
	return s.expiry
}

// Identify records the account the token belongs to.
func (s *Session) Identify(userID int, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.username = username
}

// Expire marks the token as expired now, e.g. after the provider revoked it.
func (s *Session) Expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" {
		s.expiry = s.now()
	}
}

// Reset forgets the token and identity.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchange = false
	s.token = ""
	s.expiry = time.Time{}
	s.userID = 0
	s.username = ""
}

// Token returns the bearer token when authenticated.
func (s *Session) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.state() == Authenticated
}

// Expiry returns the token expiry.
func (s *Session) Expiry() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiry
}

// User returns the resolved identity; username is empty until Identify.
func (s *Session) User() (id int, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID, s.username
}
