// Package session holds the authenticated flag of one form instance and
// derives which view is rendered from it.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type View int

const (
	ViewEntryForm View = iota
	ViewDashboard
)

func (v View) String() string {
	if v == ViewDashboard {
		return "dashboard"
	}
	return "entry_form"
}

// Dashboard copy.
const (
	DashboardTitle   = "Welcome to the Dashboard"
	DashboardMessage = "Authentication successful!"
)

type Session struct {
	mu            sync.RWMutex
	authenticated bool
	username      string
	token         string
	expiresAt     time.Time

	now func() time.Time
}

func New() *Session {
	return &Session{now: time.Now}
}

// Authenticate flips the session to authenticated. If token is a JWT with an
// exp claim the session ends at that instant. The signature is not checked
// here; the backend that issued the token already did.
func (s *Session) Authenticate(username, token string) {
	exp := expiryOf(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.authenticated = true
	s.username = username
	s.token = token
	s.expiresAt = exp
}

func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authenticated = false
	s.username = ""
	s.token = ""
	s.expiresAt = time.Time{}
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeLocked()
}

func (s *Session) View() View {
	if s.Authenticated() {
		return ViewDashboard
	}
	return ViewEntryForm
}

// Username is empty unless the session is authenticated.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.activeLocked() {
		return ""
	}
	return s.username
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.activeLocked() {
		return ""
	}
	return s.token
}

// ExpiresAt is zero when the session never expires.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

func (s *Session) activeLocked() bool {
	if !s.authenticated {
		return false
	}
	return s.expiresAt.IsZero() || s.now().Before(s.expiresAt)
}

func expiryOf(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
