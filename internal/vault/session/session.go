// Package session holds the in-memory sign-in state of the vault and the
// idle watchdog that forces a sign-out after inactivity.
package session

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/passvault/internal/secret"
)

// Session is the in-memory record of sign-in status. When signed out, both
// secret buffers are empty. When signed in, KeySalt equals the persisted
// master-credential salt at the moment of sign-in, and MasterPassword holds
// the verified master password for on-demand key derivation.
type Session struct {
	SignedIn       bool
	MasterPassword *secret.Buffer
	KeySalt        *secret.Buffer
	LastActivity   time.Time
}

// SignedOut returns the default signed-out state.
func SignedOut() *Session {
	return &Session{
		MasterPassword: secret.New(nil),
		KeySalt:        secret.New(nil),
	}
}

// ResetActivity records a user gesture at time now.
func (s *Session) ResetActivity(now time.Time) {
	s.LastActivity = now
}

// IsExpired reports whether more than threshold has elapsed since the last
// activity. Strictly "more than": at exactly threshold the session is still
// live.
func (s *Session) IsExpired(now time.Time, threshold time.Duration) bool {
	return now.Sub(s.LastActivity) > threshold
}

// Wipe destroys the retained secret material.
func (s *Session) Wipe() {
	if s == nil {
		return
	}
	s.MasterPassword.Wipe()
	s.KeySalt.Wipe()
}

// Manager owns the single mutable session of the process. Writes go through
// the UI goroutine; the mutex exists so the watchdog can observe and expire
// the session from its own goroutine without racing.
type Manager struct {
	mu            sync.Mutex
	current       *Session
	idleThreshold time.Duration
	now           func() time.Time
}

// NewManager returns a manager starting in the signed-out state.
func NewManager(idleThreshold time.Duration) *Manager {
	return &Manager{
		current:       SignedOut(),
		idleThreshold: idleThreshold,
		now:           time.Now,
	}
}

// Current returns the live session. Callers must not mutate it directly;
// use Replace, SignOut and Touch.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Replace installs a new session (typically the result of a login) and
// wipes the secrets of the previous one.
func (m *Manager) Replace(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old := m.current
	m.current = s
	if old != s {
		old.Wipe()
	}
}

// SignOut transitions to the signed-out state. Idempotent: calling it on an
// already signed-out manager is a no-op. Reports whether a transition
// actually happened.
func (m *Manager) SignOut() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.current.SignedIn {
		return false
	}
	old := m.current
	m.current = SignedOut()
	old.Wipe()
	return true
}

// Touch records user activity on the live session.
func (m *Manager) Touch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current.ResetActivity(m.now())
}

// ExpireIfIdle signs out when the session is signed in and idle past the
// threshold. Reports whether a sign-out happened; re-checking an already
// signed-out session does nothing.
func (m *Manager) ExpireIfIdle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.current.SignedIn || !m.current.IsExpired(m.now(), m.idleThreshold) {
		return false
	}
	old := m.current
	m.current = SignedOut()
	old.Wipe()
	return true
}
