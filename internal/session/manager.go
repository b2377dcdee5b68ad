package session

import (
	"context"
	"sync"

	"github.com/crmvibe/crmdash/internal/log"
)

// State is the session manager's lifecycle state.
type State int

const (
	// StateUninitialized means Start has not been called yet.
	StateUninitialized State = iota
	// StateLoading means the one-shot durable read is in progress.
	// Consumers must not commit to any redirect decision in this state.
	StateLoading
	// StateAuthenticated means a session is active.
	StateAuthenticated
	// StateAnonymous means no session is active.
	StateAnonymous
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Manager owns the in-memory session state and keeps the durable store in
// sync with it. It is an injected instance, never ambient global state.
//
// All session-mutating operations are serialized behind a single writer
// lock, so a logout racing a login cannot interleave their storage writes.
type Manager struct {
	mu      sync.RWMutex
	store   Store
	exch    Exchanger
	logger  *log.Logger
	state   State
	current Session
}

// NewManager creates a session manager over the given store.
// The exchanger performs the backend credential exchange during Login.
func NewManager(store Store, exch Exchanger, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Manager{
		store:  store,
		exch:   exch,
		logger: logger,
		state:  StateUninitialized,
	}
}

// Start performs the one-shot durable read and resolves the loading gate.
// It must complete before the first guard decision is made. Calling Start
// again after it has resolved is a no-op.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateUninitialized {
		return
	}
	m.state = StateLoading

	token, user, ok := m.store.Load()
	if !ok {
		m.state = StateAnonymous
		m.logger.Debug("no stored session, starting anonymous")
		return
	}

	m.current = Session{Token: token, User: user}
	m.state = StateAuthenticated
	m.logger.Debug("session restored", "email", user.Email)
}

// Login exchanges an external identity-provider credential for a backend
// session. On success the session is persisted and the manager becomes
// authenticated. On failure no transition occurs and the backend's error
// message is returned to the caller.
func (m *Manager) Login(ctx context.Context, externalToken string) (Session, error) {
	sess, err := m.exch.ExchangeGoogleToken(ctx, externalToken)
	if err != nil {
		return Session{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(sess.Token, sess.User); err != nil {
		return Session{}, err
	}

	m.current = sess
	m.state = StateAuthenticated
	m.logger.Info("logged in", "email", sess.User.Email)
	return sess, nil
}

// Logout discards the session unconditionally. No backend call is made;
// the credential is simply dropped.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.teardownLocked("logout")
}

// Teardown is the forced variant of Logout used when the backend rejects
// the stored credential.
func (m *Manager) Teardown() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.teardownLocked("credential rejected by backend")
}

func (m *Manager) teardownLocked(reason string) error {
	err := m.store.Clear()
	m.current = Session{}
	m.state = StateAnonymous
	m.logger.Debug("session discarded", "reason", reason)
	return err
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Current returns the active session, if any.
func (m *Manager) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != StateAuthenticated {
		return Session{}, false
	}
	return m.current, true
}

// Token returns the active bearer credential or the empty string. Used by
// the API client when attaching the authorization header.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != StateAuthenticated {
		return ""
	}
	return m.current.Token
}
