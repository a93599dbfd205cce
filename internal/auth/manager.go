// ABOUTME: Authentication lifecycle manager for the TaskFlow client
// ABOUTME: Owns the unknown/authenticated/unauthenticated state machine

package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/taskflow/cli/internal/client"
	"github.com/taskflow/cli/internal/session"
)

// State is the observable authentication state.
type State int

const (
	// StateUnknown is the initial state before hydration completes.
	StateUnknown State = iota
	// StateAuthenticated means a user is loaded and the token is valid.
	StateAuthenticated
	// StateUnauthenticated means there is no usable session.
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Manager drives the session lifecycle: hydration on startup, login,
// signup with auto-login, and logout. It is the only writer of the
// current-user state; the pipeline's 401 handler is the only other
// component that touches the token, and only to clear it.
//
// Overlapping calls are not serialized. Two concurrent logins each run
// their own round-trips and the last one to settle wins the state.
type Manager struct {
	client  *client.Client
	session *session.Store

	mu      sync.Mutex
	state   State
	user    *client.User
	lastErr string
}

// NewManager creates a manager in StateUnknown.
func NewManager(c *client.Client, s *session.Store) *Manager {
	return &Manager{client: c, session: s, state: StateUnknown}
}

// State returns the current state and user. The user is non-nil only
// when the state is StateAuthenticated.
func (m *Manager) State() (State, *client.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.user
}

// LastError returns the most recent auth failure message, for display.
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Hydrate resolves the initial state. Without a stored token it settles
// on unauthenticated immediately, making no network call. With one, it
// fetches the current user. A confirmed rejection (401 or an
// application error) clears the token; a pure network failure leaves
// the token in place so a later retry can still succeed.
func (m *Manager) Hydrate(ctx context.Context) State {
	if _, ok := m.session.Token(); !ok {
		m.setUnauthenticated("")
		return StateUnauthenticated
	}

	user, err := m.client.CurrentUser(ctx)
	if err != nil {
		if !errors.Is(err, client.ErrNetwork) {
			m.session.ClearToken()
		}
		m.setUnauthenticated(err.Error())
		return StateUnauthenticated
	}

	m.setAuthenticated(user)
	return StateAuthenticated
}

// Login authenticates, stores the returned token, and hydrates the
// user. Failures are returned to the caller so forms can display them;
// the state is left unauthenticated.
func (m *Manager) Login(ctx context.Context, email, password string) (client.User, error) {
	token, err := m.client.Login(ctx, email, password)
	if err != nil {
		m.setUnauthenticated(err.Error())
		return client.User{}, err
	}

	if err := m.session.SetToken(token.AccessToken); err != nil {
		m.setUnauthenticated(err.Error())
		return client.User{}, err
	}

	user, err := m.client.CurrentUser(ctx)
	if err != nil {
		m.setUnauthenticated(err.Error())
		return client.User{}, err
	}

	m.setAuthenticated(user)
	return user, nil
}

// Signup registers a new account and immediately logs in with the same
// credentials. A signup failure surfaces without attempting the login.
func (m *Manager) Signup(ctx context.Context, email, password, fullName string) (client.User, error) {
	if _, err := m.client.Signup(ctx, email, password, fullName); err != nil {
		m.setUnauthenticated(err.Error())
		return client.User{}, err
	}
	return m.Login(ctx, email, password)
}

// Logout clears the token and resets state. Navigation is the caller's
// responsibility; this manager knows nothing about screens.
func (m *Manager) Logout() error {
	err := m.session.ClearToken()
	m.setUnauthenticated("")
	return err
}

func (m *Manager) setAuthenticated(user client.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateAuthenticated
	m.user = &user
	m.lastErr = ""
}

func (m *Manager) setUnauthenticated(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateUnauthenticated
	m.user = nil
	m.lastErr = msg
}
