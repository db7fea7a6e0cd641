// Package session owns the in-memory authentication state and keeps it in
// lockstep with the persisted token store.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ross2p/ems-app/internal/dto"
	"github.com/ross2p/ems-app/internal/models"
	"github.com/ross2p/ems-app/internal/services"
	"github.com/ross2p/ems-app/internal/storage"
)

// State is the session lifecycle state.
type State string

const (
	StateInitializing  State = "initializing"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// Reader is the narrow read-only view handed to consumers that only need to
// observe session state.
type Reader interface {
	CurrentUser() *models.User
	IsAuthenticated() bool
	IsLoading() bool
	Err() error
}

// Manager coordinates the authentication session: it bootstraps from the
// token store on startup, runs login/register/logout through the auth
// service, and is the only writer of session-related storage slots outside
// the client pipeline's refresh path. Safe for concurrent use.
type Manager struct {
	mu     sync.RWMutex
	tokens *storage.TokenStore
	auth   services.AuthServiceInterface
	logger *slog.Logger

	state State
	user  *models.User
	err   error
}

var _ Reader = (*Manager)(nil)

// NewManager creates a session manager in the Initializing state. Call
// Initialize to resolve it.
func NewManager(tokens *storage.TokenStore, auth services.AuthServiceInterface, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		tokens: tokens,
		auth:   auth,
		logger: logger,
		state:  StateInitializing,
	}
}

// Initialize resolves the session from persisted credentials. With no valid
// access token it resolves to Anonymous without any network call; with a
// token and a cached profile it resolves to Authenticated immediately; with a
// token but no cached profile it fetches the profile, clearing all session
// data when the fetch fails.
func (m *Manager) Initialize(ctx context.Context) {
	if !m.tokens.HasValidAccessToken() {
		m.becomeAnonymous(false)
		return
	}

	var cached models.User
	if m.tokens.GetUser(&cached) {
		m.becomeAuthenticated(&cached, false)
		return
	}

	user, err := m.auth.GetCurrentUser(ctx)
	if err != nil {
		m.logger.Warn("failed to fetch user during session bootstrap", "error", err)
		m.becomeAnonymous(true)
		return
	}

	m.becomeAuthenticated(user, true)
}

// Login authenticates with the given credentials. On success the returned
// token pair and profile are persisted and the session becomes Authenticated;
// on failure the error is surfaced and the state is unchanged.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := m.auth.Login(ctx, dto.LoginRequest{Email: email, Password: password})
	if err != nil {
		m.setErr(err)
		return nil, err
	}
	return m.completeAuth(resp)
}

// Register creates a new account and signs it in.
func (m *Manager) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	resp, err := m.auth.Register(ctx, req)
	if err != nil {
		m.setErr(err)
		return nil, err
	}
	return m.completeAuth(resp)
}

// Logout notifies the server best-effort and unconditionally clears the
// local session.
func (m *Manager) Logout(ctx context.Context) {
	// Logout server call never fails the local teardown
	if err := m.auth.Logout(ctx); err != nil {
		m.logger.Warn("server logout failed", "error", err)
	}
	m.becomeAnonymous(true)
}

// SetTokens persists a token pair without changing the user, for flows that
// obtain tokens out of band.
func (m *Manager) SetTokens(accessToken, refreshToken string) bool {
	if !m.tokens.SetTokens(accessToken, refreshToken) {
		m.setErr(errors.New("failed to save authentication credentials"))
		return false
	}
	return true
}

// CurrentUser returns the authenticated user, or nil.
func (m *Manager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// IsAuthenticated reports whether a user is signed in. Derived: true iff the
// current profile is non-nil.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// IsLoading reports whether the session is still resolving.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateInitializing
}

// CurrentState returns the session lifecycle state.
func (m *Manager) CurrentState() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Err returns the last surfaced error, or nil.
func (m *Manager) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

// ClearError discards the last surfaced error.
func (m *Manager) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = nil
}

func (m *Manager) completeAuth(resp *dto.AuthResponse) (*models.User, error) {
	if resp.User == nil {
		err := fmt.Errorf("no user in auth response")
		m.setErr(err)
		return nil, err
	}

	if !m.tokens.SetTokens(resp.AccessToken, resp.RefreshToken) {
		m.logger.Warn("failed to persist tokens to storage")
	}

	m.becomeAuthenticated(resp.User, true)
	return resp.User, nil
}

// becomeAuthenticated enters the Authenticated state; persist controls
// whether the profile is (re)written to storage.
func (m *Manager) becomeAuthenticated(user *models.User, persist bool) {
	if persist {
		if !m.tokens.SetUser(user) {
			m.logger.Warn("failed to persist user to storage")
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateAuthenticated
	m.user = user
	m.err = nil
}

// becomeAnonymous enters the Anonymous state; clear controls whether stored
// session data is wiped.
func (m *Manager) becomeAnonymous(clear bool) {
	if clear {
		m.tokens.ClearAll()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateAnonymous
	m.user = nil
	m.err = nil
}

func (m *Manager) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
