package storage

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
)

// Storage keys, prefixed with ems_ to avoid collisions with unrelated data
// sharing the same backend.
const (
	accessTokenKey  = "ems_access_token"
	refreshTokenKey = "ems_refresh_token"
	userKey         = "ems_user"
)

// TokenStore owns the persisted session credentials: access token, refresh
// token and the cached user profile. Every operation absorbs backend failures
// and returns a safe default instead of an error; a nil backend turns all
// operations into no-ops.
type TokenStore struct {
	mu      sync.Mutex
	backend Backend
	logger  *slog.Logger
}

// NewTokenStore creates a token store over the given backend. The backend may
// be nil when no persistence is available.
func NewTokenStore(backend Backend, logger *slog.Logger) *TokenStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenStore{
		backend: backend,
		logger:  logger,
	}
}

// GetAccessToken returns the stored access token, or "" when it is absent,
// unreadable or structurally invalid.
func (s *TokenStore) GetAccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getToken(accessTokenKey)
}

// SetAccessToken stores the access token. Structurally invalid tokens are
// rejected without writing.
func (s *TokenStore) SetAccessToken(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setToken(accessTokenKey, token)
}

// GetRefreshToken returns the stored refresh token, or "" when absent or
// invalid.
func (s *TokenStore) GetRefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getToken(refreshTokenKey)
}

// SetRefreshToken stores the refresh token, rejecting invalid shapes.
func (s *TokenStore) SetRefreshToken(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setToken(refreshTokenKey, token)
}

// SetTokens stores both tokens of a pair. Both are validated up front, and a
// failed refresh-token write restores the previous access token so the two
// slots never hold a mismatched pair.
func (s *TokenStore) SetTokens(accessToken, refreshToken string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !IsValidTokenShape(accessToken) || !IsValidTokenShape(refreshToken) {
		s.logger.Warn("rejecting token pair with invalid shape")
		return false
	}

	previousAccess := s.getToken(accessTokenKey)

	if !s.setToken(accessTokenKey, accessToken) {
		return false
	}

	if !s.setToken(refreshTokenKey, refreshToken) {
		// Roll the access slot back so the pair stays consistent
		if previousAccess != "" {
			s.setToken(accessTokenKey, previousAccess)
		} else {
			s.remove(accessTokenKey)
		}
		return false
	}

	return true
}

// ClearTokens removes both token slots; success iff both removals succeed.
func (s *TokenStore) ClearTokens() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearTokens()
}

// HasValidAccessToken reports whether a structurally valid access token is
// stored.
func (s *TokenStore) HasValidAccessToken() bool {
	return s.GetAccessToken() != ""
}

// GetUser deserializes the cached user profile into out and reports whether a
// profile was present. A corrupt entry is deleted and treated as absent.
func (s *TokenStore) GetUser(out any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := s.get(userKey)
	if raw == "" {
		return false
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("removing corrupt cached user profile", "error", err)
		s.remove(userKey)
		return false
	}
	return true
}

// SetUser caches the user profile; a nil user removes the entry.
func (s *TokenStore) SetUser(user any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user == nil {
		return s.remove(userKey)
	}

	data, err := json.Marshal(user)
	if err != nil {
		s.logger.Warn("failed to encode user profile", "error", err)
		return false
	}
	return s.set(userKey, string(data))
}

// ClearAll removes tokens and the cached user; success iff every removal
// succeeds.
func (s *TokenStore) ClearAll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokensCleared := s.clearTokens()
	userCleared := s.remove(userKey)
	return tokensCleared && userCleared
}

// IsValidTokenShape reports whether the token splits into exactly three
// non-empty dot-separated segments. This is a structural check only; no
// signature verification happens client-side.
func IsValidTokenShape(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
	}
	return true
}

func (s *TokenStore) getToken(key string) string {
	token := s.get(key)
	if !IsValidTokenShape(token) {
		return ""
	}
	return token
}

func (s *TokenStore) setToken(key, token string) bool {
	if !IsValidTokenShape(token) {
		s.logger.Warn("rejecting token with invalid shape", "slot", key)
		return false
	}
	return s.set(key, token)
}

func (s *TokenStore) clearTokens() bool {
	accessCleared := s.remove(accessTokenKey)
	refreshCleared := s.remove(refreshTokenKey)
	return accessCleared && refreshCleared
}

func (s *TokenStore) get(key string) string {
	if s.backend == nil {
		return ""
	}

	value, err := s.backend.Get(key)
	if err != nil {
		if err != ErrKeyNotFound {
			s.logger.Warn("storage read failed", "key", key, "error", err)
		}
		return ""
	}
	return value
}

func (s *TokenStore) set(key, value string) bool {
	if s.backend == nil {
		return false
	}

	if err := s.backend.Set(key, value); err != nil {
		s.logger.Warn("storage write failed", "key", key, "error", err)
		return false
	}
	return true
}

func (s *TokenStore) remove(key string) bool {
	if s.backend == nil {
		return false
	}

	if err := s.backend.Remove(key); err != nil {
		s.logger.Warn("storage remove failed", "key", key, "error", err)
		return false
	}
	return true
}
