package auth

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// refreshWindow is how long before expiry a cached token is considered stale.
const refreshWindow = 2 * time.Minute

type TokenManager struct {
	CachePath string
}

func (m *TokenManager) GetToken(key string) (StoredToken, bool, error) {
	cache, err := LoadTokenCache(m.CachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return StoredToken{}, false, nil
		}
		return StoredToken{}, false, err
	}
	token, ok := cache.Tokens[key]
	return token, ok, nil
}

func (m *TokenManager) SaveToken(key string, token StoredToken) error {
	cache, err := LoadTokenCache(m.CachePath)
	if err != nil {
		cache = &TokenCache{Tokens: map[string]StoredToken{}}
	}
	cache.Tokens[key] = token
	return SaveTokenCache(m.CachePath, cache)
}

func (m *TokenManager) DeleteToken(key string) error {
	cache, err := LoadTokenCache(m.CachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	delete(cache.Tokens, key)
	return SaveTokenCache(m.CachePath, cache)
}

func fresh(token StoredToken) bool {
	if token.AccessToken == "" {
		return false
	}
	return token.Expiry.IsZero() || time.Until(token.Expiry) > refreshWindow
}

// CachedTokenSource returns a token source that serves the cached token for
// key while it is fresh and otherwise fetches a new one from src, writing it
// back to the cache.
func (m *TokenManager) CachedTokenSource(key string, src oauth2.TokenSource) oauth2.TokenSource {
	return &cachedTokenSource{manager: m, key: key, src: src}
}

type cachedTokenSource struct {
	mu      sync.Mutex
	manager *TokenManager
	key     string
	src     oauth2.TokenSource
}

func (s *cachedTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok, err := s.manager.GetToken(s.key)
	if err == nil && ok && fresh(stored) {
		return stored.OAuth2(), nil
	}
	token, err := s.src.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain token: %w", err)
	}
	if err := s.manager.SaveToken(s.key, storedFromOAuth2(token)); err != nil {
		return nil, fmt.Errorf("failed to cache token: %w", err)
	}
	return token, nil
}

// Login fetches a fresh token for key from the configured client credentials
// and stores it, bypassing any cached value.
func (m *TokenManager) Login(ctx context.Context, key string, cfg OAuth2Config) (StoredToken, error) {
	token, err := ClientCredentialsLogin(ctx, cfg)
	if err != nil {
		return StoredToken{}, err
	}
	stored := storedFromOAuth2(token)
	if err := m.SaveToken(key, stored); err != nil {
		return stored, err
	}
	return stored, nil
}
