package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tokens.json")
	expiry := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	cache := &TokenCache{Tokens: map[string]StoredToken{
		"prod": {AccessToken: "abc", TokenType: "Bearer", Expiry: expiry},
	}}

	require.NoError(t, SaveTokenCache(path, cache))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadTokenCache(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", loaded.Tokens["prod"].AccessToken)
	assert.True(t, expiry.Equal(loaded.Tokens["prod"].Expiry))
}

func TestLoadTokenCacheInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadTokenCache(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse token cache")
}

func TestLoadTokenCacheNilMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	cache, err := LoadTokenCache(path)
	require.NoError(t, err)
	assert.NotNil(t, cache.Tokens)
}

func TestSaveTokenCacheNil(t *testing.T) {
	err := SaveTokenCache(filepath.Join(t.TempDir(), "tokens.json"), nil)
	require.Error(t, err)
}
