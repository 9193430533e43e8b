package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigPath(t *testing.T) {
	t.Run("uses PINOTCTL_CONFIG env var when set", func(t *testing.T) {
		t.Setenv("PINOTCTL_CONFIG", "/custom/path/config.yaml")
		assert.Equal(t, "/custom/path/config.yaml", DefaultConfigPath())
	})

	t.Run("falls back to user config dir", func(t *testing.T) {
		t.Setenv("PINOTCTL_CONFIG", "")
		result := DefaultConfigPath()
		assert.True(t, strings.HasSuffix(result, "config.yaml"), "got: %s", result)
		assert.Contains(t, result, "pinotctl")
	})
}

func TestDefaultTokenPath(t *testing.T) {
	t.Run("next to config", func(t *testing.T) {
		got := DefaultTokenPath(filepath.Join("/etc", "pinotctl", "config.yaml"))
		assert.Equal(t, filepath.Join("/etc", "pinotctl", "tokens.json"), got)
	})

	t.Run("default location", func(t *testing.T) {
		result := DefaultTokenPath("")
		assert.True(t, strings.HasSuffix(result, "tokens.json"), "got: %s", result)
		assert.Contains(t, result, "pinotctl")
	})
}
