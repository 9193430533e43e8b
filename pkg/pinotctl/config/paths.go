package config

import (
	"os"
	"path/filepath"
)

const (
	defaultConfigDirName = "pinotctl"
	defaultConfigFile    = "config.yaml"
	defaultTokenFile     = "tokens.json"
)

func DefaultConfigPath() string {
	if env := os.Getenv("PINOTCTL_CONFIG"); env != "" {
		return env
	}
	base, err := os.UserConfigDir()
	if err == nil {
		return filepath.Join(base, defaultConfigDirName, defaultConfigFile)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pinotctl", defaultConfigFile)
}

// DefaultTokenPath places the token cache next to the config file.
func DefaultTokenPath(configPath string) string {
	if configPath != "" {
		return filepath.Join(filepath.Dir(configPath), defaultTokenFile)
	}
	base, err := os.UserConfigDir()
	if err == nil {
		return filepath.Join(base, defaultConfigDirName, defaultTokenFile)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pinotctl", defaultTokenFile)
}
