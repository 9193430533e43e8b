package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	VersionV1 = "v1"
)

const (
	AuthNone              = "none"
	AuthToken             = "token"
	AuthBasic             = "basic"
	AuthClientCredentials = "client-credentials"
)

type Config struct {
	Version        string    `yaml:"version" json:"version"`
	CurrentContext string    `yaml:"current-context,omitempty" json:"current-context,omitempty"`
	Contexts       []Context `yaml:"contexts,omitempty" json:"contexts,omitempty"`
	Settings       Settings  `yaml:"settings,omitempty" json:"settings,omitempty"`
}

type Settings struct {
	OutputFormat string  `yaml:"output-format,omitempty" json:"output-format,omitempty"`
	Timeout      string  `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	RateLimit    float64 `yaml:"rate-limit,omitempty" json:"rate-limit,omitempty"`
	RateBurst    int     `yaml:"rate-burst,omitempty" json:"rate-burst,omitempty"`
}

// TimeoutDuration parses Timeout, returning zero when it is unset.
func (s Settings) TimeoutDuration() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s.Timeout, err)
	}
	return d, nil
}

type Context struct {
	Name                  string `yaml:"name" json:"name"`
	Server                string `yaml:"server" json:"server"`
	CAFile                string `yaml:"ca-file,omitempty" json:"ca-file,omitempty"`
	InsecureSkipTLSVerify bool   `yaml:"insecure-skip-tls-verify,omitempty" json:"insecure-skip-tls-verify,omitempty"`
	Auth                  *Auth  `yaml:"auth,omitempty" json:"auth,omitempty"`
}

type Auth struct {
	Type             string            `yaml:"type,omitempty" json:"type,omitempty"`
	Token            string            `yaml:"token,omitempty" json:"token,omitempty"`
	Username         string            `yaml:"username,omitempty" json:"username,omitempty"`
	PasswordEnv      string            `yaml:"password-env,omitempty" json:"password-env,omitempty"`
	TokenURL         string            `yaml:"token-url,omitempty" json:"token-url,omitempty"`
	ClientID         string            `yaml:"client-id,omitempty" json:"client-id,omitempty"`
	ClientSecret     string            `yaml:"client-secret,omitempty" json:"client-secret,omitempty"`
	ClientSecretEnv  string            `yaml:"client-secret-env,omitempty" json:"client-secret-env,omitempty"`
	ClientSecretFile string            `yaml:"client-secret-file,omitempty" json:"client-secret-file,omitempty"`
	Scopes           []string          `yaml:"scopes,omitempty" json:"scopes,omitempty"`
	EndpointParams   map[string]string `yaml:"endpoint-params,omitempty" json:"endpoint-params,omitempty"`
}

// AuthType returns the configured auth type, defaulting to none.
func (c *Context) AuthType() string {
	if c.Auth == nil || c.Auth.Type == "" {
		return AuthNone
	}
	return c.Auth.Type
}

func DefaultConfig() Config {
	return Config{
		Version: VersionV1,
		Settings: Settings{
			OutputFormat: "table",
			Timeout:      "30s",
			RateBurst:    1,
		},
	}
}

func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Version == "" {
		cfg.Version = VersionV1
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if cfg.Version == "" {
		cfg.Version = VersionV1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, content, 0o600)
}

func (c *Config) FindContext(name string) (*Context, error) {
	for i := range c.Contexts {
		if c.Contexts[i].Name == name {
			return &c.Contexts[i], nil
		}
	}
	return nil, fmt.Errorf("context not found: %s", name)
}

// RemoveContext deletes the named context and clears current-context if it
// pointed at it.
func (c *Config) RemoveContext(name string) error {
	for i := range c.Contexts {
		if c.Contexts[i].Name == name {
			c.Contexts = append(c.Contexts[:i], c.Contexts[i+1:]...)
			if c.CurrentContext == name {
				c.CurrentContext = ""
			}
			return nil
		}
	}
	return fmt.Errorf("context not found: %s", name)
}

func (c *Config) CurrentContextOrDefault() string {
	if c.CurrentContext != "" {
		return c.CurrentContext
	}
	if len(c.Contexts) > 0 {
		return c.Contexts[0].Name
	}
	return ""
}

func (c *Config) Validate() error {
	if c.Version == "" {
		return errors.New("config version missing")
	}
	if _, err := c.Settings.TimeoutDuration(); err != nil {
		return err
	}
	if c.Settings.RateLimit < 0 {
		return errors.New("rate-limit must not be negative")
	}
	seen := map[string]bool{}
	for _, ctx := range c.Contexts {
		if strings.TrimSpace(ctx.Name) == "" {
			return errors.New("context name cannot be empty")
		}
		if seen[ctx.Name] {
			return fmt.Errorf("duplicate context %s", ctx.Name)
		}
		seen[ctx.Name] = true
		if strings.TrimSpace(ctx.Server) == "" {
			return fmt.Errorf("context %s server is required", ctx.Name)
		}
		if u, err := url.Parse(ctx.Server); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("context %s server must be an http(s) URL", ctx.Name)
		}
		if err := validateAuth(ctx); err != nil {
			return err
		}
	}
	return nil
}

func validateAuth(ctx Context) error {
	switch ctx.AuthType() {
	case AuthNone, AuthToken:
		return nil
	case AuthBasic:
		if ctx.Auth.Username == "" {
			return fmt.Errorf("context %s basic auth requires username", ctx.Name)
		}
		return nil
	case AuthClientCredentials:
		if ctx.Auth.TokenURL == "" || ctx.Auth.ClientID == "" {
			return fmt.Errorf("context %s client-credentials auth requires token-url and client-id", ctx.Name)
		}
		return nil
	default:
		return fmt.Errorf("context %s has unknown auth type %q", ctx.Name, ctx.Auth.Type)
	}
}
