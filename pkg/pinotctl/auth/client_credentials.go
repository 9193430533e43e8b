package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

type OAuth2Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	// EndpointParams are extra form values sent to the token endpoint, e.g. audience.
	EndpointParams map[string]string
}

func (c OAuth2Config) clientCredentials() (*clientcredentials.Config, error) {
	if c.TokenURL == "" || c.ClientID == "" {
		return nil, errors.New("token-url and client-id are required")
	}
	cc := &clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     c.TokenURL,
		Scopes:       c.Scopes,
	}
	if len(c.EndpointParams) > 0 {
		cc.EndpointParams = map[string][]string{}
		for k, v := range c.EndpointParams {
			cc.EndpointParams.Set(k, v)
		}
	}
	return cc, nil
}

func ClientCredentialsLogin(ctx context.Context, cfg OAuth2Config) (*oauth2.Token, error) {
	cc, err := cfg.clientCredentials()
	if err != nil {
		return nil, err
	}
	token, err := cc.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("client credentials token failed: %w", err)
	}
	return token, nil
}

// ClientCredentialsTokenSource returns a refreshing token source for cfg. The
// context is used for token endpoint requests made by the source.
func ClientCredentialsTokenSource(ctx context.Context, cfg OAuth2Config) (oauth2.TokenSource, error) {
	cc, err := cfg.clientCredentials()
	if err != nil {
		return nil, err
	}
	return cc.TokenSource(ctx), nil
}

func ResolveClientSecret(secret, secretEnv, secretFile string) (string, error) {
	if secret != "" {
		return secret, nil
	}
	if secretEnv != "" {
		value := strings.TrimSpace(os.Getenv(secretEnv))
		if value == "" {
			return "", fmt.Errorf("client secret env var not set: %s", secretEnv)
		}
		return value, nil
	}
	if secretFile != "" {
		bytes, err := os.ReadFile(secretFile)
		if err != nil {
			return "", fmt.Errorf("failed to read client secret file: %w", err)
		}
		return strings.TrimSpace(string(bytes)), nil
	}
	return "", nil
}
