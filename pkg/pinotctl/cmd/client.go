package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/telekom/pinotctl/pkg/pinotctl/auth"
	"github.com/telekom/pinotctl/pkg/pinotctl/client"
	"github.com/telekom/pinotctl/pkg/pinotctl/config"
	"github.com/telekom/pinotctl/pkg/pinotctl/transport"
	"github.com/telekom/pinotctl/pkg/version"
)

// passwordStore is replaced in tests.
var passwordStore = auth.NewPasswordStore()

func buildClient(cmdCtx context.Context, rt *runtimeState) (*client.Client, error) {
	ctxCfg, err := rt.ResolveContext()
	if err != nil {
		return nil, err
	}
	server := rt.resolveServer(ctxCfg)
	if server == "" {
		return nil, errors.New("server is required")
	}

	options := []transport.Option{
		transport.WithServer(server),
		transport.WithUserAgent(version.UserAgent()),
		transport.WithLogger(rt.Logger()),
	}
	if rt.cfg != nil {
		timeout, err := rt.cfg.Settings.TimeoutDuration()
		if err != nil {
			return nil, err
		}
		if timeout > 0 {
			options = append(options, transport.WithTimeout(timeout))
		}
		if rt.cfg.Settings.RateLimit > 0 {
			options = append(options, transport.WithRateLimit(rt.cfg.Settings.RateLimit, rt.cfg.Settings.RateBurst))
		}
	}
	if ctxCfg != nil && (ctxCfg.CAFile != "" || ctxCfg.InsecureSkipTLSVerify) {
		options = append(options, transport.WithTLSConfig(ctxCfg.CAFile, ctxCfg.InsecureSkipTLSVerify))
	}

	authOptions, err := resolveAuth(cmdCtx, rt, ctxCfg)
	if err != nil {
		return nil, err
	}
	options = append(options, authOptions...)

	tr, err := transport.New(options...)
	if err != nil {
		return nil, err
	}
	return client.New(tr)
}

// resolveAuth maps the context auth settings to transport options. A token
// override always wins.
func resolveAuth(cmdCtx context.Context, rt *runtimeState, ctxCfg *config.Context) ([]transport.Option, error) {
	if rt.tokenOverride != "" {
		return []transport.Option{transport.WithToken(rt.tokenOverride)}, nil
	}
	if ctxCfg == nil {
		return nil, nil
	}
	switch ctxCfg.AuthType() {
	case config.AuthNone:
		return nil, nil
	case config.AuthToken:
		return []transport.Option{transport.WithToken(ctxCfg.Auth.Token)}, nil
	case config.AuthBasic:
		password, err := resolvePassword(ctxCfg)
		if err != nil {
			return nil, err
		}
		return []transport.Option{transport.WithBasicAuth(ctxCfg.Auth.Username, password)}, nil
	case config.AuthClientCredentials:
		oauthCfg, err := oauthConfig(ctxCfg)
		if err != nil {
			return nil, err
		}
		src, err := auth.ClientCredentialsTokenSource(cmdCtx, oauthCfg)
		if err != nil {
			return nil, err
		}
		manager := &auth.TokenManager{CachePath: rt.tokenPath()}
		return []transport.Option{transport.WithTokenSource(manager.CachedTokenSource(ctxCfg.Name, src))}, nil
	default:
		return nil, fmt.Errorf("unsupported auth type: %s", ctxCfg.AuthType())
	}
}

func resolvePassword(ctxCfg *config.Context) (string, error) {
	if env := ctxCfg.Auth.PasswordEnv; env != "" {
		if value := strings.TrimSpace(os.Getenv(env)); value != "" {
			return value, nil
		}
	}
	password, err := passwordStore.Get(ctxCfg.Name, ctxCfg.Auth.Username)
	if errors.Is(err, auth.ErrPasswordNotFound) {
		return "", fmt.Errorf("no password for %s; run 'pinotctl auth login' or set password-env", ctxCfg.Auth.Username)
	}
	return password, err
}

func oauthConfig(ctxCfg *config.Context) (auth.OAuth2Config, error) {
	a := ctxCfg.Auth
	secret, err := auth.ResolveClientSecret(a.ClientSecret, a.ClientSecretEnv, a.ClientSecretFile)
	if err != nil {
		return auth.OAuth2Config{}, err
	}
	return auth.OAuth2Config{
		TokenURL:       a.TokenURL,
		ClientID:       a.ClientID,
		ClientSecret:   secret,
		Scopes:         a.Scopes,
		EndpointParams: a.EndpointParams,
	}, nil
}
