package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/telekom/pinotctl/pkg/pinotctl/auth"
	"github.com/telekom/pinotctl/pkg/pinotctl/config"
	"github.com/telekom/pinotctl/pkg/pinotctl/output"
)

func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage controller credentials",
	}
	cmd.AddCommand(
		newAuthLoginCommand(),
		newAuthStatusCommand(),
		newAuthLogoutCommand(),
	)
	return cmd
}

func newAuthLoginCommand() *cobra.Command {
	var passwordStdin bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store credentials for the current context",
		Long: `Fetches and caches a client credentials token, or stores a basic auth
password in the system keyring (read from stdin with --password-stdin).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if err := rt.EnsureConfigLoaded(); err != nil {
				return err
			}
			ctxCfg, err := rt.ResolveContext()
			if err != nil {
				return err
			}
			if ctxCfg == nil {
				return errors.New("auth login requires a configured context")
			}
			switch ctxCfg.AuthType() {
			case config.AuthClientCredentials:
				oauthCfg, err := oauthConfig(ctxCfg)
				if err != nil {
					return err
				}
				manager := &auth.TokenManager{CachePath: rt.tokenPath()}
				token, err := manager.Login(cmd.Context(), ctxCfg.Name, oauthCfg)
				if err != nil {
					return err
				}
				rt.Logger().Debug("Cached client credentials token",
					zap.String("context", ctxCfg.Name), zap.Time("expiry", token.Expiry))
				_, _ = fmt.Fprintf(rt.Writer(), "Logged in to context %s (token expires %s)\n",
					ctxCfg.Name, expiryString(token.Expiry))
				return nil
			case config.AuthBasic:
				if !passwordStdin {
					return errors.New("basic auth login requires --password-stdin")
				}
				password, err := readPassword(cmd.InOrStdin())
				if err != nil {
					return err
				}
				if err := passwordStore.Set(ctxCfg.Name, ctxCfg.Auth.Username, password); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(rt.Writer(), "Stored password for %s in context %s\n", ctxCfg.Auth.Username, ctxCfg.Name)
				return nil
			default:
				return fmt.Errorf("context %s uses auth type %s; nothing to log in to", ctxCfg.Name, ctxCfg.AuthType())
			}
		},
	}
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the basic auth password from stdin")
	return cmd
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password is empty")
	}
	return password, nil
}

type authStatus struct {
	Context  string         `json:"context"`
	Server   string         `json:"server"`
	AuthType string         `json:"authType"`
	Source   string         `json:"source,omitempty"`
	Identity *auth.Identity `json:"identity,omitempty"`
	Expiry   *time.Time     `json:"expiry,omitempty"`
}

func newAuthStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show credentials used for the current context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			ctxCfg, err := rt.ResolveContext()
			if err != nil {
				return err
			}
			status, err := resolveAuthStatus(rt, ctxCfg)
			if err != nil {
				return err
			}
			format, err := rt.OutputFormat()
			if err != nil {
				return err
			}
			if !format.Tabular() {
				return render(rt, status, nil)
			}
			writeAuthStatus(rt.Writer(), status)
			return nil
		},
	}
}

func resolveAuthStatus(rt *runtimeState, ctxCfg *config.Context) (authStatus, error) {
	status := authStatus{Server: rt.resolveServer(ctxCfg), AuthType: config.AuthNone}
	if ctxCfg != nil {
		status.Context = ctxCfg.Name
		status.AuthType = ctxCfg.AuthType()
	}

	var token string
	switch {
	case rt.tokenOverride != "":
		status.AuthType = config.AuthToken
		status.Source = "override"
		token = rt.tokenOverride
	case status.AuthType == config.AuthToken:
		status.Source = "config"
		token = ctxCfg.Auth.Token
	case status.AuthType == config.AuthClientCredentials:
		manager := &auth.TokenManager{CachePath: rt.tokenPath()}
		stored, ok, err := manager.GetToken(ctxCfg.Name)
		if err != nil {
			return status, err
		}
		if !ok {
			status.Source = "not logged in"
			return status, nil
		}
		status.Source = "cache"
		token = stored.AccessToken
		if !stored.Expiry.IsZero() {
			expiry := stored.Expiry
			status.Expiry = &expiry
		}
	case status.AuthType == config.AuthBasic:
		if ctxCfg.Auth.PasswordEnv != "" && os.Getenv(ctxCfg.Auth.PasswordEnv) != "" {
			status.Source = "env " + ctxCfg.Auth.PasswordEnv
		} else if _, err := passwordStore.Get(ctxCfg.Name, ctxCfg.Auth.Username); err == nil {
			status.Source = "keyring"
		} else {
			status.Source = "not logged in"
		}
		status.Identity = &auth.Identity{Username: ctxCfg.Auth.Username}
		return status, nil
	}

	if token != "" {
		id, err := auth.TokenIdentity(token)
		if err != nil {
			rt.Logger().Debug("Token is opaque", zap.Error(err))
		} else {
			status.Identity = &id
			if status.Expiry == nil && !id.ExpiresAt.IsZero() {
				expiry := id.ExpiresAt
				status.Expiry = &expiry
			}
		}
	}
	return status, nil
}

func writeAuthStatus(w io.Writer, status authStatus) {
	rows := map[string]string{
		"Context":  dashIfEmpty(status.Context),
		"Server":   dashIfEmpty(status.Server),
		"AuthType": status.AuthType,
		"Source":   dashIfEmpty(status.Source),
		"Identity": "-",
		"Expiry":   "-",
	}
	if status.Identity != nil {
		rows["Identity"] = dashIfEmpty(status.Identity.Display())
	}
	if status.Expiry != nil {
		rows["Expiry"] = expiryString(*status.Expiry)
	}
	output.WriteKeyValueTable(w, rows)
}

func newAuthLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials for the current context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			ctxCfg, err := rt.ResolveContext()
			if err != nil {
				return err
			}
			if ctxCfg == nil {
				return errors.New("auth logout requires a configured context")
			}
			manager := &auth.TokenManager{CachePath: rt.tokenPath()}
			if err := manager.DeleteToken(ctxCfg.Name); err != nil {
				return err
			}
			if ctxCfg.AuthType() == config.AuthBasic {
				if err := passwordStore.Delete(ctxCfg.Name, ctxCfg.Auth.Username); err != nil && !errors.Is(err, auth.ErrPasswordNotFound) {
					return err
				}
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Logged out of context %s\n", ctxCfg.Name)
			return nil
		},
	}
}

func expiryString(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.UTC().Format(time.RFC3339)
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
