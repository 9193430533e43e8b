package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/telekom/pinotctl/pkg/pinotctl/config"
	"github.com/telekom/pinotctl/pkg/pinotctl/output"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pinotctl configuration",
	}
	cmd.AddCommand(
		newConfigInitCommand(),
		newConfigViewCommand(),
		newConfigContextsCommand(),
		newConfigCurrentContextCommand(),
		newConfigUseContextCommand(),
		newConfigAddContextCommand(),
		newConfigDeleteContextCommand(),
	)
	return cmd
}

type contextFlags struct {
	server          string
	caFile          string
	insecure        bool
	authType        string
	token           string
	username        string
	passwordEnv     string
	tokenURL        string
	clientID        string
	clientSecretEnv string
	scopes          []string
}

func (f *contextFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.server, "server", "", "Controller URL")
	cmd.Flags().StringVar(&f.caFile, "ca-file", "", "CA bundle for the controller certificate")
	cmd.Flags().BoolVar(&f.insecure, "insecure-skip-tls-verify", false, "Skip TLS verification")
	cmd.Flags().StringVar(&f.authType, "auth", config.AuthNone, "Auth type: none, token, basic, client-credentials")
	cmd.Flags().StringVar(&f.token, "auth-token", "", "Bearer token for --auth token")
	cmd.Flags().StringVar(&f.username, "username", "", "User for --auth basic")
	cmd.Flags().StringVar(&f.passwordEnv, "password-env", "", "Env var holding the basic auth password")
	cmd.Flags().StringVar(&f.tokenURL, "token-url", "", "Token endpoint for --auth client-credentials")
	cmd.Flags().StringVar(&f.clientID, "client-id", "", "Client ID for --auth client-credentials")
	cmd.Flags().StringVar(&f.clientSecretEnv, "client-secret-env", "", "Env var holding the client secret")
	cmd.Flags().StringSliceVar(&f.scopes, "scope", nil, "OAuth2 scope; repeatable")
	_ = cmd.MarkFlagRequired("server")
}

func (f *contextFlags) context(name string) config.Context {
	ctx := config.Context{
		Name:                  name,
		Server:                f.server,
		CAFile:                f.caFile,
		InsecureSkipTLSVerify: f.insecure,
	}
	if f.authType != "" && f.authType != config.AuthNone {
		ctx.Auth = &config.Auth{
			Type:            f.authType,
			Token:           f.token,
			Username:        f.username,
			PasswordEnv:     f.passwordEnv,
			TokenURL:        f.tokenURL,
			ClientID:        f.clientID,
			ClientSecretEnv: f.clientSecretEnv,
			Scopes:          f.scopes,
		}
	}
	return ctx
}

func newConfigInitCommand() *cobra.Command {
	var (
		contextName string
		force       bool
		flags       contextFlags
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a pinotctl config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			path := rt.configPathValue()
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("config already exists: %s", path)
				}
			}
			cfg := config.DefaultConfig()
			cfg.CurrentContext = contextName
			cfg.Contexts = []config.Context{flags.context(contextName)}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(path, &cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Initialized config at %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&contextName, "name", "default", "Context name")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	flags.register(cmd)
	return cmd
}

func newConfigViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if err := rt.EnsureConfigLoaded(); err != nil {
				return err
			}
			format, err := rt.OutputFormat()
			if err != nil {
				return err
			}
			if format.Tabular() || format == output.FormatTemplate {
				format = output.FormatYAML
			}
			return output.WriteObject(rt.Writer(), format, redacted(rt.cfg))
		},
	}
}

const redactedValue = "REDACTED"

// redacted returns a copy of cfg with inline secrets masked.
func redacted(cfg *config.Config) config.Config {
	out := *cfg
	out.Contexts = make([]config.Context, len(cfg.Contexts))
	for i, ctx := range cfg.Contexts {
		if ctx.Auth != nil {
			a := *ctx.Auth
			if a.Token != "" {
				a.Token = redactedValue
			}
			if a.ClientSecret != "" {
				a.ClientSecret = redactedValue
			}
			ctx.Auth = &a
		}
		out.Contexts[i] = ctx
	}
	return out
}

func newConfigContextsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-contexts",
		Short: "List configured contexts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if err := rt.EnsureConfigLoaded(); err != nil {
				return err
			}
			current := rt.cfg.CurrentContextOrDefault()
			for _, ctx := range rt.cfg.Contexts {
				marker := " "
				if ctx.Name == current {
					marker = "*"
				}
				_, _ = fmt.Fprintf(rt.Writer(), "%s %s\t%s\t%s\n", marker, ctx.Name, ctx.Server, ctx.AuthType())
			}
			return nil
		},
	}
}

func newConfigCurrentContextCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "current-context",
		Short: "Show the current context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if err := rt.EnsureConfigLoaded(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(rt.Writer(), rt.cfg.CurrentContextOrDefault())
			return nil
		},
	}
}

func newConfigUseContextCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "use-context NAME",
		Aliases: []string{"use"},
		Short:   "Set the default context",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if err := rt.EnsureConfigLoaded(); err != nil {
				return err
			}
			name := args[0]
			if _, err := rt.cfg.FindContext(name); err != nil {
				return err
			}
			rt.cfg.CurrentContext = name
			if err := config.Save(rt.configPathValue(), rt.cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Switched to context %s\n", name)
			return nil
		},
	}
}

func newConfigAddContextCommand() *cobra.Command {
	var flags contextFlags
	cmd := &cobra.Command{
		Use:   "add-context NAME",
		Short: "Add a new context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if err := rt.EnsureConfigLoaded(); err != nil {
				return err
			}
			name := args[0]
			if _, err := rt.cfg.FindContext(name); err == nil {
				return fmt.Errorf("context already exists: %s", name)
			}
			rt.cfg.Contexts = append(rt.cfg.Contexts, flags.context(name))
			if err := rt.cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(rt.configPathValue(), rt.cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Added context %s\n", name)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newConfigDeleteContextCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-context NAME",
		Short: "Delete a context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if err := rt.EnsureConfigLoaded(); err != nil {
				return err
			}
			if err := rt.cfg.RemoveContext(args[0]); err != nil {
				return err
			}
			if err := config.Save(rt.configPathValue(), rt.cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Deleted context %s\n", args[0])
			return nil
		},
	}
}
