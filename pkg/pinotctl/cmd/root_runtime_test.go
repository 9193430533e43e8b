package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telekom/pinotctl/pkg/pinotctl/config"
	"github.com/telekom/pinotctl/pkg/pinotctl/output"
)

func TestRuntimeStateResolveContextName(t *testing.T) {
	rt := &runtimeState{contextOverride: "override"}
	require.Equal(t, "override", rt.ResolveContextName())

	rt = &runtimeState{cfg: &config.Config{CurrentContext: "ctx"}}
	require.Equal(t, "ctx", rt.ResolveContextName())

	rt = &runtimeState{cfg: &config.Config{Contexts: []config.Context{{Name: "first"}}}}
	require.Equal(t, "first", rt.ResolveContextName())
}

func TestRuntimeStateOutputFormat(t *testing.T) {
	rt := &runtimeState{outputFormat: "json"}
	format, err := rt.OutputFormat()
	require.NoError(t, err)
	require.Equal(t, output.FormatJSON, format)

	rt = &runtimeState{cfg: &config.Config{Settings: config.Settings{OutputFormat: "yaml"}}}
	format, err = rt.OutputFormat()
	require.NoError(t, err)
	require.Equal(t, output.FormatYAML, format)

	rt = &runtimeState{}
	format, err = rt.OutputFormat()
	require.NoError(t, err)
	require.Equal(t, output.FormatTable, format)

	rt = &runtimeState{outputFormat: "csv"}
	_, err = rt.OutputFormat()
	require.Error(t, err)
}

func TestEnsureConfigLoaded(t *testing.T) {
	path := configPathForTest(t)
	cfg := config.DefaultConfig()
	cfg.Contexts = []config.Context{{Name: "ctx", Server: "https://example.com"}}
	require.NoError(t, config.Save(path, &cfg))

	rt := &runtimeState{configPath: path}
	require.NoError(t, rt.EnsureConfigLoaded())
	require.NotNil(t, rt.cfg)
}

func TestResolveContext(t *testing.T) {
	rt := &runtimeState{}
	_, err := rt.ResolveContext()
	require.Error(t, err)

	rt = &runtimeState{cfg: &config.Config{}}
	_, err = rt.ResolveContext()
	require.Error(t, err)

	rt = &runtimeState{cfg: &config.Config{}, serverOverride: "http://localhost:9000"}
	ctx, err := rt.ResolveContext()
	require.NoError(t, err)
	assert.Nil(t, ctx)
	assert.Equal(t, "http://localhost:9000", rt.resolveServer(ctx))

	rt = &runtimeState{cfg: &config.Config{Contexts: []config.Context{{Name: "a", Server: "https://a.example"}}}, contextOverride: "b"}
	_, err = rt.ResolveContext()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context not found: b")
}

func TestRootCommandMissingConfigWithoutServer(t *testing.T) {
	_, err := runCommand(t, configPathForTest(t), nil, "tenant", "list")
	require.Error(t, err)
}

func TestRootCommandServerFromEnv(t *testing.T) {
	server := startController(t)
	t.Setenv("PINOTCTL_SERVER", server)
	t.Setenv("PINOTCTL_OUTPUT", "json")

	out, err := runCommand(t, configPathForTest(t), nil, "cluster", "info")
	require.NoError(t, err)
	assert.Contains(t, out, `"clusterName": "PinotCluster"`)
}

func TestRootCommandUsesConfiguredContext(t *testing.T) {
	server := startController(t)
	path := configPathForTest(t)
	cfg := config.DefaultConfig()
	cfg.CurrentContext = "local"
	cfg.Contexts = []config.Context{
		{Name: "local", Server: server},
		{Name: "broken", Server: "http://127.0.0.1:1"},
	}
	require.NoError(t, config.Save(path, &cfg))

	out, err := runCommand(t, path, nil, "tenant", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "DefaultTenant")

	_, err = runCommand(t, path, nil, "--context", "broken", "tenant", "list")
	require.Error(t, err)
}

func TestRootCommandRejectsInvalidConfig(t *testing.T) {
	path := configPathForTest(t)
	cfg := config.DefaultConfig()
	cfg.Contexts = []config.Context{{Name: "bad", Server: "ftp://example"}}
	require.NoError(t, config.Save(path, &cfg))

	_, err := runCommand(t, path, nil, "tenant", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http(s) URL")
}

func TestRootCommandRejectsInvalidOutput(t *testing.T) {
	server := startController(t)
	_, err := runAgainst(t, server, "-o", "csv", "tenant", "list")
	require.Error(t, err)
}
