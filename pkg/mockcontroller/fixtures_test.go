package mockcontroller

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturesYAML = `
clusterName: TestCluster
clusterConfig:
  allowParticipantAutoJoin: "true"
tenants:
  DefaultTenant:
    servers: [Server_1]
    brokers: [Broker_1]
    tables: [metrics_OFFLINE]
tables:
  metrics:
    type: OFFLINE
    idealState:
      OFFLINE:
        metrics_0:
          Server_1: ONLINE
    schema:
      schemaName: metrics
      dimensionFieldSpecs:
        - name: host
          dataType: STRING
zk:
  /TestCluster:
    data: ""
  /TestCluster/CONFIGS:
    data: '{"id":"CONFIGS"}'
    stat:
      version: 4
`

func TestLoadFixtures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixturesYAML), 0o600))

	f, err := LoadFixtures(path)
	require.NoError(t, err)
	assert.Equal(t, "TestCluster", f.ClusterName)
	assert.Equal(t, "true", f.ClusterConfig["allowParticipantAutoJoin"])
	assert.Equal(t, []string{"Server_1"}, f.Tenants["DefaultTenant"].Servers)
	assert.Equal(t, "ONLINE", f.Tables["metrics"].IdealState.Offline["metrics_0"]["Server_1"])
	assert.Equal(t, "host", f.Tables["metrics"].Schema.DimensionFieldSpecs[0].Name)
	assert.Equal(t, 4, f.ZK["/TestCluster/CONFIGS"].Stat.Version)
}

func TestLoadFixturesErrors(t *testing.T) {
	_, err := LoadFixtures(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tables:\n  x:\n    type: HYBRID\n"), 0o600))
	_, err = LoadFixtures(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid type")

	require.NoError(t, os.WriteFile(path, []byte("tables: [\n"), 0o600))
	_, err = LoadFixtures(path)
	require.Error(t, err)
}
