package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telekom/pinotctl/pkg/pinotctl/client"
)

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestWriteTenantsTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTenantsTable(&buf, client.Tenants{ServerTenants: []string{"DefaultTenant"}, BrokerTenants: []string{"DefaultTenant", "edge"}})

	out := lines(&buf)
	require.Len(t, out, 4)
	assert.Contains(t, out[0], "NAME")
	assert.Contains(t, out[1], "SERVER")
	assert.Contains(t, out[3], "edge")
}

func TestWriteTenantDetailTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTenantDetailTable(&buf, client.TenantDetail{
		TenantName:      "DefaultTenant",
		ServerInstances: []string{"Server_1"},
		BrokerInstances: []string{"Broker_1"},
	})
	out := lines(&buf)
	require.Len(t, out, 3)
	assert.Contains(t, out[1], "Server_1")
	assert.Contains(t, out[2], "BROKER")
}

func TestWriteNamesTable(t *testing.T) {
	var buf bytes.Buffer
	WriteNamesTable(&buf, "table", []string{"airlineStats", "baseballStats"})
	assert.Equal(t, []string{"TABLE", "airlineStats", "baseballStats"}, lines(&buf))
}

func TestWriteServerListTable(t *testing.T) {
	var buf bytes.Buffer
	WriteServerListTable(&buf, client.ServerList{TenantName: "t", ServerInstances: []string{"s1", "s2"}})
	assert.Len(t, lines(&buf), 3)
}

func TestWriteInstanceTables(t *testing.T) {
	inst := client.Instance{
		InstanceName: "Server_10.0.0.1_8098",
		HostName:     "10.0.0.1",
		Port:         "8098",
		Enabled:      true,
		Tags:         []string{"DefaultTenant_OFFLINE", "DefaultTenant_REALTIME"},
		Pools:        map[string]string{"b": "2", "a": "1"},
		AdminPort:    8097,
	}

	var buf bytes.Buffer
	WriteInstanceTable(&buf, inst)
	out := lines(&buf)
	require.Len(t, out, 2)
	assert.Contains(t, out[1], "DefaultTenant_OFFLINE,DefaultTenant_REALTIME")
	assert.Contains(t, out[1], "true")

	buf.Reset()
	WriteInstanceTableWide(&buf, inst)
	out = lines(&buf)
	require.Len(t, out, 2)
	assert.Contains(t, out[0], "ADMIN_PORT")
	assert.Contains(t, out[1], "8097")
	assert.Contains(t, out[1], "a=1,b=2")
}

func TestWriteKeyValueTableSorted(t *testing.T) {
	var buf bytes.Buffer
	WriteKeyValueTable(&buf, client.ClusterConfig{"zeta": "1", "allowParticipantAutoJoin": "true"})
	out := lines(&buf)
	require.Len(t, out, 3)
	assert.True(t, strings.HasPrefix(out[1], "allowParticipantAutoJoin"))
	assert.True(t, strings.HasPrefix(out[2], "zeta"))
}

func TestWriteMetadataTable(t *testing.T) {
	var buf bytes.Buffer
	WriteMetadataTable(&buf, client.SegmentMetadata{
		"segment.total.docs": float64(100),
		"columns":            []any{"a", "b"},
		"custom":             nil,
	})
	out := lines(&buf)
	require.Len(t, out, 4)
	assert.Contains(t, out[1], `["a","b"]`)
	assert.Contains(t, out[2], "null")
	assert.Contains(t, out[3], "100")
}

func TestWriteTableSizeTables(t *testing.T) {
	size := client.TableSize{
		TableName:            "airlineStats",
		ReportedSizeInBytes:  300,
		EstimatedSizeInBytes: 300,
		OfflineSegments: &client.TableSubTypeSize{
			ReportedSizeInBytes:  300,
			EstimatedSizeInBytes: 300,
			Segments: map[string]client.SegmentSize{
				"seg_1": {ReportedSizeInBytes: 200, EstimatedSizeInBytes: 200, ServerInfo: map[string]client.ServerSegmentSize{
					"Server_1": {SegmentName: "seg_1", DiskSizeInBytes: 200},
				}},
				"seg_0": {ReportedSizeInBytes: 100, EstimatedSizeInBytes: 100},
			},
		},
	}

	var buf bytes.Buffer
	WriteTableSizeTable(&buf, size)
	out := lines(&buf)
	require.Len(t, out, 3)
	assert.Contains(t, out[1], "TOTAL")
	assert.Contains(t, out[2], "OFFLINE")

	buf.Reset()
	WriteTableSizeTableWide(&buf, size)
	out = lines(&buf)
	require.Len(t, out, 3)
	assert.Contains(t, out[1], "seg_0")
	assert.Contains(t, out[2], "Server_1")
}

func TestWriteIdealStateTable(t *testing.T) {
	var buf bytes.Buffer
	WriteIdealStateTable(&buf, client.IdealState{
		Offline: client.SegmentAssignment{
			"seg_1": {"Server_2": "ONLINE", "Server_1": "ONLINE"},
		},
		Realtime: client.SegmentAssignment{
			"seg_rt": {"Server_1": "CONSUMING"},
		},
	})
	out := lines(&buf)
	require.Len(t, out, 4)
	assert.Contains(t, out[1], "Server_1")
	assert.Contains(t, out[2], "Server_2")
	assert.Contains(t, out[3], "CONSUMING")
}

func TestWriteSchemaTable(t *testing.T) {
	var buf bytes.Buffer
	WriteSchemaTable(&buf, client.TableSchema{
		SchemaName:          "events",
		DimensionFieldSpecs: []client.FieldSpec{{Name: "id", DataType: "STRING"}},
		MetricFieldSpecs:    []client.FieldSpec{{Name: "count", DataType: "LONG"}},
		DateTimeFieldSpecs:  []client.DateTimeFieldSpec{{Name: "ts", DataType: "TIMESTAMP", Format: "1:MILLISECONDS:EPOCH"}},
		PrimaryKeyColumns:   []string{"id"},
	})
	out := lines(&buf)
	require.Len(t, out, 4)
	assert.Contains(t, out[1], "DIMENSION")
	assert.Contains(t, out[1], "true")
	assert.Contains(t, out[3], "1:MILLISECONDS:EPOCH")
}

func TestWriteSQLResultTable(t *testing.T) {
	result := client.SQLResult{
		ResultTable: &client.ResultTable{
			DataSchema: client.DataSchema{ColumnNames: []string{"carrier", "cnt"}, ColumnDataTypes: []string{"STRING", "LONG"}},
			Rows:       [][]any{{"AA", float64(12)}, {"DL", float64(7)}},
		},
		Exceptions:          []client.QueryException{{ErrorCode: 200, Message: "partial"}},
		NumServersQueried:   1,
		NumServersResponded: 1,
		TimeUsedMs:          5,
	}

	var buf bytes.Buffer
	WriteSQLResultTable(&buf, result, false)
	out := lines(&buf)
	require.Len(t, out, 4)
	assert.Contains(t, out[0], "CARRIER")
	assert.Contains(t, out[1], "12")
	assert.Equal(t, "ERROR 200: partial", out[3])

	buf.Reset()
	WriteSQLResultTable(&buf, result, true)
	assert.Contains(t, buf.String(), "servers 1/1")
	assert.Contains(t, buf.String(), "5ms")
}

func TestWriteZKTables(t *testing.T) {
	var buf bytes.Buffer
	WriteZKStatTable(&buf, "/pinot/CONFIGS", client.ZKStat{Version: 3, NumChildren: 2, MTime: 1700000000000})
	out := lines(&buf)
	require.Len(t, out, 2)
	assert.Contains(t, out[1], "/pinot/CONFIGS")
	assert.Contains(t, out[1], "2023-11-14T22:13:20Z")

	buf.Reset()
	WriteZKListWithStatTable(&buf, client.ZKListWithStat{
		"TABLE":   {Version: 1},
		"CLUSTER": {Version: 2},
	})
	out = lines(&buf)
	require.Len(t, out, 3)
	assert.True(t, strings.HasPrefix(out[1], "CLUSTER"))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "-", formatMillis(0))
	assert.Equal(t, "-", joinOrDash(nil))
	assert.Equal(t, "-", portOrDash(0))
	assert.Equal(t, "8080", portOrDash(8080))
	assert.Equal(t, "1.5", formatValue(1.5))
	assert.Equal(t, "true", formatValue(true))
	assert.Equal(t, `{"a":1}`, formatValue(map[string]int{"a": 1}))
}
