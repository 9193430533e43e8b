package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/telekom/pinotctl/pkg/pinotctl/client"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
}

func WriteTenantsTable(w io.Writer, tenants client.Tenants) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "NAME\tROLE")
	for _, name := range tenants.ServerTenants {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", name, "SERVER")
	}
	for _, name := range tenants.BrokerTenants {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", name, "BROKER")
	}
	_ = tw.Flush()
}

func WriteTenantDetailTable(w io.Writer, detail client.TenantDetail) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "TENANT\tROLE\tINSTANCE")
	for _, inst := range detail.ServerInstances {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", detail.TenantName, "SERVER", inst)
	}
	for _, inst := range detail.BrokerInstances {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", detail.TenantName, "BROKER", inst)
	}
	_ = tw.Flush()
}

// WriteNamesTable prints a single column of names under header.
func WriteNamesTable(w io.Writer, header string, names []string) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, strings.ToUpper(header))
	for _, name := range names {
		_, _ = fmt.Fprintln(tw, name)
	}
	_ = tw.Flush()
}

func WriteServerListTable(w io.Writer, servers client.ServerList) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "TENANT\tSERVER")
	for _, inst := range servers.ServerInstances {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", servers.TenantName, inst)
	}
	_ = tw.Flush()
}

func WriteInstanceTable(w io.Writer, inst client.Instance) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "NAME\tHOST\tPORT\tENABLED\tTAGS")
	_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", inst.InstanceName, inst.HostName, inst.Port, inst.Enabled, joinOrDash(inst.Tags))
	_ = tw.Flush()
}

func WriteInstanceTableWide(w io.Writer, inst client.Instance) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "NAME\tHOST\tPORT\tENABLED\tTAGS\tGRPC_PORT\tADMIN_PORT\tQUERY_SERVICE_PORT\tPOOLS")
	pools := make([]string, 0, len(inst.Pools))
	for _, k := range sortedKeys(inst.Pools) {
		pools = append(pools, k+"="+inst.Pools[k])
	}
	_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\t%s\t%s\t%s\t%s\n",
		inst.InstanceName, inst.HostName, inst.Port, inst.Enabled, joinOrDash(inst.Tags),
		portOrDash(inst.GRPCPort), portOrDash(inst.AdminPort), portOrDash(inst.QueryServicePort), joinOrDash(pools))
	_ = tw.Flush()
}

// WriteKeyValueTable prints sorted string pairs, used for cluster config.
func WriteKeyValueTable(w io.Writer, values map[string]string) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "KEY\tVALUE")
	for _, k := range sortedKeys(values) {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", k, values[k])
	}
	_ = tw.Flush()
}

// WriteMetadataTable prints a loosely typed document one key per row. Nested
// values are rendered as compact JSON.
func WriteMetadataTable(w io.Writer, doc map[string]any) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "KEY\tVALUE")
	for _, k := range sortedKeys(doc) {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", k, formatValue(doc[k]))
	}
	_ = tw.Flush()
}

func WriteTableSizeTable(w io.Writer, size client.TableSize) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "TABLE\tTYPE\tREPORTED_BYTES\tESTIMATED_BYTES\tMISSING_SEGMENTS")
	_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", size.TableName, "TOTAL", size.ReportedSizeInBytes, size.EstimatedSizeInBytes, "-")
	for _, sub := range tableSubTypes(size) {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", size.TableName, sub.kind, sub.size.ReportedSizeInBytes, sub.size.EstimatedSizeInBytes, sub.size.MissingSegments)
	}
	_ = tw.Flush()
}

// WriteTableSizeTableWide lists every segment with its size on each server.
func WriteTableSizeTableWide(w io.Writer, size client.TableSize) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "TYPE\tSEGMENT\tSERVER\tREPORTED_BYTES\tESTIMATED_BYTES\tDISK_BYTES")
	for _, sub := range tableSubTypes(size) {
		for _, seg := range sortedKeys(sub.size.Segments) {
			segment := sub.size.Segments[seg]
			if len(segment.ServerInfo) == 0 {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n", sub.kind, seg, "-", segment.ReportedSizeInBytes, segment.EstimatedSizeInBytes, "-")
				continue
			}
			for _, server := range sortedKeys(segment.ServerInfo) {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n", sub.kind, seg, server, segment.ReportedSizeInBytes, segment.EstimatedSizeInBytes, segment.ServerInfo[server].DiskSizeInBytes)
			}
		}
	}
	_ = tw.Flush()
}

type subTypeSize struct {
	kind string
	size *client.TableSubTypeSize
}

func tableSubTypes(size client.TableSize) []subTypeSize {
	var out []subTypeSize
	if size.OfflineSegments != nil {
		out = append(out, subTypeSize{kind: client.TableTypeOffline, size: size.OfflineSegments})
	}
	if size.RealtimeSegments != nil {
		out = append(out, subTypeSize{kind: client.TableTypeRealtime, size: size.RealtimeSegments})
	}
	return out
}

// WriteIdealStateTable prints one row per segment replica, used for ideal
// state, external view and table detail.
func WriteIdealStateTable(w io.Writer, state client.IdealState) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "TYPE\tSEGMENT\tINSTANCE\tSTATE")
	writeAssignment(tw, client.TableTypeOffline, state.Offline)
	writeAssignment(tw, client.TableTypeRealtime, state.Realtime)
	_ = tw.Flush()
}

func writeAssignment(w io.Writer, kind string, assignment client.SegmentAssignment) {
	for _, seg := range sortedKeys(assignment) {
		replicas := assignment[seg]
		for _, inst := range sortedKeys(replicas) {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", kind, seg, inst, replicas[inst])
		}
	}
}

func WriteSchemaTable(w io.Writer, schema client.TableSchema) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "COLUMN\tKIND\tDATA_TYPE\tFORMAT\tPRIMARY_KEY")
	primary := map[string]bool{}
	for _, col := range schema.PrimaryKeyColumns {
		primary[col] = true
	}
	for _, f := range schema.DimensionFieldSpecs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", f.Name, "DIMENSION", f.DataType, "-", primary[f.Name])
	}
	for _, f := range schema.MetricFieldSpecs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", f.Name, "METRIC", f.DataType, "-", primary[f.Name])
	}
	for _, f := range schema.DateTimeFieldSpecs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", f.Name, "DATETIME", f.DataType, f.Format, primary[f.Name])
	}
	_ = tw.Flush()
}

// WriteSQLResultTable prints the result rows followed by any query
// exceptions. The wide variant appends execution statistics.
func WriteSQLResultTable(w io.Writer, result client.SQLResult, wide bool) {
	tw := newTabWriter(w)
	if result.ResultTable != nil {
		columns := make([]string, len(result.ResultTable.DataSchema.ColumnNames))
		for i, name := range result.ResultTable.DataSchema.ColumnNames {
			columns[i] = strings.ToUpper(name)
		}
		_, _ = fmt.Fprintln(tw, strings.Join(columns, "\t"))
		for _, row := range result.ResultTable.Rows {
			cells := make([]string, len(row))
			for i, cell := range row {
				cells[i] = formatValue(cell)
			}
			_, _ = fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
	}
	_ = tw.Flush()
	for _, ex := range result.Exceptions {
		_, _ = fmt.Fprintf(w, "ERROR %d: %s\n", ex.ErrorCode, ex.Message)
	}
	if wide {
		_, _ = fmt.Fprintf(w, "\nservers %d/%d, segments %d/%d matched %d, docs scanned %d of %d, %dms\n",
			result.NumServersResponded, result.NumServersQueried,
			result.NumSegmentsProcessed, result.NumSegmentsQueried, result.NumSegmentsMatched,
			result.NumDocsScanned, result.TotalDocs, result.TimeUsedMs)
	}
}

func WriteZKStatTable(w io.Writer, path string, stat client.ZKStat) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "PATH\tVERSION\tCHILDREN\tDATA_LENGTH\tCREATED\tMODIFIED")
	_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%s\n", path, stat.Version, stat.NumChildren, stat.DataLength, formatMillis(stat.CTime), formatMillis(stat.MTime))
	_ = tw.Flush()
}

func WriteZKListWithStatTable(w io.Writer, entries client.ZKListWithStat) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "NAME\tVERSION\tCHILDREN\tDATA_LENGTH\tMODIFIED")
	for _, name := range sortedKeys(entries) {
		stat := entries[name]
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", name, stat.Version, stat.NumChildren, stat.DataLength, formatMillis(stat.MTime))
	}
	_ = tw.Flush()
}

func sortedKeys[M ~map[K]V, K constraints.Ordered, V any](m M) []K {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}

func formatMillis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ",")
}

func portOrDash(port int) string {
	if port == 0 {
		return "-"
	}
	return strconv.Itoa(port)
}
