/*
SPDX-FileCopyrightText: 2025 Deutsche Telekom AG

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"encoding/json"
)

// Table types accepted by the table list filter.
const (
	TableTypeOffline  = "OFFLINE"
	TableTypeRealtime = "REALTIME"
)

type Tenants struct {
	ServerTenants []string `json:"SERVER_TENANTS"`
	BrokerTenants []string `json:"BROKER_TENANTS"`
}

type TenantDetail struct {
	TenantName      string   `json:"tenantName"`
	ServerInstances []string `json:"ServerInstances,omitempty"`
	BrokerInstances []string `json:"BrokerInstances,omitempty"`
}

type TableNames struct {
	Tables []string `json:"tables"`
}

// SegmentAssignment maps segment name to instance name to segment state.
type SegmentAssignment map[string]map[string]string

// IdealState is shared by ideal state, external view and table detail responses.
type IdealState struct {
	Offline  SegmentAssignment `json:"OFFLINE"`
	Realtime SegmentAssignment `json:"REALTIME"`
}

// SegmentMetadata is returned as a loosely typed document; keys depend on the
// segment format version.
type SegmentMetadata map[string]any

type TableSize struct {
	TableName            string            `json:"tableName"`
	ReportedSizeInBytes  int64             `json:"reportedSizeInBytes"`
	EstimatedSizeInBytes int64             `json:"estimatedSizeInBytes"`
	OfflineSegments      *TableSubTypeSize `json:"offlineSegments,omitempty"`
	RealtimeSegments     *TableSubTypeSize `json:"realtimeSegments,omitempty"`
}

type TableSubTypeSize struct {
	ReportedSizeInBytes  int64                  `json:"reportedSizeInBytes"`
	EstimatedSizeInBytes int64                  `json:"estimatedSizeInBytes"`
	MissingSegments      int                    `json:"missingSegments"`
	Segments             map[string]SegmentSize `json:"segments,omitempty"`
}

type SegmentSize struct {
	ReportedSizeInBytes  int64                        `json:"reportedSizeInBytes"`
	EstimatedSizeInBytes int64                        `json:"estimatedSizeInBytes"`
	ServerInfo           map[string]ServerSegmentSize `json:"serverInfo,omitempty"`
}

type ServerSegmentSize struct {
	SegmentName     string `json:"segmentName"`
	DiskSizeInBytes int64  `json:"diskSizeInBytes"`
}

type Instances struct {
	Instances []string `json:"instances"`
}

type Instance struct {
	InstanceName       string            `json:"instanceName"`
	HostName           string            `json:"hostName"`
	Enabled            bool              `json:"enabled"`
	Port               string            `json:"port"`
	Tags               []string          `json:"tags"`
	Pools              map[string]string `json:"pools,omitempty"`
	GRPCPort           int               `json:"grpcPort,omitempty"`
	AdminPort          int               `json:"adminPort,omitempty"`
	QueryServicePort   int               `json:"queryServicePort,omitempty"`
	QueryMailboxPort   int               `json:"queryMailboxPort,omitempty"`
	SystemResourceInfo map[string]string `json:"systemResourceInfo,omitempty"`
}

// ClusterConfig is the flat key/value cluster configuration.
type ClusterConfig map[string]string

type QueryTables struct {
	Tables []string `json:"tables"`
}

type TableSchema struct {
	SchemaName          string              `json:"schemaName"`
	DimensionFieldSpecs []FieldSpec         `json:"dimensionFieldSpecs,omitempty"`
	MetricFieldSpecs    []FieldSpec         `json:"metricFieldSpecs,omitempty"`
	DateTimeFieldSpecs  []DateTimeFieldSpec `json:"dateTimeFieldSpecs,omitempty"`
	PrimaryKeyColumns   []string            `json:"primaryKeyColumns,omitempty"`
}

type FieldSpec struct {
	Name             string `json:"name"`
	DataType         string `json:"dataType"`
	SingleValueField *bool  `json:"singleValueField,omitempty"`
	DefaultNullValue any    `json:"defaultNullValue,omitempty"`
}

type DateTimeFieldSpec struct {
	Name        string `json:"name"`
	DataType    string `json:"dataType"`
	Format      string `json:"format"`
	Granularity string `json:"granularity"`
}

// SQLQuery is the request body accepted by the query endpoints.
type SQLQuery struct {
	SQL          string `json:"sql"`
	Trace        bool   `json:"trace,omitempty"`
	QueryOptions string `json:"queryOptions,omitempty"`
}

type SQLResult struct {
	ResultTable                 *ResultTable     `json:"resultTable,omitempty"`
	Exceptions                  []QueryException `json:"exceptions"`
	NumServersQueried           int              `json:"numServersQueried"`
	NumServersResponded         int              `json:"numServersResponded"`
	NumSegmentsQueried          int64            `json:"numSegmentsQueried"`
	NumSegmentsProcessed        int64            `json:"numSegmentsProcessed"`
	NumSegmentsMatched          int64            `json:"numSegmentsMatched"`
	NumDocsScanned              int64            `json:"numDocsScanned"`
	NumEntriesScannedInFilter   int64            `json:"numEntriesScannedInFilter"`
	NumEntriesScannedPostFilter int64            `json:"numEntriesScannedPostFilter"`
	TotalDocs                   int64            `json:"totalDocs"`
	TimeUsedMs                  int64            `json:"timeUsedMs"`
	MinConsumingFreshnessTimeMs int64            `json:"minConsumingFreshnessTimeMs,omitempty"`
	NumGroupsLimitReached       bool             `json:"numGroupsLimitReached"`
	TraceInfo                   map[string]any   `json:"traceInfo,omitempty"`
}

type ResultTable struct {
	DataSchema DataSchema `json:"dataSchema"`
	Rows       [][]any    `json:"rows"`
}

type DataSchema struct {
	ColumnNames     []string `json:"columnNames"`
	ColumnDataTypes []string `json:"columnDataTypes"`
}

type QueryException struct {
	ErrorCode int    `json:"errorCode"`
	Message   string `json:"message"`
}

type ClusterInfo struct {
	ClusterName string `json:"clusterName"`
}

// ZKList holds the child node names of a coordination-service path.
type ZKList []string

// ZKData is the raw content of a coordination-service node. The controller
// serves it as text, which is usually but not always JSON.
type ZKData []byte

func (d *ZKData) UnmarshalText(text []byte) error {
	*d = append((*d)[:0], text...)
	return nil
}

// MarshalJSON embeds valid JSON content as-is and quotes anything else.
func (d ZKData) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	if json.Valid(d) {
		return []byte(d), nil
	}
	return json.Marshal(string(d))
}

func (d ZKData) String() string {
	return string(d)
}

type ZKStat struct {
	Version        int   `json:"version"`
	AVersion       int   `json:"aversion"`
	CVersion       int   `json:"cversion"`
	CTime          int64 `json:"ctime"`
	MTime          int64 `json:"mtime"`
	CZxid          int64 `json:"czxid"`
	MZxid          int64 `json:"mzxid"`
	PZxid          int64 `json:"pzxid"`
	EphemeralOwner int64 `json:"ephemeralOwner"`
	DataLength     int   `json:"dataLength"`
	NumChildren    int   `json:"numChildren"`
}

// ZKListWithStat maps each child node name to its stat.
type ZKListWithStat map[string]ZKStat

type ZKOperationResponse struct {
	Status string `json:"status"`
}

// BrokerList holds the broker instance names of a tenant.
type BrokerList []string

type ServerList struct {
	TenantName      string   `json:"tenantName"`
	ServerInstances []string `json:"ServerInstances"`
}
