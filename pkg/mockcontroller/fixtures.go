/*
SPDX-FileCopyrightText: 2025 Deutsche Telekom AG

SPDX-License-Identifier: Apache-2.0
*/

package mockcontroller

import (
	"fmt"
	"os"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/telekom/pinotctl/pkg/pinotctl/client"
)

// Fixtures is the cluster state served by the mock controller. It is loaded
// from YAML or JSON using the controller's JSON field names.
type Fixtures struct {
	ClusterName   string                      `json:"clusterName"`
	ClusterConfig client.ClusterConfig        `json:"clusterConfig,omitempty"`
	Tenants       map[string]Tenant           `json:"tenants,omitempty"`
	Instances     map[string]client.Instance  `json:"instances,omitempty"`
	Tables        map[string]Table            `json:"tables,omitempty"`
	Queries       map[string]client.SQLResult `json:"queries,omitempty"`
	ZK            map[string]ZKNode           `json:"zk,omitempty"`
}

type Tenant struct {
	Servers []string `json:"servers,omitempty"`
	Brokers []string `json:"brokers,omitempty"`
	Tables  []string `json:"tables,omitempty"`
}

type Table struct {
	Type         string                            `json:"type"`
	IdealState   client.IdealState                 `json:"idealState"`
	ExternalView client.IdealState                 `json:"externalView"`
	Size         client.TableSize                  `json:"size"`
	Schema       client.TableSchema                `json:"schema"`
	Segments     map[string]client.SegmentMetadata `json:"segments,omitempty"`
}

type ZKNode struct {
	Data string        `json:"data"`
	Stat client.ZKStat `json:"stat"`
}

func LoadFixtures(path string) (*Fixtures, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f Fixtures
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Fixtures) Validate() error {
	for name, table := range f.Tables {
		switch table.Type {
		case client.TableTypeOffline, client.TableTypeRealtime:
		default:
			return fmt.Errorf("table %s has invalid type %q", name, table.Type)
		}
	}
	for path := range f.ZK {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("zk path %q must be absolute", path)
		}
	}
	return nil
}

// DefaultFixtures returns a small two-table cluster.
func DefaultFixtures() *Fixtures {
	offlineAssignment := client.SegmentAssignment{
		"airlineStats_OFFLINE_0": {"Server_pinot-server-0_8098": "ONLINE"},
		"airlineStats_OFFLINE_1": {"Server_pinot-server-0_8098": "ONLINE"},
	}
	realtimeAssignment := client.SegmentAssignment{
		"events__0__0__20250101T0000Z": {"Server_pinot-server-0_8098": "CONSUMING"},
	}
	single := true
	return &Fixtures{
		ClusterName: "PinotCluster",
		ClusterConfig: client.ClusterConfig{
			"allowParticipantAutoJoin":                 "true",
			"enable.case.insensitive":                  "true",
			"pinot.broker.enable.query.limit.override": "false",
		},
		Tenants: map[string]Tenant{
			"DefaultTenant": {
				Servers: []string{"Server_pinot-server-0_8098"},
				Brokers: []string{"Broker_pinot-broker-0_8099"},
				Tables:  []string{"airlineStats_OFFLINE", "events_REALTIME"},
			},
		},
		Instances: map[string]client.Instance{
			"Controller_pinot-controller-0_9000": {InstanceName: "Controller_pinot-controller-0_9000", HostName: "pinot-controller-0", Port: "9000", Enabled: true, Tags: []string{"controller"}},
			"Broker_pinot-broker-0_8099":         {InstanceName: "Broker_pinot-broker-0_8099", HostName: "pinot-broker-0", Port: "8099", Enabled: true, Tags: []string{"DefaultTenant_BROKER"}},
			"Server_pinot-server-0_8098": {
				InstanceName: "Server_pinot-server-0_8098",
				HostName:     "pinot-server-0",
				Port:         "8098",
				Enabled:      true,
				Tags:         []string{"DefaultTenant_OFFLINE", "DefaultTenant_REALTIME"},
				GRPCPort:     8090,
				AdminPort:    8097,
			},
		},
		Tables: map[string]Table{
			"airlineStats": {
				Type:         client.TableTypeOffline,
				IdealState:   client.IdealState{Offline: offlineAssignment},
				ExternalView: client.IdealState{Offline: offlineAssignment},
				Size: client.TableSize{
					TableName:            "airlineStats",
					ReportedSizeInBytes:  2048,
					EstimatedSizeInBytes: 2048,
					OfflineSegments: &client.TableSubTypeSize{
						ReportedSizeInBytes:  2048,
						EstimatedSizeInBytes: 2048,
						Segments: map[string]client.SegmentSize{
							"airlineStats_OFFLINE_0": {ReportedSizeInBytes: 1024, EstimatedSizeInBytes: 1024},
							"airlineStats_OFFLINE_1": {ReportedSizeInBytes: 1024, EstimatedSizeInBytes: 1024},
						},
					},
				},
				Schema: client.TableSchema{
					SchemaName:          "airlineStats",
					DimensionFieldSpecs: []client.FieldSpec{{Name: "Carrier", DataType: "STRING", SingleValueField: &single}},
					MetricFieldSpecs:    []client.FieldSpec{{Name: "ArrDelay", DataType: "INT"}},
					DateTimeFieldSpecs:  []client.DateTimeFieldSpec{{Name: "DaysSinceEpoch", DataType: "INT", Format: "1:DAYS:EPOCH", Granularity: "1:DAYS"}},
				},
				Segments: map[string]client.SegmentMetadata{
					"airlineStats_OFFLINE_0": {"segment.name": "airlineStats_OFFLINE_0", "segment.total.docs": 9746},
					"airlineStats_OFFLINE_1": {"segment.name": "airlineStats_OFFLINE_1", "segment.total.docs": 9812},
				},
			},
			"events": {
				Type:         client.TableTypeRealtime,
				IdealState:   client.IdealState{Realtime: realtimeAssignment},
				ExternalView: client.IdealState{Realtime: realtimeAssignment},
				Size: client.TableSize{
					TableName:        "events",
					RealtimeSegments: &client.TableSubTypeSize{},
				},
				Schema: client.TableSchema{
					SchemaName:          "events",
					DimensionFieldSpecs: []client.FieldSpec{{Name: "id", DataType: "STRING"}},
					DateTimeFieldSpecs:  []client.DateTimeFieldSpec{{Name: "ts", DataType: "TIMESTAMP", Format: "1:MILLISECONDS:EPOCH", Granularity: "1:MILLISECONDS"}},
					PrimaryKeyColumns:   []string{"id"},
				},
			},
		},
		Queries: map[string]client.SQLResult{
			"select count(*) from airlineStats": {
				ResultTable: &client.ResultTable{
					DataSchema: client.DataSchema{ColumnNames: []string{"count(*)"}, ColumnDataTypes: []string{"LONG"}},
					Rows:       [][]any{{19558}},
				},
				Exceptions:          []client.QueryException{},
				NumServersQueried:   1,
				NumServersResponded: 1,
				TotalDocs:           19558,
				TimeUsedMs:          3,
			},
		},
		ZK: map[string]ZKNode{
			"/PinotCluster":                 {},
			"/PinotCluster/CONFIGS":         {},
			"/PinotCluster/CONFIGS/CLUSTER": {},
			"/PinotCluster/CONFIGS/CLUSTER/PinotCluster": {
				Data: `{"id":"PinotCluster","simpleFields":{"allowParticipantAutoJoin":"true"}}`,
				Stat: client.ZKStat{Version: 1, CTime: 1735689600000, MTime: 1735689600000},
			},
			"/PinotCluster/PROPERTYSTORE": {},
		},
	}
}
