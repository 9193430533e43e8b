/*
SPDX-FileCopyrightText: 2025 Deutsche Telekom AG

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"context"
	"net/http"
)

const (
	contentTypeJSONUTF8 = "application/json; charset=UTF-8"
	acceptTextPreferred = "text/plain, */*; q=0.01"
)

var textNegotiationHeaders = map[string]string{
	"Content-Type": contentTypeJSONUTF8,
	"Accept":       acceptTextPreferred,
}

var (
	opListTenants     = Descriptor{Operation: "getTenants", Method: http.MethodGet, Path: "/tenants"}
	opGetTenant       = Descriptor{Operation: "getTenant", Method: http.MethodGet, Path: "/tenants/{name}"}
	opTenantTables    = Descriptor{Operation: "getTenantTable", Method: http.MethodGet, Path: "/tenants/{name}/tables"}
	opTableDetail     = Descriptor{Operation: "getTenantTableDetails", Method: http.MethodGet, Path: "/tables/{tableName}"}
	opSegmentMetadata = Descriptor{Operation: "getSegmentMetadata", Method: http.MethodGet, Path: "/segments/{tableName}/{segmentName}/metadata"}
	opTableSize       = Descriptor{Operation: "getTableSize", Method: http.MethodGet, Path: "/tables/{name}/size"}
	opIdealState      = Descriptor{Operation: "getIdealState", Method: http.MethodGet, Path: "/tables/{name}/idealstate"}
	opExternalView    = Descriptor{Operation: "getExternalView", Method: http.MethodGet, Path: "/tables/{name}/externalview"}
	opListInstances   = Descriptor{Operation: "getInstances", Method: http.MethodGet, Path: "/instances"}
	opGetInstance     = Descriptor{Operation: "getInstance", Method: http.MethodGet, Path: "/instances/{name}"}
	opClusterConfig   = Descriptor{Operation: "getClusterConfig", Method: http.MethodGet, Path: "/cluster/configs"}
	opListTables      = Descriptor{Operation: "getQueryTables", Method: http.MethodGet, Path: "/tables", Query: "type={type}", OptionalQuery: true}
	opTableSchema     = Descriptor{Operation: "getTableSchema", Method: http.MethodGet, Path: "/tables/{name}/schema"}
	opRunQuery        = Descriptor{Operation: "getQueryResult", Method: http.MethodPost, Path: "/{url}", Headers: textNegotiationHeaders, HasBody: true}
	opClusterInfo     = Descriptor{Operation: "getClusterInfo", Method: http.MethodGet, Path: "/cluster/info"}
	opZKList          = Descriptor{Operation: "zookeeperGetList", Method: http.MethodGet, Path: "/zk/ls", Query: "path={path}"}
	opZKData          = Descriptor{Operation: "zookeeperGetData", Method: http.MethodGet, Path: "/zk/get", Query: "path={path}"}
	opZKStat          = Descriptor{Operation: "zookeeperGetStat", Method: http.MethodGet, Path: "/zk/stat", Query: "path={path}"}
	opZKListWithStat  = Descriptor{Operation: "zookeeperGetListWithStat", Method: http.MethodGet, Path: "/zk/lsl", Query: "path={path}"}
	opZKPut           = Descriptor{Operation: "zookeeperPutData", Method: http.MethodPut, Path: "/zk/put", Query: "{rawQuery}", Headers: textNegotiationHeaders}
	opZKDelete        = Descriptor{Operation: "zookeeperDeleteNode", Method: http.MethodDelete, Path: "/zk/delete", Query: "path={path}"}
	opBrokersOfTenant = Descriptor{Operation: "getBrokerListOfTenant", Method: http.MethodGet, Path: "/brokers/tenants/{name}"}
	opServersOfTenant = Descriptor{Operation: "getServerListOfTenant", Method: http.MethodGet, Path: "/tenants/{name}", Query: "type=server"}
)

// Operations returns every descriptor the client knows, in declaration order.
func Operations() []Descriptor {
	return []Descriptor{
		opListTenants,
		opGetTenant,
		opTenantTables,
		opTableDetail,
		opSegmentMetadata,
		opTableSize,
		opIdealState,
		opExternalView,
		opListInstances,
		opGetInstance,
		opClusterConfig,
		opListTables,
		opTableSchema,
		opRunQuery,
		opClusterInfo,
		opZKList,
		opZKData,
		opZKStat,
		opZKListWithStat,
		opZKPut,
		opZKDelete,
		opBrokersOfTenant,
		opServersOfTenant,
	}
}

func (c *Client) Tenants(ctx context.Context) (*Response[Tenants], error) {
	return send[Tenants](ctx, c, opListTenants.Request(nil, nil))
}

func (c *Client) Tenant(ctx context.Context, name string) (*Response[TenantDetail], error) {
	return send[TenantDetail](ctx, c, opGetTenant.Request(Params{"name": name}, nil))
}

func (c *Client) TenantTables(ctx context.Context, name string) (*Response[TableNames], error) {
	return send[TableNames](ctx, c, opTenantTables.Request(Params{"name": name}, nil))
}

// TableDetail returns the table resource, which the controller serves in the
// ideal state shape.
func (c *Client) TableDetail(ctx context.Context, tableName string) (*Response[IdealState], error) {
	return send[IdealState](ctx, c, opTableDetail.Request(Params{"tableName": tableName}, nil))
}

func (c *Client) SegmentMetadata(ctx context.Context, tableName, segmentName string) (*Response[SegmentMetadata], error) {
	params := Params{"tableName": tableName, "segmentName": segmentName}
	return send[SegmentMetadata](ctx, c, opSegmentMetadata.Request(params, nil))
}

func (c *Client) TableSize(ctx context.Context, name string) (*Response[TableSize], error) {
	return send[TableSize](ctx, c, opTableSize.Request(Params{"name": name}, nil))
}

func (c *Client) IdealState(ctx context.Context, name string) (*Response[IdealState], error) {
	return send[IdealState](ctx, c, opIdealState.Request(Params{"name": name}, nil))
}

func (c *Client) ExternalView(ctx context.Context, name string) (*Response[IdealState], error) {
	return send[IdealState](ctx, c, opExternalView.Request(Params{"name": name}, nil))
}

func (c *Client) Instances(ctx context.Context) (*Response[Instances], error) {
	return send[Instances](ctx, c, opListInstances.Request(nil, nil))
}

func (c *Client) Instance(ctx context.Context, name string) (*Response[Instance], error) {
	return send[Instance](ctx, c, opGetInstance.Request(Params{"name": name}, nil))
}

func (c *Client) ClusterConfig(ctx context.Context) (*Response[ClusterConfig], error) {
	return send[ClusterConfig](ctx, c, opClusterConfig.Request(nil, nil))
}

// QueryTables lists tables. The type query parameter is sent only when
// tableType is present. A present empty value is still sent as "type=",
// unlike the controller UI which drops the parameter for an empty type.
func (c *Client) QueryTables(ctx context.Context, tableType Optional[string]) (*Response[QueryTables], error) {
	params := Params{}
	if v, ok := tableType.Get(); ok {
		params["type"] = v
	}
	return send[QueryTables](ctx, c, opListTables.Request(params, nil))
}

func (c *Client) TableSchema(ctx context.Context, name string) (*Response[TableSchema], error) {
	return send[TableSchema](ctx, c, opTableSchema.Request(Params{"name": name}, nil))
}

// QueryResult posts q to the query endpoint selected by url, e.g. "sql".
func (c *Client) QueryResult(ctx context.Context, q SQLQuery, url string) (*Response[SQLResult], error) {
	return RunQuery(ctx, c, q, url)
}

// RunQuery posts an arbitrary JSON-serializable body to the query endpoint
// selected by url.
func RunQuery[B any](ctx context.Context, c *Client, body B, url string) (*Response[SQLResult], error) {
	return send[SQLResult](ctx, c, opRunQuery.Request(Params{"url": url}, body))
}

func (c *Client) ClusterInfo(ctx context.Context) (*Response[ClusterInfo], error) {
	return send[ClusterInfo](ctx, c, opClusterInfo.Request(nil, nil))
}

func (c *Client) ZKList(ctx context.Context, path string) (*Response[ZKList], error) {
	return send[ZKList](ctx, c, opZKList.Request(Params{"path": path}, nil))
}

func (c *Client) ZKData(ctx context.Context, path string) (*Response[ZKData], error) {
	return send[ZKData](ctx, c, opZKData.Request(Params{"path": path}, nil))
}

func (c *Client) ZKStat(ctx context.Context, path string) (*Response[ZKStat], error) {
	return send[ZKStat](ctx, c, opZKStat.Request(Params{"path": path}, nil))
}

func (c *Client) ZKListWithStat(ctx context.Context, path string) (*Response[ZKListWithStat], error) {
	return send[ZKListWithStat](ctx, c, opZKListWithStat.Request(Params{"path": path}, nil))
}

// ZKPutData writes a node. rawQuery is the complete, already encoded query
// string (path, data and optionally expectedVersion) and is sent unchanged.
func (c *Client) ZKPutData(ctx context.Context, rawQuery string) (*Response[ZKOperationResponse], error) {
	return send[ZKOperationResponse](ctx, c, opZKPut.Request(Params{"rawQuery": rawQuery}, nil))
}

func (c *Client) ZKDeleteNode(ctx context.Context, path string) (*Response[ZKOperationResponse], error) {
	return send[ZKOperationResponse](ctx, c, opZKDelete.Request(Params{"path": path}, nil))
}

func (c *Client) BrokersOfTenant(ctx context.Context, name string) (*Response[BrokerList], error) {
	return send[BrokerList](ctx, c, opBrokersOfTenant.Request(Params{"name": name}, nil))
}

// ServersOfTenant reuses the tenant detail path with a type=server discriminator.
func (c *Client) ServersOfTenant(ctx context.Context, name string) (*Response[ServerList], error) {
	return send[ServerList](ctx, c, opServersOfTenant.Request(Params{"name": name}, nil))
}
