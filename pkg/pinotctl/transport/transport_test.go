/*
SPDX-FileCopyrightText: 2025 Deutsche Telekom AG

SPDX-License-Identifier: Apache-2.0
*/

package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/telekom/pinotctl/pkg/metrics"
	"github.com/telekom/pinotctl/pkg/pinotctl/client"
	"github.com/telekom/pinotctl/pkg/system"
)

const mockBase = "http://controller.test:9000"

func newMockedTransport(t *testing.T, opts ...Option) *Transport {
	t.Helper()
	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)

	all := append([]Option{WithServer(mockBase), WithHTTPClient(hc)}, opts...)
	tr, err := New(all...)
	require.NoError(t, err)
	return tr
}

func TestNewTransport(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{name: "missing server", opts: []Option{}, wantErr: true},
		{name: "empty server", opts: []Option{WithServer("")}, wantErr: true},
		{name: "bad scheme", opts: []Option{WithServer("ftp://controller")}, wantErr: true},
		{name: "valid", opts: []Option{WithServer("https://controller.example.com"), WithToken("t")}},
		{name: "basic auth", opts: []Option{WithServer("http://localhost:9000"), WithBasicAuth("admin", "secret")}},
		{name: "basic auth without user", opts: []Option{WithServer("http://localhost:9000"), WithBasicAuth("", "secret")}, wantErr: true},
		{name: "token and basic", opts: []Option{WithServer("http://localhost:9000"), WithToken("t"), WithBasicAuth("a", "b")}, wantErr: true},
		{name: "zero timeout", opts: []Option{WithServer("http://localhost:9000"), WithTimeout(0)}, wantErr: true},
		{name: "negative rate", opts: []Option{WithServer("http://localhost:9000"), WithRateLimit(-1, 1)}, wantErr: true},
		{name: "missing ca file", opts: []Option{WithServer("https://localhost:9000"), WithTLSConfig("/nonexistent/ca.pem", false)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := New(tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, tr)
			} else {
				require.NoError(t, err)
				require.NotNil(t, tr)
			}
		})
	}
}

func TestTLSConfigRejectsInvalidCA(t *testing.T) {
	caFile := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(caFile, []byte("not a certificate"), 0o600))

	_, err := loadTLSConfig(caFile, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse CA file")

	cfg, err := loadTLSConfig("", true)
	require.NoError(t, err)
	assert.True(t, cfg.InsecureSkipVerify)
}

func TestDoHeadersAndAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tenants/tenant1", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		require.Equal(t, "console", r.Header.Get("X-Origin"))
		require.NotEmpty(t, r.Header.Get(system.RequestIDHeader))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"tenantName": "tenant1"})
	}))
	defer server.Close()

	tr, err := New(
		WithServer(server.URL+"/api/"),
		WithToken("test-token"),
		WithUserAgent("test-agent"),
		WithHeader("X-Origin", "console"),
	)
	require.NoError(t, err)

	c, err := client.New(tr)
	require.NoError(t, err)
	resp, err := c.Tenant(context.Background(), "tenant1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "tenant1", resp.Data.TenantName)
}

func TestDoBasicAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "admin", user)
		require.Equal(t, "verysecret", pass)
		_, _ = w.Write([]byte(`{"clusterName":"PinotCluster"}`))
	}))
	defer server.Close()

	tr, err := New(WithServer(server.URL), WithBasicAuth("admin", "verysecret"))
	require.NoError(t, err)
	c, err := client.New(tr)
	require.NoError(t, err)

	resp, err := c.ClusterInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "PinotCluster", resp.Data.ClusterName)
}

func TestDoTokenSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer from-source", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"instances":["Broker_a_8099"]}`))
	}))
	defer server.Close()

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "from-source", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour)})
	tr, err := New(WithServer(server.URL), WithTokenSource(ts))
	require.NoError(t, err)
	c, err := client.New(tr)
	require.NoError(t, err)

	resp, err := c.Instances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Broker_a_8099"}, resp.Data.Instances)
}

func TestDoQueryRequestShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/sql", r.URL.Path)
		require.Equal(t, "application/json; charset=UTF-8", r.Header.Get("Content-Type"))
		require.Equal(t, "text/plain, */*; q=0.01", r.Header.Get("Accept"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"sql":"select 1"}`, string(body))

		_, _ = w.Write([]byte(`{"resultTable":{"dataSchema":{"columnNames":["1"],"columnDataTypes":["LONG"]},"rows":[[1]]},"exceptions":[],"timeUsedMs":3}`))
	}))
	defer server.Close()

	tr, err := New(WithServer(server.URL))
	require.NoError(t, err)
	c, err := client.New(tr)
	require.NoError(t, err)

	resp, err := c.QueryResult(context.Background(), client.SQLQuery{SQL: "select 1"}, "sql")
	require.NoError(t, err)
	require.NotNil(t, resp.Data.ResultTable)
	assert.Equal(t, []string{"1"}, resp.Data.ResultTable.DataSchema.ColumnNames)
	assert.Equal(t, int64(3), resp.Data.TimeUsedMs)
}

func TestDoZKPutSendsNoBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/zk/put", r.URL.Path)
		require.Equal(t, "path=/a&data=b", r.URL.RawQuery)
		require.Equal(t, "application/json; charset=UTF-8", r.Header.Get("Content-Type"))
		require.Equal(t, "text/plain, */*; q=0.01", r.Header.Get("Accept"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Empty(t, body)
		_, _ = w.Write([]byte(`{"status":"Successfully updated path: /a"}`))
	}))
	defer server.Close()

	tr, err := New(WithServer(server.URL))
	require.NoError(t, err)
	c, err := client.New(tr)
	require.NoError(t, err)

	resp, err := c.ZKPutData(context.Background(), "path=/a&data=b")
	require.NoError(t, err)
	assert.Equal(t, "Successfully updated path: /a", resp.Data.Status)
}

func TestDoHTTPError(t *testing.T) {
	tr := newMockedTransport(t)
	httpmock.RegisterResponder(http.MethodGet, mockBase+"/tenants/missing",
		httpmock.NewStringResponder(http.StatusNotFound, `{"code":404,"error":"Tenant missing not found"}`))

	c, err := client.New(tr)
	require.NoError(t, err)

	resp, err := c.Tenant(context.Background(), "missing")
	require.Nil(t, resp)
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "Tenant missing not found", httpErr.Message)
	assert.Contains(t, string(httpErr.Body), `"code":404`)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "request failed (404): Tenant missing not found", err.Error())
}

func TestDoHTTPErrorPlainBody(t *testing.T) {
	tr := newMockedTransport(t)
	httpmock.RegisterResponder(http.MethodDelete, "=~^"+mockBase+"/zk/delete",
		httpmock.NewStringResponder(http.StatusInternalServerError, "zk unavailable"))

	c, err := client.New(tr)
	require.NoError(t, err)

	_, err = c.ZKDeleteNode(context.Background(), "/a")
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "zk unavailable", httpErr.Message)
	assert.False(t, IsNotFound(err))
}

func TestDoNoRetries(t *testing.T) {
	tr := newMockedTransport(t)
	httpmock.RegisterResponder(http.MethodGet, mockBase+"/instances",
		httpmock.NewStringResponder(http.StatusServiceUnavailable, ""))

	c, err := client.New(tr)
	require.NoError(t, err)

	_, err = c.Instances(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestDoNetworkErrorPropagates(t *testing.T) {
	tr := newMockedTransport(t)
	sentinel := errors.New("connection reset")
	httpmock.RegisterResponder(http.MethodGet, mockBase+"/cluster/configs", httpmock.NewErrorResponder(sentinel))

	c, err := client.New(tr)
	require.NoError(t, err)

	_, err = c.ClusterConfig(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}

func TestDoRawQueryPassedThrough(t *testing.T) {
	tr := newMockedTransport(t)
	var gotQuery string
	httpmock.RegisterResponder(http.MethodGet, "=~^"+mockBase+"/zk/ls",
		func(req *http.Request) (*http.Response, error) {
			gotQuery = req.URL.RawQuery
			return httpmock.NewStringResponse(http.StatusOK, `["CONFIGS","IDEALSTATES"]`), nil
		})

	c, err := client.New(tr)
	require.NoError(t, err)

	resp, err := c.ZKList(context.Background(), "/PinotCluster")
	require.NoError(t, err)
	assert.Equal(t, "path=/PinotCluster", gotQuery)
	assert.Equal(t, client.ZKList{"CONFIGS", "IDEALSTATES"}, resp.Data)
}

func TestDoRecordsMetrics(t *testing.T) {
	tr := newMockedTransport(t)
	httpmock.RegisterResponder(http.MethodGet, mockBase+"/cluster/info",
		httpmock.NewStringResponder(http.StatusOK, `{"clusterName":"c"}`))

	before := testutil.ToFloat64(metrics.ClientRequests.WithLabelValues("getClusterInfo", http.MethodGet, "200"))

	c, err := client.New(tr)
	require.NoError(t, err)
	_, err = c.ClusterInfo(context.Background())
	require.NoError(t, err)

	after := testutil.ToFloat64(metrics.ClientRequests.WithLabelValues("getClusterInfo", http.MethodGet, "200"))
	assert.Equal(t, before+1, after)
}

func TestDoLogsAtDebug(t *testing.T) {
	logger, logs := system.NewObservedLogger(zap.DebugLevel)
	tr := newMockedTransport(t, WithLogger(logger))
	httpmock.RegisterResponder(http.MethodGet, mockBase+"/tables",
		httpmock.NewStringResponder(http.StatusOK, `{"tables":["airlineStats"]}`))

	c, err := client.New(tr)
	require.NoError(t, err)
	_, err = c.QueryTables(context.Background(), client.None[string]())
	require.NoError(t, err)

	entries := logs.FilterMessage("Controller response received").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "getQueryTables", fields["operation"])
	assert.Equal(t, "/tables", fields["url"])
	assert.EqualValues(t, 200, fields["status"])
	assert.NotEmpty(t, fields["requestID"])
}

func TestDoRateLimitHonorsContext(t *testing.T) {
	tr := newMockedTransport(t, WithRateLimit(0.001, 1))
	httpmock.RegisterResponder(http.MethodGet, mockBase+"/tenants",
		httpmock.NewStringResponder(http.StatusOK, `{}`))

	c, err := client.New(tr)
	require.NoError(t, err)

	_, err = c.Tenants(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Tenants(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestDoCallerRequestIDWins(t *testing.T) {
	tr := newMockedTransport(t)
	var got string
	httpmock.RegisterResponder(http.MethodGet, mockBase+"/tenants",
		func(req *http.Request) (*http.Response, error) {
			got = req.Header.Get(system.RequestIDHeader)
			return httpmock.NewStringResponse(http.StatusOK, `{}`), nil
		})

	req := &client.Request{Operation: "getTenants", Method: http.MethodGet, Path: "/tenants", Header: http.Header{}}
	req.Header.Set(system.RequestIDHeader, "fixed-id")
	_, err := tr.Do(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", got)
}
