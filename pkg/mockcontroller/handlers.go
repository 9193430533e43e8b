package mockcontroller

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/telekom/pinotctl/pkg/apiresponses"
	"github.com/telekom/pinotctl/pkg/metrics"
	"github.com/telekom/pinotctl/pkg/pinotctl/client"
	"github.com/telekom/pinotctl/pkg/system"
)

// Query error codes as reported in SQL result exceptions.
const (
	queryErrorSQLParsing = 150
	queryErrorNoTable    = 190
)

func (s *Server) registerRoutes() {
	r := s.gin
	r.GET("/tenants", s.listTenants)
	r.GET("/tenants/:name", s.getTenant)
	r.GET("/tenants/:name/tables", s.tenantTables)
	r.GET("/brokers/tenants/:name", s.tenantBrokers)

	r.GET("/tables", s.listTables)
	r.GET("/tables/:name", s.tableDetail)
	r.GET("/tables/:name/size", s.tableSize)
	r.GET("/tables/:name/idealstate", s.idealState)
	r.GET("/tables/:name/externalview", s.externalView)
	r.GET("/tables/:name/schema", s.tableSchema)
	r.GET("/segments/:name/:segment/metadata", s.segmentMetadata)

	r.GET("/instances", s.listInstances)
	r.GET("/instances/:name", s.getInstance)

	r.GET("/cluster/configs", s.clusterConfig)
	r.GET("/cluster/info", s.clusterInfo)

	r.POST("/sql", s.runQuery)
	r.POST("/query/sql", s.runQuery)

	r.GET("/zk/ls", s.zkList)
	r.GET("/zk/get", s.zkGet)
	r.GET("/zk/stat", s.zkStatHandler)
	r.GET("/zk/lsl", s.zkListWithStat)
	r.PUT("/zk/put", s.zkPutHandler)
	r.DELETE("/zk/delete", s.zkDeleteHandler)
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) listTenants(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := client.Tenants{ServerTenants: []string{}, BrokerTenants: []string{}}
	for _, name := range sortedNames(s.fixtures.Tenants) {
		t := s.fixtures.Tenants[name]
		if len(t.Servers) > 0 {
			out.ServerTenants = append(out.ServerTenants, name)
		}
		if len(t.Brokers) > 0 {
			out.BrokerTenants = append(out.BrokerTenants, name)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) lookupTenant(c *gin.Context) (Tenant, bool) {
	name := c.Param("name")
	t, ok := s.fixtures.Tenants[name]
	if !ok {
		apiresponses.RespondNotFound(c, "tenant", name)
	}
	return t, ok
}

// getTenant serves tenant detail, or a single role list when the type query
// parameter is server or broker.
func (s *Server) getTenant(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.lookupTenant(c)
	if !ok {
		return
	}
	name := c.Param("name")
	switch strings.ToLower(c.Query("type")) {
	case "server":
		c.JSON(http.StatusOK, client.ServerList{TenantName: name, ServerInstances: nonNil(t.Servers)})
	case "broker":
		c.JSON(http.StatusOK, client.TenantDetail{TenantName: name, BrokerInstances: nonNil(t.Brokers)})
	case "":
		c.JSON(http.StatusOK, client.TenantDetail{TenantName: name, ServerInstances: t.Servers, BrokerInstances: t.Brokers})
	default:
		apiresponses.RespondBadRequest(c, "invalid tenant type "+c.Query("type"))
	}
}

func (s *Server) tenantTables(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.lookupTenant(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, client.TableNames{Tables: nonNil(t.Tables)})
}

func (s *Server) tenantBrokers(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.lookupTenant(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, client.BrokerList(nonNil(t.Brokers)))
}

func (s *Server) listTables(c *gin.Context) {
	filter := strings.ToUpper(c.Query("type"))
	if filter != "" && filter != client.TableTypeOffline && filter != client.TableTypeRealtime {
		apiresponses.RespondBadRequest(c, "invalid table type "+c.Query("type"))
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	tables := []string{}
	for _, name := range sortedNames(s.fixtures.Tables) {
		if filter == "" || s.fixtures.Tables[name].Type == filter {
			tables = append(tables, name)
		}
	}
	c.JSON(http.StatusOK, client.QueryTables{Tables: tables})
}

// lookupTable accepts raw names and names carrying a type suffix.
func (s *Server) lookupTable(c *gin.Context) (Table, bool) {
	name := c.Param("name")
	raw := strings.TrimSuffix(strings.TrimSuffix(name, "_"+client.TableTypeOffline), "_"+client.TableTypeRealtime)
	t, ok := s.fixtures.Tables[raw]
	if !ok {
		apiresponses.RespondNotFound(c, "table", name)
	}
	return t, ok
}

func (s *Server) tableDetail(c *gin.Context) {
	s.serveTable(c, func(t Table) any { return t.IdealState })
}

func (s *Server) idealState(c *gin.Context) {
	s.serveTable(c, func(t Table) any { return t.IdealState })
}

func (s *Server) externalView(c *gin.Context) {
	s.serveTable(c, func(t Table) any { return t.ExternalView })
}

func (s *Server) tableSize(c *gin.Context) {
	s.serveTable(c, func(t Table) any { return t.Size })
}

func (s *Server) tableSchema(c *gin.Context) {
	s.serveTable(c, func(t Table) any { return t.Schema })
}

func (s *Server) serveTable(c *gin.Context, pick func(Table) any) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.lookupTable(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, pick(t))
}

func (s *Server) segmentMetadata(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.lookupTable(c)
	if !ok {
		return
	}
	segment := c.Param("segment")
	md, ok := t.Segments[segment]
	if !ok {
		system.GetReqLogger(c, s.log.Sugar()).Debugw("Segment not found", system.ResourceFields("segment", segment, c.Param("name"))...)
		apiresponses.RespondNotFound(c, "segment", segment)
		return
	}
	c.JSON(http.StatusOK, md)
}

func (s *Server) listInstances(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c.JSON(http.StatusOK, client.Instances{Instances: sortedNames(s.fixtures.Instances)})
}

func (s *Server) getInstance(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name := c.Param("name")
	inst, ok := s.fixtures.Instances[name]
	if !ok {
		apiresponses.RespondNotFound(c, "instance", name)
		return
	}
	c.JSON(http.StatusOK, inst)
}

func (s *Server) clusterConfig(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg := s.fixtures.ClusterConfig
	if cfg == nil {
		cfg = client.ClusterConfig{}
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) clusterInfo(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c.JSON(http.StatusOK, client.ClusterInfo{ClusterName: s.fixtures.ClusterName})
}

func normalizeSQL(sql string) string {
	return strings.ToLower(strings.TrimSuffix(strings.TrimSpace(sql), ";"))
}

// runQuery answers with the canned result for the statement. Unknown
// statements produce a result carrying an exception, as the broker does.
func (s *Server) runQuery(c *gin.Context) {
	var q client.SQLQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		apiresponses.RespondBadRequest(c, "invalid query body: "+err.Error())
		return
	}
	if strings.TrimSpace(q.SQL) == "" {
		apiresponses.RespondBadRequest(c, "sql is required")
		return
	}
	log := system.GetReqLogger(c, s.log.Sugar())
	log.Debugw("Running query", "sql", q.SQL, "trace", q.Trace)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for stmt, result := range s.fixtures.Queries {
		if normalizeSQL(stmt) == normalizeSQL(q.SQL) {
			c.JSON(http.StatusOK, result)
			return
		}
	}
	code, msg := queryErrorSQLParsing, "SQLParsingError: no result registered for query"
	if table := queryTable(q.SQL); table != "" {
		if _, ok := s.fixtures.Tables[table]; !ok {
			code, msg = queryErrorNoTable, "TableDoesNotExistError: "+table
		}
	}
	c.JSON(http.StatusOK, client.SQLResult{Exceptions: []client.QueryException{{ErrorCode: code, Message: msg}}})
}

// queryTable returns the identifier following the first FROM keyword.
func queryTable(sql string) string {
	fields := strings.Fields(sql)
	for i, f := range fields {
		if strings.EqualFold(f, "from") && i+1 < len(fields) {
			return strings.Trim(fields[i+1], `";`)
		}
	}
	return ""
}

func (s *Server) zkPath(c *gin.Context) (string, bool) {
	p, err := cleanZKPath(c.Query("path"))
	if err != nil {
		apiresponses.RespondBadRequest(c, err.Error())
		return "", false
	}
	return p, true
}

func (s *Server) zkExisting(c *gin.Context) (string, bool) {
	p, ok := s.zkPath(c)
	if !ok {
		return "", false
	}
	if !s.fixtures.zkExists(p) {
		apiresponses.RespondNotFound(c, "path", p)
		return "", false
	}
	return p, true
}

func (s *Server) zkList(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.zkExisting(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, client.ZKList(nonNil(s.fixtures.zkChildren(p))))
}

// zkGet serves node content as text, matching the controller.
func (s *Server) zkGet(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.zkExisting(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(s.fixtures.ZK[p].Data))
}

func (s *Server) zkStatHandler(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.zkExisting(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.fixtures.zkStat(p))
}

func (s *Server) zkListWithStat(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.zkExisting(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.fixtures.zkListWithStat(p))
}

// zkPutHandler reads path, data and expectedVersion from the query string.
// The request body is ignored.
func (s *Server) zkPutHandler(c *gin.Context) {
	p, ok := s.zkPath(c)
	if !ok {
		return
	}
	if p == "/" {
		apiresponses.RespondBadRequest(c, "cannot write the root node")
		return
	}
	expected := -1
	if v := c.Query("expectedVersion"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			apiresponses.RespondBadRequest(c, "invalid expectedVersion "+v)
			return
		}
		expected = n
	}

	s.mu.Lock()
	err := s.fixtures.zkPut(p, c.Query("data"), expected, s.now())
	s.mu.Unlock()
	if errors.Is(err, errVersionMismatch) {
		apiresponses.RespondConflict(c, err.Error())
		return
	}
	if err != nil {
		apiresponses.RespondInternalError(c, "update path", err, system.GetReqLogger(c, s.log.Sugar()))
		return
	}
	metrics.MockControllerZKWrites.WithLabelValues("put").Inc()
	system.GetReqLogger(c, s.log.Sugar()).Infow("Updated node", system.ResourceFields("zknode", p, "")...)
	apiresponses.RespondStatus(c, "Successfully updated path: "+p)
}

func (s *Server) zkDeleteHandler(c *gin.Context) {
	p, ok := s.zkPath(c)
	if !ok {
		return
	}
	if p == "/" {
		apiresponses.RespondBadRequest(c, "cannot delete the root node")
		return
	}
	s.mu.Lock()
	err := s.fixtures.zkDelete(p)
	s.mu.Unlock()
	if errors.Is(err, errNodeNotFound) {
		apiresponses.RespondNotFound(c, "path", p)
		return
	}
	metrics.MockControllerZKWrites.WithLabelValues("delete").Inc()
	system.GetReqLogger(c, s.log.Sugar()).Infow("Deleted node", system.ResourceFields("zknode", p, "")...)
	apiresponses.RespondStatus(c, "Successfully deleted path: "+p)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
