/*
SPDX-FileCopyrightText: 2025 Deutsche Telekom AG

SPDX-License-Identifier: Apache-2.0
*/

package mockcontroller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/telekom/pinotctl/pkg/apiresponses"
	"github.com/telekom/pinotctl/pkg/metrics"
	"github.com/telekom/pinotctl/pkg/ratelimit"
	"github.com/telekom/pinotctl/pkg/system"
)

type Config struct {
	ListenAddress string
	Debug         bool
	// CORSOrigins enables CORS for the listed browser origins.
	CORSOrigins []string
	// Metrics exposes /metrics on the same listener.
	Metrics bool
	// RateLimit throttles each client address to this many requests per
	// second. Zero disables throttling.
	RateLimit float64
	RateBurst int
}

type Server struct {
	gin    *gin.Engine
	config Config
	log    *zap.Logger
	now    func() time.Time
	limit  *ratelimit.ClientLimiter

	mu       sync.RWMutex
	fixtures *Fixtures
}

func NewServer(log *zap.Logger, fixtures *Fixtures, cfg Config) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = zap.NewNop()
	}
	if fixtures == nil {
		fixtures = DefaultFixtures()
	}

	engine := gin.New()
	engine.Use(
		ginzap.Ginzap(log, time.RFC3339, true),
		ginzap.RecoveryWithZap(log, true),
		requestLogger(log),
		countRequests(),
	)
	if len(cfg.CORSOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowMethods: []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Authorization", "Content-Type", "Accept", system.RequestIDHeader},
			MaxAge:       12 * time.Hour,
		}))
	}

	s := &Server{
		gin:      engine,
		config:   cfg,
		log:      log,
		now:      time.Now,
		fixtures: fixtures,
	}
	if cfg.RateLimit > 0 {
		limitCfg := ratelimit.DefaultConfig()
		limitCfg.Rate = cfg.RateLimit
		limitCfg.Burst = cfg.RateBurst
		s.limit = ratelimit.New(limitCfg)
		engine.Use(s.limit.Middleware())
	}
	s.registerRoutes()
	if cfg.Metrics {
		engine.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))
	}
	engine.NoRoute(func(c *gin.Context) {
		apiresponses.RespondNotFound(c, "resource", c.Request.URL.Path)
	})
	return s
}

// Handler exposes the engine, mainly for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Close releases background resources. Listen calls it on shutdown.
func (s *Server) Close() {
	if s.limit != nil {
		s.limit.Stop()
	}
}

// Listen serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Listen(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.ListenAddress,
		Handler:           s.gin,
		ReadHeaderTimeout: 10 * time.Second,
	}
	defer s.Close()
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Mock controller listening", zap.String("address", s.config.ListenAddress))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("Mock controller stopped")
	return nil
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	base := log.Sugar()
	return func(c *gin.Context) {
		reqLog := system.EnrichReqLoggerWithRequestID(c, base.With("path", c.Request.URL.Path))
		c.Set(system.ReqLoggerKey, reqLog)
		if id := c.GetHeader(system.RequestIDHeader); id != "" {
			c.Header(system.RequestIDHeader, id)
		}
		c.Next()
	}
}

func countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.MockControllerRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
