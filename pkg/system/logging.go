// SPDX-FileCopyrightText: 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package system

import (
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ReqLoggerKey is the context key used to store request-scoped logger in gin context.
const ReqLoggerKey = "reqLogger"

// RequestIDHeader carries the client generated request ID.
const RequestIDHeader = "X-Request-ID"

// NewCLILogger builds the logger used by the command line tool. Logs always go
// to stderr so they never corrupt json or yaml output on stdout. Verbose mode
// switches to the development encoder at debug level; otherwise only warnings
// and errors are emitted.
func NewCLILogger(verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.Sampling = nil
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// NewServerLogger builds the logger used by long running servers such as the
// mock controller.
func NewServerLogger(debug bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		return zap.NewNop()
	}
	return logger
}

// GetReqLogger returns the request-scoped sugared logger from gin.Context if present,
// otherwise returns a fallback sugared logger derived from the provided zap.Logger.
func GetReqLogger(c *gin.Context, fallback *zap.SugaredLogger) *zap.SugaredLogger {
	if c == nil {
		return fallback
	}
	if v, ok := c.Get(ReqLoggerKey); ok {
		if l, ok2 := v.(*zap.SugaredLogger); ok2 {
			return l
		}
	}
	return fallback
}

// EnrichReqLoggerWithRequestID annotates the request-scoped logger with the
// request ID sent by the client, if any.
func EnrichReqLoggerWithRequestID(c *gin.Context, reqLogger *zap.SugaredLogger) *zap.SugaredLogger {
	if c == nil || reqLogger == nil || c.Request == nil {
		return reqLogger
	}
	if id := c.GetHeader(RequestIDHeader); id != "" {
		reqLogger = reqLogger.With("requestID", id)
	}
	return reqLogger
}

// ResourceFields returns key/value pairs suitable for SugaredLogger.With or
// Infow calls. The table key is only included when non-empty.
func ResourceFields(kind, name, table string) []interface{} {
	if table == "" {
		return []interface{}{"kind", kind, "name", name}
	}
	return []interface{}{"kind", kind, "name", name, "table", table}
}
