// Package router provides gin middleware for the web surface. This file
// implements a request logging middleware which captures details of each
// request/response cycle and writes a single structured log entry through
// the RequestLogger interface. LogHarbourAdapter is the provided
// implementation over a LogHarbour logger; the interface keeps the
// middleware decoupled from the logging backend.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/remiges-tech/logharbour/logharbour"
)

// RequestInfo contains the information about a request to be logged.
type RequestInfo struct {
	Method       string        `json:"method"`        // HTTP method
	Path         string        `json:"path"`          // request path
	ClientIP     string        `json:"client_ip"`     // client's IP address
	StatusCode   int           `json:"status_code"`   // HTTP status of the response
	StartTime    time.Time     `json:"start_time"`    // when request processing started (UTC)
	Duration     time.Duration `json:"duration"`      // total processing duration
	RequestSize  int64         `json:"request_size"`  // request body size in bytes
	ResponseSize int64         `json:"response_size"` // response body size in bytes
	Query        string        `json:"query,omitempty"`
}

// RequestLogger is the interface a logger must implement to be used with
// the LogRequest middleware.
type RequestLogger interface {
	Log(info RequestInfo)
}

// LogRequest returns a gin middleware that logs one entry per request at
// the end of its lifecycle.
func LogRequest(logger RequestLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		requestSize := c.Request.ContentLength

		c.Next()

		info := RequestInfo{
			Method:       c.Request.Method,
			Path:         c.Request.URL.Path,
			ClientIP:     c.ClientIP(),
			StatusCode:   c.Writer.Status(),
			StartTime:    startTime.UTC(),
			Duration:     time.Since(startTime),
			RequestSize:  requestSize,
			ResponseSize: int64(c.Writer.Size()),
			Query:        c.Request.URL.RawQuery,
		}

		logger.Log(info)
	}
}

// LogHarbourAdapter adapts a LogHarbour logger to the RequestLogger
// interface.
type LogHarbourAdapter struct {
	logger *logharbour.Logger
}

// NewLogHarbourAdapter creates a new adapter for a LogHarbour logger.
func NewLogHarbourAdapter(logger *logharbour.Logger) *LogHarbourAdapter {
	return &LogHarbourAdapter{logger: logger}
}

// Log implements RequestLogger using LogHarbour's structured logging.
func (a *LogHarbourAdapter) Log(info RequestInfo) {
	logger := a.logger.WithModule("http").
		WithOp("request").
		WithRemoteIP(info.ClientIP).
		WithStatus(getStatus(info.StatusCode))

	activityData := map[string]interface{}{
		"method":        info.Method,
		"path":          info.Path,
		"status":        info.StatusCode,
		"start_time":    info.StartTime.Format(time.RFC3339),
		"duration_ms":   info.Duration.Milliseconds(),
		"request_size":  info.RequestSize,
		"response_size": info.ResponseSize,
	}
	if info.Query != "" {
		activityData["query"] = info.Query
	}

	logger.Info().LogActivity("HTTP request completed", activityData)
}

// getStatus converts an HTTP status code to a logharbour Status.
func getStatus(statusCode int) logharbour.Status {
	if statusCode >= 200 && statusCode < 400 {
		return logharbour.Success
	}
	return logharbour.Failure
}
