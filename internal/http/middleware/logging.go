// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides the request id injector, the structured access log and
// panic recovery:
//
//   - RequestID() ensures every request carries a correlation id
//     (X-Request-ID, reused when the client sends one).
//   - AccessLog() attaches a request-scoped zerolog.Logger and emits one
//     redacted access line per request, leveled by status.
//   - Recovery() turns panics into errors rendered by the error responder.
//   - LoggerFrom() retrieves the request-scoped logger.
//
// Order: RequestID, AccessLog, Recovery, so that panics and errors carry the
// correlation id.
package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// requestIDKey is the Gin context key under which the request ID is stored.
	requestIDKey = "requestID"
	// requestIDHeader is the HTTP header used to propagate the correlation ID.
	requestIDHeader = "X-Request-ID"
	// loggerKey holds the request-scoped *zerolog.Logger.
	loggerKey = "logger"
	// maxQueryLogLength caps the number of bytes of the raw query string logged.
	maxQueryLogLength = 2048
)

// RequestID attaches (or propagates) a correlation identifier per request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// AccessLog writes one structured access line per request and stores a
// request-scoped logger for downstream code. Query strings and header values
// are scrubbed of ids, email addresses and phone numbers; sensitive headers
// are masked entirely. Bodies are never logged.
//
// Level: error for 5xx, warn for 4xx, info otherwise.
func AccessLog(opts RedactOptions) gin.HandlerFunc {
	red := newRedactor(opts)

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		l := log.With().
			Str("request_id", requestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Logger()
		c.Set(loggerKey, &l)

		query := red.text(truncate(c.Request.URL.RawQuery, maxQueryLogLength))
		headers := red.headers(c.Request.Header)

		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case status >= 500:
			ev = l.Error()
		case status >= 400:
			ev = l.Warn()
		default:
			ev = l.Info()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.
			Str("query", query).
			Str("remote_ip", c.ClientIP()).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", headers).
			Msg("http_request")
	}
}

// Recovery intercepts panics and hands them to the error responder as
// unclassified errors, so a panic renders exactly like any other unexpected
// failure. The captured stack includes the panicking frames.
func Recovery(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			var err error
			if e, ok := rec.(error); ok {
				err = pkgerrors.Wrap(e, "panic recovered")
			} else {
				err = pkgerrors.New(fmt.Sprintf("panic recovered: %v", rec))
			}
			_ = c.Error(err)
			respond(c, err, production)
			c.Abort()
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped zerolog.Logger, or a logger derived
// from the global one when AccessLog did not run.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Str("request_id", requestID(c)).Logger()
	return &l
}

// requestID returns the correlation id set by RequestID, falling back to the
// response and then the request header.
func requestID(c *gin.Context) string {
	if v, ok := c.Get(requestIDKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if rid := c.Writer.Header().Get(requestIDHeader); rid != "" {
		return rid
	}
	return c.GetHeader(requestIDHeader)
}

// truncate caps s at max bytes, appending an ellipsis. max <= 0 disables it.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
