// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the error responder: the single place where failures
// become HTTP responses. Handlers and other middleware never write error
// bodies themselves; they record the error with Fail and stop the chain.
// ErrorResponder then classifies the last recorded error, logs it, counts it
// and renders the JSON body:
//
//	{"status":"error","message":"Entry not found"}
//
// Outside production the body also carries "stack" and, for classified errors
// with a cause, "cause". In production neither field is ever emitted.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jewelnotes/jewelnotes-api/internal/apperr"
)

// statusError is the envelope status of every error response.
const statusError = "error"

// kindUnclassified labels errors that carry no domain kind.
const kindUnclassified = "unclassified"

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Status  string `json:"status" example:"error"`
	Message string `json:"message" example:"Entry not found"`
	Stack   string `json:"stack,omitempty"`
	Cause   string `json:"cause,omitempty"`
}

// appErrors counts rendered errors by kind.
var appErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "app_errors_total",
		Help: "Errors rendered by the error responder, by kind.",
	},
	[]string{"kind"},
)

func init() {
	prometheus.MustRegister(appErrors)
}

// Render maps err to a status code and response body.
//
// A domain error anywhere in err's chain is rendered with its kind's status
// and its message. Anything else is a 500 with a generic message; its text
// never reaches the client.
func Render(err error, production bool) (int, ErrorBody) {
	if ae, ok := apperr.As(err); ok {
		body := ErrorBody{Status: statusError, Message: ae.Message()}
		if !production {
			body.Stack = ae.Stack()
			if cause := ae.Cause(); cause != nil {
				body.Cause = cause.Error()
			}
		}
		return ae.Status(), body
	}

	body := ErrorBody{Status: statusError, Message: apperr.InternalMessage}
	if !production {
		body.Stack = apperr.StackOf(err)
	}
	return http.StatusInternalServerError, body
}

// Fail records err on the context and aborts the remaining handlers without
// writing a response. ErrorResponder renders it on the way out.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorResponder renders the last error recorded on the context once the
// handler chain returns, unless a response was already written.
func ErrorResponder(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		respond(c, c.Errors.Last().Err, production)
	}
}

// respond logs, counts and writes a single error response.
func respond(c *gin.Context, err error, production bool) {
	status, body := Render(err, production)

	kind, expected := kindUnclassified, false
	if ae, ok := apperr.As(err); ok {
		kind, expected = ae.Kind().String(), ae.Expected()
	}
	appErrors.WithLabelValues(kind).Inc()

	lg := LoggerFrom(c)
	if expected {
		lg.Debug().Err(err).Str("kind", kind).Int("status", status).Msg("request rejected")
	} else {
		lg.Error().Err(err).
			Str("kind", kind).
			Int("status", status).
			Str("stack", apperr.StackOf(err)).
			Msg("unexpected error")
	}

	if c.Writer.Written() {
		return
	}
	c.AbortWithStatusJSON(status, body)
}
