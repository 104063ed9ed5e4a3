// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides SecurityHeaders, which attaches a conservative set of
// HTTP security headers, and PagePolicy, which adds a Content-Security-Policy
// to the few routes that serve HTML.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityOptions configures SecurityHeaders.
//
// HSTS is only sent for HTTPS requests and only when EnableHSTS is set;
// HSTSMaxAge defaults to 180 days. NoStorePrefix, when non-empty, marks every
// response under that path prefix as non-cacheable: journal entries are
// private and must not linger in shared caches.
type SecurityOptions struct {
	EnableHSTS    bool
	HSTSMaxAge    time.Duration
	NoStorePrefix string
	EnablePolicy  bool
}

// SecurityHeaders returns a Gin middleware that adds security headers to
// each response and exposes X-Request-ID to browser clients.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := int(opt.HSTSMaxAge.Seconds())
	if maxAge <= 0 {
		maxAge = int((180 * 24 * time.Hour).Seconds())
	}
	hsts := "max-age=" + strconv.Itoa(maxAge) + "; includeSubDomains; preload"

	return func(c *gin.Context) {
		h := c.Writer.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}

		if opt.NoStorePrefix != "" && strings.HasPrefix(c.Request.URL.Path, opt.NoStorePrefix) {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}

		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}

		if h.Get(requestIDHeader) != "" {
			const hdr = "Access-Control-Expose-Headers"
			switch cur := h.Get(hdr); {
			case cur == "":
				h.Set(hdr, requestIDHeader)
			case !strings.Contains(cur, requestIDHeader):
				h.Set(hdr, cur+", "+requestIDHeader)
			}
		}

		c.Next()
	}
}

// DefaultPagePolicy allows the embedded page's own inline script and style
// and same-origin API calls, nothing else.
const DefaultPagePolicy = "default-src 'self'; script-src 'self' 'unsafe-inline'; " +
	"style-src 'self' 'unsafe-inline'; connect-src 'self'; frame-ancestors 'none'"

// PagePolicy sets a Content-Security-Policy for HTML routes.
func PagePolicy(csp string) gin.HandlerFunc {
	if csp == "" {
		csp = DefaultPagePolicy
	}
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", csp)
		c.Next()
	}
}

// isHTTPS reports whether the request used HTTPS directly or via a proxy
// that set X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
