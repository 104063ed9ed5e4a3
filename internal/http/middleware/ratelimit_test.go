package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestKeyByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = net.JoinHostPort("203.0.113.9", "12345")

	if got := KeyByIP()(c); got != "ip:203.0.113.9" {
		t.Fatalf("KeyByIP = %q", got)
	}
}

func TestNewRateLimiter_DefaultsAndReuse(t *testing.T) {
	rl := NewRateLimiter(2.0, 0, nil)
	if rl.burst != 1 || rl.keyFn == nil {
		t.Fatalf("defaults not applied: burst=%d keyFn=%v", rl.burst, rl.keyFn != nil)
	}
	lim := rl.limiterFor("k1")
	if lim == nil || rl.limiterFor("k1") != lim {
		t.Fatalf("expected the same limiter for the same key")
	}
	if rl.limiterFor("k2") == lim {
		t.Fatalf("different keys must not share a bucket")
	}
}

func TestRateLimiter_EvictsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(1.0, 1, KeyByIP())
	rl.ttl = time.Nanosecond

	rl.mu.Lock()
	rl.visitors["old"] = &visitor{limiter: rate.NewLimiter(1, 1), lastSeen: time.Now().Add(-time.Hour)}
	rl.lookups = cleanupEvery - 1
	rl.mu.Unlock()

	_ = rl.limiterFor("new")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.visitors["old"]; ok {
		t.Fatalf("idle bucket should have been evicted")
	}
	if _, ok := rl.visitors["new"]; !ok {
		t.Fatalf("requested bucket should exist")
	}
	if rl.lookups != 0 {
		t.Fatalf("lookup counter should reset, got %d", rl.lookups)
	}
}

func TestRateLimiter_Handler_AllowThenDeny(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rl := NewRateLimiter(0.0001, 1, func(*gin.Context) string { return "fixed" })
	r.Use(ErrorResponder(true), rl.Handler())
	r.GET("/entries", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/entries", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first request = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/entries", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request = %d; want 429", w.Code)
	}
	if w.Header().Get("Retry-After") != "1" {
		t.Fatalf("missing Retry-After")
	}
	if got := w.Body.String(); got != `{"status":"error","message":"rate limit exceeded"}` {
		t.Fatalf("unexpected 429 body: %s", got)
	}
}
