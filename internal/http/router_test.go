package httpapi

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jewelnotes/jewelnotes-api/internal/config"
	"github.com/jewelnotes/jewelnotes-api/internal/repo"
)

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func baseConfig() config.Config {
	return config.Config{
		Environment:     "development",
		APIBasePath:     "/api/v1",
		DBTimeout:       time.Second,
		OwnerID:         1,
		RateRPS:         100,
		RateBurst:       100,
		SwaggerEnabled:  true,
		FrontendEnabled: true,
		OTEL:            config.OTELConfig{ServiceName: "test-svc"},
	}
}

func newRouter(t *testing.T, cfg config.Config) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	db := newTestDB(t)
	RegisterRoutes(r, db, cfg)
	return r, db
}

func serve(r http.Handler, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Stack   string `json:"stack"`
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) errBody {
	t.Helper()
	var b errBody
	if err := json.Unmarshal(w.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return b
}

func TestRegisterRoutes_HealthMetricsFallbacks(t *testing.T) {
	r, _ := newRouter(t, baseConfig())

	w := serve(r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != `{"status":"ok"}` {
		t.Fatalf("GET /health = %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing X-Request-ID")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("security headers missing")
	}

	w = serve(r, http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Fatalf("GET /metrics bad: code=%d", w.Code)
	}

	w = serve(r, http.MethodGet, "/nope", "", nil)
	if w.Code != http.StatusNotFound || decodeErr(t, w).Message != "route not found" {
		t.Fatalf("GET /nope = %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodPost, "/health", "", nil)
	if w.Code != http.StatusMethodNotAllowed || decodeErr(t, w).Status != "error" {
		t.Fatalf("POST /health = %d %s", w.Code, w.Body.String())
	}
}

func TestRegisterRoutes_EntryLifecycle(t *testing.T) {
	r, _ := newRouter(t, baseConfig())

	w := serve(r, http.MethodPost, "/api/v1/entries", `{"body":"Today was calm."}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}
	var created struct {
		Status string `json:"status"`
		Data   struct {
			ID               int64  `json:"entry_id"`
			EntryDatetimeUTC string `json:"entry_datetime_utc"`
			CreatedAt        string `json:"created_at"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Status != "success" || created.Data.ID < 1 || created.Data.EntryDatetimeUTC != created.Data.CreatedAt {
		t.Fatalf("created = %+v", created)
	}
	if w.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("API response cacheable: %q", w.Header().Get("Cache-Control"))
	}

	path := fmt.Sprintf("/api/v1/entries/%d", created.Data.ID)
	if w := serve(r, http.MethodPatch, path, `{}`, nil); w.Code != http.StatusBadRequest || decodeErr(t, w).Message != "No fields to update" {
		t.Fatalf("empty patch = %d %s", w.Code, w.Body.String())
	}
	if w := serve(r, http.MethodDelete, path, "", nil); w.Code != http.StatusOK {
		t.Fatalf("first delete = %d", w.Code)
	}
	if w := serve(r, http.MethodDelete, path, "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("second delete = %d", w.Code)
	}
}

func TestRegisterRoutes_StackOnlyOutsideProduction(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		cfg := baseConfig()
		cfg.Environment = env
		r, _ := newRouter(t, cfg)

		w := serve(r, http.MethodGet, "/api/v1/entries/999999", "", nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s: code=%d", env, w.Code)
		}
		b := decodeErr(t, w)
		if b.Status != "error" || b.Message != "Entry not found" {
			t.Fatalf("%s: body=%+v", env, b)
		}
		if (b.Stack != "") != (env == "development") {
			t.Fatalf("%s: stack present=%v", env, b.Stack != "")
		}
		if env == "production" && strings.Contains(w.Body.String(), `"cause"`) {
			t.Fatalf("production leaked cause: %s", w.Body.String())
		}
	}
}

func TestRegisterRoutes_BodyTooLarge(t *testing.T) {
	r, _ := newRouter(t, baseConfig())

	big := `{"body":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	w := serve(r, http.MethodPost, "/api/v1/entries", big, nil)
	if w.Code != http.StatusBadRequest || decodeErr(t, w).Message != "request body too large" {
		t.Fatalf("code=%d body=%.200s", w.Code, w.Body.String())
	}
}

func TestRegisterRoutes_RateLimited(t *testing.T) {
	cfg := baseConfig()
	cfg.RateRPS, cfg.RateBurst = 0.001, 2
	r, _ := newRouter(t, cfg)

	for i := 0; i < 2; i++ {
		if w := serve(r, http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d = %d", i, w.Code)
		}
	}
	w := serve(r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusTooManyRequests || w.Header().Get("Retry-After") != "1" {
		t.Fatalf("third request = %d retry=%q", w.Code, w.Header().Get("Retry-After"))
	}
}

func TestRegisterRoutes_RateLimitedResponseKeepsHeaders(t *testing.T) {
	cfg := baseConfig()
	cfg.RateRPS, cfg.RateBurst = 0.001, 1
	r, _ := newRouter(t, cfg)
	hdr := map[string]string{"Origin": "http://anywhere.test"}

	if w := serve(r, http.MethodGet, "/api/v1/emotions", "", hdr); w.Code != http.StatusOK {
		t.Fatalf("first request = %d", w.Code)
	}
	w := serve(r, http.MethodGet, "/api/v1/emotions", "", hdr)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("429 ACAO = %q", got)
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" || w.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("429 headers = %v", w.Header())
	}
	if b := decodeErr(t, w); b.Status != "error" || b.Message != "rate limit exceeded" {
		t.Fatalf("429 body = %+v", b)
	}
}

func TestRegisterRoutes_RateLimitDisabledAtZero(t *testing.T) {
	cfg := baseConfig()
	cfg.RateRPS, cfg.RateBurst = 0, 1
	r, _ := newRouter(t, cfg)

	for i := 0; i < 5; i++ {
		if w := serve(r, http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d = %d", i, w.Code)
		}
	}
}

func TestRegisterRoutes_CORS(t *testing.T) {
	r, _ := newRouter(t, baseConfig())
	w := serve(r, http.MethodGet, "/health", "", map[string]string{"Origin": "http://anywhere.test"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-all ACAO = %q", got)
	}

	cfg := baseConfig()
	cfg.CORS.AllowedOrigins = []string{"http://app.test"}
	r, _ = newRouter(t, cfg)

	w = serve(r, http.MethodGet, "/health", "", map[string]string{"Origin": "http://app.test"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://app.test" {
		t.Fatalf("allowlisted ACAO = %q", got)
	}
	w = serve(r, http.MethodGet, "/health", "", map[string]string{"Origin": "http://evil.test"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign origin = %d", w.Code)
	}

	w = serve(r, http.MethodOptions, "/api/v1/entries", "", map[string]string{
		"Origin":                        "http://app.test",
		"Access-Control-Request-Method": "PATCH",
	})
	if w.Code != http.StatusNoContent || !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "PATCH") {
		t.Fatalf("preflight = %d methods=%q", w.Code, w.Header().Get("Access-Control-Allow-Methods"))
	}
}

func TestRegisterRoutes_GzipEnvelope(t *testing.T) {
	r, _ := newRouter(t, baseConfig())

	w := serve(r, http.MethodGet, "/api/v1/emotions", "", map[string]string{"Accept-Encoding": "gzip"})
	if w.Code != http.StatusOK || w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("code=%d encoding=%q", w.Code, w.Header().Get("Content-Encoding"))
	}
	zr, err := gzip.NewReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	raw, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("inflate: %v", err)
	}
	if strings.TrimSpace(string(raw)) != `{"status":"success","data":[]}` {
		t.Fatalf("body = %s", raw)
	}
}

func TestRegisterRoutes_DocsAndFrontendToggles(t *testing.T) {
	r, _ := newRouter(t, baseConfig())

	w := serve(r, http.MethodGet, "/", "", nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Security-Policy") == "" {
		t.Fatalf("GET / = %d csp=%q", w.Code, w.Header().Get("Content-Security-Policy"))
	}
	if w := serve(r, http.MethodGet, "/api-docs/doc.json", "", nil); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/entries/{id}") {
		t.Fatalf("GET doc.json = %d", w.Code)
	}

	cfg := baseConfig()
	cfg.SwaggerEnabled, cfg.FrontendEnabled = false, false
	r, _ = newRouter(t, cfg)
	for _, p := range []string{"/", "/api-docs/index.html"} {
		if w := serve(r, http.MethodGet, p, "", nil); w.Code != http.StatusNotFound {
			t.Fatalf("GET %s with feature off = %d", p, w.Code)
		}
	}
}

func Test_entryRepoShim_Proxies(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	shim := entryRepoShim{}

	e, err := shim.CreateEntry(ctx, db, 1, "hello")
	if err != nil || e.ID < 1 {
		t.Fatalf("CreateEntry: %v %+v", err, e)
	}
	if got, err := shim.GetEntry(ctx, db, e.ID); err != nil || got.Body != "hello" {
		t.Fatalf("GetEntry: %v %+v", err, got)
	}
	if got, err := shim.UpdateEntry(ctx, db, e.ID, map[string]any{"body": "bye"}); err != nil || got.Body != "bye" {
		t.Fatalf("UpdateEntry: %v %+v", err, got)
	}
	if list, err := shim.ListEntries(ctx, db); err != nil || len(list) != 1 {
		t.Fatalf("ListEntries: %v %d", err, len(list))
	}
	if err := shim.DeleteEntry(ctx, db, e.ID); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	if _, err := repo.SeedEmotions(ctx, db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if list, err := (emotionRepoShim{}).ListEmotions(ctx, db); err != nil || len(list) != len(repo.DefaultEmotions) {
		t.Fatalf("ListEmotions: %v %d", err, len(list))
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := serve(r, http.MethodPost, "/echo", "0123456789AB", nil)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	groupWithPrefix(r, "/").GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	groupWithPrefix(r, "").GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })
	groupWithPrefix(r, "/api").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		w := serve(r, http.MethodGet, path, "", nil)
		if w.Code != http.StatusOK || w.Body.String() != want {
			t.Fatalf("GET %s got %d %q", path, w.Code, w.Body.String())
		}
	}
}
