// Package httpapi wires the HTTP transport (Gin) to the entry and emotion
// stores, middleware and route handlers. It owns the cross-cutting concerns:
// tracing, request ids, access logging with redaction, panic recovery,
// compression, metrics, error rendering, rate limiting, CORS and security
// headers.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/jewelnotes/jewelnotes-api/docs"
	"github.com/jewelnotes/jewelnotes-api/internal/apperr"
	"github.com/jewelnotes/jewelnotes-api/internal/config"
	"github.com/jewelnotes/jewelnotes-api/internal/domain"
	"github.com/jewelnotes/jewelnotes-api/internal/http/handlers"
	"github.com/jewelnotes/jewelnotes-api/internal/http/middleware"
	"github.com/jewelnotes/jewelnotes-api/internal/repo"
	"github.com/jewelnotes/jewelnotes-api/internal/services"
	"github.com/jewelnotes/jewelnotes-api/internal/web"
)

// maxBodyBytes caps every request body.
const maxBodyBytes = 1 << 20

// entryRepoShim adapts the repository free functions to services.EntryRepo.
type entryRepoShim struct{}

func (entryRepoShim) ListEntries(ctx context.Context, db *gorm.DB) ([]domain.Entry, error) {
	return repo.ListEntries(ctx, db)
}

func (entryRepoShim) CreateEntry(ctx context.Context, db *gorm.DB, userID int64, body string) (*domain.Entry, error) {
	return repo.CreateEntry(ctx, db, userID, body)
}

func (entryRepoShim) GetEntry(ctx context.Context, db *gorm.DB, id int64) (*domain.Entry, error) {
	return repo.GetEntry(ctx, db, id)
}

func (entryRepoShim) UpdateEntry(ctx context.Context, db *gorm.DB, id int64, cols map[string]any) (*domain.Entry, error) {
	return repo.UpdateEntry(ctx, db, id, cols)
}

func (entryRepoShim) DeleteEntry(ctx context.Context, db *gorm.DB, id int64) error {
	return repo.DeleteEntry(ctx, db, id)
}

// emotionRepoShim adapts repo.ListEmotions to services.EmotionRepo.
type emotionRepoShim struct{}

func (emotionRepoShim) ListEmotions(ctx context.Context, db *gorm.DB) ([]domain.Emotion, error) {
	return repo.ListEmotions(ctx, db)
}

// RegisterRoutes attaches all middleware and endpoints to r.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. AccessLog: request-scoped logger and redacted access line
//  4. Gzip: wraps the writer before anything can write a body
//  5. Recovery: panics become Internal errors
//  6. Body size limiter
//  7. Metrics
//  8. ErrorResponder: renders whatever the rest of the chain recorded
//  9. CORS and security headers, so rejections below still carry them
//  10. Rate limiter (skipped when RATE_RPS is 0)
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	prod := cfg.Production()
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	r.Use(middleware.Recovery(prod))
	r.Use(limitBody(maxBodyBytes))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorResponder(prod))

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:    cfg.Security.EnableHSTS,
		HSTSMaxAge:    cfg.Security.HSTSMaxAge,
		NoStorePrefix: cfg.APIBasePath,
		EnablePolicy:  true,
	}))

	if cfg.RateRPS > 0 {
		rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
		r.Use(rl.Handler())
	}

	r.NoRoute(func(c *gin.Context) {
		middleware.Fail(c, apperr.NotFound("route not found"))
	})
	r.NoMethod(func(c *gin.Context) {
		middleware.Fail(c, apperr.MethodNotAllowed("method not allowed"))
	})

	r.GET("/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/api-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if cfg.FrontendEnabled {
		r.GET("/", middleware.PagePolicy(""), web.Handler(cfg.APIBasePath))
	}

	h := handlers.New(
		services.NewEntryService(db, entryRepoShim{}, cfg.OwnerID, cfg.DBTimeout),
		services.NewEmotionService(db, emotionRepoShim{}, cfg.DBTimeout),
	)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("/entries", h.ListEntries)
		api.POST("/entries", h.CreateEntry)
		api.GET("/entries/:id", h.GetEntry)
		api.PUT("/entries/:id", h.ReplaceEntry)
		api.PATCH("/entries/:id", h.UpdateEntry)
		api.DELETE("/entries/:id", h.DeleteEntry)

		api.GET("/emotions", h.ListEmotions)
	}
}

// corsMiddleware allows every origin when none are configured, otherwise
// only the listed ones. Credentials are never allowed.
func corsMiddleware(origins []string) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return cors.New(c)
}

// limitBody caps the request body at maxBytes. Reads past the cap fail with
// *http.MaxBytesError, which handlers report as a client error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
