// Command server runs the JewelNotes journaling API.
//
// @title       JewelNotes API
// @version     1.0.0
// @description Journaling API: diary entries and the emotion reference table.
// @BasePath    /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/jewelnotes/jewelnotes-api/internal/config"
	httpapi "github.com/jewelnotes/jewelnotes-api/internal/http"
	"github.com/jewelnotes/jewelnotes-api/internal/observability"
	"github.com/jewelnotes/jewelnotes-api/internal/repo"
	"github.com/jewelnotes/jewelnotes-api/internal/sysutil"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Error().Err(err).Msg("fatal")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	lg := sysutil.ConfigureLogger(os.Stdout, cfg.LogLevel, cfg.LogPretty, cfg.OTEL.ServiceName)
	lg.Info().
		Str("version", version).
		Str("env", cfg.Environment).
		Str("db_driver", cfg.DBDriver).
		Msg("starting")

	shutdownTracing, err := observability.Setup(ctx, cfg.OTEL, version, cfg.Environment)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			lg.Warn().Err(err).Msg("tracing shutdown")
		}
	}()

	db, err := repo.Open(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if cfg.OTEL.Enabled {
		if err := repo.Instrument(db); err != nil {
			return fmt.Errorf("instrument db: %w", err)
		}
	}
	if err := repo.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if cfg.SeedEmotions {
		n, err := repo.SeedEmotions(ctx, db)
		if err != nil {
			return fmt.Errorf("seed emotions: %w", err)
		}
		lg.Info().Int("inserted", n).Msg("emotion table seeded")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg)

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	lg.Info().Str("addr", ln.Addr().String()).Msg("http server listening")
	return serve(ctx, newServer(cfg, r), ln, cfg.ShutdownTimeout)
}

// newServer applies the configured timeouts and header limit.
func newServer(cfg config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Handler:           h,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
}

// serve runs srv on ln until ctx is done, then drains in-flight requests for
// at most grace.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Dur("grace", grace).Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
