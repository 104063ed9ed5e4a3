// Package repo implements the data persistence layer for journal entries and
// the emotion reference table, backed by GORM. This file contains database
// bootstrapping helpers for SQLite (pure Go driver) and PostgreSQL, tracing
// instrumentation, schema migrations and reference-data seeding.
package repo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/jewelnotes/jewelnotes-api/internal/config"
	"github.com/jewelnotes/jewelnotes-api/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

func gormConfig() *gorm.Config {
	return &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
}

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, err
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	} {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("sqlite %s %w", pragma, err)
		}
	}

	tunePool(db, 10)
	return db, nil
}

// OpenPostgres connects to PostgreSQL through the pgx-backed GORM driver and
// verifies the connection with a ping.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	tunePool(db, 20)
	return db, nil
}

// Open selects the driver configured by DB_DRIVER.
func Open(cfg config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return OpenPostgres(cfg.Database.DSN())
	case config.DriverSQLite:
		return OpenSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func tunePool(db *gorm.DB, maxOpen int) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(maxOpen)
		sqlDB.SetMaxIdleConns(maxOpen)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
}

// Instrument registers the GORM OpenTelemetry plugin so every statement
// becomes a child span of the request that issued it.
func Instrument(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}

// AutoMigrate creates or updates the entry and emotion tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Entry{},
		&domain.Emotion{},
	)
}

// DefaultEmotions is the reference set inserted by SeedEmotions.
var DefaultEmotions = []domain.Emotion{
	{Name: "joy", Polarity: 1, Strength: 3},
	{Name: "calm", Polarity: 1, Strength: 1},
	{Name: "neutral", Polarity: 0, Strength: 0},
	{Name: "sadness", Polarity: -1, Strength: 2},
	{Name: "anger", Polarity: -1, Strength: 3},
	{Name: "anxiety", Polarity: -1, Strength: 2},
}

// SeedEmotions inserts DefaultEmotions when the emotion table is empty. It
// returns the number of rows inserted; a populated table is left untouched.
func SeedEmotions(ctx context.Context, db *gorm.DB) (int, error) {
	inserted := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := CountEmotions(ctx, tx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		rows := make([]domain.Emotion, len(DefaultEmotions))
		copy(rows, DefaultEmotions)
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		inserted = len(rows)
		return nil
	})
	return inserted, err
}
