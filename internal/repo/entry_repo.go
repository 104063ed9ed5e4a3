// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Entry model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They do
// no business validation: callers pass already-validated values and, for
// UpdateEntry, column names taken from a fixed allow-list.
//
// Error semantics:
//   - When an entry is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound).
//   - On DB errors (constraint violations, connectivity issues, timeouts),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jewelnotes/jewelnotes-api/internal/domain"
)

// ListEntries returns every entry, newest id first. It returns an empty
// slice when the table is empty.
func ListEntries(ctx context.Context, db *gorm.DB) ([]domain.Entry, error) {
	out := []domain.Entry{}
	err := db.WithContext(ctx).
		Order("entry_id desc").
		Find(&out).Error
	return out, err
}

// CreateEntry inserts a new entry owned by userID. The occurred-at, created
// and updated timestamps are all set to the same UTC instant.
func CreateEntry(ctx context.Context, db *gorm.DB, userID int64, body string) (*domain.Entry, error) {
	now := time.Now().UTC()
	e := &domain.Entry{
		UserID:           userID,
		Body:             body,
		EntryDatetimeUTC: now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// GetEntry fetches a single entry by id, or ErrNotFound if missing.
func GetEntry(ctx context.Context, db *gorm.DB, id int64) (*domain.Entry, error) {
	var e domain.Entry
	if err := db.WithContext(ctx).First(&e, "entry_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEntry applies cols to the entry identified by id and refreshes
// updated_at in the same statement. Existence is decided by the affected-row
// count, so a missing row yields ErrNotFound without a separate lookup. The
// updated row is read back inside the same transaction.
//
// cols must be non-empty and keyed by column name.
func UpdateEntry(ctx context.Context, db *gorm.DB, id int64, cols map[string]any) (*domain.Entry, error) {
	var out domain.Entry
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		set := make(map[string]any, len(cols)+1)
		for k, v := range cols {
			set[k] = v
		}
		set["updated_at"] = time.Now().UTC()

		res := tx.Model(&domain.Entry{}).
			Where("entry_id = ?", id).
			Updates(set)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&out, "entry_id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteEntry hard-deletes the entry identified by id. It returns
// ErrNotFound when no row was removed, including when a concurrent delete of
// the same id won.
func DeleteEntry(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).
		Where("entry_id = ?", id).
		Delete(&domain.Entry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
