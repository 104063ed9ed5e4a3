// Package domain defines the persistence models for journal entries and the
// emotion reference table, plus the validated inputs accepted by the entry
// service. The models are mapped with GORM and serialized with the wire names
// the frontend consumes.
package domain

import (
	"sort"
	"time"
)

// Entry is a single diary note.
//
// Fields:
//   - ID: storage-generated identity, immutable after creation.
//   - UserID: owner of the entry; a fixed constant in the single-user setup.
//   - Body: non-empty note text.
//   - EntryDatetimeUTC: when the note happened; forced to the creation instant.
//   - CreatedAt / UpdatedAt: UpdatedAt is refreshed on every mutation.
type Entry struct {
	ID               int64     `json:"entry_id"           gorm:"column:entry_id;primaryKey;autoIncrement"`
	UserID           int64     `json:"user_id"            gorm:"column:user_id;not null;index:idx_entry_user"`
	Body             string    `json:"body"               gorm:"column:body;type:text;not null"`
	EntryDatetimeUTC time.Time `json:"entry_datetime_utc" gorm:"column:entry_datetime_utc;not null"`
	CreatedAt        time.Time `json:"created_at"         gorm:"column:created_at;not null"`
	UpdatedAt        time.Time `json:"updated_at"         gorm:"column:updated_at;not null"`
}

// TableName returns the database table name for Entry.
func (Entry) TableName() string { return "trn_entry" }

// Emotion is a row of the read-only emotion reference table.
// Polarity is -1 (negative), 0 (neutral) or 1 (positive); Strength is a
// non-negative magnitude.
type Emotion struct {
	ID       int64  `json:"emotion_id"   gorm:"column:emotion_id;primaryKey;autoIncrement"`
	Name     string `json:"emotion_name" gorm:"column:emotion_name;type:varchar(64);not null;uniqueIndex:ux_emotion_name"`
	Polarity int    `json:"polarity"     gorm:"column:polarity;not null;check:polarity IN (-1,0,1)"`
	Strength int    `json:"strength"     gorm:"column:strength;not null;default:0;check:strength >= 0"`
}

// TableName returns the database table name for Emotion.
func (Emotion) TableName() string { return "mst_emotion" }

// EntryInput is a validated, normalized representation used by create and
// full update.
type EntryInput struct {
	Body string `json:"body" example:"Walked by the river today."`
}

// EntryPatch holds the fields supplied to a partial update, keyed by JSON
// field name. Recognized fields carry normalized values; any other key is kept
// as-is so the service allow-list can reject it.
type EntryPatch map[string]any

// Fields returns the patch keys in sorted order.
func (p EntryPatch) Fields() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

