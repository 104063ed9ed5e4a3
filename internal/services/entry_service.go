// Package services – EntryService
//
// This file implements the EntryService, which owns the lifecycle of journal
// entries: listing, creation, lookup, full replacement, partial update and
// deletion. Inputs arrive already validated; the service adds the rules that
// need knowledge of storage: ownership stamping, the partial-update
// allow-list, existence checks and error classification.
package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/jewelnotes/jewelnotes-api/internal/apperr"
	"github.com/jewelnotes/jewelnotes-api/internal/domain"
)

// EntryRepo defines the repository contract required by EntryService.
type EntryRepo interface {
	// ListEntries returns all entries, newest id first.
	ListEntries(ctx context.Context, db *gorm.DB) ([]domain.Entry, error)

	// CreateEntry inserts a new entry owned by userID.
	CreateEntry(ctx context.Context, db *gorm.DB, userID int64, body string) (*domain.Entry, error)

	// GetEntry fetches an entry by id.
	GetEntry(ctx context.Context, db *gorm.DB, id int64) (*domain.Entry, error)

	// UpdateEntry sets the given columns plus updated_at and returns the row.
	UpdateEntry(ctx context.Context, db *gorm.DB, id int64, cols map[string]any) (*domain.Entry, error)

	// DeleteEntry removes an entry by id.
	DeleteEntry(ctx context.Context, db *gorm.DB, id int64) error
}

// patchColumns maps partial-update field names to storage columns. Column
// names reaching SQL come only from this table.
var patchColumns = map[string]string{
	"body": "body",
}

// DefaultTimeout bounds each persistence call when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// EntryService provides the entry store operations.
type EntryService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the entry repository used by this service.
	Repo EntryRepo

	// OwnerID is stamped on every created entry.
	OwnerID int64
	// Timeout bounds each repository call.
	Timeout time.Duration
}

// NewEntryService constructs an EntryService for the given owner.
func NewEntryService(db *gorm.DB, r EntryRepo, ownerID int64, timeout time.Duration) *EntryService {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &EntryService{DB: db, Repo: r, OwnerID: ownerID, Timeout: timeout}
}

func (s *EntryService) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func()) {
	ctx, span := otel.Tracer("services/EntryService").Start(ctx, op, trace.WithAttributes(attrs...))
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		span.End()
	}
}

// List returns every entry, newest first. An empty table yields an empty slice.
func (s *EntryService) List(ctx context.Context) ([]domain.Entry, error) {
	ctx, done := s.start(ctx, "List")
	defer done()

	out, err := s.Repo.ListEntries(ctx, s.DB)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if out == nil {
		out = []domain.Entry{}
	}
	return out, nil
}

// Create stores a new entry for the configured owner and returns the full
// record including generated id and timestamps.
func (s *EntryService) Create(ctx context.Context, in domain.EntryInput) (*domain.Entry, error) {
	ctx, done := s.start(ctx, "Create")
	defer done()

	if strings.TrimSpace(in.Body) == "" {
		return nil, apperr.BadRequest(MsgBodyRequired)
	}
	e, err := s.Repo.CreateEntry(ctx, s.DB, s.OwnerID, in.Body)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return e, nil
}

// Get returns the entry with the given id, or NotFound.
func (s *EntryService) Get(ctx context.Context, id int64) (*domain.Entry, error) {
	ctx, done := s.start(ctx, "Get", attribute.Int64("entry.id", id))
	defer done()

	e, err := s.Repo.GetEntry(ctx, s.DB, id)
	if err != nil {
		return nil, classify(err, MsgEntryNotFound)
	}
	return e, nil
}

// Replace overwrites the writable fields of an entry. Writing identical
// values still succeeds and refreshes updated_at.
func (s *EntryService) Replace(ctx context.Context, id int64, in domain.EntryInput) (*domain.Entry, error) {
	ctx, done := s.start(ctx, "Replace", attribute.Int64("entry.id", id))
	defer done()

	if strings.TrimSpace(in.Body) == "" {
		return nil, apperr.BadRequest(MsgBodyRequired)
	}
	e, err := s.Repo.UpdateEntry(ctx, s.DB, id, map[string]any{"body": in.Body})
	if err != nil {
		return nil, classify(err, MsgEntryNotFound)
	}
	return e, nil
}

// Update applies a partial update. An empty patch or a key outside the
// allow-list is rejected before any statement is issued; unknown keys are
// reported in sorted order so the message is deterministic.
func (s *EntryService) Update(ctx context.Context, id int64, patch domain.EntryPatch) (*domain.Entry, error) {
	ctx, done := s.start(ctx, "Update",
		attribute.Int64("entry.id", id),
		attribute.StringSlice("entry.fields", patch.Fields()),
	)
	defer done()

	if len(patch) == 0 {
		return nil, apperr.BadRequest(MsgNoFieldsToPatch)
	}
	cols := make(map[string]any, len(patch))
	for _, k := range patch.Fields() {
		col, ok := patchColumns[k]
		if !ok {
			return nil, apperr.BadRequest(MsgUnknownField + k)
		}
		cols[col] = patch[k]
	}

	e, err := s.Repo.UpdateEntry(ctx, s.DB, id, cols)
	if err != nil {
		return nil, classify(err, MsgEntryNotFound)
	}
	return e, nil
}

// Remove deletes an entry. A second delete of the same id is NotFound.
func (s *EntryService) Remove(ctx context.Context, id int64) error {
	ctx, done := s.start(ctx, "Remove", attribute.Int64("entry.id", id))
	defer done()

	return classify(s.Repo.DeleteEntry(ctx, s.DB, id), MsgEntryNotFound)
}
