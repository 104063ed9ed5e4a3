// Entry HTTP handlers.
//
// This file exposes REST endpoints for journal entries:
//   - GET    /entries        (list)
//   - POST   /entries        (create)
//   - GET    /entries/{id}   (get)
//   - PUT    /entries/{id}   (full update)
//   - PATCH  /entries/{id}   (partial update)
//   - DELETE /entries/{id}   (delete)
//
// Every handler follows the same steps: read input, validate it, call exactly
// one store operation, and write a success envelope. Failures at any step are
// handed to the error responder unchanged.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jewelnotes/jewelnotes-api/internal/domain"
	"github.com/jewelnotes/jewelnotes-api/internal/validation"
)

// EntryStore defines the entry operations consumed by the handlers.
//
// Implementations must honor the provided context and return domain errors.
type EntryStore interface {
	List(ctx context.Context) ([]domain.Entry, error)
	Create(ctx context.Context, in domain.EntryInput) (*domain.Entry, error)
	Get(ctx context.Context, id int64) (*domain.Entry, error)
	Replace(ctx context.Context, id int64, in domain.EntryInput) (*domain.Entry, error)
	Update(ctx context.Context, id int64, patch domain.EntryPatch) (*domain.Entry, error)
	Remove(ctx context.Context, id int64) error
}

// EmotionStore defines the emotion operations consumed by the handlers.
type EmotionStore interface {
	List(ctx context.Context) ([]domain.Emotion, error)
}

// Handlers groups the HTTP endpoints and their store dependencies.
type Handlers struct {
	entries  EntryStore
	emotions EmotionStore
}

// New constructs a Handlers bound to the given stores.
func New(entries EntryStore, emotions EmotionStore) *Handlers {
	return &Handlers{entries: entries, emotions: emotions}
}

// EntryBody is the JSON payload for create and full update.
type EntryBody struct {
	Body string `json:"body" example:"Walked by the river today."`
}

// EntryPatchBody is the JSON payload for a partial update. Every field is
// optional; an empty object is rejected.
type EntryPatchBody struct {
	Body *string `json:"body,omitempty" example:"Edited text"`
}

// ListEntries godoc
// @ID          listEntries
// @Summary     List entries
// @Description Returns every entry, newest first.
// @Tags        Entries
// @Produce     json
// @Success     200  {object}  handlers.EntryListResponse
// @Failure     500  {object}  middleware.ErrorBody  "Internal error"
// @Router      /entries [get]
func (h *Handlers) ListEntries(c *gin.Context) {
	items, err := h.entries.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, items)
}

// CreateEntry godoc
// @ID          createEntry
// @Summary     Create an entry
// @Description Stores a new entry. entry_datetime_utc and created_at are set to the creation instant.
// @Tags        Entries
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.EntryBody  true  "Entry payload"
// @Success     201   {object}  handlers.EntryResponse
// @Failure     400   {object}  middleware.ErrorBody  "Validation failed"
// @Failure     500   {object}  middleware.ErrorBody  "Internal error"
// @Router      /entries [post]
func (h *Handlers) CreateEntry(c *gin.Context) {
	raw, err := readBody(c)
	if err != nil {
		fail(c, err)
		return
	}
	in, err := validation.EntryCreate(raw)
	if err != nil {
		fail(c, err)
		return
	}
	e, err := h.entries.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, e)
}

// GetEntry godoc
// @ID          getEntry
// @Summary     Get an entry
// @Tags        Entries
// @Produce     json
// @Param       id   path      int  true  "Entry ID"  minimum(1)
// @Success     200  {object}  handlers.EntryResponse
// @Failure     400  {object}  middleware.ErrorBody  "Invalid id"
// @Failure     404  {object}  middleware.ErrorBody  "Entry not found"
// @Failure     500  {object}  middleware.ErrorBody  "Internal error"
// @Router      /entries/{id} [get]
func (h *Handlers) GetEntry(c *gin.Context) {
	id, err := validation.ParseID(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	e, err := h.entries.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, e)
}

// ReplaceEntry godoc
// @ID          replaceEntry
// @Summary     Replace an entry
// @Description Overwrites the writable fields. Sending identical values succeeds.
// @Tags        Entries
// @Accept      json
// @Produce     json
// @Param       id    path      int                 true  "Entry ID"  minimum(1)
// @Param       body  body      handlers.EntryBody  true  "Full entry payload"
// @Success     200   {object}  handlers.EntryResponse
// @Failure     400   {object}  middleware.ErrorBody  "Validation failed"
// @Failure     404   {object}  middleware.ErrorBody  "Entry not found"
// @Failure     500   {object}  middleware.ErrorBody  "Internal error"
// @Router      /entries/{id} [put]
func (h *Handlers) ReplaceEntry(c *gin.Context) {
	id, err := validation.ParseID(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	raw, err := readBody(c)
	if err != nil {
		fail(c, err)
		return
	}
	in, err := validation.EntryUpdateFull(raw)
	if err != nil {
		fail(c, err)
		return
	}
	e, err := h.entries.Replace(c.Request.Context(), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, e)
}

// UpdateEntry godoc
// @ID          updateEntry
// @Summary     Partially update an entry
// @Description Applies the supplied fields. Empty payloads and unknown fields are rejected.
// @Tags        Entries
// @Accept      json
// @Produce     json
// @Param       id    path      int                      true  "Entry ID"  minimum(1)
// @Param       body  body      handlers.EntryPatchBody  true  "Fields to change"
// @Success     200   {object}  handlers.EntryResponse
// @Failure     400   {object}  middleware.ErrorBody  "Validation failed"
// @Failure     404   {object}  middleware.ErrorBody  "Entry not found"
// @Failure     500   {object}  middleware.ErrorBody  "Internal error"
// @Router      /entries/{id} [patch]
func (h *Handlers) UpdateEntry(c *gin.Context) {
	id, err := validation.ParseID(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	raw, err := readBody(c)
	if err != nil {
		fail(c, err)
		return
	}
	patch, err := validation.EntryUpdatePartial(raw)
	if err != nil {
		fail(c, err)
		return
	}
	e, err := h.entries.Update(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, e)
}

// DeleteEntry godoc
// @ID          deleteEntry
// @Summary     Delete an entry
// @Tags        Entries
// @Produce     json
// @Param       id   path      int  true  "Entry ID"  minimum(1)
// @Success     200  {object}  handlers.MessageResponse
// @Failure     400  {object}  middleware.ErrorBody  "Invalid id"
// @Failure     404  {object}  middleware.ErrorBody  "Entry not found"
// @Failure     500  {object}  middleware.ErrorBody  "Internal error"
// @Router      /entries/{id} [delete]
func (h *Handlers) DeleteEntry(c *gin.Context) {
	id, err := validation.ParseID(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.entries.Remove(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	okMessage(c, http.StatusOK, "deleted")
}
