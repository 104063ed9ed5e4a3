// Package services implements the entry and emotion stores: the business
// rules sitting between request handlers and the repository layer.
//
// Every failure leaving this package is an *apperr.Error. Predictable cases
// (missing rows, unusable patches) become expected kinds with the messages
// below; persistence failures and timeouts become Internal errors carrying
// the original cause.
package services

import (
	"errors"

	"github.com/jewelnotes/jewelnotes-api/internal/apperr"
	"github.com/jewelnotes/jewelnotes-api/internal/repo"
)

// User-facing messages returned by the stores.
const (
	MsgEntryNotFound   = "Entry not found"
	MsgNoFieldsToPatch = "No fields to update"
	MsgUnknownField    = "Unknown field: "
	MsgBodyRequired    = "body is required"
)

// classify converts a repository error into a domain error. Domain errors
// pass through unchanged; a missing row becomes notFound; anything else,
// including deadline and cancellation errors, is Internal.
func classify(err error, notFound string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.NotFound(notFound)
	}
	return apperr.Internal(err)
}
