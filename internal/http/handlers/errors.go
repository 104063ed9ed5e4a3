package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jewelnotes/jewelnotes-api/internal/apperr"
	"github.com/jewelnotes/jewelnotes-api/internal/http/middleware"
)

// fail hands err to the error responder and stops the handler chain.
func fail(c *gin.Context, err error) {
	middleware.Fail(c, err)
}

// readBody returns the raw request body. A body over the configured size
// limit is a client error; any other read failure is internal.
func readBody(c *gin.Context) ([]byte, error) {
	raw, err := c.GetRawData()
	if err == nil {
		return raw, nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return nil, apperr.BadRequest("request body too large")
	}
	return nil, apperr.Internal(err)
}
