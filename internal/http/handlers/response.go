// Package handlers provides the HTTP handlers of the public API.
//
// This file defines the success envelopes shared by all endpoints. Errors
// never pass through here: handlers record them with fail and the error
// responder middleware renders them.
//
// Example success response:
//
//	HTTP/1.1 201 Created
//	{ "status": "success", "data": { "entry_id": 1, "body": "..." } }
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jewelnotes/jewelnotes-api/internal/domain"
)

// statusSuccess is the envelope status of every successful response.
const statusSuccess = "success"

// envelope is the generic success shape written by ok.
type envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

// The concrete envelopes below exist for the API documentation.

// EntryResponse wraps a single entry.
type EntryResponse struct {
	Status string       `json:"status" example:"success"`
	Data   domain.Entry `json:"data"`
}

// EntryListResponse wraps a list of entries.
type EntryListResponse struct {
	Status string         `json:"status" example:"success"`
	Data   []domain.Entry `json:"data"`
}

// EmotionListResponse wraps the emotion reference table.
type EmotionListResponse struct {
	Status string           `json:"status" example:"success"`
	Data   []domain.Emotion `json:"data"`
}

// MessageResponse is a success envelope carrying only a message.
type MessageResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"deleted"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// ok writes data inside a success envelope.
func ok(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Status: statusSuccess, Data: data})
}

// okMessage writes a success envelope with a message instead of data.
func okMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, MessageResponse{Status: statusSuccess, Message: msg})
}
