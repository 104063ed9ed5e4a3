package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListEmotions godoc
// @ID          listEmotions
// @Summary     List emotions
// @Description Returns the read-only emotion reference table ordered by id.
// @Tags        Emotions
// @Produce     json
// @Success     200  {object}  handlers.EmotionListResponse
// @Failure     500  {object}  middleware.ErrorBody  "Internal error"
// @Router      /emotions [get]
func (h *Handlers) ListEmotions(c *gin.Context) {
	items, err := h.emotions.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, items)
}

// Health godoc
// @ID          health
// @Summary     Liveness probe
// @Tags        Health
// @Produce     json
// @Success     200  {object}  handlers.HealthResponse
// @Router      /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
