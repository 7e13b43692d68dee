package handlers

import (
	"net/http"

	"portfolio-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Send handles POST /api/send: relays the hire-me form to the fixed
// recipient through the email provider.
func (h *Handlers) Send(c *gin.Context) {
	var req models.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Name, email and message are required"})
		return
	}

	if !h.Mailer.Configured() {
		h.Logger.Error().Msg("Email provider not configured")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Service configuration error"})
		return
	}

	id, err := h.Mailer.Send(c.Request.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		h.Logger.Error().Err(err).Msg("Failed to send contact email")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to send message"})
		return
	}

	c.JSON(http.StatusOK, models.SendResponse{ID: id})
}
