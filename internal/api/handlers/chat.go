package handlers

import (
	"net/http"
	"strings"
	"time"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/ratelimit"
	"portfolio-backend/internal/validation"
	"portfolio-backend/pkg/sse"

	"github.com/gin-gonic/gin"
)

// apologyReply is the fixed user-facing message for any gateway failure.
// Real error detail stays in the server logs.
const apologyReply = "I'm experiencing some technical difficulties. Please try again in a moment."

// Chat handles POST /api/chat. The rate-limit middleware has already
// admitted the request; here the message is validated, sent to the
// completion gateway and the answer relayed back, streamed over SSE or
// as a single JSON body depending on configuration.
func (h *Handlers) Chat(c *gin.Context) {
	start := time.Now()
	clientID := c.GetString("client_id")
	if clientID == "" {
		clientID = ratelimit.ClientID(c.Request)
	}

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Message is required"})
		return
	}

	if err := validation.Validate(req.Message); err != nil {
		h.Logger.Warn().
			Str("client_id", clientID).
			Str("reason", err.Error()).
			Msg("Rejected chat message")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	if h.Config.Chat.APIKey == "" {
		h.Logger.Error().Msg("Completion gateway API key not configured")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Service configuration error"})
		return
	}

	if h.Config.Chat.Streaming {
		h.streamChat(c, req.Message, clientID)
		return
	}

	reply, err := h.Completion.Complete(c.Request.Context(), req.Message)
	if err != nil {
		h.Logger.Error().
			Err(err).
			Str("client_id", clientID).
			Dur("response_time", time.Since(start)).
			Msg("Chat completion failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: apologyReply})
		return
	}

	h.Logger.Info().
		Str("client_id", clientID).
		Dur("response_time", time.Since(start)).
		Int("message_length", len(req.Message)).
		Msg("Chat completed")
	c.JSON(http.StatusOK, models.ChatResponse{Response: reply})
}

// streamChat relays the completion stream as SSE frames, in fixed order:
// one stats frame, the content deltas as they arrive, then exactly one
// of final_stats or error.
func (h *Handlers) streamChat(c *gin.Context, message, clientID string) {
	deltas, err := h.Completion.StreamCompletion(c.Request.Context(), message)
	if err != nil {
		h.Logger.Error().Err(err).Str("client_id", clientID).Msg("Failed to start completion stream")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: apologyReply})
		return
	}

	sse.SetHeaders(c.Writer)
	c.Status(http.StatusOK)
	writer := sse.NewWriter(c.Writer)

	inputTokens := (len(message) + 3) / 4
	streamStart := time.Now()

	if err := writer.WriteEvent(models.StreamEvent{
		Type: "stats",
		Data: models.StreamStats{
			Model:       h.Config.Chat.Model,
			InputTokens: inputTokens,
			Temperature: h.Config.Chat.Temperature,
			MaxTokens:   h.Config.Chat.MaxTokens,
			RequestTime: streamStart.Format(time.RFC3339),
			ClientIP:    truncateClientID(clientID),
		},
	}); err != nil {
		return
	}

	var response strings.Builder
	deltaCount := 0

	for delta := range deltas {
		if delta.Err != nil {
			h.Logger.Error().
				Err(delta.Err).
				Str("client_id", clientID).
				Int("output_tokens", deltaCount).
				Msg("Completion stream interrupted")
			_ = writer.WriteEvent(models.StreamEvent{
				Type: "error",
				Data: models.StreamError{Message: "Stream interrupted"},
			})
			return
		}

		response.WriteString(delta.Content)
		deltaCount++

		if err := writer.WriteEvent(models.StreamEvent{
			Type: "content",
			Data: models.StreamContent{Content: delta.Content},
		}); err != nil {
			// Client went away; stop consuming. The gateway stream is
			// released through the request context.
			h.Logger.Debug().Str("client_id", clientID).Msg("Chat stream client disconnected")
			return
		}
	}

	responseTime := time.Since(streamStart).Milliseconds()
	text := response.String()

	_ = writer.WriteEvent(models.StreamEvent{
		Type: "final_stats",
		Data: models.StreamFinalStats{
			OutputTokens:        deltaCount,
			TotalTokens:         inputTokens + deltaCount,
			ResponseTime:        responseTime,
			CharactersGenerated: len(text),
			WordsGenerated:      len(strings.Fields(text)),
			CompletionTime:      time.Now().Format(time.RFC3339),
		},
	})

	h.Logger.Info().
		Str("client_id", clientID).
		Int64("response_time_ms", responseTime).
		Int("output_tokens", deltaCount).
		Int("message_length", len(message)).
		Msg("Chat stream completed")
}

// ChatInfo answers GET /api/chat with liveness info; no side effects.
func (h *Handlers) ChatInfo(c *gin.Context) {
	c.JSON(http.StatusOK, models.ChatInfoResponse{
		Status:   "AI Assistant API is running",
		Model:    h.Config.Chat.Model,
		Provider: h.Config.Chat.Provider,
	})
}

// truncateClientID keeps only the first 8 characters of the client id
// for logging and stats frames.
func truncateClientID(clientID string) string {
	if len(clientID) > 8 {
		clientID = clientID[:8]
	}
	return clientID + "..."
}
