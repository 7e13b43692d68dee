package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-backend/internal/api/middleware"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/ratelimit"
	"portfolio-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type sseFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func parseFrames(t *testing.T, body string) []sseFrame {
	t.Helper()
	var frames []sseFrame
	for _, chunk := range strings.Split(body, "\n\n") {
		if chunk == "" {
			continue
		}
		assert.True(t, strings.HasPrefix(chunk, "data: "), "frame %q missing data prefix", chunk)
		var frame sseFrame
		assert.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(chunk, "data: ")), &frame))
		frames = append(frames, frame)
	}
	return frames
}

func postChat(router *gin.Engine, message string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(models.ChatRequest{Message: message})
	req, _ := http.NewRequest("POST", "/api/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func deltaChannel(deltas ...services.CompletionDelta) <-chan services.CompletionDelta {
	ch := make(chan services.CompletionDelta, len(deltas))
	for _, d := range deltas {
		ch <- d
	}
	close(ch)
	return ch
}

func TestChatValidation(t *testing.T) {
	t.Run("Chat_MissingMessage_Returns400", func(t *testing.T) {
		h, _, _, _ := newTestHandlers(testConfig())
		router := setupTestRouter()
		router.POST("/api/chat", h.Chat)

		req, _ := http.NewRequest("POST", "/api/chat", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)

		var response models.ErrorResponse
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
		assert.Equal(t, "Message is required", response.Error)
	})

	t.Run("Chat_TooShort_Returns400", func(t *testing.T) {
		h, _, _, _ := newTestHandlers(testConfig())
		router := setupTestRouter()
		router.POST("/api/chat", h.Chat)

		resp := postChat(router, "hi")

		assert.Equal(t, http.StatusBadRequest, resp.Code)

		var response models.ErrorResponse
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
		assert.Equal(t, "Message too short", response.Error)
	})

	t.Run("Chat_BlockedContent_Returns400", func(t *testing.T) {
		h, _, _, _ := newTestHandlers(testConfig())
		router := setupTestRouter()
		router.POST("/api/chat", h.Chat)

		resp := postChat(router, "how to exploit this vulnerability")

		assert.Equal(t, http.StatusBadRequest, resp.Code)

		var response models.ErrorResponse
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
		assert.Equal(t, "Message contains inappropriate content", response.Error)
	})
}

func TestChatMissingAPIKey(t *testing.T) {
	t.Run("Chat_NoKey_Returns500Generic", func(t *testing.T) {
		cfg := testConfig()
		cfg.Chat.APIKey = ""
		h, _, _, _ := newTestHandlers(cfg)
		router := setupTestRouter()
		router.POST("/api/chat", h.Chat)

		resp := postChat(router, "hello there")

		assert.Equal(t, http.StatusInternalServerError, resp.Code)

		var response models.ErrorResponse
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
		assert.Equal(t, "Service configuration error", response.Error)
	})
}

func TestChatStreaming(t *testing.T) {
	t.Run("Chat_Stream_FrameOrder", func(t *testing.T) {
		h, completion, _, _ := newTestHandlers(testConfig())
		completion.On("StreamCompletion", mock.Anything, "hello there").
			Return(deltaChannel(
				services.CompletionDelta{Content: "Hel"},
				services.CompletionDelta{Content: "lo"},
			), nil)

		router := setupTestRouter()
		router.POST("/api/chat", h.Chat)

		resp := postChat(router, "hello there")

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "text/event-stream", resp.Header().Get("Content-Type"))
		assert.Equal(t, "no-cache", resp.Header().Get("Cache-Control"))

		frames := parseFrames(t, resp.Body.String())
		if assert.Len(t, frames, 4) {
			assert.Equal(t, "stats", frames[0].Type)
			assert.Equal(t, "content", frames[1].Type)
			assert.Equal(t, "content", frames[2].Type)
			assert.Equal(t, "final_stats", frames[3].Type)

			var stats models.StreamStats
			assert.NoError(t, json.Unmarshal(frames[0].Data, &stats))
			assert.Equal(t, "openai/gpt-oss-20b:free", stats.Model)
			assert.Equal(t, 3, stats.InputTokens) // ceil(11/4)
			assert.True(t, strings.HasSuffix(stats.ClientIP, "..."))

			var first models.StreamContent
			assert.NoError(t, json.Unmarshal(frames[1].Data, &first))
			assert.Equal(t, "Hel", first.Content)

			var second models.StreamContent
			assert.NoError(t, json.Unmarshal(frames[2].Data, &second))
			assert.Equal(t, "lo", second.Content)

			var final models.StreamFinalStats
			assert.NoError(t, json.Unmarshal(frames[3].Data, &final))
			assert.Equal(t, 2, final.OutputTokens)
			assert.Equal(t, 5, final.TotalTokens)
			assert.Equal(t, 5, final.CharactersGenerated)
			assert.Equal(t, 1, final.WordsGenerated)
		}
		completion.AssertExpectations(t)
	})

	t.Run("Chat_Stream_ErrorMidStream", func(t *testing.T) {
		h, completion, _, _ := newTestHandlers(testConfig())
		completion.On("StreamCompletion", mock.Anything, "hello there").
			Return(deltaChannel(
				services.CompletionDelta{Content: "Hel"},
				services.CompletionDelta{Err: errors.New("upstream reset")},
			), nil)

		router := setupTestRouter()
		router.POST("/api/chat", h.Chat)

		resp := postChat(router, "hello there")

		assert.Equal(t, http.StatusOK, resp.Code)

		frames := parseFrames(t, resp.Body.String())
		if assert.Len(t, frames, 3) {
			assert.Equal(t, "stats", frames[0].Type)
			assert.Equal(t, "content", frames[1].Type)
			assert.Equal(t, "error", frames[2].Type)

			var streamErr models.StreamError
			assert.NoError(t, json.Unmarshal(frames[2].Data, &streamErr))
			assert.Equal(t, "Stream interrupted", streamErr.Message)
		}
	})

	t.Run("Chat_Stream_StartFailure_Returns500Apology", func(t *testing.T) {
		h, completion, _, _ := newTestHandlers(testConfig())
		completion.On("StreamCompletion", mock.Anything, "hello there").
			Return(nil, errors.New("connect: refused"))

		router := setupTestRouter()
		router.POST("/api/chat", h.Chat)

		resp := postChat(router, "hello there")

		assert.Equal(t, http.StatusInternalServerError, resp.Code)

		var response models.ErrorResponse
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
		assert.NotContains(t, response.Error, "refused")
	})
}

func TestChatNonStreaming(t *testing.T) {
	t.Run("Chat_Sync_Success", func(t *testing.T) {
		cfg := testConfig()
		cfg.Chat.Streaming = false
		h, completion, _, _ := newTestHandlers(cfg)
		completion.On("Complete", mock.Anything, "hello there").Return("Nexus Core initialized.", nil)

		router := setupTestRouter()
		router.POST("/api/chat", h.Chat)

		resp := postChat(router, "hello there")

		assert.Equal(t, http.StatusOK, resp.Code)

		var response models.ChatResponse
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
		assert.Equal(t, "Nexus Core initialized.", response.Response)
		completion.AssertExpectations(t)
	})

	t.Run("Chat_Sync_GatewayFailure_Returns500Apology", func(t *testing.T) {
		cfg := testConfig()
		cfg.Chat.Streaming = false
		h, completion, _, _ := newTestHandlers(cfg)
		completion.On("Complete", mock.Anything, "hello there").Return("", errors.New("boom"))

		router := setupTestRouter()
		router.POST("/api/chat", h.Chat)

		resp := postChat(router, "hello there")

		assert.Equal(t, http.StatusInternalServerError, resp.Code)

		var response models.ErrorResponse
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
		assert.NotContains(t, response.Error, "boom")
	})
}

func TestChatRateLimit(t *testing.T) {
	t.Run("Chat_EleventhRequest_Returns429", func(t *testing.T) {
		cfg := testConfig()
		cfg.Chat.Streaming = false
		h, completion, _, _ := newTestHandlers(cfg)
		completion.On("Complete", mock.Anything, "hello there").Return("ok", nil)

		limiter := ratelimit.NewFixedWindow(time.Minute, 10)
		router := setupTestRouter()
		router.POST("/api/chat", middleware.RateLimit(limiter, time.Minute, 10, zerolog.Nop()), h.Chat)

		send := func() *httptest.ResponseRecorder {
			body, _ := json.Marshal(models.ChatRequest{Message: "hello there"})
			req, _ := http.NewRequest("POST", "/api/chat", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Forwarded-For", "203.0.113.9")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			return resp
		}

		for i := 0; i < 10; i++ {
			assert.Equal(t, http.StatusOK, send().Code, "request %d", i+1)
		}

		resp := send()
		assert.Equal(t, http.StatusTooManyRequests, resp.Code)
		assert.Equal(t, "60", resp.Header().Get("Retry-After"))
		assert.Equal(t, "10", resp.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "60000", resp.Header().Get("X-RateLimit-Window"))

		var response models.RateLimitResponse
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
		assert.Equal(t, 60, response.RetryAfter)
	})

	t.Run("Chat_DifferentClient_NotLimited", func(t *testing.T) {
		cfg := testConfig()
		cfg.Chat.Streaming = false
		h, completion, _, _ := newTestHandlers(cfg)
		completion.On("Complete", mock.Anything, "hello there").Return("ok", nil)

		limiter := ratelimit.NewFixedWindow(time.Minute, 1)
		router := setupTestRouter()
		router.POST("/api/chat", middleware.RateLimit(limiter, time.Minute, 1, zerolog.Nop()), h.Chat)

		send := func(ip string) *httptest.ResponseRecorder {
			body, _ := json.Marshal(models.ChatRequest{Message: "hello there"})
			req, _ := http.NewRequest("POST", "/api/chat", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Forwarded-For", ip)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			return resp
		}

		assert.Equal(t, http.StatusOK, send("203.0.113.9").Code)
		assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.9").Code)
		assert.Equal(t, http.StatusOK, send("198.51.100.7").Code)
	})
}
