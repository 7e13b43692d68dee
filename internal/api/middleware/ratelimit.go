package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimit rejects requests over the per-client admission cap with 429
// and the standard rate-limit headers. The derived client id is stored
// in the context for downstream logging.
func RateLimit(limiter ratelimit.Limiter, window time.Duration, max int, logger zerolog.Logger) gin.HandlerFunc {
	retryAfter := int(math.Ceil(window.Seconds()))

	return func(c *gin.Context) {
		clientID := ratelimit.ClientID(c.Request)
		c.Set("client_id", clientID)

		if !limiter.Admit(clientID) {
			logger.Warn().Str("client_id", clientID).Msg("Rate limit exceeded")
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.Header("X-RateLimit-Limit", strconv.Itoa(max))
			c.Header("X-RateLimit-Window", strconv.FormatInt(window.Milliseconds(), 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.RateLimitResponse{
				Error:      "Too many requests. Please wait a moment before trying again.",
				RetryAfter: retryAfter,
			})
			return
		}

		c.Next()
	}
}
