package routes

import (
	"portfolio-backend/internal/api/handlers"
	"portfolio-backend/internal/api/middleware"
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func SetupRoutes(router *gin.Engine, cfg *config.Config, h *handlers.Handlers, logger zerolog.Logger) {
	limiter := ratelimit.NewFixedWindow(cfg.Chat.RateLimitWindow, cfg.Chat.RateLimitMax)
	chatRateLimit := middleware.RateLimit(limiter, cfg.Chat.RateLimitWindow, cfg.Chat.RateLimitMax, logger)

	api := router.Group("/api")
	{
		chat := api.Group("/chat")
		{
			chat.POST("", chatRateLimit, h.Chat)
			chat.GET("", h.ChatInfo)
		}

		spotify := api.Group("/spotify")
		{
			spotify.GET("/auth", h.SpotifyAuth)
			spotify.GET("/current", h.SpotifyCurrent)
			spotify.GET("/token", h.SpotifyToken)
		}

		api.POST("/send", h.Send)
	}

	router.GET("/healthz", h.Health)
}
