package handlers

import (
	"net/http"
	"time"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handlers struct {
	Completion services.CompletionClientInterface
	Spotify    services.SpotifyClientInterface
	Mailer     services.MailerInterface
	Config     *config.Config
	Logger     zerolog.Logger
}

func NewHandlers(cfg *config.Config, logger zerolog.Logger) *Handlers {
	return &Handlers{
		Completion: services.NewCompletionClient(&cfg.Chat),
		Spotify:    services.NewSpotifyClient(&cfg.Spotify),
		Mailer:     services.NewMailer(&cfg.Email),
		Config:     cfg,
		Logger:     logger,
	}
}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// secureCookies reports whether cookies should carry the Secure flag;
// enabled in release mode only so local HTTP development keeps working.
func (h *Handlers) secureCookies() bool {
	return h.Config.Server.Mode == "release"
}
