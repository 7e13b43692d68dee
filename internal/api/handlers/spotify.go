package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	accessTokenCookie  = "spotify_access_token"
	refreshTokenCookie = "spotify_refresh_token"

	// Spotify rarely rotates refresh tokens; keep the cookie for 30 days.
	refreshTokenMaxAge = 60 * 60 * 24 * 30

	playlistLimit = 10
)

// SpotifyAuth handles GET /api/spotify/auth: the entry into the OAuth
// dance and the provider callback, distinguished by query params.
func (h *Handlers) SpotifyAuth(c *gin.Context) {
	if authErr := c.Query("error"); authErr != "" {
		c.Redirect(http.StatusFound, h.appRedirect("spotify_error="+url.QueryEscape(authErr)))
		return
	}

	if !h.Spotify.Configured() {
		h.Logger.Error().Msg("Spotify credentials not configured")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Service configuration error"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, h.Spotify.AuthorizeURL())
		return
	}

	tokens, err := h.Spotify.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		h.Logger.Error().Err(err).Msg("Spotify code exchange failed")
		c.Redirect(http.StatusFound, h.appRedirect("spotify_error=auth_failed"))
		return
	}

	h.setAccessTokenCookie(c, tokens.AccessToken, tokens.ExpiresIn)
	h.setRefreshTokenCookie(c, tokens.RefreshToken)
	c.Redirect(http.StatusFound, h.appRedirect("spotify_connected=true"))
}

// SpotifyCurrent handles GET /api/spotify/current: the now-playing track
// plus playlists, refreshing the access token at most once per request.
func (h *Handlers) SpotifyCurrent(c *gin.Context) {
	accessToken, _ := c.Cookie(accessTokenCookie)
	refreshToken, _ := c.Cookie(refreshTokenCookie)

	if accessToken == "" && refreshToken == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Not authenticated"})
		return
	}

	ctx := c.Request.Context()
	refreshed := false

	track, err := h.Spotify.CurrentlyPlaying(ctx, accessToken)
	if errors.Is(err, services.ErrTokenExpired) && refreshToken != "" {
		refreshed = true
		accessToken, err = h.refreshTokens(c, refreshToken)
		if err == nil {
			track, err = h.Spotify.CurrentlyPlaying(ctx, accessToken)
		}
	}
	if err != nil {
		h.spotifyError(c, err)
		return
	}

	playlists, err := h.Spotify.Playlists(ctx, accessToken, playlistLimit)
	if errors.Is(err, services.ErrTokenExpired) && refreshToken != "" && !refreshed {
		accessToken, err = h.refreshTokens(c, refreshToken)
		if err == nil {
			playlists, err = h.Spotify.Playlists(ctx, accessToken, playlistLimit)
		}
	}
	if err != nil {
		h.spotifyError(c, err)
		return
	}

	if playlists == nil {
		playlists = []models.PlaylistSummary{}
	}
	c.JSON(http.StatusOK, models.SpotifyCurrentResponse{
		CurrentTrack: track,
		Playlists:    playlists,
	})
}

// SpotifyToken handles GET /api/spotify/token: returns a working access
// token for the browser player, refreshing it once if the probe fails.
func (h *Handlers) SpotifyToken(c *gin.Context) {
	accessToken, _ := c.Cookie(accessTokenCookie)
	refreshToken, _ := c.Cookie(refreshTokenCookie)

	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "No access token found"})
		return
	}

	err := h.Spotify.CheckToken(c.Request.Context(), accessToken)
	if err == nil {
		c.JSON(http.StatusOK, models.SpotifyTokenResponse{AccessToken: accessToken})
		return
	}

	if errors.Is(err, services.ErrTokenExpired) && refreshToken != "" {
		if newToken, refreshErr := h.refreshTokens(c, refreshToken); refreshErr == nil {
			c.JSON(http.StatusOK, models.SpotifyTokenResponse{AccessToken: newToken})
			return
		}
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Token refresh failed"})
		return
	}

	if errors.Is(err, services.ErrTokenExpired) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Token refresh failed"})
		return
	}

	h.Logger.Error().Err(err).Msg("Spotify token probe failed")
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
}

// refreshTokens performs a single refresh and persists the rotated
// tokens back into cookies. Callers must not refresh more than once per
// request.
func (h *Handlers) refreshTokens(c *gin.Context, refreshToken string) (string, error) {
	tokens, err := h.Spotify.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.Logger.Error().Err(err).Msg("Spotify token refresh failed")
		return "", err
	}

	h.setAccessTokenCookie(c, tokens.AccessToken, tokens.ExpiresIn)
	if tokens.RefreshToken != "" {
		h.setRefreshTokenCookie(c, tokens.RefreshToken)
	}
	return tokens.AccessToken, nil
}

func (h *Handlers) spotifyError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrTokenExpired) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Not authenticated"})
		return
	}
	h.Logger.Error().Err(err).Msg("Spotify API request failed")
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to fetch Spotify data"})
}

func (h *Handlers) setAccessTokenCookie(c *gin.Context, token string, expiresIn int) {
	c.SetCookie(accessTokenCookie, token, expiresIn, "/", "", h.secureCookies(), true)
}

func (h *Handlers) setRefreshTokenCookie(c *gin.Context, token string) {
	c.SetCookie(refreshTokenCookie, token, refreshTokenMaxAge, "/", "", h.secureCookies(), true)
}

func (h *Handlers) appRedirect(query string) string {
	return h.Config.Server.AppURL + "/?" + query
}
