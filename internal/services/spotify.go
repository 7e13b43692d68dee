package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/models"
)

var (
	// ErrTokenExpired means Spotify answered 401; the caller may refresh
	// and retry once.
	ErrTokenExpired = errors.New("spotify token expired")

	// ErrNotAuthenticated means no usable token is available at all.
	ErrNotAuthenticated = errors.New("not authenticated")
)

var spotifyScopes = strings.Join([]string{
	"user-read-playback-state",
	"user-modify-playback-state",
	"user-read-currently-playing",
	"user-read-private",
	"user-read-email",
	"playlist-read-private",
	"playlist-read-collaborative",
	"streaming",
	"user-library-read",
}, " ")

type SpotifyClient struct {
	clientID     string
	clientSecret string
	redirectURI  string
	accountsURL  string
	apiURL       string
	httpClient   *http.Client
}

func NewSpotifyClient(cfg *config.SpotifyConfig) *SpotifyClient {
	return &SpotifyClient{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		accountsURL:  "https://accounts.spotify.com",
		apiURL:       "https://api.spotify.com",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Configured reports whether the OAuth credentials are present.
func (c *SpotifyClient) Configured() bool {
	return c.clientID != "" && c.clientSecret != "" && c.redirectURI != ""
}

// AuthorizeURL builds the provider authorize redirect target.
func (c *SpotifyClient) AuthorizeURL() string {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("response_type", "code")
	params.Set("redirect_uri", c.redirectURI)
	params.Set("scope", spotifyScopes)
	params.Set("show_dialog", "true")
	return c.accountsURL + "/authorize?" + params.Encode()
}

// ExchangeCode trades an authorization code for an access/refresh token pair.
func (c *SpotifyClient) ExchangeCode(ctx context.Context, code string) (*models.SpotifyTokens, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.redirectURI)

	tokens, err := c.tokenRequest(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tokens, nil
}

// Refresh obtains a new access token. The refresh token in the result is
// empty unless Spotify rotated it.
func (c *SpotifyClient) Refresh(ctx context.Context, refreshToken string) (*models.SpotifyTokens, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	tokens, err := c.tokenRequest(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	return tokens, nil
}

func (c *SpotifyClient) tokenRequest(ctx context.Context, form url.Values) (*models.SpotifyTokens, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.accountsURL+"/api/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+basic)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tokens models.SpotifyTokens
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// CheckToken probes the profile endpoint to verify the access token is
// still accepted.
func (c *SpotifyClient) CheckToken(ctx context.Context, accessToken string) error {
	resp, err := c.apiGet(ctx, "/v1/me", accessToken)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrTokenExpired
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("profile probe returned status %d", resp.StatusCode)
	}
	return nil
}

type playerResponse struct {
	IsPlaying  bool `json:"is_playing"`
	ProgressMs int  `json:"progress_ms"`
	Item       *struct {
		Name       string `json:"name"`
		DurationMs int    `json:"duration_ms"`
		Artists    []struct {
			Name string `json:"name"`
		} `json:"artists"`
		Album struct {
			Name   string `json:"name"`
			Images []struct {
				URL string `json:"url"`
			} `json:"images"`
		} `json:"album"`
		ExternalURLs struct {
			Spotify string `json:"spotify"`
		} `json:"external_urls"`
	} `json:"item"`
}

// CurrentlyPlaying returns the active track, or nil when nothing is
// playing (Spotify answers 204 in that case).
func (c *SpotifyClient) CurrentlyPlaying(ctx context.Context, accessToken string) (*models.TrackSnapshot, error) {
	resp, err := c.apiGet(ctx, "/v1/me/player/currently-playing", accessToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrTokenExpired
	case resp.StatusCode == http.StatusNoContent:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("currently-playing returned status %d", resp.StatusCode)
	}

	var player playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&player); err != nil {
		return nil, err
	}
	if player.Item == nil {
		return nil, nil
	}

	artists := make([]string, len(player.Item.Artists))
	for i, a := range player.Item.Artists {
		artists[i] = a.Name
	}
	image := ""
	if len(player.Item.Album.Images) > 0 {
		image = player.Item.Album.Images[0].URL
	}

	return &models.TrackSnapshot{
		Name:      player.Item.Name,
		Artist:    strings.Join(artists, ", "),
		Album:     player.Item.Album.Name,
		Image:     image,
		URL:       player.Item.ExternalURLs.Spotify,
		IsPlaying: player.IsPlaying,
		Progress:  player.ProgressMs,
		Duration:  player.Item.DurationMs,
	}, nil
}

type playlistsResponse struct {
	Items []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Images      []struct {
			URL string `json:"url"`
		} `json:"images"`
		ExternalURLs struct {
			Spotify string `json:"spotify"`
		} `json:"external_urls"`
		Tracks struct {
			Total int `json:"total"`
		} `json:"tracks"`
	} `json:"items"`
}

// Playlists lists the user's playlists, reshaped for the widget.
func (c *SpotifyClient) Playlists(ctx context.Context, accessToken string, limit int) ([]models.PlaylistSummary, error) {
	resp, err := c.apiGet(ctx, "/v1/me/playlists?limit="+strconv.Itoa(limit), accessToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrTokenExpired
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("playlists returned status %d", resp.StatusCode)
	}

	var playlists playlistsResponse
	if err := json.NewDecoder(resp.Body).Decode(&playlists); err != nil {
		return nil, err
	}

	summaries := make([]models.PlaylistSummary, len(playlists.Items))
	for i, item := range playlists.Items {
		image := ""
		if len(item.Images) > 0 {
			image = item.Images[0].URL
		}
		summaries[i] = models.PlaylistSummary{
			Name:        item.Name,
			Description: item.Description,
			Image:       image,
			URL:         item.ExternalURLs.Spotify,
			Tracks:      item.Tracks.Total,
		}
	}
	return summaries, nil
}

func (c *SpotifyClient) apiGet(ctx context.Context, path, accessToken string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	return c.httpClient.Do(req)
}
