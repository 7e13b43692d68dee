package services

import (
	"context"

	"portfolio-backend/internal/models"
)

// CompletionClientInterface defines the interface for the chat completion gateway.
type CompletionClientInterface interface {
	// Complete performs a synchronous completion.
	Complete(ctx context.Context, message string) (string, error)

	// StreamCompletion starts a streaming completion and returns content deltas.
	StreamCompletion(ctx context.Context, message string) (<-chan CompletionDelta, error)
}

// SpotifyClientInterface defines the interface for Spotify OAuth and Web API calls.
type SpotifyClientInterface interface {
	// Configured reports whether OAuth credentials are present.
	Configured() bool

	// AuthorizeURL builds the provider authorize redirect target.
	AuthorizeURL() string

	// ExchangeCode trades an authorization code for a token pair.
	ExchangeCode(ctx context.Context, code string) (*models.SpotifyTokens, error)

	// Refresh obtains a new access token from a refresh token.
	Refresh(ctx context.Context, refreshToken string) (*models.SpotifyTokens, error)

	// CheckToken verifies the access token is still accepted.
	CheckToken(ctx context.Context, accessToken string) error

	// CurrentlyPlaying returns the active track, or nil when idle.
	CurrentlyPlaying(ctx context.Context, accessToken string) (*models.TrackSnapshot, error)

	// Playlists lists the user's playlists.
	Playlists(ctx context.Context, accessToken string, limit int) ([]models.PlaylistSummary, error)
}

// MailerInterface defines the interface for transactional email delivery.
type MailerInterface interface {
	// Configured reports whether delivery credentials are present.
	Configured() bool

	// Send delivers a contact-form message and returns the provider id.
	Send(ctx context.Context, name, email, message string) (string, error)
}
