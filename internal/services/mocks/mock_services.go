package mocks

import (
	"context"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockCompletionClient is a mock implementation of CompletionClientInterface.
type MockCompletionClient struct {
	mock.Mock
}

func NewMockCompletionClient() *MockCompletionClient {
	return &MockCompletionClient{}
}

func (m *MockCompletionClient) Complete(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

func (m *MockCompletionClient) StreamCompletion(ctx context.Context, message string) (<-chan services.CompletionDelta, error) {
	args := m.Called(ctx, message)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	return args.Get(0).(<-chan services.CompletionDelta), nil
}

// MockSpotifyClient is a mock implementation of SpotifyClientInterface.
type MockSpotifyClient struct {
	mock.Mock
}

func NewMockSpotifyClient() *MockSpotifyClient {
	return &MockSpotifyClient{}
}

func (m *MockSpotifyClient) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockSpotifyClient) AuthorizeURL() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockSpotifyClient) ExchangeCode(ctx context.Context, code string) (*models.SpotifyTokens, error) {
	args := m.Called(ctx, code)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	return args.Get(0).(*models.SpotifyTokens), nil
}

func (m *MockSpotifyClient) Refresh(ctx context.Context, refreshToken string) (*models.SpotifyTokens, error) {
	args := m.Called(ctx, refreshToken)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	return args.Get(0).(*models.SpotifyTokens), nil
}

func (m *MockSpotifyClient) CheckToken(ctx context.Context, accessToken string) error {
	args := m.Called(ctx, accessToken)
	return args.Error(0)
}

func (m *MockSpotifyClient) CurrentlyPlaying(ctx context.Context, accessToken string) (*models.TrackSnapshot, error) {
	args := m.Called(ctx, accessToken)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if args.Get(0) == nil {
		return nil, nil
	}
	return args.Get(0).(*models.TrackSnapshot), nil
}

func (m *MockSpotifyClient) Playlists(ctx context.Context, accessToken string, limit int) ([]models.PlaylistSummary, error) {
	args := m.Called(ctx, accessToken, limit)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if args.Get(0) == nil {
		return nil, nil
	}
	return args.Get(0).([]models.PlaylistSummary), nil
}

// MockMailer is a mock implementation of MailerInterface.
type MockMailer struct {
	mock.Mock
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockMailer) Send(ctx context.Context, name, email, message string) (string, error) {
	args := m.Called(ctx, name, email, message)
	return args.String(0), args.Error(1)
}
