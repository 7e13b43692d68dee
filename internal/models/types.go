package models

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type ChatInfoResponse struct {
	Status   string `json:"status"`
	Model    string `json:"model"`
	Provider string `json:"provider"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type RateLimitResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter"`
}

// StreamEvent is one SSE frame on the chat stream. Type is one of
// "stats", "content", "final_stats" or "error"; Data carries the
// matching payload struct below.
type StreamEvent struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type StreamStats struct {
	Model       string  `json:"model"`
	InputTokens int     `json:"inputTokens"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
	RequestTime string  `json:"requestTime"`
	ClientIP    string  `json:"clientIP"`
}

type StreamContent struct {
	Content string `json:"content"`
}

type StreamFinalStats struct {
	OutputTokens        int    `json:"outputTokens"`
	TotalTokens         int    `json:"totalTokens"`
	ResponseTime        int64  `json:"responseTime"`
	CharactersGenerated int    `json:"charactersGenerated"`
	WordsGenerated      int    `json:"wordsGenerated"`
	CompletionTime      string `json:"completionTime"`
}

type StreamError struct {
	Message string `json:"message"`
}

// SpotifyTokens is the token endpoint response. RefreshToken is empty
// when Spotify chooses not to rotate it.
type SpotifyTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in"`
}

type TrackSnapshot struct {
	Name      string `json:"name"`
	Artist    string `json:"artist"`
	Album     string `json:"album"`
	Image     string `json:"image"`
	URL       string `json:"url"`
	IsPlaying bool   `json:"isPlaying"`
	Progress  int    `json:"progress"`
	Duration  int    `json:"duration"`
}

type PlaylistSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	URL         string `json:"url"`
	Tracks      int    `json:"tracks"`
}

type SpotifyCurrentResponse struct {
	CurrentTrack *TrackSnapshot    `json:"currentTrack"`
	Playlists    []PlaylistSummary `json:"playlists"`
}

type SpotifyTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type SendRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

type SendResponse struct {
	ID string `json:"id"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
