package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Chat    ChatConfig
	Spotify SpotifyConfig
	Email   EmailConfig
}

type ServerConfig struct {
	Host string
	Port int
	Mode string
	// AppURL is where browser redirects land after the Spotify OAuth dance.
	AppURL string
}

type ChatConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Provider    string
	SiteURL     string
	SiteName    string
	MaxTokens   int
	Temperature float32
	Streaming   bool
	Timeout     time.Duration

	RateLimitWindow time.Duration
	RateLimitMax    int
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

type EmailConfig struct {
	APIKey string
	From   string
	To     string
}

func Load() (*Config, error) {
	// Optional .env file for local development; real deployments set env vars.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:   getEnv("SERVER_HOST", "0.0.0.0"),
			Port:   getEnvAsInt("SERVER_PORT", 8080),
			Mode:   getEnv("GIN_MODE", "debug"),
			AppURL: getEnv("APP_URL", "http://localhost:3000"),
		},
		Chat: ChatConfig{
			APIKey:          os.Getenv("OPENROUTER_API_KEY"),
			BaseURL:         getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			Model:           getEnv("CHAT_MODEL", "openai/gpt-oss-20b:free"),
			Provider:        getEnv("CHAT_PROVIDER", "OpenRouter"),
			SiteURL:         getEnv("SITE_URL", "http://localhost:3000"),
			SiteName:        getEnv("SITE_NAME", "Portfolio AI Assistant"),
			MaxTokens:       getEnvAsInt("CHAT_MAX_TOKENS", 500),
			Temperature:     getEnvAsFloat("CHAT_TEMPERATURE", 0.7),
			Streaming:       getEnvAsBool("CHAT_STREAMING", true),
			Timeout:         getEnvAsDuration("CHAT_TIMEOUT", 120*time.Second),
			RateLimitWindow: getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
			RateLimitMax:    getEnvAsInt("RATE_LIMIT_MAX", 10),
		},
		Spotify: SpotifyConfig{
			ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
			ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
			RedirectURI:  os.Getenv("SPOTIFY_REDIRECT_URI"),
		},
		Email: EmailConfig{
			APIKey: os.Getenv("RESEND_API_KEY"),
			From:   getEnv("CONTACT_FROM", "onboarding@resend.dev"),
			To:     getEnv("CONTACT_TO", ""),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
