package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"portfolio-backend/internal/config"

	openai "github.com/sashabaranov/go-openai"
)

// FallbackReply is returned when the gateway answers without any usable
// choice; the assistant stays in character instead of surfacing an error.
const FallbackReply = "I'm sorry, I couldn't generate a response. Please try again."

// CompletionDelta is one increment of a streamed completion. A value
// with Err set is terminal; the channel is closed right after.
type CompletionDelta struct {
	Content string
	Err     error
}

type CompletionClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// referrerTransport adds the attribution headers OpenRouter expects on
// every request.
type referrerTransport struct {
	base     http.RoundTripper
	siteURL  string
	siteName string
}

func (t *referrerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("HTTP-Referer", t.siteURL)
	req.Header.Set("X-Title", t.siteName)
	return t.base.RoundTrip(req)
}

func NewCompletionClient(cfg *config.ChatConfig) *CompletionClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &referrerTransport{
			base:     http.DefaultTransport,
			siteURL:  cfg.SiteURL,
			siteName: cfg.SiteName,
		},
	}

	return &CompletionClient{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

func (c *CompletionClient) buildRequest(message string, stream bool) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: personaContext},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Stream:      stream,
	}
}

// Complete performs a synchronous completion and returns the full text.
func (c *CompletionClient) Complete(ctx context.Context, message string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, c.buildRequest(message, false))
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return FallbackReply, nil
	}
	return resp.Choices[0].Message.Content, nil
}

// StreamCompletion starts a streaming completion and returns a channel
// of content deltas in upstream order. The channel is closed when the
// upstream stream ends; a mid-stream failure is delivered as a final
// delta with Err set. The underlying stream is closed on every exit
// path, including caller cancellation via ctx.
func (c *CompletionClient) StreamCompletion(ctx context.Context, message string) (<-chan CompletionDelta, error) {
	stream, err := c.client.CreateChatCompletionStream(ctx, c.buildRequest(message, true))
	if err != nil {
		return nil, fmt.Errorf("create completion stream: %w", err)
	}

	deltas := make(chan CompletionDelta, 16)

	go func() {
		defer stream.Close()
		defer close(deltas)

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				select {
				case deltas <- CompletionDelta{Err: err}:
				case <-ctx.Done():
				}
				return
			}

			if len(resp.Choices) == 0 {
				continue
			}
			content := resp.Choices[0].Delta.Content
			if content == "" {
				continue
			}

			select {
			case deltas <- CompletionDelta{Content: content}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return deltas, nil
}
