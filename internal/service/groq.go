package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"easyhome/internal/config"
	"easyhome/internal/model"
)

// LLMClient is the language-model interface the chat pipeline depends on
type LLMClient interface {
	GenerateChatResponse(ctx context.Context, messages []model.ChatMessage) (string, error)
	IsEnabled() bool
}

// GroqClient calls Groq's OpenAI-compatible chat completion API
type GroqClient struct {
	api *openai.Client
	cfg *config.GroqConfig
}

// NewGroqClient creates a new Groq client from configuration
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.APIBase
	clientCfg.HTTPClient = &http.Client{
		Timeout: time.Duration(cfg.Timeout) * time.Second,
	}

	return &GroqClient{
		api: openai.NewClientWithConfig(clientCfg),
		cfg: cfg,
	}
}

// IsEnabled reports whether an API credential is configured
func (c *GroqClient) IsEnabled() bool {
	return c.cfg.APIKey != ""
}

// GenerateChatResponse sends the assembled prompt and returns the completion
// text. No retries: a failure is a terminal outcome for the turn.
func (c *GroqClient) GenerateChatResponse(ctx context.Context, messages []model.ChatMessage) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.cfg.ChatModel,
		Temperature: float32(c.cfg.Temperature),
		MaxTokens:   c.cfg.MaxTokens,
		Messages:    toAPIMessages(messages),
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("groq returned empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

func toAPIMessages(msgs []model.ChatMessage) []openai.ChatCompletionMessage {
	res := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		res = append(res, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return res
}

// classifyUpstreamError maps a completion failure to a user-facing message.
// The client's typed *openai.APIError carries the HTTP status, so the
// classification is structural first; matching on the error text is only a
// fallback for transport-level failures.
func classifyUpstreamError(err error) *Error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return newError(ErrorUpstream, MsgAPIConfigError, err)
		case http.StatusTooManyRequests:
			return newError(ErrorRateLimited, MsgRateLimited, err)
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key"):
		return newError(ErrorUpstream, MsgAPIConfigError, err)
	case strings.Contains(msg, "rate limit"):
		return newError(ErrorRateLimited, MsgRateLimited, err)
	}

	return newError(ErrorUpstream, MsgGenerationFailed, err)
}
