// Package relay forwards chat requests to the completion provider on behalf of
// callers that must never hold the provider credential.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/scout/internal/chat"
	"github.com/MikeSquared-Agency/scout/internal/openai"
)

// ErrNotConfigured is returned for every request when no provider credential
// was supplied at startup.
var ErrNotConfigured = errors.New("OPENAI_API_KEY is not configured")

// ValidationError marks caller input the relay refuses to forward.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletion, error)
}

// UsageRecorder receives token accounting for each successful completion.
type UsageRecorder interface {
	RecordUsage(model string, usage chat.Usage) error
}

type Service struct {
	provider     Completer
	defaultModel string
	usage        UsageRecorder
	logger       *slog.Logger
}

// New builds a relay. A nil provider means the credential is missing.
func New(provider Completer, defaultModel string, logger *slog.Logger) *Service {
	return &Service{provider: provider, defaultModel: defaultModel, logger: logger}
}

func (s *Service) SetUsageRecorder(r UsageRecorder) {
	s.usage = r
}

// Configured reports whether a provider credential was supplied at startup.
func (s *Service) Configured() bool {
	return s.provider != nil
}

// Send validates req, forwards it and returns the first completion choice.
func (s *Service) Send(ctx context.Context, req chat.Request) (*chat.Response, error) {
	if s.provider == nil {
		return nil, ErrNotConfigured
	}
	if err := Validate(req); err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = s.defaultModel
	}

	messages := make([]openai.Message, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = openai.Message{Role: m.Role, Content: m.Content}
	}

	completion, err := s.provider.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("chat completion: no choices returned")
	}

	first := completion.Choices[0].Message
	resp := &chat.Response{
		Message: chat.Message{Role: first.Role, Content: first.Content},
		Usage: chat.Usage{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
		},
	}

	if s.usage != nil {
		if err := s.usage.RecordUsage(model, resp.Usage); err != nil {
			s.logger.Warn("failed to record usage", "model", model, "error", err)
		}
	}

	s.logger.Debug("chat completion relayed",
		"model", model,
		"messages", len(req.Messages),
		"total_tokens", resp.Usage.TotalTokens,
	)

	return resp, nil
}

// Validate checks the preconditions that hold before anything is forwarded.
func Validate(req chat.Request) error {
	if len(req.Messages) == 0 {
		return &ValidationError{Message: "messages array is required"}
	}
	if t := req.Temperature; t != nil && (*t < 0 || *t > 2) {
		return &ValidationError{Message: "temperature must be between 0 and 2"}
	}
	return nil
}
