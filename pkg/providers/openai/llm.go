// Package openai implements the language-model actor over the OpenAI
// chat completions API.
package openai

import (
	"context"
	"errors"
	"log/slog"

	gopenai "github.com/sashabaranov/go-openai"

	"github.com/harunnryd/parley/pkg/dialogue"
	"github.com/harunnryd/parley/pkg/errorsx"
)

// Config selects the model endpoint. BaseURL is optional and mainly
// serves OpenAI-compatible gateways and tests.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Model calls chat completions with the full ordered history.
type Model struct {
	cfg    Config
	client *gopenai.Client
	log    *slog.Logger
}

// New builds the model actor.
func New(cfg Config, log *slog.Logger) *Model {
	if cfg.Model == "" {
		cfg.Model = gopenai.GPT4oMini
	}
	if log == nil {
		log = slog.Default()
	}
	clientCfg := gopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Model{cfg: cfg, client: gopenai.NewClientWithConfig(clientCfg), log: log}
}

// Complete sends the history in order and returns the reply text. The
// call is single-shot; recovery policy belongs to the caller.
func (m *Model) Complete(ctx context.Context, history []dialogue.Turn) (string, error) {
	messages := make([]gopenai.ChatCompletionMessage, 0, len(history))
	for _, t := range history {
		messages = append(messages, gopenai.ChatCompletionMessage{
			Role:    providerRole(t.Role),
			Content: t.Content,
		})
	}
	resp, err := m.client.CreateChatCompletion(ctx, gopenai.ChatCompletionRequest{
		Model:    m.cfg.Model,
		Messages: messages,
	})
	if err != nil {
		return "", errorsx.Wrap(err, errorsx.ReasonLLMComplete)
	}
	if len(resp.Choices) == 0 {
		return "", errorsx.Wrap(errors.New("no choices in completion"), errorsx.ReasonLLMComplete)
	}
	m.log.Debug("completion",
		slog.String("model", m.cfg.Model),
		slog.Int("history", len(history)),
		slog.Int("completion_tokens", resp.Usage.CompletionTokens))
	return resp.Choices[0].Message.Content, nil
}

func providerRole(role dialogue.Role) string {
	switch role {
	case dialogue.RoleSystem:
		return gopenai.ChatMessageRoleSystem
	case dialogue.RoleUser:
		return gopenai.ChatMessageRoleUser
	default:
		return gopenai.ChatMessageRoleAssistant
	}
}
