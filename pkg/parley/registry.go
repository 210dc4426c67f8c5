package parley

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/harunnryd/parley/pkg/configutil"
	"github.com/harunnryd/parley/pkg/dialogue"
	"github.com/harunnryd/parley/pkg/logging"
	"github.com/harunnryd/parley/pkg/providers/console"
	"github.com/harunnryd/parley/pkg/providers/mock"
	"github.com/harunnryd/parley/pkg/providers/openai"
	"github.com/harunnryd/parley/pkg/providers/robot"
)

// FrontEnd bundles the four speech-side actors one provider supplies.
// Voice and Attention may be nil when the provider has no physical
// front-end to configure.
type FrontEnd struct {
	Voice     dialogue.VoiceConfig
	Attention dialogue.Attention
	Output    dialogue.SpeechOutput
	Input     dialogue.SpeechInput
	Closer    io.Closer
}

// Close releases the front-end's resources, if it holds any.
func (f FrontEnd) Close() error {
	if f.Closer != nil {
		return f.Closer.Close()
	}
	return nil
}

type FrontEndFactory func(ctx context.Context, cfg Config) (FrontEnd, error)
type KeySourceFactory func(cfg Config) (dialogue.KeySource, error)
type LLMFactory func(cfg Config) (dialogue.LanguageModel, error)

// ProviderRegistry maps provider names to factories per actor slot.
type ProviderRegistry struct {
	frontends map[string]FrontEndFactory
	keys      map[string]KeySourceFactory
	llms      map[string]LLMFactory
}

// NewProviderRegistry returns an empty registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		frontends: make(map[string]FrontEndFactory),
		keys:      make(map[string]KeySourceFactory),
		llms:      make(map[string]LLMFactory),
	}
}

func (r *ProviderRegistry) RegisterFrontEnd(name string, factory FrontEndFactory) {
	r.frontends[normalizeProvider(name)] = factory
}

func (r *ProviderRegistry) RegisterKeySource(name string, factory KeySourceFactory) {
	r.keys[normalizeProvider(name)] = factory
}

func (r *ProviderRegistry) RegisterLLM(name string, factory LLMFactory) {
	r.llms[normalizeProvider(name)] = factory
}

func (r *ProviderRegistry) BuildFrontEnd(ctx context.Context, provider string, cfg Config) (FrontEnd, error) {
	fn := r.frontends[normalizeProvider(provider)]
	if fn == nil {
		return FrontEnd{}, fmt.Errorf("front-end provider not registered: %s", provider)
	}
	return fn(ctx, cfg)
}

func (r *ProviderRegistry) BuildKeySource(provider string, cfg Config) (dialogue.KeySource, error) {
	fn := r.keys[normalizeProvider(provider)]
	if fn == nil {
		return nil, fmt.Errorf("key source provider not registered: %s", provider)
	}
	return fn(cfg)
}

func (r *ProviderRegistry) BuildLLM(provider string, cfg Config) (dialogue.LanguageModel, error) {
	fn := r.llms[normalizeProvider(provider)]
	if fn == nil {
		return nil, fmt.Errorf("llm provider not registered: %s", provider)
	}
	return fn(cfg)
}

type robotSettings struct {
	URL string `mapstructure:"url"`
}

type openAISettings struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type mockLLMSettings struct {
	Reply string `mapstructure:"reply"`
}

// DefaultRegistry registers the built-in providers: robot and console
// front-ends, console and mock key sources, openai and mock models.
func DefaultRegistry() *ProviderRegistry {
	r := NewProviderRegistry()

	r.RegisterFrontEnd("robot", func(ctx context.Context, cfg Config) (FrontEnd, error) {
		raw := cfg.Actors.FrontEnd.Settings
		if err := configutil.ValidateSettings(raw, configutil.Schema{Required: []string{"url"}}); err != nil {
			return FrontEnd{}, fmt.Errorf("robot settings: %w", err)
		}
		var settings robotSettings
		if err := configutil.DecodeSettings(raw, &settings); err != nil {
			return FrontEnd{}, fmt.Errorf("robot settings: %w", err)
		}
		session := cfg.SessionConfig()
		client, err := robot.Connect(ctx, robot.Config{
			URL:            settings.URL,
			FirstTurnPause: session.FirstTurnPause,
			TurnPause:      session.TurnPause,
		}, logging.NewComponentLogger(slog.Default(), "robot"))
		if err != nil {
			return FrontEnd{}, err
		}
		return FrontEnd{
			Voice:     client,
			Attention: client,
			Output:    client,
			Input:     client,
			Closer:    client,
		}, nil
	})

	r.RegisterFrontEnd("console", func(_ context.Context, cfg Config) (FrontEnd, error) {
		session := cfg.SessionConfig()
		out := console.NewOutput(console.OutputConfig{
			FirstTurnPause: session.FirstTurnPause,
			TurnPause:      session.TurnPause,
		}, nil, logging.NewComponentLogger(slog.Default(), "console"))
		return FrontEnd{Output: out, Input: console.SilentInput{}}, nil
	})

	r.RegisterFrontEnd("mock", func(_ context.Context, _ Config) (FrontEnd, error) {
		front := mock.NewFrontEnd()
		return FrontEnd{
			Voice:     front,
			Attention: front,
			Output:    mock.NewOutput(),
			Input:     mock.NewSpeechInput(),
		}, nil
	})

	r.RegisterKeySource("console", func(_ Config) (dialogue.KeySource, error) {
		return console.NewKeySource(nil, logging.NewComponentLogger(slog.Default(), "keys")), nil
	})
	r.RegisterKeySource("mock", func(_ Config) (dialogue.KeySource, error) {
		return mock.NewKeySource(), nil
	})

	r.RegisterLLM("openai", func(cfg Config) (dialogue.LanguageModel, error) {
		raw := cfg.Actors.LLM.Settings
		schema := configutil.Schema{Required: []string{"api_key"}, Optional: []string{"model", "base_url"}}
		if err := configutil.ValidateSettings(raw, schema); err != nil {
			return nil, fmt.Errorf("openai settings: %w", err)
		}
		var settings openAISettings
		if err := configutil.DecodeSettings(raw, &settings); err != nil {
			return nil, fmt.Errorf("openai settings: %w", err)
		}
		return openai.New(openai.Config{
			APIKey:  settings.APIKey,
			Model:   settings.Model,
			BaseURL: settings.BaseURL,
		}, logging.NewComponentLogger(slog.Default(), "openai")), nil
	})
	r.RegisterLLM("mock", func(cfg Config) (dialogue.LanguageModel, error) {
		var settings mockLLMSettings
		if err := configutil.DecodeSettings(cfg.Actors.LLM.Settings, &settings); err != nil {
			return nil, fmt.Errorf("mock llm settings: %w", err)
		}
		return mock.NewModel(settings.Reply), nil
	})

	return r
}
