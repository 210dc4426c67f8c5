package parley

import (
	"context"
	"log/slog"

	"github.com/harunnryd/parley/pkg/dialogue"
	"github.com/harunnryd/parley/pkg/logging"
	"github.com/harunnryd/parley/pkg/runner"
)

// Engine assembles one session from config: it resolves the configured
// providers, builds the orchestrator, and runs it to its terminal
// state.
type Engine struct {
	cfg      Config
	registry *ProviderRegistry
	log      *slog.Logger
}

// NewEngine builds an engine over a provider registry. A nil registry
// means the built-in providers.
func NewEngine(cfg Config, registry *ProviderRegistry) *Engine {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Engine{
		cfg:      cfg,
		registry: registry,
		log:      logging.NewComponentLogger(slog.Default(), "engine"),
	}
}

// Run drives a full session. It returns once the orchestrator reaches
// its terminal state or the context is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	frontEnd, err := e.registry.BuildFrontEnd(ctx, e.cfg.Actors.FrontEnd.Provider, e.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := frontEnd.Close(); err != nil {
			e.log.Warn("front_end_close_failed", slog.String("error", err.Error()))
		}
	}()

	keys, err := e.registry.BuildKeySource(e.cfg.Actors.Keys.Provider, e.cfg)
	if err != nil {
		return err
	}
	model, err := e.registry.BuildLLM(e.cfg.Actors.LLM.Provider, e.cfg)
	if err != nil {
		return err
	}

	orch := dialogue.NewOrchestrator(e.cfg.SessionConfig(), dialogue.Actors{
		Voice:     frontEnd.Voice,
		Attention: frontEnd.Attention,
		Output:    frontEnd.Output,
		Input:     frontEnd.Input,
		Keys:      keys,
		Model:     model,
	})

	session := runner.NewSessionRunner(orch.Run, runner.Hooks{
		OnStart: func() {
			e.log.Info("session_ready",
				slog.String("environment", e.cfg.Environment),
				slog.String("front_end", e.cfg.Actors.FrontEnd.Provider),
				slog.String("keys", e.cfg.Actors.Keys.Provider),
				slog.String("llm", e.cfg.Actors.LLM.Provider))
		},
		OnStop: func() {
			e.log.Info("session_stopped")
		},
	})
	return session.Run(ctx)
}
