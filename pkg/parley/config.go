package parley

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/harunnryd/parley/pkg/configutil"
	"github.com/harunnryd/parley/pkg/dialogue"
)

// Config is the whole application configuration: the session knobs plus
// one provider selection per actor slot.
type Config struct {
	Environment string         `mapstructure:"environment"`
	LogLevel    string         `mapstructure:"log_level"`
	LogFormat   string         `mapstructure:"log_format"`
	Session     SessionSection `mapstructure:"session"`
	Actors      ActorsSection  `mapstructure:"actors"`
}

// SessionSection carries the orchestrator configuration record.
type SessionSection struct {
	SystemPrompt        string `mapstructure:"system_prompt"`
	Intro               string `mapstructure:"intro"`
	Farewell            string `mapstructure:"farewell"`
	Apology             string `mapstructure:"apology"`
	Voice               string `mapstructure:"voice"`
	FirstTurnPauseMS    int    `mapstructure:"first_turn_pause_ms"`
	TurnPauseMS         int    `mapstructure:"turn_pause_ms"`
	EnableTranscriptKey bool   `mapstructure:"enable_transcript_key"`
	EnableExitConfirm   bool   `mapstructure:"enable_exit_confirm"`
}

// ActorConfig selects one provider by name with free-form settings.
type ActorConfig struct {
	Provider string         `mapstructure:"provider"`
	Settings map[string]any `mapstructure:"settings"`
}

// ActorsSection names the providers for the three actor slots: the
// speech front-end (voice, attention, speech in/out), the operator key
// source, and the language model.
type ActorsSection struct {
	FrontEnd ActorConfig `mapstructure:"front_end"`
	Keys     ActorConfig `mapstructure:"keys"`
	LLM      ActorConfig `mapstructure:"llm"`
}

// LoadConfig reads a YAML config file with defaults and ${ENV}
// expansion in string values.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("session.first_turn_pause_ms", 4000)
	v.SetDefault("session.turn_pause_ms", 1500)
	v.SetDefault("session.enable_transcript_key", true)
	v.SetDefault("session.enable_exit_confirm", true)
	v.SetDefault("actors.front_end.provider", "console")
	v.SetDefault("actors.keys.provider", "console")
	v.SetDefault("actors.llm.provider", "openai")

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}

	expandConfig(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate checks the provider selections are present.
func (c *Config) Validate() error {
	if err := configutil.RequireString(c.Actors.FrontEnd.Provider, "actors.front_end.provider"); err != nil {
		return err
	}
	if err := configutil.RequireString(c.Actors.Keys.Provider, "actors.keys.provider"); err != nil {
		return err
	}
	return configutil.RequireString(c.Actors.LLM.Provider, "actors.llm.provider")
}

// SessionConfig converts the session section into the orchestrator's
// configuration record.
func (c *Config) SessionConfig() dialogue.SessionConfig {
	return dialogue.SessionConfig{
		SystemPrompt:        c.Session.SystemPrompt,
		IntroLine:           c.Session.Intro,
		FarewellLine:        c.Session.Farewell,
		ApologyLine:         c.Session.Apology,
		VoiceName:           c.Session.Voice,
		FirstTurnPause:      time.Duration(c.Session.FirstTurnPauseMS) * time.Millisecond,
		TurnPause:           time.Duration(c.Session.TurnPauseMS) * time.Millisecond,
		EnableTranscriptKey: c.Session.EnableTranscriptKey,
		EnableExitConfirm:   c.Session.EnableExitConfirm,
	}
}

func expandConfig(cfg *Config) {
	cfg.Session.SystemPrompt = os.ExpandEnv(cfg.Session.SystemPrompt)
	cfg.Session.Voice = os.ExpandEnv(cfg.Session.Voice)
	cfg.Actors.FrontEnd.Settings = expandSettings(cfg.Actors.FrontEnd.Settings)
	cfg.Actors.Keys.Settings = expandSettings(cfg.Actors.Keys.Settings)
	cfg.Actors.LLM.Settings = expandSettings(cfg.Actors.LLM.Settings)
}

func expandSettings(settings map[string]any) map[string]any {
	if settings == nil {
		return nil
	}
	for k, v := range settings {
		settings[k] = expandAny(v)
	}
	return settings
}

func expandAny(v any) any {
	switch val := v.(type) {
	case string:
		return os.ExpandEnv(val)
	case []any:
		for i := range val {
			val[i] = expandAny(val[i])
		}
		return val
	case map[string]any:
		for k, item := range val {
			val[k] = expandAny(item)
		}
		return val
	default:
		return v
	}
}

func normalizeProvider(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
