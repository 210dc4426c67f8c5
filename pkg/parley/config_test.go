package parley

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Fatalf("unexpected log defaults: %q %q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Actors.FrontEnd.Provider != "console" || cfg.Actors.LLM.Provider != "openai" {
		t.Fatalf("unexpected provider defaults: %+v", cfg.Actors)
	}
	session := cfg.SessionConfig()
	if session.FirstTurnPause != 4*time.Second || session.TurnPause != 1500*time.Millisecond {
		t.Fatalf("unexpected pause defaults: %+v", session)
	}
	if !session.EnableTranscriptKey || !session.EnableExitConfirm {
		t.Fatalf("operator conveniences should default on")
	}
}

func TestLoadConfigExpandsEnvInSettings(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "sk-test-123")
	path := writeConfig(t, `
actors:
  llm:
    provider: openai
    settings:
      api_key: "${TEST_OPENAI_KEY}"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if got := cfg.Actors.LLM.Settings["api_key"]; got != "sk-test-123" {
		t.Fatalf("expected env expansion, got %v", got)
	}
}

func TestLoadConfigRejectsMissingProvider(t *testing.T) {
	path := writeConfig(t, `
actors:
  llm:
    provider: ""
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected validation error for empty provider")
	}
}

func TestSessionConfigCarriesOverrides(t *testing.T) {
	path := writeConfig(t, `
session:
  voice: "Matthew"
  intro: "Hi!"
  first_turn_pause_ms: 250
  enable_exit_confirm: false
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	session := cfg.SessionConfig()
	if session.VoiceName != "Matthew" || session.IntroLine != "Hi!" {
		t.Fatalf("overrides not applied: %+v", session)
	}
	if session.FirstTurnPause != 250*time.Millisecond {
		t.Fatalf("pause override not applied: %v", session.FirstTurnPause)
	}
	if session.EnableExitConfirm {
		t.Fatalf("exit confirm override not applied")
	}
}
