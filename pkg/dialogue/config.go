package dialogue

import "time"

// Default scripted lines. A study overrides these from its config file.
const (
	DefaultSystemPrompt = "You are a thoughtful discussion partner in a study on moral dilemmas. " +
		"Keep replies short, conversational, and spoken-language friendly. " +
		"Ask at most one question per reply and never mention that this is an experiment."
	DefaultIntroLine    = "Hello! I heard you have been given a dilemma to think about. Tell me, what is on your mind?"
	DefaultFarewellLine = "Thank you for talking this through with me. Goodbye!"
	DefaultApologyLine  = "I am sorry, my thoughts slipped away for a moment. Could you say that again?"
)

// SessionConfig parameterizes one orchestrator run. The earlier
// sessions of the study differed only in these knobs, so a single
// machine reads them instead of near-duplicate variants.
type SessionConfig struct {
	SystemPrompt string
	IntroLine    string
	FarewellLine string
	ApologyLine  string
	VoiceName    string

	// Post-utterance pauses, applied by the speech-output actor. The
	// first turn pauses longer to hand the floor to the speaker.
	FirstTurnPause time.Duration
	TurnPause      time.Duration

	// Feature toggles for the list-transcript command and the
	// end-of-session dump confirmation.
	EnableTranscriptKey bool
	EnableExitConfirm   bool
}

// DefaultSessionConfig returns the configuration of the full study
// protocol: both operator conveniences enabled, standard pauses.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		SystemPrompt:        DefaultSystemPrompt,
		IntroLine:           DefaultIntroLine,
		FarewellLine:        DefaultFarewellLine,
		ApologyLine:         DefaultApologyLine,
		FirstTurnPause:      4 * time.Second,
		TurnPause:           1500 * time.Millisecond,
		EnableTranscriptKey: true,
		EnableExitConfirm:   true,
	}
}

func (c SessionConfig) withDefaults() SessionConfig {
	if c.SystemPrompt == "" {
		c.SystemPrompt = DefaultSystemPrompt
	}
	if c.IntroLine == "" {
		c.IntroLine = DefaultIntroLine
	}
	if c.FarewellLine == "" {
		c.FarewellLine = DefaultFarewellLine
	}
	if c.ApologyLine == "" {
		c.ApologyLine = DefaultApologyLine
	}
	return c
}
