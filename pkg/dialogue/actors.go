package dialogue

import "context"

// The orchestrator calls the outside world exclusively through these
// capability interfaces. Implementations live under pkg/providers; the
// orchestrator awaits a single settled result from every call and never
// retries internally.

// Utterance is a deliverable unit of speech output: either literal text
// or a reference to a pre-recorded audio clip. Exactly one is set.
type Utterance struct {
	Text     string
	AudioRef string
}

// VoiceConfig selects the voice on the speech front-end.
type VoiceConfig interface {
	SetVoice(ctx context.Context, name string) error
}

// Attention directs the front-end's gaze toward the closest user.
type Attention interface {
	AttendNearestUser(ctx context.Context) error
}

// SpeechOutput delivers one utterance and blocks through delivery plus
// the post-utterance pause. The pause is longer on the first turn to
// give the interlocutor room to start speaking.
type SpeechOutput interface {
	Speak(ctx context.Context, u Utterance, firstTurn bool) error
}

// SpeechInput captures a single utterance per call.
type SpeechInput interface {
	Listen(ctx context.Context) (string, error)
}

// KeySource yields a single-character operator token per call.
type KeySource interface {
	AwaitKey(ctx context.Context) (string, error)
}

// LanguageModel produces a reply from the full ordered conversation
// history. The history's order is the only ordering the model sees.
type LanguageModel interface {
	Complete(ctx context.Context, history []Turn) (string, error)
}
