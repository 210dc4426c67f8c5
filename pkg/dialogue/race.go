package dialogue

import (
	"context"
	"log/slog"

	"github.com/harunnryd/parley/pkg/errorsx"
)

// InputKind tags which producer won an input race.
type InputKind int

const (
	InputSpeech InputKind = iota
	InputKeypress
)

// String returns the string representation of an InputKind.
func (k InputKind) String() string {
	if k == InputKeypress {
		return "KEYPRESS"
	}
	return "SPEECH"
}

// InputEvent is the settled result of an input race.
type InputEvent struct {
	Kind      InputKind
	Utterance string
	Key       string
}

// RaceScheduler runs the speech listener and the key source
// concurrently and resolves on whichever settles first. The loser is
// not cancelled: it runs to completion and its result lands in a
// per-race buffered channel that nothing drains, so a stale completion
// can never reach a session state that has already moved on.
type RaceScheduler struct {
	input SpeechInput
	keys  KeySource
	log   *slog.Logger
}

// NewRaceScheduler wires the two racing producers.
func NewRaceScheduler(input SpeechInput, keys KeySource, log *slog.Logger) *RaceScheduler {
	if log == nil {
		log = slog.Default()
	}
	return &RaceScheduler{input: input, keys: keys, log: log}
}

type raceOutcome struct {
	event InputEvent
	err   error
}

// Next starts a fresh race and returns the first settled result. A
// failure of the winning producer is surfaced as-is; the caller decides
// whether to restart the race.
func (r *RaceScheduler) Next(ctx context.Context) (InputEvent, error) {
	speechCh := make(chan raceOutcome, 1)
	keyCh := make(chan raceOutcome, 1)

	go func() {
		text, err := r.input.Listen(ctx)
		speechCh <- raceOutcome{
			event: InputEvent{Kind: InputSpeech, Utterance: text},
			err:   errorsx.Wrap(err, errorsx.ReasonListen),
		}
	}()
	go func() {
		key, err := r.keys.AwaitKey(ctx)
		keyCh <- raceOutcome{
			event: InputEvent{Kind: InputKeypress, Key: key},
			err:   errorsx.Wrap(err, errorsx.ReasonAwaitKey),
		}
	}()

	select {
	case <-ctx.Done():
		return InputEvent{}, ctx.Err()
	case out := <-speechCh:
		return out.event, out.err
	case out := <-keyCh:
		return out.event, out.err
	}
}
