// Package console implements the operator-facing actors on a plain
// terminal: a key source reading single-character tokens from stdin and
// a speech output that prints instead of speaking, for robot-less dry
// runs.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/harunnryd/parley/pkg/dialogue"
	"github.com/harunnryd/parley/pkg/errorsx"
)

// KeySource reads one token per line from a reader, typically stdin.
// Only the first character of a line counts; blank lines are skipped.
type KeySource struct {
	reader *bufio.Reader
	log    *slog.Logger
}

// NewKeySource builds a key source over r. A nil r means stdin.
func NewKeySource(r io.Reader, log *slog.Logger) *KeySource {
	if r == nil {
		r = os.Stdin
	}
	if log == nil {
		log = slog.Default()
	}
	return &KeySource{reader: bufio.NewReader(r), log: log}
}

// AwaitKey blocks until a non-empty line arrives and returns its first
// character, lowercased. The read itself is not cancellable; a context
// cancellation is honored on the next delivery.
func (k *KeySource) AwaitKey(ctx context.Context) (string, error) {
	for {
		line, err := k.reader.ReadString('\n')
		if err != nil {
			return "", errorsx.Wrap(err, errorsx.ReasonAwaitKey)
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return strings.ToLower(line[:1]), nil
	}
}

// SilentInput is a speech input that never hears anything; dry runs on
// a plain terminal are keypress-only.
type SilentInput struct{}

// Listen blocks until the context ends.
func (SilentInput) Listen(ctx context.Context) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

// OutputConfig holds the console output pauses, mirroring the
// turn-taking rhythm a physical speaker would get.
type OutputConfig struct {
	FirstTurnPause time.Duration
	TurnPause      time.Duration
}

// Output prints deliveries to a writer and then sleeps through the
// post-utterance pause, so the caller blocks exactly as it would on a
// speaking robot.
type Output struct {
	cfg OutputConfig
	w   io.Writer
	log *slog.Logger
}

// NewOutput builds a console speech output. A nil w means stdout.
func NewOutput(cfg OutputConfig, w io.Writer, log *slog.Logger) *Output {
	if w == nil {
		w = os.Stdout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Output{cfg: cfg, w: w, log: log}
}

// Speak prints the utterance (or its audio reference) and pauses.
func (o *Output) Speak(ctx context.Context, u dialogue.Utterance, firstTurn bool) error {
	var err error
	if u.AudioRef != "" {
		_, err = fmt.Fprintf(o.w, "[audio] %s\n", u.AudioRef)
	} else {
		_, err = fmt.Fprintf(o.w, ">> %s\n", u.Text)
	}
	if err != nil {
		return errorsx.Wrap(err, errorsx.ReasonSpeak)
	}
	pause := o.cfg.TurnPause
	if firstTurn {
		pause = o.cfg.FirstTurnPause
	}
	if pause > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pause):
		}
	}
	return nil
}
