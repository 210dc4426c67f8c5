package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/harunnryd/parley/pkg/dialogue"
)

func TestAwaitKeySkipsBlankLinesAndLowercases(t *testing.T) {
	input := strings.NewReader("\n\nL\n")
	k := NewKeySource(input, nil)
	key, err := k.AwaitKey(context.Background())
	if err != nil {
		t.Fatalf("await key error: %v", err)
	}
	if key != "l" {
		t.Fatalf("expected %q, got %q", "l", key)
	}
}

func TestAwaitKeyTakesFirstCharacterOnly(t *testing.T) {
	k := NewKeySource(strings.NewReader("yes\n"), nil)
	key, err := k.AwaitKey(context.Background())
	if err != nil {
		t.Fatalf("await key error: %v", err)
	}
	if key != "y" {
		t.Fatalf("expected %q, got %q", "y", key)
	}
}

func TestAwaitKeyErrorOnClosedInput(t *testing.T) {
	k := NewKeySource(strings.NewReader(""), nil)
	if _, err := k.AwaitKey(context.Background()); err == nil {
		t.Fatalf("expected error on exhausted input")
	}
}

func TestOutputPrintsTextAndAudio(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutput(OutputConfig{}, &buf, nil)

	if err := o.Speak(context.Background(), dialogue.Utterance{Text: "hello"}, false); err != nil {
		t.Fatalf("speak error: %v", err)
	}
	if err := o.Speak(context.Background(), dialogue.Utterance{AudioRef: "pause_doctor.wav"}, false); err != nil {
		t.Fatalf("speak error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, ">> hello") {
		t.Fatalf("expected text delivery, got %q", out)
	}
	if !strings.Contains(out, "[audio] pause_doctor.wav") {
		t.Fatalf("expected audio delivery, got %q", out)
	}
}

func TestOutputPausesLongerOnFirstTurn(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutput(OutputConfig{
		FirstTurnPause: 60 * time.Millisecond,
		TurnPause:      time.Millisecond,
	}, &buf, nil)

	start := time.Now()
	if err := o.Speak(context.Background(), dialogue.Utterance{Text: "hi"}, true); err != nil {
		t.Fatalf("speak error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Fatalf("first turn returned before the long pause: %v", elapsed)
	}
}

func TestSilentInputBlocksUntilCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := SilentInput{}.Listen(ctx)
		done <- err
	}()
	cancel()
	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("expected context error")
		}
	case <-time.After(time.Second):
		t.Fatalf("silent input did not honor cancellation")
	}
}
