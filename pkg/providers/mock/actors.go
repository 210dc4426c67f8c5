// Package mock provides scripted actors for tests and robot-less dry
// runs of the session driver.
package mock

import (
	"context"
	"errors"
	"sync"

	"github.com/harunnryd/parley/pkg/dialogue"
)

// Model is a scripted language model. It replies with queued responses
// in order, then with the fallback text. Queue an error to script a
// model failure.
type Model struct {
	mu       sync.Mutex
	fallback string
	script   []modelStep
	calls    [][]dialogue.Turn
}

type modelStep struct {
	text string
	err  error
}

// NewModel builds a scripted model with a fallback reply.
func NewModel(fallback string) *Model {
	if fallback == "" {
		fallback = "mock reply"
	}
	return &Model{fallback: fallback}
}

// QueueReply schedules the next successful completion.
func (m *Model) QueueReply(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, modelStep{text: text})
}

// QueueError schedules the next completion to fail.
func (m *Model) QueueError(err error) {
	if err == nil {
		err = errors.New("mock llm failure")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, modelStep{err: err})
}

// Complete pops the next scripted step and records the history it saw.
func (m *Model) Complete(_ context.Context, history []dialogue.Turn) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make([]dialogue.Turn, len(history))
	copy(snapshot, history)
	m.calls = append(m.calls, snapshot)
	if len(m.script) == 0 {
		return m.fallback, nil
	}
	step := m.script[0]
	m.script = m.script[1:]
	if step.err != nil {
		return "", step.err
	}
	return step.text, nil
}

// Calls returns the histories passed to Complete, in order.
func (m *Model) Calls() [][]dialogue.Turn {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// KeySource pops queued keys per AwaitKey call and blocks on an empty
// queue until the context ends.
type KeySource struct {
	mu    sync.Mutex
	queue []string
}

// NewKeySource builds a key source preloaded with keys.
func NewKeySource(keys ...string) *KeySource {
	return &KeySource{queue: append([]string{}, keys...)}
}

// Push appends a key to the queue.
func (k *KeySource) Push(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.queue = append(k.queue, key)
}

// AwaitKey pops the next queued key.
func (k *KeySource) AwaitKey(ctx context.Context) (string, error) {
	k.mu.Lock()
	if len(k.queue) > 0 {
		key := k.queue[0]
		k.queue = k.queue[1:]
		k.mu.Unlock()
		return key, nil
	}
	k.mu.Unlock()
	<-ctx.Done()
	return "", ctx.Err()
}

// SpeechInput pops queued utterances per Listen call and blocks on an
// empty queue until the context ends.
type SpeechInput struct {
	mu    sync.Mutex
	queue []speechStep
}

type speechStep struct {
	text string
	err  error
}

// NewSpeechInput builds a speech input preloaded with utterances.
func NewSpeechInput(utterances ...string) *SpeechInput {
	s := &SpeechInput{}
	for _, u := range utterances {
		s.queue = append(s.queue, speechStep{text: u})
	}
	return s
}

// PushUtterance appends an utterance to the queue.
func (s *SpeechInput) PushUtterance(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, speechStep{text: text})
}

// PushError appends a recognition failure to the queue.
func (s *SpeechInput) PushError(err error) {
	if err == nil {
		err = errors.New("mock recognition failure")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, speechStep{err: err})
}

// Listen pops the next queued utterance.
func (s *SpeechInput) Listen(ctx context.Context) (string, error) {
	s.mu.Lock()
	if len(s.queue) > 0 {
		step := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()
		return step.text, step.err
	}
	s.mu.Unlock()
	<-ctx.Done()
	return "", ctx.Err()
}

// Output records every delivery instead of speaking it.
type Output struct {
	mu         sync.Mutex
	deliveries []Delivery
	failWith   error
}

// Delivery is one recorded Speak call.
type Delivery struct {
	Utterance dialogue.Utterance
	FirstTurn bool
}

// NewOutput builds a capturing speech output.
func NewOutput() *Output {
	return &Output{}
}

// FailWith makes every subsequent Speak return err.
func (o *Output) FailWith(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failWith = err
}

// Speak records the delivery.
func (o *Output) Speak(_ context.Context, u dialogue.Utterance, firstTurn bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.deliveries = append(o.deliveries, Delivery{Utterance: u, FirstTurn: firstTurn})
	return o.failWith
}

// Deliveries returns the recorded Speak calls in order.
func (o *Output) Deliveries() []Delivery {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Delivery{}, o.deliveries...)
}

// FrontEnd is a no-op voice and attention actor.
type FrontEnd struct {
	mu        sync.Mutex
	voice     string
	attended  int
	voiceErr  error
	attendErr error
}

// NewFrontEnd builds a no-op front-end.
func NewFrontEnd() *FrontEnd {
	return &FrontEnd{}
}

// SetVoice records the requested voice.
func (f *FrontEnd) SetVoice(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.voiceErr != nil {
		return f.voiceErr
	}
	f.voice = name
	return nil
}

// AttendNearestUser counts attention requests.
func (f *FrontEnd) AttendNearestUser(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.attendErr != nil {
		return f.attendErr
	}
	f.attended++
	return nil
}

// Voice returns the last voice set.
func (f *FrontEnd) Voice() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.voice
}

// FailSetup makes both setup calls fail with err.
func (f *FrontEnd) FailSetup(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.voiceErr = err
	f.attendErr = err
}
