package runner

import (
	"context"
	"errors"
	"sync/atomic"
)

// SessionRunner wraps a finite session function with lifecycle state,
// hooks, and the startup banner. Unlike a server it runs to completion
// rather than blocking on the context.
type SessionRunner struct {
	state int32
	run   func(ctx context.Context) error
	hooks Hooks
}

// NewSessionRunner builds a runner around the session function.
func NewSessionRunner(run func(ctx context.Context) error, hooks Hooks) *SessionRunner {
	return &SessionRunner{
		state: int32(StateNew),
		run:   run,
		hooks: hooks,
	}
}

// Run executes the session once. A second call is an error.
func (r *SessionRunner) Run(ctx context.Context) error {
	if !r.casState(StateNew, StateStarting) {
		return errors.New("invalid state transition")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	PrintBanner()
	if r.hooks.OnStart != nil {
		r.hooks.OnStart()
	}
	r.setState(StateRunning)
	err := r.run(ctx)
	if r.hooks.OnStop != nil {
		r.hooks.OnStop()
	}
	r.setState(StateStopped)
	return err
}

// State returns the runner's lifecycle state.
func (r *SessionRunner) State() State {
	return State(atomic.LoadInt32(&r.state))
}

func (r *SessionRunner) casState(from, to State) bool {
	return atomic.CompareAndSwapInt32(&r.state, int32(from), int32(to))
}

func (r *SessionRunner) setState(s State) {
	atomic.StoreInt32(&r.state, int32(s))
}
