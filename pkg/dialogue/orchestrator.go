package dialogue

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// State enumerates the orchestrator's positions between suspensions.
type State int

const (
	StateInit State = iota
	StateSpeakIntro
	StateListenRace
	StateCommit
	StateDispatch
	StateStimulate
	StateRespond
	StateSpeakResponse
	StateFarewell
	StateConfirmDump
	StateTerminal
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateSpeakIntro:
		return "SPEAK_INTRO"
	case StateListenRace:
		return "LISTEN_RACE"
	case StateCommit:
		return "COMMIT"
	case StateDispatch:
		return "DISPATCH"
	case StateStimulate:
		return "STIMULATE"
	case StateRespond:
		return "RESPOND"
	case StateSpeakResponse:
		return "SPEAK_RESPONSE"
	case StateFarewell:
		return "FAREWELL"
	case StateConfirmDump:
		return "CONFIRM_DUMP"
	case StateTerminal:
		return "TERMINAL"
	default:
		return "UNKNOWN"
	}
}

// Actors bundles the external capabilities one session talks to.
type Actors struct {
	Voice     VoiceConfig
	Attention Attention
	Output    SpeechOutput
	Input     SpeechInput
	Keys      KeySource
	Model     LanguageModel
}

// sessionState is the mutable context threaded through transitions.
// Only the orchestrator touches it, and only between suspensions.
type sessionState struct {
	history         []Turn
	isFirstTurn     bool
	pendingStimulus *Stimulus
	lastInputKey    string
	buffer          SpeechBuffer
}

// Orchestrator is the turn-taking state machine. It races speech input
// against operator keypresses, merges interrupted speech fragments into
// committed user turns, and sequences the speech-output and
// language-model actors around the operator's decisions.
type Orchestrator struct {
	cfg        SessionConfig
	actors     Actors
	race       inputRacer
	log        *slog.Logger
	transcript io.Writer

	state State
	sess  sessionState
}

// inputRacer is what the orchestrator needs from the race scheduler.
type inputRacer interface {
	Next(ctx context.Context) (InputEvent, error)
}

// NewOrchestrator seeds the session with the system turn and the intro
// line; the history only ever grows from there.
func NewOrchestrator(cfg SessionConfig, actors Actors) *Orchestrator {
	cfg = cfg.withDefaults()
	log := slog.Default().With(slog.String("component", "orchestrator"))
	return &Orchestrator{
		cfg:        cfg,
		actors:     actors,
		race:       NewRaceScheduler(actors.Input, actors.Keys, log),
		log:        log,
		transcript: os.Stdout,
		state:      StateInit,
		sess: sessionState{
			history: []Turn{
				NewTurn(RoleSystem, cfg.SystemPrompt),
				NewTurn(RoleAssistant, cfg.IntroLine),
			},
			isFirstTurn: true,
		},
	}
}

// SetTranscriptWriter redirects transcript dumps away from stdout.
func (o *Orchestrator) SetTranscriptWriter(w io.Writer) {
	if w != nil {
		o.transcript = w
	}
}

// SetLogger replaces the orchestrator's logger.
func (o *Orchestrator) SetLogger(log *slog.Logger) {
	if log != nil {
		o.log = log
	}
}

// State returns the machine's current state.
func (o *Orchestrator) State() State {
	return o.state
}

// History returns a copy of the conversation log.
func (o *Orchestrator) History() []Turn {
	out := make([]Turn, len(o.sess.history))
	copy(out, o.sess.history)
	return out
}

// Run drives the machine from Init to Terminal. It returns nil on a
// normal session end and the context error if the run is cancelled.
// No actor failure is fatal: setup and delivery errors are logged, race
// errors restart the race, and model errors turn into an apology line.
func (o *Orchestrator) Run(ctx context.Context) error {
	for o.state != StateTerminal {
		if err := ctx.Err(); err != nil {
			return err
		}
		prev := o.state
		o.state = o.step(ctx)
		if o.state != prev {
			o.log.Debug("transition",
				slog.String("from", prev.String()),
				slog.String("to", o.state.String()))
		}
	}
	o.log.Info("session_end", slog.Int("turns", len(o.sess.history)))
	return nil
}

func (o *Orchestrator) step(ctx context.Context) State {
	switch o.state {
	case StateInit:
		return o.stepInit(ctx)
	case StateSpeakIntro:
		return o.stepSpeakIntro(ctx)
	case StateListenRace:
		return o.stepListenRace(ctx)
	case StateCommit:
		return o.stepCommit()
	case StateDispatch:
		return o.stepDispatch()
	case StateStimulate:
		return o.stepStimulate(ctx)
	case StateRespond:
		return o.stepRespond(ctx)
	case StateSpeakResponse:
		return o.stepSpeakResponse(ctx)
	case StateFarewell:
		return o.stepFarewell(ctx)
	case StateConfirmDump:
		return o.stepConfirmDump(ctx)
	default:
		return StateTerminal
	}
}

// stepInit configures the front-end. Failures are logged and the
// session proceeds as if they had succeeded.
func (o *Orchestrator) stepInit(ctx context.Context) State {
	if o.actors.Voice != nil && o.cfg.VoiceName != "" {
		if err := o.actors.Voice.SetVoice(ctx, o.cfg.VoiceName); err != nil {
			o.log.Warn("voice_config_failed", slog.String("error", err.Error()))
		}
	}
	if o.actors.Attention != nil {
		if err := o.actors.Attention.AttendNearestUser(ctx); err != nil {
			o.log.Warn("attention_failed", slog.String("error", err.Error()))
		}
	}
	return StateSpeakIntro
}

func (o *Orchestrator) stepSpeakIntro(ctx context.Context) State {
	o.deliverLast(ctx)
	o.sess.isFirstTurn = false
	return StateListenRace
}

// stepListenRace races the listener against the key source. Speech
// accumulates in the buffer and the race restarts; a keypress is
// decisive and moves the machine to Commit. A failed race is logged and
// rerun.
func (o *Orchestrator) stepListenRace(ctx context.Context) State {
	o.sess.lastInputKey = ""
	ev, err := o.race.Next(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return o.state
		}
		o.log.Warn("input_race_failed", slog.String("error", err.Error()))
		return StateListenRace
	}
	switch ev.Kind {
	case InputSpeech:
		o.sess.buffer.Append(ev.Utterance)
		o.log.Info("speech_buffered",
			slog.String("utterance", ev.Utterance),
			slog.Int("fragments", o.sess.buffer.Len()))
		return StateListenRace
	default:
		o.sess.lastInputKey = ev.Key
		o.log.Info("decisive_key", slog.String("key", ev.Key))
		return StateCommit
	}
}

func (o *Orchestrator) stepCommit() State {
	o.sess.history = o.sess.buffer.Flush(o.sess.history)
	return StateDispatch
}

func (o *Orchestrator) stepDispatch() State {
	action := ClassifyKey(o.sess.lastInputKey)
	if action.Kind == ActionListTranscript && !o.cfg.EnableTranscriptKey {
		action = Action{Kind: ActionUnknown}
	}
	switch action.Kind {
	case ActionQuit:
		return StateFarewell
	case ActionDiscuss:
		return StateRespond
	case ActionListTranscript:
		o.printTranscript()
		return StateListenRace
	case ActionStimulus:
		if s, ok := LookupStimulus(action.Variant); ok {
			o.sess.pendingStimulus = &s
			return StateStimulate
		}
		o.log.Warn("stimulus_missing", slog.String("variant", string(action.Variant)))
		return StateListenRace
	default:
		// Confirm keys are only meaningful in ConfirmDump.
		o.log.Info("key_ignored", slog.String("key", o.sess.lastInputKey))
		return StateListenRace
	}
}

// stepStimulate appends the transcript annotation and delivers the
// canned payload, bypassing the language model entirely.
func (o *Orchestrator) stepStimulate(ctx context.Context) State {
	s := *o.sess.pendingStimulus
	o.sess.pendingStimulus = nil
	o.sess.history = append(o.sess.history, NewTurn(RoleAssistant, s.Annotation))
	o.log.Info("stimulus", slog.String("variant", string(s.Variant)))
	if err := o.actors.Output.Speak(ctx, s.Utterance(), o.sess.isFirstTurn); err != nil {
		o.log.Warn("stimulus_delivery_failed",
			slog.String("variant", string(s.Variant)),
			slog.String("error", err.Error()))
	}
	return StateListenRace
}

// stepRespond asks the model for a reply over the full history. A
// failure is recovered locally with the fixed apology line; the call is
// never retried.
func (o *Orchestrator) stepRespond(ctx context.Context) State {
	reply, err := o.actors.Model.Complete(ctx, o.sess.history)
	if err != nil {
		o.log.Warn("llm_failed", slog.String("error", err.Error()))
		reply = o.cfg.ApologyLine
	}
	o.sess.history = append(o.sess.history, NewTurn(RoleAssistant, reply))
	return StateSpeakResponse
}

func (o *Orchestrator) stepSpeakResponse(ctx context.Context) State {
	o.deliverLast(ctx)
	return StateListenRace
}

func (o *Orchestrator) stepFarewell(ctx context.Context) State {
	o.sess.history = append(o.sess.history, NewTurn(RoleAssistant, o.cfg.FarewellLine))
	o.deliverLast(ctx)
	if !o.cfg.EnableExitConfirm {
		return StateTerminal
	}
	return StateConfirmDump
}

// stepConfirmDump awaits a yes/no keypress deciding whether to dump the
// transcript before ending. Anything else re-prompts.
func (o *Orchestrator) stepConfirmDump(ctx context.Context) State {
	key, err := o.actors.Keys.AwaitKey(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return o.state
		}
		o.log.Warn("confirm_key_failed", slog.String("error", err.Error()))
		return StateConfirmDump
	}
	switch ClassifyKey(key).Kind {
	case ActionConfirmYes:
		o.printTranscript()
		return StateTerminal
	case ActionConfirmNo:
		return StateTerminal
	default:
		o.log.Info("confirm_key_ignored", slog.String("key", key))
		return StateConfirmDump
	}
}

// deliverLast speaks the newest history turn. Delivery failures are
// logged and turn-taking proceeds; a missed utterance must not deadlock
// the session.
func (o *Orchestrator) deliverLast(ctx context.Context) {
	last := o.sess.history[len(o.sess.history)-1]
	if err := o.actors.Output.Speak(ctx, Utterance{Text: last.Content}, o.sess.isFirstTurn); err != nil {
		o.log.Warn("delivery_failed", slog.String("error", err.Error()))
	}
}

func (o *Orchestrator) printTranscript() {
	if err := WriteTranscript(o.transcript, o.sess.history); err != nil {
		o.log.Warn("transcript_write_failed", slog.String("error", err.Error()))
	}
}
