package dialogue

// ActionKind enumerates what a decisive keypress selects.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionQuit
	ActionDiscuss
	ActionListTranscript
	ActionStimulus
	ActionConfirmYes
	ActionConfirmNo
)

// String returns the string representation of an ActionKind.
func (k ActionKind) String() string {
	switch k {
	case ActionQuit:
		return "QUIT"
	case ActionDiscuss:
		return "DISCUSS"
	case ActionListTranscript:
		return "LIST_TRANSCRIPT"
	case ActionStimulus:
		return "STIMULUS"
	case ActionConfirmYes:
		return "CONFIRM_YES"
	case ActionConfirmNo:
		return "CONFIRM_NO"
	default:
		return "UNKNOWN"
	}
}

// Action is a classified keypress. Variant is set only for stimulus
// actions.
type Action struct {
	Kind    ActionKind
	Variant StimulusVariant
}

// actionTable is the full key partition. It is a plain lookup, so the
// classification is total and mutually exclusive regardless of any
// evaluation order.
var actionTable = map[string]Action{
	"0": {Kind: ActionQuit},
	"l": {Kind: ActionDiscuss},
	"m": {Kind: ActionListTranscript},
	"y": {Kind: ActionConfirmYes},
	"n": {Kind: ActionConfirmNo},

	"1": {Kind: ActionStimulus, Variant: StimulusQuestioningDoctor},
	"2": {Kind: ActionStimulus, Variant: StimulusQuestioningSoldier},
	"3": {Kind: ActionStimulus, Variant: StimulusQuestioningJudge},
	"4": {Kind: ActionStimulus, Variant: StimulusQuestioningBystander},
	"5": {Kind: ActionStimulus, Variant: StimulusPausedDoctor},
	"6": {Kind: ActionStimulus, Variant: StimulusPausedSoldier},
	"7": {Kind: ActionStimulus, Variant: StimulusPausedJudge},
	"8": {Kind: ActionStimulus, Variant: StimulusPausedBystander},
	"9": {Kind: ActionStimulus, Variant: StimulusMockingDoctor},
	"a": {Kind: ActionStimulus, Variant: StimulusMockingSoldier},
	"b": {Kind: ActionStimulus, Variant: StimulusMockingJudge},
	"c": {Kind: ActionStimulus, Variant: StimulusMockingBystander},
}

// ClassifyKey maps a single-character token to its action. Every token
// classifies to exactly one action; anything outside the table is
// ActionUnknown.
func ClassifyKey(key string) Action {
	if a, ok := actionTable[key]; ok {
		return a
	}
	return Action{Kind: ActionUnknown}
}
