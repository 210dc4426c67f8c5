package dialogue

import "fmt"

// StimulusVariant names one of the twelve scripted manipulation cues:
// three delivery families crossed with the four dilemma subjects the
// study protocol covers.
type StimulusVariant string

const (
	StimulusQuestioningDoctor    StimulusVariant = "questioning-doctor"
	StimulusQuestioningSoldier   StimulusVariant = "questioning-soldier"
	StimulusQuestioningJudge     StimulusVariant = "questioning-judge"
	StimulusQuestioningBystander StimulusVariant = "questioning-bystander"

	StimulusPausedDoctor    StimulusVariant = "paused-doctor"
	StimulusPausedSoldier   StimulusVariant = "paused-soldier"
	StimulusPausedJudge     StimulusVariant = "paused-judge"
	StimulusPausedBystander StimulusVariant = "paused-bystander"

	StimulusMockingDoctor    StimulusVariant = "mocking-doctor"
	StimulusMockingSoldier   StimulusVariant = "mocking-soldier"
	StimulusMockingJudge     StimulusVariant = "mocking-judge"
	StimulusMockingBystander StimulusVariant = "mocking-bystander"
)

// Stimulus is one canned payload: questioning variants carry a spoken
// line, the paused and mocking variants reference pre-recorded audio.
// Annotation is what gets appended to the transcript as an assistant
// turn. Delivering a stimulus never consults the language model.
type Stimulus struct {
	Variant    StimulusVariant
	Text       string
	AudioRef   string
	Annotation string
}

var stimulusTable = map[StimulusVariant]Stimulus{
	StimulusQuestioningDoctor: spokenStimulus(StimulusQuestioningDoctor,
		"Are you certain the doctor would see it that way?"),
	StimulusQuestioningSoldier: spokenStimulus(StimulusQuestioningSoldier,
		"Would the soldier really have had a choice, though?"),
	StimulusQuestioningJudge: spokenStimulus(StimulusQuestioningJudge,
		"Do you think the judge could defend that ruling?"),
	StimulusQuestioningBystander: spokenStimulus(StimulusQuestioningBystander,
		"And the bystander, does doing nothing make them innocent?"),

	StimulusPausedDoctor:    recordedStimulus(StimulusPausedDoctor, "pause_doctor.wav"),
	StimulusPausedSoldier:   recordedStimulus(StimulusPausedSoldier, "pause_soldier.wav"),
	StimulusPausedJudge:     recordedStimulus(StimulusPausedJudge, "pause_judge.wav"),
	StimulusPausedBystander: recordedStimulus(StimulusPausedBystander, "pause_bystander.wav"),

	StimulusMockingDoctor:    recordedStimulus(StimulusMockingDoctor, "mock_doctor.wav"),
	StimulusMockingSoldier:   recordedStimulus(StimulusMockingSoldier, "mock_soldier.wav"),
	StimulusMockingJudge:     recordedStimulus(StimulusMockingJudge, "mock_judge.wav"),
	StimulusMockingBystander: recordedStimulus(StimulusMockingBystander, "mock_bystander.wav"),
}

func spokenStimulus(v StimulusVariant, line string) Stimulus {
	return Stimulus{Variant: v, Text: line, Annotation: line}
}

func recordedStimulus(v StimulusVariant, audioRef string) Stimulus {
	return Stimulus{
		Variant:    v,
		AudioRef:   audioRef,
		Annotation: fmt.Sprintf("[stimulus: %s]", v),
	}
}

// LookupStimulus resolves a variant to its payload.
func LookupStimulus(v StimulusVariant) (Stimulus, bool) {
	s, ok := stimulusTable[v]
	return s, ok
}

// Utterance returns the deliverable form of the stimulus.
func (s Stimulus) Utterance() Utterance {
	if s.AudioRef != "" {
		return Utterance{AudioRef: s.AudioRef}
	}
	return Utterance{Text: s.Text}
}
