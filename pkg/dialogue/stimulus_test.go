package dialogue

import (
	"strings"
	"testing"
)

func TestQuestioningStimuliAreSpoken(t *testing.T) {
	for _, v := range []StimulusVariant{
		StimulusQuestioningDoctor,
		StimulusQuestioningSoldier,
		StimulusQuestioningJudge,
		StimulusQuestioningBystander,
	} {
		s, ok := LookupStimulus(v)
		if !ok {
			t.Fatalf("missing stimulus %s", v)
		}
		if s.Text == "" || s.AudioRef != "" {
			t.Fatalf("%s: questioning stimuli carry text, got %+v", v, s)
		}
		if s.Annotation != s.Text {
			t.Fatalf("%s: spoken stimuli annotate with the literal phrase", v)
		}
		if u := s.Utterance(); u.Text != s.Text {
			t.Fatalf("%s: utterance should carry the phrase", v)
		}
	}
}

func TestRecordedStimuliAnnotateWithMarker(t *testing.T) {
	for _, v := range []StimulusVariant{
		StimulusPausedDoctor, StimulusPausedSoldier,
		StimulusPausedJudge, StimulusPausedBystander,
		StimulusMockingDoctor, StimulusMockingSoldier,
		StimulusMockingJudge, StimulusMockingBystander,
	} {
		s, ok := LookupStimulus(v)
		if !ok {
			t.Fatalf("missing stimulus %s", v)
		}
		if s.AudioRef == "" {
			t.Fatalf("%s: recorded stimuli carry an audio reference", v)
		}
		want := "[stimulus: " + string(v) + "]"
		if s.Annotation != want {
			t.Fatalf("%s: expected annotation %q, got %q", v, want, s.Annotation)
		}
		if u := s.Utterance(); u.AudioRef != s.AudioRef || u.Text != "" {
			t.Fatalf("%s: utterance should reference the audio clip", v)
		}
	}
}

func TestLookupUnknownVariant(t *testing.T) {
	if _, ok := LookupStimulus(StimulusVariant("questioning-pilot")); ok {
		t.Fatalf("expected miss for unknown variant")
	}
}

func TestStimulusAnnotationsMentionVariantFamily(t *testing.T) {
	for v, s := range stimulusTable {
		family := strings.SplitN(string(v), "-", 2)[0]
		if s.AudioRef != "" && !strings.Contains(s.Annotation, family) {
			t.Fatalf("%s: annotation %q should carry the family", v, s.Annotation)
		}
	}
}
