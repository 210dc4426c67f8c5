package dialogue

import "testing"

func TestClassifyCommandKeys(t *testing.T) {
	cases := map[string]ActionKind{
		"0": ActionQuit,
		"l": ActionDiscuss,
		"m": ActionListTranscript,
		"y": ActionConfirmYes,
		"n": ActionConfirmNo,
	}
	for key, want := range cases {
		if got := ClassifyKey(key).Kind; got != want {
			t.Fatalf("key %q: expected %s, got %s", key, want, got)
		}
	}
}

func TestClassifyStimulusKeysCoverAllTwelveVariants(t *testing.T) {
	keys := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "a", "b", "c"}
	seen := make(map[StimulusVariant]string)
	for _, key := range keys {
		action := ClassifyKey(key)
		if action.Kind != ActionStimulus {
			t.Fatalf("key %q: expected stimulus, got %s", key, action.Kind)
		}
		if prev, dup := seen[action.Variant]; dup {
			t.Fatalf("keys %q and %q map to the same variant %s", prev, key, action.Variant)
		}
		seen[action.Variant] = key
		if _, ok := LookupStimulus(action.Variant); !ok {
			t.Fatalf("variant %s has no stimulus payload", action.Variant)
		}
	}
	if len(seen) != 12 {
		t.Fatalf("expected 12 distinct variants, got %d", len(seen))
	}
}

func TestClassifyIsTotal(t *testing.T) {
	for ch := rune(0); ch < 128; ch++ {
		action := ClassifyKey(string(ch))
		if action.Kind == ActionStimulus && action.Variant == "" {
			t.Fatalf("key %q: stimulus action without a variant", string(ch))
		}
	}
	if ClassifyKey("z").Kind != ActionUnknown {
		t.Fatalf("expected unknown for unmapped key")
	}
	if ClassifyKey("").Kind != ActionUnknown {
		t.Fatalf("expected unknown for empty token")
	}
}
