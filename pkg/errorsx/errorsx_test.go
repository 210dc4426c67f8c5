package errorsx

import "testing"

func TestWrapAndReason(t *testing.T) {
	err := Wrap(assertErr{}, ReasonLLMComplete)
	if Reason(err) != ReasonLLMComplete {
		t.Fatalf("expected reason %s, got %s", ReasonLLMComplete, Reason(err))
	}
	if !HasReason(err, ReasonLLMComplete) {
		t.Fatalf("expected HasReason true")
	}
}

func TestWrapPreservesExistingReason(t *testing.T) {
	first := Wrap(assertErr{}, ReasonListen)
	second := Wrap(first, ReasonLLMComplete)
	if Reason(second) != ReasonListen {
		t.Fatalf("expected reason preserved, got %s", Reason(second))
	}
}

func TestReasonOfNil(t *testing.T) {
	if Wrap(nil, ReasonSpeak) != nil {
		t.Fatalf("expected nil passthrough")
	}
	if Reason(nil) != ReasonUnknown {
		t.Fatalf("expected unknown reason for nil error")
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
