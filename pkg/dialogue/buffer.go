package dialogue

import "strings"

// NoMatchMarker is the recogniser's tag for an utterance it could not
// transcribe. Matching is case-insensitive and by substring.
const NoMatchMarker = "nomatch"

// NoMatchPlaceholder stands in for an unintelligible utterance so the
// buffer keeps the turn-taking rhythm instead of silently starving.
const NoMatchPlaceholder = "..."

// SpeechBuffer accumulates raw utterances between commit points. The
// orchestrator owns it; a flush moves the whole accumulation into the
// history as a single user turn, never a partial one.
type SpeechBuffer struct {
	fragments []string
}

// Append sanitizes the utterance and adds it to the pending fragments.
func (b *SpeechBuffer) Append(utterance string) {
	b.fragments = append(b.fragments, sanitize(utterance))
}

// Flush joins the pending fragments with single spaces into one user
// turn appended to history, and clears the buffer. Flushing an empty
// buffer returns history unchanged.
func (b *SpeechBuffer) Flush(history []Turn) []Turn {
	if len(b.fragments) == 0 {
		return history
	}
	joined := strings.Join(b.fragments, " ")
	b.fragments = nil
	return append(history, NewTurn(RoleUser, joined))
}

// Len reports the number of buffered fragments.
func (b *SpeechBuffer) Len() int {
	return len(b.fragments)
}

func sanitize(utterance string) string {
	if strings.Contains(strings.ToLower(utterance), NoMatchMarker) {
		return NoMatchPlaceholder
	}
	return utterance
}
