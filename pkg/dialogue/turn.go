package dialogue

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Role tags the speaker of a turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// Turn is one utterance-equivalent unit in the conversation log.
// ID and At are transcript metadata; the language model receives only
// role and content, in history order.
type Turn struct {
	ID      string
	Role    Role
	Content string
	At      time.Time
}

// NewTurn stamps a turn with a fresh id and the current time.
func NewTurn(role Role, content string) Turn {
	return Turn{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
		At:      time.Now(),
	}
}

// WriteTranscript renders the history to w, one line per turn. It is a
// pure read: the history is never mutated.
func WriteTranscript(w io.Writer, history []Turn) error {
	for _, t := range history {
		if _, err := fmt.Fprintf(w, "%-9s %s\n", t.Role+":", t.Content); err != nil {
			return err
		}
	}
	return nil
}
