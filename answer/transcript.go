package answer

import (
	"strings"

	"github.com/poiesic/docqa/core"
)

// RenderTranscript renders a conversation's turns as a linear transcript,
// one "User: …\nAssistant: …" pair per turn, in the order given.
// Callers pass turns chronologically ordered; an empty slice renders as "".
func RenderTranscript(turns []*core.Turn) string {
	if len(turns) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, turn := range turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("User: ")
		sb.WriteString(turn.UserQuestion)
		sb.WriteString("\nAssistant: ")
		sb.WriteString(turn.Answer)
	}
	return sb.String()
}
