package ingestion

import (
	"strings"

	"github.com/poiesic/docqa/core"
)

// headersToSplitOn maps markdown header markers to metadata keys.
// Headers deeper than level 3 stay inside chunk bodies.
var headersToSplitOn = []struct {
	prefix string
	key    string
	level  int
}{
	{prefix: "# ", key: "Header 1", level: 1},
	{prefix: "## ", key: "Header 2", level: 2},
	{prefix: "### ", key: "Header 3", level: 3},
}

// SplitMarkdown splits extracted markdown text into chunks at header
// boundaries (levels 1-3). Each chunk carries the header path that was
// active when its content appeared; header lines themselves are stripped
// from chunk bodies. Text before the first header becomes a chunk with an
// empty header path. Chunks are returned in document order.
func SplitMarkdown(text string) []core.Chunk {
	var (
		chunks      []core.Chunk
		body        []string
		activePath  = map[string]string{}
		inCodeFence bool
	)

	flush := func() {
		content := strings.TrimSpace(strings.Join(body, "\n"))
		body = body[:0]
		if content == "" {
			return
		}
		metadata := make(map[string]string, len(activePath))
		for k, v := range activePath {
			metadata[k] = v
		}
		chunks = append(chunks, core.Chunk{Text: content, Metadata: metadata})
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		// Header markers inside fenced code blocks are content, not structure.
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inCodeFence = !inCodeFence
			body = append(body, line)
			continue
		}
		if inCodeFence {
			body = append(body, line)
			continue
		}

		matched := false
		for _, header := range headersToSplitOn {
			if !strings.HasPrefix(trimmed, header.prefix) {
				continue
			}
			flush()

			// A new header invalidates everything deeper in the path.
			for _, deeper := range headersToSplitOn {
				if deeper.level >= header.level {
					delete(activePath, deeper.key)
				}
			}
			activePath[header.key] = strings.TrimSpace(strings.TrimPrefix(trimmed, header.prefix))
			matched = true
			break
		}
		if matched {
			continue
		}

		body = append(body, line)
	}
	flush()

	return chunks
}
