package answer

import (
	"strings"
	"testing"

	"github.com/poiesic/docqa/core"
	"github.com/stretchr/testify/assert"
)

func TestBuildContextOrdering(t *testing.T) {
	chunks := []core.RetrievedChunk{
		{Chunk: core.Chunk{Text: "chunk one"}},
		{Chunk: core.Chunk{Text: "chunk two"}},
	}

	got := BuildContext("User: q1\nAssistant: a1", chunks)

	// History comes first, fresh evidence second, blank-line separated.
	assert.Equal(t, "User: q1\nAssistant: a1\n\nchunk one\n\nchunk two", got)
}

func TestBuildContextEmptyTranscript(t *testing.T) {
	chunks := []core.RetrievedChunk{{Chunk: core.Chunk{Text: "only chunk"}}}
	assert.Equal(t, "only chunk", BuildContext("", chunks))
}

func TestBuildContextNoChunks(t *testing.T) {
	assert.Equal(t, "User: q\nAssistant: a", BuildContext("User: q\nAssistant: a", nil))
	assert.Equal(t, "", BuildContext("", nil))
}

func TestBuildPromptDeterministic(t *testing.T) {
	chunks := []core.RetrievedChunk{{Chunk: core.Chunk{Text: "evidence"}}}

	first := BuildPrompt(DefaultPromptTemplate, "transcript", chunks, "the question")
	second := BuildPrompt(DefaultPromptTemplate, "transcript", chunks, "the question")

	assert.Equal(t, first, second)
	assert.Contains(t, first, "Question: the question")
	assert.Contains(t, first, "transcript\n\nevidence")
	assert.True(t, strings.HasSuffix(first, "Answer:"))
}
