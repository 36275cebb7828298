package answer

import (
	"fmt"
	"strings"

	"github.com/poiesic/docqa/core"
)

// DefaultPromptTemplate is the instruction wording handed to the chat model.
// It is a configuration value, not behavior: deployments may swap it via
// WithPromptTemplate. The template receives the question first and the
// grounding context second.
const DefaultPromptTemplate = `You are an assistant for question-answering tasks. Use the following pieces of retrieved context to answer the question. If you don't know the answer, just say that you don't know. Use three sentences maximum and keep the answer concise.
Question: %s
Context: %s
Answer:`

// BuildContext assembles the grounding context block: the prior transcript
// first, then the retrieved chunks' text, blank-line separated, in that
// order. History always precedes fresh evidence.
func BuildContext(transcript string, chunks []core.RetrievedChunk) string {
	parts := make([]string, 0, len(chunks)+1)
	if transcript != "" {
		parts = append(parts, transcript)
	}
	for _, chunk := range chunks {
		parts = append(parts, chunk.Chunk.Text)
	}
	return strings.Join(parts, "\n\n")
}

// BuildPrompt renders the final prompt deterministically from its ordered
// inputs. Identical inputs always produce an identical prompt string.
func BuildPrompt(template, transcript string, chunks []core.RetrievedChunk, question string) string {
	return fmt.Sprintf(template, question, BuildContext(transcript, chunks))
}
