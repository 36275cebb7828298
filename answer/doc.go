// Package answer produces grounded answers and records conversation turns.
//
// The Orchestrator type implements the question flow: load the conversation's
// prior turns, retrieve relevant chunks for the question, assemble a single
// deterministic prompt (history first, fresh evidence second), invoke the
// chat model at temperature 0, persist the new turn, and return the answer
// together with the source metadata of the chunks used.
//
// Writes are at-least-once: a turn persisted by an earlier attempt is not
// cleaned up when a retried call fails, and nothing serializes two
// concurrent calls on the same conversation id.
package answer
