// Package openai provides ai.Embedder and ai.ChatModel implementations
// backed by OpenAI-compatible HTTP APIs via langchaingo.
//
// The implementations work with any service exposing the OpenAI wire format,
// including Azure OpenAI deployments, Ollama, LocalAI, and vLLM.
package openai
