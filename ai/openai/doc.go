// Package openai implements the ai.Summarizer interface against any
// OpenAI-compatible chat completion API, including local servers such
// as Ollama or vLLM.
package openai
