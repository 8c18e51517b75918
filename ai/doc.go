// Package ai defines the summarization boundary: the Summarizer
// interface, its request/response types, completion parsing, and
// service configuration.
//
// Subpackages provide implementations: openai talks to any
// OpenAI-compatible chat API, mock provides a test double.
package ai
