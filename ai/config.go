// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for the summarization service.
type Config struct {
	// Host is the base URL for the OpenAI-compatible chat API.
	// Example: "http://localhost:11434/v1" for a local server
	Host string

	// Token is the API token. Use "none" for local services that do
	// not require authentication.
	Token string

	// Model is the chat model identifier.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	Model string

	// MaxDocumentChars is the truncation ceiling for single-document
	// corpora. Default: 10000
	MaxDocumentChars int

	// MaxGraphChars is the truncation ceiling for note-graph corpora.
	// Default: 50000
	MaxGraphChars int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the chat service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithToken sets the API token.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithModel sets the chat model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithMaxDocumentChars sets the truncation ceiling for documents.
func WithMaxDocumentChars(max int) ConfigOption {
	return func(c *Config) {
		c.MaxDocumentChars = max
	}
}

// WithMaxGraphChars sets the truncation ceiling for note-graph corpora.
func WithMaxGraphChars(max int) ConfigOption {
	return func(c *Config) {
		c.MaxGraphChars = max
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services.
func DefaultConfig() *Config {
	return &Config{
		Host:             "http://localhost:11434/v1",
		Token:            "none",
		Model:            "qwen2.5:3b",
		MaxDocumentChars: 10000,
		MaxGraphChars:    50000,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
//
// Example:
//   cfg := NewConfig(
//       WithHost("https://api.openai.com/v1"),
//       WithModel("gpt-4o-mini"),
//       WithToken(token),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to the host if missing, which
// is required by most OpenAI-compatible APIs.
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Token == "" {
		return errors.New("ai config: Token is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.MaxDocumentChars <= 0 {
		return errors.New("ai config: MaxDocumentChars must be positive")
	}
	if c.MaxGraphChars <= 0 {
		return errors.New("ai config: MaxGraphChars must be positive")
	}
	return nil
}

// MaxChars returns the truncation ceiling for a corpus kind.
func (c *Config) MaxChars(kind CorpusKind) int {
	if kind == KindGraph {
		return c.MaxGraphChars
	}
	return c.MaxDocumentChars
}
