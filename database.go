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

package distill

import (
	"io"
	"log/slog"

	"github.com/poiesic/distill/ai"
	"github.com/poiesic/distill/ai/openai"
	"github.com/poiesic/distill/ingestion"
	"github.com/poiesic/distill/resummarize"
	"github.com/poiesic/distill/storage"
	"github.com/poiesic/distill/storage/badger"
)

// Database bundles the ledger and summarizer behind one handle.
type Database struct {
	backend    *badger.Backend
	ledger     storage.LedgerRepository
	summarizer ai.Summarizer
	logger     *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig   *ai.Config
	summarizer ai.Summarizer
}

// WithAIConfig sets the summarization service configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithSummarizer injects a summarizer directly, bypassing the OpenAI
// client. Used by tests and embedders that bring their own model.
func WithSummarizer(summarizer ai.Summarizer) DatabaseOption {
	return func(o *databaseOptions) {
		o.summarizer = summarizer
	}
}

// NewDatabase opens the ledger at filePath and wires the summarizer.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	ledger, err := badger.NewLedgerRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	summarizer := options.summarizer
	if summarizer == nil {
		summarizer, err = openai.NewSummarizer(options.aiConfig)
		if err != nil {
			ledger.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:    backend,
		ledger:     ledger,
		summarizer: summarizer,
		logger:     slog.Default(),
	}, nil
}

// Close releases the ledger and backend.
func (db *Database) Close() error {
	if err := db.ledger.Close(); err != nil {
		db.logger.Error("error closing ledger repository", "err", err)
		return err
	}
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// LedgerRepository exposes the processing record store.
func (db *Database) LedgerRepository() storage.LedgerRepository {
	return db.ledger
}

// Summarizer exposes the configured summarization service.
func (db *Database) Summarizer() ai.Summarizer {
	return db.summarizer
}

// NewPipeline creates a processing pipeline over this database.
func (db *Database) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.ledger, db.summarizer, opts...)
}

// NewResummarizer creates a failed-record retry sweep over this
// database. Progress is written to the supplied writer.
func (db *Database) NewResummarizer(config *resummarize.Config, progress io.Writer) *resummarize.Resummarizer {
	return resummarize.NewResummarizer(db.ledger, db.summarizer, config, progress)
}
