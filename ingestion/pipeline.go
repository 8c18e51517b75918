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

package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/distill/ai"
	"github.com/poiesic/distill/core"
	"github.com/poiesic/distill/sources"
	"github.com/poiesic/distill/storage"
)

// defaultDrainTimeout bounds how long Release waits for in-flight
// summarizations to reach a terminal write.
const defaultDrainTimeout = 30 * time.Second

// Pipeline orchestrates extraction, deduplication, and summarization
// of source content. Summarization runs asynchronously on a worker
// pool; callers get the processing record back immediately and poll
// its status for the outcome.
type Pipeline struct {
	ledger     storage.LedgerRepository
	summarizer ai.Summarizer
	pool       *ants.Pool
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent summarization.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new processing pipeline.
func NewPipeline(
	ledger storage.LedgerRepository,
	summarizer ai.Summarizer,
	opts ...Option,
) (*Pipeline, error) {
	if ledger == nil {
		return nil, ErrLedgerRequired
	}
	if summarizer == nil {
		return nil, ErrSummarizerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		ledger:     ledger,
		summarizer: summarizer,
		pool:       pool,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Process runs one item through the pipeline: extract, fingerprint,
// dedup-check, then summarize in the background. The returned record
// reflects the state at submission time:
//
//   - an existing completed or processing record is returned unchanged
//     and nothing is resubmitted (idempotent no-op)
//   - an existing failed record is flipped back to processing and
//     resubmitted (retry)
//   - otherwise a fresh processing record is created and submitted
//
// Failures before a record exists (extraction, ledger insert) are
// returned synchronously and leave no persisted trace. Failures after
// that surface as a failed status on the record.
func (p *Pipeline) Process(ctx context.Context, owner string, conn sources.Connector, itemRef string) (*core.ProcessingRecord, error) {
	if owner == "" {
		return nil, ErrOwnerRequired
	}
	if conn == nil {
		return nil, ErrConnectorRequired
	}

	extraction, err := conn.Extract(ctx, itemRef)
	if err != nil {
		return nil, err
	}

	hash := core.Fingerprint(extraction.Corpus)

	record, created, err := p.ledger.LookupOrCreate(ctx, owner, conn.Type(), itemRef, hash)
	if err != nil {
		return nil, err
	}

	if !created {
		if record.Status != core.StatusFailed {
			// Completed or still in flight. Do not duplicate work.
			return record, nil
		}

		// Retry: flip the failed record back to processing before
		// resubmitting, so observers never see a stale failure for
		// work that is underway again.
		retry := *record
		retry.Status = core.StatusProcessing
		retry.Summary = ""
		retry.Topics = nil
		record, err = p.ledger.UpdateRecord(ctx, &retry)
		if err != nil {
			return nil, err
		}
	}

	p.submit(record, extraction, ai.KindForSource(conn.Type()))
	return record, nil
}

// submit queues the summarize-and-finalize continuation. It runs with
// a background context so an abandoned caller request cannot cancel
// the terminal write.
func (p *Pipeline) submit(record *core.ProcessingRecord, extraction *sources.Extraction, kind ai.CorpusKind) {
	snapshot := *record

	err := p.pool.Submit(func() {
		p.finalize(context.Background(), &snapshot, extraction, kind)
	})
	if err != nil {
		// Pool rejected the task. Finalize inline so the record does
		// not sit in processing forever.
		p.logger.Warn("pool submit failed, finalizing inline", "err", err)
		p.finalize(context.Background(), &snapshot, extraction, kind)
	}
}

// finalize invokes the summarizer and performs the terminal write.
// A summarization failure becomes a failed status; a terminal-write
// failure is logged and leaves the record in processing for operators
// to inspect.
func (p *Pipeline) finalize(ctx context.Context, record *core.ProcessingRecord, extraction *sources.Extraction, kind ai.CorpusKind) {
	summary, err := p.summarizer.Summarize(ctx, ai.Request{
		Corpus: extraction.Corpus,
		Stats:  extraction.Stats,
		Kind:   kind,
	})

	terminal := *record
	if err != nil {
		p.logger.Error("summarization failed",
			"record", record.Id,
			"owner", record.OwnerId,
			"err", err)
		terminal.Status = core.StatusFailed
		terminal.Summary = ""
		terminal.Topics = nil
	} else {
		terminal.Status = core.StatusCompleted
		terminal.Summary = summary.Text
		terminal.Topics = summary.Topics
	}

	if _, err := p.ledger.UpdateRecord(ctx, &terminal); err != nil {
		p.logger.Error("terminal write failed, record stuck in processing",
			"record", record.Id,
			"owner", record.OwnerId,
			"status", terminal.Status,
			"err", err)
	}
}

// Catalog merges the connector's item list with the owner's ledger
// records. Items without a record show as not processed.
func (p *Pipeline) Catalog(ctx context.Context, owner string, conn sources.Connector) ([]core.CatalogEntry, error) {
	if owner == "" {
		return nil, ErrOwnerRequired
	}
	if conn == nil {
		return nil, ErrConnectorRequired
	}

	items, err := conn.List(ctx)
	if err != nil {
		return nil, err
	}

	records, err := p.ledger.ListRecords(ctx, owner, conn.Type())
	if err != nil {
		return nil, err
	}

	statusByPath := make(map[string]core.Status, len(records))
	for _, record := range records {
		statusByPath[record.ItemPath] = record.Status
	}

	entries := make([]core.CatalogEntry, 0, len(items))
	for _, item := range items {
		status, ok := statusByPath[item.Id]
		if !ok {
			status = core.StatusNotProcessed
		}
		entries = append(entries, core.CatalogEntry{
			Item:   item,
			Status: status,
		})
	}
	return entries, nil
}

// Release drains the worker pool, waiting up to the drain timeout for
// in-flight summarizations to record a terminal status. The pipeline
// should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool == nil {
		return
	}
	if err := p.pool.ReleaseTimeout(defaultDrainTimeout); err != nil {
		p.logger.Warn("pool drain timed out", "err", err)
	}
}
