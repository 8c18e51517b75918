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

package resummarize

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/distill/ai"
	"github.com/poiesic/distill/core"
	"github.com/poiesic/distill/sources"
	"github.com/poiesic/distill/storage"
)

// Config holds configuration for the resummarization operation.
type Config struct {
	// ReportInterval is how often to report progress (number of records)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for model calls
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Result summarizes one resummarization run.
type Result struct {
	// Recovered counts records that reached completed.
	Recovered int

	// Skipped counts records whose content was gone or had drifted
	// since the original attempt.
	Skipped int

	// StillFailed counts records that failed again after retries.
	StillFailed int
}

// Resummarizer sweeps an owner's failed records and retries them
// against the model. Records whose source content has drifted since
// the original attempt are skipped: their fingerprint no longer
// matches, so a fresh process invocation would create a new record
// rather than repair this one.
type Resummarizer struct {
	ledger     storage.LedgerRepository
	summarizer ai.Summarizer
	config     *Config
	progress   io.Writer
	logger     *slog.Logger
}

// NewResummarizer creates a new resummarizer.
// progress: where to write progress output (typically os.Stderr)
func NewResummarizer(ledger storage.LedgerRepository, summarizer ai.Summarizer, config *Config, progress io.Writer) *Resummarizer {
	if config == nil {
		config = DefaultConfig()
	}

	return &Resummarizer{
		ledger:     ledger,
		summarizer: summarizer,
		config:     config,
		progress:   progress,
		logger:     slog.Default().With("component", "resummarizer"),
	}
}

// Run retries every failed record for an owner and source. Content is
// re-extracted through the connector, so the run needs live source
// access. Progress is reported to the configured writer.
func (r *Resummarizer) Run(ctx context.Context, owner string, conn sources.Connector) (*Result, error) {
	records, err := r.ledger.ListRecords(ctx, owner, conn.Type())
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}

	var failed []*core.ProcessingRecord
	for _, record := range records {
		if record.Status == core.StatusFailed {
			failed = append(failed, record)
		}
	}

	result := &Result{}
	if len(failed) == 0 {
		fmt.Fprintf(r.progress, "No failed records found (0 records)\n")
		return result, nil
	}

	fmt.Fprintf(r.progress, "Retrying %d failed records\n", len(failed))

	tracker := NewProgressTracker(r.progress, len(failed), r.config.ReportInterval)
	tracker.Start()

	for i, record := range failed {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		r.retryRecord(ctx, record, conn, result)
		tracker.Update(i + 1)
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Resummarization complete. Recovered %d, skipped %d, still failed %d in %v\n",
		result.Recovered, result.Skipped, result.StillFailed, elapsed.Round(time.Second))

	return result, nil
}

// retryRecord reruns one failed record through extraction and
// summarization, folding the outcome into the result.
func (r *Resummarizer) retryRecord(ctx context.Context, record *core.ProcessingRecord, conn sources.Connector, result *Result) {
	extraction, err := conn.Extract(ctx, record.ItemPath)
	if err != nil {
		r.logger.Warn("extraction failed, skipping record",
			"record", record.Id,
			"path", record.ItemPath,
			"err", err)
		result.Skipped++
		return
	}

	if core.Fingerprint(extraction.Corpus) != record.ContentHash {
		r.logger.Warn("content drifted since original attempt, skipping record",
			"record", record.Id,
			"path", record.ItemPath)
		result.Skipped++
		return
	}

	processing := *record
	processing.Status = core.StatusProcessing
	processing.Summary = ""
	processing.Topics = nil
	current, err := r.ledger.UpdateRecord(ctx, &processing)
	if err != nil {
		r.logger.Error("failed to mark record processing", "record", record.Id, "err", err)
		result.StillFailed++
		return
	}

	var summary *ai.Summary
	err = RetryWithBackoff(ctx, func() error {
		var sumErr error
		summary, sumErr = r.summarizer.Summarize(ctx, ai.Request{
			Corpus: extraction.Corpus,
			Stats:  extraction.Stats,
			Kind:   ai.KindForSource(conn.Type()),
		})
		return sumErr
	}, r.config.MaxRetries, r.config.RetryDelay)

	terminal := *current
	if err != nil {
		terminal.Status = core.StatusFailed
		terminal.Summary = ""
		terminal.Topics = nil
		result.StillFailed++
	} else {
		terminal.Status = core.StatusCompleted
		terminal.Summary = summary.Text
		terminal.Topics = summary.Topics
		result.Recovered++
	}

	if _, err := r.ledger.UpdateRecord(ctx, &terminal); err != nil {
		r.logger.Error("terminal write failed, record stuck in processing",
			"record", record.Id,
			"err", err)
	}
}
