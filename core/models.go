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


package core

import "time"

// ID is a unique identifier for processing records.
// It is generated from database sequences.
type ID uint64

// SourceType identifies an external knowledge source.
type SourceType string

const (
	// SourceGoogleDrive is the cloud file store source.
	SourceGoogleDrive SourceType = "google_drive"
	// SourceLogseq is the note-graph export source.
	SourceLogseq SourceType = "logseq"
)

// Valid reports whether the source type is one of the known sources.
func (s SourceType) Valid() bool {
	switch s {
	case SourceGoogleDrive, SourceLogseq:
		return true
	default:
		return false
	}
}

// Status tracks the lifecycle of a processing record.
type Status string

const (
	// StatusNotProcessed is the virtual state of content with no record.
	// It never appears on a persisted record.
	StatusNotProcessed Status = "not_processed"
	// StatusProcessing means summarization is in flight.
	StatusProcessing Status = "processing"
	// StatusCompleted means summary and topics have been written.
	StatusCompleted Status = "completed"
	// StatusFailed means a processing attempt failed. Retriable.
	StatusFailed Status = "failed"
)

// Valid reports whether the status is a known persisted state.
func (s Status) Valid() bool {
	switch s {
	case StatusProcessing, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// Terminal reports whether the status is a terminal state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransition reports whether the state machine allows moving to next.
// The machine only moves forward: processing may end in completed or
// failed, and a failed record may re-enter processing on retry.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusNotProcessed:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusCompleted || next == StatusFailed
	case StatusFailed:
		return next == StatusProcessing
	default:
		return false
	}
}

// ProcessingRecord is the durable unit of state per (owner, source,
// content) tracking summarization progress and results.
type ProcessingRecord struct {
	Id          ID
	OwnerId     string
	Source      SourceType
	ItemPath    string // source-local identifier: file id or upload name
	ContentHash string // fingerprint of the extracted corpus, the dedup key
	Status      Status
	Summary     string   // populated only when Status is StatusCompleted
	Topics      []string // populated together with Summary, may be empty
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SourceItem is an ephemeral catalog entry produced by a connector.
// It is never persisted.
type SourceItem struct {
	Id           string
	Name         string
	MimeType     string
	ModifiedTime time.Time
	Size         int64
}

// CorpusStats carries extraction statistics. The counts feed logs and
// prompts only; no correctness decision depends on them.
type CorpusStats struct {
	Pages  int
	Blocks int
}

// CatalogEntry pairs a source item with its current processing status.
type CatalogEntry struct {
	Item   SourceItem
	Status Status
}
