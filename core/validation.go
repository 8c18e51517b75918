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

import "fmt"

// ValidateRecord validates a ProcessingRecord according to domain rules.
//
// Validation rules:
//   - OwnerId must not be empty
//   - Source must be a known source type
//   - ContentHash must be 64 lowercase hex characters
//   - Status must be a persisted state (never not_processed)
//   - a completed record must carry a summary
//   - a non-completed record must not carry a summary or topics
//
// NOT validated:
//   - ID (0 is valid until assigned from a database sequence)
//   - ItemPath (opaque to the ledger)
func ValidateRecord(record *ProcessingRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.OwnerId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyOwner)
	}

	if !record.Source.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidRecord, ErrInvalidSourceType, record.Source)
	}

	if !isHexHash(record.ContentHash) {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrInvalidContentHash)
	}

	if !record.Status.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidRecord, ErrInvalidStatus, record.Status)
	}

	if record.Status == StatusCompleted && record.Summary == "" {
		return fmt.Errorf("%w: completed record without summary", ErrInvalidRecord)
	}

	if record.Status != StatusCompleted && (record.Summary != "" || len(record.Topics) > 0) {
		return fmt.Errorf("%w: summary/topics on %s record", ErrInvalidRecord, record.Status)
	}

	return nil
}

// isHexHash reports whether s is a 64-character lowercase hex string.
func isHexHash(s string) bool {
	if len(s) != fingerprintSize*2 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
