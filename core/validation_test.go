package core

import (
	"errors"
	"testing"
	"time"
)

func validRecord() *ProcessingRecord {
	return &ProcessingRecord{
		Id:          1,
		OwnerId:     "user-1",
		Source:      SourceLogseq,
		ItemPath:    "notes.json",
		ContentHash: Fingerprint("corpus"),
		Status:      StatusProcessing,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ProcessingRecord)
		wantErr error
	}{
		{
			name:   "valid processing record",
			mutate: func(r *ProcessingRecord) {},
		},
		{
			name: "valid completed record",
			mutate: func(r *ProcessingRecord) {
				r.Status = StatusCompleted
				r.Summary = "Notes on gardening."
				r.Topics = []string{"soil", "compost"}
			},
		},
		{
			name: "completed with empty topics is valid",
			mutate: func(r *ProcessingRecord) {
				r.Status = StatusCompleted
				r.Summary = "Notes on gardening."
			},
		},
		{
			name:    "empty owner",
			mutate:  func(r *ProcessingRecord) { r.OwnerId = "" },
			wantErr: ErrEmptyOwner,
		},
		{
			name:    "unknown source",
			mutate:  func(r *ProcessingRecord) { r.Source = "dropbox" },
			wantErr: ErrInvalidSourceType,
		},
		{
			name:    "short hash",
			mutate:  func(r *ProcessingRecord) { r.ContentHash = "abc123" },
			wantErr: ErrInvalidContentHash,
		},
		{
			name: "uppercase hash",
			mutate: func(r *ProcessingRecord) {
				r.ContentHash = "ABC" + r.ContentHash[3:]
			},
			wantErr: ErrInvalidContentHash,
		},
		{
			name:    "not_processed is never persisted",
			mutate:  func(r *ProcessingRecord) { r.Status = StatusNotProcessed },
			wantErr: ErrInvalidStatus,
		},
		{
			name: "completed without summary",
			mutate: func(r *ProcessingRecord) {
				r.Status = StatusCompleted
				r.Topics = []string{"soil"}
			},
			wantErr: ErrInvalidRecord,
		},
		{
			name: "processing with summary",
			mutate: func(r *ProcessingRecord) {
				r.Summary = "leaked summary"
			},
			wantErr: ErrInvalidRecord,
		},
		{
			name: "failed with topics",
			mutate: func(r *ProcessingRecord) {
				r.Status = StatusFailed
				r.Topics = []string{"soil"}
			},
			wantErr: ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validRecord()
			tt.mutate(record)

			err := ValidateRecord(record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateRecord() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateRecord() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRecord_Nil(t *testing.T) {
	if err := ValidateRecord(nil); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("ValidateRecord(nil) error = %v, want ErrInvalidRecord", err)
	}
}
