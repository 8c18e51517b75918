package ingestion

import "errors"

var (
	// ErrLedgerRequired is returned when a pipeline is created without
	// a ledger repository.
	ErrLedgerRequired = errors.New("ledger repository is required")

	// ErrSummarizerRequired is returned when a pipeline is created
	// without a summarizer.
	ErrSummarizerRequired = errors.New("summarizer is required")

	// ErrConnectorRequired is returned when an operation is invoked
	// without a connector.
	ErrConnectorRequired = errors.New("connector is required")

	// ErrOwnerRequired is returned when an operation is invoked with
	// an empty owner identifier.
	ErrOwnerRequired = errors.New("owner is required")
)
