// Package resummarize provides a maintenance sweep that retries
// failed processing records against the language model.
//
// The sweep re-extracts content through a source connector, verifies
// the fingerprint still matches the ledger record, and retries the
// model call with exponential backoff and progress tracking.
package resummarize
