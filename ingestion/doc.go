// Package ingestion orchestrates the processing pipeline: extract a
// corpus from a source connector, fingerprint it, dedup against the
// ledger, and summarize asynchronously on a worker pool.
//
// The ledger is the single source of truth for status. Callers receive
// the processing record at submission time and poll it to learn the
// outcome; the pipeline never propagates asynchronous failures as
// errors once a record exists.
package ingestion
