// Package sources defines the connector abstraction for external
// knowledge sources and its two implementations: the Google Drive cloud
// file store (sources/gdrive) and the Logseq note-graph export
// (sources/logseq).
//
// A connector lists candidate items and extracts a flat text corpus per
// item. Credentials are opaque access tokens supplied by the caller;
// token acquisition and refresh are external concerns.
package sources
