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


// Package storage provides the ledger abstraction layer for distill.
//
// The ledger is the single source of truth for processing records: one
// durable record per (owner, source, content hash), tracking the status
// state machine from processing through completed or failed.
//
// This package defines the repository interface that decouples the ledger
// implementation from the pipeline. Different backends (BadgerDB,
// in-memory for tests) can be used interchangeably.
//
// # Uniqueness
//
// The (owner, source, content hash) uniqueness constraint lives in the
// storage layer. Callers never pre-check for duplicates; they insert and
// treat ErrDuplicateKey as "already processed". LookupOrCreate packages
// that conflict-to-lookup fallback so the losing side of a concurrent
// insert still receives the winning record.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and
// timeout support.
package storage
