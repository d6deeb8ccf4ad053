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

// Package storage provides the persistence layer used by consolidation builds.
//
// This package defines repository interfaces that decouple storage implementation
// from the build logic, plus the binary encoding of stored values.
//
// # Architecture
//
//   - EntryCache: fetched catalog records keyed by catalog code
//   - CheckpointRepository: outcome of the last completed build
//
// Values are encoded with hand-written MUS serializers (FoodRecordMUS,
// CheckpointMUS). Unknown nutrient values keep a presence flag so they never
// decode as zero.
//
// # Usage
//
// Open a BadgerDB backend and its repositories:
//
//	backend, err := badger.OpenBackend("/path/to/cache", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	entries := badger.NewEntryRepository(backend)
//
// Use in tests with in-memory storage:
//
//	entries, checkpoints, backend, err := badger.NewMemoryRepositories()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support.
package storage
