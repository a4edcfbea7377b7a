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

// Package storage provides the storage abstraction for the speechwatch run ledger.
//
// The corpus itself is a JSON document owned by package corpus. This package
// covers the bookkeeping around it: one checkpoint per transcript source
// recording when it last contributed to a run and with what outcome.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the repository interface:
//
//	repo, err := badger.OpenCheckpointRepository("/path/to/ledger")  // storage.CheckpointRepository
//
// Internal helpers may return concrete types.
//
// # Usage
//
// Open a ledger on disk:
//
//	repo, err := badger.OpenCheckpointRepository(filepath.Join(dataDir, "ledger"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// Use in tests with in-memory storage:
//
//	repo, err := badger.NewMemoryCheckpointRepository()
//
// # Serialization
//
// Checkpoints are stored in the MUS binary format (github.com/mus-format/mus-go).
//
// # Thread Safety
//
// Repository implementations must be safe for concurrent use.
package storage
