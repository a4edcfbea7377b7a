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

// Package corpus owns the persisted transcript collection.
//
// It provides the three operations a run performs on the corpus as a whole:
//
//   - Merge: admit a batch of new transcripts, deduplicated by ID
//   - Aggregate: recompute statistics from the transcript list
//   - Store: load and save the JSON corpus file
//
// The corpus file is the durable contract other tools read. Stats are always
// recomputed from scratch on save and never edited incrementally.
package corpus
