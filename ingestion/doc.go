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

// Package ingestion orchestrates one collection run over the corpus.
//
// A run loads the persisted corpus, asks the selected sources for records,
// merges them by transcript ID, extracts quotes for every transcript that
// has not been processed yet and saves the result. Per-source outcomes are
// recorded in the run ledger once the corpus is safely on disk.
//
// Source failures and per-transcript extraction failures are logged and do
// not fail the run. A malformed corpus file does: it is never overwritten.
package ingestion
