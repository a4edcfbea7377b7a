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

// Package extract pulls short labelled quotations out of transcript text.
//
// The Extractor splits a transcript body into sentences, labels each sentence
// with a patterns.Table, and keeps a bounded number of sentences that carry
// either a rhetoric label or at least two distinct topic labels.
//
// Annotate applies extraction to a whole batch. Transcripts that were already
// processed are skipped, so repeated runs over the same corpus are a no-op.
// Work is spread over a worker pool; each worker owns a distinct transcript,
// and a failure on one transcript leaves it unprocessed without affecting the
// rest of the batch.
package extract
