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

package ingestion

import "errors"

var (
	// ErrStoreRequired is returned when a corpus store is not provided.
	ErrStoreRequired = errors.New("corpus store required")

	// ErrRegistryRequired is returned when a source registry is not provided.
	ErrRegistryRequired = errors.New("source registry required")

	// ErrExtractorRequired is returned when a quote extractor is not provided.
	ErrExtractorRequired = errors.New("quote extractor required")

	// ErrCheckpointRepositoryRequired is returned when a checkpoint repository is not provided.
	ErrCheckpointRepositoryRequired = errors.New("checkpoint repository required")

	// ErrNothingToPersist is returned when a run ends with an empty corpus
	// and no corpus file existed before it.
	ErrNothingToPersist = errors.New("nothing to persist")
)
