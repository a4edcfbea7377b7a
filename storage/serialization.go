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

package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/speechwatch/core"
)

// MarshalCheckpoint serializes a Checkpoint to bytes.
// LastRun is kept at microsecond precision.
func MarshalCheckpoint(cp *core.Checkpoint) []byte {
	lastRun := unixMicro(cp.LastRun)
	size := ord.String.Size(cp.Source) +
		ord.String.Size(cp.RunID) +
		varint.Int64.Size(lastRun) +
		varint.Int.Size(cp.Fetched) +
		varint.Int.Size(cp.Admitted)

	buf := make([]byte, size)
	n := ord.String.Marshal(cp.Source, buf)
	n += ord.String.Marshal(cp.RunID, buf[n:])
	n += varint.Int64.Marshal(lastRun, buf[n:])
	n += varint.Int.Marshal(cp.Fetched, buf[n:])
	varint.Int.Marshal(cp.Admitted, buf[n:])
	return buf
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	var (
		cp      core.Checkpoint
		lastRun int64
		n, m    int
		err     error
	)

	if cp.Source, m, err = ord.String.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("%w: source: %w", ErrSerializationFailed, err)
	}
	n += m
	if cp.RunID, m, err = ord.String.Unmarshal(data[n:]); err != nil {
		return nil, fmt.Errorf("%w: run id: %w", ErrSerializationFailed, err)
	}
	n += m
	if lastRun, m, err = varint.Int64.Unmarshal(data[n:]); err != nil {
		return nil, fmt.Errorf("%w: last run: %w", ErrSerializationFailed, err)
	}
	n += m
	if cp.Fetched, m, err = varint.Int.Unmarshal(data[n:]); err != nil {
		return nil, fmt.Errorf("%w: fetched: %w", ErrSerializationFailed, err)
	}
	n += m
	if cp.Admitted, _, err = varint.Int.Unmarshal(data[n:]); err != nil {
		return nil, fmt.Errorf("%w: admitted: %w", ErrSerializationFailed, err)
	}

	if lastRun != 0 {
		cp.LastRun = time.UnixMicro(lastRun).UTC()
	}
	return &cp, nil
}

// unixMicro maps the zero time to 0 so it survives a round trip.
func unixMicro(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}
