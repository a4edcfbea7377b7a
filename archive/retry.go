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

package archive

import (
	"context"
	"log/slog"
	"time"
)

// Defaults for reaching the archive server.
const (
	DefaultConnectAttempts = 3
	DefaultConnectBackoff  = 250 * time.Millisecond
)

// withBackoff runs op until it succeeds, ctx is done or attempts run out.
// The delay starts at baseDelay and doubles after each failure. The last
// error is returned.
func withBackoff(ctx context.Context, logger *slog.Logger, attempts int, baseDelay time.Duration, op func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	delay := baseDelay
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op()
		if lastErr == nil {
			if attempt > 1 {
				logger.Debug("archive reachable after retry", "attempt", attempt)
			}
			return nil
		}

		if attempt == attempts {
			break
		}
		logger.Debug("archive not reachable, retrying", "attempt", attempt, "attempts", attempts, "delay", delay, "err", lastErr)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}

	return lastErr
}
