// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sim

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

// RunRealtime advances virtual time in step with clk until ctx is done.
// step sets how often the chip catches up with the clock.
func (c *Chip) RunRealtime(ctx context.Context, clk clock.Clock, step time.Duration) error {
	t := clk.Ticker(step)
	defer t.Stop()
	last := clk.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			if d := now.Sub(last); d > 0 {
				c.RunFor(d)
				last = now
			}
		}
	}
}
