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

// Package indicator runs the main CPU's status light: a fixed cycle of
// colours, each shown for the same time, independent of the LP core.
package indicator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/glog"
)

// Color is an RGB value.
type Color struct {
	R, G, B uint8
}

var (
	Red   = Color{255, 0, 0}
	Green = Color{0, 255, 0}
	Blue  = Color{0, 0, 255}
	Off   = Color{0, 0, 0}
)

// Sequence is the order the colours are shown in.
var Sequence = [...]Color{Red, Green, Blue, Off}

func (c Color) String() string {
	switch c {
	case Red:
		return "RED"
	case Green:
		return "GREEN"
	case Blue:
		return "BLUE"
	case Off:
		return "OFF"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Indicator displays a colour.
type Indicator interface {
	Show(Color) error
}

// Cycle steps an Indicator through Sequence.
type Cycle struct {
	Indicator Indicator
	Hold      time.Duration // Time each colour is shown.
	Clock     clock.Clock   // Defaults to the wall clock.
}

// Run shows the sequence repeatedly until ctx is done or Show fails.
func (c *Cycle) Run(ctx context.Context) error {
	clk := c.Clock
	if clk == nil {
		clk = clock.New()
	}
	for {
		for _, col := range Sequence {
			glog.V(1).Infof("Setting color to %s", col)
			if err := c.Indicator.Show(col); err != nil {
				return err
			}
			t := clk.Timer(c.Hold)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}
	}
}

// Simulate steps through the sequence in virtual time, for a total of d.
// advance is called with each hold period, or the part of it left before
// d runs out, after the colour is shown. It lets the light run beside a
// simulated LP core without a wall clock.
func (c *Cycle) Simulate(d time.Duration, advance func(time.Duration)) error {
	if c.Hold <= 0 {
		return errors.New("hold time must be positive")
	}
	var elapsed time.Duration
	for i := 0; elapsed < d; i++ {
		col := Sequence[i%len(Sequence)]
		glog.V(1).Infof("Setting color to %s", col)
		if err := c.Indicator.Show(col); err != nil {
			return err
		}
		step := c.Hold
		if step > d-elapsed {
			step = d - elapsed
		}
		advance(step)
		elapsed += step
	}
	return nil
}

// Logger is an Indicator that only logs.
type Logger struct{}

func (Logger) Show(c Color) error {
	glog.Infof("LED %s", c)
	return nil
}
