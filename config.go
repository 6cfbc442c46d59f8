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

package ulp

import (
	"fmt"
	"math"
	"time"

	"github.com/aamcrae/ulp/internal/hw"
)

// WakeSource selects what wakes the LP core. The values are the bits
// of the wake source register.
type WakeSource uint32

const (
	WakeHPCPU   WakeSource = hw.WakeHPCPU
	WakeLPUART  WakeSource = hw.WakeLPUART
	WakeLPIO    WakeSource = hw.WakeLPIO
	WakeETM     WakeSource = hw.WakeETM
	WakeLPTimer WakeSource = hw.WakeLPTimer
)

func (s WakeSource) String() string {
	switch s {
	case WakeHPCPU:
		return "hp-cpu"
	case WakeLPUART:
		return "lp-uart"
	case WakeLPIO:
		return "lp-io"
	case WakeETM:
		return "etm"
	case WakeLPTimer:
		return "lp-timer"
	}
	return fmt.Sprintf("source(%#x)", uint32(s))
}

// supported reports whether the loader can configure the source.
// Only the periodic LP timer is; the others would need the host to
// interact with the LP core after boot.
func (s WakeSource) supported() bool {
	return s == WakeLPTimer
}

// WakePolicy is the wake configuration handed to the LP core at boot.
type WakePolicy struct {
	Source     WakeSource
	IntervalUS uint32 // Sleep between timer wakes, in microseconds.
}

// DefaultPolicy wakes the LP core once a second from the LP timer.
var DefaultPolicy WakePolicy

func init() {
	DefaultPolicy = PeriodicTimer(1000000)
}

// PeriodicTimer returns a policy that wakes from the LP timer every us microseconds.
func PeriodicTimer(us uint32) WakePolicy {
	return WakePolicy{Source: WakeLPTimer, IntervalUS: us}
}

// PolicyFromDuration is PeriodicTimer with the interval given as a duration.
// The duration must be a positive whole number of microseconds that fits
// the timer register.
func PolicyFromDuration(d time.Duration) (WakePolicy, error) {
	p := WakePolicy{Source: WakeLPTimer}
	if d <= 0 {
		return p, &ConfigError{Policy: p, Err: ErrZeroInterval}
	}
	if d%time.Microsecond != 0 || d/time.Microsecond > math.MaxUint32 {
		return p, &ConfigError{Policy: p, Err: fmt.Errorf("interval %s not representable in microseconds", d)}
	}
	p.IntervalUS = uint32(d / time.Microsecond)
	return p, nil
}

// Interval returns the wake interval as a duration.
func (p WakePolicy) Interval() time.Duration {
	return time.Duration(p.IntervalUS) * time.Microsecond
}

// Validate checks the policy before it is applied.
func (p WakePolicy) Validate() error {
	if !p.Source.supported() {
		return &ConfigError{Policy: p, Err: ErrUnsupportedSource}
	}
	if p.IntervalUS == 0 {
		return &ConfigError{Policy: p, Err: ErrZeroInterval}
	}
	return nil
}

func (p WakePolicy) String() string {
	return fmt.Sprintf("%s every %s", p.Source, p.Interval())
}
