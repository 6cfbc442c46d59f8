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
	"github.com/golang/glog"

	"github.com/aamcrae/ulp/internal/hw"
)

// Core loads, configures and starts the LP core.
type Core struct {
	lp       *LP
	program  []byte
	retained []byte

	loaded  bool
	policy  *WakePolicy
	started bool
}

// newCore initialises the core's fields
func newCore(p *LP) *Core {
	c := new(Core)
	c.lp = p
	c.program = p.bus.Window(hw.ProgramBase, hw.ProgramSize)
	c.retained = p.bus.Window(hw.RetainedBase, hw.RetainedSize)
	return c
}

// IsRunning returns true if the LP core has been started and has not faulted.
func (c *Core) IsRunning() bool {
	return (c.lp.rd(hw.RegStatus) & hw.StatusRunning) != 0
}

// Load copies the image into LP program memory, replacing any program
// already there. Nothing is written if the image is rejected, or once the
// core has been started, even if it has since faulted.
func (c *Core) Load(img Image) error {
	n := img.Len()
	var err error
	switch {
	case n == 0:
		err = ErrEmptyImage
	case n%4 != 0:
		err = ErrUnaligned
	case n > len(c.program):
		err = ErrTooLarge
	case c.owned():
		err = ErrRunning
	}
	if err != nil {
		return &LoadError{Len: n, Err: err}
	}
	copy(c.program, img.code)
	for i := n; i < len(c.program); i++ {
		c.program[i] = 0
	}
	c.lp.wr(hw.RegProgLen, uint32(n))
	c.loaded = true
	glog.V(1).Infof("loaded %d byte program", n)
	return nil
}

// Configure validates the wake policy and writes it to the wake registers.
// A rejected policy leaves the registers as they were.
func (c *Core) Configure(p WakePolicy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if c.owned() {
		return &ConfigError{Policy: p, Err: ErrRunning}
	}
	c.lp.wr(hw.RegWakeSrc, uint32(p.Source))
	c.lp.wr(hw.RegTimerUS, p.IntervalUS)
	c.policy = &p
	glog.V(1).Infof("wake policy %s", p)
	return nil
}

// Start hands control to the LP core. It returns as soon as the core is
// running on its own schedule; it does not wait for the first wake.
func (c *Core) Start() error {
	if c.IsRunning() {
		return &StartError{Err: ErrRunning}
	}
	if !c.loaded {
		return &StartError{Err: ErrNotLoaded}
	}
	if c.policy == nil {
		return &StartError{Err: ErrNotConfigured}
	}
	c.lp.wr(hw.RegCtl, hw.CtlRun)
	if !c.IsRunning() {
		return &StartError{Err: ErrUnavailable}
	}
	c.started = true
	glog.V(1).Infof("LP core started, %s", c.policy)
	return nil
}

// Policy returns the wake policy last applied, if any.
func (c *Core) Policy() (WakePolicy, bool) {
	if c.policy == nil {
		return WakePolicy{}, false
	}
	return *c.policy, true
}

// owned reports whether LP memory and the wake registers belong to the LP core.
func (c *Core) owned() bool {
	return c.started || c.IsRunning()
}
