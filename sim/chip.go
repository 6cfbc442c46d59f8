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
	"encoding/binary"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/rs/xid"

	"github.com/aamcrae/ulp/internal/hw"
	"github.com/aamcrae/ulp/isa"
	"github.com/aamcrae/ulp/trace"
)

// Config contains the settings for a simulated chip.
type Config struct {
	// Recorder receives the trace of the LP core. Defaults to trace.Discard.
	Recorder trace.Recorder
}

// Chip is a simulated LP subsystem. It implements the register and
// memory window that the loader drives, and runs the LP core on a
// virtual clock that only advances through RunFor, RunUntil or RunRealtime.
type Chip struct {
	mu    sync.Mutex
	id    string
	rec   trace.Recorder
	sched scheduler
	mem   []byte

	// Registers as written by the host.
	ctl     uint32
	wakeSrc uint32
	timerUS uint32
	progLen uint32

	state   uint32
	running bool
	trap    *Trap
	cycles  uint64

	// Latched when the core is started.
	src      uint32
	interval time.Duration
	codeLen  int
	lastWake time.Duration
	// gen is bumped whenever the core stops, so stale events are dropped.
	gen uint64

	// LP core context.
	pc      int
	regs    [isa.NumRegs]uint32
	pinInit [hw.NumLPIO]bool
	level   [hw.NumLPIO]bool
}

var order = binary.LittleEndian

// New creates a powered-on chip with zeroed memory and a stopped LP core.
func New(cfg Config) *Chip {
	c := &Chip{
		id:  xid.New().String(),
		rec: cfg.Recorder,
		mem: make([]byte, hw.RAMSize),
	}
	if c.rec == nil {
		c.rec = trace.Discard
	}
	glog.V(1).Infof("lp[%s]: power on", c.id)
	return c
}

// BootID identifies this power-on of the chip in logs.
func (c *Chip) BootID() string {
	return c.id
}

// Read32 reads a register or a word of LP SRAM.
func (c *Chip) Read32(offs uint32) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch offs {
	case hw.RegID:
		return hw.ChipID
	case hw.RegCtl:
		return c.ctl
	case hw.RegStatus:
		return c.status()
	case hw.RegWakeSrc:
		return c.wakeSrc
	case hw.RegTimerUS:
		return c.timerUS
	case hw.RegProgLen:
		return c.progLen
	case hw.RegWakeCount:
		return uint32(c.cycles)
	case hw.RegFault:
		if c.trap != nil {
			return uint32(c.trap.Code)
		}
		return 0
	}
	if offs%4 == 0 && offs < hw.RAMSize-3 {
		return order.Uint32(c.mem[offs:])
	}
	glog.Warningf("lp[%s]: read of unmapped offset %#x", c.id, offs)
	return 0
}

// Write32 writes a register or a word of LP SRAM.
func (c *Chip) Write32(offs uint32, v uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch offs {
	case hw.RegCtl:
		c.ctl = v
		if v&hw.CtlRun != 0 {
			if !c.running {
				c.start()
			}
		} else if c.running {
			c.stop()
		}
	case hw.RegWakeSrc:
		c.wakeSrc = v
	case hw.RegTimerUS:
		c.timerUS = v
	case hw.RegProgLen:
		c.progLen = v
	case hw.RegID, hw.RegStatus, hw.RegWakeCount, hw.RegFault:
		// Read only.
	default:
		if offs%4 == 0 && offs < hw.RAMSize-3 {
			order.PutUint32(c.mem[offs:], v)
			return
		}
		glog.Warningf("lp[%s]: write to unmapped offset %#x", c.id, offs)
	}
}

// Window returns the LP SRAM bytes at offs, or nil if the range is
// outside LP SRAM.
func (c *Chip) Window(offs, size uint32) []byte {
	if offs > hw.RAMSize || size > hw.RAMSize-offs {
		glog.Warningf("lp[%s]: window %#x+%#x outside LP SRAM", c.id, offs, size)
		return nil
	}
	end := offs + size
	return c.mem[offs:end:end]
}

// Close releases the host's view. The LP core keeps running.
func (c *Chip) Close() error {
	return nil
}

// RunFor advances virtual time by d.
func (c *Chip) RunFor(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sched.runUntil(c.sched.now + d)
}

// RunUntil advances virtual time to t. Times in the past are ignored.
func (c *Chip) RunUntil(t time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sched.runUntil(t)
}

// Now returns the virtual time since power-on.
func (c *Chip) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sched.now
}

// State returns the LP core state (hw.StateSuspended etc.).
func (c *Chip) State() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int(c.state)
}

// Running reports whether the LP core is started and not faulted.
func (c *Chip) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Fault returns the latched fault, or nil.
func (c *Chip) Fault() *Trap {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trap
}

// Cycles returns the number of wake cycles since start.
func (c *Chip) Cycles() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cycles
}

// Level returns the level last driven on the LP IO pin.
func (c *Chip) Level(pin int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.level[pin]
}

// PeekRetained reads a word of retained memory at offset off.
func (c *Chip) PeekRetained(off uint32) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return order.Uint32(c.mem[hw.RetainedBase+off:])
}

// Reset is an external reset of the LP subsystem: the core stops, a latched
// fault is cleared, pin configuration is lost. LP SRAM, including program
// and retained memory, is preserved.
func (c *Chip) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
	glog.V(1).Infof("lp[%s]: reset", c.id)
}

// PowerCycle is Reset plus loss of all LP SRAM contents and registers.
func (c *Chip) PowerCycle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
	for i := range c.mem {
		c.mem[i] = 0
	}
	c.wakeSrc, c.timerUS, c.progLen = 0, 0, 0
	c.id = xid.New().String()
	glog.V(1).Infof("lp[%s]: power on", c.id)
}

func (c *Chip) reset() {
	c.stop()
	c.ctl = 0
	c.trap = nil
	c.cycles = 0
	c.pinInit = [hw.NumLPIO]bool{}
	c.level = [hw.NumLPIO]bool{}
}

func (c *Chip) status() uint32 {
	s := c.state & hw.StatusStateMask
	if c.running {
		s |= hw.StatusRunning
	}
	if c.trap != nil {
		s |= hw.StatusFault
	}
	return s
}

// start latches the wake configuration and arms the LP timer.
func (c *Chip) start() {
	if c.trap != nil {
		glog.Warningf("lp[%s]: start refused, fault latched: %v", c.id, c.trap)
		return
	}
	c.running = true
	c.state = hw.StateSuspended
	c.gen++
	c.src = c.wakeSrc
	c.interval = time.Duration(c.timerUS) * time.Microsecond
	c.codeLen = int(c.progLen)
	if c.codeLen > hw.ProgramSize {
		c.codeLen = hw.ProgramSize
	}
	c.lastWake = c.sched.now
	glog.V(1).Infof("lp[%s]: started, wake source %#x, interval %s, %d byte program",
		c.id, c.src, c.interval, c.codeLen)
	if c.src&hw.WakeLPTimer == 0 || c.interval <= 0 {
		glog.Warningf("lp[%s]: LP timer not enabled, core will not wake", c.id)
		return
	}
	c.arm(c.sched.now + c.interval)
}

func (c *Chip) stop() {
	c.running = false
	c.state = hw.StateSuspended
	c.gen++
}

// arm schedules the next timer wake.
func (c *Chip) arm(at time.Duration) {
	g := c.gen
	c.sched.schedule(at, func(now time.Duration) {
		if c.gen == g {
			c.wake(now)
		}
	})
}
