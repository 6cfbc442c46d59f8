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
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/aamcrae/ulp/internal/hw"
	"github.com/aamcrae/ulp/isa"
	"github.com/aamcrae/ulp/trace"
)

// TrapCode classifies an LP core fault.
type TrapCode uint32

const (
	TrapNone TrapCode = iota
	TrapIllegal
	TrapAddress
	TrapPin
)

func (t TrapCode) String() string {
	switch t {
	case TrapNone:
		return "none"
	case TrapIllegal:
		return "illegal instruction"
	case TrapAddress:
		return "bad retained address"
	case TrapPin:
		return "bad pin"
	}
	return fmt.Sprintf("trap(%d)", uint32(t))
}

// Trap is a latched LP core fault. PC is the word index of the faulting
// instruction. There is no recovery from a trap other than Reset or PowerCycle.
type Trap struct {
	Code  TrapCode
	PC    int
	Cycle uint64
	Msg   string
}

func (t *Trap) Error() string {
	return fmt.Sprintf("%s at pc %d in cycle %d: %s", t.Code, t.PC, t.Cycle, t.Msg)
}

// wake starts one wake cycle. The core always begins at the first
// instruction with cleared registers; only retained memory carries over.
func (c *Chip) wake(now time.Duration) {
	c.cycles++
	c.lastWake = now
	c.state = hw.StateAwake
	c.rec.Record(trace.Event{Kind: trace.Wake, At: now, Cycle: c.cycles})
	glog.V(2).Infof("lp[%s]: wake %d at %s", c.id, c.cycles, now)
	c.pc = 0
	c.regs = [isa.NumRegs]uint32{}
	c.state = hw.StateActive
	c.exec(now)
}

// exec runs instructions until the cycle halts, faults or is delayed.
func (c *Chip) exec(now time.Duration) {
	for {
		addr := c.pc * isa.WordSize
		if addr+isa.WordSize > c.codeLen {
			// Falling off the end of the program is an implicit halt.
			c.halt(now)
			return
		}
		w := isa.Order.Uint32(c.mem[hw.ProgramBase+addr:])
		c.pc++
		in, err := isa.Decode(w)
		if err != nil {
			c.fault(now, TrapIllegal, err.Error())
			return
		}
		switch in.Op {
		case isa.NOP:
		case isa.HALT:
			c.halt(now)
			return
		case isa.LDI:
			c.regs[in.Reg] = in.Imm
		case isa.XORI:
			c.regs[in.Reg] ^= in.Imm
		case isa.LD:
			off, ok := c.retained(now, in.Imm)
			if !ok {
				return
			}
			c.regs[in.Reg] = order.Uint32(c.mem[off:])
		case isa.ST:
			off, ok := c.retained(now, in.Imm)
			if !ok {
				return
			}
			order.PutUint32(c.mem[off:], c.regs[in.Reg])
		case isa.GPIOINIT:
			if in.Imm >= hw.NumLPIO {
				c.fault(now, TrapPin, fmt.Sprintf("no LP IO %d", in.Imm))
				return
			}
			c.pinInit[in.Imm] = true
		case isa.GPIOSET:
			if in.Imm >= hw.NumLPIO {
				c.fault(now, TrapPin, fmt.Sprintf("no LP IO %d", in.Imm))
				return
			}
			if !c.pinInit[in.Imm] {
				c.fault(now, TrapPin, fmt.Sprintf("LP IO %d is not an output", in.Imm))
				return
			}
			lvl := c.regs[in.Reg]&1 != 0
			c.level[in.Imm] = lvl
			c.rec.Record(trace.Event{Kind: trace.Output, At: now, Cycle: c.cycles, Pin: int(in.Imm), Level: lvl})
		case isa.DELAY:
			g := c.gen
			c.sched.schedule(now+time.Duration(in.Imm)*time.Microsecond, func(t time.Duration) {
				if c.gen == g {
					c.exec(t)
				}
			})
			return
		}
	}
}

// retained converts a retained memory offset to an LP SRAM offset.
func (c *Chip) retained(now time.Duration, off uint32) (uint32, bool) {
	if off%4 != 0 || off+4 > hw.RetainedSize {
		c.fault(now, TrapAddress, fmt.Sprintf("retained offset %#x", off))
		return 0, false
	}
	return hw.RetainedBase + off, true
}

// halt suspends the core and re-arms the LP timer. The timer period runs
// from the previous wake; a cycle that overran wakes again immediately.
func (c *Chip) halt(now time.Duration) {
	c.state = hw.StateSuspended
	c.rec.Record(trace.Event{Kind: trace.Halt, At: now, Cycle: c.cycles})
	next := c.lastWake + c.interval
	if next < now {
		glog.Warningf("lp[%s]: cycle %d overran the wake interval by %s", c.id, c.cycles, now-next)
		next = now
	}
	c.arm(next)
}

func (c *Chip) fault(now time.Duration, code TrapCode, msg string) {
	c.trap = &Trap{Code: code, PC: c.pc - 1, Cycle: c.cycles, Msg: msg}
	c.running = false
	c.state = hw.StateSuspended
	c.gen++
	c.rec.Record(trace.Event{Kind: trace.Fault, At: now, Cycle: c.cycles, Note: c.trap.Error()})
	glog.Errorf("lp[%s]: %v", c.id, c.trap)
}
