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
	"strings"

	"github.com/golang/glog"

	"github.com/aamcrae/ulp/internal/hw"
)

//go:generate mockgen -destination mock_bus_test.go -package ulp github.com/aamcrae/ulp Bus

// Bus is the host's window onto the LP subsystem: 32 bit register access,
// and direct access to ranges of LP SRAM.
type Bus interface {
	Read32(offs uint32) uint32
	Write32(offs uint32, v uint32)
	Window(offs, size uint32) []byte
	Close() error
}

// LP is an opened LP subsystem.
type LP struct {
	bus  Bus
	id   uint32
	core *Core
}

// Open checks that the bus is attached to a supported LP subsystem
// and returns a handle for it.
func Open(bus Bus) (*LP, error) {
	id := bus.Read32(hw.RegID)
	if id != hw.ChipID {
		return nil, fmt.Errorf("Unknown LP subsystem id: 0x%08x", id)
	}
	p := &LP{bus: bus, id: id}
	p.core = newCore(p)
	glog.V(1).Infof("opened %s", p.Description())
	return p, nil
}

// Core returns the loader for the LP core.
func (p *LP) Core() *Core {
	return p.core
}

// Close releases the bus. A started LP core is not stopped; it runs
// until power loss or reset.
func (p *LP) Close() error {
	return p.bus.Close()
}

// Description returns a human readable string describing the LP subsystem.
func (p *LP) Description() string {
	var s strings.Builder
	fmt.Fprintf(&s, "LP subsystem 0x%08x", p.id)
	fmt.Fprintf(&s, ", %d KiB program memory", hw.ProgramSize/1024)
	fmt.Fprintf(&s, ", %d bytes retained memory", hw.RetainedSize)
	return s.String()
}

func (p *LP) rd(offs uint32) uint32 {
	return p.bus.Read32(offs)
}

func (p *LP) wr(offs uint32, v uint32) {
	glog.V(2).Infof("wr 0x%05x = 0x%08x", offs, v)
	p.bus.Write32(offs, v)
}
