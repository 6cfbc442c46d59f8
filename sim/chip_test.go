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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aamcrae/ulp/asm"
	"github.com/aamcrae/ulp/internal/hw"
	"github.com/aamcrae/ulp/trace"
)

const blinkSrc = `
.equ LED 3
	gpio.init LED
	ld    r0, 0
	xori  r0, 1
	gpio.set LED, r0
	st    r0, 0
`

// install writes the program and wake registers directly, the way the
// loader does, and starts the core.
func install(c *Chip, src string, intervalUS uint32) {
	code, err := asm.AssembleString(src)
	Expect(err).NotTo(HaveOccurred())
	copy(c.Window(hw.ProgramBase, hw.ProgramSize), code)
	c.Write32(hw.RegProgLen, uint32(len(code)))
	c.Write32(hw.RegWakeSrc, hw.WakeLPTimer)
	c.Write32(hw.RegTimerUS, intervalUS)
	c.Write32(hw.RegCtl, hw.CtlRun)
}

var _ = Describe("Chip", func() {
	var (
		c   *Chip
		log *trace.Log
	)

	BeforeEach(func() {
		log = new(trace.Log)
		c = New(Config{Recorder: log})
	})

	It("should identify itself and start stopped", func() {
		Expect(c.Read32(hw.RegID)).To(Equal(uint32(hw.ChipID)))
		Expect(c.Read32(hw.RegStatus)).To(Equal(uint32(hw.StateSuspended)))
		Expect(c.Running()).To(BeFalse())
		Expect(c.BootID()).NotTo(BeEmpty())
	})

	It("should expose LP SRAM through words and windows", func() {
		c.Write32(hw.RetainedBase, 0xCAFEF00D)
		Expect(c.PeekRetained(0)).To(Equal(uint32(0xCAFEF00D)))
		Expect(c.Read32(hw.RetainedBase)).To(Equal(uint32(0xCAFEF00D)))
		Expect(c.Window(hw.RetainedBase, 4)).To(Equal([]byte{0x0D, 0xF0, 0xFE, 0xCA}))
	})

	It("should ignore accesses outside LP SRAM", func() {
		for _, offs := range []uint32{hw.RAMSize, hw.RAMSize - 2, 0xFFFFFFFC} {
			Expect(c.Read32(offs)).To(BeZero())
			c.Write32(offs, 0xFFFFFFFF)
		}
		Expect(c.Read32(hw.RAMSize - 4)).To(BeZero())
		Expect(c.Window(hw.RAMSize-4, 4)).To(HaveLen(4))
		Expect(c.Window(hw.RAMSize-4, 8)).To(BeNil())
		Expect(c.Window(0xFFFFFFF0, 0x20)).To(BeNil())
	})

	It("should not wake before the first interval", func() {
		install(c, blinkSrc, 1000000)
		c.RunFor(999 * time.Millisecond)
		Expect(c.Cycles()).To(BeZero())
		Expect(c.Running()).To(BeTrue())
		Expect(c.Read32(hw.RegStatus) & hw.StatusRunning).NotTo(BeZero())
	})

	It("should alternate the output level on every wake", func() {
		install(c, blinkSrc, 1000000)
		c.RunFor(5 * time.Second)

		Expect(c.Cycles()).To(Equal(uint64(5)))
		Expect(log.Levels(3)).To(Equal([]bool{true, false, true, false, true}))
		Expect(c.Level(3)).To(BeTrue())
		Expect(c.PeekRetained(0)).To(Equal(uint32(1)))
		Expect(c.Read32(hw.RegWakeCount)).To(Equal(uint32(5)))
	})

	It("should wake once per interval over a window", func() {
		install(c, blinkSrc+"\tdelay 10000\n", 1000000)
		// Run past the hold of the fifth cycle so its halt is recorded.
		c.RunFor(5*time.Second + 10*time.Millisecond)
		n := log.Count(trace.Wake, 0, 5*time.Second+1)
		Expect(n).To(BeNumerically("~", 5, 1))
		Expect(log.Filter(trace.Halt)).To(HaveLen(5))
	})

	It("should stay active while holding", func() {
		install(c, blinkSrc+"\tdelay 10000\n", 1000000)
		c.RunFor(time.Second)
		Expect(c.State()).To(Equal(hw.StateActive))
		c.RunFor(10 * time.Millisecond)
		Expect(c.State()).To(Equal(hw.StateSuspended))
	})

	It("should wake immediately after a cycle that overran", func() {
		install(c, blinkSrc+"\tdelay 1000000\n\tdelay 500000\n", 1000000)
		c.RunFor(4 * time.Second)

		wakes := log.Filter(trace.Wake)
		Expect(wakes).To(HaveLen(3))
		Expect(wakes[0].At).To(Equal(1 * time.Second))
		Expect(wakes[1].At).To(Equal(2500 * time.Millisecond))
		Expect(wakes[2].At).To(Equal(4 * time.Second))
	})

	It("should halt at an explicit halt", func() {
		install(c, blinkSrc+"\thalt\n\tgpio.set 9, r0\n", 1000000)
		c.RunFor(3 * time.Second)
		Expect(c.Fault()).To(BeNil())
		Expect(c.Cycles()).To(Equal(uint64(3)))
	})

	It("should keep retained memory written before start", func() {
		c.Write32(hw.RetainedBase, 1)
		install(c, blinkSrc, 1000000)
		c.RunFor(2 * time.Second)
		Expect(log.Levels(3)).To(Equal([]bool{false, true}))
	})

	It("should latch a fault and never wake again", func() {
		install(c, "gpio.set 3, r0\n", 1000000)
		c.RunFor(5 * time.Second)

		Expect(c.Cycles()).To(Equal(uint64(1)))
		Expect(c.Running()).To(BeFalse())
		Expect(c.Fault()).NotTo(BeNil())
		Expect(c.Fault().Code).To(Equal(TrapPin))
		Expect(c.Fault().PC).To(Equal(0))
		Expect(c.Read32(hw.RegStatus) & hw.StatusFault).NotTo(BeZero())
		Expect(c.Read32(hw.RegFault)).To(Equal(uint32(TrapPin)))
		Expect(log.Filter(trace.Fault)).To(HaveLen(1))

		// A fault cannot be cleared by restarting.
		c.Write32(hw.RegCtl, 0)
		c.Write32(hw.RegCtl, hw.CtlRun)
		Expect(c.Running()).To(BeFalse())
	})

	It("should fault on a bad retained address", func() {
		install(c, "ld r0, 2\n", 1000000)
		c.RunFor(time.Second)
		Expect(c.Fault()).NotTo(BeNil())
		Expect(c.Fault().Code).To(Equal(TrapAddress))
	})

	It("should fault on an illegal instruction", func() {
		install(c, "nop\n", 1000000)
		c.Write32(hw.RegCtl, 0)
		c.Write32(hw.ProgramBase, 0xFF000000)
		c.Write32(hw.RegCtl, hw.CtlRun)
		c.RunFor(time.Second)
		Expect(c.Fault()).NotTo(BeNil())
		Expect(c.Fault().Code).To(Equal(TrapIllegal))
	})

	It("should recover from a fault on reset and keep retained memory", func() {
		install(c, blinkSrc, 1000000)
		c.RunFor(time.Second)
		Expect(c.PeekRetained(0)).To(Equal(uint32(1)))
		c.Reset()
		Expect(c.Running()).To(BeFalse())
		Expect(c.PeekRetained(0)).To(Equal(uint32(1)))

		c.Write32(hw.RegCtl, hw.CtlRun)
		c.RunFor(time.Second)
		Expect(c.PeekRetained(0)).To(Equal(uint32(0)))
	})

	It("should lose everything on a power cycle", func() {
		install(c, blinkSrc, 1000000)
		c.RunFor(time.Second)
		id := c.BootID()
		c.PowerCycle()
		Expect(c.PeekRetained(0)).To(BeZero())
		Expect(c.Read32(hw.RegProgLen)).To(BeZero())
		Expect(c.BootID()).NotTo(Equal(id))
	})

	It("should drop pending wakes when stopped", func() {
		install(c, blinkSrc, 1000000)
		c.RunFor(1500 * time.Millisecond)
		c.Write32(hw.RegCtl, 0)
		c.RunFor(5 * time.Second)
		Expect(c.Cycles()).To(Equal(uint64(1)))
	})

	It("should not wake without the LP timer source", func() {
		install(c, blinkSrc, 1000000)
		c.Write32(hw.RegCtl, 0)
		c.Write32(hw.RegWakeSrc, hw.WakeHPCPU)
		c.Write32(hw.RegCtl, hw.CtlRun)
		c.RunFor(5 * time.Second)
		Expect(c.Running()).To(BeTrue())
		Expect(c.Cycles()).To(BeZero())
	})

	Context("in real time", func() {
		It("should follow the clock", func() {
			mock := clock.NewMock()
			install(c, blinkSrc, 1000000)
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- c.RunRealtime(ctx, mock, 100*time.Millisecond) }()

			Eventually(func() uint64 {
				mock.Add(100 * time.Millisecond)
				return c.Cycles()
			}).Should(BeNumerically(">=", 1))

			cancel()
			Eventually(done).Should(Receive(MatchError(context.Canceled)))
		})
	})
})
