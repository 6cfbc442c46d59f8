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

package main

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/aamcrae/ulp"
	"github.com/aamcrae/ulp/asm"
	"github.com/aamcrae/ulp/indicator"
	"github.com/aamcrae/ulp/sim"
	"github.com/aamcrae/ulp/trace"
)

//go:embed blink.lps
var blinkSource []byte

const ledPin = 3

var cfg = envConfig()

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Boot an LP core program and run the status light.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), cfg)
	},
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&cfg.image, "image", cfg.image, "LP core binary, the built in blink program if empty")
	f.Uint32Var(&cfg.intervalUS, "interval-us", cfg.intervalUS, "LP timer wake interval in microseconds")
	f.DurationVar(&cfg.duration, "duration", cfg.duration, "How long to run, 0 runs until interrupted in realtime mode")
	f.DurationVar(&cfg.hold, "hold", cfg.hold, "Time each status colour is shown")
	f.BoolVar(&cfg.realtime, "realtime", cfg.realtime, "Pace the simulator with the wall clock")
	f.StringVar(&cfg.traceDB, "trace-db", cfg.traceDB, "SQLite file to store the LP core trace in")
	f.StringVar(&cfg.device, "device", cfg.device, "UIO device of a real LP subsystem, e.g. uio0")
}

func loadImage(name string) (ulp.Image, error) {
	if name != "" {
		return ulp.ImageFile(name)
	}
	b, err := asm.Assemble(bytes.NewReader(blinkSource))
	if err != nil {
		return ulp.Image{}, err
	}
	return ulp.NewImage(b), nil
}

func run(ctx context.Context, c config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := new(trace.Log)
	var rec trace.Recorder = log
	if c.traceDB != "" {
		db, err := trace.NewSQLite(c.traceDB)
		if err != nil {
			return err
		}
		defer db.Close()
		glog.Infof("Tracing run %s to %s", db.RunID, c.traceDB)
		rec = trace.Tee{log, db}
	}

	var chip *sim.Chip
	var bus ulp.Bus
	if c.device != "" {
		var err error
		if bus, err = openDevice(c.device); err != nil {
			return err
		}
	} else {
		chip = sim.New(sim.Config{Recorder: rec})
		bus = chip
	}
	lp, err := ulp.Open(bus)
	if err != nil {
		bus.Close()
		return err
	}
	atexit.Register(func() { lp.Close() })
	glog.Infof("%s", lp.Description())

	img, err := loadImage(c.image)
	if err != nil {
		return err
	}
	glog.Infof("Starting ULP Program...")
	h := ulp.Handoff{Image: img, Policy: ulp.PeriodicTimer(c.intervalUS)}
	if err := lp.Core().Boot(h); err != nil {
		atexit.Fatalf("ULP boot failed: %v", err)
	}
	glog.Infof("Starting RGB LED blinking...")

	cycle := &indicator.Cycle{Indicator: indicator.Logger{}, Hold: c.hold}
	if chip != nil && !c.realtime {
		if err := runVirtual(chip, cycle, c.duration); err != nil {
			return err
		}
		summarize(chip, log)
		return nil
	}

	if c.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.duration)
		defer cancel()
	}
	var wg sync.WaitGroup
	if chip != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			chip.RunRealtime(ctx, clock.New(), 10*time.Millisecond)
		}()
	}
	err = cycle.Run(ctx)
	wg.Wait()
	if chip != nil {
		summarize(chip, log)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// runVirtual runs the status light and the simulated LP core side by side
// for d of virtual time.
func runVirtual(chip *sim.Chip, cycle *indicator.Cycle, d time.Duration) error {
	return cycle.Simulate(d, chip.RunFor)
}

func summarize(chip *sim.Chip, log *trace.Log) {
	fmt.Printf("%s after %s: %d wakes, running %t\n", chip.BootID(), chip.Now(), chip.Cycles(), chip.Running())
	if t := chip.Fault(); t != nil {
		fmt.Printf("fault: %v\n", t)
	}
	for i, l := range log.Levels(ledPin) {
		fmt.Printf("cycle %d: LED %t\n", i+1, l)
	}
}
