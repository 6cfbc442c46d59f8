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

// Package trace records what an observer sees of the LP core: wake cycles,
// output levels, halts and faults.
package trace

import (
	"fmt"
	"sync"
	"time"
)

// Kind is the type of a trace event.
type Kind uint8

const (
	Wake Kind = iota
	Output
	Halt
	Fault
)

func (k Kind) String() string {
	switch k {
	case Wake:
		return "wake"
	case Output:
		return "output"
	case Halt:
		return "halt"
	case Fault:
		return "fault"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Event is one observation. At is the time since power-on.
// Pin and Level are only meaningful for Output events.
type Event struct {
	Kind  Kind
	At    time.Duration
	Cycle uint64
	Pin   int
	Level bool
	Note  string
}

// Recorder receives trace events.
type Recorder interface {
	Record(Event)
}

// Discard drops every event.
var Discard Recorder = discard{}

type discard struct{}

func (discard) Record(Event) {}

// Log keeps events in memory.
type Log struct {
	mu     sync.Mutex
	events []Event
}

// Record appends the event.
func (l *Log) Record(e Event) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (l *Log) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event(nil), l.events...)
}

// Filter returns the events of the kind given.
func (l *Log) Filter(k Kind) []Event {
	var out []Event
	for _, e := range l.Events() {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// Levels returns the successive output levels driven on pin.
func (l *Log) Levels(pin int) []bool {
	var out []bool
	for _, e := range l.Filter(Output) {
		if e.Pin == pin {
			out = append(out, e.Level)
		}
	}
	return out
}

// Count returns the number of events of kind k in the window [from, to).
func (l *Log) Count(k Kind, from, to time.Duration) int {
	n := 0
	for _, e := range l.Filter(k) {
		if e.At >= from && e.At < to {
			n++
		}
	}
	return n
}

// Tee sends every event to all the recorders.
type Tee []Recorder

func (t Tee) Record(e Event) {
	for _, r := range t {
		r.Record(e)
	}
}
