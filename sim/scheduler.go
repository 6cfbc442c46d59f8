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
	"container/heap"
	"time"
)

// event is a callback due at a virtual time.
type event struct {
	at  time.Duration
	seq uint64
	fn  func(now time.Duration)
}

// eventQueue orders events by time, then by scheduling order.
type eventQueue []*event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].at == q[j].at {
		return q[i].seq < q[j].seq
	}
	return q[i].at < q[j].at
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x interface{}) { *q = append(*q, x.(*event)) }

func (q *eventQueue) Pop() interface{} {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// scheduler is a serial discrete event engine over virtual time.
type scheduler struct {
	now   time.Duration
	seq   uint64
	queue eventQueue
}

// schedule registers fn to run at the time given.
func (s *scheduler) schedule(at time.Duration, fn func(now time.Duration)) {
	if at < s.now {
		panic("scheduling an event earlier than current time")
	}
	s.seq++
	heap.Push(&s.queue, &event{at: at, seq: s.seq, fn: fn})
}

// runUntil runs every event due at or before t, then moves time to t.
// Events scheduled while running are processed if they also fall due.
func (s *scheduler) runUntil(t time.Duration) int {
	n := 0
	for len(s.queue) > 0 && s.queue[0].at <= t {
		e := heap.Pop(&s.queue).(*event)
		s.now = e.at
		e.fn(e.at)
		n++
	}
	if t > s.now {
		s.now = t
	}
	return n
}

// pending returns the number of queued events.
func (s *scheduler) pending() int {
	return len(s.queue)
}
