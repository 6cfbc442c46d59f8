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
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("scheduler", func() {
	var (
		s   *scheduler
		log []string
	)

	rec := func(name string) func(time.Duration) {
		return func(now time.Duration) {
			log = append(log, name)
		}
	}

	BeforeEach(func() {
		s = new(scheduler)
		log = nil
	})

	It("should run events in time order", func() {
		s.schedule(3*time.Second, rec("c"))
		s.schedule(1*time.Second, rec("a"))
		s.schedule(2*time.Second, rec("b"))

		Expect(s.runUntil(10 * time.Second)).To(Equal(3))
		Expect(log).To(Equal([]string{"a", "b", "c"}))
		Expect(s.now).To(Equal(10 * time.Second))
	})

	It("should keep scheduling order for events at the same time", func() {
		s.schedule(time.Second, rec("first"))
		s.schedule(time.Second, rec("second"))

		s.runUntil(time.Second)

		Expect(log).To(Equal([]string{"first", "second"}))
	})

	It("should leave later events queued", func() {
		s.schedule(time.Second, rec("a"))
		s.schedule(5*time.Second, rec("b"))

		Expect(s.runUntil(2 * time.Second)).To(Equal(1))
		Expect(s.pending()).To(Equal(1))
		Expect(s.now).To(Equal(2 * time.Second))
	})

	It("should run events scheduled by events when they fall due", func() {
		s.schedule(time.Second, func(now time.Duration) {
			log = append(log, "a")
			s.schedule(now+time.Second, rec("b"))
			s.schedule(now+time.Hour, rec("c"))
		})

		s.runUntil(3 * time.Second)

		Expect(log).To(Equal([]string{"a", "b"}))
	})

	It("should refuse events in the past", func() {
		s.runUntil(time.Second)
		Expect(func() { s.schedule(0, rec("late")) }).To(Panic())
	})
})
