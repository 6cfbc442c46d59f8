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

/*

Package ulp boots the low-power (LP) coprocessor of a microcontroller from
the main CPU.

The LP core is started once: the host copies a program image into LP SRAM,
selects a wake source and interval, and sets the run bit. From then on the
LP core runs on its own. The LP timer wakes it, it executes the program once
from the start, and it halts until the next wake. The only state that survives
between wakes is the retained memory region, which the program reads on entry
and writes before halting. The host does not read or write that region once
the core has been started.

	p, err := ulp.Open(bus)
	...
	err = p.Core().Boot(ulp.Handoff{Image: img, Policy: ulp.DefaultPolicy})

A Bus may be a window mapped from a UIO device (OpenUIO), or the simulated
subsystem in package sim. Package asm builds program images.

*/
package ulp
