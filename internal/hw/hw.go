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

// Package hw holds the memory layout and register map of the LP subsystem
// window, shared by the loader and the simulator.
package hw

// Chip identification, as read from RegID.
const (
	ChipID = 0x0C6A0001
)

const (
	// LP SRAM
	// Memory offsets
	RAMBase      = 0x00000000
	ProgramBase  = 0x00000000
	RetainedBase = 0x00003C00

	// Memory sizes
	RAMSize      = 16 * 1024
	ProgramSize  = 8 * 1024
	RetainedSize = 1024

	// Register offsets
	RegID        = 0x10000
	RegCtl       = 0x10004
	RegStatus    = 0x10008
	RegWakeSrc   = 0x1000C
	RegTimerUS   = 0x10010
	RegProgLen   = 0x10014
	RegWakeCount = 0x10018
	RegFault     = 0x1001C

	// Total size of the mapped window.
	WindowSize = 0x10020
)

// RegCtl bits
const (
	CtlRun = 1 << 0
)

// RegStatus fields
const (
	StatusStateMask = 0x3
	StatusRunning   = 1 << 8
	StatusFault     = 1 << 9
)

// Core states reported in the low bits of RegStatus.
const (
	StateSuspended = 0
	StateAwake     = 1
	StateActive    = 2
)

// Wake source bits of RegWakeSrc.
const (
	WakeHPCPU   = 1 << 0
	WakeLPUART  = 1 << 1
	WakeLPIO    = 1 << 2
	WakeETM     = 1 << 3
	WakeLPTimer = 1 << 4
)

// Number of LP IO lines the LP core can drive.
const NumLPIO = 8
