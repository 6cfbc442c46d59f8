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

// Package isa defines the instruction encoding of the LP core.
//
// Every instruction is one little endian 32 bit word:
//
//	31      24 23  20 19                 0
//	+---------+------+--------------------+
//	|   op    | reg  |        imm         |
//	+---------+------+--------------------+
//
// A zero word is a NOP, so zero-filled program memory runs off the end of
// the program and halts.
package isa

import (
	"encoding/binary"
	"fmt"
)

// Op is an instruction opcode.
type Op uint8

const (
	NOP      Op = iota // no operation
	HALT               // end the wake cycle
	LDI                // reg = imm
	LD                 // reg = retained[imm]
	ST                 // retained[imm] = reg
	XORI               // reg ^= imm
	GPIOINIT           // configure LP IO imm as an output
	GPIOSET            // LP IO imm = reg & 1
	DELAY              // hold for imm microseconds
	nOps
)

const (
	NumRegs  = 4
	MaxImm   = 1<<20 - 1
	WordSize = 4
)

// Order is the byte order of instruction words in an image.
var Order = binary.LittleEndian

var opNames = [nOps]string{
	NOP:      "nop",
	HALT:     "halt",
	LDI:      "ldi",
	LD:       "ld",
	ST:       "st",
	XORI:     "xori",
	GPIOINIT: "gpio.init",
	GPIOSET:  "gpio.set",
	DELAY:    "delay",
}

func (o Op) String() string {
	if o < nOps {
		return opNames[o]
	}
	return fmt.Sprintf("op(%#x)", uint8(o))
}

// Lookup returns the opcode with the assembler mnemonic s.
func Lookup(s string) (Op, bool) {
	for i, n := range opNames {
		if n == s {
			return Op(i), true
		}
	}
	return 0, false
}

// Instr is one decoded instruction.
type Instr struct {
	Op  Op
	Reg uint8
	Imm uint32
}

// Encode packs the instruction into a word.
func (i Instr) Encode() (uint32, error) {
	if i.Op >= nOps {
		return 0, fmt.Errorf("unknown opcode %#x", uint8(i.Op))
	}
	if i.Reg >= NumRegs {
		return 0, fmt.Errorf("%s: register r%d out of range", i.Op, i.Reg)
	}
	if i.Imm > MaxImm {
		return 0, fmt.Errorf("%s: immediate %d out of range", i.Op, i.Imm)
	}
	return uint32(i.Op)<<24 | uint32(i.Reg)<<20 | i.Imm, nil
}

// Decode unpacks a word.
func Decode(w uint32) (Instr, error) {
	i := Instr{
		Op:  Op(w >> 24),
		Reg: uint8((w >> 20) & 0xF),
		Imm: w & MaxImm,
	}
	if i.Op >= nOps {
		return i, fmt.Errorf("illegal instruction %#08x", w)
	}
	if i.Reg >= NumRegs {
		return i, fmt.Errorf("illegal register in %#08x", w)
	}
	return i, nil
}

func (i Instr) String() string {
	switch i.Op {
	case NOP, HALT:
		return i.Op.String()
	case LDI, XORI:
		return fmt.Sprintf("%s r%d, %d", i.Op, i.Reg, i.Imm)
	case LD, ST:
		return fmt.Sprintf("%s r%d, %#x", i.Op, i.Reg, i.Imm)
	case GPIOSET:
		return fmt.Sprintf("%s %d, r%d", i.Op, i.Imm, i.Reg)
	default:
		return fmt.Sprintf("%s %d", i.Op, i.Imm)
	}
}
