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

// Package asm assembles LP core source into a binary image.
//
// One instruction per line. Comments start with ';' or '#'.
// Constants are defined with '.equ NAME value' and may be used wherever
// a number is expected. Numbers use Go syntax (1000, 0x3c00, 0b1).
//
//	.equ LED   3
//	.equ STATE 0
//	        gpio.init LED
//	        ld    r0, STATE
//	        xori  r0, 1
//	        gpio.set LED, r0
//	        st    r0, STATE
//	        delay 10000
package asm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aamcrae/ulp/isa"
)

// Error reports a problem at a source line.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

type assembler struct {
	line int
	equ  map[string]uint32
	code []isa.Instr
}

// Assemble reads the source and returns the image bytes.
func Assemble(r io.Reader) ([]byte, error) {
	a := &assembler{equ: make(map[string]uint32)}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		a.line++
		if err := a.parseLine(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(a.code) == 0 {
		return nil, fmt.Errorf("no instructions")
	}
	out := make([]byte, 0, len(a.code)*isa.WordSize)
	for _, in := range a.code {
		w, err := in.Encode()
		if err != nil {
			return nil, err
		}
		out = isa.Order.AppendUint32(out, w)
	}
	return out, nil
}

// AssembleString is Assemble on a string.
func AssembleString(s string) ([]byte, error) {
	return Assemble(strings.NewReader(s))
}

func (a *assembler) errorf(format string, args ...interface{}) error {
	return &Error{Line: a.line, Msg: fmt.Sprintf(format, args...)}
}

func (a *assembler) parseLine(s string) error {
	if i := strings.IndexAny(s, ";#"); i >= 0 {
		s = s[:i]
	}
	f := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(f) == 0 {
		return nil
	}
	mn := strings.ToLower(f[0])
	args := f[1:]
	if mn == ".equ" {
		if len(args) != 2 {
			return a.errorf(".equ needs a name and a value")
		}
		if _, ok := a.equ[args[0]]; ok {
			return a.errorf("%s redefined", args[0])
		}
		v, err := a.number(args[1])
		if err != nil {
			return err
		}
		a.equ[args[0]] = v
		return nil
	}
	op, ok := isa.Lookup(mn)
	if !ok {
		return a.errorf("unknown instruction %q", f[0])
	}
	in := isa.Instr{Op: op}
	var err error
	switch op {
	case isa.NOP, isa.HALT:
		err = a.nargs(args, 0)
	case isa.LDI, isa.XORI, isa.LD, isa.ST:
		if err = a.nargs(args, 2); err == nil {
			if in.Reg, err = a.register(args[0]); err == nil {
				in.Imm, err = a.number(strings.Trim(args[1], "[]"))
			}
		}
	case isa.GPIOSET:
		if err = a.nargs(args, 2); err == nil {
			if in.Imm, err = a.number(args[0]); err == nil {
				in.Reg, err = a.register(args[1])
			}
		}
	case isa.GPIOINIT, isa.DELAY:
		if err = a.nargs(args, 1); err == nil {
			in.Imm, err = a.number(args[0])
		}
	}
	if err != nil {
		return err
	}
	if _, err := in.Encode(); err != nil {
		return a.errorf("%v", err)
	}
	a.code = append(a.code, in)
	return nil
}

func (a *assembler) nargs(args []string, n int) error {
	if len(args) != n {
		return a.errorf("expected %d operands, found %d", n, len(args))
	}
	return nil
}

func (a *assembler) register(s string) (uint8, error) {
	s = strings.ToLower(s)
	if len(s) < 2 || s[0] != 'r' {
		return 0, a.errorf("bad register %q", s)
	}
	n, err := strconv.ParseUint(s[1:], 10, 8)
	if err != nil || n >= isa.NumRegs {
		return 0, a.errorf("bad register %q", s)
	}
	return uint8(n), nil
}

func (a *assembler) number(s string) (uint32, error) {
	if v, ok := a.equ[s]; ok {
		return v, nil
	}
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, a.errorf("bad number %q", s)
	}
	return uint32(n), nil
}
