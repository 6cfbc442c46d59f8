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

package asm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aamcrae/ulp/isa"
)

const blink = `
.equ LED   3
.equ STATE 0x0

	gpio.init LED        ; output enable
	ld    r0, [STATE]
	xori  r0, 1
	gpio.set LED, r0
	st    r0, STATE      # write back
	delay 1000000
`

func decodeAll(t *testing.T, b []byte) []isa.Instr {
	require.Zero(t, len(b)%isa.WordSize)
	var out []isa.Instr
	for i := 0; i < len(b); i += isa.WordSize {
		in, err := isa.Decode(isa.Order.Uint32(b[i:]))
		require.NoError(t, err)
		out = append(out, in)
	}
	return out
}

func TestAssembleBlink(t *testing.T) {
	b, err := AssembleString(blink)
	require.NoError(t, err)
	assert.Equal(t, []isa.Instr{
		{Op: isa.GPIOINIT, Imm: 3},
		{Op: isa.LD, Reg: 0, Imm: 0},
		{Op: isa.XORI, Reg: 0, Imm: 1},
		{Op: isa.GPIOSET, Reg: 0, Imm: 3},
		{Op: isa.ST, Reg: 0, Imm: 0},
		{Op: isa.DELAY, Imm: 1000000},
	}, decodeAll(t, b))
}

func TestAssembleErrors(t *testing.T) {
	cases := map[string]struct {
		src  string
		line int
	}{
		"unknown op":     {"nop\njmp 4\n", 2},
		"bad register":   {"ldi r9, 1", 1},
		"operand count":  {"halt 1", 1},
		"bad number":     {"delay soon", 1},
		"too large":      {"delay 0x200000", 1},
		"redefined":      {".equ A 1\n.equ A 2", 2},
		"short equ":      {".equ A", 1},
		"missing reg":    {"gpio.set 3", 1},
		"register first": {"ld 4, r0", 1},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := AssembleString(c.src)
			var ae *Error
			require.True(t, errors.As(err, &ae), "got %v", err)
			assert.Equal(t, c.line, ae.Line)
		})
	}
}

func TestAssembleEmpty(t *testing.T) {
	_, err := AssembleString("; nothing here\n\n")
	assert.Error(t, err)
}
