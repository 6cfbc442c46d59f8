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

package ulp

import (
	"fmt"
	"io"
)

// Retained returns an io view of the LP core's retained memory.
// The host may use it to set initial values before Start; once the core
// has been started every operation fails with ErrOwned.
func (c *Core) Retained() *RetainedIO {
	return &RetainedIO{data: c.retained, owned: c.owned}
}

// RetainedIO implements various io interfaces over retained memory.
type RetainedIO struct {
	data    []byte
	current int
	owned   func() bool
}

// Write copies the byte slice into retained memory
func (r *RetainedIO) Write(p []byte) (int, error) {
	if r.owned() {
		return 0, ErrOwned
	}
	if r.current >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(r.data[r.current:], p)
	r.current += n
	if n != len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt copies the byte slice into retained memory at the offset specified
func (r *RetainedIO) WriteAt(p []byte, offs int64) (int, error) {
	if offs < 0 || int(offs) >= len(r.data) {
		return 0, io.EOF
	}
	r.current = int(offs)
	return r.Write(p)
}

func (r *RetainedIO) WriteByte(b byte) error {
	if r.owned() {
		return ErrOwned
	}
	if r.current >= len(r.data) {
		return io.EOF
	}
	r.data[r.current] = b
	r.current++
	return nil
}

// Seek moves the offset
func (r *RetainedIO) Seek(offs int64, whence int) (int64, error) {
	n := int(offs)
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		n += r.current
	case io.SeekEnd:
		n += len(r.data)
	default:
		return 0, fmt.Errorf("unknown whence")
	}
	if n < 0 {
		return 0, fmt.Errorf("negative offset")
	}
	r.current = n
	return int64(r.current), nil
}

func (r *RetainedIO) ReadByte() (byte, error) {
	if r.owned() {
		return 0, ErrOwned
	}
	if r.current >= len(r.data) {
		return 0, io.EOF
	}
	b := r.data[r.current]
	r.current++
	return b, nil
}

func (r *RetainedIO) Read(p []byte) (int, error) {
	if r.owned() {
		return 0, ErrOwned
	}
	if r.current >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.current:])
	r.current += n
	if n != len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (r *RetainedIO) ReadAt(p []byte, offs int64) (int, error) {
	if offs < 0 || int(offs) >= len(r.data) {
		return 0, io.EOF
	}
	r.current = int(offs)
	return r.Read(p)
}
