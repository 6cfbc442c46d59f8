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

//go:build linux

package ulp

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/aamcrae/ulp/internal/hw"
)

// Device paths.
const (
	drvMapSize = "/sys/class/uio/%s/maps/map0/size"
	drvDevice  = "/dev/%s"
)

// UIO is a Bus over the LP subsystem window mapped by a Linux UIO driver.
type UIO struct {
	mmapFile *os.File
	mem      []byte
}

// OpenUIO maps the window of the UIO device named (e.g. "uio0").
func OpenUIO(name string) (*UIO, error) {
	size, err := readDriverValue(fmt.Sprintf(drvMapSize, name))
	if err != nil {
		return nil, err
	}
	if size < hw.WindowSize {
		return nil, fmt.Errorf("%s: map size 0x%x smaller than LP window 0x%x", name, size, hw.WindowSize)
	}
	dev := fmt.Sprintf(drvDevice, name)
	f, err := os.OpenFile(dev, os.O_RDWR|os.O_SYNC, 0660)
	if err != nil {
		return nil, err
	}
	mem, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %v", dev, err)
	}
	return &UIO{mmapFile: f, mem: mem}, nil
}

// Read32 reads one 32 bit word from the mapped window
func (u *UIO) Read32(offs uint32) uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Pointer(&u.mem[offs])))
}

// Write32 writes one 32 bit word to the mapped window
func (u *UIO) Write32(offs uint32, v uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(&u.mem[offs])), v)
}

// Window returns the mapped bytes at offs, or nil if the range is
// outside the mapping.
func (u *UIO) Window(offs, size uint32) []byte {
	if uint64(offs)+uint64(size) > uint64(len(u.mem)) {
		return nil
	}
	end := offs + size
	return u.mem[offs:end:end]
}

// Close unmaps the window and closes the device.
func (u *UIO) Close() error {
	err := unix.Munmap(u.mem)
	if cerr := u.mmapFile.Close(); err == nil {
		err = cerr
	}
	return err
}
