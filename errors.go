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
	"errors"
	"fmt"
)

var (
	// ErrEmptyImage indicates an image with no code.
	ErrEmptyImage = errors.New("empty image")
	// ErrUnaligned indicates an image that is not a whole number of words.
	ErrUnaligned = errors.New("length is not 32 bit aligned")
	// ErrBadBounds indicates image start and end offsets that do not delimit the blob.
	ErrBadBounds = errors.New("bad image bounds")
	// ErrTooLarge indicates an image larger than LP program memory.
	ErrTooLarge = errors.New("program too large")
	// ErrRunning indicates the LP core has already been started.
	ErrRunning = errors.New("LP core is running")
	// ErrZeroInterval indicates a wake interval that is not positive.
	ErrZeroInterval = errors.New("wake interval must be positive")
	// ErrUnsupportedSource indicates a wake source this loader cannot configure.
	ErrUnsupportedSource = errors.New("unsupported wake source")
	// ErrNotLoaded indicates Start before a successful Load.
	ErrNotLoaded = errors.New("no program loaded")
	// ErrNotConfigured indicates Start before a successful Configure.
	ErrNotConfigured = errors.New("no wake policy configured")
	// ErrUnavailable indicates the LP core did not start when asked.
	ErrUnavailable = errors.New("LP core unavailable")
	// ErrOwned indicates host access to retained memory after Start.
	ErrOwned = errors.New("retained memory is owned by the LP core")
)

// LoadError is returned when an image cannot be loaded.
type LoadError struct {
	Len int
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %d byte image: %v", e.Len, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ConfigError is returned when a wake policy is rejected.
type ConfigError struct {
	Policy WakePolicy
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configure %s: %v", e.Policy, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// StartError is returned when the LP core cannot be started.
type StartError struct {
	Err error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("start: %v", e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}
