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
	"os"
)

// Image is an LP core binary as produced by the build. It is copied on
// creation and never changes afterwards.
type Image struct {
	code []byte
}

// NewImage creates an image from a copy of b.
func NewImage(b []byte) Image {
	return Image{code: append([]byte(nil), b...)}
}

// ImageFromBounds creates an image from the bytes of blob between the
// start and end offsets, as delimited by build-time start/end symbols.
func ImageFromBounds(blob []byte, start, end int) (Image, error) {
	if start < 0 || end < start || end > len(blob) {
		return Image{}, &LoadError{Len: end - start,
			Err: fmt.Errorf("%w: [%d, %d) in %d byte blob", ErrBadBounds, start, end, len(blob))}
	}
	return NewImage(blob[start:end]), nil
}

// ImageFile reads an image from the file named.
func ImageFile(name string) (Image, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return Image{}, err
	}
	return Image{code: b}, nil
}

// Len returns the image length in bytes.
func (i Image) Len() int {
	return len(i.code)
}

// Bytes returns a copy of the image.
func (i Image) Bytes() []byte {
	return append([]byte(nil), i.code...)
}
