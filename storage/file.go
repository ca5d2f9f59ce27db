// Copyright 2025 Andrew McRae
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

package storage

import (
	"log"
	"os"
)

// File is a region backed by a file, standing in for the flash
// emulation layer on the device. Writes land in memory; Commit only
// marks the region dirty, and Flush performs the actual file write.
// The composition root calls Flush from a debounced autosave tick so
// that a burst of settings changes costs a single file write.
type File struct {
	path  string
	data  []byte
	dirty bool
}

// NewFile loads a region from the backing file, creating a zeroed
// region when the file is absent. A short file is zero-padded and an
// oversize one is truncated to the requested size.
func NewFile(path string, size int) (*File, error) {
	f := &File{path: path, data: make([]byte, size)}
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		log.Printf("Unable to read %s (%v), starting with empty region", path, err)
		return f, nil
	}
	copy(f.data, b)
	return f, nil
}

func (f *File) Read(pos int) byte {
	return f.data[pos]
}

func (f *File) Write(pos int, value byte) {
	f.data[pos] = value
}

func (f *File) Commit() {
	f.dirty = true
}

func (f *File) Size() int {
	return len(f.data)
}

// Flush writes the region back to the file if anything changed since
// the last flush.
func (f *File) Flush() error {
	if !f.dirty {
		return nil
	}
	if err := os.WriteFile(f.path, f.data, 0644); err != nil {
		return err
	}
	f.dirty = false
	return nil
}

// Dirty reports whether there are uncommitted changes pending a flush.
func (f *File) Dirty() bool {
	return f.dirty
}
