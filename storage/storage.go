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

// package storage provides the persistent byte region that device
// settings are packed into, and the key-value layer on top of it.
//
// The actual flash driver sits behind the ByteStore interface; the
// key-value layer only ever sees single-byte reads and writes plus a
// commit signal. Commit is decoupled from durability on purpose:
// implementations buffer writes and flush on a debounced schedule to
// bound flash wear, so a caller must not assume a mutation is durable
// until a flush has happened.
package storage

// ByteStore is the contract a persistent region driver must satisfy.
type ByteStore interface {
	Read(pos int) byte
	Write(pos int, value byte)
	Commit()
	Size() int
}

// Mem is a fixed-size RAM-backed region, used for tests and for
// settings that do not need to survive a reboot.
type Mem struct {
	data    []byte
	commits int
}

func NewMem(size int) *Mem {
	return &Mem{data: make([]byte, size)}
}

func (m *Mem) Read(pos int) byte {
	return m.data[pos]
}

func (m *Mem) Write(pos int, value byte) {
	m.data[pos] = value
}

func (m *Mem) Commit() {
	m.commits++
}

func (m *Mem) Size() int {
	return len(m.data)
}

// Commits returns the number of commit signals seen, for tests.
func (m *Mem) Commits() int {
	return m.commits
}
