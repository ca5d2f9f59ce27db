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

package led

import (
	"strconv"
	"strings"
	"time"
)

// Delay is one step of a blink pattern. Zero repeats means the step
// cycles indefinitely.
type Delay struct {
	On      time.Duration
	Off     time.Duration
	Repeats int
}

// Pattern is a blink sequence.
type Pattern []Delay

// ParsePattern parses a pattern string: whitespace-separated groups of
// "<on-ms>,<off-ms>" or "<on-ms>,<off-ms>,<repeats>". Any malformed
// group invalidates the whole pattern, returning nil.
func ParsePattern(raw string) Pattern {
	var p Pattern
	for _, group := range strings.Fields(raw) {
		parts := strings.Split(group, ",")
		if len(parts) != 2 && len(parts) != 3 {
			return nil
		}
		on, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return nil
		}
		off, err := strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			return nil
		}
		var repeats uint64
		if len(parts) == 3 {
			repeats, err = strconv.ParseUint(parts[2], 10, 16)
			if err != nil {
				return nil
			}
		}
		p = append(p, Delay{
			On:      time.Duration(on) * time.Millisecond,
			Off:     time.Duration(off) * time.Millisecond,
			Repeats: int(repeats),
		})
	}
	return p
}

// String renders the pattern back into its stored form.
func (p Pattern) String() string {
	var b strings.Builder
	for i, d := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatInt(d.On.Milliseconds(), 10))
		b.WriteByte(',')
		b.WriteString(strconv.FormatInt(d.Off.Milliseconds(), 10))
		if d.Repeats > 0 {
			b.WriteByte(',')
			b.WriteString(strconv.Itoa(d.Repeats))
		}
	}
	return b.String()
}
