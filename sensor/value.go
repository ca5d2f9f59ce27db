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

package sensor

import (
	"math"
	"strconv"

	"powernode/units"
)

// Value is one observed magnitude reading. It is transient: a new one
// is composed for each read or report cycle and never persisted.
// A NaN value means unknown.
type Value struct {
	Type     Type
	Index    int
	Units    units.Unit
	Decimals int
	Value    float64
	Topic    string
	Repr     string
}

// Valid reports whether the reading holds a real value.
func (v Value) Valid() bool {
	return !math.IsNaN(v.Value)
}

// Info is the static descriptor of a magnitude slot.
type Info struct {
	Type        Type
	Index       int
	Units       units.Unit
	Decimals    int
	Topic       string
	Description string
}

// Format renders a reading at the slot's display precision. Unknown
// readings render as an empty string.
func Format(value float64, decimals int) string {
	if math.IsNaN(value) {
		return ""
	}
	return strconv.FormatFloat(value, 'f', decimals, 64)
}
