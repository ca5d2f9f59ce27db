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

package lib

import (
	"strconv"
	"strings"
)

// ConfigOrDefault returns def when the configured value was left at
// its zero value.
func ConfigOrDefault[T comparable](conf, def T) T {
	var zero T
	if conf == zero {
		return def
	}
	return conf
}

// FmtFloat formats a reading to at most 2 decimal places, dropping
// trailing zeros and a dangling decimal point.
func FmtFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	for strings.HasSuffix(s, "0") {
		s = s[:len(s)-1]
	}
	return strings.TrimSuffix(s, ".")
}
