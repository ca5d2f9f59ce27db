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

package settings

import (
	"strconv"
)

// Option maps one enumeration member to its stored forms: a compact
// numeric code and a human-readable keyword. Equivalent settings may be
// stored either way.
type Option[T comparable] struct {
	Code    int
	Keyword string
	Value   T
}

// MatchOption resolves text against an option table. When the text
// parses as a number only numeric codes are tried; otherwise only
// keywords are. Unmatched text yields the default.
func MatchOption[T comparable](options []Option[T], value string, def T) T {
	if len(value) == 0 {
		return def
	}
	if n, err := strconv.Atoi(value); err == nil {
		for _, o := range options {
			if o.Code == n {
				return o.Value
			}
		}
		return def
	}
	for _, o := range options {
		if o.Keyword == value {
			return o.Value
		}
	}
	return def
}

// GetOption reads an enumeration-valued setting, resolving the stored
// text through the option table. Absent keys yield the default.
func GetOption[T comparable](st *Store, key string, options []Option[T], def T) T {
	raw, ok := st.kvs.Get(key)
	if !ok {
		return def
	}
	return MatchOption(options, raw, def)
}

// SerializeOption returns the keyword form of an enumeration value, or
// an empty string when the value is not in the table.
func SerializeOption[T comparable](options []Option[T], value T) string {
	for _, o := range options {
		if o.Value == value {
			return o.Keyword
		}
	}
	return ""
}

// SetOption stores an enumeration value in its keyword form.
func SetOption[T comparable](st *Store, key string, options []Option[T], value T) bool {
	return st.kvs.Set(key, SerializeOption(options, value))
}
