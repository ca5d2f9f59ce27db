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
	"strings"
)

// Key addresses either a plain setting or one instance of a per-channel
// family (base name plus numeric ordinal). Formatting and parsing are a
// bijection over non-negative ordinals, which is what makes family
// deletion precise.
type Key struct {
	Name  string
	Index int // -1 for a plain key
}

// Indexed builds a composite key.
func Indexed(name string, index int) Key {
	return Key{Name: name, Index: index}
}

// Plain builds a key with no ordinal.
func Plain(name string) Key {
	return Key{Name: name, Index: -1}
}

func (k Key) String() string {
	if k.Index < 0 {
		return k.Name
	}
	return k.Name + strconv.Itoa(k.Index)
}

// ParseKey splits a trailing decimal run back off a key. A key with no
// trailing digits parses as plain. The digit run must not have a
// leading zero unless it is exactly "0", so that formatting is the
// exact inverse.
func ParseKey(text string) Key {
	i := len(text)
	for i > 0 && text[i-1] >= '0' && text[i-1] <= '9' {
		i--
	}
	if i == len(text) || i == 0 {
		return Plain(text)
	}
	digits := text[i:]
	if len(digits) > 1 && digits[0] == '0' {
		return Plain(text)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return Plain(text)
	}
	return Key{Name: text[:i], Index: n}
}

// matchFamily reports whether key belongs to the family rooted at
// base: the exact key itself, or base followed by only decimal digits.
// Matching is ordinal-aware, not literal-prefix: "chan1" owns "chan1"
// and "chan10" but never "chan1x".
func matchFamily(base, key string) bool {
	if key == base {
		return true
	}
	if !strings.HasPrefix(key, base) {
		return false
	}
	rest := key[len(base):]
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return false
		}
	}
	return true
}

// DelPrefix removes every key in the families rooted at the given
// bases, returning how many were removed. Keys are collected before
// any deletion since the store has no iteration snapshot.
func (st *Store) DelPrefix(bases ...string) int {
	var doomed []string
	st.kvs.Foreach(func(key, value string) {
		for _, b := range bases {
			if matchFamily(b, key) {
				doomed = append(doomed, key)
				return
			}
		}
	})
	for _, key := range doomed {
		st.kvs.Del(key)
	}
	return len(doomed)
}

// Move renames a setting, preserving the value. Used by migrations.
func (st *Store) Move(from, to string) {
	if v, ok := st.kvs.Get(from); ok {
		st.kvs.Set(to, v)
		st.kvs.Del(from)
	}
}

// MoveIndexed renames one instance of a composite family.
func (st *Store) MoveIndexed(from, to string, index int) {
	st.Move(Indexed(from, index).String(), Indexed(to, index).String())
}
