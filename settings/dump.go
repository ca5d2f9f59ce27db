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
	"fmt"
	"io"
)

// Dump writes every stored pair as "key = value" lines for inspection.
func (st *Store) Dump(w io.Writer) {
	st.kvs.Foreach(func(key, value string) {
		fmt.Fprintf(w, "%s = %s\n", key, value)
	})
}

// DumpPrefix writes the pairs of one composite-key family, using the
// same ordinal-aware match as DelPrefix.
func (st *Store) DumpPrefix(w io.Writer, base string) {
	st.kvs.Foreach(func(key, value string) {
		if matchFamily(base, key) {
			fmt.Fprintf(w, "%s = %s\n", key, value)
		}
	})
}
