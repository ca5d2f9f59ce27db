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
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// backupMarker tags a document as a settings backup.
const backupMarker = 1

// escapePath escapes gjson path metacharacters in a key so that it
// addresses a literal object member.
func escapePath(key string) string {
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteByte(key[i])
	}
	return b.String()
}

// Backup renders the whole store as a flat JSON document. Composite
// keys appear as repeated entries distinguished by their ordinal
// suffix, same as they are stored.
func (st *Store) Backup(app, version string) string {
	doc, _ := sjson.Set("{}", "app", app)
	doc, _ = sjson.Set(doc, "version", version)
	doc, _ = sjson.Set(doc, "backup", backupMarker)
	doc, _ = sjson.Set(doc, "timestamp", time.Now().Unix())
	doc, _ = sjson.SetRaw(doc, "data", "{}")
	st.kvs.Foreach(func(key, value string) {
		doc, _ = sjson.Set(doc, "data."+escapePath(key), value)
	})
	return doc
}

// Restore writes settings back from a backup document. Only keys
// present in the document are touched; anything missing keeps falling
// back to accessor defaults, and unknown envelope fields are ignored.
// Returns the number of keys written.
func (st *Store) Restore(doc, app string) (int, error) {
	if !gjson.Valid(doc) {
		return 0, fmt.Errorf("restore: not a JSON document")
	}
	if got := gjson.Get(doc, "app").String(); got != app {
		return 0, fmt.Errorf("restore: document is for %q, not %q", got, app)
	}
	if gjson.Get(doc, "backup").Int() != backupMarker {
		return 0, fmt.Errorf("restore: not a backup document")
	}
	data := gjson.Get(doc, "data")
	if !data.IsObject() {
		return 0, fmt.Errorf("restore: missing data object")
	}
	written := 0
	var failed []string
	data.ForEach(func(key, value gjson.Result) bool {
		if st.kvs.Set(key.String(), value.String()) {
			written++
		} else {
			failed = append(failed, key.String())
		}
		return true
	})
	if len(failed) > 0 {
		return written, fmt.Errorf("restore: store rejected %d keys (first %q)", len(failed), failed[0])
	}
	return written, nil
}
