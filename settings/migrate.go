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
	"log"
)

// versionKey holds the persisted configuration version. An absent key
// reads as version 0, the cold-boot sentinel.
const versionKey = "cfgVersion"

// MigrateVersion returns the persisted configuration version.
func (st *Store) MigrateVersion() int {
	return Get(st, versionKey, 0)
}

// OnMigrate registers an upgrade callback, invoked with the previously
// stored version when Migrate finds the store behind the target.
// Callbacks run in registration order and must be idempotent: when
// power is lost mid-migration the version is still the old one, so the
// whole set runs again on the next boot.
func (st *Store) OnMigrate(fn func(from int)) {
	st.migrations = append(st.migrations, fn)
}

// Migrate upgrades persisted configuration to the target version. The
// new version is written only after every callback has completed, so an
// interrupted migration retries in full. Already-current stores are a
// no-op.
func (st *Store) Migrate(target int) error {
	from := st.MigrateVersion()
	if from >= target {
		return nil
	}
	log.Printf("Migrating settings from version %d to %d", from, target)
	for _, fn := range st.migrations {
		fn(from)
	}
	if !Set(st, versionKey, target) {
		return fmt.Errorf("migrate: unable to persist version %d", target)
	}
	return nil
}
