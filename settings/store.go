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

// package settings is the typed configuration layer every firmware
// module reads its options through. It sits on the packed key-value
// store and adds typed accessors, enumeration option matching, indexed
// keys, computed (virtual) settings and versioned migration.
package settings

import (
	"powernode/storage"
)

// Handler computes a virtual setting on demand. Check reports whether
// the handler owns a key; Get produces the value. Handlers are
// consulted in registration order, first match wins.
type Handler struct {
	Check func(key string) bool
	Get   func(key string) string
}

// Store is the typed settings store. It is owned by the composition
// root and passed to whichever module needs it; there is no ambient
// global instance.
type Store struct {
	kvs        *storage.KVS
	handlers   []Handler
	migrations []func(from int)
}

func New(kvs *storage.KVS) *Store {
	return &Store{kvs: kvs}
}

// Get returns the raw text stored under key.
func (st *Store) Get(key string) (string, bool) {
	return st.kvs.Get(key)
}

// Set stores raw text under key, reporting false when the store
// rejects the write (for instance out of space; see Available).
func (st *Store) Set(key, value string) bool {
	return st.kvs.Set(key, value)
}

func (st *Store) Del(key string) bool {
	return st.kvs.Del(key)
}

func (st *Store) Has(key string) bool {
	return st.kvs.Has(key)
}

func (st *Store) Keys() []string {
	return st.kvs.Keys()
}

func (st *Store) Foreach(fn func(key, value string)) {
	st.kvs.Foreach(fn)
}

func (st *Store) Available() int {
	return st.kvs.Available()
}

func (st *Store) Size() int {
	return st.kvs.Size()
}

func (st *Store) Count() int {
	return st.kvs.Count()
}

// RegisterQueryHandler appends a virtual-setting handler. Registration
// happens at setup; the order is part of the contract.
func (st *Store) RegisterQueryHandler(h Handler) {
	st.handlers = append(st.handlers, h)
}

// Query resolves a key for inspection: the physical value when one is
// stored, otherwise the first registered handler that claims the key.
func (st *Store) Query(key string) (string, bool) {
	if v, ok := st.kvs.Get(key); ok {
		return v, true
	}
	for _, h := range st.handlers {
		if h.Check(key) {
			return h.Get(key), true
		}
	}
	return "", false
}

// Get returns the typed value stored under key, or the default when
// the key is absent. A present but malformed value converts to the
// type's zero value rather than the default; absence and malformed
// text are distinct conditions.
func Get[T Scalar](st *Store, key string, def T) T {
	if raw, ok := st.kvs.Get(key); ok {
		return Convert[T](raw)
	}
	return def
}

// Set serializes and stores a typed value.
func Set[T Scalar](st *Store, key string, value T) bool {
	return st.kvs.Set(key, Serialize(value))
}
