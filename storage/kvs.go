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

package storage

import (
	"strings"
)

// KVS packs text key-value pairs into a ByteStore region.
//
// Pairs are stored from the high end of the region downward. Each blob
// is the content bytes followed by a 2-byte big-endian length, with the
// length's low byte at the blob's highest address; a key blob is
// immediately followed (below it) by its value blob. A zero length at a
// key position terminates the chain, so keys must be non-empty while
// values may be empty. The free space is the untouched region between
// address zero and the bottom of the chain.
//
// The store offers no iteration snapshot: mutating the store from
// inside a Foreach callback is not allowed.
type KVS struct {
	store ByteStore
}

func NewKVS(store ByteStore) *KVS {
	return &KVS{store: store}
}

type pair struct {
	key   string
	value string
}

// readBlob reads the blob whose highest address is top, returning the
// content and the top of the next blob below it.
func (k *KVS) readBlob(top int) (string, int, bool) {
	if top < 1 {
		return "", 0, false
	}
	length := int(k.store.Read(top-1))<<8 | int(k.store.Read(top))
	if top-1-length < 0 {
		return "", 0, false
	}
	var b strings.Builder
	for i := 0; i < length; i++ {
		b.WriteByte(k.store.Read(top - 1 - length + i))
	}
	return b.String(), top - 2 - length, true
}

// writeBlob writes a blob with its highest address at top, returning
// the top of the next blob position. Bytes that already hold the right
// value are skipped to save flash wear.
func (k *KVS) writeBlob(top int, content string) int {
	length := len(content)
	k.put(top, byte(length&0xff))
	k.put(top-1, byte(length>>8))
	for i := 0; i < length; i++ {
		k.put(top-1-length+i, content[i])
	}
	return top - 2 - length
}

func (k *KVS) put(pos int, value byte) {
	if pos >= 0 && k.store.Read(pos) != value {
		k.store.Write(pos, value)
	}
}

// load walks the chain, returning the stored pairs in storage order and
// the highest free address below the chain.
func (k *KVS) load() ([]pair, int) {
	var pairs []pair
	top := k.store.Size() - 1
	for {
		key, next, ok := k.readBlob(top)
		if !ok || len(key) == 0 {
			return pairs, top
		}
		value, vnext, ok := k.readBlob(next)
		if !ok {
			return pairs, top
		}
		pairs = append(pairs, pair{key, value})
		top = vnext
	}
}

// rewrite rebuilds the whole chain from the pair list and terminates it.
func (k *KVS) rewrite(pairs []pair) {
	top := k.store.Size() - 1
	for _, p := range pairs {
		top = k.writeBlob(top, p.key)
		top = k.writeBlob(top, p.value)
	}
	// Zero-length terminator, unless the region is exactly full.
	if top >= 1 {
		k.put(top, 0)
		k.put(top-1, 0)
	}
}

// Get returns the value stored under key.
func (k *KVS) Get(key string) (string, bool) {
	pairs, _ := k.load()
	for _, p := range pairs {
		if p.key == key {
			return p.value, true
		}
	}
	return "", false
}

func (k *KVS) Has(key string) bool {
	_, ok := k.Get(key)
	return ok
}

// Set stores a pair, overwriting any previous value. It returns false
// when the key is empty or the region cannot fit the pair. Storing the
// value already present performs no writes at all.
func (k *KVS) Set(key, value string) bool {
	if len(key) == 0 {
		return false
	}
	pairs, free := k.load()
	for i, p := range pairs {
		if p.key != key {
			continue
		}
		if p.value == value {
			return true
		}
		if len(value) > len(p.value) && len(value)-len(p.value) > free+1 {
			return false
		}
		pairs[i].value = value
		k.rewrite(pairs)
		k.store.Commit()
		return true
	}
	if len(key)+len(value)+4 > free+1 {
		return false
	}
	top := k.writeBlob(free, key)
	top = k.writeBlob(top, value)
	if top >= 1 {
		k.put(top, 0)
		k.put(top-1, 0)
	}
	k.store.Commit()
	return true
}

// Del removes a key, compacting the chain. Returns false when the key
// was not present.
func (k *KVS) Del(key string) bool {
	pairs, _ := k.load()
	for i, p := range pairs {
		if p.key == key {
			k.rewrite(append(pairs[:i], pairs[i+1:]...))
			k.store.Commit()
			return true
		}
	}
	return false
}

// Keys returns all keys in storage order.
func (k *KVS) Keys() []string {
	pairs, _ := k.load()
	keys := make([]string, 0, len(pairs))
	for _, p := range pairs {
		keys = append(keys, p.key)
	}
	return keys
}

// Foreach invokes the callback for every stored pair in storage order.
func (k *KVS) Foreach(fn func(key, value string)) {
	pairs, _ := k.load()
	for _, p := range pairs {
		fn(p.key, p.value)
	}
}

// ForeachPrefix invokes the callback for every pair whose key starts
// with the literal prefix.
func (k *KVS) ForeachPrefix(prefix string, fn func(key, value string)) {
	pairs, _ := k.load()
	for _, p := range pairs {
		if strings.HasPrefix(p.key, prefix) {
			fn(p.key, p.value)
		}
	}
}

// Count returns the number of stored pairs.
func (k *KVS) Count() int {
	pairs, _ := k.load()
	return len(pairs)
}

// Available returns the free bytes left in the region. A new pair
// needs its key and value lengths plus 4 bytes of framing.
func (k *KVS) Available() int {
	_, free := k.load()
	return free + 1
}

// Size returns the total capacity of the region.
func (k *KVS) Size() int {
	return k.store.Size()
}
