// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hybrid

// Iterator is a cursor over the entries of a Map. It is positioned before the
// first entry when created; each call to Next advances it to the following
// entry.
//
//	it := m.Iter()
//	for it.Next() {
//	  fmt.Printf("%v: %v\n", it.Key(), it.Value())
//	}
//	if err := it.Err(); err != nil {
//	  ...
//	}
//
// If the map is mutated after the Iterator is created, the next call to Next
// or Reset fails with ErrConcurrentModification and the Iterator remains
// failed.
type Iterator[K comparable, V any] struct {
	m       *Map[K, V]
	version uint64
	// index is the next slot to examine.
	index int
	// cur is the slot the iterator is positioned at, or -1.
	cur int
	err error
}

// Iter returns an Iterator over the entries of the map.
func (m *Map[K, V]) Iter() *Iterator[K, V] {
	it := &Iterator[K, V]{}
	it.init(m)
	return it
}

func (it *Iterator[K, V]) init(m *Map[K, V]) {
	*it = Iterator[K, V]{m: m, version: m.version, cur: -1}
}

// Next advances the iterator to the next entry, returning false when there
// are no more entries or the map has been modified. Err distinguishes the
// two cases.
func (it *Iterator[K, V]) Next() bool {
	if !it.valid() {
		return false
	}
	m := it.m
	for it.index < m.count {
		i := it.index
		it.index++
		if m.table != nil && m.slots[i].hash < 0 {
			continue
		}
		it.cur = i
		return true
	}
	it.cur = -1
	return false
}

// Key returns the key of the current entry. It panics if the last call to
// Next did not return true.
func (it *Iterator[K, V]) Key() K {
	return it.slot().key
}

// Value returns the value of the current entry. It panics if the last call to
// Next did not return true.
func (it *Iterator[K, V]) Value() V {
	return it.slot().value
}

// Err returns ErrConcurrentModification if iteration stopped because the map
// was modified, and nil otherwise.
func (it *Iterator[K, V]) Err() error {
	return it.err
}

// Reset positions the iterator before the first entry again. It returns
// ErrConcurrentModification, and leaves the iterator failed, if the map has
// been modified since the iterator was created.
func (it *Iterator[K, V]) Reset() error {
	if !it.valid() {
		return it.err
	}
	it.index = 0
	it.cur = -1
	return nil
}

func (it *Iterator[K, V]) valid() bool {
	if it.err != nil {
		return false
	}
	if it.version != it.m.version {
		it.err = ErrConcurrentModification
		it.cur = -1
		return false
	}
	return true
}

func (it *Iterator[K, V]) slot() *Slot[K, V] {
	if it.cur < 0 {
		panic("hybrid: iterator is not positioned at an entry")
	}
	return &it.m.slots[it.cur]
}

// All calls yield sequentially for each key and value present in the map. If
// yield returns false, All stops the iteration. All has the signature of an
// iter.Seq2 so the map can be ranged over directly:
//
//	for k, v := range m.All {
//	  fmt.Printf("%v: %v\n", k, v)
//	}
//
// The map must not be mutated during iteration: All panics with
// ErrConcurrentModification if it is.
func (m *Map[K, V]) All(yield func(key K, value V) bool) {
	var it Iterator[K, V]
	it.init(m)
	for it.Next() {
		if !yield(it.Key(), it.Value()) {
			return
		}
	}
	if err := it.Err(); err != nil {
		panic(err)
	}
}
