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

// KeyView is a live view of the keys of a Map. Mutations through the view are
// applied to the map.
type KeyView[K comparable, V any] struct {
	m *Map[K, V]
}

// Keys returns a view of the keys of the map.
func (m *Map[K, V]) Keys() *KeyView[K, V] {
	return &KeyView[K, V]{m: m}
}

// Len returns the number of keys in the map.
func (v *KeyView[K, V]) Len() int { return v.m.Len() }

// Contains returns true if key is present in the map.
func (v *KeyView[K, V]) Contains(key K) bool { return v.m.Contains(key) }

// Add inserts key into the map with the zero value. See Map.Add.
func (v *KeyView[K, V]) Add(key K) error {
	var zero V
	return v.m.Add(key, zero)
}

// Remove deletes key from the map. See Map.Delete.
func (v *KeyView[K, V]) Remove(key K) (bool, error) { return v.m.Delete(key) }

// Iter returns an iterator over the keys of the map.
func (v *KeyView[K, V]) Iter() *KeyIterator[K, V] {
	it := &KeyIterator[K, V]{}
	it.it.init(v.m)
	return it
}

// All calls yield sequentially for each key in the map. It panics with
// ErrConcurrentModification if the map is mutated during iteration.
func (v *KeyView[K, V]) All(yield func(key K) bool) {
	v.m.All(func(k K, _ V) bool { return yield(k) })
}

// KeyIterator is an Iterator that only exposes keys.
type KeyIterator[K comparable, V any] struct {
	it Iterator[K, V]
}

func (it *KeyIterator[K, V]) Next() bool   { return it.it.Next() }
func (it *KeyIterator[K, V]) Key() K       { return it.it.Key() }
func (it *KeyIterator[K, V]) Err() error   { return it.it.Err() }
func (it *KeyIterator[K, V]) Reset() error { return it.it.Reset() }

// ValueView is a read-only view of the values of a Map. Values are not
// independently mutable, so Add and Remove always fail with ErrReadOnly.
type ValueView[K comparable, V any] struct {
	m *Map[K, V]
}

// Values returns a view of the values of the map.
func (m *Map[K, V]) Values() *ValueView[K, V] {
	return &ValueView[K, V]{m: m}
}

// Len returns the number of values in the map.
func (v *ValueView[K, V]) Len() int { return v.m.Len() }

// Contains returns true if any entry of the map holds value. See
// Map.ContainsValue.
func (v *ValueView[K, V]) Contains(value V) bool { return v.m.ContainsValue(value) }

// Add returns ErrReadOnly.
func (v *ValueView[K, V]) Add(V) error { return ErrReadOnly }

// Remove returns ErrReadOnly.
func (v *ValueView[K, V]) Remove(V) (bool, error) { return false, ErrReadOnly }

// Iter returns an iterator over the values of the map.
func (v *ValueView[K, V]) Iter() *ValueIterator[K, V] {
	it := &ValueIterator[K, V]{}
	it.it.init(v.m)
	return it
}

// All calls yield sequentially for each value in the map. It panics with
// ErrConcurrentModification if the map is mutated during iteration.
func (v *ValueView[K, V]) All(yield func(value V) bool) {
	v.m.All(func(_ K, val V) bool { return yield(val) })
}

// ValueIterator is an Iterator that only exposes values.
type ValueIterator[K comparable, V any] struct {
	it Iterator[K, V]
}

func (it *ValueIterator[K, V]) Next() bool   { return it.it.Next() }
func (it *ValueIterator[K, V]) Value() V     { return it.it.Value() }
func (it *ValueIterator[K, V]) Err() error   { return it.it.Err() }
func (it *ValueIterator[K, V]) Reset() error { return it.it.Reset() }
