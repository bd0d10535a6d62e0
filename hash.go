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

import (
	"hash/maphash"
	"reflect"
)

// A Comparer defines a hash function and an equivalence relation over keys
// of type K. Equal(a, b) must imply Hash(a) == Hash(b).
type Comparer[K any] interface {
	Hash(key K) uint64
	Equal(a, b K) bool
}

// DefaultComparer hashes keys with hash/maphash using a per-comparer random
// seed and compares them with ==. It is the comparer a Map uses unless
// WithComparer or WithHash is supplied. The zero value is not usable, use
// NewDefaultComparer.
type DefaultComparer[K comparable] struct {
	seed maphash.Seed
}

// NewDefaultComparer returns a DefaultComparer with a freshly generated seed.
func NewDefaultComparer[K comparable]() DefaultComparer[K] {
	return DefaultComparer[K]{seed: maphash.MakeSeed()}
}

func (c DefaultComparer[K]) Hash(key K) uint64 { return maphash.Comparable(c.seed, key) }
func (c DefaultComparer[K]) Equal(a, b K) bool { return a == b }

type hashFunc[K comparable] func(key K) uint64

func (f hashFunc[K]) Hash(key K) uint64 { return f(key) }
func (f hashFunc[K]) Equal(a, b K) bool { return a == b }

// hashCode reduces a 64-bit hash to the non-negative 31-bit value stored in
// Slot.hash. Negative values are reserved to mark free slots.
func hashCode(h uint64) int {
	return int(uint32(h^(h>>32)) & 0x7FFFFFFF)
}

// nilableKey reports whether the zero value of K is a nil reference, in which
// case the zero value is rejected as a key.
func nilableKey[K comparable]() bool {
	switch reflect.TypeFor[K]().Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return true
	}
	return false
}
