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

// option provide an interface to do work on Map while it is being created.
type option[K comparable, V any] interface {
	apply(m *Map[K, V])
}

type comparerOption[K comparable, V any] struct {
	comparer Comparer[K]
}

func (op comparerOption[K, V]) apply(m *Map[K, V]) {
	m.comparer = op.comparer
}

// WithComparer is an option to specify the hash function and equality
// relation used for keys of a Map[K,V]. The comparer must satisfy
// Equal(a, b) => Hash(a) == Hash(b).
func WithComparer[K comparable, V any](comparer Comparer[K]) option[K, V] {
	return comparerOption[K, V]{comparer}
}

// WithHash is an option to specify only the hash function to use for a
// Map[K,V]. Keys continue to be compared with ==.
func WithHash[K comparable, V any](hash func(key K) uint64) option[K, V] {
	return comparerOption[K, V]{hashFunc[K](hash)}
}

type thresholdOption[K comparable, V any] struct {
	threshold int
}

func (op thresholdOption[K, V]) apply(m *Map[K, V]) {
	m.threshold = max(op.threshold, 0)
}

// WithListThreshold is an option to specify the maximum number of entries a
// Map[K,V] holds in list mode before switching to hash mode. A threshold of
// 0 places the map in hash mode from the start.
func WithListThreshold[K comparable, V any](threshold int) option[K, V] {
	return thresholdOption[K, V]{threshold}
}

type valueEqualOption[K comparable, V any] struct {
	equal func(a, b V) bool
}

func (op valueEqualOption[K, V]) apply(m *Map[K, V]) {
	m.valueEqual = op.equal
}

// WithValueEqual is an option to specify how ContainsValue compares values.
// By default values are compared as interfaces, which panics if the dynamic
// type of V is not comparable.
func WithValueEqual[K comparable, V any](equal func(a, b V) bool) option[K, V] {
	return valueEqualOption[K, V]{equal}
}

// Allocator specifies an interface for allocating and releasing memory used
// by a Map. The default allocator utilizes Go's builtin make() and allows the
// GC to reclaim memory.
//
// Every slots and buckets slice a Map stops using (on growth, on the switch
// to hash mode, when a list mode removal rebuilds the slots, and on Close) is
// handed back to FreeSlots or FreeBuckets.
type Allocator[K comparable, V any] interface {
	// AllocSlots should return a slice equivalent to make([]Slot[K,V], n).
	AllocSlots(n int) []Slot[K, V]

	// AllocBuckets should return a slice equivalent to make([]int, n).
	AllocBuckets(n int) []int

	// FreeSlots can optional release the memory associated with the supplied
	// slice that is guaranteed to have been allocated by AllocSlots.
	FreeSlots(v []Slot[K, V])

	// FreeBuckets can optional release the memory associated with the
	// supplied slice that is guaranteed to have been allocated by
	// AllocBuckets.
	FreeBuckets(v []int)
}

type defaultAllocator[K comparable, V any] struct{}

func (defaultAllocator[K, V]) AllocSlots(n int) []Slot[K, V] {
	return make([]Slot[K, V], n)
}

func (defaultAllocator[K, V]) AllocBuckets(n int) []int {
	return make([]int, n)
}

func (defaultAllocator[K, V]) FreeSlots(v []Slot[K, V]) {
}

func (defaultAllocator[K, V]) FreeBuckets(v []int) {
}

type allocatorOption[K comparable, V any] struct {
	allocator Allocator[K, V]
}

func (op allocatorOption[K, V]) apply(m *Map[K, V]) {
	m.allocator = op.allocator
}

// WithAllocator is an option for specify the Allocator to use for a Map[K,V].
func WithAllocator[K comparable, V any](allocator Allocator[K, V]) option[K, V] {
	return allocatorOption[K, V]{allocator}
}
