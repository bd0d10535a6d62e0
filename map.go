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

// Package hybrid implements an adaptive map that stores a small number of
// entries as an unordered list and switches to a chained hash table once the
// list grows past a threshold.
//
// # Layout
//
// Both representations share a single slots array. Each Slot holds a key, a
// value, a 31-bit hash code and a next index. Indexes take the place of
// pointers everywhere: collision chains and the free list are threaded
// through Slot.next, and a chain or list ends at -1.
//
// In list mode only slots[:count] is meaningful. Entries are kept contiguous
// in insertion order and lookups compare keys one by one. Removing an entry
// rebuilds the array without it, so list mode never contains holes. For a
// handful of keys a linear scan is cheaper than hashing and it needs no
// bucket array at all.
//
// In hash mode a buckets array of prime length holds the index of the first
// slot of each chain. A key with hash code h lives on the chain rooted at
// buckets[h%len(buckets)]. Removing an entry unlinks it from its chain, marks
// it free by setting its hash code to -1, and pushes it onto a free list that
// later inserts pop before consuming fresh slots. When no free slot remains
// and the slots array is full, the table grows to the smallest tabled prime
// >= 2*count and the chains are rebuilt from the stored hash codes.
//
// The switch from list mode to hash mode happens when an insert finds the
// list full. The live entries are replayed into a fresh table and the insert
// is retried against it. The switch is one way: only Clear returns a map to
// list mode.
//
// # Iteration
//
// Every mutation, including overwriting the value of an existing key,
// increments a version counter. An Iterator captures the version when it is
// created and fails with ErrConcurrentModification if the map has been
// mutated since. Iteration order is slot order: insertion order in list mode,
// and insertion order perturbed by slot reuse in hash mode.
//
// A Map is NOT goroutine-safe.
package hybrid

import (
	"fmt"
	"iter"
	"strings"
)

const (
	debug = false

	// defaultListThreshold is the number of entries a Map keeps in list mode
	// before switching to hash mode.
	defaultListThreshold = 10
)

// Slot holds a key and value along with the bookkeeping used to chain it in
// hash mode.
type Slot[K comparable, V any] struct {
	// hash is the 31-bit hash code of key, or -1 if the slot is on the free
	// list. Only maintained in hash mode.
	hash int
	// next is the index of the next slot on the same chain or free list, or
	// -1.
	next  int
	key   K
	value V
}

// Mode identifies the representation a Map is currently using.
type Mode int8

const (
	// ModeList is the linear list representation used for small maps.
	ModeList Mode = iota
	// ModeHash is the chained hash table representation.
	ModeHash
)

func (m Mode) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeHash:
		return "hash"
	default:
		return fmt.Sprintf("Mode(%d)", int8(m))
	}
}

// table holds the state that only exists in hash mode. A Map is in hash mode
// iff its table is non-nil.
type table struct {
	// buckets[i] is the index of the first slot on chain i, or -1. The length
	// is always a value returned by prime and equals len(Map.slots).
	buckets []int
	// freeList is the index of the first free slot, or -1.
	freeList int
	// freeCount is the number of slots on the free list.
	freeCount int
}

// Map is an unordered map from keys to values with Put, Add, Get, Delete,
// and All operations. Small maps are stored as a list and large maps as a
// chained hash table, see the package documentation for details. By default
// keys are hashed with hash/maphash and compared with ==, though a different
// comparer can be specified using the WithComparer option.
//
// A Map is NOT goroutine-safe.
type Map[K comparable, V any] struct {
	comparer   Comparer[K]
	valueEqual func(a, b V) bool
	// The allocator to use for the slots and buckets slices.
	allocator Allocator[K, V]
	// threshold is the maximum number of entries held in list mode.
	threshold int
	// nilable is set if the zero value of K is a nil reference.
	nilable bool
	slots   []Slot[K, V]
	// count is the number of slots in use, including free slots in hash
	// mode. slots[count:] has never been written since the last allocation.
	count int
	// version is incremented on every mutation.
	version uint64
	table   *table
}

// New constructs a new Map with the specified initial capacity. If
// initialCapacity is larger than the list threshold the map starts out in
// hash mode, sized to hold initialCapacity entries without growing.
// Otherwise the map starts in list mode and allocates on the first insert.
// The zero value for a Map is not usable.
func New[K comparable, V any](initialCapacity int, options ...option[K, V]) *Map[K, V] {
	m := &Map[K, V]{}
	m.Init(initialCapacity, options...)
	return m
}

// NewFromSeq constructs a new Map holding the key/value pairs produced by
// seq, for example maps.All(src) or other.All. An error is returned if seq
// produces a nil key or the same key twice.
func NewFromSeq[K comparable, V any](
	seq iter.Seq2[K, V], options ...option[K, V],
) (*Map[K, V], error) {
	m := New[K, V](0, options...)
	for k, v := range seq {
		if err := m.Add(k, v); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Init initializes a Map with the specified initial capacity. Init can be
// invoked on a Map that is in use in order to reset it. Arrays owned by the
// previous incarnation are not returned to its allocator, call Close first
// if that is required.
func (m *Map[K, V]) Init(initialCapacity int, options ...option[K, V]) {
	*m = Map[K, V]{
		comparer:  NewDefaultComparer[K](),
		allocator: defaultAllocator[K, V]{},
		threshold: defaultListThreshold,
		nilable:   nilableKey[K](),
	}

	for _, op := range options {
		op.apply(m)
	}

	if initialCapacity > m.threshold {
		m.initTable(initialCapacity)
	}
	m.checkInvariants()
}

// Close closes the map, releasing any memory back to its configured
// allocator. It is unnecessary to close a map using the default allocator. It
// is invalid to use a Map after it has been closed, though Close itself is
// idempotent.
func (m *Map[K, V]) Close() {
	if m.allocator != nil {
		m.releaseSlots(m.slots)
		if m.table != nil {
			m.allocator.FreeBuckets(m.table.buckets)
		}
	}
	m.slots = nil
	m.table = nil
	m.count = 0
	m.allocator = nil
}

// Put inserts an entry into the map, overwriting an existing value if an
// entry with the same key already exists. ErrNilKey is returned for a nil
// key.
func (m *Map[K, V]) Put(key K, value V) error {
	return m.insert(key, value, false)
}

// Add inserts an entry into the map. ErrDuplicateKey is returned if an entry
// with the same key already exists, and ErrNilKey for a nil key. The map is
// unchanged if an error is returned.
func (m *Map[K, V]) Add(key K, value V) error {
	return m.insert(key, value, true)
}

// Get retrieves the value from the map for the specified key, return ok=false
// if the key is not present. A nil key is never present.
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	if m.isNil(key) {
		return value, false
	}
	if i := m.find(key); i >= 0 {
		return m.slots[i].value, true
	}
	return value, false
}

// At retrieves the value from the map for the specified key, returning an
// error wrapping ErrKeyNotFound if the key is not present.
func (m *Map[K, V]) At(key K) (V, error) {
	if m.isNil(key) {
		var zero V
		return zero, ErrNilKey
	}
	if i := m.find(key); i >= 0 {
		return m.slots[i].value, nil
	}
	var zero V
	return zero, keyNotFoundError(key)
}

// Contains returns true if the map holds an entry for key.
func (m *Map[K, V]) Contains(key K) bool {
	return !m.isNil(key) && m.find(key) >= 0
}

// ContainsValue returns true if any entry of the map holds value. This is a
// linear scan of the map. Values are compared with the function supplied by
// WithValueEqual, or as interfaces by default.
func (m *Map[K, V]) ContainsValue(value V) bool {
	equal := m.valueEqual
	if equal == nil {
		equal = func(a, b V) bool { return any(a) == any(b) }
	}
	for i := 0; i < m.count; i++ {
		s := &m.slots[i]
		if m.table != nil && s.hash < 0 {
			continue
		}
		if equal(s.value, value) {
			return true
		}
	}
	return false
}

// Delete deletes the entry corresponding to the specified key from the map,
// returning true if an entry was removed. It is a noop to delete a
// non-existent key. ErrNilKey is returned for a nil key.
func (m *Map[K, V]) Delete(key K) (bool, error) {
	if m.isNil(key) {
		return false, ErrNilKey
	}
	var removed bool
	if m.table == nil {
		removed = m.listRemove(key)
	} else {
		removed = m.tableRemove(key)
	}
	if debug {
		fmt.Printf("delete(%v): removed=%t mode=%s len=%d\n", key, removed, m.Mode(), m.Len())
	}
	m.checkInvariants()
	return removed, nil
}

// Clear deletes all entries from the map and returns it to list mode. The
// slots array is retained (and zeroed) so a map that is refilled does not
// need to allocate again; the hash mode buckets are released.
func (m *Map[K, V]) Clear() {
	clear(m.slots[:m.count])
	if m.table != nil {
		m.allocator.FreeBuckets(m.table.buckets)
		m.table = nil
	}
	m.count = 0
	m.version++
	m.checkInvariants()
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int {
	if m.table != nil {
		return m.count - m.table.freeCount
	}
	return m.count
}

// Mode returns the representation the map is currently using.
func (m *Map[K, V]) Mode() Mode {
	if m.table != nil {
		return ModeHash
	}
	return ModeList
}

// capacity returns the number of entries the map can hold before it next
// switches mode or grows.
func (m *Map[K, V]) capacity() int {
	if m.table != nil {
		return len(m.slots)
	}
	return m.threshold
}

func (m *Map[K, V]) isNil(key K) bool {
	var zero K
	return m.nilable && key == zero
}

// insert is the shared body of Put and Add.
func (m *Map[K, V]) insert(key K, value V, failIfExists bool) error {
	if m.isNil(key) {
		return ErrNilKey
	}
	var err error
	if m.table == nil {
		err = m.listInsert(key, value, failIfExists)
	} else {
		err = m.tableInsert(key, value, failIfExists)
	}
	if debug {
		fmt.Printf("insert(%v): err=%v mode=%s len=%d\n", key, err, m.Mode(), m.Len())
	}
	m.checkInvariants()
	return err
}

// find returns the index of the slot holding key, or -1.
func (m *Map[K, V]) find(key K) int {
	if m.table == nil {
		return m.listFind(key)
	}
	return m.tableFind(key)
}

func (m *Map[K, V]) releaseSlots(slots []Slot[K, V]) {
	if slots != nil {
		m.allocator.FreeSlots(slots)
	}
}

func (m *Map[K, V]) checkInvariants() {
	if invariants {
		m.verify()
	}
}

// verify panics if the internal structure of the map is inconsistent.
func (m *Map[K, V]) verify() {
	if m.count < 0 || m.count > len(m.slots) {
		panic(fmt.Sprintf("invariant failed: count=%d outside slots[%d]\n%s",
			m.count, len(m.slots), m.debugString()))
	}

	if m.table == nil {
		if m.count > m.threshold {
			panic(fmt.Sprintf("invariant failed: list mode count=%d exceeds threshold=%d\n%s",
				m.count, m.threshold, m.debugString()))
		}
		for i := 0; i < m.count; i++ {
			if j := m.listFind(m.slots[i].key); j != i {
				panic(fmt.Sprintf("invariant failed: slot(%d): %v found at %d\n%s",
					i, m.slots[i].key, j, m.debugString()))
			}
		}
		return
	}

	t := m.table
	if len(t.buckets) != len(m.slots) {
		panic(fmt.Sprintf("invariant failed: %d buckets != %d slots\n%s",
			len(t.buckets), len(m.slots), m.debugString()))
	}

	var used int
	for i := 0; i < m.count; i++ {
		s := &m.slots[i]
		if s.hash < 0 {
			continue
		}
		used++
		if h := hashCode(m.comparer.Hash(s.key)); h != s.hash {
			panic(fmt.Sprintf("invariant failed: slot(%d): %v stored hash %d != %d\n%s",
				i, s.key, s.hash, h, m.debugString()))
		}
		if j := m.tableFind(s.key); j != i {
			panic(fmt.Sprintf("invariant failed: slot(%d): %v found at %d\n%s",
				i, s.key, j, m.debugString()))
		}
	}

	var free int
	for i := t.freeList; i >= 0; i = m.slots[i].next {
		if m.slots[i].hash >= 0 {
			panic(fmt.Sprintf("invariant failed: free slot(%d) is live\n%s", i, m.debugString()))
		}
		free++
		if free > m.count {
			panic(fmt.Sprintf("invariant failed: free list cycle\n%s", m.debugString()))
		}
	}
	if free != t.freeCount {
		panic(fmt.Sprintf("invariant failed: found %d free slots, but free count is %d\n%s",
			free, t.freeCount, m.debugString()))
	}
	if used != m.Len() {
		panic(fmt.Sprintf("invariant failed: found %d used slots, but len is %d\n%s",
			used, m.Len(), m.debugString()))
	}
}

func (m *Map[K, V]) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "mode=%s  count=%d  len=%d  capacity=%d  version=%d\n",
		m.Mode(), m.count, m.Len(), m.capacity(), m.version)
	if t := m.table; t != nil {
		fmt.Fprintf(&buf, "free-list=%d  free-count=%d\n", t.freeList, t.freeCount)
		for b, i := range t.buckets {
			if i >= 0 {
				fmt.Fprintf(&buf, "  bucket %4d: %d\n", b, i)
			}
		}
	}
	for i := 0; i < m.count; i++ {
		s := &m.slots[i]
		if m.table != nil && s.hash < 0 {
			fmt.Fprintf(&buf, "  %4d: free [next=%d]\n", i, s.next)
			continue
		}
		fmt.Fprintf(&buf, "  %4d: %v [hash=%08x next=%d]\n", i, s.key, s.hash, s.next)
	}
	return buf.String()
}
