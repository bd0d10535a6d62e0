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

import "fmt"

// initTable puts the map into hash mode with room for at least capacity
// entries. The map must not hold any entries.
func (m *Map[K, V]) initTable(capacity int) {
	size := prime(capacity)
	m.slots = m.allocator.AllocSlots(size)
	m.table = &table{
		buckets:  m.allocBuckets(size),
		freeList: -1,
	}
	m.count = 0
}

func (m *Map[K, V]) allocBuckets(n int) []int {
	buckets := m.allocator.AllocBuckets(n)
	for i := range buckets {
		buckets[i] = -1
	}
	return buckets
}

func (m *Map[K, V]) tableFind(key K) int {
	t := m.table
	h := hashCode(m.comparer.Hash(key))
	for i := t.buckets[h%len(t.buckets)]; i >= 0; i = m.slots[i].next {
		s := &m.slots[i]
		if s.hash == h && m.comparer.Equal(s.key, key) {
			return i
		}
	}
	return -1
}

func (m *Map[K, V]) tableInsert(key K, value V, failIfExists bool) error {
	t := m.table
	h := hashCode(m.comparer.Hash(key))
	for i := t.buckets[h%len(t.buckets)]; i >= 0; i = m.slots[i].next {
		s := &m.slots[i]
		if s.hash == h && m.comparer.Equal(s.key, key) {
			if failIfExists {
				return duplicateKeyError(key)
			}
			s.value = value
			m.version++
			return nil
		}
	}
	m.uncheckedPut(h, key, value)
	m.version++
	return nil
}

// uncheckedPut links an entry known not to be in the table onto the chain
// for h, taking a slot from the free list if one is available and growing
// the table if the slots are exhausted. Used by tableInsert after it has
// failed to find an existing entry to overwrite, and when replaying the list
// entries on a switch to hash mode.
func (m *Map[K, V]) uncheckedPut(h int, key K, value V) {
	t := m.table
	var i int
	if t.freeCount > 0 {
		i = t.freeList
		t.freeList = m.slots[i].next
		t.freeCount--
	} else {
		if m.count == len(m.slots) {
			m.grow()
		}
		i = m.count
		m.count++
	}

	b := h % len(t.buckets)
	m.slots[i] = Slot[K, V]{hash: h, next: t.buckets[b], key: key, value: value}
	t.buckets[b] = i

	if debug {
		fmt.Printf("put(inserting): index=%d bucket=%d count=%d free=%d\n",
			i, b, m.count, t.freeCount)
	}
}

func (m *Map[K, V]) tableRemove(key K) bool {
	t := m.table
	h := hashCode(m.comparer.Hash(key))
	b := h % len(t.buckets)
	prev := -1
	for i := t.buckets[b]; i >= 0; prev, i = i, m.slots[i].next {
		s := &m.slots[i]
		if s.hash != h || !m.comparer.Equal(s.key, key) {
			continue
		}
		if prev < 0 {
			t.buckets[b] = s.next
		} else {
			m.slots[prev].next = s.next
		}
		*s = Slot[K, V]{hash: -1, next: t.freeList}
		t.freeList = i
		t.freeCount++
		m.version++
		return true
	}
	return false
}

// switchToTable moves the map from list mode to hash mode. Only the live
// entries, slots[:count], are replayed; the list's backing array may be
// longer than count and its tail holds zero values that are not entries.
func (m *Map[K, V]) switchToTable() {
	old, n := m.slots, m.count
	m.initTable(m.threshold + 1)
	for i := 0; i < n; i++ {
		s := &old[i]
		m.uncheckedPut(hashCode(m.comparer.Hash(s.key)), s.key, s.value)
	}
	m.releaseSlots(old)

	if debug {
		fmt.Printf("switch: entries=%d capacity=%d\n", n, len(m.slots))
	}
}

// grow resizes the table to the smallest tabled prime >= 2*count. The slots
// are copied verbatim, preserving their stored hash codes, and the chains
// are relinked against the new bucket count. grow is only called when the
// free list is empty, so every slot in slots[:count] is live.
func (m *Map[K, V]) grow() {
	t := m.table
	newSize := prime(2 * m.count)
	oldSlots, oldBuckets := m.slots, t.buckets

	slots := m.allocator.AllocSlots(newSize)
	copy(slots, oldSlots[:m.count])
	buckets := m.allocBuckets(newSize)
	for i := 0; i < m.count; i++ {
		if slots[i].hash < 0 {
			continue
		}
		b := slots[i].hash % newSize
		slots[i].next = buckets[b]
		buckets[b] = i
	}

	m.slots = slots
	t.buckets = buckets
	m.releaseSlots(oldSlots)
	m.allocator.FreeBuckets(oldBuckets)

	if debug {
		fmt.Printf("grow: capacity=%d->%d count=%d\n", len(oldSlots), newSize, m.count)
	}
}
