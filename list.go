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

func (m *Map[K, V]) listFind(key K) int {
	for i := 0; i < m.count; i++ {
		if m.comparer.Equal(m.slots[i].key, key) {
			return i
		}
	}
	return -1
}

func (m *Map[K, V]) listInsert(key K, value V, failIfExists bool) error {
	if i := m.listFind(key); i >= 0 {
		if failIfExists {
			return duplicateKeyError(key)
		}
		m.slots[i].value = value
		m.version++
		return nil
	}

	if m.count >= m.threshold {
		// The list is full. Switch to hash mode and retry the insert there.
		m.switchToTable()
		return m.tableInsert(key, value, failIfExists)
	}

	if m.slots == nil {
		m.slots = m.allocator.AllocSlots(m.threshold)
	}
	m.slots[m.count] = Slot[K, V]{next: -1, key: key, value: value}
	m.count++
	m.version++
	return nil
}

// listRemove removes key by copying the remaining entries, in order, into a
// freshly allocated threshold sized slots array.
func (m *Map[K, V]) listRemove(key K) bool {
	i := m.listFind(key)
	if i < 0 {
		return false
	}

	old := m.slots
	m.slots = m.allocator.AllocSlots(m.threshold)
	n := copy(m.slots, old[:i])
	copy(m.slots[n:], old[i+1:m.count])
	m.count--
	m.version++
	m.releaseSlots(old)

	if debug {
		fmt.Printf("list-remove: index=%d count=%d\n", i, m.count)
	}
	return true
}
