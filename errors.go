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
	"errors"
	"fmt"
)

var (
	// ErrNilKey is returned when a nil pointer, channel or interface is used
	// as a key.
	ErrNilKey = errors.New("hybrid: nil key")
	// ErrDuplicateKey is returned by Add when the key is already present.
	ErrDuplicateKey = errors.New("hybrid: duplicate key")
	// ErrKeyNotFound is returned by At when the key is not present.
	ErrKeyNotFound = errors.New("hybrid: key not found")
	// ErrConcurrentModification is returned by an Iterator, and raised as a
	// panic by All, when the map is mutated during iteration.
	ErrConcurrentModification = errors.New("hybrid: map modified during iteration")
	// ErrReadOnly is returned when mutating a ValueView.
	ErrReadOnly = errors.New("hybrid: read-only view")
)

func duplicateKeyError[K any](key K) error {
	return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
}

func keyNotFoundError[K any](key K) error {
	return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
}
