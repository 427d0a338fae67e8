// Copyright 2026 the threadcheck-go contributors
// Licensed under the Apache License, Version 2.0 (the “License”);
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an “AS IS” BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package rwlocked

import (
	"sync"

	"github.com/threadcheck/threadcheck-go/container"
)

// / An RWLocked container guards its value with a sync.RWMutex, allowing
// / concurrent readers while writers have exclusive access.
// /
// / WARNING:
// / Like the plain mutexed strategy, access is NOT reentrant: an Update from
// / within any callback on the same container deadlocks.
type RWLocked[T any] struct {
	mu    sync.RWMutex
	value T
}

// Compile time check that RWLocked implements container.Container
var _ container.Container[int] = (*RWLocked[int])(nil)

// Creates a new RWLocked container holding initial
func New[T any](initial T) *RWLocked[T] {
	r := new(RWLocked[T])
	r.value = initial
	return r
}

// Runs fn with shared read access; concurrent Views do not exclude each other
func (r *RWLocked[T]) View(fn func(value T)) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn(r.value)
	return nil
}

// Runs fn with exclusive access, blocking out readers and writers
func (r *RWLocked[T]) Update(fn func(value *T)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.value)
	return nil
}
