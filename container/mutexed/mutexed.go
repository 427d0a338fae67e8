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
package mutexed

import (
	"sync"

	"github.com/threadcheck/threadcheck-go/container"
)

// / A Mutexed container guards its value with a plain sync.Mutex.
// /
// / WARNING:
// / Access is infallible but NOT reentrant: calling View or Update from
// / within a View or Update callback on the same container deadlocks, the
// / exact failure mode the checked strategy exists to classify. Use the
// / checked container when callbacks may re-enter.
type Mutexed[T any] struct {
	mu    sync.Mutex
	value T
}

// Compile time check that Mutexed implements container.Container
var _ container.Container[int] = (*Mutexed[int])(nil)

// Creates a new Mutexed container holding initial
func New[T any](initial T) *Mutexed[T] {
	m := new(Mutexed[T])
	m.value = initial
	return m
}

// Runs fn with read access, blocking until the mutex is available; never fails
func (m *Mutexed[T]) View(fn func(value T)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.value)
	return nil
}

// Runs fn with exclusive access, blocking until the mutex is available; never fails
func (m *Mutexed[T]) Update(fn func(value *T)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.value)
	return nil
}
