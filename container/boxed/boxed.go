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
package boxed

import (
	"github.com/threadcheck/threadcheck-go/container"
)

// / A Boxed container stores its value in place with no synchronization.
// /
// / WARNING:
// / It provides NO concurrency support.
// / It must be used from a single goroutine only.
// / It is intended for single-owner state and for testing code written
// / against the container interfaces without paying for locking.
type Boxed[T any] struct {
	value T
}

// Compile time check that Boxed implements container.Container
var _ container.Container[int] = (*Boxed[int])(nil)

// Creates a new Boxed container holding initial
func New[T any](initial T) *Boxed[T] {
	b := new(Boxed[T])
	b.value = initial
	return b
}

// Runs fn with read access; never fails
func (b *Boxed[T]) View(fn func(value T)) error {
	fn(b.value)
	return nil
}

// Runs fn with exclusive access; never fails
func (b *Boxed[T]) Update(fn func(value *T)) error {
	fn(&b.value)
	return nil
}
