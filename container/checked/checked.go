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
package checked

import (
	"errors"

	threadcheck "github.com/threadcheck/threadcheck-go"
	"github.com/threadcheck/threadcheck-go/container"
)

// / A Checked container guards its value with a ThreadCheckedMutex. It is the
// / fallible strategy: a callback that re-enters the same container receives
// / container.ErrAccessFailed wrapping threadcheck.ErrLockedByCurrentThread
// / instead of deadlocking, and a poisoned value is surfaced as
// / threadcheck.ErrPoisoned while access is still granted.
type Checked[T any] struct {
	mutex *threadcheck.ThreadCheckedMutex[T]
}

// Compile time check that Checked implements container.Container
var _ container.Container[int] = (*Checked[int])(nil)

// Creates a new Checked container holding initial
func New[T any](initial T) *Checked[T] {
	c := new(Checked[T])
	c.mutex = threadcheck.New(initial)
	return c
}

// Creates a Checked container around an existing mutex, sharing its state
func Wrap[T any](mutex *threadcheck.ThreadCheckedMutex[T]) *Checked[T] {
	c := new(Checked[T])
	c.mutex = mutex
	return c
}

// Mutex returns the underlying thread-checked mutex, for callers that need the
// guard API or the poison controls directly.
func (c *Checked[T]) Mutex() *threadcheck.ThreadCheckedMutex[T] {
	return c.mutex
}

// View runs fn with read access, blocking while a different goroutine holds
// the mutex. A reentrant call fails instead of deadlocking.
func (c *Checked[T]) View(fn func(value T)) error {
	return c.access(c.mutex.Lock, func(value *T) { fn(*value) })
}

// Update runs fn with exclusive access, blocking while a different goroutine
// holds the mutex. A reentrant call fails instead of deadlocking.
func (c *Checked[T]) Update(fn func(value *T)) error {
	return c.access(c.mutex.Lock, fn)
}

// TryView is View without blocking: it fails with an error wrapping
// threadcheck.ErrWouldBlock when a different goroutine holds the mutex.
func (c *Checked[T]) TryView(fn func(value T)) error {
	return c.access(c.mutex.TryLock, func(value *T) { fn(*value) })
}

// TryUpdate is Update without blocking: it fails with an error wrapping
// threadcheck.ErrWouldBlock when a different goroutine holds the mutex.
func (c *Checked[T]) TryUpdate(fn func(value *T)) error {
	return c.access(c.mutex.TryLock, fn)
}

// access acquires through acquire and runs fn under the resulting guard.
// When no guard is obtained, the acquisition error is wrapped in
// container.ErrAccessFailed. When a guard is obtained on a poisoned mutex,
// fn still runs and threadcheck.ErrPoisoned is returned so the caller can
// judge severity. A panicking fn poisons the mutex before release.
func (c *Checked[T]) access(
	acquire func() (*threadcheck.Guard[T], error),
	fn func(value *T),
) error {
	guard, err := acquire()
	if guard == nil {
		return errors.Join(container.ErrAccessFailed, err)
	}

	completed := false
	defer func() {
		if !completed {
			guard.Poison()
		}
		guard.Unlock()
	}()

	fn(guard.Pointer())
	completed = true
	return err
}
