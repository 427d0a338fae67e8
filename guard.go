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
package threadcheck

import (
	log "github.com/sirupsen/logrus"
)

// Guard is an exclusive, scope-bound access token for a ThreadCheckedMutex.
// At most one live guard exists per mutex at any time. A guard must stay on
// the goroutine that acquired it and must not outlive its critical section;
// Unlock releases the mutex and invalidates the guard.
type Guard[T any] struct {
	mutex    *ThreadCheckedMutex[T]
	released bool
}

// Get returns a copy of the protected value.
func (g *Guard[T]) Get() T {
	return g.mutex.value
}

// Set replaces the protected value.
func (g *Guard[T]) Set(value T) {
	g.mutex.value = value
}

// Pointer returns a mutable view of the protected value. The pointer must not
// be retained past Unlock.
func (g *Guard[T]) Pointer() *T {
	return &g.mutex.value
}

// Poison marks the mutex as poisoned. The flag is sticky: it persists until
// ClearPoison and is reported to every later acquirer. Intended for holders
// that detect an abnormal exit from their critical section; WithLock does this
// automatically on panic.
func (g *Guard[T]) Poison() {
	if g.mutex.poisoned.CompareAndSwap(false, true) {
		log.Warnf("threadcheck: mutex %s is now poisoned", g.mutex.id)
	}
}

// Unlock releases the mutex. The owner record is cleared before the underlying
// mutex is released, so no waiter can ever observe a free mutex with a stale
// owner record. Calling Unlock on an already released guard is a no-op.
func (g *Guard[T]) Unlock() {
	if g.released {
		return
	}
	g.released = true
	g.mutex.owner.Store(0)
	g.mutex.mu.Unlock()
}

// scoped runs fn under this guard, poisoning the mutex if fn panics, and
// releases the guard on every exit path.
func (g *Guard[T]) scoped(fn func(value *T) error) error {
	completed := false
	defer func() {
		if !completed {
			g.Poison()
		}
		g.Unlock()
	}()

	err := fn(&g.mutex.value)
	completed = true
	return err
}
