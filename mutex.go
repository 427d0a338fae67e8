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
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/petermattis/goid"
	log "github.com/sirupsen/logrus"
)

// ThreadCheckedMutex wraps a value of type T and guards access to it with a
// mutex that classifies reentrant acquisition attempts instead of blocking on
// them. A plain sync.Mutex cannot distinguish "locked by me" from "locked by
// someone else", so a second Lock on the holding goroutine deadlocks;
// ThreadCheckedMutex returns ErrLockedByCurrentThread in that case and keeps
// the original guard valid.
//
// The owner record is written only after the underlying mutex is acquired and
// cleared only before it is released, always by the holding goroutine. Reading
// it without the mutex is therefore safe for classification: a goroutine can
// never observe its own id in the record unless it genuinely holds the mutex.
//
// The zero value is a valid unlocked mutex around the zero value of T.
type ThreadCheckedMutex[T any] struct {
	// id is used in log and error context only; correctness never depends on it.
	id       uuid.UUID
	mu       sync.Mutex
	owner    atomic.Int64
	poisoned atomic.Bool
	value    T
}

// New creates an unlocked, unpoisoned mutex wrapping initial.
func New[T any](initial T) *ThreadCheckedMutex[T] {
	m := new(ThreadCheckedMutex[T])
	m.id = uuid.New()
	m.value = initial
	return m
}

// Lock acquires the mutex, blocking the calling goroutine while a different
// goroutine holds it.
//
// If the calling goroutine already holds the mutex, Lock returns
// ErrLockedByCurrentThread immediately and never touches the underlying mutex.
// If a prior holder poisoned the mutex, Lock still acquires it and returns a
// usable guard together with ErrPoisoned.
//
// Waiters are woken in whatever order the runtime's mutex provides; no
// fairness is layered on top. A wait cannot be cancelled or timed out; use
// TryLock when that matters.
func (m *ThreadCheckedMutex[T]) Lock() (*Guard[T], error) {
	gid := goid.Get()
	if m.owner.Load() == gid {
		log.Debugf("threadcheck: mutex %s: rejected reentrant lock attempt by goroutine %d", m.id, gid)
		return nil, ErrLockedByCurrentThread
	}

	m.mu.Lock()
	m.owner.Store(gid)

	guard := &Guard[T]{mutex: m}
	if m.poisoned.Load() {
		return guard, ErrPoisoned
	}
	return guard, nil
}

// TryLock acquires the mutex without blocking.
//
// The outcome classification matches Lock, with one addition: if a different
// goroutine holds the mutex, TryLock returns ErrWouldBlock instead of waiting.
func (m *ThreadCheckedMutex[T]) TryLock() (*Guard[T], error) {
	gid := goid.Get()
	if m.owner.Load() == gid {
		log.Debugf("threadcheck: mutex %s: rejected reentrant try-lock attempt by goroutine %d", m.id, gid)
		return nil, ErrLockedByCurrentThread
	}

	if !m.mu.TryLock() {
		return nil, ErrWouldBlock
	}
	m.owner.Store(gid)

	guard := &Guard[T]{mutex: m}
	if m.poisoned.Load() {
		return guard, ErrPoisoned
	}
	return guard, nil
}

// WithLock acquires the mutex, runs fn with exclusive access to the protected
// value, and releases on every exit path. If fn panics while holding the mutex,
// the mutex is poisoned before it is released and the panic resumes.
//
// The returned error joins ErrPoisoned (when a prior holder poisoned the
// mutex; fn still runs) with fn's own error.
func (m *ThreadCheckedMutex[T]) WithLock(fn func(value *T) error) error {
	guard, err := m.Lock()
	if guard == nil {
		return err
	}
	return errors.Join(err, guard.scoped(fn))
}

// TryWithLock is WithLock without blocking: it returns ErrWouldBlock when a
// different goroutine holds the mutex.
func (m *ThreadCheckedMutex[T]) TryWithLock(fn func(value *T) error) error {
	guard, err := m.TryLock()
	if guard == nil {
		return err
	}
	return errors.Join(err, guard.scoped(fn))
}

// LockedByCurrentThread reports whether the calling goroutine holds the mutex.
func (m *ThreadCheckedMutex[T]) LockedByCurrentThread() bool {
	return m.owner.Load() == goid.Get()
}

// IsPoisoned reports whether the mutex is poisoned. Another goroutine may
// poison the mutex or clear its poison at any time, so do not rely on the
// result for correctness; acquire and inspect the returned error instead.
func (m *ThreadCheckedMutex[T]) IsPoisoned() bool {
	return m.poisoned.Load()
}

// ClearPoison removes the poison flag, restoring normal acquisition results.
// Callers should only do this after re-establishing the protected value's
// invariants.
func (m *ThreadCheckedMutex[T]) ClearPoison() {
	if m.poisoned.CompareAndSwap(true, false) {
		log.Debugf("threadcheck: mutex %s: poison cleared", m.id)
	}
}

func (m *ThreadCheckedMutex[T]) String() string {
	owner := m.owner.Load()
	state := "unlocked"
	if owner != 0 {
		state = fmt.Sprintf("held by goroutine %d", owner)
	}
	if m.poisoned.Load() {
		state += ", poisoned"
	}
	return fmt.Sprintf("ThreadCheckedMutex[%s: %s]", m.id, state)
}
