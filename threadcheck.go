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

// Package threadcheck provides a mutex that reports a recoverable error when the
// goroutine holding it attempts to acquire it again, instead of deadlocking the
// way sync.Mutex does.
package threadcheck

import (
	"errors"
)

var (
	// ErrLockedByCurrentThread is returned when the calling goroutine already holds the mutex.
	// The caller should not re-enter; the original guard remains valid.
	ErrLockedByCurrentThread error = errors.New("the mutex is already held by the calling goroutine")
	// ErrWouldBlock is returned by a non-blocking acquisition when a different goroutine holds the mutex.
	ErrWouldBlock error = errors.New("the mutex is held by a different goroutine")
	// ErrPoisoned is returned alongside a usable guard when a prior holder's critical
	// section ended in a panic while the mutex was held. The protected value may be in
	// an inconsistent state; the caller decides whether that is fatal.
	ErrPoisoned error = errors.New("the mutex was poisoned by a prior holder")
)
