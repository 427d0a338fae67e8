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

// Package container defines small orthogonal capability interfaces for code
// that is polymorphic over how a value is stored: in place, behind a plain
// mutex, behind a read-write lock, or behind a thread-checked mutex. Access is
// scoped through callbacks so no strategy can leak a reference to its value
// past the access. Strategies whose access cannot fail always return nil
// errors; fallible strategies surface their own error taxonomy.
package container

import (
	"errors"
)

var (
	// ErrAccessFailed is returned when a container cannot provide access to its value.
	ErrAccessFailed error = errors.New("the container could not provide access to its value")
)

// Reader provides scoped read access to a stored value.
type Reader[T any] interface {
	// View runs fn with read access to the stored value. fn must not retain
	// the value's memory past the call.
	View(fn func(value T)) error
}

// Writer provides scoped exclusive access to a stored value.
type Writer[T any] interface {
	// Update runs fn with exclusive access to the stored value. fn must not
	// retain the pointer past the call.
	Update(fn func(value *T)) error
}

// Container stores a value and provides both read and exclusive access to it.
type Container[T any] interface {
	Reader[T]
	Writer[T]
}
