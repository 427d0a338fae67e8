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
package container_test

import (
	"testing"

	"github.com/threadcheck/threadcheck-go/container"
	"github.com/threadcheck/threadcheck-go/container/boxed"
	"github.com/threadcheck/threadcheck-go/container/checked"
	"github.com/threadcheck/threadcheck-go/container/mutexed"
	"github.com/threadcheck/threadcheck-go/container/rwlocked"
)

// increment is written against the capability interfaces only, so every
// storage strategy must be usable interchangeably behind it.
func increment(c container.Container[int], by int) error {
	return c.Update(func(value *int) { *value += by })
}

func TestStrategiesAreInterchangeable(t *testing.T) {
	strategies := map[string]container.Container[int]{
		"boxed":    boxed.New(40),
		"mutexed":  mutexed.New(40),
		"rwlocked": rwlocked.New(40),
		"checked":  checked.New(40),
	}

	for name, c := range strategies {
		if err := increment(c, 2); err != nil {
			t.Errorf("%s: err = %v; want nil", name, err)
		}

		var got int
		if err := c.View(func(value int) { got = value }); err != nil {
			t.Errorf("%s: err = %v; want nil", name, err)
		}
		if got != 42 {
			t.Errorf("%s: value = %d; want 42", name, got)
		}
	}
}
