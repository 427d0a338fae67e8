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
	"encoding/json"
)

// MarshalJSON serializes the protected value, delegating to T's own JSON
// encoding. The owner record, poison flag and instance id are process-local
// and never serialized. The mutex is acquired non-blockingly for the duration
// of the encoding; if it is held, the acquisition error is returned. A
// poisoned mutex still marshals (inform, don't block applies to access, and
// the poison state is queryable separately).
func (m *ThreadCheckedMutex[T]) MarshalJSON() ([]byte, error) {
	guard, err := m.TryLock()
	if guard == nil {
		return nil, err
	}
	defer guard.Unlock()

	return json.Marshal(guard.Get())
}

// UnmarshalJSON decodes into the protected value, delegating to T's own JSON
// decoding. The mutex must not be held; the value is only replaced if decoding
// succeeds.
func (m *ThreadCheckedMutex[T]) UnmarshalJSON(data []byte) error {
	guard, err := m.TryLock()
	if guard == nil {
		return err
	}
	defer guard.Unlock()

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	guard.Set(value)
	return nil
}
