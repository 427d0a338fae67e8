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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type account struct {
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

func TestMarshalDelegatesToValue(t *testing.T) {
	m := New(account{Name: "shared", Balance: 42})

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("err = %v; want nil", err)
	}

	// Only the protected value appears on the wire; owner and poison state do not.
	want := `{"name":"shared","balance":42}`
	if string(data) != want {
		t.Errorf("data = %s; want %s", data, want)
	}
}

func TestUnmarshalRoundTrip(t *testing.T) {
	original := New(account{Name: "shared", Balance: 42})

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("err = %v; want nil", err)
	}

	restored := New(account{})
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("err = %v; want nil", err)
	}

	guard, err := restored.Lock()
	if err != nil {
		t.Fatalf("err = %v; want nil", err)
	}
	defer guard.Unlock()
	if diff := cmp.Diff(account{Name: "shared", Balance: 42}, guard.Get()); diff != "" {
		t.Errorf("restored value mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalWhileHeldFails(t *testing.T) {
	m := New(account{Name: "shared"})

	guard, err := m.Lock()
	if err != nil {
		t.Fatalf("err = %v; want nil", err)
	}
	defer guard.Unlock()

	if _, err := json.Marshal(m); !errors.Is(err, ErrLockedByCurrentThread) {
		t.Errorf("err = %v; want %v", err, ErrLockedByCurrentThread)
	}
}

func TestMarshalPoisonedStillSucceeds(t *testing.T) {
	m := New(account{Name: "shared", Balance: 1})

	guard, err := m.Lock()
	if err != nil {
		t.Fatalf("err = %v; want nil", err)
	}
	guard.Poison()
	guard.Unlock()

	data, err := json.Marshal(m)
	if err != nil {
		t.Errorf("err = %v; want nil (poison informs, it does not block access)", err)
	}
	want := `{"name":"shared","balance":1}`
	if string(data) != want {
		t.Errorf("data = %s; want %s", data, want)
	}
}

func TestUnmarshalInvalidPayloadLeavesValue(t *testing.T) {
	m := New(account{Name: "shared", Balance: 7})

	if err := json.Unmarshal([]byte(`{"balance":"not a number"}`), m); err == nil {
		t.Fatal("err = nil; want a decode error")
	}

	guard, err := m.Lock()
	if err != nil {
		t.Fatalf("err = %v; want nil", err)
	}
	defer guard.Unlock()
	if got := guard.Get(); got.Balance != 7 {
		t.Errorf("balance = %d; want 7 (failed decode must not replace the value)", got.Balance)
	}
}
