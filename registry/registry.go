/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/sdx/apis"
	"dirpx.dev/sdx/config"
	"dirpx.dev/sdx/schema"
	uref "dirpx.dev/sdx/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("sdx(registry): nil reflect.Type provided")
	// ErrNilSchema is returned when a nil schema is provided.
	ErrNilSchema = errors.New("sdx(registry): nil schema provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type with a different schema.
	ErrConflictingRegistration = errors.New("sdx(registry): conflicting type registration")
)

// New constructs a Registry that normalizes types according to cfg.
// Only MaxUnwrap and MapPreferElem are used here.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{cfg: cfg}
}

// registry is a simple Registry implementation backed by sync.Map for the
// read-heavy schema lookups, with a mutex-guarded side table for unions.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency, the counter and the union table.
	mu sync.Mutex
	// m maps reflect.Type to its registered schema.
	m sync.Map // map[reflect.Type]*schema.Schema
	// count tracks the number of registered schema entries.
	count int
	// unions maps interface reflect.Type to its union declaration.
	unions map[reflect.Type]*apis.Union
}

// Register associates the nearest named type of t with the given schema.
// It is idempotent for the same (type, schema) pair; pointer identity is
// what makes two registrations "the same", matching the expectation that
// schemas are constructed once and shared.
func (r *registry) Register(t reflect.Type, s *schema.Schema) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	if s == nil {
		return ErrNilSchema
	}

	// Normalize to the nearest named type according to r.cfg.
	b, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return err
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(b); ok {
		if old.(*schema.Schema) == s {
			return nil // idempotent re-registration
		}
		return ErrConflictingRegistration
	}

	// Write path: guard with a mutex to keep counter consistent and avoid ABA.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(b); ok {
		if old.(*schema.Schema) == s {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.m.Store(b, s)
	r.count++
	return nil
}

// Lookup returns the schema registered for a type, if present.
func (r *registry) Lookup(t reflect.Type) (*schema.Schema, bool) {
	if t == nil {
		return nil, false
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return nil, false
	}
	if v, ok := r.m.Load(nt); ok {
		return v.(*schema.Schema), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type:   key.(reflect.Type),
			Schema: value.(*schema.Schema),
		})
		return true
	})
	return entries
}

// Count returns the number of registered schema entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries and union declarations.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = sync.Map{}
	r.count = 0
	r.unions = nil
}
