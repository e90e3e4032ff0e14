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

package deriver

import (
	"errors"
	"reflect"

	"dirpx.dev/sdx/apis"
	"dirpx.dev/sdx/schema"
)

// ErrNoDerivation is returned when no strategy in the chain produced a
// schema for the value or type.
var ErrNoDerivation = errors.New("sdx(deriver): no schema derivation available")

// New constructs an apis.Deriver that tries the given strategies in order.
// Nil strategies are ignored. The returned deriver is safe for concurrent use
// provided strategies themselves are safe for concurrent TryDerive calls.
func New(strategies ...apis.Strategy) apis.Deriver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// chain is an immutable, order-preserving deriver over a set of strategies.
type chain struct {
	strats []apis.Strategy
}

// Derive runs strategies in order until one handles the value.
func (r chain) Derive(v any, cfg apis.Config) (*schema.Schema, error) {
	for _, s := range r.strats {
		if sch, ok, err := s.TryDerive(v, cfg); ok {
			return sch, err
		}
	}
	return nil, ErrNoDerivation
}

// DeriveType runs strategies in order until one handles the type.
func (r chain) DeriveType(t reflect.Type, cfg apis.Config) (*schema.Schema, error) {
	for _, s := range r.strats {
		if sch, ok, err := s.TryDeriveType(t, cfg); ok {
			return sch, err
		}
	}
	return nil, ErrNoDerivation
}
