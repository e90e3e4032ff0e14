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

package strategy

import (
	"reflect"

	"dirpx.dev/sdx/apis"
	"dirpx.dev/sdx/schema"
)

// NewProviderStrategy creates an apis.Strategy that uses apis.SchemaProvider.
func NewProviderStrategy() apis.Strategy {
	return &providerStrategy{}
}

// providerStrategy is a zero-reflection fast path: if the value (or a fresh
// instance of the type) implements apis.SchemaProvider, return its schema
// and stop the chain.
type providerStrategy struct{}

// Ensure providerStrategy implements apis.Strategy.
var _ apis.Strategy = (*providerStrategy)(nil)

// TryDerive checks if v implements apis.SchemaProvider and returns its schema.
func (*providerStrategy) TryDerive(v any, _ apis.Config) (*schema.Schema, bool, error) {
	if v == nil {
		return nil, false, nil
	}
	if p, ok := v.(apis.SchemaProvider); ok {
		return p.JSONSchema(), true, nil
	}
	return nil, false, nil
}

// TryDeriveType instantiates a zero value of t to consult SchemaProvider,
// covering both value and pointer receivers.
func (*providerStrategy) TryDeriveType(t reflect.Type, _ apis.Config) (*schema.Schema, bool, error) {
	if p, ok := ProviderFor(t); ok {
		return p.JSONSchema(), true, nil
	}
	return nil, false, nil
}

// providerIface is the reflect view of apis.SchemaProvider.
var providerIface = reflect.TypeOf((*apis.SchemaProvider)(nil)).Elem()

// ProviderFor returns a SchemaProvider instance for t, if the type (or its
// pointer) implements the interface. Interface types are never instantiated.
func ProviderFor(t reflect.Type) (apis.SchemaProvider, bool) {
	if t == nil || t.Kind() == reflect.Interface {
		return nil, false
	}
	if t.Implements(providerIface) {
		if t.Kind() == reflect.Pointer {
			return reflect.New(t.Elem()).Interface().(apis.SchemaProvider), true
		}
		return reflect.Zero(t).Interface().(apis.SchemaProvider), true
	}
	if t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(providerIface) {
		return reflect.New(t).Interface().(apis.SchemaProvider), true
	}
	return nil, false
}
