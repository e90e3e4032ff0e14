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

package apis

import (
	"reflect"

	"dirpx.dev/sdx/schema"
)

// Registry provides a reflection-free lookup of explicit schema instances
// for known types, plus the declaration surface for tagged unions.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Registry interface {
	// Register associates a (nearest named) reflect.Type with a fixed schema.
	// Implementations should be idempotent for the same (type, schema) pair;
	// conflicting re-registrations return an error.
	Register(t reflect.Type, s *schema.Schema) error
	// Lookup returns the schema registered for a type, if present.
	Lookup(t reflect.Type) (s *schema.Schema, ok bool)

	// RegisterUnion declares an interface type as a tagged union with the
	// given discriminator property.
	RegisterUnion(iface reflect.Type, discriminator string) error
	// RegisterVariant attaches a variant type to a declared union under the
	// given discriminator tag value.
	RegisterVariant(iface reflect.Type, tag string, variant reflect.Type) error
	// LookupUnion returns the union declaration for an interface type.
	LookupUnion(iface reflect.Type) (u Union, ok bool)
	// Unions returns a snapshot of all union declarations (order unspecified).
	Unions() []Union

	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered schema entries.
	Count() int
	// Reset clears all registered entries and union declarations.
	Reset()
}

// Entry is a single (type, schema) association in a Registry snapshot.
type Entry struct {
	// Type is the registered reflect.Type.
	Type reflect.Type
	// Schema is the associated schema.
	Schema *schema.Schema
}

// Union is the declaration of a tagged union: an interface type, the
// discriminator property name, and the registered variants.
type Union struct {
	// Type is the interface type the union is declared for.
	Type reflect.Type
	// Discriminator is the JSON property selecting the variant.
	Discriminator string
	// Variants are the registered alternatives, in registration order.
	Variants []Variant
}

// Variant is a single (tag, type) alternative of a Union.
type Variant struct {
	// Tag is the discriminator value selecting this variant.
	Tag string
	// Type is the variant's struct type.
	Type reflect.Type
}
