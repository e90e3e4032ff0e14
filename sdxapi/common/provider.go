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

package common

import (
	"dirpx.dev/sdx/apis"
	"dirpx.dev/sdx/schema"
)

// ProviderFunc adapts a plain function to the apis.SchemaProvider interface.
//
// # Overview
//
// ProviderFunc is a convenience adapter that allows standalone functions with
// signature `func() *schema.Schema` to satisfy apis.SchemaProvider. This is
// useful when the schema is naturally expressed as a function (for example,
// when it is assembled from the algebra's constructors at package init, or
// when you want to pass schema behavior as a dependency) rather than as a
// method on the described type itself.
//
// Using ProviderFunc does not change the semantics of SchemaProvider: the
// function is still expected to return a stable, type-level schema that does
// not depend on mutable instance state and remains identical across calls
// for the lifetime of the process.
//
// # Usage
//
//	func moneySchema() *schema.Schema {
//	    return schema.Object(
//	        schema.Field{Name: "amount", Schema: schema.Integer(), Required: true},
//	        schema.Field{Name: "currency", Schema: schema.String(), Required: true},
//	    )
//	}
//
//	var provider apis.SchemaProvider = common.ProviderFunc(moneySchema)
//	s := provider.JSONSchema()
//
// # Contract
//
//   - A ProviderFunc MUST return a non-nil, deterministic schema.
//   - The returned schema MUST be treated as shared and immutable by all
//     callers; derivation memoizes and re-serves it.
//   - ProviderFunc implementations MUST be safe to call from multiple
//     goroutines concurrently.
//   - ProviderFunc MUST NOT perform blocking operations or I/O; if the
//     schema is expensive to assemble, it SHOULD be precomputed once and
//     captured by the function.
type ProviderFunc func() *schema.Schema

// JSONSchema implements apis.SchemaProvider for ProviderFunc.
//
// Calling JSONSchema on a ProviderFunc is equivalent to invoking the
// underlying function value directly. All contractual requirements of
// apis.SchemaProvider apply to the wrapped function.
func (f ProviderFunc) JSONSchema() *schema.Schema {
	return f()
}

// Ensure ProviderFunc implements apis.SchemaProvider.
var _ apis.SchemaProvider = (ProviderFunc)(nil)

// TypeProvider provides generic, type-aware schema construction for values
// of type T.
//
// # Overview
//
// TypeProvider is a generic, type-parametric provider interface. It allows
// different schema policies to be expressed in terms of a Go type parameter
// `T`, while still producing schema values consumable by the sdx derivation
// subsystem, registries, or documentation generators.
//
// Unlike apis.SchemaProvider, which is typically implemented as a method on
// the described type itself, TypeProvider[T] separates:
//
//   - The *subject* being described (the type T), and
//   - The *policy* that decides how to build its schema.
//
// This is useful when:
//
//   - The same schema policy should be reused across multiple types.
//   - Schema construction needs to be configured or injected (for example,
//     per module, per API version, or per environment).
//   - You want to experiment with different schema conventions without
//     changing the described types.
//
// # Contract
//
//   - The returned schema MUST be deterministic for a given T.
//   - Implementations MUST be safe for concurrent calls from multiple
//     goroutines and SHOULD precompute reusable parts where feasible.
//   - Implementations MUST NOT perform blocking operations or I/O.
type TypeProvider[T any] interface {
	// SchemaOf returns the schema describing T's JSON representation.
	SchemaOf() *schema.Schema
}
