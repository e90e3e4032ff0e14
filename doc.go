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

// Package sdx provides a global, process-wide schema derivation service.
//
// sdx is responsible for turning "some Go value or type" into a schema value
// describing its JSON representation, without hand-writing field-by-field
// schema code. The schema values come from the sibling schema package (the
// schema algebra: keyed objects, fields, discriminated unions) and can be
// serialized, fingerprinted, and compiled against a JSON Schema validator.
//
// # Design
//
// The core of sdx is a read-mostly global snapshot (state). The snapshot
// holds four things:
//
//   - Config: rules that control how types are derived and named (struct
//     tags consulted, recursion and unwrapping depth, fully-qualified vs
//     short schema names, memoization policy, hidden fields, etc.).
//
//   - Registry: a process-wide mapping from Go types to explicit,
//     hand-constructed schemas, plus the declarations of tagged unions
//     (interface type, discriminator property, variants). This is how you
//     force exact schemas for important domain entities and how union
//     membership is declared, since Go interfaces do not enumerate their
//     implementations. The registry can be written to at runtime (Register,
//     RegisterUnion, RegisterVariant).
//
//   - Deriver: a read-only object that answers "what is the schema of this
//     value or type?". The deriver typically tries multiple strategies,
//     in priority order:
//     1. If the value implements apis.SchemaProvider, use v.JSONSchema().
//     2. If the type is found in the Registry, use that schema.
//     3. Otherwise, fall back to a reflect-based strategy that walks the
//     type's declared shape and constructs the equivalent schema value:
//     structs become keyed-object schemas (one property per exported
//     field, honoring the field tag), registered interfaces become
//     discriminated unions, and named types land in $defs under the
//     name computed by the naming policy (the fully qualified type
//     name with separators normalized to dots and trailing markers
//     stripped).
//     Deriver is expected to be concurrency-safe for reads.
//
//   - Builder: a pluggable factory that knows how to construct Registry
//     and Deriver instances for a given Config (and optional extension
//     data). The Builder is also allowed to reuse/migrate state from
//     previous Registry/Deriver instances.
//
// All of these live inside a single immutable struct called state.
// The package holds an atomic pointer to the current state. Readers load
// that pointer, use it, and never mutate it. Writers build a brand-new
// state and atomically swap it in.
//
// This means sdx derivations are lock-free on the hot path:
//
//	sch, err := sdx.Derive(obj)
//	sch, err := sdx.DeriveType(reflect.TypeOf(obj))
//
// and concurrent callers always see a consistent snapshot. Since derivation
// is a pure function of (type, config), results are additionally memoized
// inside the reflect strategy, so the reflection cost is paid once per type,
// typically at process start.
//
// # Global API
//
// The package exposes three groups of operations:
//
//  1. Read helpers:
//
//     Derive(v any) (*schema.Schema, error)
//     DeriveType(t reflect.Type) (*schema.Schema, error)
//     MustDerive(v any) *schema.Schema
//     Registry() apis.Registry
//     Deriver() apis.Deriver
//
//     These are safe for concurrent use without additional locking.
//     They always read from the latest published snapshot.
//
//  2. Mutation helpers:
//
//     Register(t reflect.Type, s *schema.Schema)
//     RegisterUnion(iface reflect.Type, discriminator string)
//     RegisterVariant(iface reflect.Type, tag string, variant reflect.Type)
//     SetConfig(cfg apis.Config)
//     SetBuilder(b apis.Builder)
//     SetExt(ext T)
//     SetRegistry(reg apis.Registry)
//     SetDeriver(der apis.Deriver)
//     UnpinRegistry()
//     UnpinDeriver()
//     SetAll(...)
//
//     Each of these either writes through to the current registry or
//     acquires an internal build lock, derives a new snapshot (rebuilding
//     or reusing Registry / Deriver as needed), and then atomically
//     publishes that snapshot.
//
//     Semantics in short:
//
//     - Config affects how schemas are derived and named. Calling
//     SetConfig() may trigger a rebuild of Registry and/or Deriver,
//     unless they are explicitly "pinned".
//
//     - Builder controls how Registry and Deriver are constructed.
//     Swapping the Builder lets you replace derivation logic
//     (different strategies, different naming policies) at runtime.
//
//     - Ext is an opaque extension payload. It is not interpreted by
//     sdx itself. It is simply passed down to the Builder so custom
//     builders (in other binaries) can carry extra policy/state.
//
//     - SetRegistry() / SetDeriver() directly overwrite the current
//     Registry / Deriver in the snapshot and "pin" them. Once a
//     layer is pinned, sdx will stop rebuilding that layer
//     automatically until you call UnpinRegistry()/UnpinDeriver().
//
//     - SetAll(...) is the "hard reset" API. It lets a process replace
//     Builder, Config, Ext, Registry, Deriver in one shot. This is
//     mainly used by tests to get a clean deterministic state
//     between test cases.
//
//  3. Introspection:
//
//     ExtAs[T]() (T, bool)
//     // plus Registry().Entries(), Registry().Unions(), etc.
//
//     These let callers examine the currently published snapshot for
//     debugging, documentation generation, or schema export.
//
// # Concurrency model
//
// Reads (Derive, DeriveType, Registry, Deriver) are wait-free: they load
// the current *state atomically and never take locks. The Deriver and
// Registry returned by that state must themselves be concurrency-safe
// for reads.
//
// Writes (SetConfig, SetBuilder, SetExt, SetRegistry, SetDeriver, etc.)
// take a short build mutex, assemble a brand-new state struct, and then
// publish it via an atomic pointer swap. This gives the calling binary
// a predictable "last write wins" behavior without forcing per-derivation
// locking.
//
// # Pinning
//
// sdx supports the concept of "pinning" a layer:
//
//   - When you call SetRegistry(reg), that exact Registry becomes the
//     process-wide registry and is considered pinned. Further calls to
//     SetConfig() will not attempt to rebuild a new Registry until you
//     explicitly UnpinRegistry().
//
//   - When you call SetDeriver(der), that Deriver is pinned and will
//     not be rebuilt automatically until UnpinDeriver().
//
// Pinning is there for advanced scenarios where you want full control
// over one layer while still letting other layers evolve. For example,
// you may lock a custom Deriver that emits a different schema dialect but
// still allow the rest of the system to change Config values.
//
// # Usage pattern in a binary
//
// A typical component does:
//
//  1. Let sdx init with default builder/config.
//
//  2. Optionally register exact schemas or unions up front:
//
//     sdx.Register(reflect.TypeOf(Money{}), moneySchema)
//     sdx.RegisterUnion(reflect.TypeOf((*Event)(nil)).Elem(), "kind")
//     sdx.RegisterVariant(eventType, "created", reflect.TypeOf(Created{}))
//
//  3. Use sdx.Derive(...) / sdx.MustDerive(...) wherever API descriptions,
//     documentation, or validation need the JSON shape of a type.
//
//  4. In tests, call sdx.SetAll(...) to get deterministic snapshots
//     and to inject a mock Builder.
//
// # Scope
//
// sdx is intentionally small. It does not try to be an OpenAPI generator
// or a validation framework. It only solves one job:
//
//	"Given any Go value or type, produce the schema value describing its
//	 JSON representation, named in a stable, human-readable way."
//
// Everything else (HTTP surfaces, document assembly, spec publishing)
// belongs to higher layers.
package sdx
