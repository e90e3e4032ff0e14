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
	"dirpx.dev/sdx/schema"
)

// SchemaProvider is the zero-reflection fast path: a type that carries its
// own schema. When a value or type implements SchemaProvider, derivation
// returns that schema and does not attempt further strategies.
//
// JSONSchema must be deterministic for a given type, independent of instance
// state, safe for concurrent use, and must not mutate or return a schema
// that callers are expected to mutate.
type SchemaProvider interface {
	// JSONSchema returns the schema describing the implementing type's
	// JSON representation.
	JSONSchema() *schema.Schema
}

// Namer lets a type override the naming policy: the returned name is used
// as the schema name (definitions key) instead of the derived
// fully-qualified type name.
//
// The returned name must be non-empty, deterministic for the type, and
// unique within the process's schema namespace.
type Namer interface {
	// SchemaName returns the canonical schema name for the implementing type.
	SchemaName() string
}

// Documenter supplies human-oriented metadata attached to schemas derived
// by reflection: a title and description on the resulting object schema.
// All methods are type-level and must not depend on instance state.
type Documenter interface {
	// SchemaTitle returns a short display title, or "" for none.
	SchemaTitle() string
	// SchemaDescription returns a one-line description, or "" for none.
	SchemaDescription() string
}
