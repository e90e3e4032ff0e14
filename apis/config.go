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
	cache "dirpx.dev/sdx/sdxapi/cache/strategy"
)

// Config carries read-only derivation knobs that influence strategies.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// FullyQualified controls the naming policy. If true, schema names carry
	// the full package path with separators normalized to dots
	// ("acme.example.api.model.User"); otherwise only the package base
	// ("model.User").
	FullyQualified bool

	// IncludeBuiltins controls whether builtin/no-package named types
	// (e.g., "int", "string") receive schema names. If false, such types
	// stay anonymous and are always inlined.
	IncludeBuiltins bool

	// MaxUnwrap limits container unwrapping depth (ptr/slice/array/chan/map)
	// when normalizing a lookup or naming key.
	MaxUnwrap int

	// MapPreferElem controls which side of map[K]V is considered primary
	// when normalizing to a nearest named inner type. If true, prefer V.
	MapPreferElem bool

	// MaxDepth caps recursion depth during reflect-based derivation.
	// Named struct types recurse via references, so the cap only guards
	// pathologically nested anonymous shapes.
	MaxDepth int

	// FieldTag is the struct tag consulted for property names ("json").
	FieldTag string

	// MetaTag is the struct tag consulted for schema metadata ("schema"),
	// e.g. `schema:"description=...,format=uuid,required"`.
	MetaTag string

	// AllowAdditional controls whether derived object schemas accept
	// properties beyond the declared fields. If false, derived objects emit
	// additionalProperties: false.
	AllowAdditional bool

	// HideFields lists glob patterns matched against "SchemaName.property"
	// paths; matching properties are omitted from derived objects.
	HideFields []string

	// Cache selects the memoization policy for reflect-based derivation.
	Cache cache.Strategy
}
