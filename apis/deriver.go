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

// Deriver coordinates strategies to derive schemas for values and types.
// Typical chain: ProviderStrategy -> RegistryStrategy -> ReflectStrategy.
type Deriver interface {
	// Derive returns the schema describing v's JSON representation.
	Derive(v any, cfg Config) (*schema.Schema, error)

	// DeriveType returns the schema describing t's JSON representation.
	DeriveType(t reflect.Type, cfg Config) (*schema.Schema, error)
}
