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

// Strategy is a pluggable derivation step. A Deriver can chain multiple
// strategies in order (e.g., Provider -> Registry -> Reflect).
//
// handled reports whether the strategy owns this value/type; when true the
// chain stops, even if err is non-nil. (nil, false, nil) falls through.
type Strategy interface {
	// TryDerive attempts to derive a schema for value v according to cfg.
	TryDerive(v any, cfg Config) (s *schema.Schema, handled bool, err error)

	// TryDeriveType attempts to derive a schema for the reflect.Type t.
	TryDeriveType(t reflect.Type, cfg Config) (s *schema.Schema, handled bool, err error)
}
