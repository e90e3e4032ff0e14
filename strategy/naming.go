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
	"path"
	"reflect"
	"strings"

	"dirpx.dev/sdx/apis"
	uref "dirpx.dev/sdx/utils/reflect"
)

// namerIface is the reflect view of apis.Namer.
var namerIface = reflect.TypeOf((*apis.Namer)(nil)).Elem()

// SchemaName computes the schema name for t.
//
// Policy: unwrap containers to the nearest named type, let an apis.Namer
// implementation override everything, otherwise derive from the type
// identity: the name with the generic instantiation suffix stripped,
// qualified by the package path with separators normalized to dots
// ("acme.example/api/model" -> "acme.example.api.model"). With
// FullyQualified disabled only the package base qualifies. Builtin or
// unnamed types yield "" (unless IncludeBuiltins, which yields the bare
// builtin name).
func SchemaName(t reflect.Type, cfg apis.Config) string {
	base, err := uref.Normalize(t, cfg)
	if err != nil || base == nil {
		return ""
	}

	if n, ok := namerFor(base); ok {
		return n.SchemaName()
	}

	name := stripTypeParams(base.Name())
	p := base.PkgPath()
	if p == "" {
		// Builtin/no-package named type.
		if !cfg.IncludeBuiltins {
			return ""
		}
		return name
	}
	if cfg.FullyQualified {
		return strings.ReplaceAll(p, "/", ".") + "." + name
	}
	return path.Base(p) + "." + name
}

// namerFor returns an apis.Namer instance for t, covering value and pointer
// receivers. Interface types are never instantiated.
func namerFor(t reflect.Type) (apis.Namer, bool) {
	if t == nil || t.Kind() == reflect.Interface {
		return nil, false
	}
	if t.Implements(namerIface) {
		return reflect.Zero(t).Interface().(apis.Namer), true
	}
	if t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(namerIface) {
		return reflect.New(t).Interface().(apis.Namer), true
	}
	return nil, false
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
