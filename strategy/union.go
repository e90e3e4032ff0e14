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
	"errors"
	"fmt"
	"reflect"
	"sort"

	"dirpx.dev/sdx/schema"
)

var (
	// ErrNoVariants indicates a declared union without registered variants.
	ErrNoVariants = errors.New("sdx(strategy): union has no variants")
	// ErrUnnamedVariant indicates a union variant whose type yields no
	// schema name under the naming policy.
	ErrUnnamedVariant = errors.New("sdx(strategy): union variant has no schema name")
)

// unionFor derives the discriminated-union schema for a non-empty interface
// type from its union declaration in the registry. The union and each
// variant become named definitions; the returned schema is a reference.
func (w *walker) unionFor(t reflect.Type, depth int) (*schema.Schema, error) {
	name := SchemaName(t, w.cfg)
	if name == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInterface, t)
	}
	if _, ok := w.defs[name]; ok {
		return schema.Ref(name), nil
	}
	if w.active[t] {
		return schema.Ref(name), nil // definition is being built up the stack
	}
	if w.reg == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInterface, t)
	}
	u, ok := w.reg.LookupUnion(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInterface, t)
	}
	if len(u.Variants) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoVariants, t)
	}

	w.active[t] = true
	defer delete(w.active, t)

	alts := make([]schema.Alternative, 0, len(u.Variants))
	for _, v := range u.Variants {
		vname := SchemaName(v.Type, w.cfg)
		if vname == "" {
			return nil, fmt.Errorf("%w: %s tag %q", ErrUnnamedVariant, v.Type, v.Tag)
		}
		if err := w.ensureDef(vname, v.Type, depth+1); err != nil {
			return nil, err
		}
		// Stamp the discriminator on a copy so provider- or
		// registry-supplied schemas are never mutated.
		vs := w.defs[vname].Clone()
		stampDiscriminator(vs, u.Discriminator, v.Tag)
		w.defs[vname] = vs

		alts = append(alts, schema.Alternative{Tag: v.Tag, Schema: schema.Ref(vname)})
	}

	w.defs[name] = schema.Named(name, schema.Tagged(u.Discriminator, alts...))
	return schema.Ref(name), nil
}

// stampDiscriminator forces the discriminator property of a variant schema
// to the constant tag value and marks it required. A pre-existing property
// of the same name (a struct carrying its own tag field) is overridden.
func stampDiscriminator(s *schema.Schema, prop, tag string) {
	if s.Properties == nil {
		s.Properties = make(map[string]*schema.Schema)
	}
	c := schema.Const(tag)
	c.Type = "string"
	s.Properties[prop] = c

	for _, r := range s.Required {
		if r == prop {
			return
		}
	}
	s.Required = append(s.Required, prop)
	sort.Strings(s.Required)
}
