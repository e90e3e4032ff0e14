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

package registry

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/sdx/apis"
	uref "dirpx.dev/sdx/utils/reflect"
)

var (
	// ErrNotInterface is returned when a union is declared for a non-interface type.
	ErrNotInterface = errors.New("sdx(registry): union type is not an interface")
	// ErrEmptyDiscriminator is returned when a union is declared without a discriminator.
	ErrEmptyDiscriminator = errors.New("sdx(registry): empty discriminator provided")
	// ErrUnknownUnion is returned when a variant targets an undeclared union.
	ErrUnknownUnion = errors.New("sdx(registry): variant registered for undeclared union")
	// ErrDuplicateTag is returned when a tag value is registered twice with
	// different variant types.
	ErrDuplicateTag = errors.New("sdx(registry): duplicate discriminator tag")
	// ErrVariantMismatch is returned when a variant does not implement the
	// union interface or is not a struct after normalization.
	ErrVariantMismatch = errors.New("sdx(registry): variant does not fit union")
)

// RegisterUnion declares iface as a tagged union discriminated by the given
// property name. Re-declaring with the same discriminator is a no-op;
// changing the discriminator of a declared union is a conflict.
func (r *registry) RegisterUnion(iface reflect.Type, discriminator string) error {
	if iface == nil {
		return ErrNilType
	}
	if iface.Kind() != reflect.Interface {
		return fmt.Errorf("%w: %s", ErrNotInterface, iface)
	}
	if discriminator == "" {
		return ErrEmptyDiscriminator
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.unions[iface]; ok {
		if u.Discriminator == discriminator {
			return nil
		}
		return fmt.Errorf("%w: union %s already discriminated by %q",
			ErrConflictingRegistration, iface, u.Discriminator)
	}
	if r.unions == nil {
		r.unions = make(map[reflect.Type]*apis.Union)
	}
	r.unions[iface] = &apis.Union{Type: iface, Discriminator: discriminator}
	return nil
}

// RegisterVariant attaches a variant type to a declared union. The variant
// is normalized to its nearest named type, must be a struct, and must
// implement the union interface (directly or via pointer receiver).
// Registering the same (tag, variant) pair twice is a no-op.
func (r *registry) RegisterVariant(iface reflect.Type, tag string, variant reflect.Type) error {
	if iface == nil || variant == nil {
		return ErrNilType
	}
	if tag == "" {
		return ErrEmptyDiscriminator
	}

	base, err := uref.Normalize(variant, r.cfg)
	if err != nil {
		return err
	}
	if base.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s is %s, want struct", ErrVariantMismatch, base, base.Kind())
	}
	if !base.Implements(iface) && !reflect.PointerTo(base).Implements(iface) {
		return fmt.Errorf("%w: %s does not implement %s", ErrVariantMismatch, base, iface)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.unions[iface]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUnion, iface)
	}
	for _, v := range u.Variants {
		if v.Tag == tag {
			if v.Type == base {
				return nil
			}
			return fmt.Errorf("%w: %q already maps to %s", ErrDuplicateTag, tag, v.Type)
		}
	}
	u.Variants = append(u.Variants, apis.Variant{Tag: tag, Type: base})
	return nil
}

// LookupUnion returns a copy of the union declaration for iface.
func (r *registry) LookupUnion(iface reflect.Type) (apis.Union, bool) {
	if iface == nil {
		return apis.Union{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.unions[iface]
	if !ok {
		return apis.Union{}, false
	}
	return snapshotUnion(u), true
}

// Unions returns a snapshot of all union declarations (order unspecified).
func (r *registry) Unions() []apis.Union {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]apis.Union, 0, len(r.unions))
	for _, u := range r.unions {
		out = append(out, snapshotUnion(u))
	}
	return out
}

// snapshotUnion copies a union so callers cannot mutate registry state.
func snapshotUnion(u *apis.Union) apis.Union {
	cp := *u
	cp.Variants = append([]apis.Variant(nil), u.Variants...)
	return cp
}
