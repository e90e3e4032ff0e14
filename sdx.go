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

package sdx

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/sdx/apis"
	"dirpx.dev/sdx/builder"
	"dirpx.dev/sdx/config"
	"dirpx.dev/sdx/schema"
)

// init initializes the global derivation state.
func init() {
	// Initialize state with default cfg, reg, and der.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.der = b.BuildDeriver(s.cfg, s.reg, nil, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("sdx: builder returned nil registry")
	// ErrNilDeriver is returned when a builder returns a nil deriver.
	ErrNilDeriver = errors.New("sdx: builder returned nil deriver")
)

// Derive returns the schema describing v's JSON representation using the
// global deriver. It uses the global configuration and registry.
// This is a convenience wrapper around the global der.
func Derive(v any) (*schema.Schema, error) {
	s := st.Load()
	return s.der.Derive(v, s.cfg)
}

// DeriveType returns the schema describing t's JSON representation using the
// global deriver. It uses the global configuration and registry.
// This is a convenience wrapper around the global der.
func DeriveType(t reflect.Type) (*schema.Schema, error) {
	s := st.Load()
	return s.der.DeriveType(t, s.cfg)
}

// MustDerive is Derive for types known to be derivable; it panics on error.
// Intended for package-level schema variables computed at process start.
func MustDerive(v any) *schema.Schema {
	sch, err := Derive(v)
	if err != nil {
		panic(err)
	}
	return sch
}

// Register adds an explicit type-schema mapping to the global registry.
// This is a convenience wrapper around the global reg.
func Register(t reflect.Type, sch *schema.Schema) error {
	return st.Load().reg.Register(t, sch)
}

// RegisterUnion declares an interface type as a tagged union on the global
// registry. This is a convenience wrapper around the global reg.
func RegisterUnion(iface reflect.Type, discriminator string) error {
	return st.Load().reg.RegisterUnion(iface, discriminator)
}

// RegisterVariant attaches a variant type to a declared union on the global
// registry. This is a convenience wrapper around the global reg.
func RegisterVariant(iface reflect.Type, tag string, variant reflect.Type) error {
	return st.Load().reg.RegisterVariant(iface, tag, variant)
}

// SetAll explicitly sets all global state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, der apis.Deriver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Extension
	next := ext

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Registry
	nreg := reg
	npreg := false
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg, next)
	} else {
		npreg = true
	}

	// Deriver
	nder := der
	npder := false
	if nder == nil {
		nder = nbld.BuildDeriver(ncfg, nreg, old.der, next)
	} else {
		npder = true
	}

	// Ensure non-nil reg and der.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nder == nil {
		panic(ErrNilDeriver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  ncfg,
			ext:  next,
			reg:  nreg,
			der:  nder,
			bld:  nbld,
			preg: npreg,
			pder: npder,
		},
	)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg.
// It rebuilds the global reg and der using the new configuration.
// This is a convenience wrapper around the global state.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg and der based on the new cfg and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(cfg, old.reg, old.ext)
	}
	nder := old.der
	if !old.pder {
		nder = b.BuildDeriver(cfg, nreg, old.der, old.ext)
	}

	// Ensure non-nil reg and der.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nder == nil {
		panic(ErrNilDeriver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  cfg,
			ext:  old.ext,
			reg:  nreg,
			der:  nder,
			bld:  b,
			preg: old.preg,
			pder: old.pder,
		},
	)
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global registry to reg.
// It uses the global configuration to rebuild the global der.
// This is a convenience wrapper around the global state.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new der based on the old cfg and new reg.
	nder := old.der
	if !old.pder {
		nder = b.BuildDeriver(old.cfg, reg, old.der, old.ext)
	}

	// Ensure non-nil der.
	if nder == nil {
		panic(ErrNilDeriver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  reg,
			der:  nder,
			bld:  b,
			preg: true,
			pder: old.pder,
		},
	)
}

// Deriver returns the global deriver.
func Deriver() apis.Deriver {
	return st.Load().der
}

// SetDeriver sets the global deriver to der.
// It uses the global configuration and registry.
// This is a convenience wrapper around the global state.
func SetDeriver(der apis.Deriver) {
	if der == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			der:  der,
			bld:  old.bld,
			preg: old.preg,
			pder: true,
		},
	)
}

// Builder returns the global bld.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global bld to b.
// This is a convenience wrapper around the global state.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new reg and der based on the new bld and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, old.ext)
	}
	nder := old.der
	if !old.pder {
		nder = b.BuildDeriver(old.cfg, nreg, old.der, old.ext)
	}

	// Ensure non-nil reg and der.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nder == nil {
		panic(ErrNilDeriver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  nreg,
			der:  nder,
			bld:  b,
			preg: old.preg,
			pder: old.pder,
		},
	)
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg and der based on the new ext and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, ext)
	}
	nder := old.der
	if !old.pder {
		nder = b.BuildDeriver(old.cfg, nreg, old.der, ext)
	}

	// Ensure non-nil reg and der.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nder == nil {
		panic(ErrNilDeriver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  ext,
			reg:  nreg,
			der:  nder,
			bld:  b,
			preg: old.preg,
			pder: old.pder,
		},
	)
}

// ExtAs returns the global extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned returns whether the global registry is pinned (immutable).
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry makes the global registry immutable.
func PinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			der:  old.der,
			bld:  old.bld,
			preg: true,
			pder: old.pder,
		},
	)
}

// UnpinRegistry makes the global registry mutable again.
func UnpinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			der:  old.der,
			bld:  old.bld,
			preg: false,
			pder: old.pder,
		},
	)
}

// IsDeriverPinned returns whether the global deriver is pinned (immutable).
func IsDeriverPinned() bool {
	return st.Load().pder
}

// PinDeriver makes the global deriver immutable.
func PinDeriver() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			der:  old.der,
			bld:  old.bld,
			preg: old.preg,
			pder: true,
		},
	)
}

// UnpinDeriver makes the global deriver mutable again.
func UnpinDeriver() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			der:  old.der,
			bld:  old.bld,
			preg: old.preg,
			pder: false,
		},
	)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global derivation state.
var st atomic.Pointer[state]

// state is the global derivation state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// ext is the global extension configuration.
	ext any
	// reg is the global reg.
	reg apis.Registry
	// der is the global der.
	der apis.Deriver
	// bld is the global bld.
	bld apis.Builder
	// preg indicates whether the reg is pinned (immutable).
	preg bool
	// pder indicates whether the der is pinned (immutable).
	pder bool
}
