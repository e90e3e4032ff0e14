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
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gobwas/glob"
	"golang.org/x/sync/singleflight"

	"dirpx.dev/sdx/apis"
	"dirpx.dev/sdx/schema"
	cache "dirpx.dev/sdx/sdxapi/cache/strategy"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("sdx(strategy): nil reflect.Type provided")
	// ErrUnsupportedKind indicates a Go kind with no JSON representation
	// (func, chan, complex, unsafe pointer).
	ErrUnsupportedKind = errors.New("sdx(strategy): kind has no JSON representation")
	// ErrMaxDepth indicates the derivation recursion cap was exceeded.
	ErrMaxDepth = errors.New("sdx(strategy): max derivation depth exceeded")
	// ErrInvalidMapKey indicates a map key kind that cannot become a JSON
	// object key.
	ErrInvalidMapKey = errors.New("sdx(strategy): map key cannot be a JSON object key")
	// ErrUnknownInterface indicates a non-empty interface without a union
	// registration: no derivation exists for it.
	ErrUnknownInterface = errors.New("sdx(strategy): interface has no union registration")
	// ErrBadHidePattern indicates an invalid HideFields glob pattern.
	ErrBadHidePattern = errors.New("sdx(strategy): invalid hide pattern")
	// ErrDuplicateSchemaName indicates two distinct types resolving to the
	// same schema name within one derivation.
	ErrDuplicateSchemaName = errors.New("sdx(strategy): schema name derived from distinct types")
)

// NewReflectStrategy creates an apis.Strategy that derives schemas via
// reflection. reg may be nil; when present, nested named types re-enter the
// provider/registry fast paths so explicit registrations override reflection
// at any depth, and interface fields resolve through the union declarations.
func NewReflectStrategy(reg apis.Registry) apis.Strategy {
	return &reflectStrategy{reg: reg}
}

// reflectStrategy is the universal fallback: it walks a type's declared
// shape and constructs the equivalent schema value. Results are memoized
// per (type, config knobs) according to the configured cache policy.
type reflectStrategy struct {
	reg apis.Registry
	// memo caches derived root schemas by cacheKey.
	memo sync.Map
	// sf collapses concurrent first derivations under cache.Singleflight.
	sf singleflight.Group
}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// cacheKey ensures memoization respects all config knobs that affect derivation.
type cacheKey struct {
	t               reflect.Type
	fullyQualified  bool
	includeBuiltins bool
	maxDepth        int16
	fieldTag        string
	metaTag         string
	allowAdditional bool
	hide            string
}

func newCacheKey(t reflect.Type, cfg apis.Config) cacheKey {
	return cacheKey{
		t:               t,
		fullyQualified:  cfg.FullyQualified,
		includeBuiltins: cfg.IncludeBuiltins,
		maxDepth:        int16(cfg.MaxDepth),
		fieldTag:        cfg.FieldTag,
		metaTag:         cfg.MetaTag,
		allowAdditional: cfg.AllowAdditional,
		hide:            strings.Join(cfg.HideFields, "\x00"),
	}
}

// TryDerive derives the schema for v's type. Always handled for non-nil v.
func (s *reflectStrategy) TryDerive(v any, cfg apis.Config) (*schema.Schema, bool, error) {
	if v == nil {
		return nil, false, nil
	}
	return s.TryDeriveType(reflect.TypeOf(v), cfg)
}

// TryDeriveType derives the schema for t. Always handled for non-nil t.
func (s *reflectStrategy) TryDeriveType(t reflect.Type, cfg apis.Config) (*schema.Schema, bool, error) {
	if t == nil {
		return nil, false, nil
	}
	sch, err := s.deriveType(t, cfg)
	return sch, true, err
}

// deriveType applies the configured memoization policy around derive.
// Derived schemas are shared between callers and must not be mutated.
func (s *reflectStrategy) deriveType(t reflect.Type, cfg apis.Config) (*schema.Schema, error) {
	if cfg.Cache == cache.None {
		return s.derive(t, cfg)
	}

	key := newCacheKey(t, cfg)
	if v, ok := s.memo.Load(key); ok {
		return v.(*schema.Schema), nil
	}

	if cfg.Cache == cache.Singleflight {
		v, err, _ := s.sf.Do(flightKey(t, key), func() (any, error) {
			if v, ok := s.memo.Load(key); ok {
				return v, nil
			}
			sch, err := s.derive(t, cfg)
			if err != nil {
				return nil, err
			}
			s.memo.Store(key, sch)
			return sch, nil
		})
		if err != nil {
			return nil, err
		}
		return v.(*schema.Schema), nil
	}

	sch, err := s.derive(t, cfg)
	if err != nil {
		return nil, err
	}
	// Racing first derivations may both store; results are identical.
	s.memo.Store(key, sch)
	return sch, nil
}

// flightKey builds the singleflight string key for a derivation.
func flightKey(t reflect.Type, key cacheKey) string {
	return fmt.Sprintf("%s|%s|%+v", t.PkgPath(), t.String(), key)
}

// derive runs a full walk for t and assembles the root document:
// the root schema plus the collected named definitions and the dialect.
func (s *reflectStrategy) derive(t reflect.Type, cfg apis.Config) (*schema.Schema, error) {
	hide, err := compileHide(cfg.HideFields)
	if err != nil {
		return nil, err
	}
	w := &walker{
		cfg:      cfg,
		reg:      s.reg,
		hide:     hide,
		defs:     make(map[string]*schema.Schema),
		defTypes: make(map[string]reflect.Type),
		active:   make(map[reflect.Type]bool),
	}
	root, err := w.schemaFor(t, 0)
	if err != nil {
		return nil, err
	}
	out := root.Clone()
	out.Dialect = schema.Dialect2020
	if len(w.defs) > 0 {
		out.Defs = w.defs
	}
	return out, nil
}

// compileHide compiles HideFields patterns, failing on the first bad one.
func compileHide(patterns []string) ([]glob.Glob, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadHidePattern, p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// walker carries the state of one derivation walk.
type walker struct {
	cfg apis.Config
	reg apis.Registry
	// hide are the compiled HideFields patterns.
	hide []glob.Glob
	// defs collects named definitions for the root document.
	defs map[string]*schema.Schema
	// defTypes records which type claimed each definition name, so a
	// second distinct type resolving to the same name fails loudly
	// instead of silently sharing the first definition.
	defTypes map[string]reflect.Type
	// active marks named types currently being derived; revisiting one
	// emits a reference instead of recursing (cycle guard).
	active map[reflect.Type]bool
}

// Well-known types with fixed JSON representations.
var (
	timeType       = reflect.TypeOf(time.Time{})
	durationType   = reflect.TypeOf(time.Duration(0))
	rawMessageType = reflect.TypeOf(json.RawMessage{})
)

// schemaFor maps t's declared shape onto a schema value.
func (w *walker) schemaFor(t reflect.Type, depth int) (*schema.Schema, error) {
	if t == nil {
		return nil, ErrNilType
	}
	if depth > w.cfg.MaxDepth {
		return nil, fmt.Errorf("%w (%d) at %s", ErrMaxDepth, w.cfg.MaxDepth, t)
	}

	switch t {
	case timeType:
		return schema.String().WithFormat("date-time"), nil
	case durationType:
		return schema.String().WithFormat("duration"), nil
	case rawMessageType:
		return schema.Any(), nil
	}

	switch t.Kind() {
	case reflect.Pointer:
		return w.schemaFor(t.Elem(), depth+1)

	case reflect.String:
		return schema.String(), nil
	case reflect.Bool:
		return schema.Boolean(), nil
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return schema.Integer().WithFormat("int64"), nil
	case reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return schema.Integer().WithFormat("int32"), nil
	case reflect.Float32, reflect.Float64:
		return schema.Number(), nil

	case reflect.Slice:
		// []byte marshals as a base64 string, not an array.
		if t.Elem().Kind() == reflect.Uint8 {
			return schema.Bytes(), nil
		}
		item, err := w.schemaFor(t.Elem(), depth+1)
		if err != nil {
			return nil, err
		}
		return schema.Array(item), nil

	case reflect.Array:
		item, err := w.schemaFor(t.Elem(), depth+1)
		if err != nil {
			return nil, err
		}
		return schema.FixedArray(item, t.Len()), nil

	case reflect.Map:
		switch t.Key().Kind() {
		case reflect.String,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			// encoding/json stringifies these key kinds.
		default:
			return nil, fmt.Errorf("%w: %s", ErrInvalidMapKey, t.Key())
		}
		val, err := w.schemaFor(t.Elem(), depth+1)
		if err != nil {
			return nil, err
		}
		return schema.MapOf(val), nil

	case reflect.Interface:
		if t.NumMethod() == 0 {
			return schema.Any(), nil
		}
		return w.unionFor(t, depth)

	case reflect.Struct:
		name := SchemaName(t, w.cfg)
		if t.Name() == "" || name == "" {
			// Anonymous struct: inline, no definition.
			return w.objectFor(t, "", depth)
		}
		if err := w.ensureDef(name, t, depth); err != nil {
			return nil, err
		}
		return schema.Ref(name), nil

	default:
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedKind, t.Kind(), t)
	}
}

// ensureDef makes sure a definition for the named struct type exists,
// re-entering the provider and registry fast paths before reflecting so
// explicit schemas win at any nesting depth.
func (w *walker) ensureDef(name string, t reflect.Type, depth int) error {
	if w.active[t] {
		return nil // definition is being built up the stack
	}
	if prev, ok := w.defTypes[name]; ok {
		if prev != t {
			return fmt.Errorf("%w: %q claimed by both %s and %s", ErrDuplicateSchemaName, name, prev, t)
		}
		return nil
	}
	w.defTypes[name] = t
	w.active[t] = true
	defer delete(w.active, t)

	if p, ok := ProviderFor(t); ok {
		w.defs[name] = p.JSONSchema()
		return nil
	}
	if w.reg != nil {
		if s, ok := w.reg.Lookup(t); ok {
			w.defs[name] = s
			return nil
		}
	}

	obj, err := w.objectFor(t, name, depth)
	if err != nil {
		return err
	}
	schema.Named(name, obj)
	if d, ok := documenterFor(t); ok {
		if title := d.SchemaTitle(); title != "" {
			obj.Title = title
		}
		obj.Description = d.SchemaDescription()
	}
	w.defs[name] = obj
	return nil
}

// objectFor derives the keyed-object schema for a struct type.
// owner is the schema name used for hide-pattern matching ("" inlines).
func (w *walker) objectFor(t reflect.Type, owner string, depth int) (*schema.Schema, error) {
	props := make(map[string]*schema.Schema)
	req := make(map[string]bool)
	if err := w.collectFields(t, owner, depth, props, req); err != nil {
		return nil, err
	}

	fields := make([]schema.Field, 0, len(props))
	for name, fs := range props {
		fields = append(fields, schema.Field{Name: name, Schema: fs, Required: req[name]})
	}
	obj := schema.Object(fields...)
	if w.cfg.AllowAdditional {
		obj.AdditionalProperties = nil
	}
	return obj, nil
}

// collectFields walks a struct's fields into props/req. Embedded structs are
// inlined first so the outer struct's own fields win on name collisions,
// matching encoding/json shadowing for the common cases.
func (w *walker) collectFields(t reflect.Type, owner string, depth int, props map[string]*schema.Schema, req map[string]bool) error {
	if depth > w.cfg.MaxDepth {
		return fmt.Errorf("%w (%d) at %s", ErrMaxDepth, w.cfg.MaxDepth, t)
	}

	// Pass 1: inlined embedded structs. Exported fields of an embedded
	// unexported struct type are still promoted, matching encoding/json,
	// but not through an embedded pointer to an unexported type.
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		name, _, skip := parseFieldTag(f.Tag.Get(w.cfg.FieldTag))
		if skip || name != "" {
			continue // dropped, or a named embedding handled as a regular property
		}
		et := f.Type
		if et.Kind() == reflect.Pointer {
			if !f.IsExported() {
				continue
			}
			et = et.Elem()
		}
		if et.Kind() != reflect.Struct {
			continue
		}
		if err := w.collectFields(et, owner, depth+1, props, req); err != nil {
			return err
		}
	}

	// Pass 2: direct fields override embedded ones.
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts, skip := parseFieldTag(f.Tag.Get(w.cfg.FieldTag))
		if skip {
			continue
		}
		if f.Anonymous && name == "" {
			et := f.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				continue // inlined in pass 1
			}
		}
		if name == "" {
			name = f.Name
		}
		if w.hidden(owner, name) {
			continue
		}

		fs, err := w.schemaFor(f.Type, depth+1)
		if err != nil {
			return fmt.Errorf("field %s.%s: %w", t, f.Name, err)
		}
		if opts.asString {
			// `,string` re-encodes the value as a JSON string.
			fs = schema.String()
		}
		meta, err := parseMetaTag(f.Tag.Get(w.cfg.MetaTag))
		if err != nil {
			return fmt.Errorf("field %s.%s: %w", t, f.Name, err)
		}
		meta.apply(fs)

		required := !opts.omitEmpty && f.Type.Kind() != reflect.Pointer &&
			f.Type.Kind() != reflect.Interface
		if meta.required != nil {
			required = *meta.required
		}

		props[name] = fs
		req[name] = required
	}
	return nil
}

// hidden reports whether a property is matched by a HideFields pattern.
func (w *walker) hidden(owner, field string) bool {
	if len(w.hide) == 0 {
		return false
	}
	path := field
	if owner != "" {
		path = owner + "." + field
	}
	for _, g := range w.hide {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// documenterIface is the reflect view of apis.Documenter.
var documenterIface = reflect.TypeOf((*apis.Documenter)(nil)).Elem()

// documenterFor returns an apis.Documenter instance for t, covering value
// and pointer receivers.
func documenterFor(t reflect.Type) (apis.Documenter, bool) {
	if t == nil || t.Kind() == reflect.Interface {
		return nil, false
	}
	if t.Implements(documenterIface) {
		return reflect.Zero(t).Interface().(apis.Documenter), true
	}
	if t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(documenterIface) {
		return reflect.New(t).Interface().(apis.Documenter), true
	}
	return nil, false
}
