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

// Package schema is the schema algebra underlying sdx: a small set of value
// types and constructors describing the JSON shape expected for a Go type.
//
// A Schema is a plain value. It is typically constructed once (at process
// start, by derivation or by hand) and then treated as immutable. The package
// also provides serialization (JSON, YAML), canonicalization and
// fingerprinting, and compilation against a real JSON Schema validator.
package schema

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNilSchema is returned when a nil *Schema is provided.
var ErrNilSchema = errors.New("schema: nil schema provided")

// Dialect2020 is the JSON Schema dialect emitted on derived root schemas.
const Dialect2020 = "https://json-schema.org/draft/2020-12/schema"

// DefsPrefix is the JSON Pointer prefix used for local definition references.
const DefsPrefix = "#/$defs/"

// Schema describes the JSON shape expected for a value.
//
// The zero value is the empty schema, which accepts any JSON document.
// Fields map one-to-one onto JSON Schema keywords; unused fields stay empty
// and are omitted from serialized output.
type Schema struct {
	// ID is the canonical URI of the schema ($id).
	ID string `json:"$id,omitempty"`
	// Dialect identifies the JSON Schema dialect ($schema). Set on roots only.
	Dialect string `json:"$schema,omitempty"`
	// Ref is a reference to another schema, usually into Defs ($ref).
	Ref string `json:"$ref,omitempty"`
	// Defs holds named schema definitions referenced via Ref ($defs).
	Defs map[string]*Schema `json:"$defs,omitempty"`

	// Type is the JSON type: "object", "array", "string", "integer",
	// "number", "boolean" or "null". Empty means unconstrained.
	Type string `json:"type,omitempty"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Scalar constraints.
	Format          string   `json:"format,omitempty"`
	Pattern         string   `json:"pattern,omitempty"`
	ContentEncoding string   `json:"contentEncoding,omitempty"`
	Enum            []any    `json:"enum,omitempty"`
	Const           any      `json:"const,omitempty"`
	Minimum         *float64 `json:"minimum,omitempty"`
	Maximum         *float64 `json:"maximum,omitempty"`

	// Object constraints.
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
	// AdditionalProperties is either a bool or a *Schema; nil leaves the
	// keyword out (JSON Schema default: allowed).
	AdditionalProperties any `json:"additionalProperties,omitempty"`

	// Array constraints.
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Union constraints.
	OneOf         []*Schema      `json:"oneOf,omitempty"`
	Discriminator *Discriminator `json:"discriminator,omitempty"`
}

// Discriminator names the property that selects a union alternative and maps
// each tag value to the schema describing that alternative.
type Discriminator struct {
	PropertyName string            `json:"propertyName"`
	Mapping      map[string]string `json:"mapping,omitempty"`
}

// Field is a single keyed entry of an object schema.
type Field struct {
	// Name is the JSON property name.
	Name string
	// Schema describes the property value.
	Schema *Schema
	// Required marks the property as mandatory.
	Required bool
}

// Alternative is a single variant of a tagged union.
type Alternative struct {
	// Tag is the discriminator value selecting this variant.
	Tag string
	// Schema describes the variant. Usually a Ref into the root Defs.
	Schema *Schema
	// RefName, when non-empty, is the definition name recorded in the
	// discriminator mapping. Defaults to Schema.Ref when empty.
	RefName string
}

// Any returns the empty schema, accepting any JSON document.
func Any() *Schema { return &Schema{} }

// String returns a schema for JSON strings.
func String() *Schema { return &Schema{Type: "string"} }

// Boolean returns a schema for JSON booleans.
func Boolean() *Schema { return &Schema{Type: "boolean"} }

// Integer returns a schema for JSON integers.
func Integer() *Schema { return &Schema{Type: "integer"} }

// Number returns a schema for JSON numbers.
func Number() *Schema { return &Schema{Type: "number"} }

// Bytes returns a schema for base64-encoded binary strings.
func Bytes() *Schema {
	return &Schema{Type: "string", ContentEncoding: "base64"}
}

// Enum returns a string schema constrained to the given values.
func Enum(values ...any) *Schema {
	return &Schema{Enum: values}
}

// Const returns a schema accepting exactly one value.
func Const(v any) *Schema {
	return &Schema{Const: v}
}

// Array returns a schema for homogeneous JSON arrays of item.
func Array(item *Schema) *Schema {
	return &Schema{Type: "array", Items: item}
}

// FixedArray returns an array schema of exactly n items.
func FixedArray(item *Schema, n int) *Schema {
	size := n
	return &Schema{Type: "array", Items: item, MinItems: &size, MaxItems: &size}
}

// MapOf returns a schema for JSON objects with arbitrary keys and
// values of the given schema.
func MapOf(value *Schema) *Schema {
	return &Schema{Type: "object", AdditionalProperties: value}
}

// Ref returns a reference schema into the local definitions of the root.
func Ref(name string) *Schema {
	return &Schema{Ref: DefsPrefix + name}
}

// Object assembles a keyed-object schema from fields. Property names must be
// unique; the required list is emitted in sorted order for stable output.
// Additional properties are rejected unless the schema is later relaxed.
func Object(fields ...Field) *Schema {
	s := &Schema{
		Type:                 "object",
		Properties:           make(map[string]*Schema, len(fields)),
		AdditionalProperties: false,
	}
	for _, f := range fields {
		s.Properties[f.Name] = f.Schema
		if f.Required {
			s.Required = append(s.Required, f.Name)
		}
	}
	sort.Strings(s.Required)
	return s
}

// Tagged assembles a discriminated-union schema: oneOf over the alternative
// schemas, with a discriminator block mapping each tag to its alternative.
// Alternatives are ordered by tag for deterministic output.
func Tagged(discriminator string, alts ...Alternative) *Schema {
	sorted := make([]Alternative, len(alts))
	copy(sorted, alts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Tag < sorted[j].Tag })

	s := &Schema{
		OneOf: make([]*Schema, 0, len(sorted)),
		Discriminator: &Discriminator{
			PropertyName: discriminator,
			Mapping:      make(map[string]string, len(sorted)),
		},
	}
	for _, a := range sorted {
		s.OneOf = append(s.OneOf, a.Schema)
		ref := a.RefName
		if ref == "" && a.Schema != nil {
			ref = a.Schema.Ref
		} else if ref != "" {
			ref = DefsPrefix + ref
		}
		if ref != "" {
			s.Discriminator.Mapping[a.Tag] = ref
		}
	}
	return s
}

// Named sets the schema title to the given name and returns the schema.
// Derivation uses it to stamp the schema name produced by the naming policy.
func Named(name string, s *Schema) *Schema {
	s.Title = name
	return s
}

// WithDescription sets the description and returns the schema.
func (s *Schema) WithDescription(desc string) *Schema {
	s.Description = desc
	return s
}

// WithFormat sets the format and returns the schema.
func (s *Schema) WithFormat(format string) *Schema {
	s.Format = format
	return s
}

// Clone returns a copy of s with its own top-level maps and slices.
// Nested schemas are shared; callers replacing nested entries must clone
// those too. Derivation uses Clone before decorating shared definitions.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	if s.Properties != nil {
		out.Properties = make(map[string]*Schema, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = v
		}
	}
	if s.Defs != nil {
		out.Defs = make(map[string]*Schema, len(s.Defs))
		for k, v := range s.Defs {
			out.Defs[k] = v
		}
	}
	out.Required = append([]string(nil), s.Required...)
	out.Enum = append([]any(nil), s.Enum...)
	out.OneOf = append([]*Schema(nil), s.OneOf...)
	if s.Discriminator != nil {
		d := *s.Discriminator
		d.Mapping = make(map[string]string, len(s.Discriminator.Mapping))
		for k, v := range s.Discriminator.Mapping {
			d.Mapping[k] = v
		}
		out.Discriminator = &d
	}
	return &out
}

// IsRef reports whether s is a pure reference schema.
func (s *Schema) IsRef() bool {
	return s != nil && s.Ref != ""
}

// RefName returns the local definition name a reference schema points to,
// or "" if s is not a local reference.
func (s *Schema) RefName() string {
	if s == nil || len(s.Ref) <= len(DefsPrefix) || s.Ref[:len(DefsPrefix)] != DefsPrefix {
		return ""
	}
	return s.Ref[len(DefsPrefix):]
}

// String implements fmt.Stringer with a short diagnostic form.
func (s *Schema) String() string {
	switch {
	case s == nil:
		return "<nil>"
	case s.Ref != "":
		return fmt.Sprintf("ref(%s)", s.Ref)
	case len(s.OneOf) > 0:
		return fmt.Sprintf("union(%d)", len(s.OneOf))
	case s.Type != "":
		return s.Type
	default:
		return "any"
	}
}
