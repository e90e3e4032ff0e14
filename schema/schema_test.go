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

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/sdx/schema"
)

func TestConstructors(t *testing.T) {
	assert.Equal(t, "string", schema.String().Type)
	assert.Equal(t, "boolean", schema.Boolean().Type)
	assert.Equal(t, "integer", schema.Integer().Type)
	assert.Equal(t, "number", schema.Number().Type)
	assert.Empty(t, schema.Any().Type)

	b := schema.Bytes()
	assert.Equal(t, "string", b.Type)
	assert.Equal(t, "base64", b.ContentEncoding)

	e := schema.Enum("a", "b")
	assert.Equal(t, []any{"a", "b"}, e.Enum)

	c := schema.Const("x")
	assert.Equal(t, "x", c.Const)

	a := schema.Array(schema.String())
	require.NotNil(t, a.Items)
	assert.Equal(t, "array", a.Type)
	assert.Equal(t, "string", a.Items.Type)

	f := schema.FixedArray(schema.Number(), 3)
	require.NotNil(t, f.MinItems)
	require.NotNil(t, f.MaxItems)
	assert.Equal(t, 3, *f.MinItems)
	assert.Equal(t, 3, *f.MaxItems)

	m := schema.MapOf(schema.Integer())
	assert.Equal(t, "object", m.Type)
	ap, ok := m.AdditionalProperties.(*schema.Schema)
	require.True(t, ok)
	assert.Equal(t, "integer", ap.Type)
}

func TestObject_SortsRequired(t *testing.T) {
	o := schema.Object(
		schema.Field{Name: "zeta", Schema: schema.String(), Required: true},
		schema.Field{Name: "alpha", Schema: schema.String(), Required: true},
		schema.Field{Name: "mid", Schema: schema.String()},
	)
	assert.Equal(t, []string{"alpha", "zeta"}, o.Required)
	assert.Len(t, o.Properties, 3)
	ap, ok := o.AdditionalProperties.(bool)
	require.True(t, ok)
	assert.False(t, ap)
}

func TestRef_RoundTrip(t *testing.T) {
	r := schema.Ref("acme.Order")
	require.True(t, r.IsRef())
	assert.Equal(t, schema.DefsPrefix+"acme.Order", r.Ref)
	assert.Equal(t, "acme.Order", r.RefName())

	assert.False(t, schema.String().IsRef())
	assert.Empty(t, schema.String().RefName())
}

func TestTagged_SortsAndMaps(t *testing.T) {
	u := schema.Tagged("kind",
		schema.Alternative{Tag: "wire", Schema: schema.Ref("acme.Wire")},
		schema.Alternative{Tag: "ach", Schema: schema.Ref("acme.ACH")},
		schema.Alternative{Tag: "card", RefName: "acme.Card", Schema: schema.Object()},
	)

	require.Len(t, u.OneOf, 3)
	// Ordered by tag: ach, card, wire.
	assert.Equal(t, "acme.ACH", u.OneOf[0].RefName())
	assert.Equal(t, "acme.Wire", u.OneOf[2].RefName())

	require.NotNil(t, u.Discriminator)
	assert.Equal(t, "kind", u.Discriminator.PropertyName)
	assert.Equal(t, map[string]string{
		"ach":  schema.DefsPrefix + "acme.ACH",
		"card": schema.DefsPrefix + "acme.Card",
		"wire": schema.DefsPrefix + "acme.Wire",
	}, u.Discriminator.Mapping)
}

func TestNamedAndDecorators(t *testing.T) {
	s := schema.Named("acme.Order", schema.Object()).
		WithDescription("a purchase order").
		WithFormat("")

	assert.Equal(t, "acme.Order", s.Title)
	assert.Equal(t, "a purchase order", s.Description)
}

func TestClone_Isolation(t *testing.T) {
	min := 1.0
	orig := schema.Object(
		schema.Field{Name: "id", Schema: schema.String(), Required: true},
	)
	orig.Minimum = &min
	orig.Enum = []any{"a"}

	cp := orig.Clone()
	cp.Properties["extra"] = schema.Boolean()
	cp.Required = append(cp.Required, "extra")
	cp.Enum = append(cp.Enum, "b")

	assert.Len(t, orig.Properties, 1)
	assert.Equal(t, []string{"id"}, orig.Required)
	assert.Equal(t, []any{"a"}, orig.Enum)
	// Shared leaves are intentional; the clone is shallow one level deep.
	assert.Same(t, orig.Properties["id"], cp.Properties["id"])
}

func TestCloneNil(t *testing.T) {
	var s *schema.Schema
	assert.Nil(t, s.Clone())
}

func TestJSON_RoundTrip(t *testing.T) {
	s := schema.Named("acme.Order", schema.Object(
		schema.Field{Name: "id", Schema: schema.String().WithFormat("uuid"), Required: true},
		schema.Field{Name: "total", Schema: schema.Number()},
	))
	s.Dialect = schema.Dialect2020

	raw, err := schema.ToJSON(s)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"$schema"`)
	assert.Contains(t, string(raw), `"uuid"`)

	back, err := schema.FromJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, s, back)

	pretty, err := schema.ToJSONIndent(s)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  ")
}

func TestJSON_NilSchema(t *testing.T) {
	_, err := schema.ToJSON(nil)
	require.ErrorIs(t, err, schema.ErrNilSchema)
	_, err = schema.ToJSONIndent(nil)
	require.ErrorIs(t, err, schema.ErrNilSchema)
}

func TestYAML_RoundTrip(t *testing.T) {
	s := schema.Object(
		schema.Field{Name: "name", Schema: schema.String(), Required: true},
	)

	y, err := schema.ToYAML(s)
	require.NoError(t, err)
	assert.Contains(t, string(y), "type: object")
	assert.Contains(t, string(y), "name")

	back, err := schema.FromYAML(y)
	require.NoError(t, err)
	assert.Equal(t, s, back)

	_, err = schema.ToYAML(nil)
	require.ErrorIs(t, err, schema.ErrNilSchema)
}
