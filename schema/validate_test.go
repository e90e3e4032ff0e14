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

func orderDocument() *schema.Schema {
	root := schema.Ref("acme.Order")
	root.Dialect = schema.Dialect2020
	root.Defs = map[string]*schema.Schema{
		"acme.Order": schema.Named("acme.Order", schema.Object(
			schema.Field{Name: "id", Schema: schema.String(), Required: true},
			schema.Field{Name: "total", Schema: schema.Number(), Required: true},
			schema.Field{Name: "note", Schema: schema.String()},
		)),
	}
	return root
}

func TestCompile(t *testing.T) {
	compiled, err := schema.Compile(orderDocument())
	require.NoError(t, err)
	require.NotNil(t, compiled)
}

func TestCompile_WithExplicitID(t *testing.T) {
	s := orderDocument()
	s.ID = "https://acme.example/schemas/order.json"
	_, err := schema.Compile(s)
	require.NoError(t, err)
}

func TestValidate(t *testing.T) {
	doc := orderDocument()

	require.NoError(t, schema.Validate(doc, []byte(`{"id":"o-1","total":9.5}`)))
	require.NoError(t, schema.Validate(doc, []byte(`{"id":"o-1","total":0,"note":"rush"}`)))

	cases := map[string]string{
		"missing required": `{"id":"o-1"}`,
		"wrong type":       `{"id":"o-1","total":"9.5"}`,
		"extra property":   `{"id":"o-1","total":9.5,"rogue":true}`,
		"not an object":    `[1,2,3]`,
	}
	for name, instance := range cases {
		err := schema.Validate(doc, []byte(instance))
		assert.Error(t, err, name)
	}
}

func TestValidate_BadInstance(t *testing.T) {
	err := schema.Validate(orderDocument(), []byte(`{not json`))
	require.Error(t, err)
}

func TestValidate_NilSchema(t *testing.T) {
	err := schema.Validate(nil, []byte(`{}`))
	require.ErrorIs(t, err, schema.ErrNilSchema)
}
