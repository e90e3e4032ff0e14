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

package schema

import (
	"bytes"
	"fmt"

	jsv "github.com/santhosh-tekuri/jsonschema/v6"
)

// fallbackResourceID anchors schemas that carry no $id of their own.
const fallbackResourceID = "mem://sdx/schema.json"

// Compile compiles s with a real JSON Schema validator. Compiling verifies
// that the emitted document is well-formed against the dialect and returns a
// validator for checking instances.
func Compile(s *Schema) (*jsv.Schema, error) {
	raw, err := ToJSON(s)
	if err != nil {
		return nil, err
	}

	doc, err := jsv.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("schema: reparse: %w", err)
	}

	id := s.ID
	if id == "" {
		id = fallbackResourceID
	}
	c := jsv.NewCompiler()
	if err := c.AddResource(id, doc); err != nil {
		return nil, fmt.Errorf("schema: add resource: %w", err)
	}
	compiled, err := c.Compile(id)
	if err != nil {
		return nil, fmt.Errorf("schema: compile: %w", err)
	}
	return compiled, nil
}

// Validate checks a raw JSON instance against s.
// It returns nil when the instance conforms.
func Validate(s *Schema, instance []byte) error {
	compiled, err := Compile(s)
	if err != nil {
		return err
	}
	v, err := jsv.UnmarshalJSON(bytes.NewReader(instance))
	if err != nil {
		return fmt.Errorf("schema: parse instance: %w", err)
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("schema: instance does not conform: %w", err)
	}
	return nil
}
