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
	"encoding/json"
	"fmt"
)

// ToJSON serializes s as a compact JSON Schema document.
func ToJSON(s *Schema) ([]byte, error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("schema: marshal: %w", err)
	}
	return b, nil
}

// ToJSONIndent serializes s as an indented JSON Schema document,
// suitable for documentation output.
func ToJSONIndent(s *Schema) ([]byte, error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("schema: marshal: %w", err)
	}
	return b, nil
}

// FromJSON parses a JSON Schema document previously produced by ToJSON.
// Unknown keywords are dropped; this is a round-trip helper for schemas
// within the algebra's vocabulary, not a general JSON Schema parser.
func FromJSON(data []byte) (*Schema, error) {
	s := &Schema{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("schema: unmarshal: %w", err)
	}
	return s, nil
}
