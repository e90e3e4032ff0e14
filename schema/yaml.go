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
	"fmt"

	"sigs.k8s.io/yaml"
)

// ToYAML serializes s as a YAML document. The YAML form follows the JSON
// field names (sigs.k8s.io/yaml round-trips through JSON), so it can be fed
// to OpenAPI tooling directly.
func ToYAML(s *Schema) ([]byte, error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	b, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("schema: marshal yaml: %w", err)
	}
	return b, nil
}

// FromYAML parses a YAML document previously produced by ToYAML.
func FromYAML(data []byte) (*Schema, error) {
	s := &Schema{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("schema: unmarshal yaml: %w", err)
	}
	return s, nil
}
