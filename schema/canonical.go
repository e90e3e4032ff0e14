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

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
	"github.com/opencontainers/go-digest"
)

// Canonical returns the RFC 8785 canonical JSON form of s. Two schemas with
// the same meaning serialize to identical canonical bytes regardless of map
// iteration order, so the result is suitable for hashing and comparison.
func Canonical(s *Schema) ([]byte, error) {
	raw, err := ToJSON(s)
	if err != nil {
		return nil, err
	}
	b, err := jsoncanonicalizer.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("schema: canonicalize: %w", err)
	}
	return b, nil
}

// Fingerprint returns a stable digest of the canonical form of s.
// The digest identifies the schema across processes and releases: it only
// changes when the described JSON shape changes.
func Fingerprint(s *Schema) (digest.Digest, error) {
	b, err := Canonical(s)
	if err != nil {
		return "", err
	}
	return digest.FromBytes(b), nil
}
