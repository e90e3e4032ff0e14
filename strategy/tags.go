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
	"fmt"
	"strconv"
	"strings"

	"dirpx.dev/sdx/schema"
)

// fieldOpts are the encoding options of a field tag ("json" by default).
type fieldOpts struct {
	// omitEmpty covers both omitempty and omitzero.
	omitEmpty bool
	// asString marks `,string` re-encoding.
	asString bool
}

// parseFieldTag splits a field tag into the property name override, the
// encoding options, and whether the field is dropped. Only the bare "-" tag
// drops a field; "-," names the property "-", per encoding/json.
func parseFieldTag(tag string) (string, fieldOpts, bool) {
	if tag == "" {
		return "", fieldOpts{}, false
	}
	if tag == "-" {
		return "", fieldOpts{}, true
	}
	parts := strings.Split(tag, ",")
	opts := fieldOpts{}
	for _, p := range parts[1:] {
		switch p {
		case "omitempty", "omitzero":
			opts.omitEmpty = true
		case "string":
			opts.asString = true
		}
	}
	return parts[0], opts, false
}

// fieldMeta is the parsed metadata tag ("schema" by default).
type fieldMeta struct {
	title       string
	description string
	format      string
	pattern     string
	enum        []any
	required    *bool
	minimum     *float64
	maximum     *float64
}

// parseMetaTag parses comma-separated k=v pairs and bare flags:
//
//	`schema:"description=account owner,format=uuid,required"`
//	`schema:"enum=red|green|blue"`
//	`schema:"minimum=0,maximum=100"`
func parseMetaTag(tag string) (fieldMeta, error) {
	m := fieldMeta{}
	if tag == "" {
		return m, nil
	}
	for _, tok := range strings.Split(tag, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		k, v, hasValue := strings.Cut(tok, "=")
		switch k {
		case "required":
			b := true
			m.required = &b
		case "optional":
			b := false
			m.required = &b
		case "title":
			m.title = v
		case "description":
			m.description = v
		case "format":
			m.format = v
		case "pattern":
			m.pattern = v
		case "enum":
			for _, e := range strings.Split(v, "|") {
				m.enum = append(m.enum, e)
			}
		case "minimum", "maximum":
			if !hasValue {
				return m, fmt.Errorf("sdx(strategy): %s needs a value", k)
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return m, fmt.Errorf("sdx(strategy): bad %s %q: %v", k, v, err)
			}
			if k == "minimum" {
				m.minimum = &f
			} else {
				m.maximum = &f
			}
		default:
			return m, fmt.Errorf("sdx(strategy): unknown metadata key %q", k)
		}
	}
	return m, nil
}

// apply decorates a freshly derived schema with the parsed metadata.
func (m fieldMeta) apply(s *schema.Schema) {
	if m.title != "" {
		s.Title = m.title
	}
	if m.description != "" {
		s.Description = m.description
	}
	if m.format != "" {
		s.Format = m.format
	}
	if m.pattern != "" {
		s.Pattern = m.pattern
	}
	if len(m.enum) > 0 {
		s.Enum = m.enum
	}
	if m.minimum != nil {
		s.Minimum = m.minimum
	}
	if m.maximum != nil {
		s.Maximum = m.maximum
	}
}
