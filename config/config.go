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

package config

import (
	"dirpx.dev/sdx/apis"
	cache "dirpx.dev/sdx/sdxapi/cache/strategy"
)

const (
	// DefaultFullyQualified represents the default for FullyQualified.
	// Schema names carry the full, dot-normalized package path.
	DefaultFullyQualified = true
	// DefaultIncludeBuiltins represents the default for IncludeBuiltins.
	// When true, built-in named types may receive schema names.
	DefaultIncludeBuiltins = true
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultMapPreferElem represents the default for MapPreferElem.
	// When true, map value types are preferred when searching for named inner types.
	DefaultMapPreferElem = true
	// DefaultMaxDepth represents the default for MaxDepth. Named types
	// recurse via references, so 32 only bounds anonymous nesting.
	DefaultMaxDepth = 32
	// DefaultFieldTag represents the default for FieldTag.
	DefaultFieldTag = "json"
	// DefaultMetaTag represents the default for MetaTag.
	DefaultMetaTag = "schema"
	// DefaultAllowAdditional represents the default for AllowAdditional.
	// Derived objects reject undeclared properties.
	DefaultAllowAdditional = false
	// DefaultCache represents the default memoization policy.
	DefaultCache = cache.Memo
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure depth limits are valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		FullyQualified:  DefaultFullyQualified,
		IncludeBuiltins: DefaultIncludeBuiltins,
		MaxUnwrap:       DefaultMaxUnwrap,
		MapPreferElem:   DefaultMapPreferElem,
		MaxDepth:        DefaultMaxDepth,
		FieldTag:        DefaultFieldTag,
		MetaTag:         DefaultMetaTag,
		AllowAdditional: DefaultAllowAdditional,
		Cache:           DefaultCache,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithFullyQualified sets the FullyQualified option.
func WithFullyQualified(qualified bool) Option {
	return func(c *apis.Config) {
		c.FullyQualified = qualified
	}
}

// WithIncludeBuiltins sets the IncludeBuiltins option.
func WithIncludeBuiltins(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeBuiltins = include
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithMapPreferElem sets the MapPreferElem option.
func WithMapPreferElem(prefer bool) Option {
	return func(c *apis.Config) {
		c.MapPreferElem = prefer
	}
}

// WithMaxDepth sets the MaxDepth option.
// A non-positive value resets to the default.
func WithMaxDepth(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = max
	}
}

// WithFieldTag sets the FieldTag option. Empty resets to the default.
func WithFieldTag(tag string) Option {
	return func(c *apis.Config) {
		if tag == "" {
			c.FieldTag = DefaultFieldTag
			return
		}
		c.FieldTag = tag
	}
}

// WithMetaTag sets the MetaTag option. Empty resets to the default.
func WithMetaTag(tag string) Option {
	return func(c *apis.Config) {
		if tag == "" {
			c.MetaTag = DefaultMetaTag
			return
		}
		c.MetaTag = tag
	}
}

// WithAllowAdditional sets the AllowAdditional option.
func WithAllowAdditional(allow bool) Option {
	return func(c *apis.Config) {
		c.AllowAdditional = allow
	}
}

// WithHideFields appends glob patterns of "SchemaName.property" paths to
// omit from derived object schemas.
func WithHideFields(patterns ...string) Option {
	return func(c *apis.Config) {
		c.HideFields = append(c.HideFields, patterns...)
	}
}

// WithCache sets the memoization policy for reflect-based derivation.
func WithCache(s cache.Strategy) Option {
	return func(c *apis.Config) {
		c.Cache = s
	}
}
