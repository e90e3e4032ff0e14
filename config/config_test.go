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

package config_test

import (
	"reflect"
	"testing"

	"dirpx.dev/sdx/config"
	cache "dirpx.dev/sdx/sdxapi/cache/strategy"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.FullyQualified != config.DefaultFullyQualified {
		t.Fatalf("FullyQualified = %v, want %v", got.FullyQualified, config.DefaultFullyQualified)
	}
	if got.IncludeBuiltins != config.DefaultIncludeBuiltins {
		t.Fatalf("IncludeBuiltins = %v, want %v", got.IncludeBuiltins, config.DefaultIncludeBuiltins)
	}
	if got.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want %d", got.MaxUnwrap, config.DefaultMaxUnwrap)
	}
	if got.MaxDepth != config.DefaultMaxDepth {
		t.Fatalf("MaxDepth = %d, want %d", got.MaxDepth, config.DefaultMaxDepth)
	}
	if got.FieldTag != config.DefaultFieldTag {
		t.Fatalf("FieldTag = %q, want %q", got.FieldTag, config.DefaultFieldTag)
	}
	if got.MetaTag != config.DefaultMetaTag {
		t.Fatalf("MetaTag = %q, want %q", got.MetaTag, config.DefaultMetaTag)
	}
	if got.AllowAdditional != config.DefaultAllowAdditional {
		t.Fatalf("AllowAdditional = %v, want %v", got.AllowAdditional, config.DefaultAllowAdditional)
	}
	if got.Cache != config.DefaultCache {
		t.Fatalf("Cache = %v, want %v", got.Cache, config.DefaultCache)
	}
	if got.HideFields != nil {
		t.Fatalf("HideFields = %v, want nil", got.HideFields)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if !reflect.DeepEqual(got, def) {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithFullyQualified(t *testing.T) {
	c := config.NewConfig(config.WithFullyQualified(false))
	if c.FullyQualified {
		t.Fatalf("FullyQualified = %v, want false", c.FullyQualified)
	}
}

func TestWithIncludeBuiltins(t *testing.T) {
	c := config.NewConfig(config.WithIncludeBuiltins(false))
	if c.IncludeBuiltins {
		t.Fatalf("IncludeBuiltins = %v, want false", c.IncludeBuiltins)
	}
}

func TestWithMaxUnwrap(t *testing.T) {
	c := config.NewConfig(config.WithMaxUnwrap(3))
	if c.MaxUnwrap != 3 {
		t.Fatalf("MaxUnwrap = %d, want 3", c.MaxUnwrap)
	}

	neg := config.NewConfig(config.WithMaxUnwrap(-1))
	if neg.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want default %d", neg.MaxUnwrap, config.DefaultMaxUnwrap)
	}
}

func TestWithMaxDepth(t *testing.T) {
	c := config.NewConfig(config.WithMaxDepth(5))
	if c.MaxDepth != 5 {
		t.Fatalf("MaxDepth = %d, want 5", c.MaxDepth)
	}

	zero := config.NewConfig(config.WithMaxDepth(0))
	if zero.MaxDepth != config.DefaultMaxDepth {
		t.Fatalf("MaxDepth = %d, want default %d", zero.MaxDepth, config.DefaultMaxDepth)
	}
}

func TestWithTags(t *testing.T) {
	c := config.NewConfig(config.WithFieldTag("yaml"), config.WithMetaTag("doc"))
	if c.FieldTag != "yaml" || c.MetaTag != "doc" {
		t.Fatalf("tags = (%q, %q), want (yaml, doc)", c.FieldTag, c.MetaTag)
	}

	empty := config.NewConfig(config.WithFieldTag(""), config.WithMetaTag(""))
	if empty.FieldTag != config.DefaultFieldTag || empty.MetaTag != config.DefaultMetaTag {
		t.Fatalf("empty tags = (%q, %q), want defaults", empty.FieldTag, empty.MetaTag)
	}
}

func TestWithAllowAdditional(t *testing.T) {
	c := config.NewConfig(config.WithAllowAdditional(true))
	if !c.AllowAdditional {
		t.Fatalf("AllowAdditional = %v, want true", c.AllowAdditional)
	}
}

func TestWithHideFields_Appends(t *testing.T) {
	c := config.NewConfig(
		config.WithHideFields("*.secret"),
		config.WithHideFields("Account.password", "Account.token"),
	)
	want := []string{"*.secret", "Account.password", "Account.token"}
	if !reflect.DeepEqual(c.HideFields, want) {
		t.Fatalf("HideFields = %v, want %v", c.HideFields, want)
	}
}

func TestWithCache(t *testing.T) {
	c := config.NewConfig(config.WithCache(cache.None))
	if c.Cache != cache.None {
		t.Fatalf("Cache = %v, want %v", c.Cache, cache.None)
	}
}
