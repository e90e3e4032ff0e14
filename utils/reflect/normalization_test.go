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

package reflect_test

import (
	"errors"
	"reflect"
	"testing"

	"dirpx.dev/sdx/apis"
	"dirpx.dev/sdx/config"
	uref "dirpx.dev/sdx/utils/reflect"
)

type inner struct{}

func TestNormalize_Containers(t *testing.T) {
	cfg := config.DefaultConfig()
	want := reflect.TypeOf(inner{})

	cases := []struct {
		name string
		in   reflect.Type
	}{
		{"plain", reflect.TypeOf(inner{})},
		{"pointer", reflect.TypeOf(&inner{})},
		{"double pointer", reflect.TypeOf((**inner)(nil))},
		{"slice", reflect.TypeOf([]inner{})},
		{"slice of pointers", reflect.TypeOf([]*inner{})},
		{"array", reflect.TypeOf([3]inner{})},
		{"chan", reflect.TypeOf(make(chan inner))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Normalize(tc.in, cfg)
			if err != nil {
				t.Fatalf("Normalize(%v): unexpected error: %v", tc.in, err)
			}
			if got != want {
				t.Fatalf("Normalize(%v) = %v, want %v", tc.in, got, want)
			}
		})
	}
}

func TestNormalize_MapPreference(t *testing.T) {
	mapType := reflect.TypeOf(map[string]inner{})

	// Prefer element (default): map[string]inner -> inner
	cfgElem := config.DefaultConfig()
	cfgElem.MapPreferElem = true
	got, err := uref.Normalize(mapType, cfgElem)
	if err != nil || got != reflect.TypeOf(inner{}) {
		t.Fatalf("prefer elem: got (%v,%v), want inner", got, err)
	}

	// Prefer key: map[string]inner -> string (builtins are named)
	cfgKey := config.DefaultConfig()
	cfgKey.MapPreferElem = false
	got, err = uref.Normalize(mapType, cfgKey)
	if err != nil || got != reflect.TypeOf("") {
		t.Fatalf("prefer key: got (%v,%v), want string", got, err)
	}
}

func TestNormalize_MapWrappedPreferredSide(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MapPreferElem = true
	want := reflect.TypeOf(inner{})

	// The preferred side is unwrapped before the key is consulted.
	cases := []struct {
		name string
		in   reflect.Type
	}{
		{"pointer elem", reflect.TypeOf(map[string]*inner{})},
		{"slice elem", reflect.TypeOf(map[string][]inner{})},
		{"nested map elem", reflect.TypeOf(map[string]map[string]*inner{})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Normalize(tc.in, cfg)
			if err != nil {
				t.Fatalf("Normalize(%v): unexpected error: %v", tc.in, err)
			}
			if got != want {
				t.Fatalf("Normalize(%v) = %v, want %v", tc.in, got, want)
			}
		})
	}

	// A dead-end preferred side still falls back to the key.
	cfgKey := config.DefaultConfig()
	cfgKey.MapPreferElem = true
	dead := reflect.TypeOf(map[string][]struct{ X int }{})
	got, err := uref.Normalize(dead, cfgKey)
	if err != nil || got != reflect.TypeOf("") {
		t.Fatalf("dead-end elem: got (%v,%v), want string", got, err)
	}
}

func TestNormalize_Errors(t *testing.T) {
	cfg := config.DefaultConfig()

	if _, err := uref.Normalize(nil, cfg); !errors.Is(err, uref.ErrReflectNilType) {
		t.Fatalf("nil type: want ErrReflectNilType, got %v", err)
	}

	// Anonymous struct has no name.
	if _, err := uref.Normalize(reflect.TypeOf(struct{ X int }{}), cfg); !errors.Is(err, uref.ErrReflectTypeNotNamed) {
		t.Fatalf("anonymous struct: want ErrReflectTypeNotNamed, got %v", err)
	}

	// MaxUnwrap = 1 cannot reach inner through **inner.
	shallow := apis.Config{MaxUnwrap: 1, MapPreferElem: true}
	if _, err := uref.Normalize(reflect.TypeOf((**inner)(nil)), shallow); !errors.Is(err, uref.ErrReflectTypeNotNamed) {
		t.Fatalf("MaxUnwrap=1: want ErrReflectTypeNotNamed, got %v", err)
	}
}
