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
	"strings"
)

// Strategy controls how derived schemas are memoized.
//
// # Overview
//
// Schema derivation is a pure function of (type, configuration), so its
// results can be cached for the lifetime of the process. Strategy is a small
// enumerated type selecting the memoization behavior of the reflect-based
// derivation step. It does not configure capacity or expiry; derived schemas
// are expected to be few (one per domain type) and live until process exit.
//
// # Values
//
//   - Memo         — cache derived schemas per (type, config) key.
//   - Singleflight — Memo, plus collapsing of concurrent first derivations
//     of the same key into a single execution.
//   - None         — derive from scratch on every call.
//
// # Contract
//
//   - Strategy values MUST be safe to share across goroutines (plain ints).
//   - Cached schemas MUST be treated as immutable by callers; mutating a
//     schema returned from a memoizing deriver corrupts every future caller.
//   - None MUST NOT retain results across calls in a way that affects
//     observable behavior; it exists for tests and for callers that mutate
//     returned schemas deliberately.
type Strategy int

const (
	// Memo caches each derived schema under a (type, config) key.
	//
	// This is the default. Derivation happens once per type, typically at
	// process start; subsequent calls return the cached value. Two
	// goroutines racing on the same uncached key may both derive; both
	// results are identical and either may end up cached.
	Memo Strategy = iota

	// Singleflight behaves like Memo and additionally guarantees that
	// concurrent first derivations of the same key execute the derivation
	// exactly once, with all callers receiving the same result.
	//
	// Prefer Singleflight when many goroutines may request the same large
	// type graph at startup and duplicate reflection work matters.
	Singleflight

	// None disables memoization. Every call re-derives the schema.
	//
	// Useful in tests comparing cached against fresh results, and for
	// callers that decorate the returned schema in place.
	None
)

// String implements fmt.Stringer. Unknown values render as "Unknown(<n>)"
// rather than panicking so corrupted values surface safely in logs.
func (s Strategy) String() string {
	switch s {
	case Memo:
		return "Memo"
	case Singleflight:
		return "Singleflight"
	case None:
		return "None"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Parse converts a textual representation into a Strategy. Matching is
// case-insensitive and surrounding whitespace is trimmed. On failure it
// returns Memo and a non-nil error; callers must not rely on the returned
// Strategy in the error case.
func Parse(s string) (Strategy, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Memo, fmt.Errorf("cache: empty strategy")
	}

	switch strings.ToUpper(trimmed) {
	case "MEMO":
		return Memo, nil
	case "SINGLEFLIGHT":
		return Singleflight, nil
	case "NONE":
		return None, nil
	default:
		return Memo, fmt.Errorf("cache: unknown strategy %q", s)
	}
}

// MustParse is Parse for hard-coded inputs; it panics on invalid input.
func MustParse(s string) Strategy {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// MarshalText implements encoding.TextMarshaler using the String form.
func (s Strategy) MarshalText() ([]byte, error) {
	switch s {
	case Memo, Singleflight, None:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("cache: cannot marshal unknown strategy %d", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler via Parse.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
