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

package common

import "dirpx.dev/sdx/apis"

// Describer augments apis.Documenter with versioning metadata about a
// described type.
//
// # Overview
//
// Describer is a higher-level contract that extends Documenter (title and
// description, consumed by the reflect-based derivation when building a
// type's definition) with a schema version. While title and description are
// purely presentational, the version participates in:
//
//   - Schema registries and compatibility checks.
//   - Documentation and API browsers that render multiple versions.
//   - Clients that adapt to different shapes of the same logical entity.
//
// All methods on Describer are type-level: they describe the *kind* of
// entity, not any particular instance. Implementations SHOULD return values
// that are stable for a given version of the type's schema and do not depend
// on mutable runtime state.
//
// # Usage
//
//	type User struct {
//	    ID   string `json:"id"`
//	    Name string `json:"name"`
//	}
//
//	func (User) SchemaTitle() string       { return "User" }
//	func (User) SchemaDescription() string { return "User account in the system" }
//	func (User) SchemaVersion() string     { return "v1" }
//
// The derivation walker attaches title and description to the derived
// object schema; version-aware tooling can additionally consult
// SchemaVersion through this interface.
//
// # Contract
//
//   - All methods MUST be safe for concurrent use by multiple goroutines.
//   - All methods SHOULD be inexpensive and ideally allocation-free
//     (for example, returning string literals or precomputed values).
//   - Implementations MUST NOT perform blocking operations or I/O.
//   - Returned values SHOULD change only on deliberate schema changes,
//     never on transient runtime conditions.
type Describer interface {
	apis.Documenter

	// SchemaVersion returns a schema or contract version for the type.
	//
	// Typical representations include simple labels ("v1", "v2"),
	// semantic versions ("v1.2.0"), or date-based versions ("2024-01-15").
	// The value MUST change when the externally visible JSON shape of the
	// type changes incompatibly, and SHOULD remain constant across
	// deployments of the same build. An empty string means "version
	// unknown" rather than "no version"; callers MUST handle it.
	SchemaVersion() string
}
