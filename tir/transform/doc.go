// Copyright 2026 go-tensorir Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package transform implements function-level IR passes and the registry
// that pipelines them.
//
// A pass maps one tir.PrimFunc to a new one, returning non-fatal
// diagnostics alongside the result. Passes register themselves under a
// stable snake_case name so a pipeline can be assembled by name:
//
//	pass, _ := transform.Lookup("inject_permuted_layout")
//	fn, diags, err := pass.Apply(fn)
//
// # Passes
//
//   - inject_permuted_layout: rewrites shared-memory index expressions in
//     annotated blocks so matrix-multiply staging avoids bank conflicts.
package transform
