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

package tir

// PrimFunc is a function-level IR fragment: parameters, an attribute map
// and a single body statement. Transforms consume a PrimFunc and return a
// new one; the input is never mutated.
type PrimFunc struct {
	Params []*Var
	Body   Stmt
	Attrs  map[string]string
}

// WithBody returns a copy of f with the body replaced. All other fields
// are shared with f.
func (f *PrimFunc) WithBody(body Stmt) *PrimFunc {
	return &PrimFunc{Params: f.Params, Body: body, Attrs: f.Attrs}
}
