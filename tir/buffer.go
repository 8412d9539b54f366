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

// Buffer describes a multi-dimensional memory region. Scope names the
// storage class, e.g. "global", "shared.dyn" or "local".
type Buffer struct {
	Name  string
	Type  DType
	Shape []PrimExpr
	Scope string
}

// ShapeDim returns the extent of dimension d if it is a compile-time
// integer constant.
func (b *Buffer) ShapeDim(d int) (int64, bool) {
	if d < 0 || d >= len(b.Shape) {
		return 0, false
	}
	return asConstInt(b.Shape[d])
}

// FullRegion returns the BufferRegion covering all of b.
func (b *Buffer) FullRegion() BufferRegion {
	region := make([]Range, len(b.Shape))
	for i, extent := range b.Shape {
		region[i] = Range{Min: Int(0), Extent: extent}
	}
	return BufferRegion{Buffer: b, Region: region}
}
