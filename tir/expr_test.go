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

import "testing"

func constValue(t *testing.T, e PrimExpr) int64 {
	t.Helper()
	imm, ok := e.(*IntImm)
	if !ok {
		t.Fatalf("expression did not fold: %s", ExprString(e))
	}
	return imm.Value
}

func TestConstantFolding(t *testing.T) {
	tests := []struct {
		name string
		expr PrimExpr
		want int64
	}{
		{"add", Add(Int(2), Int(3)), 5},
		{"sub", Sub(Int(2), Int(3)), -1},
		{"mul", Mul(Int(4), Int(3)), 12},
		{"floordiv", FloorDiv(Int(13), Int(8)), 1},
		{"floordiv_negative", FloorDiv(Int(-13), Int(8)), -2},
		{"floormod", FloorMod(Int(13), Int(8)), 5},
		{"floormod_negative", FloorMod(Int(-13), Int(8)), 3},
		{"xor", BitXor(Int(3), Int(1)), 2},
		{"nested", Add(Mul(FloorDiv(Int(13), Int(8)), Int(8)), FloorMod(Int(13), Int(8))), 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := constValue(t, tt.expr); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIdentityFolding(t *testing.T) {
	x := NewVar("x")

	if Add(x, Int(0)) != PrimExpr(x) {
		t.Error("x + 0 did not return x")
	}
	if Add(Int(0), x) != PrimExpr(x) {
		t.Error("0 + x did not return x")
	}
	if Mul(x, Int(1)) != PrimExpr(x) {
		t.Error("x * 1 did not return x")
	}
	if got := constValue(t, Mul(x, Int(0))); got != 0 {
		t.Errorf("x * 0 = %d, want 0", got)
	}
	if FloorDiv(x, Int(1)) != PrimExpr(x) {
		t.Error("x // 1 did not return x")
	}
	if got := constValue(t, FloorMod(x, Int(1))); got != 0 {
		t.Errorf("x %% 1 = %d, want 0", got)
	}
	if BitXor(x, Int(0)) != PrimExpr(x) {
		t.Error("x ^ 0 did not return x")
	}
}

func TestSymbolicExpressionsDoNotFold(t *testing.T) {
	x, y := NewVar("x"), NewVar("y")
	e := Add(x, y)
	bin, ok := e.(*BinaryExpr)
	if !ok || bin.Op != OpAdd || bin.A != PrimExpr(x) || bin.B != PrimExpr(y) {
		t.Errorf("x + y built %s", ExprString(e))
	}
	if e.DType() != Int32DType {
		t.Errorf("dtype = %s, want int32", e.DType())
	}
}

func TestDivisionByZeroIsNotFolded(t *testing.T) {
	e := FloorDiv(Int(1), Int(0))
	if _, ok := e.(*BinaryExpr); !ok {
		t.Errorf("1 // 0 folded to %s", ExprString(e))
	}
	m := FloorMod(Int(1), Int(0))
	if _, ok := m.(*BinaryExpr); !ok {
		t.Errorf("1 %% 0 folded to %s", ExprString(m))
	}
}

func TestComparisonDType(t *testing.T) {
	x := NewVar("x")
	if got := LT(x, Int(4)).DType(); got != BoolDType {
		t.Errorf("LT dtype = %s, want bool", got)
	}
	if got := GE(x, Int(4)).DType(); got != BoolDType {
		t.Errorf("GE dtype = %s, want bool", got)
	}
}

func TestBufferShapeDim(t *testing.T) {
	b := &Buffer{
		Name:  "A_shared",
		Type:  Float16DType,
		Shape: []PrimExpr{Int(16), NewVar("n")},
		Scope: "shared.dyn",
	}

	if v, ok := b.ShapeDim(0); !ok || v != 16 {
		t.Errorf("ShapeDim(0) = %d, %v", v, ok)
	}
	if _, ok := b.ShapeDim(1); ok {
		t.Error("ShapeDim(1) reported a symbolic extent as constant")
	}
	if _, ok := b.ShapeDim(2); ok {
		t.Error("ShapeDim(2) out of range lookup succeeded")
	}
}
