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

import (
	"strings"
	"testing"
)

func TestExprString(t *testing.T) {
	x := NewVar("x")
	tests := []struct {
		expr PrimExpr
		want string
	}{
		{Int(42), "42"},
		{x, "x"},
		{Add(x, Int(1)), "(x + 1)"},
		{FloorDiv(x, Int(8)), "(x // 8)"},
		{BitXor(x, NewVar("y")), "(x ^ y)"},
		{&StringImm{Value: ".b16"}, `".b16"`},
		{&Call{Type: HandleDType, Op: "tir.addr", Args: []PrimExpr{x, Int(0)}}, "tir.addr(x, 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := ExprString(tt.expr); got != tt.want {
				t.Errorf("ExprString = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStmtString(t *testing.T) {
	buf := &Buffer{Name: "A_shared", Type: Float16DType, Shape: []PrimExpr{Int(16), Int(64)}, Scope: "shared.dyn"}
	i := NewVar("i")
	stmt := &For{
		LoopVar: i,
		Min:     Int(0),
		Extent:  Int(16),
		Kind:    ForSerial,
		Body: &BufferStore{
			Buffer:  buf,
			Value:   &FloatImm{Type: Float16DType, Value: 0},
			Indices: []PrimExpr{i, Int(3)},
		},
	}

	got := StmtString(stmt)
	for _, want := range []string{"for i in [0, 16) serial:", "A_shared[i, 3] = 0"} {
		if !strings.Contains(got, want) {
			t.Errorf("StmtString output missing %q:\n%s", want, got)
		}
	}
}

func TestBlockStringIncludesAnnotations(t *testing.T) {
	blk := &Block{
		NameHint:    "A_stage",
		Body:        &Evaluate{Value: Int(0)},
		Annotations: map[string]string{"permuted_layout": "g2sA_shared"},
	}
	br := &BlockRealize{Predicate: &IntImm{Type: BoolDType, Value: 1}, Block: blk}

	got := StmtString(br)
	if !strings.Contains(got, `block "A_stage" {permuted_layout="g2sA_shared"}:`) {
		t.Errorf("block header missing annotation:\n%s", got)
	}
}

func TestFuncString(t *testing.T) {
	f := &PrimFunc{
		Params: []*Var{{Name: "a", Type: HandleDType}},
		Body:   &Evaluate{Value: Int(0)},
	}
	got := FuncString(f)
	if !strings.Contains(got, "func(a: handle):") || !strings.Contains(got, "eval 0") {
		t.Errorf("unexpected FuncString output:\n%s", got)
	}
}
