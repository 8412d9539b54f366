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

// DType names an element type, e.g. "int32", "float16" or "handle".
type DType string

// Common element types.
const (
	Int32DType   DType = "int32"
	Int64DType   DType = "int64"
	Float16DType DType = "float16"
	Float32DType DType = "float32"
	BoolDType    DType = "bool"
	HandleDType  DType = "handle"
)

// PrimExpr is a scalar expression node. The set of implementations is
// closed; transforms dispatch over it with an exhaustive type switch.
type PrimExpr interface {
	DType() DType
	isPrimExpr()
}

// Var is a scalar variable reference.
type Var struct {
	Name string
	Type DType
}

// IntImm is an integer literal.
type IntImm struct {
	Type  DType
	Value int64
}

// FloatImm is a floating-point literal.
type FloatImm struct {
	Type  DType
	Value float64
}

// StringImm is a string literal, used for intrinsic mode arguments.
type StringImm struct {
	Value string
}

// BinOp enumerates binary operators.
type BinOp int

// Binary operators. FloorDiv and FloorMod round toward negative infinity,
// matching the index arithmetic of the schedule language.
const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpFloorDiv
	OpFloorMod
	OpBitXor
	OpLT
	OpGE
)

// BinaryExpr applies Op to two operands of the same dtype.
type BinaryExpr struct {
	Op   BinOp
	A, B PrimExpr
}

// Call invokes a named intrinsic with positional arguments.
type Call struct {
	Type DType
	Op   string
	Args []PrimExpr
}

func (v *Var) DType() DType       { return v.Type }
func (i *IntImm) DType() DType    { return i.Type }
func (f *FloatImm) DType() DType  { return f.Type }
func (s *StringImm) DType() DType { return HandleDType }
func (c *Call) DType() DType      { return c.Type }

func (b *BinaryExpr) DType() DType {
	if b.Op == OpLT || b.Op == OpGE {
		return BoolDType
	}
	return b.A.DType()
}

func (*Var) isPrimExpr()        {}
func (*IntImm) isPrimExpr()     {}
func (*FloatImm) isPrimExpr()   {}
func (*StringImm) isPrimExpr()  {}
func (*BinaryExpr) isPrimExpr() {}
func (*Call) isPrimExpr()       {}

// Int returns an int32 literal.
func Int(v int64) *IntImm { return &IntImm{Type: Int32DType, Value: v} }

// NewVar returns an int32 loop/index variable.
func NewVar(name string) *Var { return &Var{Name: name, Type: Int32DType} }

// asConstInt reports the value of e if it is an integer literal.
func asConstInt(e PrimExpr) (int64, bool) {
	if imm, ok := e.(*IntImm); ok {
		return imm.Value, true
	}
	return 0, false
}

func isConstInt(e PrimExpr, v int64) bool {
	c, ok := asConstInt(e)
	return ok && c == v
}

func intLike(e PrimExpr, v int64) PrimExpr {
	return &IntImm{Type: e.DType(), Value: v}
}

// Add returns a + b, folding constant operands.
func Add(a, b PrimExpr) PrimExpr {
	if x, ok := asConstInt(a); ok {
		if y, ok := asConstInt(b); ok {
			return &IntImm{Type: a.DType(), Value: x + y}
		}
	}
	if isConstInt(a, 0) {
		return b
	}
	if isConstInt(b, 0) {
		return a
	}
	return &BinaryExpr{Op: OpAdd, A: a, B: b}
}

// Sub returns a - b, folding constant operands.
func Sub(a, b PrimExpr) PrimExpr {
	if x, ok := asConstInt(a); ok {
		if y, ok := asConstInt(b); ok {
			return &IntImm{Type: a.DType(), Value: x - y}
		}
	}
	if isConstInt(b, 0) {
		return a
	}
	return &BinaryExpr{Op: OpSub, A: a, B: b}
}

// Mul returns a * b, folding constant operands and the 0/1 identities.
func Mul(a, b PrimExpr) PrimExpr {
	if x, ok := asConstInt(a); ok {
		if y, ok := asConstInt(b); ok {
			return &IntImm{Type: a.DType(), Value: x * y}
		}
	}
	if isConstInt(a, 0) || isConstInt(b, 0) {
		return intLike(a, 0)
	}
	if isConstInt(a, 1) {
		return b
	}
	if isConstInt(b, 1) {
		return a
	}
	return &BinaryExpr{Op: OpMul, A: a, B: b}
}

// FloorDiv returns a / b rounded toward negative infinity, folding
// constant operands. Division by a constant zero is not folded.
func FloorDiv(a, b PrimExpr) PrimExpr {
	if x, ok := asConstInt(a); ok {
		if y, ok := asConstInt(b); ok && y != 0 {
			return &IntImm{Type: a.DType(), Value: floordiv(x, y)}
		}
	}
	if isConstInt(b, 1) {
		return a
	}
	return &BinaryExpr{Op: OpFloorDiv, A: a, B: b}
}

// FloorMod returns a mod b with the sign of b, folding constant operands.
func FloorMod(a, b PrimExpr) PrimExpr {
	if x, ok := asConstInt(a); ok {
		if y, ok := asConstInt(b); ok && y != 0 {
			return &IntImm{Type: a.DType(), Value: floormod(x, y)}
		}
	}
	if isConstInt(b, 1) {
		return intLike(a, 0)
	}
	return &BinaryExpr{Op: OpFloorMod, A: a, B: b}
}

// BitXor returns a ^ b, folding constant operands.
func BitXor(a, b PrimExpr) PrimExpr {
	if x, ok := asConstInt(a); ok {
		if y, ok := asConstInt(b); ok {
			return &IntImm{Type: a.DType(), Value: x ^ y}
		}
	}
	if isConstInt(a, 0) {
		return b
	}
	if isConstInt(b, 0) {
		return a
	}
	return &BinaryExpr{Op: OpBitXor, A: a, B: b}
}

// LT returns the boolean expression a < b.
func LT(a, b PrimExpr) PrimExpr { return &BinaryExpr{Op: OpLT, A: a, B: b} }

// GE returns the boolean expression a >= b.
func GE(a, b PrimExpr) PrimExpr { return &BinaryExpr{Op: OpGE, A: a, B: b} }

func floordiv(x, y int64) int64 {
	q := x / y
	if (x%y != 0) && ((x < 0) != (y < 0)) {
		q--
	}
	return q
}

func floormod(x, y int64) int64 {
	r := x % y
	if r != 0 && ((r < 0) != (y < 0)) {
		r += y
	}
	return r
}
