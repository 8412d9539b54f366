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

// Package tir implements a small tensor-program intermediate representation.
//
// The IR is a statement/expression tree rooted at a PrimFunc. Every node is
// an immutable value: transforms never mutate a node in place, they build a
// replacement node with the changed fields and reuse the untouched subtrees
// by reference.
//
// # Node Kinds
//
// Expressions (PrimExpr): Var, IntImm, FloatImm, StringImm, BinaryExpr and
// Call. Statements (Stmt): SeqStmt, For, IfThenElse, BufferStore, Evaluate,
// Block and BlockRealize.
//
// # Expression Constructors
//
// The constructor functions Add, Sub, Mul, FloorDiv, FloorMod and BitXor
// fold constant operands, so index arithmetic over literal indices reduces
// to an IntImm:
//
//	col := tir.Add(tir.Mul(tir.Int(2), tir.Int(8)), tir.Int(5))
//	// col is IntImm(21), not a BinaryExpr tree
//
// Folding is what lets layout transforms treat symbolic and concrete
// indices uniformly.
package tir
