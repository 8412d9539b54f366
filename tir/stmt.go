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

// Stmt is a statement node. The set of implementations is closed;
// transforms dispatch over it with an exhaustive type switch so that a new
// statement kind breaks every transform at compile time rather than at run
// time.
type Stmt interface {
	isStmt()
}

// SeqStmt is an ordered sequence of statements.
type SeqStmt struct {
	Seq []Stmt
}

// ForKind classifies a loop.
type ForKind int

// Loop kinds.
const (
	ForSerial ForKind = iota
	ForParallel
	ForVectorized
	ForUnrolled
	ForThreadBinding
)

// For is a loop statement. ThreadBinding is non-nil only for
// ForThreadBinding loops.
type For struct {
	LoopVar       *Var
	Min           PrimExpr
	Extent        PrimExpr
	Kind          ForKind
	Body          Stmt
	ThreadBinding *IterVar
	Annotations   map[string]string
}

// IfThenElse is a conditional statement. Else may be nil.
type IfThenElse struct {
	Condition PrimExpr
	Then      Stmt
	Else      Stmt
}

// BufferStore writes Value to Buffer at Indices.
type BufferStore struct {
	Buffer  *Buffer
	Value   PrimExpr
	Indices []PrimExpr
}

// Evaluate executes an expression for its side effect, typically an
// intrinsic Call.
type Evaluate struct {
	Value PrimExpr
}

// Range is a half-open interval [Min, Min+Extent).
type Range struct {
	Min    PrimExpr
	Extent PrimExpr
}

// IterVarType classifies a block iteration variable.
type IterVarType int

// Iteration variable types.
const (
	IterData IterVarType = iota
	IterReduce
	IterThreadIndex
)

// IterVar binds a variable to an iteration domain. ThreadTag is set for
// thread-index bindings, e.g. "threadIdx.x".
type IterVar struct {
	Var       *Var
	Dom       Range
	IterType  IterVarType
	ThreadTag string
}

// BufferRegion is a multi-dimensional region of a buffer.
type BufferRegion struct {
	Buffer *Buffer
	Region []Range
}

// MatchBufferRegion remaps a region of a source buffer to a sub-buffer
// view.
type MatchBufferRegion struct {
	Buffer *Buffer
	Source BufferRegion
}

// Block is a schedulable unit of computation with explicit read/write
// access summaries and string annotations.
type Block struct {
	IterVars     []IterVar
	Reads        []BufferRegion
	Writes       []BufferRegion
	NameHint     string
	Body         Stmt
	Init         Stmt
	AllocBuffers []*Buffer
	MatchBuffers []MatchBufferRegion
	Annotations  map[string]string
}

// BlockRealize binds concrete iteration values to a Block under a guard
// predicate.
type BlockRealize struct {
	IterValues []PrimExpr
	Predicate  PrimExpr
	Block      *Block
}

func (*SeqStmt) isStmt()      {}
func (*For) isStmt()          {}
func (*IfThenElse) isStmt()   {}
func (*BufferStore) isStmt()  {}
func (*Evaluate) isStmt()     {}
func (*Block) isStmt()        {}
func (*BlockRealize) isStmt() {}
