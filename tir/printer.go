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
	"fmt"
	"sort"
	"strings"
)

// ExprString renders an expression in a script-like text form, for
// diagnostics and debugging output.
func ExprString(e PrimExpr) string {
	switch n := e.(type) {
	case nil:
		return "<nil>"
	case *Var:
		return n.Name
	case *IntImm:
		return fmt.Sprintf("%d", n.Value)
	case *FloatImm:
		return fmt.Sprintf("%g", n.Value)
	case *StringImm:
		return fmt.Sprintf("%q", n.Value)
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", ExprString(n.A), binOpToken(n.Op), ExprString(n.B))
	case *Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = ExprString(a)
		}
		return fmt.Sprintf("%s(%s)", n.Op, strings.Join(args, ", "))
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

func binOpToken(op BinOp) string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpFloorDiv:
		return "//"
	case OpFloorMod:
		return "%"
	case OpBitXor:
		return "^"
	case OpLT:
		return "<"
	case OpGE:
		return ">="
	default:
		return "?"
	}
}

func forKindToken(k ForKind) string {
	switch k {
	case ForParallel:
		return "parallel"
	case ForVectorized:
		return "vectorized"
	case ForUnrolled:
		return "unroll"
	case ForThreadBinding:
		return "thread_binding"
	default:
		return "serial"
	}
}

// StmtString renders a statement tree with two-space indentation.
func StmtString(s Stmt) string {
	var sb strings.Builder
	writeStmt(&sb, s, 0)
	return sb.String()
}

// FuncString renders a whole PrimFunc.
func FuncString(f *PrimFunc) string {
	var sb strings.Builder
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = fmt.Sprintf("%s: %s", p.Name, p.Type)
	}
	fmt.Fprintf(&sb, "func(%s):\n", strings.Join(params, ", "))
	writeStmt(&sb, f.Body, 1)
	return sb.String()
}

func writeStmt(sb *strings.Builder, s Stmt, depth int) {
	pad := strings.Repeat("  ", depth)
	switch n := s.(type) {
	case nil:
		return
	case *SeqStmt:
		for _, sub := range n.Seq {
			writeStmt(sb, sub, depth)
		}
	case *For:
		binding := ""
		if n.ThreadBinding != nil {
			binding = fmt.Sprintf(" bind(%q)", n.ThreadBinding.ThreadTag)
		}
		fmt.Fprintf(sb, "%sfor %s in [%s, %s) %s%s:\n", pad, n.LoopVar.Name,
			ExprString(n.Min), ExprString(Add(n.Min, n.Extent)), forKindToken(n.Kind), binding)
		writeStmt(sb, n.Body, depth+1)
	case *IfThenElse:
		fmt.Fprintf(sb, "%sif %s:\n", pad, ExprString(n.Condition))
		writeStmt(sb, n.Then, depth+1)
		if n.Else != nil {
			fmt.Fprintf(sb, "%selse:\n", pad)
			writeStmt(sb, n.Else, depth+1)
		}
	case *BufferStore:
		indices := make([]string, len(n.Indices))
		for i, idx := range n.Indices {
			indices[i] = ExprString(idx)
		}
		fmt.Fprintf(sb, "%s%s[%s] = %s\n", pad, n.Buffer.Name,
			strings.Join(indices, ", "), ExprString(n.Value))
	case *Evaluate:
		fmt.Fprintf(sb, "%seval %s\n", pad, ExprString(n.Value))
	case *Block:
		fmt.Fprintf(sb, "%sblock %q%s:\n", pad, n.NameHint, annotationSuffix(n.Annotations))
		if n.Init != nil {
			fmt.Fprintf(sb, "%s  init:\n", pad)
			writeStmt(sb, n.Init, depth+2)
		}
		writeStmt(sb, n.Body, depth+1)
	case *BlockRealize:
		writeStmt(sb, n.Block, depth)
	}
}

func annotationSuffix(ann map[string]string) string {
	if len(ann) == 0 {
		return ""
	}
	keys := make([]string, 0, len(ann))
	for k := range ann {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%q", k, ann[k])
	}
	return " {" + strings.Join(pairs, ", ") + "}"
}
