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

// tirdump runs a transform pipeline over a built-in demo function and
// prints the IR before and after, so pass behavior can be inspected
// without a frontend:
//
//	go run ./cmd/tirdump -passes inject_permuted_layout
//	go run ./cmd/tirdump -list
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/ajroetker/go-tensorir/tir"
	"github.com/ajroetker/go-tensorir/tir/transform"
)

func main() {
	listPasses := flag.Bool("list", false, "list registered passes and exit")
	passes := flag.String("passes", "inject_permuted_layout", "comma-separated pass pipeline")
	flag.Parse()

	if *listPasses {
		for _, name := range transform.Names() {
			pass := lo.Must(transform.Lookup(name))
			fmt.Printf("%-32s %s\n", name, pass.DisplayName())
		}
		return
	}

	fn := demoFunc()
	fmt.Println("=== before ===")
	fmt.Print(tir.FuncString(fn))

	out, err := transform.Sequential(fn, os.Stderr, strings.Split(*passes, ",")...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tirdump:", err)
		os.Exit(1)
	}

	fmt.Println("=== after ===")
	fmt.Print(tir.FuncString(out))
}

// demoFunc builds the matmul staging skeleton the permuted-layout pass
// targets: a global-to-shared copy for operand A followed by the
// shared-to-register matrix load.
func demoFunc() *tir.PrimFunc {
	shared := &tir.Buffer{
		Name:  "A_shared",
		Type:  tir.Float16DType,
		Shape: []tir.PrimExpr{tir.Int(16), tir.Int(64)},
		Scope: "shared.dyn",
	}
	global := &tir.Var{Name: "A", Type: tir.HandleDType}
	localFrag := &tir.Var{Name: "A_frag", Type: tir.HandleDType}

	tx := tir.NewVar("tx")
	v := tir.NewVar("v")
	row := tir.FloorDiv(tx, tir.Int(8))
	col := tir.Add(tir.Mul(tir.FloorMod(tx, tir.Int(8)), tir.Int(8)), v)

	store := &tir.For{
		LoopVar: v,
		Min:     tir.Int(0),
		Extent:  tir.Int(8),
		Kind:    tir.ForVectorized,
		Body: &tir.BufferStore{
			Buffer:  shared,
			Value:   &tir.Call{Type: tir.Float16DType, Op: "tir.load", Args: []tir.PrimExpr{global, tx}},
			Indices: []tir.PrimExpr{row, col},
		},
	}

	producer := &tir.BlockRealize{
		Predicate: &tir.IntImm{Type: tir.BoolDType, Value: 1},
		Block: &tir.Block{
			NameHint:    "A_shared_stage",
			Body:        store,
			Writes:      []tir.BufferRegion{shared.FullRegion()},
			Annotations: map[string]string{transform.PermutedLayoutKey: "g2sA_shared_dyn"},
		},
	}

	load := &tir.Evaluate{Value: &tir.Call{
		Type: tir.HandleDType,
		Op:   transform.OpLoadMatrix,
		Args: []tir.PrimExpr{
			tir.Int(0),
			tir.Int(4),
			&tir.StringImm{Value: ".b16"},
			localFrag,
			tir.Int(0),
			&tir.Call{
				Type: tir.HandleDType,
				Op:   transform.OpAccessPtr,
				Args: []tir.PrimExpr{
					&tir.StringImm{Value: "float16"},
					&tir.Var{Name: shared.Name, Type: tir.HandleDType},
					tir.Mul(tir.FloorDiv(tx, tir.Int(2)), tir.Int(64)),
					tir.Int(512),
					tir.Int(1),
				},
			},
			tir.Mul(tir.FloorMod(tx, tir.Int(2)), tir.Int(8)),
		},
	}}

	consumer := &tir.BlockRealize{
		Predicate: &tir.IntImm{Type: tir.BoolDType, Value: 1},
		Block: &tir.Block{
			NameHint:    "A_shared_frag",
			Body:        load,
			Reads:       []tir.BufferRegion{shared.FullRegion()},
			Annotations: map[string]string{transform.PermutedLayoutKey: "s2lA_shared_dyn"},
		},
	}

	threads := &tir.For{
		LoopVar: tx,
		Min:     tir.Int(0),
		Extent:  tir.Int(128),
		Kind:    tir.ForThreadBinding,
		ThreadBinding: &tir.IterVar{
			Var:       tx,
			Dom:       tir.Range{Min: tir.Int(0), Extent: tir.Int(128)},
			IterType:  tir.IterThreadIndex,
			ThreadTag: "threadIdx.x",
		},
		Body: &tir.SeqStmt{Seq: []tir.Stmt{producer, consumer}},
	}

	return &tir.PrimFunc{
		Params: []*tir.Var{global},
		Body:   threads,
		Attrs:  map[string]string{"global_symbol": "matmul_stage_demo"},
	}
}
