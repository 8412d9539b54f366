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

package transform

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/ajroetker/go-tensorir/tir"
)

// PermutedLayoutKey is the block annotation consumed by the
// inject_permuted_layout pass. Grammar: "" (ignored), "g2s?..." for a
// global-to-shared staging block, or "s2l?..." for a shared-to-register
// load block, where the 5th character names the matrix operand ('A' or
// 'B'). The annotation is produced by the schedule, never by this pass.
const PermutedLayoutKey = "permuted_layout"

const injectPermutedLayoutName = "inject_permuted_layout"

func init() {
	Register(Pass{Name: injectPermutedLayoutName, Apply: InjectPermutedLayout})
}

// InjectPermutedLayout rewrites shared-memory index expressions in blocks
// annotated with PermutedLayoutKey so that the staging traffic feeding the
// matrix-multiply unit is free of bank conflicts.
//
// Global-to-shared blocks have their store indices permuted (see
// permuteIndices) and the row width of the stored buffer is remembered per
// operand. Shared-to-register blocks have the offset arguments of their
// matrix load intrinsic recomputed with the same permutation, using the
// width remembered from the matching producer; a load block visited before
// any producer for its operand is left unchanged.
//
// Blocks whose buffer geometry cannot be permuted (row width not divisible
// by 32, or width mod 64 == 32 with an odd row count) are left unchanged
// and reported as diagnostics. Annotated blocks whose body does not match
// the known staging shapes are an error: rewriting an address it half
// understands is how a compiler produces silently wrong loads.
func InjectPermutedLayout(fn *tir.PrimFunc) (*tir.PrimFunc, []Diagnostic, error) {
	inj := &layoutInjector{widths: [2]int64{widthUnset, widthUnset}}
	body, err := inj.rewriteStmt(fn.Body)
	if err != nil {
		return nil, inj.diags, err
	}
	if body == fn.Body {
		return fn, inj.diags, nil
	}
	return fn.WithBody(body), inj.diags, nil
}

// widthUnset marks an operand slot whose producer has not been visited.
const widthUnset = -1

type operandSlot int

const (
	operandA operandSlot = iota
	operandB
)

// layoutInjector carries the per-traversal state: the shared-memory row
// width learned from each operand's producer block, and the diagnostics
// accumulated so far. One injector serves exactly one function body.
type layoutInjector struct {
	widths [2]int64
	diags  []Diagnostic
}

func (inj *layoutInjector) warnf(block, format string, args ...any) {
	inj.diags = append(inj.diags, Diagnostic{
		Pass:    injectPermutedLayoutName,
		Block:   block,
		Message: fmt.Sprintf(format, args...),
	})
}

// rewriteStmt walks the statement tree bottom-up, rebuilding only the
// spines above a changed node. Every statement kind is listed so a new
// kind fails loudly here instead of being silently skipped.
func (inj *layoutInjector) rewriteStmt(s tir.Stmt) (tir.Stmt, error) {
	switch n := s.(type) {
	case nil:
		return nil, nil
	case *tir.SeqStmt:
		seq := make([]tir.Stmt, len(n.Seq))
		changed := false
		for i, sub := range n.Seq {
			r, err := inj.rewriteStmt(sub)
			if err != nil {
				return nil, err
			}
			seq[i] = r
			changed = changed || r != sub
		}
		if !changed {
			return n, nil
		}
		return &tir.SeqStmt{Seq: seq}, nil
	case *tir.For:
		body, err := inj.rewriteStmt(n.Body)
		if err != nil {
			return nil, err
		}
		if body == n.Body {
			return n, nil
		}
		return &tir.For{
			LoopVar:       n.LoopVar,
			Min:           n.Min,
			Extent:        n.Extent,
			Kind:          n.Kind,
			Body:          body,
			ThreadBinding: n.ThreadBinding,
			Annotations:   n.Annotations,
		}, nil
	case *tir.IfThenElse:
		then, err := inj.rewriteStmt(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := inj.rewriteStmt(n.Else)
		if err != nil {
			return nil, err
		}
		if then == n.Then && els == n.Else {
			return n, nil
		}
		return &tir.IfThenElse{Condition: n.Condition, Then: then, Else: els}, nil
	case *tir.Block:
		body, err := inj.rewriteStmt(n.Body)
		if err != nil {
			return nil, err
		}
		init, err := inj.rewriteStmt(n.Init)
		if err != nil {
			return nil, err
		}
		if body == n.Body && init == n.Init {
			return n, nil
		}
		rebuilt := blockWithBody(n, body)
		rebuilt.Init = init
		return rebuilt, nil
	case *tir.BlockRealize:
		return inj.rewriteBlockRealize(n)
	case *tir.BufferStore:
		return n, nil
	case *tir.Evaluate:
		return n, nil
	default:
		return nil, errors.Errorf("unhandled statement kind %T", s)
	}
}

// rewriteBlockRealize rewrites the wrapped block's children first, then
// dispatches on the permuted_layout annotation of the (possibly rebuilt)
// block.
func (inj *layoutInjector) rewriteBlockRealize(br *tir.BlockRealize) (tir.Stmt, error) {
	rewritten, err := inj.rewriteStmt(br.Block)
	if err != nil {
		return nil, err
	}
	if blk := rewritten.(*tir.Block); blk != br.Block {
		br = &tir.BlockRealize{
			IterValues: br.IterValues,
			Predicate:  br.Predicate,
			Block:      blk,
		}
	}

	tag := br.Block.Annotations[PermutedLayoutKey]
	switch {
	case tag == "":
		return br, nil
	case strings.HasPrefix(tag, "g2s"):
		slot, err := operandOf(br.Block, tag)
		if err != nil {
			return nil, err
		}
		return inj.rewriteGlobalToShared(br, slot)
	case strings.HasPrefix(tag, "s2l"):
		slot, err := operandOf(br.Block, tag)
		if err != nil {
			return nil, err
		}
		return inj.rewriteSharedToLocal(br, slot)
	default:
		// Unknown tag: not ours to interpret.
		return br, nil
	}
}

// operandOf reads the operand letter at index 4 of the annotation tag.
// Anything other than 'A' selects the B slot, matching the annotation
// producer's two-operand world.
func operandOf(blk *tir.Block, tag string) (operandSlot, error) {
	if len(tag) < 5 {
		return 0, errors.Errorf("block %q: %s tag %q is too short to name an operand",
			blk.NameHint, PermutedLayoutKey, tag)
	}
	if tag[4] == 'A' {
		return operandA, nil
	}
	return operandB, nil
}

// rewriteGlobalToShared handles a producer block: destructure the body
// down to its shared-memory store, permute the store indices and rebuild
// the wrappers around it verbatim.
//
// The recognized body shapes, outermost first:
//
//	[SeqStmt of exactly 2: local-staging copy, then the store subtree]
//	zero or more nested For loops
//	[IfThenElse guard with no else branch]
//	BufferStore into the shared buffer
func (inj *layoutInjector) rewriteGlobalToShared(br *tir.BlockRealize, slot operandSlot) (tir.Stmt, error) {
	blk := br.Block
	body := blk.Body

	// Optional local stage: only the second element stores to shared
	// memory, the first is kept as-is.
	var localStage tir.Stmt
	if seq, ok := body.(*tir.SeqStmt); ok {
		if len(seq.Seq) != 2 {
			return nil, errors.Errorf("block %q: local-staging sequence has %d statements, want 2",
				blk.NameHint, len(seq.Seq))
		}
		localStage = seq.Seq[0]
		body = seq.Seq[1]
	}

	// Peel the loop nest, keeping each loop so it can be rewrapped with
	// its metadata untouched.
	var loops []*tir.For
	for {
		loop, ok := body.(*tir.For)
		if !ok {
			break
		}
		loops = append(loops, loop)
		body = loop.Body
	}

	// The innermost statement is a store, or a store guarded by an if
	// produced by reverse compute inlining.
	var condition tir.PrimExpr
	store, ok := body.(*tir.BufferStore)
	if !ok {
		guard, isIf := body.(*tir.IfThenElse)
		if !isIf {
			return nil, errors.Errorf("block %q: innermost statement is %T, want a store or a guarded store",
				blk.NameHint, body)
		}
		if guard.Else != nil {
			return nil, errors.Errorf("block %q: guarded store has an else branch", blk.NameHint)
		}
		store, ok = guard.Then.(*tir.BufferStore)
		if !ok {
			return nil, errors.Errorf("block %q: guard wraps %T, want a store", blk.NameHint, guard.Then)
		}
		condition = guard.Condition
	}
	if len(store.Indices) != 2 {
		return nil, errors.Errorf("block %q: store into %q has %d indices, want (row, col)",
			blk.NameHint, store.Buffer.Name, len(store.Indices))
	}

	// Row width decides the permutation regime. Unsupported geometry is
	// reported and the block is left exactly as it was.
	width, constant := store.Buffer.ShapeDim(1)
	if !constant {
		return nil, errors.Errorf("block %q: buffer %q row width is not a compile-time constant",
			blk.NameHint, store.Buffer.Name)
	}
	if width%32 != 0 {
		inj.warnf(blk.NameHint, "row width %d is not divisible by 32", width)
		return br, nil
	}
	if width%64 == 32 {
		rows, constant := store.Buffer.ShapeDim(0)
		if !constant || rows%2 != 0 {
			inj.warnf(blk.NameHint,
				"row width %d mod 64 == 32 requires an even row count, buffer %q does not have one",
				width, store.Buffer.Name)
			return br, nil
		}
	}

	inj.widths[slot] = width

	newRow, newCol := permuteIndices(store.Indices[0], store.Indices[1], width)
	var newBody tir.Stmt = &tir.BufferStore{
		Buffer:  store.Buffer,
		Value:   store.Value,
		Indices: []tir.PrimExpr{newRow, newCol},
	}
	if condition != nil {
		newBody = &tir.IfThenElse{Condition: condition, Then: newBody}
	}
	for i := len(loops) - 1; i >= 0; i-- {
		loop := loops[i]
		newBody = &tir.For{
			LoopVar:       loop.LoopVar,
			Min:           loop.Min,
			Extent:        loop.Extent,
			Kind:          loop.Kind,
			Body:          newBody,
			ThreadBinding: loop.ThreadBinding,
			Annotations:   loop.Annotations,
		}
	}
	if localStage != nil {
		newBody = &tir.SeqStmt{Seq: []tir.Stmt{localStage, newBody}}
	}
	return rebuildRealize(br, newBody), nil
}

// rewriteSharedToLocal handles a consumer block: the body is a single
// evaluated matrix load intrinsic whose source offset gets recomputed
// through the same permutation the producer applied. The access-pointer
// offset is folded into the load's trailing offset argument and zeroed,
// so the permuted offset is carried in one place.
func (inj *layoutInjector) rewriteSharedToLocal(br *tir.BlockRealize, slot operandSlot) (tir.Stmt, error) {
	width := inj.widths[slot]
	if width == widthUnset {
		// No producer seen yet for this operand; leave the load alone.
		return br, nil
	}

	blk := br.Block
	eval, ok := blk.Body.(*tir.Evaluate)
	if !ok {
		return nil, errors.Errorf("block %q: body is %T, want an evaluated matrix load",
			blk.NameHint, blk.Body)
	}
	call, ok := eval.Value.(*tir.Call)
	if !ok {
		return nil, errors.Errorf("block %q: evaluated value is not an intrinsic call", blk.NameHint)
	}
	ldmat, err := parseLoadMatrixCall(call)
	if err != nil {
		return nil, errors.Wrapf(err, "block %q", blk.NameHint)
	}

	combined := tir.Add(ldmat.SharedOff, ldmat.SharedPtr.Offset)
	ldmat.SharedOff = permuteOffset(combined, width)
	ldmat.SharedPtr.Offset = tir.Int(0)

	return rebuildRealize(br, &tir.Evaluate{Value: ldmat.Call()}), nil
}

// blockWithBody copies a block, replacing only the body.
func blockWithBody(blk *tir.Block, body tir.Stmt) *tir.Block {
	return &tir.Block{
		IterVars:     blk.IterVars,
		Reads:        blk.Reads,
		Writes:       blk.Writes,
		NameHint:     blk.NameHint,
		Body:         body,
		Init:         blk.Init,
		AllocBuffers: blk.AllocBuffers,
		MatchBuffers: blk.MatchBuffers,
		Annotations:  blk.Annotations,
	}
}

// rebuildRealize copies a block realize, replacing only the block body.
func rebuildRealize(br *tir.BlockRealize, body tir.Stmt) *tir.BlockRealize {
	return &tir.BlockRealize{
		IterValues: br.IterValues,
		Predicate:  br.Predicate,
		Block:      blockWithBody(br.Block, body),
	}
}
