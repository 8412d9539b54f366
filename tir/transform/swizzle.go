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

import "github.com/ajroetker/go-tensorir/tir"

// permuteIndices maps a logical (row, col) shared-memory index to its
// bank-conflict-free location. The row is never altered; the column is
// permuted in chunks of 8 elements, one chunk per 128-bit vectorized
// transfer. Eight consecutive chunks of a 16-bit element row cover all 32
// memory banks, so every chunk in a straight column would hit the same
// bank; XOR-ing the chunk index with the row spreads them.
//
// Two regimes, selected by the row width:
//
//	rowWidth % 64 == 0: 8x8 permutation
//	  newChunk = (chunk/8)*8 + ((chunk%8) ^ (row%8))
//	rowWidth % 64 == 32: 8x4 permutation (row count must be even)
//	  newChunk = (chunk%4) ^ ((row%8)/2)
//
// For a fixed row the mapping is a bijection over the regime's period: the
// whole row in the 8x8 regime, a 32-element group in the 8x4 regime
// (columns that agree mod 32 fold onto the same image). The XOR is
// invertible within a group and the in-chunk offset is untouched.
//
// The arithmetic is built from the tir folding constructors, so literal
// indices come back as literals while symbolic indices become expression
// trees evaluated on device.
func permuteIndices(row, col tir.PrimExpr, rowWidth int64) (tir.PrimExpr, tir.PrimExpr) {
	chunk := tir.FloorDiv(col, tir.Int(8))
	lane := tir.FloorMod(col, tir.Int(8))

	var newChunk tir.PrimExpr
	if rowWidth%64 == 0 {
		xored := tir.BitXor(tir.FloorMod(chunk, tir.Int(8)), tir.FloorMod(row, tir.Int(8)))
		newChunk = tir.Add(tir.Mul(tir.FloorDiv(chunk, tir.Int(8)), tir.Int(8)), xored)
	} else {
		newChunk = tir.BitXor(
			tir.FloorMod(chunk, tir.Int(4)),
			tir.FloorDiv(tir.FloorMod(row, tir.Int(8)), tir.Int(2)))
	}

	return row, tir.Add(tir.Mul(newChunk, tir.Int(8)), lane)
}

// permuteOffset applies permuteIndices to a flat element offset into a
// buffer of the given row width: the offset is split into (row, col),
// permuted and recombined.
func permuteOffset(offset tir.PrimExpr, rowWidth int64) tir.PrimExpr {
	row := tir.FloorDiv(offset, tir.Int(rowWidth))
	col := tir.FloorMod(offset, tir.Int(rowWidth))
	newRow, newCol := permuteIndices(row, col, rowWidth)
	return tir.Add(tir.Mul(newRow, tir.Int(rowWidth)), newCol)
}
