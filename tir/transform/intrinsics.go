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
	"github.com/pkg/errors"

	"github.com/ajroetker/go-tensorir/tir"
)

// Intrinsic op names used by the shared-to-register load path.
const (
	// OpLoadMatrix is the warp-level matrix load intrinsic. Fixed arity 7:
	// transpose flag, matrix count, layout tag, destination pointer,
	// destination offset, source access-pointer call, source element
	// offset.
	OpLoadMatrix = "tir.ptx_ldmatrix"

	// OpAccessPtr materializes a typed pointer into a buffer. At least 3
	// arguments: type annotation, buffer handle, element offset; trailing
	// arguments (extent, access mask) pass through untouched.
	OpAccessPtr = "tir.access_ptr"
)

// loadMatrixCall names the argument roles of a 7-argument matrix load
// intrinsic call. The transform leaves the first five alone, rebuilds the
// source pointer and recomputes the source offset.
type loadMatrixCall struct {
	dtype tir.DType
	op    string

	Trans       tir.PrimExpr  // args[0]
	NumMatrices tir.PrimExpr  // args[1]
	LayoutTag   tir.PrimExpr  // args[2]
	LocalPtr    tir.PrimExpr  // args[3]
	LocalOffset tir.PrimExpr  // args[4]
	SharedPtr   accessPtrCall // args[5]
	SharedOff   tir.PrimExpr  // args[6]
}

// accessPtrCall names the argument roles of an access-pointer intrinsic
// call. Only the element offset is ever rewritten.
type accessPtrCall struct {
	dtype tir.DType
	op    string

	PtrType tir.PrimExpr   // args[0]
	Data    tir.PrimExpr   // args[1]
	Offset  tir.PrimExpr   // args[2]
	Rest    []tir.PrimExpr // args[3:], passed through verbatim
}

// parseLoadMatrixCall destructures a matrix load call, checking positional
// argument counts only. A mismatch means the annotation was attached to IR
// this transform was never generated for, which is fatal.
func parseLoadMatrixCall(call *tir.Call) (loadMatrixCall, error) {
	if len(call.Args) != 7 {
		return loadMatrixCall{}, errors.Errorf(
			"matrix load intrinsic has %d args, want 7", len(call.Args))
	}
	ptrCall, ok := call.Args[5].(*tir.Call)
	if !ok {
		return loadMatrixCall{}, errors.New(
			"matrix load intrinsic arg 5 is not an access-pointer call")
	}
	ptr, err := parseAccessPtrCall(ptrCall)
	if err != nil {
		return loadMatrixCall{}, err
	}
	return loadMatrixCall{
		dtype:       call.Type,
		op:          call.Op,
		Trans:       call.Args[0],
		NumMatrices: call.Args[1],
		LayoutTag:   call.Args[2],
		LocalPtr:    call.Args[3],
		LocalOffset: call.Args[4],
		SharedPtr:   ptr,
		SharedOff:   call.Args[6],
	}, nil
}

func parseAccessPtrCall(call *tir.Call) (accessPtrCall, error) {
	if len(call.Args) < 3 {
		return accessPtrCall{}, errors.Errorf(
			"access-pointer intrinsic has %d args, want at least 3", len(call.Args))
	}
	return accessPtrCall{
		dtype:   call.Type,
		op:      call.Op,
		PtrType: call.Args[0],
		Data:    call.Args[1],
		Offset:  call.Args[2],
		Rest:    call.Args[3:],
	}, nil
}

// Call rebuilds the intrinsic call expression.
func (c loadMatrixCall) Call() *tir.Call {
	return &tir.Call{
		Type: c.dtype,
		Op:   c.op,
		Args: []tir.PrimExpr{
			c.Trans, c.NumMatrices, c.LayoutTag, c.LocalPtr, c.LocalOffset,
			c.SharedPtr.Call(), c.SharedOff,
		},
	}
}

// Call rebuilds the access-pointer call expression.
func (c accessPtrCall) Call() *tir.Call {
	args := make([]tir.PrimExpr, 0, 3+len(c.Rest))
	args = append(args, c.PtrType, c.Data, c.Offset)
	args = append(args, c.Rest...)
	return &tir.Call{Type: c.dtype, Op: c.op, Args: args}
}
