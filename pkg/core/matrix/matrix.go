// Copyright 2026 The Flashlight Authors. SPDX-License-Identifier: Apache-2.0

// Package matrix extracts two-dimensional views out of tensors and implements the matrix
// arithmetic over them: transpose, multiplication, row and column reductions, and rendering
// to text.
//
// A matrix is simply a rank-2 *tensors.Tensor. Every operation reads its inputs and returns a
// new tensor, inputs are never modified. When an operation doesn't apply to the shape of its
// operands (wrong rank, index out of bounds, incompatible dimensions) it returns a nil tensor and
// an error wrapping ErrShapeMismatch, never a partial result. Passing a nil tensor is a bug and
// panics.
//
// Each operation also has a Must* variant that panics instead of returning the error, convenient
// for tests and for code that has already validated the shapes.
//
// Example:
//
//	t := tensors.MustFromFlatDataAndDimensions([]float32{1, 2, 3, 4, 5, 6, 7, 8}, 2, 2, 2)
//	m, err := matrix.Extract(t, 1) // [[5, 6], [7, 8]]
//	s, err := matrix.ToString(m)   // "|5, 6|\n|7, 8|"
package matrix

import (
	"github.com/flashlight-ml/flashlight/pkg/core/dtypes"
	"github.com/flashlight-ml/flashlight/pkg/core/tensors"
)

// ErrShapeMismatch is wrapped by every error returned by this package. Test for it with errors.Is.
//
// It is the same sentinel as tensors.ErrShapeMismatch.
var ErrShapeMismatch = tensors.ErrShapeMismatch

// matrixDims returns the number of rows and columns of t, or an ErrShapeMismatch if t is not rank-2.
func matrixDims[T dtypes.Supported](op string, t *tensors.Tensor[T]) (rows, cols int, err error) {
	t.AssertValid()
	shape := t.Shape()
	if err = shape.CheckRank(2); err != nil {
		return 0, 0, tensors.ShapeMismatchf("%s: %v", op, err)
	}
	return shape.Dimensions[0], shape.Dimensions[1], nil
}

// Identity returns the n x n identity matrix.
//
// It panics if n is negative.
func Identity[T dtypes.Number](n int) *tensors.Tensor[T] {
	return tensors.FromShapeAndFill(func(flat []T) {
		for ii := range n {
			flat[ii*n+ii] = 1
		}
	}, n, n)
}
