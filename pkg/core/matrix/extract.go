// Copyright 2026 The Flashlight Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"github.com/flashlight-ml/flashlight/pkg/core/dtypes"
	"github.com/flashlight-ml/flashlight/pkg/core/tensors"
)

// Extract returns a copy of one of the matrices formed by the two trailing axes of t.
//
// The selector has one index per leading axis, so its length must be t.Rank()-2. For a rank-2
// tensor the selector is empty and Extract returns a copy of t.
//
// Example: for t with dimensions [2, 2, 2] and values 1..8, Extract(t, 1) returns [[5, 6], [7, 8]].
func Extract[T dtypes.Supported](t *tensors.Tensor[T], selector ...int) (*tensors.Tensor[T], error) {
	t.AssertValid()
	shape := t.Shape()
	offset, err := shape.MatrixOffset(selector...)
	if err != nil {
		return nil, tensors.ShapeMismatchf("matrix.Extract(%v): %v", selector, err)
	}
	dims := shape.MatrixShape().Dimensions
	return tensors.FromShapeAndFill(func(out []T) {
		t.ConstFlatData(func(flat []T) {
			copy(out, flat[offset:offset+len(out)])
		})
	}, dims...), nil
}

// Row returns a copy of the given row of the matrix t, with dimensions [1, cols].
func Row[T dtypes.Supported](t *tensors.Tensor[T], row int) (*tensors.Tensor[T], error) {
	rows, cols, err := matrixDims("matrix.Row", t)
	if err != nil {
		return nil, err
	}
	if row < 0 || row >= rows {
		return nil, tensors.ShapeMismatchf("matrix.Row(%d): out of bounds for matrix %s", row, t.Shape())
	}
	return rowOf(t, row, cols, 1, cols), nil
}

// RowVector is like Row, but returns a rank-1 tensor with dimensions [cols].
func RowVector[T dtypes.Supported](t *tensors.Tensor[T], row int) (*tensors.Tensor[T], error) {
	rows, cols, err := matrixDims("matrix.RowVector", t)
	if err != nil {
		return nil, err
	}
	if row < 0 || row >= rows {
		return nil, tensors.ShapeMismatchf("matrix.RowVector(%d): out of bounds for matrix %s", row, t.Shape())
	}
	return rowOf(t, row, cols, cols), nil
}

// Col returns a copy of the given column of the matrix t, with dimensions [rows, 1].
func Col[T dtypes.Supported](t *tensors.Tensor[T], col int) (*tensors.Tensor[T], error) {
	rows, cols, err := matrixDims("matrix.Col", t)
	if err != nil {
		return nil, err
	}
	if col < 0 || col >= cols {
		return nil, tensors.ShapeMismatchf("matrix.Col(%d): out of bounds for matrix %s", col, t.Shape())
	}
	return colOf(t, col, rows, cols, rows, 1), nil
}

// ColVector is like Col, but returns a rank-1 tensor with dimensions [rows].
func ColVector[T dtypes.Supported](t *tensors.Tensor[T], col int) (*tensors.Tensor[T], error) {
	rows, cols, err := matrixDims("matrix.ColVector", t)
	if err != nil {
		return nil, err
	}
	if col < 0 || col >= cols {
		return nil, tensors.ShapeMismatchf("matrix.ColVector(%d): out of bounds for matrix %s", col, t.Shape())
	}
	return colOf(t, col, rows, cols, rows), nil
}

// rowOf copies the contiguous row into a new tensor with the given dimensions. Bounds are not checked.
func rowOf[T dtypes.Supported](t *tensors.Tensor[T], row, cols int, dims ...int) *tensors.Tensor[T] {
	return tensors.FromShapeAndFill(func(out []T) {
		t.ConstFlatData(func(flat []T) {
			copy(out, flat[row*cols:(row+1)*cols])
		})
	}, dims...)
}

// colOf gathers the column, one element every cols, into a new tensor with the given dimensions.
// Bounds are not checked.
func colOf[T dtypes.Supported](t *tensors.Tensor[T], col, rows, cols int, dims ...int) *tensors.Tensor[T] {
	return tensors.FromShapeAndFill(func(out []T) {
		t.ConstFlatData(func(flat []T) {
			for row := range rows {
				out[row] = flat[row*cols+col]
			}
		})
	}, dims...)
}
