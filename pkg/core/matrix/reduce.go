// Copyright 2026 The Flashlight Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"github.com/flashlight-ml/flashlight/pkg/core/dtypes"
	"github.com/flashlight-ml/flashlight/pkg/core/tensors"
)

// combiner folds the elements of one lane (a row or a column) into a single value.
type combiner[T dtypes.Number] interface {
	// seedsWithFirst returns true if the accumulator starts as the first element of the lane,
	// and false if it starts as the zero value.
	seedsWithFirst() bool
	combine(acc, value T) T
}

type sumCombiner[T dtypes.Number] struct{}

func (sumCombiner[T]) seedsWithFirst() bool { return false }
func (sumCombiner[T]) combine(acc, value T) T { return acc + value }

type prodCombiner[T dtypes.Number] struct{}

func (prodCombiner[T]) seedsWithFirst() bool { return true }
func (prodCombiner[T]) combine(acc, value T) T { return acc * value }

// reduceAxis reduces the matrix t along the given axis (0 for rows, 1 for columns), producing
// a matrix with that axis dimension set to 1.
//
// Lanes with no elements fail for combiners that seed with the first element.
func reduceAxis[T dtypes.Number](op string, t *tensors.Tensor[T], axis int, c combiner[T]) (*tensors.Tensor[T], error) {
	rows, cols, err := matrixDims(op, t)
	if err != nil {
		return nil, err
	}
	dims := []int{rows, cols}
	strides := t.LayoutStrides()
	keptAxis := 1 - axis
	numLanes, laneLen := dims[keptAxis], dims[axis]
	laneStride, elemStride := strides[keptAxis], strides[axis]
	if c.seedsWithFirst() && laneLen == 0 && numLanes > 0 {
		return nil, tensors.ShapeMismatchf("%s: matrix %s has empty lanes, there is no first element to seed the product",
			op, t.Shape())
	}

	dims[axis] = 1
	return tensors.FromShapeAndFill(func(out []T) {
		t.ConstFlatData(func(flat []T) {
			for lane := range numLanes {
				start := lane * laneStride
				var acc T
				first := 0
				if c.seedsWithFirst() {
					acc = flat[start]
					first = 1
				}
				for ii := first; ii < laneLen; ii++ {
					acc = c.combine(acc, flat[start+ii*elemStride])
				}
				out[lane] = acc
			}
		})
	}, dims...), nil
}

// ColSum sums the columns of each row: for t with dimensions [rows, cols] it returns a
// matrix with dimensions [rows, 1].
func ColSum[T dtypes.Number](t *tensors.Tensor[T]) (*tensors.Tensor[T], error) {
	return reduceAxis("matrix.ColSum", t, 1, sumCombiner[T]{})
}

// RowSum sums the rows of each column: for t with dimensions [rows, cols] it returns a
// matrix with dimensions [1, cols].
func RowSum[T dtypes.Number](t *tensors.Tensor[T]) (*tensors.Tensor[T], error) {
	return reduceAxis("matrix.RowSum", t, 0, sumCombiner[T]{})
}

// ColProd multiplies the columns of each row, with dimensions [rows, 1] like ColSum.
// The product starts from the first element of the row, so it fails if there are no columns
// (and there is at least one row).
func ColProd[T dtypes.Number](t *tensors.Tensor[T]) (*tensors.Tensor[T], error) {
	return reduceAxis("matrix.ColProd", t, 1, prodCombiner[T]{})
}

// RowProd multiplies the rows of each column, with dimensions [1, cols] like RowSum.
// The product starts from the first element of the column, so it fails if there are no rows
// (and there is at least one column).
func RowProd[T dtypes.Number](t *tensors.Tensor[T]) (*tensors.Tensor[T], error) {
	return reduceAxis("matrix.RowProd", t, 0, prodCombiner[T]{})
}
