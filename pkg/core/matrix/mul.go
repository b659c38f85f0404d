// Copyright 2026 The Flashlight Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"github.com/flashlight-ml/flashlight/pkg/core/dtypes"
	"github.com/flashlight-ml/flashlight/pkg/core/tensors"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

// Mul returns the matrix product of a ([m, k]) and b ([k, n]), with dimensions [m, n].
//
// Each element result[i, j] is the dot product (tensors.Dot) of the row i of a with the column j of b.
// Float32 and Float64 dot products use gonum's kernels.
//
// Rows of the result are computed in parallel if configured (see Config), the result is the same.
func Mul[T dtypes.Number](a, b *tensors.Tensor[T]) (*tensors.Tensor[T], error) {
	aRows, aCols, err := matrixDims("matrix.Mul(a)", a)
	if err != nil {
		return nil, err
	}
	bRows, bCols, err := matrixDims("matrix.Mul(b)", b)
	if err != nil {
		return nil, err
	}
	if aCols != bRows {
		return nil, tensors.ShapeMismatchf("matrix.Mul(%s, %s): columns of a (%d) must match rows of b (%d)",
			a.Shape(), b.Shape(), aCols, bRows)
	}

	// Columns of b are gathered once and reused for every row of a.
	bColumns := make([]*tensors.Tensor[T], bCols)
	for col := range bCols {
		bColumns[col] = colOf(b, col, bRows, bCols, bRows)
	}

	exec := currentExecutor()
	parallel := exec.pool.IsEnabled() && aRows >= max(exec.config.MinParallelRows, 2)
	klog.V(2).Infof("matrix.Mul(%s, %s): parallel=%v", a.Shape(), b.Shape(), parallel)

	return tensors.FromShapeAndFill(func(out []T) {
		computeRows := func(start, end int) {
			for row := start; row < end; row++ {
				aRow := rowOf(a, row, aCols, aCols)
				for col, bCol := range bColumns {
					// Lengths were checked above, Dot can't fail.
					out[row*bCols+col] = must.M1(tensors.Dot(aRow, bCol))
				}
			}
		}
		if parallel {
			exec.pool.ForEachChunk(aRows, 1, computeRows)
		} else {
			computeRows(0, aRows)
		}
	}, aRows, bCols), nil
}

// MulFloat32 is Mul for float32 matrices.
func MulFloat32(a, b *tensors.Tensor[float32]) (*tensors.Tensor[float32], error) {
	return Mul(a, b)
}
