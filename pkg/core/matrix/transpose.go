// Copyright 2026 The Flashlight Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"github.com/flashlight-ml/flashlight/pkg/core/dtypes"
	"github.com/flashlight-ml/flashlight/pkg/core/tensors"
)

// Transpose returns the transposed matrix: for t with dimensions [rows, cols] it returns
// a matrix with dimensions [cols, rows] where result[j, i] = t[i, j].
func Transpose[T dtypes.Supported](t *tensors.Tensor[T]) (*tensors.Tensor[T], error) {
	rows, cols, err := matrixDims("matrix.Transpose", t)
	if err != nil {
		return nil, err
	}
	return tensors.FromShapeAndFill(func(out []T) {
		t.ConstFlatData(func(flat []T) {
			for flatIdx, indices := range t.Shape().Iter() {
				out[indices[1]*rows+indices[0]] = flat[flatIdx]
			}
		})
	}, cols, rows), nil
}
