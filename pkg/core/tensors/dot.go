// Copyright 2026 The Flashlight Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"github.com/flashlight-ml/flashlight/pkg/core/dtypes"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/floats"
)

// Dot returns the inner product of two rank-1 tensors of the same length: sum(a[i]*b[i]).
// Two empty vectors have a dot product of zero.
//
// Float32 and Float64 are delegated to gonum's BLAS kernels, other types use a plain loop.
//
// It returns an error wrapping ErrShapeMismatch if either tensor is not rank-1 or if their lengths differ.
func Dot[T dtypes.Number](a, b *Tensor[T]) (T, error) {
	var zero T
	a.AssertValid()
	b.AssertValid()
	if a.Rank() != 1 || b.Rank() != 1 {
		return zero, ShapeMismatchf("Dot(%s, %s): both operands must be rank-1", a.shape, b.shape)
	}
	if a.Size() != b.Size() {
		return zero, ShapeMismatchf("Dot(%s, %s): lengths differ", a.shape, b.shape)
	}
	return dotFlat(a.flat, b.flat), nil
}

// dotFlat assumes both slices have the same length.
func dotFlat[T dtypes.Number](a, b []T) T {
	switch aFlat := any(a).(type) {
	case []float32:
		bFlat := any(b).([]float32)
		n := len(aFlat)
		return any(blas32.Dot(
			blas32.Vector{N: n, Data: aFlat, Inc: 1},
			blas32.Vector{N: n, Data: bFlat, Inc: 1},
		)).(T)
	case []float64:
		return any(floats.Dot(aFlat, any(b).([]float64))).(T)
	}
	var sum T
	for ii, v := range a {
		sum += v * b[ii]
	}
	return sum
}
