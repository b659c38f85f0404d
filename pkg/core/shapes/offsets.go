// Copyright 2026 The Flashlight Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"math"
	"math/bits"
	"slices"

	"github.com/pkg/errors"
)

// CheckedSize returns the product of dimensions, 1 for no dimensions.
//
// It returns an error if any dimension is negative or if the product doesn't fit in an int.
func CheckedSize(dimensions ...int) (int, error) {
	for axis, dim := range dimensions {
		if dim < 0 {
			return 0, errors.Errorf("dimension %d of axis %d in %v is negative", dim, axis, dimensions)
		}
	}
	if slices.Contains(dimensions, 0) {
		return 0, nil
	}
	size := uint64(1)
	for _, dim := range dimensions {
		hi, lo := bits.Mul64(size, uint64(dim))
		if hi != 0 || lo > math.MaxInt {
			return 0, errors.Errorf("dimensions %v hold more elements than fit in an int", dimensions)
		}
		size = lo
	}
	return int(size), nil
}

// FlatIndex returns the position in the row-major flat storage of the element addressed by indices.
//
// It returns an error if the number of indices differs from the rank or any index is out of bounds.
func (s Shape) FlatIndex(indices ...int) (int, error) {
	if err := s.CheckIndices(indices...); err != nil {
		return 0, err
	}
	flat := 0
	stride := 1
	for axis := s.Rank() - 1; axis >= 0; axis-- {
		flat += indices[axis] * stride
		stride *= s.Dimensions[axis]
	}
	return flat, nil
}

// MatrixShape returns the shape of one trailing matrix: the last two axes of s.
// It panics if the rank is smaller than 2.
func (s Shape) MatrixShape() Shape {
	if s.Rank() < 2 {
		panic(errors.Errorf("Shape.MatrixShape() requires rank >= 2, got shape %s", s))
	}
	return Make(s.DType, s.Dimensions[s.Rank()-2:]...)
}

// MatrixOffset returns the flat offset of the trailing matrix addressed by selector, one index
// per leading axis (so len(selector) must be Rank()-2).
//
// The walk goes from the innermost leading axis outwards: the stride starts as the size of one
// trailing matrix and grows by each leading dimension already passed.
//
// It returns an error if the selector length doesn't leave exactly two trailing axes, or if any
// selector index is out of bounds for its axis.
func (s Shape) MatrixOffset(selector ...int) (int, error) {
	numLeading := s.Rank() - 2
	if numLeading < 0 || len(selector) != numLeading {
		return 0, errors.Errorf("shape %s (rank %d) with a selector of %d indices doesn't address a matrix: "+
			"rank minus selector length must be 2", s, s.Rank(), len(selector))
	}
	for axis, idx := range selector {
		if idx < 0 || idx >= s.Dimensions[axis] {
			return 0, errors.Errorf("selector index %d out of bounds for axis %d of shape %s", idx, axis, s)
		}
	}
	offset := 0
	stride := s.MatrixShape().Size()
	for axis := numLeading - 1; axis >= 0; axis-- {
		offset += selector[axis] * stride
		stride *= s.Dimensions[axis]
	}
	return offset, nil
}
