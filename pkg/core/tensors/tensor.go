// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package tensors implement a `Tensor`, a representation of a multidimensional array.
//
// Tensors are multidimensional arrays (from scalar with 0 dimensions, to arbitrarily large dimensions), defined
// by their shape (a data type and its axes' dimensions) and their actual content, stored flat in row-major
// order.
//
// There are various ways to construct a Tensor from local data:
//
//   - FromShape[T](dimensions ...int): creates a tensor with the given dimensions, and zero values.
//
//   - FromScalarAndDimensions[T dtypes.Supported](value T, dimensions ...int): creates a Tensor with the
//     given dimensions, filled with the scalar value given.
//
//   - FromFlatDataAndDimensions[T dtypes.Supported](data []T, dimensions ...int): creates a Tensor with the
//     given dimensions and set the flattened values with the given data. Example:
//
//     t, err := FromFlatDataAndDimensions([]int8{1, 2, 3, 4}, 2, 2) // Tensor with [[1,2], [3,4]]
//
// A Tensor is never modified after construction: every operation that "changes" a tensor returns
// a new one. So tensors can be freely shared across goroutines.
package tensors

import (
	"github.com/flashlight-ml/flashlight/pkg/core/dtypes"
	"github.com/flashlight-ml/flashlight/pkg/core/shapes"
	"github.com/pkg/errors"
)

// ErrShapeMismatch is returned (wrapped, test with errors.Is) whenever an operation is not applicable
// to the shapes of its operands: wrong rank, out-of-bounds index, incompatible dimensions or a data
// length that doesn't match the requested dimensions.
var ErrShapeMismatch = errors.New("shape mismatch")

// ShapeMismatchf returns an error wrapping ErrShapeMismatch with the formatted context.
func ShapeMismatchf(format string, args ...any) error {
	return errors.Wrapf(ErrShapeMismatch, format, args...)
}

// Tensor is an immutable multidimensional array of values of type T.
//
// The zero value is not valid, use one of the constructors.
type Tensor[T dtypes.Supported] struct {
	shape shapes.Shape
	flat  []T
}

// Shape of the tensor.
func (t *Tensor[T]) Shape() shapes.Shape { return t.shape }

// DType returns the DType of the tensor's shape.
// It is a shortcut to `Tensor.Shape().DType`.
func (t *Tensor[T]) DType() dtypes.DType { return t.shape.DType }

// Rank returns the rank of the tensor's shape.
// It is a shortcut to `Tensor.Shape().Rank()`.
func (t *Tensor[T]) Rank() int { return t.shape.Rank() }

// Dimensions returns a copy of the dimensions of the tensor.
func (t *Tensor[T]) Dimensions() []int { return t.shape.Clone().Dimensions }

// IsScalar returns whether the tensor represents a scalar value.
func (t *Tensor[T]) IsScalar() bool { return t.shape.IsScalar() }

// Size returns the number of elements in the tensor.
func (t *Tensor[T]) Size() int { return t.shape.Size() }

// Memory returns the number of bytes used to store the tensor's values.
func (t *Tensor[T]) Memory() uintptr { return t.shape.Memory() }

// Ok returns whether the tensor is valid: non-nil, with a valid shape and matching storage.
func (t *Tensor[T]) Ok() bool {
	return t != nil && t.shape.Ok() && len(t.flat) == t.shape.Size()
}

// CheckValid returns an error if the tensor is nil or otherwise invalid.
func (t *Tensor[T]) CheckValid() error {
	if t == nil {
		return errors.New("tensor is nil")
	}
	if !t.Ok() {
		return errors.Errorf("tensor with shape %s holding %d values is invalid", t.shape, len(t.flat))
	}
	return nil
}

// AssertValid panics if the tensor is nil or otherwise invalid.
func (t *Tensor[T]) AssertValid() {
	if err := t.CheckValid(); err != nil {
		panic(errors.WithMessage(err, "Tensor.AssertValid()"))
	}
}
