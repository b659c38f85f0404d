// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"slices"

	"github.com/flashlight-ml/flashlight/pkg/core/dtypes"
	"github.com/flashlight-ml/flashlight/pkg/core/shapes"
	"github.com/flashlight-ml/flashlight/pkg/support/xslices"
	"github.com/janpfeifer/must"
)

// checkDimensions returns the number of elements for the given dimensions, or an ErrShapeMismatch if
// any of the dimensions is negative or if their product overflows.
func checkDimensions(op string, dimensions []int) (int, error) {
	size, err := shapes.CheckedSize(dimensions...)
	if err != nil {
		return 0, ShapeMismatchf("%s: %v", op, err)
	}
	return size, nil
}

// FromShape creates a tensor of the given dimensions filled with zeros.
//
// It panics if any dimension is negative or if the product of the dimensions overflows an int.
func FromShape[T dtypes.Supported](dimensions ...int) *Tensor[T] {
	shape := shapes.Make(dtypes.FromGenericsType[T](), dimensions...)
	return &Tensor[T]{shape: shape, flat: make([]T, shape.Size())}
}

// FromShapeAndFill creates a tensor of the given dimensions and calls fill once with its zeroed
// flat storage, before the tensor is returned.
// fill must not retain the slice.
//
// It panics if any dimension is negative or if the product of the dimensions overflows an int.
func FromShapeAndFill[T dtypes.Supported](fill func(flat []T), dimensions ...int) *Tensor[T] {
	t := FromShape[T](dimensions...)
	fill(t.flat)
	return t
}

// FromScalar creates a local tensor with the given scalar.
// The `DType` is inferred from the value.
func FromScalar[T dtypes.Supported](value T) *Tensor[T] {
	return FromScalarAndDimensions(value)
}

// FromScalarAndDimensions creates a local tensor with the given dimensions, filled with the
// given scalar value replicated everywhere.
// The `DType` is inferred from the value.
//
// It panics if any dimension is negative or if the product of the dimensions overflows an int.
func FromScalarAndDimensions[T dtypes.Supported](value T, dimensions ...int) *Tensor[T] {
	return FromShapeAndFill(func(flat []T) { xslices.FillSlice(flat, value) }, dimensions...)
}

// FromFlatDataAndDimensions creates a tensor with the given dimensions, filled with the flattened values given in `data`.
// The data is copied to the Tensor.
// The `DType` is inferred from the `data` type.
//
// It returns an error wrapping ErrShapeMismatch if any dimension is negative, if the product of the
// dimensions overflows an int, or if the size of data is not the product of the dimensions.
func FromFlatDataAndDimensions[T dtypes.Supported](data []T, dimensions ...int) (*Tensor[T], error) {
	size, err := checkDimensions("FromFlatDataAndDimensions", dimensions)
	if err != nil {
		return nil, err
	}
	if len(data) != size {
		return nil, ShapeMismatchf("FromFlatDataAndDimensions(%v): data size is %d, but dimensions size is %d",
			dimensions, len(data), size)
	}
	return &Tensor[T]{
		shape: shapes.Make(dtypes.FromGenericsType[T](), dimensions...),
		flat:  xslices.Copy(data),
	}, nil
}

// MustFromFlatDataAndDimensions is like FromFlatDataAndDimensions, but panics on error.
func MustFromFlatDataAndDimensions[T dtypes.Supported](data []T, dimensions ...int) *Tensor[T] {
	return must.M1(FromFlatDataAndDimensions(data, dimensions...))
}

// ConstFlatData calls accessFn with the flat values of the tensor, in row-major order.
// accessFn must not modify or retain the slice.
func (t *Tensor[T]) ConstFlatData(accessFn func(flat []T)) {
	t.AssertValid()
	accessFn(t.flat)
}

// CopyFlatData returns a copy of the flat values of the tensor, in row-major order.
// The returned slice is owned by the caller.
func (t *Tensor[T]) CopyFlatData() []T {
	t.AssertValid()
	return xslices.Copy(t.flat)
}

// ToScalar returns the scalar value of a rank-0 tensor.
// It panics if the tensor is not a scalar.
func (t *Tensor[T]) ToScalar() T {
	t.AssertValid()
	t.shape.AssertRank(0)
	return t.flat[0]
}

// LayoutStrides returns the strides for each axis, in number of elements.
func (t *Tensor[T]) LayoutStrides() []int {
	return t.shape.Strides()
}

// Value returns the element at the given position: it requires one index per axis.
//
// It returns an error wrapping ErrShapeMismatch if the number of indices doesn't match the rank, or if
// any index is out of bounds.
func (t *Tensor[T]) Value(indices ...int) (T, error) {
	var zero T
	t.AssertValid()
	idx, err := t.shape.FlatIndex(indices...)
	if err != nil {
		return zero, ShapeMismatchf("Tensor.Value(%v): %v", indices, err)
	}
	return t.flat[idx], nil
}

// MustValue is like Value, but panics on error.
func (t *Tensor[T]) MustValue(indices ...int) T {
	return must.M1(t.Value(indices...))
}

// Reshape returns a tensor with the same values (in the same row-major order) and the new dimensions.
// The tensors share storage, which is fine since neither is ever modified.
//
// It returns an error wrapping ErrShapeMismatch if any dimension is negative, if the product of the
// dimensions overflows an int, or if the total size differs.
func (t *Tensor[T]) Reshape(dimensions ...int) (*Tensor[T], error) {
	t.AssertValid()
	size, err := checkDimensions("Tensor.Reshape", dimensions)
	if err != nil {
		return nil, err
	}
	if size != t.Size() {
		return nil, ShapeMismatchf("Tensor.Reshape(%v): tensor %s has %d elements, new dimensions have %d",
			dimensions, t.shape, t.Size(), size)
	}
	return &Tensor[T]{shape: t.shape.Reshape(dimensions...), flat: t.flat}, nil
}

// Equal checks weather t == otherTensor.
// If they are the same pointer, they are considered equal.
// If the shapes are different, it returns false.
// If either side is invalid (nil), it panics.
func (t *Tensor[T]) Equal(otherTensor *Tensor[T]) bool {
	t.AssertValid()
	otherTensor.AssertValid()
	if t == otherTensor {
		return true
	}
	if !t.shape.Equal(otherTensor.shape) {
		return false
	}
	return slices.Equal(t.flat, otherTensor.flat)
}

// InDelta checks weather Abs(a - b) <= delta for every element.
// If they are the same pointer, they are considered equal.
// If the shapes are different, it returns false.
// If either is invalid (nil), it panics.
func InDelta[T dtypes.NumberNotComplex](a, b *Tensor[T], delta float64) bool {
	a.AssertValid()
	b.AssertValid()
	if a == b {
		return true
	}
	if !a.shape.Equal(b.shape) {
		return false
	}
	return xslices.InDelta(a.flat, b.flat, delta)
}
