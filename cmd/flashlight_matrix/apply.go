// Copyright 2026 The Flashlight Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"math"

	"github.com/flashlight-ml/flashlight/pkg/core/dtypes"
	"github.com/flashlight-ml/flashlight/pkg/core/matrix"
	"github.com/flashlight-ml/flashlight/pkg/core/tensors"
	"github.com/pkg/errors"
)

// operands holds the values given in the command line, before they are converted to the requested dtype.
type operands struct {
	dims, bDims []int
	data, bData []float64
	index       int
	selector    []int
}

// output of one run: the result rendered as a table, and its numpy-like summary.
type output struct {
	table, summary string
}

// run converts the operands to tensors of dtype and applies op to them.
func run(dtype dtypes.DType, op string, in operands) (output, error) {
	if !dtype.IsNumber() || dtype.IsComplex() {
		return output{}, errors.Errorf("-dtype=%s is not supported, only real number dtypes are", dtype)
	}
	switch dtype {
	case dtypes.Float32:
		return runAs[float32](dtype, op, in)
	case dtypes.Float64:
		return runAs[float64](dtype, op, in)
	case dtypes.Int8:
		return runAs[int8](dtype, op, in)
	case dtypes.Int16:
		return runAs[int16](dtype, op, in)
	case dtypes.Int32:
		return runAs[int32](dtype, op, in)
	case dtypes.Int64:
		return runAs[int64](dtype, op, in)
	case dtypes.Uint8:
		return runAs[uint8](dtype, op, in)
	case dtypes.Uint16:
		return runAs[uint16](dtype, op, in)
	case dtypes.Uint32:
		return runAs[uint32](dtype, op, in)
	case dtypes.Uint64:
		return runAs[uint64](dtype, op, in)
	}
	return output{}, errors.Errorf("-dtype=%s is not supported", dtype)
}

func runAs[T dtypes.NumberNotComplex](dtype dtypes.DType, op string, in operands) (output, error) {
	data, err := convert[T](dtype, in.data)
	if err != nil {
		return output{}, errors.WithMessage(err, "invalid -data")
	}
	a, err := tensors.FromFlatDataAndDimensions(data, in.dims...)
	if err != nil {
		return output{}, errors.WithMessage(err, "invalid -data/-dims")
	}
	var b *tensors.Tensor[T]
	if len(in.bDims) > 0 || len(in.bData) > 0 {
		bData, err := convert[T](dtype, in.bData)
		if err != nil {
			return output{}, errors.WithMessage(err, "invalid -b_data")
		}
		b, err = tensors.FromFlatDataAndDimensions(bData, in.bDims...)
		if err != nil {
			return output{}, errors.WithMessage(err, "invalid -b_data/-b_dims")
		}
	}
	result, err := apply(op, a, b, in.index, in.selector)
	if err != nil {
		return output{}, err
	}
	table, err := matrix.Render(result)
	if err != nil {
		return output{}, err
	}
	return output{table: table, summary: result.Summary(tensors.TensorStringDefaultPrecision)}, nil
}

// convert the values parsed from the command line to T. Integer dtypes only accept whole numbers
// within their range.
func convert[T dtypes.NumberNotComplex](dtype dtypes.DType, values []float64) ([]T, error) {
	converted := make([]T, len(values))
	for ii, v := range values {
		if dtype.IsInt() {
			if v != math.Trunc(v) {
				return nil, errors.Errorf("value %g is not an integer, as required by %s", v, dtype)
			}
			if dtype.IsUnsigned() && v < 0 {
				return nil, errors.Errorf("value %g is negative, %s is unsigned", v, dtype)
			}
			if float64(T(v)) != v {
				return nil, errors.Errorf("value %g is out of range for %s", v, dtype)
			}
		}
		converted[ii] = T(v)
	}
	return converted, nil
}

// apply runs the named operation. b is only used by "mul", index by "row" and "col", and
// selector by "extract".
func apply[T dtypes.Number](op string, a, b *tensors.Tensor[T], index int, selector []int) (*tensors.Tensor[T], error) {
	switch op {
	case "extract":
		return matrix.Extract(a, selector...)
	case "row":
		return matrix.Row(a, index)
	case "col":
		return matrix.Col(a, index)
	case "transpose":
		return matrix.Transpose(a)
	case "mul":
		if b == nil {
			return nil, errors.New("-op=mul requires the second operand, see -b_dims and -b_data")
		}
		return matrix.Mul(a, b)
	case "colsum":
		return matrix.ColSum(a)
	case "rowsum":
		return matrix.RowSum(a)
	case "colprod":
		return matrix.ColProd(a)
	case "rowprod":
		return matrix.RowProd(a)
	}
	return nil, errors.Errorf("unknown operation %q", op)
}
