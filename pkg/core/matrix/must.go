// Copyright 2026 The Flashlight Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"github.com/flashlight-ml/flashlight/pkg/core/dtypes"
	"github.com/flashlight-ml/flashlight/pkg/core/tensors"
	"github.com/janpfeifer/must"
)

// MustExtract is like Extract, but panics on error.
func MustExtract[T dtypes.Supported](t *tensors.Tensor[T], selector ...int) *tensors.Tensor[T] {
	return must.M1(Extract(t, selector...))
}

// MustRow is like Row, but panics on error.
func MustRow[T dtypes.Supported](t *tensors.Tensor[T], row int) *tensors.Tensor[T] {
	return must.M1(Row(t, row))
}

// MustCol is like Col, but panics on error.
func MustCol[T dtypes.Supported](t *tensors.Tensor[T], col int) *tensors.Tensor[T] {
	return must.M1(Col(t, col))
}

// MustTranspose is like Transpose, but panics on error.
func MustTranspose[T dtypes.Supported](t *tensors.Tensor[T]) *tensors.Tensor[T] {
	return must.M1(Transpose(t))
}

// MustMul is like Mul, but panics on error.
func MustMul[T dtypes.Number](a, b *tensors.Tensor[T]) *tensors.Tensor[T] {
	return must.M1(Mul(a, b))
}

// MustColSum is like ColSum, but panics on error.
func MustColSum[T dtypes.Number](t *tensors.Tensor[T]) *tensors.Tensor[T] {
	return must.M1(ColSum(t))
}

// MustRowSum is like RowSum, but panics on error.
func MustRowSum[T dtypes.Number](t *tensors.Tensor[T]) *tensors.Tensor[T] {
	return must.M1(RowSum(t))
}

// MustColProd is like ColProd, but panics on error.
func MustColProd[T dtypes.Number](t *tensors.Tensor[T]) *tensors.Tensor[T] {
	return must.M1(ColProd(t))
}

// MustRowProd is like RowProd, but panics on error.
func MustRowProd[T dtypes.Number](t *tensors.Tensor[T]) *tensors.Tensor[T] {
	return must.M1(RowProd(t))
}

// MustToString is like ToString, but panics on error.
func MustToString[T dtypes.Supported](t *tensors.Tensor[T]) string {
	return must.M1(ToString(t))
}
