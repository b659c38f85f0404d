// Copyright 2026 The Flashlight Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"math/rand/v2"
	"testing"

	"github.com/flashlight-ml/flashlight/pkg/core/tensors"
	"github.com/stretchr/testify/require"
)

func TestSums(t *testing.T) {
	m := tensors.MustFromFlatDataAndDimensions([]int32{1, 2, 3, 4, 5, 6}, 2, 3)
	{
		got, err := ColSum(m)
		require.NoError(t, err)
		require.Equal(t, []int{2, 1}, got.Dimensions())
		require.Equal(t, []int32{6, 15}, got.CopyFlatData())
	}
	{
		got, err := RowSum(m)
		require.NoError(t, err)
		require.Equal(t, []int{1, 3}, got.Dimensions())
		require.Equal(t, []int32{5, 7, 9}, got.CopyFlatData())
	}
	{
		// Both ways of summing everything agree.
		rng := rand.New(rand.NewPCG(17, 19))
		for range 10 {
			rows, cols := rng.IntN(6)+1, rng.IntN(6)+1
			data := make([]int64, rows*cols)
			for ii := range data {
				data[ii] = rng.Int64N(100) - 50
			}
			x := tensors.MustFromFlatDataAndDimensions(data, rows, cols)
			total := MustRowSum(MustColSum(x)).MustValue(0, 0)
			require.Equal(t, total, MustColSum(MustRowSum(x)).MustValue(0, 0))
			var want int64
			for _, v := range data {
				want += v
			}
			require.Equal(t, want, total)
		}
	}
	{
		// Empty lanes sum to zero.
		empty := tensors.FromShape[float32](3, 0)
		require.Equal(t, []float32{0, 0, 0}, MustColSum(empty).CopyFlatData())
		require.Equal(t, []int{1, 0}, MustRowSum(empty).Dimensions())
	}
}

func TestProds(t *testing.T) {
	m := tensors.MustFromFlatDataAndDimensions([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	{
		got, err := ColProd(m)
		require.NoError(t, err)
		require.Equal(t, []int{2, 1}, got.Dimensions())
		require.Equal(t, []float64{6, 120}, got.CopyFlatData())
	}
	{
		got, err := RowProd(m)
		require.NoError(t, err)
		require.Equal(t, []int{1, 3}, got.Dimensions())
		require.Equal(t, []float64{4, 10, 18}, got.CopyFlatData())
	}
	{
		// Seeded with the first element: single element lanes return the element itself.
		single := tensors.MustFromFlatDataAndDimensions([]int8{-3, 0, 7}, 3, 1)
		require.Equal(t, []int8{-3, 0, 7}, MustColProd(single).CopyFlatData())
		require.Equal(t, []int8{0}, MustRowProd(single).CopyFlatData())
	}
	{
		// Empty lanes have no first element to start the product.
		empty := tensors.FromShape[float64](2, 0)
		_, err := ColProd(empty)
		require.ErrorIs(t, err, ErrShapeMismatch)
		// No lanes at all is fine.
		require.Equal(t, []int{1, 0}, MustRowProd(empty).Dimensions())

		_, err = RowProd(tensors.FromShape[float64](0, 2))
		require.ErrorIs(t, err, ErrShapeMismatch)
	}
}

func TestReductionsRankFailures(t *testing.T) {
	vector := tensors.MustFromFlatDataAndDimensions([]float32{1, 2}, 2)
	cube := tensors.MustFromFlatDataAndDimensions(make([]float32, 8), 2, 2, 2)
	reductions := map[string]func(*tensors.Tensor[float32]) (*tensors.Tensor[float32], error){
		"ColSum":  ColSum[float32],
		"RowSum":  RowSum[float32],
		"ColProd": ColProd[float32],
		"RowProd": RowProd[float32],
	}
	for name, reduction := range reductions {
		for _, bad := range []*tensors.Tensor[float32]{vector, cube} {
			got, err := reduction(bad)
			require.ErrorIs(t, err, ErrShapeMismatch, "%s(%s)", name, bad.Shape())
			require.Nil(t, got)
		}
	}
	require.Panics(t, func() { _ = MustRowSum(vector) })
	require.Panics(t, func() { _ = MustColProd(cube) })
}
