// Copyright 2026 The Flashlight Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"math"
	"testing"

	"github.com/flashlight-ml/flashlight/pkg/core/tensors"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestToString(t *testing.T) {
	{
		m := tensors.MustFromFlatDataAndDimensions([]float32{1, 2, 3, 4}, 2, 2)
		got, err := ToString(m)
		require.NoError(t, err)
		require.Equal(t, "|1, 2|\n|3, 4|", got)
	}
	{
		m := tensors.MustFromFlatDataAndDimensions([]float64{0.5, -1.25, 3}, 1, 3)
		require.Equal(t, "|0.5, -1.25, 3|", MustToString(m))
	}
	{
		m := tensors.MustFromFlatDataAndDimensions([]int32{7, 8, 9}, 3, 1)
		require.Equal(t, "|7|\n|8|\n|9|", MustToString(m))
	}
	{
		m := tensors.MustFromFlatDataAndDimensions([]float16.Float16{float16.Fromfloat32(1.5), float16.Fromfloat32(-2)}, 1, 2)
		require.Equal(t, "|1.5, -2|", MustToString(m))
	}
	{
		m := tensors.MustFromFlatDataAndDimensions([]float64{1e21, 1e-7, math.Inf(1), math.Inf(-1)}, 2, 2)
		require.Equal(t, "|1000000000000000000000, 0.0000001|\n|inf, -inf|", MustToString(m))
	}
	{
		// Degenerate shapes.
		require.Equal(t, "", MustToString(tensors.FromShape[float32](0, 3)))
		require.Equal(t, "||\n||", MustToString(tensors.FromShape[float32](2, 0)))
	}
	{
		// Failures.
		_, err := ToString(tensors.MustFromFlatDataAndDimensions([]float32{1, 2}, 2))
		require.ErrorIs(t, err, ErrShapeMismatch)
		_, err = ToString(tensors.MustFromFlatDataAndDimensions(make([]float32, 8), 2, 2, 2))
		require.ErrorIs(t, err, ErrShapeMismatch)
		require.Panics(t, func() { _ = MustToString(tensors.FromScalar(float32(1))) })
	}
}

func TestRender(t *testing.T) {
	m := tensors.MustFromFlatDataAndDimensions([]float64{1.5, 22, -3, 4}, 2, 2)
	got, err := Render(m)
	require.NoError(t, err)
	for _, want := range []string{"(Float64)[2 2]", "1.5", "22", "-3", "4"} {
		require.Contains(t, got, want)
	}

	_, err = Render(tensors.MustFromFlatDataAndDimensions([]float64{1}, 1))
	require.ErrorIs(t, err, ErrShapeMismatch)
}
