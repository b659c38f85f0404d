// Copyright 2026 The Flashlight Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/flashlight-ml/flashlight/pkg/core/tensors"
	"github.com/gomlx/exceptions"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// withConfig sets the matrix configuration for the duration of the test.
func withConfig(tb testing.TB, config Config) {
	tb.Helper()
	previous := CurrentConfig()
	SetConfig(config)
	tb.Cleanup(func() { SetConfig(previous) })
}

func randomMatrix(rng *rand.Rand, rows, cols int) *tensors.Tensor[float64] {
	data := make([]float64, rows*cols)
	for ii := range data {
		data[ii] = rng.Float64()*2 - 1
	}
	return tensors.MustFromFlatDataAndDimensions(data, rows, cols)
}

func TestMul(t *testing.T) {
	{
		a := tensors.MustFromFlatDataAndDimensions([]float32{1, 2, 3, 4, 5, 6}, 3, 2)
		b := tensors.MustFromFlatDataAndDimensions([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
		got, err := MulFloat32(a, b)
		require.NoError(t, err)
		require.Equal(t, []int{3, 3}, got.Dimensions())
		require.Equal(t, []float32{9, 12, 15, 19, 26, 33, 29, 40, 51}, got.CopyFlatData())

		// Inputs untouched.
		require.Equal(t, []float32{1, 2, 3, 4, 5, 6}, a.CopyFlatData())
		require.Equal(t, []int{3, 2}, a.Dimensions())
	}
	{
		// Generic over integer and complex types.
		a := tensors.MustFromFlatDataAndDimensions([]int32{1, 2, 3, 4}, 2, 2)
		require.Equal(t, []int32{7, 10, 15, 22}, MustMul(a, a).CopyFlatData())

		c := tensors.MustFromFlatDataAndDimensions([]complex64{1i, 0, 0, 1i}, 2, 2)
		require.Equal(t, []complex64{-1, 0, 0, -1}, MustMul(c, c).CopyFlatData())
	}
	{
		// Identity laws.
		m := tensors.MustFromFlatDataAndDimensions([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
		require.True(t, MustMul(Identity[float64](2), m).Equal(m))
		require.True(t, MustMul(m, Identity[float64](3)).Equal(m))
	}
	{
		// Result shape is [a.rows, b.cols], for every compatible pair.
		rng := rand.New(rand.NewPCG(1, 2))
		for _, dims := range [][3]int{{1, 1, 1}, {1, 5, 1}, {4, 1, 3}, {3, 4, 2}, {2, 0, 3}, {0, 3, 2}} {
			a := randomMatrix(rng, dims[0], dims[1])
			b := randomMatrix(rng, dims[1], dims[2])
			got, err := Mul(a, b)
			require.NoError(t, err, "dims=%v", dims)
			require.Equal(t, []int{dims[0], dims[2]}, got.Dimensions(), "dims=%v", dims)
		}
	}
	{
		// Inner dimension zero: all zeros.
		a := tensors.FromShape[float32](2, 0)
		b := tensors.FromShape[float32](0, 3)
		require.Equal(t, make([]float32, 6), MustMul(a, b).CopyFlatData())
	}
	{
		// Failures.
		a := tensors.MustFromFlatDataAndDimensions([]float32{1, 2, 3, 4, 5, 6}, 3, 2)
		got, err := Mul(a, a)
		require.ErrorIs(t, err, ErrShapeMismatch)
		require.Nil(t, got)

		vector := tensors.MustFromFlatDataAndDimensions([]float32{1, 2}, 2)
		cube := tensors.MustFromFlatDataAndDimensions(make([]float32, 8), 2, 2, 2)
		_, err = Mul(vector, a)
		require.ErrorIs(t, err, ErrShapeMismatch)
		_, err = Mul(a, vector)
		require.ErrorIs(t, err, ErrShapeMismatch)
		_, err = Mul(cube, cube)
		require.ErrorIs(t, err, ErrShapeMismatch)
		_, err = Mul(a, cube)
		require.ErrorIs(t, err, ErrShapeMismatch)

		err = exceptions.TryCatch[error](func() { _ = MustMul(a, a) })
		require.ErrorIs(t, err, ErrShapeMismatch)
	}
}

func TestMulAgainstGonum(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	for _, dims := range [][3]int{{1, 1, 1}, {3, 4, 5}, {7, 2, 9}, {16, 16, 16}, {5, 33, 3}} {
		a := randomMatrix(rng, dims[0], dims[1])
		b := randomMatrix(rng, dims[1], dims[2])
		got := MustMul(a, b)

		var want mat.Dense
		want.Mul(mat.NewDense(dims[0], dims[1], a.CopyFlatData()), mat.NewDense(dims[1], dims[2], b.CopyFlatData()))
		wantT := tensors.MustFromFlatDataAndDimensions(want.RawMatrix().Data, dims[0], dims[2])
		require.True(t, tensors.InDelta(got, wantT, 1e-9), "dims=%v:\ngot %s\nwant %s", dims, got, wantT)
	}
}

func TestMulAssociative(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	a := randomMatrix(rng, 3, 4)
	b := randomMatrix(rng, 4, 5)
	c := randomMatrix(rng, 5, 2)
	left := MustMul(MustMul(a, b), c)
	right := MustMul(a, MustMul(b, c))
	require.True(t, tensors.InDelta(left, right, 1e-9))

	// Float32 associativity only holds within a looser tolerance.
	a32 := tensors.MustFromFlatDataAndDimensions([]float32{0.1, 0.2, 0.3, 0.4}, 2, 2)
	left32 := MustMul(MustMul(a32, a32), a32)
	right32 := MustMul(a32, MustMul(a32, a32))
	require.True(t, tensors.InDelta(left32, right32, 1e-5))
}

func TestMulParallel(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 13))
	a := randomMatrix(rng, 37, 8)
	b := randomMatrix(rng, 8, 5)

	withConfig(t, Config{MaxParallelism: 0})
	sequential := MustMul(a, b)

	for _, parallelism := range []int{1, 3, -1} {
		SetConfig(Config{MaxParallelism: parallelism, MinParallelRows: 2})
		got := MustMul(a, b)
		require.True(t, got.Equal(sequential), "parallelism=%d", parallelism)
	}

	// Below MinParallelRows it stays sequential, with the same result.
	SetConfig(Config{MaxParallelism: 4, MinParallelRows: 1000})
	require.True(t, MustMul(a, b).Equal(sequential))
}

func BenchmarkMul(b *testing.B) {
	rng := rand.New(rand.NewPCG(1, 1))
	data := make([]float32, 256*256)
	for ii := range data {
		data[ii] = rng.Float32()
	}
	m := tensors.MustFromFlatDataAndDimensions(data, 256, 256)
	for _, parallelism := range []int{0, -1} {
		b.Run(fmt.Sprintf("parallelism=%d", parallelism), func(b *testing.B) {
			withConfig(b, Config{MaxParallelism: parallelism, MinParallelRows: 2})
			b.ResetTimer()
			for range b.N {
				_ = MustMul(m, m)
			}
		})
	}
}
