// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import "iter"

// Iter iterates sequentially over all possible indices of the given shape, in row-major order.
//
// It yields the flat index (counter) and a slice of indices for each axis.
//
// To avoid allocating the slice of indices, the yielded indices is owned by the Iter() method:
// don't change it inside the loop.
func (s Shape) Iter() iter.Seq2[int, []int] {
	return func(yield func(int, []int) bool) {
		if !s.Ok() || s.IsZeroSize() {
			return
		}
		rank := s.Rank()
		indices := make([]int, rank)
		if rank == 0 {
			// Valid scalar: yield one empty index slice.
			_ = yield(0, indices)
			return
		}

		flatIdx := 0
		for {
			if !yield(flatIdx, indices) {
				return
			}
			flatIdx++

			// Increment indices, the last axis changes fastest.
			axis := rank - 1
			for ; axis >= 0; axis-- {
				indices[axis]++
				if indices[axis] < s.Dimensions[axis] {
					break
				}
				// Carry-over to the next outer axis.
				indices[axis] = 0
			}
			if axis < 0 {
				return
			}
		}
	}
}
