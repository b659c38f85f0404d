// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package workerspool limits the number of goroutines used to split row-wise work across CPUs.
package workerspool

import (
	"runtime"
	"sync"
)

type Pool struct {
	// maxParallelism is a soft target on the limit of parallel work to do.
	// The actual number of goroutines is higher than that, see goroutineToParallelismRatio.
	maxParallelism int
	mu             sync.Mutex
	numRunning     int
}

// New return a new Pool of workers with the given parallelism.
// Use 0 to disable parallelism (everything runs inline) and -1 for unlimited parallelism.
func New(maxParallelism int) *Pool {
	return &Pool{maxParallelism: maxParallelism}
}

// IsEnabled returns whether parallelism is enabled (maxParallelism is != 0)
func (w *Pool) IsEnabled() bool {
	return w.maxParallelism != 0
}

// IsUnlimited returns whether parallelism is unlimited (maxParallelism < 0)
func (w *Pool) IsUnlimited() bool {
	return w.maxParallelism < 0
}

// MaxParallelism is a soft-target for parallelism (the limit of goroutines is higher that this).
// If set to 0 parallelism is disabled.
// If set to -1 parallelism is unlimited.
func (w *Pool) MaxParallelism() int {
	return w.maxParallelism
}

const goroutineToParallelismRatio = 2

// lockedIsFull returns whether all available workers are in use.
//
// It must be called with workerPool.mu acquired.
func (w *Pool) lockedIsFull() bool {
	if w.maxParallelism == 0 {
		return true
	} else if w.maxParallelism < 0 {
		return false
	}
	return w.numRunning >= goroutineToParallelismRatio*w.maxParallelism
}

// lockedRunTaskInGoroutine and keep tabs on w.numRunning.
//
// It must be called with workerPool.mu acquired.
func (w *Pool) lockedRunTaskInGoroutine(task func()) {
	w.numRunning++
	go func() {
		task()
		w.mu.Lock()
		w.numRunning--
		w.mu.Unlock()
	}()
}

// StartIfAvailable runs the task in a separate goroutine, if there are enough workers left.
// It returns true if it found workers to run the function, false otherwise.
//
// It's up to the client to synchronize the end of the function execution.
func (w *Pool) StartIfAvailable(task func()) bool {
	if w.IsUnlimited() {
		go task()
		return true
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.lockedIsFull() {
		return false
	}
	w.lockedRunTaskInGoroutine(task)
	return true
}

// numChunks returns in how many chunks to split n items, given that each chunk should hold at least minChunkSize items.
func (w *Pool) numChunks(n, minChunkSize int) int {
	if n <= 0 {
		return 0
	}
	minChunkSize = max(minChunkSize, 1)
	chunks := w.maxParallelism
	if w.IsUnlimited() {
		chunks = runtime.NumCPU()
	}
	chunks = min(chunks, (n+minChunkSize-1)/minChunkSize)
	return max(chunks, 1)
}

// ForEachChunk splits the range [0, n) into contiguous chunks of at least minChunkSize items and calls
// fn(start, end) for each one, returning only when all of them are finished.
//
// Chunks for which no worker is available run inline on the calling goroutine, so it never deadlocks,
// and with parallelism disabled it is a plain sequential loop over one chunk.
func (w *Pool) ForEachChunk(n, minChunkSize int, fn func(start, end int)) {
	chunks := w.numChunks(n, minChunkSize)
	if chunks == 0 {
		return
	}
	if chunks == 1 || !w.IsEnabled() {
		fn(0, n)
		return
	}
	chunkSize := (n + chunks - 1) / chunks
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		if end == n {
			// Last chunk is always run by the caller.
			fn(start, end)
			break
		}
		wg.Add(1)
		task := func() {
			defer wg.Done()
			fn(start, end)
		}
		if !w.StartIfAvailable(task) {
			task()
		}
	}
	wg.Wait()
}
