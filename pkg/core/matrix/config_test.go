// Copyright 2026 The Flashlight Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	{
		c, err := ParseConfig("")
		require.NoError(t, err)
		require.Equal(t, Config{MaxParallelism: 0, MinParallelRows: DefaultMinParallelRows}, c)
	}
	{
		c, err := ParseConfig("parallelism=4, min_parallel_rows=8")
		require.NoError(t, err)
		require.Equal(t, Config{MaxParallelism: 4, MinParallelRows: 8}, c)
	}
	{
		c, err := ParseConfig("parallelism=-1,,")
		require.NoError(t, err)
		require.Equal(t, -1, c.MaxParallelism)
	}
	{
		// Later options override earlier ones.
		c, err := ParseConfig("parallelism=4,sequential")
		require.NoError(t, err)
		require.Equal(t, 0, c.MaxParallelism)
	}
	for _, bad := range []string{"parallelism", "parallelism=x", "parallelism=-2", "min_parallel_rows=-1",
		"sequential=1", "turbo"} {
		_, err := ParseConfig(bad)
		require.Error(t, err, "config=%q", bad)
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	previous := activeExecutor.Load()
	t.Cleanup(func() { activeExecutor.Store(previous) })

	{
		t.Setenv(FLASHLIGHT_MATRIX, "parallelism=2,min_parallel_rows=10")
		activeExecutor.Store(nil)
		require.Equal(t, Config{MaxParallelism: 2, MinParallelRows: 10}, CurrentConfig())
		require.True(t, currentExecutor().pool.IsEnabled())
	}
	{
		// Invalid configuration falls back to the defaults.
		t.Setenv(FLASHLIGHT_MATRIX, "no_such_option")
		activeExecutor.Store(nil)
		require.Equal(t, Config{MinParallelRows: DefaultMinParallelRows}, CurrentConfig())
		require.False(t, currentExecutor().pool.IsEnabled())
	}
	{
		SetConfig(Config{MaxParallelism: -1, MinParallelRows: 1})
		require.Equal(t, Config{MaxParallelism: -1, MinParallelRows: 1}, CurrentConfig())
		require.True(t, currentExecutor().pool.IsUnlimited())
	}
}
