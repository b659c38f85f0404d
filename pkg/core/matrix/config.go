// Copyright 2026 The Flashlight Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/flashlight-ml/flashlight/internal/workerspool"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// FLASHLIGHT_MATRIX is the environment variable with the configuration to use for the matrix package.
//
// See ParseConfig for the format.
const FLASHLIGHT_MATRIX = "FLASHLIGHT_MATRIX"

// DefaultConfig is the configuration string used if FLASHLIGHT_MATRIX is not set.
//
// It is only read the first time an operation needs the configuration, so it must be set during
// initialization. Use SetConfig to change the configuration later.
var DefaultConfig string

// Config controls how the matrix operations execute. It doesn't change any result.
type Config struct {
	// MaxParallelism for Mul: 0 computes everything sequentially in the calling goroutine,
	// -1 means unlimited, and a positive value is a soft limit on the number of parallel tasks.
	MaxParallelism int

	// MinParallelRows is the minimum number of output rows for Mul to use parallelism.
	MinParallelRows int
}

// DefaultMinParallelRows is the MinParallelRows used when not configured.
const DefaultMinParallelRows = 64

// ParseConfig parses a comma-separated configuration string. Options:
//
//   - "sequential": disables parallelism, the default.
//   - "parallelism=<n>": sets MaxParallelism, -1 for unlimited.
//   - "min_parallel_rows=<n>": sets MinParallelRows.
//
// Empty options are ignored, unknown options or malformed values return an error.
func ParseConfig(config string) (Config, error) {
	c := Config{MinParallelRows: DefaultMinParallelRows}
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, hasValue := strings.Cut(part, "=")
		switch key {
		case "sequential":
			if hasValue {
				return Config{}, errors.Errorf("matrix configuration option %q takes no value", part)
			}
			c.MaxParallelism = 0
		case "parallelism", "min_parallel_rows":
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if !hasValue || err != nil {
				return Config{}, errors.Errorf("matrix configuration option %q requires an integer value", part)
			}
			if key == "parallelism" {
				if n < -1 {
					return Config{}, errors.Errorf("matrix configuration option %q: parallelism must be >= -1", part)
				}
				c.MaxParallelism = n
			} else {
				if n < 0 {
					return Config{}, errors.Errorf("matrix configuration option %q: min_parallel_rows must be >= 0", part)
				}
				c.MinParallelRows = n
			}
		default:
			return Config{}, errors.Errorf("unknown configuration option %q for the matrix package", part)
		}
	}
	return c, nil
}

// executor holds the active configuration and the worker pool built from it.
type executor struct {
	config Config
	pool   *workerspool.Pool
}

var activeExecutor atomic.Pointer[executor]

// SetConfig changes the active configuration. It is safe to call concurrently with running
// operations: those already started keep the configuration they started with.
func SetConfig(config Config) {
	activeExecutor.Store(&executor{
		config: config,
		pool:   workerspool.New(config.MaxParallelism),
	})
}

// CurrentConfig returns the active configuration.
func CurrentConfig() Config {
	return currentExecutor().config
}

// currentExecutor returns the active executor, loading it from FLASHLIGHT_MATRIX (or DefaultConfig)
// at the first use.
func currentExecutor() *executor {
	if e := activeExecutor.Load(); e != nil {
		return e
	}
	configStr, found := os.LookupEnv(FLASHLIGHT_MATRIX)
	if !found {
		configStr = DefaultConfig
	}
	config, err := ParseConfig(configStr)
	if err != nil {
		klog.Warningf("invalid matrix configuration %q, using the defaults: %v", configStr, err)
		config = Config{MinParallelRows: DefaultMinParallelRows}
	} else {
		klog.V(1).Infof("matrix configuration loaded from %q: %+v", configStr, config)
	}
	e := &executor{config: config, pool: workerspool.New(config.MaxParallelism)}
	if !activeExecutor.CompareAndSwap(nil, e) {
		// Some other goroutine (or SetConfig) got there first.
		return activeExecutor.Load()
	}
	return e
}
