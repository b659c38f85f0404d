// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package xslices provide missing functionality to the slices package.
package xslices

import (
	"flag"
	"fmt"
	"math"
	"reflect"
	"strings"

	"golang.org/x/exp/constraints"
)

// Copy creates a new (shallow) copy of T. A short cut to a call to `make` and then `copy`.
//
// Notice it returns an empty non-nil slice for an empty input, so callers can tell "no data" from "no slice".
func Copy[T any](slice []T) []T {
	slice2 := make([]T, len(slice))
	copy(slice2, slice)
	return slice2
}

// FillSlice fills a slice with the given value.
func FillSlice[T any](slice []T, value T) {
	for ii := range slice {
		slice[ii] = value
	}
}

// SliceWithValue creates a slice of given size filled with given value.
func SliceWithValue[T any](size int, value T) []T {
	s := make([]T, size)
	FillSlice(s, value)
	return s
}

// Iota returns a slice of incremental int values, starting with start and of length len.
// Eg: Iota(3.0, 2) -> []float64{3.0, 4.0}
func Iota[T interface {
	constraints.Integer | constraints.Float
}](start T, len int) (slice []T) {
	slice = make([]T, len)
	for ii := range slice {
		slice[ii] = start + T(ii)
	}
	return
}

// Product returns the product of all elements, 1 for an empty slice.
func Product[T constraints.Integer | constraints.Float](slice []T) T {
	product := T(1)
	for _, v := range slice {
		product *= v
	}
	return product
}

// Map executes the given function sequentially for every element on in, and returns a mapped slice.
func Map[In, Out any](in []In, fn func(e In) Out) (out []Out) {
	out = make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return
}

// InDelta checks that s0 and s1 have the same length and that each pair of elements is within delta.
// NaN is never in delta of anything.
func InDelta[T constraints.Integer | constraints.Float](s0, s1 []T, delta float64) bool {
	if len(s0) != len(s1) {
		return false
	}
	for ii, e0 := range s0 {
		diff := math.Abs(float64(e0) - float64(s1[ii]))
		if math.IsNaN(diff) || diff > delta {
			return false
		}
	}
	return true
}

// SliceToGoStr converts the slice to text, in a Go-syntax way that can be copy&pasted back to code.
func SliceToGoStr(slice any) string {
	return fmt.Sprintf("%T%v", slice, recursiveSliceToGoStr(slice))
}

func recursiveSliceToGoStr(slice any) string {
	sliceT := reflect.TypeOf(slice)
	if sliceT.Kind() != reflect.Slice {
		return fmt.Sprintf("%v", slice)
	}
	sliceV := reflect.ValueOf(slice)
	parts := make([]string, 0, sliceV.Len())
	for ii := 0; ii < sliceV.Len(); ii++ {
		parts = append(parts, recursiveSliceToGoStr(sliceV.Index(ii).Interface()))
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

// Flag creates a flag for []T with the given name, description and default value.
// It takes as input a parser for an individual T value, and the flag value is a comma-separated list.
func Flag[T any](name string, defaultValue []T, usage string,
	parserFn func(valueStr string) (T, error)) *[]T {
	f := NewFlagValue(defaultValue, parserFn)
	flag.Var(f, name, usage)
	return &f.parsedSlice
}

// NewFlagValue returns a flag.Value that parses comma-separated lists of T.
func NewFlagValue[T any](defaultValue []T, parserFn func(valueStr string) (T, error)) *SliceFlagValue[T] {
	return &SliceFlagValue[T]{parsedSlice: defaultValue, parserFn: parserFn}
}

// SliceFlagValue implements flag.Value for a slice of T.
type SliceFlagValue[T any] struct {
	parsedSlice []T
	parserFn    func(valueStr string) (T, error)
}

// Get returns the parsed slice.
func (f *SliceFlagValue[T]) Get() []T { return f.parsedSlice }

func (f *SliceFlagValue[T]) String() string {
	if f == nil || len(f.parsedSlice) == 0 {
		return ""
	}
	return strings.Join(Map(f.parsedSlice, func(e T) string { return fmt.Sprintf("%v", e) }), ",")
}

func (f *SliceFlagValue[T]) Set(listStr string) error {
	if listStr == "" {
		f.parsedSlice = make([]T, 0)
		return nil
	}
	parts := strings.Split(listStr, ",")
	parsed := make([]T, len(parts))
	for ii, part := range parts {
		var err error
		parsed[ii], err = f.parserFn(strings.TrimSpace(part))
		if err != nil {
			return err
		}
	}
	f.parsedSlice = parsed
	return nil
}
