// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/flashlight-ml/flashlight/pkg/core/dtypes"
	"github.com/flashlight-ml/flashlight/pkg/support/xslices"
	"github.com/x448/float16"
)

// FormatValue formats one element for display.
//
// Floating point values are printed in positional notation with the fewest digits that represent
// them exactly (1e21 prints as "1000000000000000000000"), infinities as "inf" or "-inf" and NaN as "NaN".
// Float16 values are printed as their float32 value. Other types use Go's default formatting ("%v").
func FormatValue[T dtypes.Supported](v T) string {
	switch x := any(v).(type) {
	case float16.Float16:
		return formatFloat(float64(x.Float32()), 32)
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	}
	return fmt.Sprintf("%v", v)
}

func formatFloat(v float64, bitSize int) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, bitSize)
}

// formatWithPrecision formats one element using at most precision significant digits for
// floating point values.
func formatWithPrecision(v any, precision int) string {
	switch x := v.(type) {
	case float16.Float16:
		return fmt.Sprintf("%.*g", precision, x.Float32())
	case float32, float64:
		return fmt.Sprintf("%.*g", precision, x)
	case complex64:
		return fmt.Sprintf("(%.*g+%.*gi)", precision, real(x), precision, imag(x))
	case complex128:
		return fmt.Sprintf("(%.*g+%.*gi)", precision, real(x), precision, imag(x))
	default:
		return fmt.Sprintf("%v", x)
	}
}

// summaryEllipsisThreshold is the number of elements (or rows) above which Summary elides the middle ones.
const summaryEllipsisThreshold = 6

// Summary returns a multi-line summary of the Tensor's content.
// Inspired by numpy output: the first line has the shape and the memory used, followed by the values
// as a Go-like nested literal. Axes longer than 6 only show their first 3 and last 3 entries.
func (t *Tensor[T]) Summary(precision int) string {
	t.AssertValid()
	var buf bytes.Buffer
	w := func(format string, args ...any) { _, _ = fmt.Fprintf(&buf, format, args...) }
	w("%s %s", t.shape, humanize.Bytes(uint64(t.Memory())))
	if t.shape.IsZeroSize() {
		return buf.String()
	}
	w("\n")

	dims := t.shape.Dimensions
	for _, dim := range dims {
		w("[%d]", dim)
	}
	w("%s", t.shape.DType.GoStr())
	if len(dims) == 0 {
		w("(%s)", formatWithPrecision(t.flat[0], precision))
		return buf.String()
	}

	var printElements func(index, indent int, currentDims []int)
	printElements = func(index, indent int, currentDims []int) {
		w("{")
		if len(currentDims) == 1 {
			// One row of data.
			for ii := range currentDims[0] {
				if currentDims[0] > summaryEllipsisThreshold && ii >= 3 && ii < currentDims[0]-3 {
					if ii == 3 {
						w(", ...")
					}
					continue
				}
				if ii > 0 {
					w(", ")
				}
				w("%s", formatWithPrecision(t.flat[index+ii], precision))
			}
			w("}")
			return
		}

		// Outer axes: one sub-block per entry, on separate lines.
		stride := xslices.Product(currentDims[1:])
		indentStr := strings.Repeat(" ", indent+1)
		for ii := range currentDims[0] {
			if currentDims[0] > summaryEllipsisThreshold && ii >= 3 && ii < currentDims[0]-3 {
				if ii == 3 {
					w(",\n%s...", indentStr)
				}
				continue
			}
			if ii > 0 {
				w(",\n%s", indentStr)
			}
			printElements(index+ii*stride, indent+1, currentDims[1:])
		}
		w("}")
	}
	printElements(0, 0, dims)
	return buf.String()
}

// TensorStringDefaultPrecision used by Tensor.String.
const TensorStringDefaultPrecision = 4

// String converts to string, if not too large. It uses t.Summary(precision=4).
func (t *Tensor[T]) String() string {
	if t == nil {
		return "<nil tensor>"
	}
	return t.Summary(TensorStringDefaultPrecision)
}

// GoStr converts to string, using a Go-syntax representation of the flat values that can be
// copied&pasted back to code.
func (t *Tensor[T]) GoStr() string {
	t.AssertValid()
	if t.shape.IsZeroSize() {
		// For zero-dimensioned tensors (for some axis), we simply return the shape.
		return t.shape.String()
	}
	if t.IsScalar() {
		return fmt.Sprintf("%s(%s)", t.shape.DType.GoStr(), FormatValue(t.flat[0]))
	}
	return fmt.Sprintf("%s: %s", t.shape, xslices.SliceToGoStr(t.flat))
}
