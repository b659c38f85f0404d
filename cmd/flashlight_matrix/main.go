// Copyright 2026 The Flashlight Authors. SPDX-License-Identifier: Apache-2.0

// flashlight_matrix applies one matrix operation to tensors given in the command line, and
// prints the result as a table.
//
// Example:
//
//	flashlight_matrix -op=mul -dims=3,2 -data=1,2,3,4,5,6 -b_dims=2,3 -b_data=1,2,3,4,5,6
//	flashlight_matrix -op=colsum -dtype=int32 -dims=2,3 -data=1,2,3,4,5,6
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/flashlight-ml/flashlight/pkg/core/dtypes"
	"github.com/flashlight-ml/flashlight/pkg/core/matrix"
	"github.com/flashlight-ml/flashlight/pkg/support/xslices"
	"k8s.io/klog/v2"
)

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

var (
	flagOp = flag.String("op", "transpose",
		"Operation to apply: extract, row, col, transpose, mul, colsum, rowsum, colprod, rowprod.")
	flagDType = flag.String("dtype", "float64",
		"Element type of the tensors, a dtype name or alias like float32, f64 or int32. Only real number types.")
	flagDims     = xslices.Flag("dims", []int{2, 2}, "Dimensions of the input tensor.", strconv.Atoi)
	flagData     = xslices.Flag("data", []float64{1, 2, 3, 4}, "Flat values of the input tensor, row-major.", parseFloat)
	flagBDims    = xslices.Flag("b_dims", nil, "Dimensions of the second operand, for -op=mul.", strconv.Atoi)
	flagBData    = xslices.Flag("b_data", nil, "Flat values of the second operand, for -op=mul.", parseFloat)
	flagSelector = xslices.Flag("selector", nil, "Selector of the leading axes, for -op=extract.", strconv.Atoi)
	flagIndex    = flag.Int("index", 0, "Row or column index, for -op=row and -op=col.")
	flagConfig   = flag.String("config", "", "Matrix configuration, see matrix.ParseConfig. "+
		"If empty, $"+matrix.FLASHLIGHT_MATRIX+" is used.")
	flagSummary = flag.Bool("summary", false, "Also print the numpy-like summary of the result.")
)

var titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *flagConfig != "" {
		config, err := matrix.ParseConfig(*flagConfig)
		if err != nil {
			klog.Errorf("Invalid -config: %+v", err)
			os.Exit(1)
		}
		matrix.SetConfig(config)
	}

	dtype, err := dtypes.FromName(*flagDType)
	if err != nil {
		klog.Errorf("Invalid -dtype: %v", err)
		os.Exit(1)
	}
	out, err := run(dtype, *flagOp, operands{
		dims:     *flagDims,
		data:     *flagData,
		bDims:    *flagBDims,
		bData:    *flagBData,
		index:    *flagIndex,
		selector: *flagSelector,
	})
	if err != nil {
		klog.Errorf("%v", err)
		os.Exit(1)
	}
	fmt.Println(titleStyle.Render(*flagOp))
	fmt.Println(out.table)
	if *flagSummary {
		fmt.Println(out.summary)
	}
}
