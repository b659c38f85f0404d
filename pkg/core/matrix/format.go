// Copyright 2026 The Flashlight Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/flashlight-ml/flashlight/pkg/core/dtypes"
	"github.com/flashlight-ml/flashlight/pkg/core/tensors"
	"github.com/flashlight-ml/flashlight/pkg/support/xslices"
)

// ToString renders the matrix one row per line, each row enclosed in "|" and its elements
// separated by ", ". There is no trailing newline. Elements are formatted with tensors.FormatValue.
//
// Example: [[1, 2], [3, 4]] renders as "|1, 2|\n|3, 4|".
func ToString[T dtypes.Supported](t *tensors.Tensor[T]) (string, error) {
	rows, cols, err := matrixDims("matrix.ToString", t)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	t.ConstFlatData(func(flat []T) {
		for row := range rows {
			if row > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteByte('|')
			sb.WriteString(strings.Join(xslices.Map(flat[row*cols:(row+1)*cols], tensors.FormatValue[T]), ", "))
			sb.WriteByte('|')
		}
	})
	return sb.String(), nil
}

var (
	renderCellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	renderHeaderStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Align(lipgloss.Center)
)

// Render draws the matrix as a bordered table for terminals, with the row and column indices
// as the first column and header.
func Render[T dtypes.Supported](t *tensors.Tensor[T]) (string, error) {
	rows, cols, err := matrixDims("matrix.Render", t)
	if err != nil {
		return "", err
	}
	table := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow || col == 0 {
				return renderHeaderStyle
			}
			return renderCellStyle
		})
	headers := append([]string{t.Shape().String()}, xslices.Map(xslices.Iota(0, cols), strconv.Itoa)...)
	table.Headers(headers...)
	t.ConstFlatData(func(flat []T) {
		for row := range rows {
			values := xslices.Map(flat[row*cols:(row+1)*cols], tensors.FormatValue[T])
			table.Row(append([]string{strconv.Itoa(row)}, values...)...)
		}
	})
	return table.String(), nil
}
