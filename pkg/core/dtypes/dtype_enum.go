// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dtypes

import "strconv"

// DType enumerates the element types a Tensor can hold.
//
// The zero value is InvalidDType, so an uninitialized Shape is never mistaken for a valid one.
type DType int32

const (
	// InvalidDType is the zero value, used for uninitialized shapes.
	InvalidDType DType = iota

	// Bool elements can be extracted, transposed and printed, but not reduced or multiplied.
	Bool

	Int8
	Int16
	Int32
	Int64

	Uint8
	Uint16
	Uint32
	Uint64

	// Float16 is IEEE half precision, stored as github.com/x448/float16.Float16.
	// It is not a Number: there is no native Go arithmetic on it.
	Float16
	Float32
	Float64

	Complex64
	Complex128
)

// Short aliases, matching the names used by most numeric libraries.
const (
	F16  = Float16
	F32  = Float32
	F64  = Float64
	I32  = Int32
	I64  = Int64
	C64  = Complex64
	C128 = Complex128
)

var dtypeNames = [...]string{
	InvalidDType: "InvalidDType",
	Bool:         "Bool",
	Int8:         "Int8",
	Int16:        "Int16",
	Int32:        "Int32",
	Int64:        "Int64",
	Uint8:        "Uint8",
	Uint16:       "Uint16",
	Uint32:       "Uint32",
	Uint64:       "Uint64",
	Float16:      "Float16",
	Float32:      "Float32",
	Float64:      "Float64",
	Complex64:    "Complex64",
	Complex128:   "Complex128",
}

// String implements fmt.Stringer.
func (dtype DType) String() string {
	if dtype < 0 || int(dtype) >= len(dtypeNames) {
		return "DType(" + strconv.Itoa(int(dtype)) + ")"
	}
	return dtypeNames[dtype]
}

// MapOfNames to their dtypes, including the short aliases.
// It is later initialized to include the lower-case version of the names.
var MapOfNames = map[string]DType{
	"InvalidDType": InvalidDType,
	"Bool":         Bool,
	"Int8":         Int8,
	"Int16":        Int16,
	"Int32":        Int32,
	"I32":          Int32,
	"Int64":        Int64,
	"I64":          Int64,
	"Uint8":        Uint8,
	"Uint16":       Uint16,
	"Uint32":       Uint32,
	"Uint64":       Uint64,
	"Float16":      Float16,
	"F16":          Float16,
	"Float32":      Float32,
	"F32":          Float32,
	"Float64":      Float64,
	"F64":          Float64,
	"Complex64":    Complex64,
	"C64":          Complex64,
	"Complex128":   Complex128,
	"C128":         Complex128,
}
