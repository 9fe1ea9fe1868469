package asstag

import (
	"math"
	"strconv"
)

// maxExactInt is the largest magnitude for which every integral float64 is exact.
const maxExactInt = 1 << 53

// FormatNumber renders a numeric tag argument in its shortest form.
// Integral values are printed without a decimal point, all other values as the
// shortest decimal literal which converts back to the same float64:
//
//	FormatNumber(3.0)  => "3"
//	FormatNumber(3.5)  => "3.5"
//	FormatNumber(-0.0) => "0"
//
// Every coordinate, size, angle, duration and time emitted by package compose
// goes through FormatNumber.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < maxExactInt {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatInt is FormatNumber for integer arguments.
func FormatInt(n int) string {
	return strconv.Itoa(n)
}
