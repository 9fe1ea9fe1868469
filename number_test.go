package asstag

import (
	"fmt"
	"math"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{3.0, "3"},
		{3.5, "3.5"},
		{0.0, "0"},
		{math.Copysign(0, -1), "0"},
		{-12, "-12"},
		{0.1, "0.1"},
		{100.25, "100.25"},
		{-0.5, "-0.5"},
		{1e6, "1000000"},
		{123456.789, "123456.789"},
	}
	for _, c := range cases {
		if s := FormatNumber(c.v); s != c.want {
			t.Errorf("expected %v to format as %q, is %q", c.v, c.want, s)
		}
	}
}

func TestFormatNumberHuge(t *testing.T) {
	// beyond 2^53 integral floats fall back to the decimal formatter
	s := FormatNumber(1e20)
	if s != "100000000000000000000" {
		t.Errorf("expected 1e20 to format without exponent, is %q", s)
	}
}

func ExampleFormatNumber() {
	fmt.Println(FormatNumber(3), FormatNumber(3.5), FormatNumber(0))
	// Output: 3 3.5 0
}
