package utils

import (
	"github.com/dustin/go-humanize"
	"golang.org/x/exp/constraints"
)

// Count formats n with thousands separators followed by noun, pluralized
// with a trailing "s" unless n is 1. Count(3412, "asset") is "3,412 assets"
func Count[N constraints.Integer](n N, noun string) string {
	if n != 1 {
		noun += "s"
	}
	return humanize.Comma(int64(n)) + " " + noun
}
