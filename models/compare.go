package models

import (
	"math"
	"strings"

	"github.com/alfurqan/academy-admin/utils"
)

// Comparison helpers shared by the per-entity comparators. Direction is
// applied by the caller; these always order ascending. Missing values (NaN
// floats, unparsable date strings) compare as negative infinity, so they
// surface first in ascending order and sink last in descending order.

func CompareStringsFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func CompareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func CompareFloats(a, b float64) int {
	if math.IsNaN(a) {
		a = math.Inf(-1)
	}
	if math.IsNaN(b) {
		b = math.Inf(-1)
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func CompareDateStrings(a, b string) int {
	ta, okA := utils.ParseDateString(a)
	tb, okB := utils.ParseDateString(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return -1
	case !okB:
		return 1
	case ta.Before(tb):
		return -1
	case ta.After(tb):
		return 1
	}
	return 0
}
