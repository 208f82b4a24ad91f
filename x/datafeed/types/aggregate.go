package types

import (
	"math/big"
	"sort"

	sdkmath "cosmossdk.io/math"
)

// Median returns the floor median of the values: the middle element for
// an odd count, the floored average of the two middle elements for an
// even count. The input slice is not modified.
func Median(values []sdkmath.Int) sdkmath.Int {
	if len(values) == 0 {
		return sdkmath.ZeroInt()
	}
	sorted := make([]sdkmath.Int, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LT(sorted[j])
	})

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	sum := new(big.Int).Add(sorted[mid-1].BigInt(), sorted[mid].BigInt())
	return sdkmath.NewIntFromBigInt(sum.Div(sum, big.NewInt(2)))
}

// Majority returns true when strictly more than half of the votes are
// true.
func Majority(votes []bool) bool {
	count := 0
	for _, v := range votes {
		if v {
			count++
		}
	}
	return count*2 > len(votes)
}

// Aggregate reduces the raw submission values for a response type:
// median for numeric types, majority vote for bool, and the first
// submission for opaque payloads.
func (rt ResponseType) Aggregate(values []string) string {
	if len(values) == 0 {
		return ""
	}
	switch rt {
	case ResponseUint128, ResponseInt256:
		ints := make([]sdkmath.Int, 0, len(values))
		for _, v := range values {
			parsed, ok := sdkmath.NewIntFromString(v)
			if !ok {
				continue
			}
			ints = append(ints, parsed)
		}
		return Median(ints).String()
	case ResponseBool:
		votes := make([]bool, 0, len(values))
		for _, v := range values {
			votes = append(votes, v == "true")
		}
		if Majority(votes) {
			return "true"
		}
		return "false"
	default:
		return values[0]
	}
}
