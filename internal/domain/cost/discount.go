// Package cost implements the stepwise craft-discount curve and the
// reference values used to normalize the planner's bi-objective.
package cost

import "math"

// DiscountCap is the number of distinct discount steps; at n ≥ 300 the
// discount is flat at 10% of base cost.
const DiscountCap = 300

// Discount returns d(base, n): the per-unit GE cost of crafting the
// (n+1)th copy of an item whose base cost is base and whose lifetime
// craft count is currently n. Nonincreasing in n; flat at floor(base*0.1)
// once n ≥ DiscountCap.
func Discount(base float64, n int) float64 {
	if n >= DiscountCap {
		return math.Floor(base * 0.1)
	}
	ratio := math.Min(1, float64(n)/DiscountCap)
	return math.Floor(base * (1 - 0.9*math.Pow(ratio, 0.2)))
}

// BatchCost sums Discount(base, startCount+j) for j in [0, count), i.e.
// the total GE cost of crafting `count` additional units starting from a
// lifetime craft count of startCount.
func BatchCost(base float64, startCount, count int) float64 {
	var total float64
	for j := 0; j < count; j++ {
		total += Discount(base, startCount+j)
	}
	return total
}
