package cards

import (
	"math"
	"math/big"
)

const (
	MinPower = 1
	MaxPower = 20
	MinCost  = 1
	MaxCost  = 10
)

// NormalizePower compresses raw view and like counts into a power value in
// [MinPower, MaxPower]. Views contribute 2 points per order of magnitude,
// likes half a point per order of magnitude.
func NormalizePower(views, likes int64) int {
	viewPower := halfDecades(max(views, 1))
	likeBonus := decimalExponent(max(likes, 1)) / 2
	return clamp(viewPower+likeBonus, MinPower, MaxPower)
}

// EngagementRatio is likes per view, clamped to [0, 1]. Zero views yield 0.
func EngagementRatio(views, likes int64) float64 {
	if views <= 0 || likes <= 0 {
		return 0
	}
	return math.Min(1, float64(likes)/float64(views))
}

// Cost derives a play cost from power plus the tier surcharge, clamped to
// [MinCost, MaxCost].
func (t Tables) Cost(power int, r Rarity) int {
	base := max(1, power/3)
	return clamp(base+t.CostSurcharge.Get(r), MinCost, MaxCost)
}

// decimalExponent is floor(log10(n)) for n >= 1.
func decimalExponent(n int64) int {
	e := 0
	for ; n >= 10; n /= 10 {
		e++
	}
	return e
}

// halfDecades is floor(2*log10(n)) for n >= 1, computed in integers: it is
// 2e+1 exactly when n*n >= 10^(2e+1).
func halfDecades(n int64) int {
	e := decimalExponent(n)
	square := new(big.Int).Mul(big.NewInt(n), big.NewInt(n))
	bound := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(2*e+1)), nil)
	if square.Cmp(bound) >= 0 {
		return 2*e + 1
	}
	return 2 * e
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
