package cards

import "math/rand/v2"

// Ability is a named card trait that a track earns when its raw metrics
// satisfy Qualifies.
type Ability struct {
	Name      string
	Qualifies func(views, likes int64) bool
}

// DefaultAbilities returns the six metric-driven abilities in display order.
func DefaultAbilities() []Ability {
	return []Ability{
		{Name: "Trendsetter", Qualifies: func(views, _ int64) bool {
			return views > 1_000_000
		}},
		{Name: "Viral Surge", Qualifies: func(views, likes int64) bool {
			return float64(likes)/float64(max(views, 1)) > 0.10
		}},
		{Name: "Chart Topper", Qualifies: func(views, _ int64) bool {
			return views > 100_000_000
		}},
		{Name: "Fan Favorite", Qualifies: func(_, likes int64) bool {
			return likes > 500_000
		}},
		{Name: "Hidden Gem", Qualifies: func(views, likes int64) bool {
			return views < 100_000 && EngagementRatio(views, likes) > 0.05
		}},
		{Name: "Steady Groove", Qualifies: func(views, likes int64) bool {
			ratio := EngagementRatio(views, likes)
			return likes >= 1_000 && ratio >= 0.02 && ratio <= 0.10
		}},
	}
}

// GenerateAbilities collects every ability the metrics qualify for, then
// appends the tier's bonus abilities drawn without replacement from the ones
// not yet earned. The bonus is truncated when too few remain.
func (t Tables) GenerateAbilities(rng *rand.Rand, views, likes int64, r Rarity) []string {
	earned := make([]string, 0, len(t.Abilities))
	var unclaimed []string
	for _, a := range t.Abilities {
		if a.Qualifies(views, likes) {
			earned = append(earned, a.Name)
		} else {
			unclaimed = append(unclaimed, a.Name)
		}
	}

	bonus := min(t.BonusAbilities.Get(r), len(unclaimed))
	// partial Fisher-Yates over the unclaimed names
	for i := 0; i < bonus; i++ {
		j := i + rng.IntN(len(unclaimed)-i)
		unclaimed[i], unclaimed[j] = unclaimed[j], unclaimed[i]
		earned = append(earned, unclaimed[i])
	}
	return earned
}
