package cards

import "math/rand/v2"

// AssignRarity returns the highest tier whose power and engagement thresholds
// are both met. Common has zero thresholds and always matches.
func (t Tables) AssignRarity(power int, engagement float64) Rarity {
	for r := Legendary; r > Common; r-- {
		th := t.Thresholds.Get(r)
		if power >= th.PowerMin && engagement >= th.EngagementMin {
			return r
		}
	}
	return Common
}

// WeightedRarity draws a tier from the default rarity weights.
func (t Tables) WeightedRarity(rng *rand.Rand, exclude ...Rarity) Rarity {
	return t.RarityWeights.Draw(rng, exclude...)
}

// Draw samples a tier proportionally to its weight, skipping excluded tiers
// and tiers with non-positive weight. An empty pool yields Common.
func (w Weights) Draw(rng *rand.Rand, exclude ...Rarity) Rarity {
	var skip ByRarity[bool]
	for _, r := range exclude {
		if r.Valid() {
			skip[r] = true
		}
	}

	total := 0
	for _, r := range AllRarities {
		if !skip[r] && w[r] > 0 {
			total += w[r]
		}
	}
	if total == 0 {
		return Common
	}

	draw := rng.IntN(total)
	cumulative := 0
	for _, r := range AllRarities {
		if skip[r] || w[r] <= 0 {
			continue
		}
		cumulative += w[r]
		if draw < cumulative {
			return r
		}
	}
	return Common
}
