package packs

import (
	"math/rand/v2"

	"musiclegends/cards"
)

// forceBalance is the terminal fallback once every redraw failed. It edits
// secondaries in place and always leaves a pack that passes balanced:
//
//  1. secondaries whose power exceeds the per-card budget plus ForceSlack
//     step down one rarity tier
//  2. secondary power moves one point at a time toward the allowed window
//  3. duplicated rarities are retargeted to the nearest missing tier until
//     enough distinct rarities are present
func (g *Generator) forceBalance(rng *rand.Rand, hero cards.Card, secondaries []cards.Card) {
	if len(secondaries) == 0 {
		return
	}

	target := (g.cfg.MinTotalPower+g.cfg.MaxTotalPower)/2 - hero.Power
	budget := target / len(secondaries)
	for i := range secondaries {
		c := &secondaries[i]
		if c.Power > budget+g.cfg.ForceSlack && c.Rarity > cards.Common {
			g.factory.Retarget(rng, c, c.Rarity.Downgrade())
		}
	}

	g.clampTotalPower(hero, secondaries)
	g.ensureVariety(rng, hero, secondaries)
}

func (g *Generator) clampTotalPower(hero cards.Card, secondaries []cards.Card) {
	tables := g.factory.Tables()
	total := hero.Power + totalPower(secondaries)
	changed := make([]bool, len(secondaries))

	for total > g.cfg.MaxTotalPower {
		i := strongest(secondaries)
		if i < 0 {
			break
		}
		secondaries[i].Power--
		changed[i] = true
		total--
	}
	for total < g.cfg.MinTotalPower {
		i := weakest(secondaries)
		if i < 0 {
			break
		}
		secondaries[i].Power++
		changed[i] = true
		total++
	}

	for i, dirty := range changed {
		if dirty {
			secondaries[i].Cost = tables.Cost(secondaries[i].Power, secondaries[i].Rarity)
		}
	}
}

func (g *Generator) ensureVariety(rng *rand.Rand, hero cards.Card, secondaries []cards.Card) {
	want := min(g.cfg.MinRarities, len(cards.AllRarities))
	for {
		counts := rarityCounts(hero, secondaries)
		if distinct(counts) >= want {
			return
		}

		progressed := false
		for i := range secondaries {
			r := secondaries[i].Rarity
			if counts[r] < 2 {
				continue
			}
			if missing, ok := nearestMissing(counts, r); ok {
				g.factory.Retarget(rng, &secondaries[i], missing)
				progressed = true
				break
			}
		}
		if !progressed {
			return
		}
	}
}

// strongest returns the index of the highest-power secondary that can still
// lose a point, or -1.
func strongest(secondaries []cards.Card) int {
	best := -1
	for i, c := range secondaries {
		if c.Power > cards.MinPower && (best < 0 || c.Power > secondaries[best].Power) {
			best = i
		}
	}
	return best
}

// weakest returns the index of the lowest-power secondary that can still
// gain a point, or -1.
func weakest(secondaries []cards.Card) int {
	best := -1
	for i, c := range secondaries {
		if c.Power < cards.MaxPower && (best < 0 || c.Power < secondaries[best].Power) {
			best = i
		}
	}
	return best
}

func rarityCounts(hero cards.Card, secondaries []cards.Card) cards.ByRarity[int] {
	var counts cards.ByRarity[int]
	counts[hero.Rarity]++
	for _, c := range secondaries {
		counts[c.Rarity]++
	}
	return counts
}

func distinct(counts cards.ByRarity[int]) int {
	n := 0
	for _, c := range counts {
		if c > 0 {
			n++
		}
	}
	return n
}

// nearestMissing finds the closest absent tier to r, preferring lower tiers.
func nearestMissing(counts cards.ByRarity[int], r cards.Rarity) (cards.Rarity, bool) {
	for d := 1; d < len(counts); d++ {
		if lo := r - cards.Rarity(d); lo >= cards.Common && counts[lo] == 0 {
			return lo, true
		}
		if hi := r + cards.Rarity(d); hi <= cards.Legendary && counts[hi] == 0 {
			return hi, true
		}
	}
	return r, false
}
