package packs

import (
	"time"

	"musiclegends/cards"
	"musiclegends/scoring"
)

// Result is the outcome of one pack generation. On failure only Success,
// Error and HeroSource are set, so the pointer fields stay out of the JSON.
type Result struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	HeroSource string `json:"hero_source"`

	ID                 string               `json:"id,omitempty"`
	CreatedAt          *time.Time           `json:"created_at,omitempty"`
	HeroCard           *cards.Card          `json:"hero_card,omitempty"`
	SecondaryCards     []cards.Card         `json:"secondary_cards,omitempty"`
	TotalPower         int                  `json:"total_power,omitempty"`
	RarityDistribution map[cards.Rarity]int `json:"rarity_distribution,omitempty"`
	Quality            *scoring.Report      `json:"quality,omitempty"`

	// Attempts is how many secondary draws were made; ForcedBalance is set
	// when none of them passed and the pack was corrected deterministically.
	Attempts      int  `json:"attempts,omitempty"`
	ForcedBalance bool `json:"forced_balance,omitempty"`
}

// Cards returns the hero followed by the secondary cards.
func (r Result) Cards() []cards.Card {
	if r.HeroCard == nil {
		return nil
	}
	out := make([]cards.Card, 0, 1+len(r.SecondaryCards))
	out = append(out, *r.HeroCard)
	return append(out, r.SecondaryCards...)
}

func failure(heroSource, msg string) Result {
	return Result{HeroSource: heroSource, Error: msg}
}

func rarityDistribution(pack []cards.Card) map[cards.Rarity]int {
	dist := make(map[cards.Rarity]int, len(pack))
	for _, c := range pack {
		dist[c.Rarity]++
	}
	return dist
}

func totalPower(pack []cards.Card) int {
	total := 0
	for _, c := range pack {
		total += c.Power
	}
	return total
}
