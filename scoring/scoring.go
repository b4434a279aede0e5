package scoring

import (
	"fmt"
	"math"
	"strings"

	"musiclegends/cards"
	"musiclegends/metrics"
)

const (
	powerBalanceWeight = 0.4
	varietyWeight      = 0.3
	abilityWeight      = 0.2
	uniqueNamesWeight  = 0.1
)

// Report is the advisory quality assessment of a finished pack.
type Report struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
	Score  float64  `json:"score"`

	// Scoring components, each in [0, 1] before weighting
	PowerBalance  float64 `json:"powerBalance"`
	RarityVariety float64 `json:"rarityVariety"`
	AbilityDepth  float64 `json:"abilityDepth"`
	UniqueNames   float64 `json:"uniqueNames"`
}

// Controller validates and scores packs. It never modifies them.
type Controller struct {
	MinTotalPower int
	MaxTotalPower int
	MinRarities   int
	PackSize      int
	// AbilityTarget is the total ability count at which ability depth
	// saturates.
	AbilityTarget int
}

// NewController returns a Controller for packs of five cards whose total
// power must lie in [minPower, maxPower].
func NewController(minPower, maxPower int) *Controller {
	return &Controller{
		MinTotalPower: minPower,
		MaxTotalPower: maxPower,
		MinRarities:   2,
		PackSize:      5,
		AbilityTarget: 10,
	}
}

// Evaluate validates and scores a pack. The hero card is expected first.
func (c *Controller) Evaluate(pack []cards.Card) Report {
	valid, issues := c.Validate(pack)
	r := Report{
		Valid:         valid,
		Issues:        issues,
		PowerBalance:  c.powerBalance(pack),
		RarityVariety: float64(len(rarities(pack))) / float64(c.PackSize),
		AbilityDepth:  c.abilityDepth(pack),
	}
	if len(duplicateNames(pack)) == 0 {
		r.UniqueNames = 1
	}
	r.Score = powerBalanceWeight*r.PowerBalance +
		varietyWeight*math.Min(1, r.RarityVariety) +
		abilityWeight*r.AbilityDepth +
		uniqueNamesWeight*r.UniqueNames
	return r
}

// Score returns the weighted quality score in [0, 1].
func (c *Controller) Score(pack []cards.Card) float64 {
	return c.Evaluate(pack).Score
}

// Validate lists every rule the pack breaks.
func (c *Controller) Validate(pack []cards.Card) (bool, []string) {
	issues := []string{}

	if len(pack) != c.PackSize {
		issues = append(issues, fmt.Sprintf("pack has %d cards, expected %d", len(pack), c.PackSize))
	}
	if len(pack) > 0 && pack[0].CardType != cards.TypeHero {
		issues = append(issues, "first card is not a hero card")
	}

	total := totalPower(pack)
	if total < c.MinTotalPower || total > c.MaxTotalPower {
		issues = append(issues, fmt.Sprintf("total power %d outside [%d, %d]", total, c.MinTotalPower, c.MaxTotalPower))
	}
	if n := len(rarities(pack)); n < c.MinRarities {
		issues = append(issues, fmt.Sprintf("only %d distinct rarities, need %d", n, c.MinRarities))
	}

	for _, card := range pack {
		if card.Power < cards.MinPower || card.Power > cards.MaxPower {
			issues = append(issues, fmt.Sprintf("%q power %d out of bounds", card.Name, card.Power))
		}
		if card.Cost < cards.MinCost || card.Cost > cards.MaxCost {
			issues = append(issues, fmt.Sprintf("%q cost %d out of bounds", card.Name, card.Cost))
		}
	}

	for _, name := range duplicateNames(pack) {
		issues = append(issues, fmt.Sprintf("duplicate card %q", name))
	}

	return len(issues) == 0, issues
}

// powerBalance is 1 at the midpoint of the allowed window, falling linearly
// to 0 at its edges and staying 0 outside it.
func (c *Controller) powerBalance(pack []cards.Card) float64 {
	half := float64(c.MaxTotalPower-c.MinTotalPower) / 2
	if half <= 0 {
		return 0
	}
	mid := float64(c.MinTotalPower) + half
	dist := math.Abs(float64(totalPower(pack)) - mid)
	return math.Max(0, 1-dist/half)
}

func (c *Controller) abilityDepth(pack []cards.Card) float64 {
	if c.AbilityTarget <= 0 {
		return 1
	}
	n := 0
	for _, card := range pack {
		n += len(card.Abilities)
	}
	return math.Min(1, float64(n)/float64(c.AbilityTarget))
}

func totalPower(pack []cards.Card) int {
	total := 0
	for _, card := range pack {
		total += card.Power
	}
	return total
}

func rarities(pack []cards.Card) map[cards.Rarity]struct{} {
	set := make(map[cards.Rarity]struct{}, len(pack))
	for _, card := range pack {
		set[card.Rarity] = struct{}{}
	}
	return set
}

// duplicateNames returns the display name of every track that appears more
// than once, compared by normalized artist and title.
func duplicateNames(pack []cards.Card) []string {
	seen := make(map[string]int, len(pack))
	var dups []string
	for _, card := range pack {
		key := normalizeKey(card.Artist, card.Name)
		seen[key]++
		if seen[key] == 2 {
			dups = append(dups, card.Name)
		}
	}
	return dups
}

// normalizeKey creates a comparison key for deduplication: lowercased,
// trimmed, with featured artists dropped.
func normalizeKey(artist, title string) string {
	return strings.ToLower(metrics.LeadArtist(artist)) + " - " + strings.ToLower(strings.TrimSpace(title))
}
