package packs

import "musiclegends/cards"

// Config holds the pack-level balance rules and pool sizes.
type Config struct {
	MinTotalPower   int
	MaxTotalPower   int
	MinRarities     int
	MaxAttempts     int
	SameArtistTop   int
	ArtistPoolSize  int
	RelatedPoolSize int
	// BalanceBuckets is the number of view-count bands the related pool is
	// sampled across.
	BalanceBuckets int
	// ForceSlack is how far above the per-card budget a secondary may sit
	// before forced balancing steps its rarity down.
	ForceSlack      int
	WildcardWeights cards.Weights
}

// DefaultConfig returns the production pack rules.
func DefaultConfig() Config {
	return Config{
		MinTotalPower:   15,
		MaxTotalPower:   35,
		MinRarities:     2,
		MaxAttempts:     5,
		SameArtistTop:   5,
		ArtistPoolSize:  10,
		RelatedPoolSize: 20,
		BalanceBuckets:  4,
		ForceSlack:      3,
		// skewed toward better tiers than the general table
		WildcardWeights: cards.Weights{
			cards.Common:    20,
			cards.Uncommon:  25,
			cards.Rare:      30,
			cards.Epic:      20,
			cards.Legendary: 5,
		},
	}
}
