package cards

// Threshold is the minimum power and engagement a card needs to reach a tier.
type Threshold struct {
	PowerMin      int
	EngagementMin float64
}

// Weights are relative draw frequencies per tier.
type Weights [rarityCount]int

// Tables holds every tuning table the card pipeline reads. Construct it with
// DefaultTables and override fields on the copy for alternate balance setups.
type Tables struct {
	Thresholds     ByRarity[Threshold]
	CostSurcharge  ByRarity[int]
	RarityWeights  Weights
	BonusAbilities ByRarity[int]
	HeroUpgrade    ByRarity[Rarity]
	Abilities      []Ability
}

// DefaultTables returns the production balance tables.
func DefaultTables() Tables {
	return Tables{
		Thresholds: ByRarity[Threshold]{
			Common:    {PowerMin: 0, EngagementMin: 0},
			Uncommon:  {PowerMin: 6, EngagementMin: 0.01},
			Rare:      {PowerMin: 9, EngagementMin: 0.03},
			Epic:      {PowerMin: 11, EngagementMin: 0.05},
			Legendary: {PowerMin: 13, EngagementMin: 0.08},
		},
		CostSurcharge: ByRarity[int]{
			Common:    0,
			Uncommon:  1,
			Rare:      2,
			Epic:      3,
			Legendary: 4,
		},
		// 40/30/20/8/2 percent
		RarityWeights: Weights{
			Common:    40,
			Uncommon:  30,
			Rare:      20,
			Epic:      8,
			Legendary: 2,
		},
		BonusAbilities: ByRarity[int]{
			Common:    0,
			Uncommon:  0,
			Rare:      1,
			Epic:      1,
			Legendary: 2,
		},
		// Hero cards always land on rare or better.
		HeroUpgrade: ByRarity[Rarity]{
			Common:    Rare,
			Uncommon:  Rare,
			Rare:      Epic,
			Epic:      Legendary,
			Legendary: Legendary,
		},
		Abilities: DefaultAbilities(),
	}
}
