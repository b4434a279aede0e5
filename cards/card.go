// Package cards turns raw track popularity into bounded game-card stats.
//
// Everything here is pure apart from the explicit *rand.Rand arguments:
// identical inputs and identically seeded sources give identical cards.
package cards

import (
	"math/rand/v2"

	"musiclegends/metrics"
)

// Card types describe which pack slot produced a card.
const (
	TypeHero       = "hero"
	TypeSameArtist = "same_artist"
	TypeRelated    = "related"
	TypeWildcard   = "wildcard"
)

// Card is a single generated game card.
type Card struct {
	Name            string   `json:"name"`
	Artist          string   `json:"artist"`
	Identifier      string   `json:"identifier"`
	CardType        string   `json:"card_type"`
	Power           int      `json:"power"`
	Cost            int      `json:"cost"`
	Rarity          Rarity   `json:"rarity"`
	Abilities       []string `json:"abilities"`
	Views           int64    `json:"views"`
	Likes           int64    `json:"likes"`
	EngagementRatio float64  `json:"engagement_ratio"`
}

// Factory builds cards from metrics records using a fixed set of tables.
type Factory struct {
	tables Tables
}

// NewFactory returns a Factory bound to tables.
func NewFactory(tables Tables) *Factory {
	return &Factory{tables: tables}
}

// Tables returns the factory's balance tables.
func (f *Factory) Tables() Tables {
	return f.tables
}

// CreateCard runs the full pipeline for one record. Hero cards get a one-step
// rarity upgrade before cost and abilities are derived.
func (f *Factory) CreateCard(rng *rand.Rand, m metrics.Record, isHero bool) Card {
	power := NormalizePower(m.Views, m.Likes)
	engagement := EngagementRatio(m.Views, m.Likes)
	rarity := f.tables.AssignRarity(power, engagement)

	cardType := TypeRelated
	if isHero {
		rarity = f.tables.HeroUpgrade.Get(rarity)
		cardType = TypeHero
	}

	return Card{
		Name:            m.Title,
		Artist:          m.Artist,
		Identifier:      m.Identifier,
		CardType:        cardType,
		Power:           power,
		Cost:            f.tables.Cost(power, rarity),
		Rarity:          rarity,
		Abilities:       f.tables.GenerateAbilities(rng, m.Views, m.Likes, rarity),
		Views:           m.Views,
		Likes:           m.Likes,
		EngagementRatio: engagement,
	}
}

// CreateBalancedSecondary builds a non-hero card. When target is non-nil and
// differs from the natural rarity, the card is retargeted to it.
func (f *Factory) CreateBalancedSecondary(rng *rand.Rand, m metrics.Record, target *Rarity) Card {
	c := f.CreateCard(rng, m, false)
	if target != nil && *target != c.Rarity {
		f.Retarget(rng, &c, *target)
	}
	return c
}

// Retarget overwrites the card's rarity and re-derives cost and abilities from
// the stored views and likes. Power is left untouched.
func (f *Factory) Retarget(rng *rand.Rand, c *Card, r Rarity) {
	c.Rarity = r
	c.Cost = f.tables.Cost(c.Power, r)
	c.Abilities = f.tables.GenerateAbilities(rng, c.Views, c.Likes, r)
}
