package firestore

import (
	"testing"
	"time"

	"musiclegends/cards"
	"musiclegends/packs"
	"musiclegends/scoring"
)

func TestNewPackDocument(t *testing.T) {
	created := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	hero := cards.Card{
		Name: "Creep", Artist: "Radiohead", Identifier: "lastfm:Radiohead::Creep",
		CardType: cards.TypeHero, Power: 12, Cost: 6, Rarity: cards.Epic,
		Abilities: []string{"Trendsetter"}, Views: 48_000_000, Likes: 2_500_000,
	}
	result := packs.Result{
		Success:    true,
		HeroSource: "lastfm:Radiohead::Creep",
		ID:         "3f1c0d1e-1111-4222-8333-444455556666",
		CreatedAt:  &created,
		HeroCard:   &hero,
		SecondaryCards: []cards.Card{
			{Name: "Karma Police", CardType: cards.TypeSameArtist, Power: 5, Cost: 2, Rarity: cards.Uncommon},
			{Name: "Bitter Sweet Symphony", CardType: cards.TypeRelated, Power: 4, Cost: 1, Rarity: cards.Common},
		},
		TotalPower:         21,
		RarityDistribution: map[cards.Rarity]int{cards.Epic: 1, cards.Uncommon: 1, cards.Common: 1},
		Attempts:           2,
		Quality:            &scoring.Report{Score: 0.82},
	}

	doc := NewPackDocument(result)

	if doc.ID != result.ID || doc.HeroSource != result.HeroSource {
		t.Errorf("identity not copied: %+v", doc)
	}
	if !doc.CreatedAt.Equal(created) {
		t.Errorf("Expected createdAt %v, got %v", created, doc.CreatedAt)
	}
	if len(doc.Cards) != 3 {
		t.Fatalf("Expected 3 cards, got %d", len(doc.Cards))
	}
	if doc.Cards[0].CardType != cards.TypeHero || doc.Cards[0].Rarity != "epic" {
		t.Errorf("Expected hero first with rarity name, got %+v", doc.Cards[0])
	}
	if doc.Rarities["uncommon"] != 1 || doc.Rarities["common"] != 1 || doc.Rarities["epic"] != 1 {
		t.Errorf("Unexpected rarity names: %v", doc.Rarities)
	}
	if doc.QualityScore != 0.82 || doc.TotalPower != 21 || doc.Attempts != 2 {
		t.Errorf("summary fields not copied: %+v", doc)
	}
}

func TestAllCollections(t *testing.T) {
	got := AllCollections()
	if len(got) != 1 || got[0] != PacksCollection {
		t.Errorf("Expected only %q, got %v", PacksCollection, got)
	}
}
