package scoring

import (
	"math"
	"testing"

	"musiclegends/cards"
)

func balancedPack() []cards.Card {
	return []cards.Card{
		{Name: "Not Like Us", Artist: "Kendrick Lamar", CardType: cards.TypeHero, Power: 13, Cost: 8, Rarity: cards.Legendary, Abilities: []string{"Trendsetter", "Viral Surge"}},
		{Name: "HUMBLE.", Artist: "Kendrick Lamar", CardType: cards.TypeSameArtist, Power: 4, Cost: 2, Rarity: cards.Uncommon, Abilities: []string{"Trendsetter"}},
		{Name: "Love Galore", Artist: "SZA", CardType: cards.TypeRelated, Power: 3, Cost: 1, Rarity: cards.Common, Abilities: []string{"Fan Favorite"}},
		{Name: "Big Song", Artist: "Drake", CardType: cards.TypeRelated, Power: 2, Cost: 1, Rarity: cards.Common},
		{Name: "Wildcard", Artist: "Future", CardType: cards.TypeWildcard, Power: 3, Cost: 3, Rarity: cards.Rare, Abilities: []string{"Hidden Gem"}},
	}
}

func TestEvaluate_BalancedPack(t *testing.T) {
	c := NewController(15, 35)
	r := c.Evaluate(balancedPack())

	if !r.Valid {
		t.Fatalf("Expected valid pack, got issues %v", r.Issues)
	}
	if len(r.Issues) != 0 {
		t.Errorf("Expected no issues, got %v", r.Issues)
	}
	// total 25 is the exact midpoint
	if r.PowerBalance != 1 {
		t.Errorf("Expected power balance 1 at midpoint, got %f", r.PowerBalance)
	}
	if r.RarityVariety != 0.8 {
		t.Errorf("Expected rarity variety 4/5, got %f", r.RarityVariety)
	}
	if r.AbilityDepth != 0.5 {
		t.Errorf("Expected ability depth 5/10, got %f", r.AbilityDepth)
	}

	want := 0.4*1 + 0.3*0.8 + 0.2*0.5 + 0.1*1
	if math.Abs(r.Score-want) > 1e-9 {
		t.Errorf("Expected score %f, got %f", want, r.Score)
	}
}

func TestEvaluate_ReportsWithoutBlocking(t *testing.T) {
	c := NewController(15, 35)
	pack := balancedPack()
	for i := range pack {
		pack[i].Rarity = cards.Epic
		pack[i].Power = 10
	}

	r := c.Evaluate(pack)
	if r.Valid {
		t.Fatal("Expected invalid pack for power 50 and a single rarity")
	}
	if len(r.Issues) != 2 {
		t.Errorf("Expected power and rarity issues, got %v", r.Issues)
	}
	if r.PowerBalance != 0 {
		t.Errorf("Expected zero power balance outside the window, got %f", r.PowerBalance)
	}
	if r.Score <= 0 || r.Score >= 1 {
		t.Errorf("Expected partial score, got %f", r.Score)
	}
	if pack[0].Power != 10 {
		t.Error("Evaluate must not modify the pack")
	}
}

func TestValidate_DuplicateNames(t *testing.T) {
	c := NewController(15, 35)
	pack := balancedPack()
	pack[3].Artist = "Kendrick Lamar feat. Drake"
	pack[3].Name = "not like us"

	valid, issues := c.Validate(pack)
	if valid {
		t.Fatal("Expected duplicate track to invalidate the pack")
	}
	if len(issues) != 1 {
		t.Errorf("Expected a single duplicate issue, got %v", issues)
	}
	if c.Evaluate(pack).UniqueNames != 0 {
		t.Error("Expected unique-name bonus to be withheld")
	}
}

func TestValidate_ShapeAndBounds(t *testing.T) {
	c := NewController(15, 35)
	pack := balancedPack()[1:]
	pack[0].Cost = 11

	valid, issues := c.Validate(pack)
	if valid {
		t.Fatal("Expected invalid pack")
	}
	// size, missing hero, total power 12, cost bound
	if len(issues) != 4 {
		t.Errorf("Expected 4 issues, got %v", issues)
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		artist, title, expected string
	}{
		{"Drake", "God's Plan", "drake - god's plan"},
		{"Drake feat. Future", "Life Is Good", "drake - life is good"},
		{"  Kendrick Lamar  ", "  HUMBLE.  ", "kendrick lamar - humble."},
		{"SZA ft. Travis Scott", "Love Galore", "sza - love galore"},
		{"Daft Punk", "One More Time", "daft punk - one more time"},
	}

	for _, tt := range tests {
		got := normalizeKey(tt.artist, tt.title)
		if got != tt.expected {
			t.Errorf("normalizeKey(%q, %q) = %q, want %q", tt.artist, tt.title, got, tt.expected)
		}
	}
}
