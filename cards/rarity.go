package cards

import (
	"fmt"
	"strings"
)

// Rarity is a card tier. Values are ordered: a higher value is a rarer card.
type Rarity int

const (
	Common Rarity = iota
	Uncommon
	Rare
	Epic
	Legendary
)

const rarityCount = int(Legendary) + 1

// AllRarities lists every tier from common to legendary.
var AllRarities = [rarityCount]Rarity{Common, Uncommon, Rare, Epic, Legendary}

var rarityNames = [rarityCount]string{"common", "uncommon", "rare", "epic", "legendary"}

func (r Rarity) String() string {
	if !r.Valid() {
		return fmt.Sprintf("rarity(%d)", int(r))
	}
	return rarityNames[r]
}

// Valid reports whether r is one of the five known tiers.
func (r Rarity) Valid() bool {
	return r >= Common && r <= Legendary
}

// Downgrade returns the next lower tier. Common is the floor.
func (r Rarity) Downgrade() Rarity {
	if r <= Common {
		return Common
	}
	return r - 1
}

// ParseRarity maps a case-insensitive tier name to its Rarity.
func ParseRarity(s string) (Rarity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range rarityNames {
		if n == name {
			return Rarity(i), nil
		}
	}
	return Common, fmt.Errorf("unknown rarity %q", s)
}

func (r Rarity) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid rarity %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Rarity) UnmarshalText(text []byte) error {
	parsed, err := ParseRarity(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ByRarity is a fixed-size table indexed by Rarity. It is a value type, so a
// copied table can never alias the one it was copied from.
type ByRarity[T any] [rarityCount]T

// Get returns the entry for r.
func (t ByRarity[T]) Get(r Rarity) T {
	return t[r]
}
