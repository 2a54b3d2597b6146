package models

import "fmt"

// Rarity is the tier of an Item and controls how often it is drawn.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rarities lists every tier from most to least frequent. Weighted selection
// walks tiers in exactly this order.
var Rarities = []Rarity{
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityEpic,
	RarityLegendary,
}

// Valid reports whether r is one of the known tiers.
func (r Rarity) Valid() bool {
	for _, known := range Rarities {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRarity converts a config or request value into a Rarity.
func ParseRarity(s string) (Rarity, error) {
	r := Rarity(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown rarity %q", s)
	}
	return r, nil
}

// Item is one drawable catalog entry.
type Item struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	Meaning        string `json:"meaning"`
	Interpretation string `json:"interpretation"`
	Guidance       string `json:"guidance"`
	Rarity         Rarity `json:"rarity"`
}
