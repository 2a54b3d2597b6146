package gacha

import (
	"errors"
	"fmt"

	"dailydraw/internal/models"
)

var (
	ErrEmptyCatalog   = errors.New("catalog is empty")
	ErrNoWeightedTier = errors.New("no populated rarity tier has a positive weight")
)

// Weights maps a rarity tier to its relative draw weight.
type Weights map[models.Rarity]float64

// DefaultWeights is the reference weighting; it sums to 100.
func DefaultWeights() Weights {
	return Weights{
		models.RarityCommon:    60,
		models.RarityUncommon:  25,
		models.RarityRare:      10,
		models.RarityEpic:      4,
		models.RarityLegendary: 1,
	}
}

// Validate rejects unknown tiers and non-positive weights.
func (w Weights) Validate() error {
	if len(w) == 0 {
		return errors.New("weights are empty")
	}
	for rarity, weight := range w {
		if !rarity.Valid() {
			return fmt.Errorf("unknown rarity %q in weights", rarity)
		}
		if weight <= 0 {
			return fmt.Errorf("weight for %s must be positive, got %v", rarity, weight)
		}
	}
	return nil
}

// partition groups items by tier, keeping catalog order inside each tier.
func partition(items []models.Item) map[models.Rarity][]models.Item {
	tiers := make(map[models.Rarity][]models.Item, len(models.Rarities))
	for _, item := range items {
		tiers[item.Rarity] = append(tiers[item.Rarity], item)
	}
	return tiers
}

// Select picks one item: first a tier in proportion to its weight, counting
// only tiers that have members, then an item uniformly inside that tier.
// Tiers are walked in models.Rarities order so a given random value always
// maps to the same tier.
func Select(items []models.Item, weights Weights, rng RandomSource) (models.Item, error) {
	if len(items) == 0 {
		return models.Item{}, ErrEmptyCatalog
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	tiers := partition(items)

	var total float64
	for _, rarity := range models.Rarities {
		if len(tiers[rarity]) > 0 && weights[rarity] > 0 {
			total += weights[rarity]
		}
	}
	if total <= 0 {
		return models.Item{}, ErrNoWeightedTier
	}

	r := rng.Float64() * total
	chosen := models.Rarity("")
	var cumulative float64
	for _, rarity := range models.Rarities {
		if len(tiers[rarity]) == 0 || weights[rarity] <= 0 {
			continue
		}
		cumulative += weights[rarity]
		if r < cumulative {
			chosen = rarity
			break
		}
	}

	members := tiers[chosen]
	if len(members) == 0 {
		// r landed past the last boundary through float rounding
		members = lowestPopulated(tiers)
	}
	return members[pickIndex(rng, len(members))], nil
}

func lowestPopulated(tiers map[models.Rarity][]models.Item) []models.Item {
	for _, rarity := range models.Rarities {
		if len(tiers[rarity]) > 0 {
			return tiers[rarity]
		}
	}
	return nil
}

func pickIndex(rng RandomSource, n int) int {
	idx := int(rng.Float64() * float64(n))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
