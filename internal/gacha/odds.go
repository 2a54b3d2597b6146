package gacha

import "dailydraw/internal/models"

// Odds returns the effective probability of each tier for the given catalog.
// Tiers without members get zero.
func Odds(items []models.Item, weights Weights) map[models.Rarity]float64 {
	tiers := partition(items)
	odds := make(map[models.Rarity]float64, len(models.Rarities))

	var total float64
	for _, rarity := range models.Rarities {
		odds[rarity] = 0
		if len(tiers[rarity]) > 0 && weights[rarity] > 0 {
			total += weights[rarity]
		}
	}
	if total == 0 {
		return odds
	}
	for _, rarity := range models.Rarities {
		if len(tiers[rarity]) > 0 && weights[rarity] > 0 {
			odds[rarity] = weights[rarity] / total
		}
	}
	return odds
}

// Simulate runs n selections and returns the observed share of each tier.
func Simulate(items []models.Item, weights Weights, rng RandomSource, n int) (map[models.Rarity]float64, error) {
	counts := make(map[models.Rarity]int, len(models.Rarities))
	for i := 0; i < n; i++ {
		item, err := Select(items, weights, rng)
		if err != nil {
			return nil, err
		}
		counts[item.Rarity]++
	}

	observed := make(map[models.Rarity]float64, len(models.Rarities))
	for _, rarity := range models.Rarities {
		observed[rarity] = float64(counts[rarity]) / float64(n)
	}
	return observed, nil
}
