package gacha

import (
	"errors"
	"math"
	"testing"

	"dailydraw/internal/models"
)

func tierCatalog() []models.Item {
	return []models.Item{
		{ID: 1, Name: "URUZ", Rarity: models.RarityCommon},
		{ID: 2, Name: "RAIDHO", Rarity: models.RarityCommon},
		{ID: 3, Name: "FEHU", Rarity: models.RarityUncommon},
		{ID: 4, Name: "THURISAZ", Rarity: models.RarityRare},
		{ID: 5, Name: "ANSUZ", Rarity: models.RarityEpic},
		{ID: 6, Name: "SOWILO", Rarity: models.RarityLegendary},
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name   string
		items  []models.Item
		values []float64
		wantID int64
	}{
		{name: "low value lands in common, first member", items: tierCatalog(), values: []float64{0.10, 0.0}, wantID: 1},
		{name: "common second member", items: tierCatalog(), values: []float64{0.59, 0.99}, wantID: 2},
		{name: "just past common lands in uncommon", items: tierCatalog(), values: []float64{0.61, 0.5}, wantID: 3},
		{name: "rare band", items: tierCatalog(), values: []float64{0.90, 0.5}, wantID: 4},
		{name: "epic band", items: tierCatalog(), values: []float64{0.96, 0.5}, wantID: 5},
		{name: "legendary band", items: tierCatalog(), values: []float64{0.995, 0.5}, wantID: 6},
		{
			name: "empty tiers do not absorb weight",
			items: []models.Item{
				{ID: 1, Rarity: models.RarityCommon},
				{ID: 6, Rarity: models.RarityLegendary},
			},
			// total is 61, 0.99*61 = 60.39 falls in legendary
			values: []float64{0.99, 0.0},
			wantID: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(tt.items, DefaultWeights(), NewFixedRNG(tt.values...))
			if err != nil {
				t.Fatalf("Expected no error, but got %v", err)
			}
			if got.ID != tt.wantID {
				t.Errorf("Expected item %d, but got %d", tt.wantID, got.ID)
			}
		})
	}
}

func TestSelectEmptyCatalog(t *testing.T) {
	_, err := Select(nil, DefaultWeights(), NewSeededRNG(1))
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("Expected ErrEmptyCatalog, but got %v", err)
	}
}

func TestSelectNoWeightedTier(t *testing.T) {
	items := []models.Item{{ID: 1, Rarity: models.RarityEpic}}
	_, err := Select(items, Weights{models.RarityCommon: 1}, NewSeededRNG(1))
	if !errors.Is(err, ErrNoWeightedTier) {
		t.Fatalf("Expected ErrNoWeightedTier, but got %v", err)
	}
}

func TestSelectRoundingFallsBackToLowestTier(t *testing.T) {
	// a source returning exactly 1.0 is out of contract but must not panic
	got, err := Select(tierCatalog(), DefaultWeights(), NewFixedRNG(1.0, 0.0))
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	if got.Rarity != models.RarityCommon {
		t.Errorf("Expected fallback to common, but got %s", got.Rarity)
	}
}

func TestSelectDistribution(t *testing.T) {
	const n = 100000
	observed, err := Simulate(tierCatalog(), DefaultWeights(), NewSeededRNG(42), n)
	if err != nil {
		t.Fatal(err)
	}

	for rarity, weight := range DefaultWeights() {
		want := weight / 100
		if diff := math.Abs(observed[rarity] - want); diff > 0.02 {
			t.Errorf("%s: observed %.4f, want %.4f ±0.02", rarity, observed[rarity], want)
		}
	}
}

func TestOdds(t *testing.T) {
	items := []models.Item{
		{ID: 1, Rarity: models.RarityCommon},
		{ID: 2, Rarity: models.RarityRare},
	}
	odds := Odds(items, DefaultWeights())

	if math.Abs(odds[models.RarityCommon]-60.0/70.0) > 1e-9 {
		t.Errorf("Expected common odds %.4f, but got %.4f", 60.0/70.0, odds[models.RarityCommon])
	}
	if odds[models.RarityLegendary] != 0 {
		t.Errorf("Expected empty tier to have zero odds, but got %v", odds[models.RarityLegendary])
	}
}

func TestWeightsValidate(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Fatalf("Expected default weights to be valid, got %v", err)
	}
	if err := (Weights{models.RarityCommon: 0}).Validate(); err == nil {
		t.Error("Expected zero weight to be rejected")
	}
	if err := (Weights{"mythic": 1}).Validate(); err == nil {
		t.Error("Expected unknown tier to be rejected")
	}
}
