package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dailydraw/internal/models"
)

//go:embed runes.yaml
var defaultSeed []byte

type seedFile struct {
	Items []seedItem `yaml:"items"`
}

type seedItem struct {
	Name           string `yaml:"name"`
	Symbol         string `yaml:"symbol"`
	Meaning        string `yaml:"meaning"`
	Interpretation string `yaml:"interpretation"`
	Guidance       string `yaml:"guidance"`
	Rarity         string `yaml:"rarity"`
}

// LoadSeed reads a seed catalog from path, or the built-in rune catalog when
// path is empty.
func LoadSeed(path string) ([]models.Item, error) {
	if path == "" {
		return ParseSeed(defaultSeed)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes and validates a YAML seed catalog.
func ParseSeed(data []byte) ([]models.Item, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	if len(file.Items) == 0 {
		return nil, errors.New("seed has no items")
	}

	seen := make(map[string]bool, len(file.Items))
	items := make([]models.Item, 0, len(file.Items))
	for i, raw := range file.Items {
		if raw.Name == "" {
			return nil, fmt.Errorf("seed item %d has no name", i)
		}
		if seen[raw.Name] {
			return nil, fmt.Errorf("seed item %q is listed twice", raw.Name)
		}
		seen[raw.Name] = true

		rarity, err := models.ParseRarity(raw.Rarity)
		if err != nil {
			return nil, fmt.Errorf("seed item %q: %w", raw.Name, err)
		}
		items = append(items, models.Item{
			Name:           raw.Name,
			Symbol:         raw.Symbol,
			Meaning:        raw.Meaning,
			Interpretation: raw.Interpretation,
			Guidance:       raw.Guidance,
			Rarity:         rarity,
		})
	}
	return items, nil
}
