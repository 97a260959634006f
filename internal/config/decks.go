package config

import (
	"fmt"
	"os"

	"github.com/eracards/eraclash/internal/game"

	"gopkg.in/yaml.v3"
)

// StarterDeck is a prebuilt deck a player may pick instead of
// submitting their own eight card names.
type StarterDeck struct {
	Name  string   `yaml:"name"`
	Cards []string `yaml:"cards"`
}

// DeckFile is the on-disk format of decks.yaml.
type DeckFile struct {
	Decks []StarterDeck `yaml:"decks"`
}

// LoadStarterDecks reads and validates the starter deck file. Every
// deck must hold exactly DeckSize names, all present in the catalog.
func LoadStarterDecks(path string, defsByName map[string]game.CardDefinition) ([]StarterDeck, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck file %s: %w", path, err)
	}
	var df DeckFile
	if err := yaml.Unmarshal(b, &df); err != nil {
		return nil, fmt.Errorf("failed to parse deck file %s: %w", path, err)
	}
	for _, d := range df.Decks {
		if len(d.Cards) != game.DeckSize {
			return nil, fmt.Errorf("deck file %s: deck '%s' must list exactly %d cards", path, d.Name, game.DeckSize)
		}
		seen := make(map[string]struct{}, len(d.Cards))
		for _, name := range d.Cards {
			if _, ok := defsByName[name]; !ok {
				return nil, fmt.Errorf("deck file %s: deck '%s' references unknown card '%s'", path, d.Name, name)
			}
			if _, dup := seen[name]; dup {
				return nil, fmt.Errorf("deck file %s: deck '%s' lists '%s' twice", path, d.Name, name)
			}
			seen[name] = struct{}{}
		}
	}
	return df.Decks, nil
}
