package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eracards/eraclash/internal/game"
)

type fakeChecker struct{ known map[game.AbilityTag]bool }

func (f fakeChecker) Knows(tag game.AbilityTag) bool { return f.known[tag] }

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

const validConfig = `{
  "server": {"address": ":9090"},
  "action_timeout_seconds": 30,
  "card_list": [
    {"name": "Cave Drummer", "era": "Era 1", "strength": 3, "damage": 2, "ability": "rally_cry"},
    {"name": "Mystery Card", "era": "Era 2", "strength": 4, "damage": 1, "ability": "does_not_exist"}
  ]
}`

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "config.json", validConfig)
	checker := fakeChecker{known: map[game.AbilityTag]bool{"rally_cry": true}}

	cfg, unknown, err := LoadConfig(path, checker)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cfg.Cards))
	}
	if cfg.ServerAddress != ":9090" {
		t.Fatalf("expected configured address, got %q", cfg.ServerAddress)
	}
	if cfg.ActionTimeout.Seconds() != 30 {
		t.Fatalf("expected 30s action timeout, got %v", cfg.ActionTimeout)
	}
	if len(unknown) != 1 || unknown[0] != "does_not_exist" {
		t.Fatalf("expected the unknown ability to be reported, got %v", unknown)
	}
}

func TestLoadConfig_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"empty list", `{"card_list": []}`},
		{"missing name", `{"card_list": [{"era": "Era 1", "strength": 1, "damage": 1}]}`},
		{"duplicate name", `{"card_list": [
			{"name": "Twin", "era": "Era 1", "strength": 1, "damage": 1},
			{"name": "twin", "era": "Era 2", "strength": 1, "damage": 1}
		]}`},
		{"unknown era", `{"card_list": [{"name": "X", "era": "Era 9", "strength": 1, "damage": 1}]}`},
		{"zero strength", `{"card_list": [{"name": "X", "era": "Era 1", "strength": 0, "damage": 1}]}`},
	}
	for _, tc := range cases {
		path := writeFile(t, "config.json", tc.content)
		if _, _, err := LoadConfig(path, nil); err == nil {
			t.Fatalf("%s: expected an error", tc.name)
		}
	}
}

const validDecks = `decks:
  - name: Opening Hand
    cards: [A, B, C, D, E, F, G, H]
`

func deckCatalog() map[string]game.CardDefinition {
	defs := make(map[string]game.CardDefinition)
	for _, n := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		defs[n] = game.CardDefinition{Name: n, Era: game.Era1, BaseStrength: 1, BaseDamage: 1}
	}
	return defs
}

func TestLoadStarterDecks(t *testing.T) {
	path := writeFile(t, "decks.yaml", validDecks)
	decks, err := LoadStarterDecks(path, deckCatalog())
	if err != nil {
		t.Fatalf("LoadStarterDecks: %v", err)
	}
	if len(decks) != 1 || decks[0].Name != "Opening Hand" || len(decks[0].Cards) != game.DeckSize {
		t.Fatalf("unexpected decks: %+v", decks)
	}
}

func TestLoadStarterDecks_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"short deck", "decks:\n  - name: Short\n    cards: [A, B, C]\n"},
		{"unknown card", "decks:\n  - name: Bad\n    cards: [A, B, C, D, E, F, G, Z]\n"},
		{"duplicate card", "decks:\n  - name: Dup\n    cards: [A, A, B, C, D, E, F, G]\n"},
	}
	for _, tc := range cases {
		path := writeFile(t, "decks.yaml", tc.content)
		if _, err := LoadStarterDecks(path, deckCatalog()); err == nil {
			t.Fatalf("%s: expected an error", tc.name)
		}
	}
}
