package api

import (
	"time"

	"github.com/eracards/eraclash/internal/config"
	"github.com/eracards/eraclash/internal/engine"
	"github.com/eracards/eraclash/internal/game"
	"github.com/eracards/eraclash/internal/storage"
)

// MatchHandler groups all match-related HTTP handlers.
type MatchHandler struct {
	repo          storage.Repository
	rules         *engine.RuleSet
	defsByName    map[string]game.CardDefinition
	starterDecks  []config.StarterDeck
	actionTimeout time.Duration
}

// NewMatchHandler creates a new MatchHandler with the given repository,
// rule set, card catalog and configured per-action timeout.
func NewMatchHandler(repo storage.Repository, rules *engine.RuleSet, defsByName map[string]game.CardDefinition, starterDecks []config.StarterDeck, actionTimeout time.Duration) *MatchHandler {
	return &MatchHandler{
		repo:          repo,
		rules:         rules,
		defsByName:    defsByName,
		starterDecks:  starterDecks,
		actionTimeout: actionTimeout,
	}
}
