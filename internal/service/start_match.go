package service

import (
	"errors"
	"time"

	"github.com/eracards/eraclash/internal/constants"
	"github.com/eracards/eraclash/internal/engine"
	"github.com/eracards/eraclash/internal/game"
	"github.com/eracards/eraclash/internal/logging"
)

var (
	ErrPlayersNotReady = errors.New("both players must submit decks before starting")
)

// StartMatch performs all server-side initialization when starting a match.
// It deals each player's field from their deck, picks the starting attacker
// and persists the updated match.
func StartMatch(repo MatchRepo, m *game.Match, defsByName map[string]game.CardDefinition, actionTimeout time.Duration) error {
	if len(m.Players) != 2 || len(m.Players[0].Deck) != game.DeckSize || len(m.Players[1].Deck) != game.DeckSize {
		return ErrPlayersNotReady
	}

	for i := range m.Players {
		p := &m.Players[i]
		p.Life = game.StartingLife
		p.Bucks = game.StartingBucks
		p.SelectedCardIndex = nil
		p.SelectedWager = 0
		p.HasCommitted = false
		p.Temp.Reset()
		if err := engine.DealField(p, defsByName); err != nil {
			return err
		}
	}

	engine.ChooseStartingPlayer(m)

	m.Status = game.StatusInProgress
	m.CurrentPhase = game.PhaseAttackerSelect
	m.Round = 1
	m.Winner = ""
	m.Message = "The match has started. Attacker, choose a card."
	m.LastRoundSummary = ""
	m.ActionDeadline = time.Now().Add(actionTimeout)

	logging.Info("match started", logging.Fields{constants.LogFieldMatchID: m.ID, constants.LogFieldRound: m.Round})

	return repo.UpdateMatch(m)
}
