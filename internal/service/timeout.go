package service

import (
	"time"

	"github.com/eracards/eraclash/internal/constants"
	"github.com/eracards/eraclash/internal/engine"
	"github.com/eracards/eraclash/internal/game"
	"github.com/eracards/eraclash/internal/logging"
)

// HandleTimedOutMatch applies timeout resolution for a single match.
// The current actor forfeits their choice: the first unused field card
// is selected for them with a wager of zero, which advances the phase
// (and resolves the round when the idle actor was the defender). A
// match whose actor has nothing left to play ends with no winner.
func HandleTimedOutMatch(rules *engine.RuleSet, repo MatchRepo, matchID uint, actionTimeout time.Duration) error {
	unlock := lockMatch(matchID)
	defer unlock()

	m, err := repo.GetMatchByID(matchID)
	if err != nil || m == nil {
		return ErrMatchNotFound
	}
	if m.Status != game.StatusInProgress {
		return nil
	}
	if m.CurrentPhase != game.PhaseAttackerSelect && m.CurrentPhase != game.PhaseDefenderSelect {
		return nil
	}

	actor := m.PlayerByUUID(m.CurrentActorUUID)
	if actor == nil {
		return finishInactive(repo, m)
	}

	if actor.SelectedCardIndex == nil {
		idx := -1
		for i := range actor.Field {
			if !actor.Field[i].Used {
				idx = i
				break
			}
		}
		if idx < 0 {
			return finishInactive(repo, m)
		}
		if err := engine.SelectCard(m, actor.PlayerUUID, idx); err != nil {
			logging.Error("timeout auto-select failed", err, logging.Fields{constants.LogFieldMatchID: m.ID})
			return finishInactive(repo, m)
		}
	}

	logging.Info("auto-submitting zero wager for inactive player", logging.Fields{constants.LogFieldMatchID: m.ID, constants.LogFieldRound: m.Round})
	if _, err := engine.SubmitWager(rules, m, actor.PlayerUUID, 0); err != nil {
		logging.Error("timeout auto-wager failed", err, logging.Fields{constants.LogFieldMatchID: m.ID})
		return finishInactive(repo, m)
	}

	if m.Status == game.StatusFinished {
		if !m.StatsCounted {
			_ = repo.UpdateStatsOnMatchEnd(m, "")
			m.StatsCounted = true
		}
		m.ActionDeadline = time.Time{}
	} else {
		m.ActionDeadline = time.Now().Add(actionTimeout)
	}
	return repo.UpdateMatch(m)
}

func finishInactive(repo MatchRepo, m *game.Match) error {
	m.Status = game.StatusFinished
	m.CurrentPhase = game.PhaseGameOver
	m.Winner = ""
	m.Message = "Match ended due to inactivity"
	m.LastRoundSummary = "No resolution was reached due to inactivity."
	m.StatsCounted = true
	m.ActionDeadline = time.Time{}
	return repo.UpdateMatch(m)
}
