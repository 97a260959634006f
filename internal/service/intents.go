package service

import (
	"time"

	"github.com/eracards/eraclash/internal/engine"
	"github.com/eracards/eraclash/internal/game"
)

// loadActionable fetches the match and maps the caller's email to a
// participant. Callers must hold the match lock.
func loadActionable(repo MatchRepo, matchID uint, playerEmail string) (*game.Match, *game.Player, error) {
	m, err := repo.GetMatchByID(matchID)
	if err != nil || m == nil {
		return nil, nil, ErrMatchNotFound
	}
	if m.Status != game.StatusInProgress {
		return nil, nil, ErrMatchNotInProgress
	}
	if m.CurrentPhase == game.PhaseResolving {
		return nil, nil, ErrActionsLocked
	}
	p := playerByEmail(m, playerEmail)
	if p == nil {
		return nil, nil, ErrPlayerNotInMatch
	}
	return m, p, nil
}

// SelectCard stores the caller's chosen field card for the current round.
func SelectCard(repo MatchRepo, matchID uint, playerEmail string, index int) (*game.Match, error) {
	unlock := lockMatch(matchID)
	defer unlock()

	m, p, err := loadActionable(repo, matchID, playerEmail)
	if err != nil {
		return nil, err
	}
	if err := engine.SelectCard(m, p.PlayerUUID, index); err != nil {
		return nil, err
	}
	if err := repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	return m, nil
}

// SubmitWager commits the caller's wager, resolving the round when the
// defender commits. Returns the updated match and whether the round was
// resolved.
func SubmitWager(rules *engine.RuleSet, repo MatchRepo, matchID uint, playerEmail string, amount int, actionTimeout time.Duration) (*game.Match, bool, error) {
	unlock := lockMatch(matchID)
	defer unlock()

	m, p, err := loadActionable(repo, matchID, playerEmail)
	if err != nil {
		return nil, false, err
	}
	resolved, err := engine.SubmitWager(rules, m, p.PlayerUUID, amount)
	if err != nil {
		return nil, false, err
	}
	if m.Status == game.StatusFinished {
		if !m.StatsCounted {
			_ = repo.UpdateStatsOnMatchEnd(m, "")
			m.StatsCounted = true
		}
		m.ActionDeadline = time.Time{}
	} else {
		// The turn moved to a new actor; restart their clock.
		m.ActionDeadline = time.Now().Add(actionTimeout)
	}
	if err := repo.UpdateMatch(m); err != nil {
		return nil, resolved, err
	}
	return m, resolved, nil
}

// CancelSelection clears the caller's selection and refunds a committed
// wager, handing the turn back according to the phase.
func CancelSelection(repo MatchRepo, matchID uint, playerEmail string) (*game.Match, error) {
	unlock := lockMatch(matchID)
	defer unlock()

	m, p, err := loadActionable(repo, matchID, playerEmail)
	if err != nil {
		return nil, err
	}
	if err := engine.CancelSelection(m, p.PlayerUUID); err != nil {
		return nil, err
	}
	if err := repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	return m, nil
}
