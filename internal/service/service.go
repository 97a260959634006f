package service

import (
	"errors"
	"sync"

	"github.com/eracards/eraclash/internal/game"
)

// MatchRepo is the minimal repository interface required by the match
// services. Using a small interface simplifies testing.
type MatchRepo interface {
	GetMatchByID(id uint) (*game.Match, error)
	UpdateMatch(m *game.Match) error
	UpdateStatsOnMatchEnd(m *game.Match, resignedEmail string) error
}

var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchNotInProgress = errors.New("match is not in progress")
	ErrActionsLocked      = errors.New("actions are locked; resolving current round")
	ErrPlayerNotInMatch   = errors.New("player not in match")
)

// matchLocks serializes state transitions per match ID. Intents for
// different matches never contend.
var matchLocks sync.Map

func lockMatch(id uint) func() {
	v, _ := matchLocks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// LockMatch acquires the per-match mutex shared with the intent
// services and returns its unlock function. Every caller that mutates a
// match outside this package (join, start, leave, resign) must hold it
// and reload the match after acquiring it.
func LockMatch(id uint) func() {
	return lockMatch(id)
}

func playerByEmail(m *game.Match, email string) *game.Player {
	for i := range m.Players {
		if m.Players[i].PlayerEmail == email {
			return &m.Players[i]
		}
	}
	return nil
}
