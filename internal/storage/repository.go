package storage

import (
	"time"

	"github.com/eracards/eraclash/internal/game"
)

type Repository interface {
	GetCards() ([]game.CardDefinition, error)
	GetPublicMatches() ([]game.Match, error)
	CreateMatch(m *game.Match) error
	GetMatchByID(id uint) (*game.Match, error)
	FindMatchByJoinCode(code string) (*game.Match, error)
	UpdateMatch(m *game.Match) error
	RemovePlayerByUUID(matchID uint, playerUUID string) error

	// UpsertUser creates or refreshes a player profile. New profiles
	// are assigned a fresh UUID.
	UpsertUser(email, name string) (*game.User, error)
	UpdateStatsOnMatchEnd(m *game.Match, resignedEmail string) error
	GetStatsByEmail(email string) (*game.User, error)
	SaveUser(u *game.User) error
	// Leaderboard
	GetTopPlayers(limit int) ([]game.User, error)

	// FindTimedOutMatches returns matches that are in progress, in a
	// selection phase, and whose action deadline is at or before the
	// provided time. The caller decides how to resolve them.
	FindTimedOutMatches(now time.Time) ([]game.Match, error)
}
