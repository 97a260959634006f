package storage

import (
	"sort"
	"strings"
	"time"

	"github.com/eracards/eraclash/internal/game"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
	// configByName maps lowercase card name -> config definition. The
	// config file is the source of truth for card stats; the database
	// only anchors names.
	configByName map[string]game.CardDefinition
	// publicTTL bounds how long a public match stays listed.
	publicTTL time.Duration
}

func NewSQLiteRepository(db *gorm.DB, configCards []game.CardDefinition, publicTTL time.Duration) Repository {
	m := make(map[string]game.CardDefinition, len(configCards))
	for _, c := range configCards {
		m[strings.ToLower(c.Name)] = c
	}
	return &sqliteRepository{db: db, configByName: m, publicTTL: publicTTL}
}

func (r *sqliteRepository) overrideFromConfig(d *game.CardDefinition) {
	if conf, ok := r.configByName[strings.ToLower(d.Name)]; ok {
		d.Era = conf.Era
		d.BaseStrength = conf.BaseStrength
		d.BaseDamage = conf.BaseDamage
		d.AbilityTag = conf.AbilityTag
		d.AbilityName = conf.AbilityName
		d.AbilityDescription = conf.AbilityDescription
		d.ArtRef = conf.ArtRef
	}
}

func (r *sqliteRepository) GetCards() ([]game.CardDefinition, error) {
	var defs []game.CardDefinition
	if err := r.db.Find(&defs).Error; err != nil {
		return nil, err
	}
	for i := range defs {
		r.overrideFromConfig(&defs[i])
	}
	return defs, nil
}

func (r *sqliteRepository) CreateMatch(m *game.Match) error {
	return r.db.Create(m).Error
}

func (r *sqliteRepository) GetMatchByID(id uint) (*game.Match, error) {
	var m game.Match
	err := r.db.Preload("Players.Field").Preload("Players.Deck").First(&m, id).Error
	if err != nil {
		return nil, err
	}
	// Selection indexes address the field by slot, so keep a stable
	// order regardless of how rows come back.
	for pi := range m.Players {
		p := &m.Players[pi]
		sort.Slice(p.Field, func(i, j int) bool { return p.Field[i].SlotIndex < p.Field[j].SlotIndex })
		sort.Slice(p.Deck, func(i, j int) bool { return p.Deck[i].Position < p.Deck[j].Position })
	}
	return &m, nil
}

func (r *sqliteRepository) UpdateMatch(m *game.Match) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(m).Error
}

func (r *sqliteRepository) GetPublicMatches() ([]game.Match, error) {
	var matches []game.Match
	cutoff := time.Now().Add(-r.publicTTL)
	if err := r.db.Preload("Players").
		Where("private = ? AND created_at > ?", false, cutoff).
		Order("created_at desc").
		Find(&matches).Error; err != nil {
		return nil, err
	}
	// Only return matches with at least one player
	filtered := make([]game.Match, 0, len(matches))
	for i := range matches {
		if len(matches[i].Players) >= 1 {
			filtered = append(filtered, matches[i])
		}
	}
	return filtered, nil
}

func (r *sqliteRepository) FindMatchByJoinCode(code string) (*game.Match, error) {
	var m game.Match
	err := r.db.Preload("Players").Where("join_code = ?", code).First(&m).Error
	return &m, err
}

func (r *sqliteRepository) RemovePlayerByUUID(matchID uint, playerUUID string) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var p game.Player
	if err := tx.Where("match_id = ? AND player_uuid = ?", matchID, playerUUID).First(&p).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("player_id = ?", p.ID).Delete(&game.CardInstance{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("player_id = ?", p.ID).Delete(&game.DeckCard{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&p).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (r *sqliteRepository) UpsertUser(email, name string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			u = game.User{Email: email, PlayerUUID: uuid.NewString()}
		} else {
			return nil, err
		}
	}
	if name != "" {
		u.PlayerName = name
	}
	if err := r.db.Save(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) UpdateStatsOnMatchEnd(m *game.Match, resignedEmail string) error {
	// Helper to upsert and add deltas
	upsert := func(email, uuid, name string, played, wins, resigns int) error {
		var ps game.User
		if err := r.db.Where("email = ?", email).First(&ps).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				ps = game.User{Email: email, PlayerUUID: uuid, PlayerName: name}
			} else {
				return err
			}
		}
		ps.PlayerName = name
		ps.PlayerUUID = uuid
		ps.GamesPlayed += played
		ps.Wins += wins
		ps.Resignations += resigns
		return r.db.Save(&ps).Error
	}
	if len(m.Players) != 2 {
		return nil
	}
	p1 := m.Players[0]
	p2 := m.Players[1]
	// everyone played one game
	if err := upsert(p1.PlayerEmail, p1.PlayerUUID, p1.PlayerName, 1, 0, 0); err != nil {
		return err
	}
	if err := upsert(p2.PlayerEmail, p2.PlayerUUID, p2.PlayerName, 1, 0, 0); err != nil {
		return err
	}
	// winner
	if m.Winner != "" {
		if p1.PlayerName == m.Winner {
			if err := upsert(p1.PlayerEmail, p1.PlayerUUID, p1.PlayerName, 0, 1, 0); err != nil {
				return err
			}
		} else if p2.PlayerName == m.Winner {
			if err := upsert(p2.PlayerEmail, p2.PlayerUUID, p2.PlayerName, 0, 1, 0); err != nil {
				return err
			}
		}
	}
	// resignation
	if resignedEmail != "" {
		if p1.PlayerEmail == resignedEmail {
			return upsert(p1.PlayerEmail, p1.PlayerUUID, p1.PlayerName, 0, 0, 1)
		}
		if p2.PlayerEmail == resignedEmail {
			return upsert(p2.PlayerEmail, p2.PlayerUUID, p2.PlayerName, 0, 0, 1)
		}
	}
	return nil
}

func (r *sqliteRepository) GetStatsByEmail(email string) (*game.User, error) {
	var ps game.User
	if err := r.db.Where("email = ?", email).First(&ps).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &game.User{Email: email}, nil
		}
		return nil, err
	}
	return &ps, nil
}

func (r *sqliteRepository) SaveUser(u *game.User) error {
	return r.db.Save(u).Error
}

// GetTopPlayers returns top N players ordered by Wins desc, then GamesPlayed desc
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []game.User
	if err := r.db.Model(&game.User{}).
		Order("wins DESC").
		Order("games_played DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *sqliteRepository) FindTimedOutMatches(now time.Time) ([]game.Match, error) {
	var matches []game.Match
	err := r.db.
		Where("status = ?", game.StatusInProgress).
		Where("current_phase IN ?", []string{game.PhaseAttackerSelect, game.PhaseDefenderSelect}).
		Where("action_deadline > ? AND action_deadline <= ?", time.Time{}, now).
		Find(&matches).Error
	return matches, err
}
