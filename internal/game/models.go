package game

import (
	"time"

	"gorm.io/gorm"
)

// Era groups catalog cards; abilities only activate with at least two
// unused cards of the acting card's era on the owner's field.
type Era string

const (
	Era1 Era = "Era 1"
	Era2 Era = "Era 2"
	Era3 Era = "Era 3"
	Era4 Era = "Era 4"
)

// KnownEra reports whether e is one of the fixed era values.
func KnownEra(e Era) bool {
	switch e {
	case Era1, Era2, Era3, Era4:
		return true
	}
	return false
}

// AbilityTag identifies a card ability in the engine rule table.
// Using a dedicated type instead of plain string makes code safer and
// self-documenting.
type AbilityTag string

// CardDefinition is a catalog entry. Stats and ability metadata are
// configured via the server config file (eraclash_config.json) and are
// NOT persisted in the database: mark them with `gorm:"-"` so GORM
// ignores them for schema purposes while keeping the fields available
// in-memory and in JSON responses. Only the name is stored so the
// catalog table can anchor foreign data (player profiles reference
// nothing here; the table mostly exists so an operator can see which
// cards a given database was seeded with).
type CardDefinition struct {
	gorm.Model
	Name               string     `json:"name" gorm:"uniqueIndex"`
	Era                Era        `json:"era" gorm:"-"`
	BaseStrength       int        `json:"strength" gorm:"-"`
	BaseDamage         int        `json:"damage" gorm:"-"`
	AbilityTag         AbilityTag `json:"ability_tag" gorm:"-"`
	AbilityName        string     `json:"ability_name" gorm:"-"`
	AbilityDescription string     `json:"ability_description" gorm:"-"`
	ArtRef             string     `json:"art_ref" gorm:"-"`
}

// TableName overrides the default GORM table name for CardDefinition.
func (CardDefinition) TableName() string { return "card_catalog" }

// CardInstance is a per-match mutable copy of a catalog card, owned
// exclusively by the field it sits on. CurrentStrength, ExtraDamage and
// AttackBoost are reset at the start of every round resolution; Used is
// monotonic (false -> true). The *AtResolution fields are stamped after
// a battle for display only.
type CardInstance struct {
	gorm.Model
	PlayerID  uint `json:"-"`
	SlotIndex int  `json:"slot_index"`

	Name         string     `json:"name"`
	Era          Era        `json:"era"`
	BaseStrength int        `json:"base_strength"`
	BaseDamage   int        `json:"base_damage"`
	AbilityTag   AbilityTag `json:"ability_tag"`
	ArtRef       string     `json:"art_ref"`

	CurrentStrength int  `json:"current_strength"`
	ExtraDamage     int  `json:"extra_damage"`
	AttackBoost     int  `json:"attack_boost"`
	Used            bool `json:"used"`

	WonLastBattle           bool `json:"won_last_battle"`
	WagerAtResolution       int  `json:"wager_at_resolution"`
	TotalAttackAtResolution int  `json:"total_attack_at_resolution"`
}

func (CardInstance) TableName() string { return "field_cards" }

// DeckCard is one of the eight card names a player submitted for a
// match. Four of them are dealt to the field at match start.
type DeckCard struct {
	gorm.Model
	PlayerID uint   `json:"-"`
	Position int    `json:"position"`
	CardName string `json:"card_name"`
}

func (DeckCard) TableName() string { return "deck_cards" }

// TempState is the per-round scratch state of a player, accumulated by
// the ability pipeline before battle outcome and damage are applied.
// It replaces the original string-keyed tempVariables map with fixed,
// typed accumulator fields. Never persisted.
type TempState struct {
	// AbilitiesStopped is set on a player by the opponent's Ongoing
	// effect; while set, none of the player's abilities activate this
	// round.
	AbilitiesStopped bool
	// AttackModifiersCanceled nullifies the wager multiplier and any
	// Battle-phase attack boost for its holder. PreBattle strength
	// changes and PostBattle/PostWin effects are unaffected.
	AttackModifiersCanceled bool
	AttackReduction         int
	AttackReductionFloor    int
	DamageReductionFlat     int
	DamageReductionFloor    int
}

// Reset clears all accumulators.
func (t *TempState) Reset() { *t = TempState{} }

// Player holds one side of a match.
type Player struct {
	gorm.Model
	MatchID     uint   `json:"-"`
	PlayerUUID  string `json:"player_uuid"`
	PlayerName  string `json:"player_name"`
	PlayerEmail string `json:"player_email"`

	Life  int `json:"life"`
	Bucks int `json:"bucks"`

	Field []CardInstance `json:"field"`
	Deck  []DeckCard     `json:"-"`

	// SelectedCardIndex is an index into Field; nil when nothing is
	// selected. Cleared after every resolved round.
	SelectedCardIndex *int `json:"selected_card_index"`
	SelectedWager     int  `json:"selected_wager"`
	// HasCommitted is true once SubmitWager succeeded; the wager has
	// then already been deducted from Bucks.
	HasCommitted bool `json:"has_committed"`

	Temp TempState `json:"-" gorm:"-"`
}

// Store per-match participants in a dedicated table for clarity
func (Player) TableName() string { return "match_players" }

// UnusedEraCount returns how many unused field cards share the given
// era. The check always reads the live Used flags.
func (p *Player) UnusedEraCount(e Era) int {
	n := 0
	for i := range p.Field {
		if !p.Field[i].Used && p.Field[i].Era == e {
			n++
		}
	}
	return n
}

// UnusedCount returns how many field cards have not been played yet.
func (p *Player) UnusedCount() int {
	n := 0
	for i := range p.Field {
		if !p.Field[i].Used {
			n++
		}
	}
	return n
}

// SelectedCard returns the player's currently selected card, or nil.
func (p *Player) SelectedCard() *CardInstance {
	if p.SelectedCardIndex == nil {
		return nil
	}
	i := *p.SelectedCardIndex
	if i < 0 || i >= len(p.Field) {
		return nil
	}
	return &p.Field[i]
}

// Match phase and status values.
const (
	StatusWaitingForPlayers = "waiting_for_players"
	StatusInProgress        = "in_progress"
	StatusFinished          = "finished"

	PhaseAttackerSelect = "attacker_select"
	PhaseDefenderSelect = "defender_select"
	PhaseResolving      = "resolving"
	PhaseGameOver       = "game_over"
)

// Battle outcome values stored in BattleResult.Outcome.
const (
	OutcomeAttacker = "attacker"
	OutcomeDefender = "defender"
	OutcomeTie      = "tie"
)

// BattleResult summarizes the last resolved round for display.
type BattleResult struct {
	Outcome           string `json:"outcome"`
	WinnerUUID        string `json:"winner_uuid"`
	Damage            int    `json:"damage"`
	AttackerUUID      string `json:"attacker_uuid"`
	DefenderUUID      string `json:"defender_uuid"`
	AttackerCardIndex int    `json:"attacker_card_index"`
	DefenderCardIndex int    `json:"defender_card_index"`
	AttackerAttack    int    `json:"attacker_attack"`
	DefenderAttack    int    `json:"defender_attack"`
}

// Match is one complete game between two players. It exclusively owns
// both Players and all their CardInstances.
type Match struct {
	gorm.Model
	Name     string   `json:"name" gorm:"size:32"`
	Private  bool     `json:"private"`
	JoinCode string   `json:"join_code" gorm:"unique"`
	Players  []Player `json:"players"`

	Status       string `json:"status"`
	CurrentPhase string `json:"current_phase"`
	// Round is 1-indexed and never exceeds MaxRounds.
	Round int `json:"round"`
	// StartingPlayerUUID is the attacker of the current round; it
	// alternates after every resolved round.
	StartingPlayerUUID string `json:"starting_player_uuid"`
	CurrentActorUUID   string `json:"current_actor_uuid"`

	Winner           string `json:"winner"`
	Message          string `json:"message"`
	LastRoundSummary string `json:"last_round_summary"`

	LastBattle BattleResult `json:"last_battle" gorm:"embedded;embeddedPrefix:last_battle_"`

	ActionDeadline time.Time `json:"action_deadline"`
	StatsCounted   bool      `json:"-"`
}

// Game rule constants (from the table-top rules: both totals start at
// 12, a field holds 4 dealt cards, a match lasts at most 4 rounds).
const (
	StartingLife  = 12
	StartingBucks = 12
	FieldSize     = 4
	DeckSize      = 8
	MaxRounds     = 4
)

// PlayerByUUID returns the player with the given UUID, or nil.
func (m *Match) PlayerByUUID(uuid string) *Player {
	for i := range m.Players {
		if m.Players[i].PlayerUUID == uuid {
			return &m.Players[i]
		}
	}
	return nil
}

// OpponentOf returns the other player, or nil for incomplete matches.
func (m *Match) OpponentOf(p *Player) *Player {
	for i := range m.Players {
		if m.Players[i].PlayerUUID != p.PlayerUUID {
			return &m.Players[i]
		}
	}
	return nil
}

// Over reports whether the match reached a terminal state.
func (m *Match) Over() bool {
	return m.CurrentPhase == PhaseGameOver || m.Status == StatusFinished
}

// User stores unique player identity and aggregate stats.
type User struct {
	gorm.Model
	PlayerUUID   string `gorm:"index"`
	PlayerName   string
	Email        string `gorm:"uniqueIndex"`
	GamesPlayed  int
	Wins         int
	Resignations int
}

// Unify global users table name as "player_profiles"
func (User) TableName() string { return "player_profiles" }
