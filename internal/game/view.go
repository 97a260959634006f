package game

import "time"

// CardView is the serializable projection of a CardInstance. It is the
// same for both viewers: field contents are public information.
type CardView struct {
	SlotIndex               int    `json:"slot_index"`
	Name                    string `json:"name"`
	Era                     Era    `json:"era"`
	BaseStrength            int    `json:"base_strength"`
	BaseDamage              int    `json:"base_damage"`
	AbilityTag              string `json:"ability_tag"`
	ArtRef                  string `json:"art_ref"`
	CurrentStrength         int    `json:"current_strength"`
	Used                    bool   `json:"used"`
	WonLastBattle           bool   `json:"won_last_battle"`
	WagerAtResolution       int    `json:"wager_at_resolution"`
	TotalAttackAtResolution int    `json:"total_attack_at_resolution"`
}

// PlayerView is a per-viewer projection of a Player. For the viewer's
// own side SelectedWager carries the committed amount; for the opponent
// it is nil and Bucks is reported as the value *before* the current
// round's deduction, so a commitment never leaks the wager size before
// resolution.
type PlayerView struct {
	PlayerUUID        string     `json:"player_uuid"`
	PlayerName        string     `json:"player_name"`
	Life              int        `json:"life"`
	Bucks             int        `json:"bucks"`
	Field             []CardView `json:"field"`
	SelectedCardIndex *int       `json:"selected_card_index"`
	SelectedWager     *int       `json:"selected_wager"`
	HasCommitted      bool       `json:"has_committed"`
	You               bool       `json:"you"`
}

// MatchView is the serializable, per-viewer snapshot of a Match.
type MatchView struct {
	JoinCode           string       `json:"join_code"`
	Name               string       `json:"name"`
	Private            bool         `json:"private"`
	Status             string       `json:"status"`
	CurrentPhase       string       `json:"current_phase"`
	Round              int          `json:"round"`
	StartingPlayerUUID string       `json:"starting_player_uuid"`
	CurrentActorUUID   string       `json:"current_actor_uuid"`
	Winner             string       `json:"winner"`
	Message            string       `json:"message"`
	LastRoundSummary   string       `json:"last_round_summary"`
	LastBattle         BattleResult `json:"last_battle"`
	Players            []PlayerView `json:"players"`
}

// PlayerSummary is the slice of a player shown in the public match
// browser. Balances, selections and commitment flags stay out of it.
type PlayerSummary struct {
	PlayerUUID string `json:"player_uuid"`
	PlayerName string `json:"player_name"`
	Life       int    `json:"life"`
}

// MatchSummary is the reduced projection used when listing matches to
// unauthenticated callers.
type MatchSummary struct {
	JoinCode     string          `json:"join_code"`
	Name         string          `json:"name"`
	Status       string          `json:"status"`
	CurrentPhase string          `json:"current_phase"`
	Round        int             `json:"round"`
	Players      []PlayerSummary `json:"players"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SummaryOf builds the public-browser projection of m. Like ViewFor it
// constructs the output field by field, so round-in-progress state such
// as a committed wager cannot leak into the listing.
func SummaryOf(m *Match) MatchSummary {
	ms := MatchSummary{
		JoinCode:     m.JoinCode,
		Name:         m.Name,
		Status:       m.Status,
		CurrentPhase: m.CurrentPhase,
		Round:        m.Round,
		Players:      make([]PlayerSummary, 0, len(m.Players)),
		CreatedAt:    m.CreatedAt,
	}
	for i := range m.Players {
		p := &m.Players[i]
		ms.Players = append(ms.Players, PlayerSummary{
			PlayerUUID: p.PlayerUUID,
			PlayerName: p.PlayerName,
			Life:       p.Life,
		})
	}
	return ms
}

func cardView(c *CardInstance) CardView {
	return CardView{
		SlotIndex:               c.SlotIndex,
		Name:                    c.Name,
		Era:                     c.Era,
		BaseStrength:            c.BaseStrength,
		BaseDamage:              c.BaseDamage,
		AbilityTag:              string(c.AbilityTag),
		ArtRef:                  c.ArtRef,
		CurrentStrength:         c.CurrentStrength,
		Used:                    c.Used,
		WonLastBattle:           c.WonLastBattle,
		WagerAtResolution:       c.WagerAtResolution,
		TotalAttackAtResolution: c.TotalAttackAtResolution,
	}
}

// ViewFor builds the snapshot of m as seen by the player with
// viewerUUID. It constructs a reduced view instead of cloning the match
// and deleting fields, so nothing hidden can survive by accident.
func ViewFor(m *Match, viewerUUID string) MatchView {
	mv := MatchView{
		JoinCode:           m.JoinCode,
		Name:               m.Name,
		Private:            m.Private,
		Status:             m.Status,
		CurrentPhase:       m.CurrentPhase,
		Round:              m.Round,
		StartingPlayerUUID: m.StartingPlayerUUID,
		CurrentActorUUID:   m.CurrentActorUUID,
		Winner:             m.Winner,
		Message:            m.Message,
		LastRoundSummary:   m.LastRoundSummary,
		LastBattle:         m.LastBattle,
		Players:            make([]PlayerView, 0, len(m.Players)),
	}
	for i := range m.Players {
		p := &m.Players[i]
		pv := PlayerView{
			PlayerUUID:        p.PlayerUUID,
			PlayerName:        p.PlayerName,
			Life:              p.Life,
			Bucks:             p.Bucks,
			HasCommitted:      p.HasCommitted,
			SelectedCardIndex: p.SelectedCardIndex,
			Field:             make([]CardView, 0, len(p.Field)),
		}
		for j := range p.Field {
			pv.Field = append(pv.Field, cardView(&p.Field[j]))
		}
		if p.PlayerUUID == viewerUUID {
			pv.You = true
			w := p.SelectedWager
			pv.SelectedWager = &w
		} else if p.HasCommitted && !m.Over() && m.CurrentPhase != PhaseResolving {
			// The wager is already deducted from Bucks; report the
			// pre-deduction value until the round resolves.
			pv.Bucks = p.Bucks + p.SelectedWager
		}
		mv.Players = append(mv.Players, pv)
	}
	return mv
}
