package engine

import "github.com/eracards/eraclash/internal/game"

// actingPlayer validates the common preconditions of every intent: the
// match is live, the caller is a participant and the caller is the
// current actor. On success it returns the caller's player state.
func actingPlayer(m *game.Match, playerUUID string) (*game.Player, error) {
	if m.Over() {
		return nil, ErrMatchAlreadyOver
	}
	p := m.PlayerByUUID(playerUUID)
	if p == nil {
		return nil, ErrPlayerNotInMatch
	}
	if m.CurrentPhase != game.PhaseAttackerSelect && m.CurrentPhase != game.PhaseDefenderSelect {
		return nil, ErrOutOfTurn
	}
	if m.CurrentActorUUID != playerUUID {
		return nil, ErrOutOfTurn
	}
	return p, nil
}

// SelectCard records the caller's card choice for the current round.
// Pure state update, no phase change.
func SelectCard(m *game.Match, playerUUID string, index int) error {
	p, err := actingPlayer(m, playerUUID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(p.Field) || p.Field[index].Used {
		return ErrInvalidSelection
	}
	idx := index
	p.SelectedCardIndex = &idx
	return nil
}

// SubmitWager commits the caller's wager, deducting it from their
// bucks. When the attacker commits, the defender becomes the current
// actor; when the defender commits, the round resolves immediately and
// the returned flag is true.
func SubmitWager(rs *RuleSet, m *game.Match, playerUUID string, amount int) (resolved bool, err error) {
	p, err := actingPlayer(m, playerUUID)
	if err != nil {
		return false, err
	}
	if amount < 0 || amount > p.Bucks || p.SelectedCardIndex == nil {
		return false, ErrInvalidWager
	}

	p.Bucks -= amount
	p.SelectedWager = amount
	p.HasCommitted = true

	if m.CurrentPhase == game.PhaseAttackerSelect {
		opp := m.OpponentOf(p)
		m.CurrentPhase = game.PhaseDefenderSelect
		m.CurrentActorUUID = opp.PlayerUUID
		m.Message = opp.PlayerName + " picks a card and a wager."
		return false, nil
	}

	// Defender committed: both sides are in, resolve the round.
	m.CurrentPhase = game.PhaseResolving
	ResolveRound(rs, m)
	return true, nil
}

// CancelSelection clears the caller's selected card and wager. A wager
// that was already deducted is refunded. No phase change.
func CancelSelection(m *game.Match, playerUUID string) error {
	p, err := actingPlayer(m, playerUUID)
	if err != nil {
		return err
	}
	if p.SelectedCardIndex == nil && !p.HasCommitted {
		return ErrNoActiveSelection
	}
	if p.HasCommitted {
		p.Bucks += p.SelectedWager
		p.HasCommitted = false
	}
	p.SelectedCardIndex = nil
	p.SelectedWager = 0
	return nil
}
