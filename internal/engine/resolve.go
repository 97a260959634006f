package engine

import (
	"strconv"
	"strings"

	"github.com/eracards/eraclash/internal/game"
)

// --- Round context and helpers ----------------------------------------
type roundContext struct {
	m       *game.Match
	rules   *RuleSet
	summary []string
}

func newRoundContext(rs *RuleSet, m *game.Match) *roundContext {
	return &roundContext{m: m, rules: rs, summary: make([]string, 0, 16)}
}

func (rc *roundContext) add(msg string) { rc.summary = append(rc.summary, msg) }

// joinSummary returns the accumulated summary as a single string.
func (rc *roundContext) joinSummary() string {
	return strings.Join(rc.summary, "\n")
}

func (rc *roundContext) apply(actor, opponent *game.Player, card *game.CardInstance, phase Phase) {
	rc.rules.ApplyAbilities(actor, opponent, card, phase, rc.add)
}

// attackValue computes strength × (1 + wager), unless the player's
// attack modifiers were canceled this round (then the multiplier is 1).
func attackValue(p *game.Player, card *game.CardInstance) int {
	s := card.CurrentStrength
	if s < 0 {
		s = 0
	}
	if p.Temp.AttackModifiersCanceled {
		return s
	}
	return s * (1 + p.SelectedWager)
}

// reduceAttack applies the opponent-set attack reduction with its floor.
func reduceAttack(p *game.Player, attack int) int {
	if p.Temp.AttackReduction > 0 {
		attack -= p.Temp.AttackReduction
		if attack < p.Temp.AttackReductionFloor {
			attack = p.Temp.AttackReductionFloor
		}
	}
	return attack
}

// ResolveRound resolves one full round. Callable only when both players
// have committed a card and a wager; it applies abilities phase by
// phase, decides the battle, books life and resources, consumes both
// cards and advances the match (next round or game over).
func ResolveRound(rs *RuleSet, m *game.Match) {
	if len(m.Players) != 2 {
		return
	}
	attacker := m.PlayerByUUID(m.StartingPlayerUUID)
	if attacker == nil {
		return
	}
	defender := m.OpponentOf(attacker)
	aCard := attacker.SelectedCard()
	dCard := defender.SelectedCard()
	if aCard == nil || dCard == nil {
		return
	}

	m.CurrentPhase = game.PhaseResolving
	rc := newRoundContext(rs, m)

	// Reset battling cards and both scratch states.
	for _, c := range []*game.CardInstance{aCard, dCard} {
		c.CurrentStrength = c.BaseStrength
		c.ExtraDamage = 0
		c.AttackBoost = 0
	}
	attacker.Temp.Reset()
	defender.Temp.Reset()

	// Ongoing first: suppression is a round-wide veto and must be
	// decided before any phase it affects. Attacker resolves ahead of
	// the defender, so an attacker's suppression also mutes the
	// defender's own Ongoing effect.
	rc.apply(attacker, defender, aCard, PhaseOngoing)
	rc.apply(defender, attacker, dCard, PhaseOngoing)

	rc.apply(attacker, defender, aCard, PhasePreBattle)
	rc.apply(defender, attacker, dCard, PhasePreBattle)

	attackerAttack := attackValue(attacker, aCard)
	defenderAttack := attackValue(defender, dCard)

	rc.apply(attacker, defender, aCard, PhaseBattle)
	rc.apply(defender, attacker, dCard, PhaseBattle)

	// Battle-phase boosts obey the same cancellation flag, checked at
	// the moment the boost would land.
	if !attacker.Temp.AttackModifiersCanceled {
		attackerAttack += aCard.AttackBoost
	}
	if !defender.Temp.AttackModifiersCanceled {
		defenderAttack += dCard.AttackBoost
	}

	attackerAttack = reduceAttack(attacker, attackerAttack)
	defenderAttack = reduceAttack(defender, defenderAttack)

	rc.add(attacker.PlayerName + " attacks with " + aCard.Name + ": total attack " + strconv.Itoa(attackerAttack))
	rc.add(defender.PlayerName + " defends with " + dCard.Name + ": total attack " + strconv.Itoa(defenderAttack))

	var winner, loser *game.Player
	var winnerCard *game.CardInstance
	outcome := game.OutcomeTie
	switch {
	case attackerAttack > defenderAttack:
		outcome, winner, loser, winnerCard = game.OutcomeAttacker, attacker, defender, aCard
	case defenderAttack > attackerAttack:
		outcome, winner, loser, winnerCard = game.OutcomeDefender, defender, attacker, dCard
	}

	rc.apply(attacker, defender, aCard, PhasePostBattle)
	rc.apply(defender, attacker, dCard, PhasePostBattle)

	damage := 0
	if outcome == game.OutcomeTie {
		rc.add("The battle ends in a tie. No damage is dealt.")
	} else {
		damage = winnerCard.BaseDamage + winnerCard.ExtraDamage
		damage -= loser.Temp.DamageReductionFlat
		if damage < loser.Temp.DamageReductionFloor {
			damage = loser.Temp.DamageReductionFloor
		}
		loser.Life -= damage
		rc.add(winner.PlayerName + " wins the battle and deals " + strconv.Itoa(damage) + " damage to " + loser.PlayerName)

		rc.apply(winner, loser, winnerCard, PhasePostWin)
		loserCard := loser.SelectedCard()
		if loserCard != nil {
			rc.apply(loser, winner, loserCard, PhaseOnLose)
		}
	}

	// Both played cards are consumed, even on a tie.
	stamp := func(p *game.Player, c *game.CardInstance, total int) {
		c.Used = true
		c.WonLastBattle = winner == p
		c.WagerAtResolution = p.SelectedWager
		c.TotalAttackAtResolution = total
	}
	stamp(attacker, aCard, attackerAttack)
	stamp(defender, dCard, defenderAttack)

	m.LastBattle = game.BattleResult{
		Outcome:           outcome,
		Damage:            damage,
		AttackerUUID:      attacker.PlayerUUID,
		DefenderUUID:      defender.PlayerUUID,
		AttackerCardIndex: *attacker.SelectedCardIndex,
		DefenderCardIndex: *defender.SelectedCardIndex,
		AttackerAttack:    attackerAttack,
		DefenderAttack:    defenderAttack,
	}
	if winner != nil {
		m.LastBattle.WinnerUUID = winner.PlayerUUID
	}

	for _, p := range []*game.Player{attacker, defender} {
		p.SelectedCardIndex = nil
		p.SelectedWager = 0
		p.HasCommitted = false
		p.Temp.Reset()
	}

	rc.finalizeRound(attacker, defender)
}

// finalizeRound evaluates termination conditions and prepares the next
// round or closes the match.
func (rc *roundContext) finalizeRound(attacker, defender *game.Player) {
	m := rc.m
	m.LastRoundSummary = rc.joinSummary()

	if attacker.Life <= 0 || defender.Life <= 0 || m.Round >= game.MaxRounds {
		m.CurrentPhase = game.PhaseGameOver
		m.Status = game.StatusFinished
		m.CurrentActorUUID = ""
		switch {
		case attacker.Life <= 0 && defender.Life <= 0:
			m.Winner = ""
			m.Message = "The match ends with both players defeated."
		case attacker.Life <= 0:
			m.Winner = defender.PlayerName
			m.Message = "Victory for " + defender.PlayerName
		case defender.Life <= 0:
			m.Winner = attacker.PlayerName
			m.Message = "Victory for " + attacker.PlayerName
		default:
			// Round limit reached: the higher remaining life wins.
			switch {
			case attacker.Life > defender.Life:
				m.Winner = attacker.PlayerName
			case defender.Life > attacker.Life:
				m.Winner = defender.PlayerName
			default:
				m.Winner = ""
			}
			if m.Winner != "" {
				m.Message = "Final round played. Victory for " + m.Winner
			} else {
				m.Message = "Final round played. The match is a draw."
			}
		}
		return
	}

	m.Round++
	if m.StartingPlayerUUID == attacker.PlayerUUID {
		m.StartingPlayerUUID = defender.PlayerUUID
	} else {
		m.StartingPlayerUUID = attacker.PlayerUUID
	}
	m.CurrentActorUUID = m.StartingPlayerUUID
	m.CurrentPhase = game.PhaseAttackerSelect
	m.Message = "Round " + strconv.Itoa(m.Round) + ". " + rc.m.PlayerByUUID(m.CurrentActorUUID).PlayerName + " attacks first."
}
