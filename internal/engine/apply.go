package engine

import (
	"github.com/eracards/eraclash/internal/game"
	"github.com/eracards/eraclash/internal/logging"

	"github.com/eracards/eraclash/internal/constants"
)

// HasEraBonus reports whether the player currently has at least two
// unused field cards sharing the given era (the acting card counts when
// it is still unused). The check reads the live Used flags so it may be
// called once per phase without caching staleness.
func HasEraBonus(p *game.Player, era game.Era) bool {
	return p.UnusedEraCount(era) >= 2
}

// ApplyAbilities runs the ability of card for the given phase, if any.
// It is a side-effecting procedure: it mutates the temp state of both
// players, the battling cards, or the actor's life and bucks in place,
// and returns nothing.
//
// An ability is skipped when:
//   - its tag is unknown to the rule table (logged, treated as inert —
//     a catalog gap must not fail the round);
//   - it belongs to a different phase;
//   - the opponent stopped the actor's abilities this round;
//   - the actor lacks the era bonus for the card's era.
func (rs *RuleSet) ApplyAbilities(actor, opponent *game.Player, card *game.CardInstance, phase Phase, log func(msg string)) {
	if card.AbilityTag == "" {
		return
	}
	rule, ok := rs.rules[card.AbilityTag]
	if !ok {
		logging.Warn("unknown ability tag; treating as inert", logging.Fields{
			constants.LogFieldAbility:  string(card.AbilityTag),
			constants.LogFieldCardName: card.Name,
		})
		return
	}
	if rule.phase != phase {
		return
	}
	if actor.Temp.AbilitiesStopped {
		return
	}
	if !HasEraBonus(actor, card.Era) {
		return
	}
	rule.apply(&effectContext{actor: actor, opponent: opponent, card: card, log: log})
}
