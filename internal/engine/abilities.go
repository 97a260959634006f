package engine

import (
	"strconv"

	"github.com/eracards/eraclash/internal/game"
)

// Phase is the slot in the round where an ability fires. Every ability
// belongs to exactly one phase, fixed by the rule table.
type Phase int

const (
	// PhasePreBattle modifies raw strength before wager multiplication.
	PhasePreBattle Phase = iota
	// PhaseOngoing sets round-wide meta effects (ability suppression,
	// attack-modifier cancellation). Evaluated before every phase it
	// can affect.
	PhaseOngoing
	// PhaseBattle modifies the attack value after wager multiplication.
	PhaseBattle
	// PhasePostBattle modifies damage once the winner is known but
	// before life is applied.
	PhasePostBattle
	// PhasePostWin fires only for the round winner.
	PhasePostWin
	// PhaseOnLose fires only for the round loser.
	PhaseOnLose
)

func (p Phase) String() string {
	switch p {
	case PhasePreBattle:
		return "pre_battle"
	case PhaseOngoing:
		return "ongoing"
	case PhaseBattle:
		return "battle"
	case PhasePostBattle:
		return "post_battle"
	case PhasePostWin:
		return "post_win"
	case PhaseOnLose:
		return "on_lose"
	}
	return "unknown"
}

// Ability tags understood by the rule table. Catalog entries reference
// these via their `ability` key in the config file.
const (
	TagRallyCry         game.AbilityTag = "rally_cry"
	TagGasCloud         game.AbilityTag = "gas_cloud"
	TagBurntToast       game.AbilityTag = "burnt_toast"
	TagNutBarrage       game.AbilityTag = "nut_barrage"
	TagPowerFlex        game.AbilityTag = "power_flex"
	TagLayeredAttack    game.AbilityTag = "layered_attack"
	TagPiercingShot     game.AbilityTag = "piercing_shot"
	TagMarketCrash      game.AbilityTag = "market_crash"
	TagAdrenalineRush   game.AbilityTag = "adrenaline_rush"
	TagIntimidate       game.AbilityTag = "intimidate"
	TagBoneCrush        game.AbilityTag = "bone_crush"
	TagSoundBlast       game.AbilityTag = "sound_blast"
	TagSharpEdges       game.AbilityTag = "sharp_edges"
	TagPotatoShield     game.AbilityTag = "potato_shield"
	TagTechSavvy        game.AbilityTag = "tech_savvy"
	TagLoyalCompanion   game.AbilityTag = "loyal_companion"
	TagWiseAdvice       game.AbilityTag = "wise_advice"
	TagFeast            game.AbilityTag = "feast"
	TagLateNightSnack   game.AbilityTag = "late_night_snack"
	TagStrategicInsight game.AbilityTag = "strategic_insight"
	TagHeavySeat        game.AbilityTag = "heavy_seat"
	TagFlameAura        game.AbilityTag = "flame_aura"
	TagDishThrow        game.AbilityTag = "dish_throw"
	TagLastLaugh        game.AbilityTag = "last_laugh"
)

// effectContext carries everything an effect function may touch: the
// acting side, the opposing side and the acting card. Effects mutate
// these in place and never return values.
type effectContext struct {
	actor    *game.Player
	opponent *game.Player
	card     *game.CardInstance
	log      func(msg string)
}

func (ctx *effectContext) addf(msg string) {
	if ctx.log != nil {
		ctx.log(msg)
	}
}

type abilityRule struct {
	phase Phase
	apply func(ctx *effectContext)
}

// RuleSet is the closed table mapping ability tags to their phase and
// effect. It is built once (at catalog load) and shared read-only by
// all matches.
type RuleSet struct {
	rules map[game.AbilityTag]abilityRule
}

// Knows reports whether the tag resolves to a rule. Catalog validation
// uses this to flag typos; at resolution time unknown tags are merely
// logged and treated as inert.
func (rs *RuleSet) Knows(tag game.AbilityTag) bool {
	_, ok := rs.rules[tag]
	return ok
}

func boostStrength(n int) func(ctx *effectContext) {
	return func(ctx *effectContext) {
		ctx.card.CurrentStrength += n
		ctx.addf(ctx.card.Name + " gains +" + strconv.Itoa(n) + " strength")
	}
}

func weakenOpponentCard(n int) func(ctx *effectContext) {
	return func(ctx *effectContext) {
		oc := ctx.opponent.SelectedCard()
		if oc == nil {
			return
		}
		oc.CurrentStrength -= n
		if oc.CurrentStrength < 0 {
			oc.CurrentStrength = 0
		}
		ctx.addf(oc.Name + " loses " + strconv.Itoa(n) + " strength")
	}
}

func extraDamage(n int) func(ctx *effectContext) {
	return func(ctx *effectContext) {
		ctx.card.ExtraDamage += n
		ctx.addf(ctx.card.Name + " adds +" + strconv.Itoa(n) + " damage")
	}
}

func incomingDamageReduction(n int) func(ctx *effectContext) {
	return func(ctx *effectContext) {
		ctx.actor.Temp.DamageReductionFlat += n
		ctx.addf(ctx.actor.PlayerName + " reduces incoming damage by " + strconv.Itoa(n))
	}
}

func gainLife(n int) func(ctx *effectContext) {
	return func(ctx *effectContext) {
		ctx.actor.Life += n
		ctx.addf(ctx.actor.PlayerName + " gains " + strconv.Itoa(n) + " life")
	}
}

func drainLife(n int) func(ctx *effectContext) {
	return func(ctx *effectContext) {
		ctx.opponent.Life -= n
		ctx.addf(ctx.opponent.PlayerName + " loses " + strconv.Itoa(n) + " life")
	}
}

func gainBucks(n int) func(ctx *effectContext) {
	return func(ctx *effectContext) {
		ctx.actor.Bucks += n
		ctx.addf(ctx.actor.PlayerName + " gains " + strconv.Itoa(n) + " bucks")
	}
}

func drainBucks(n int) func(ctx *effectContext) {
	return func(ctx *effectContext) {
		ctx.opponent.Bucks -= n
		if ctx.opponent.Bucks < 0 {
			ctx.opponent.Bucks = 0
		}
		ctx.addf(ctx.opponent.PlayerName + " loses " + strconv.Itoa(n) + " bucks")
	}
}

// DefaultRules builds the rule table. Effects are transcriptions of the
// printed card abilities; the phase tag decides when each one may fire.
func DefaultRules() *RuleSet {
	return &RuleSet{rules: map[game.AbilityTag]abilityRule{
		// Raw-strength effects, applied before the wager multiplier.
		TagNutBarrage:    {phase: PhasePreBattle, apply: boostStrength(2)},
		TagPowerFlex:     {phase: PhasePreBattle, apply: boostStrength(3)},
		TagGasCloud:      {phase: PhasePreBattle, apply: weakenOpponentCard(1)},
		TagBurntToast:    {phase: PhasePreBattle, apply: weakenOpponentCard(2)},
		TagLayeredAttack: {phase: PhasePreBattle, apply: func(ctx *effectContext) {
			ctx.card.CurrentStrength *= 2
			ctx.addf(ctx.card.Name + " doubles its strength")
		}},
		TagRallyCry: {phase: PhasePreBattle, apply: func(ctx *effectContext) {
			for i := range ctx.actor.Field {
				c := &ctx.actor.Field[i]
				if !c.Used && c.Era == ctx.card.Era {
					c.CurrentStrength++
				}
			}
			ctx.addf(ctx.actor.PlayerName + "'s " + string(ctx.card.Era) + " cards gain +1 strength")
		}},

		// Round-wide meta effects.
		TagPiercingShot: {phase: PhaseOngoing, apply: func(ctx *effectContext) {
			ctx.opponent.Temp.AbilitiesStopped = true
			ctx.addf(ctx.opponent.PlayerName + "'s abilities are stopped this round")
		}},
		TagMarketCrash: {phase: PhaseOngoing, apply: func(ctx *effectContext) {
			ctx.opponent.Temp.AttackModifiersCanceled = true
			ctx.addf(ctx.opponent.PlayerName + "'s wager multiplier and attack boosts are canceled")
		}},

		// Post-multiplier attack effects.
		TagAdrenalineRush: {phase: PhaseBattle, apply: func(ctx *effectContext) {
			ctx.card.AttackBoost += 5
			ctx.addf(ctx.card.Name + " gains +5 attack")
		}},
		TagIntimidate: {phase: PhaseBattle, apply: func(ctx *effectContext) {
			ctx.opponent.Temp.AttackReduction += 4
			ctx.addf(ctx.opponent.PlayerName + "'s attack is reduced by 4")
		}},

		// Damage adjustments, applied once the winner is known.
		TagBoneCrush:    {phase: PhasePostBattle, apply: extraDamage(2)},
		TagSoundBlast:   {phase: PhasePostBattle, apply: extraDamage(2)},
		TagSharpEdges:   {phase: PhasePostBattle, apply: extraDamage(3)},
		TagPotatoShield: {phase: PhasePostBattle, apply: incomingDamageReduction(2)},
		TagTechSavvy:    {phase: PhasePostBattle, apply: incomingDamageReduction(2)},

		// Winner-only effects.
		TagLoyalCompanion:   {phase: PhasePostWin, apply: gainBucks(1)},
		TagLateNightSnack:   {phase: PhasePostWin, apply: gainBucks(2)},
		TagWiseAdvice:       {phase: PhasePostWin, apply: gainLife(2)},
		TagFeast:            {phase: PhasePostWin, apply: gainLife(2)},
		TagStrategicInsight: {phase: PhasePostWin, apply: drainBucks(1)},
		TagHeavySeat:        {phase: PhasePostWin, apply: drainBucks(1)},
		TagFlameAura:        {phase: PhasePostWin, apply: drainLife(2)},
		TagDishThrow:        {phase: PhasePostWin, apply: drainLife(2)},

		// Loser-only effects.
		TagLastLaugh: {phase: PhaseOnLose, apply: gainBucks(1)},
	}}
}
