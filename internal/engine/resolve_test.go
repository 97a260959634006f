package engine

import (
	"testing"

	"github.com/eracards/eraclash/internal/game"
)

func fieldCard(slot int, name string, era game.Era, strength, damage int, tag game.AbilityTag) game.CardInstance {
	return game.CardInstance{
		SlotIndex:       slot,
		Name:            name,
		Era:             era,
		BaseStrength:    strength,
		BaseDamage:      damage,
		CurrentStrength: strength,
		AbilityTag:      tag,
	}
}

// plainField builds four ability-less cards with the given strength and
// damage, each in its own era so no era bonus ever triggers.
func plainField(strength, damage int) []game.CardInstance {
	eras := []game.Era{game.Era1, game.Era2, game.Era3, game.Era4}
	field := make([]game.CardInstance, 4)
	for i := range field {
		field[i] = fieldCard(i, "Plain", eras[i], strength, damage, "")
	}
	return field
}

func twoPlayerMatch() *game.Match {
	return &game.Match{
		Status:             game.StatusInProgress,
		CurrentPhase:       game.PhaseAttackerSelect,
		Round:              1,
		StartingPlayerUUID: "p1",
		CurrentActorUUID:   "p1",
		Players: []game.Player{
			{PlayerUUID: "p1", PlayerName: "Ana", Life: game.StartingLife, Bucks: game.StartingBucks},
			{PlayerUUID: "p2", PlayerName: "Bia", Life: game.StartingLife, Bucks: game.StartingBucks},
		},
	}
}

// playRound drives one full round through the intent functions: the
// current actor picks firstIdx/firstWager, then the opponent picks
// secondIdx/secondWager, which resolves.
func playRound(t *testing.T, rs *RuleSet, m *game.Match, firstIdx, firstWager, secondIdx, secondWager int) {
	t.Helper()
	first := m.CurrentActorUUID
	if err := SelectCard(m, first, firstIdx); err != nil {
		t.Fatalf("first SelectCard: %v", err)
	}
	if resolved, err := SubmitWager(rs, m, first, firstWager); err != nil || resolved {
		t.Fatalf("first SubmitWager: resolved=%v err=%v", resolved, err)
	}
	second := m.CurrentActorUUID
	if second == first {
		t.Fatalf("actor did not flip after the attacker committed")
	}
	if err := SelectCard(m, second, secondIdx); err != nil {
		t.Fatalf("second SelectCard: %v", err)
	}
	resolved, err := SubmitWager(rs, m, second, secondWager)
	if err != nil {
		t.Fatalf("second SubmitWager: %v", err)
	}
	if !resolved {
		t.Fatalf("expected the round to resolve after the defender committed")
	}
}

func TestResolveRound_WagerMultipliesAttack(t *testing.T) {
	rs := DefaultRules()
	m := twoPlayerMatch()
	m.Players[0].Field = plainField(6, 3)
	m.Players[1].Field = plainField(5, 2)

	playRound(t, rs, m, 0, 3, 0, 1)

	if m.LastBattle.AttackerAttack != 24 {
		t.Fatalf("expected attacker attack 6*(1+3)=24, got %d", m.LastBattle.AttackerAttack)
	}
	if m.LastBattle.DefenderAttack != 10 {
		t.Fatalf("expected defender attack 5*(1+1)=10, got %d", m.LastBattle.DefenderAttack)
	}
	if m.LastBattle.Outcome != game.OutcomeAttacker {
		t.Fatalf("expected attacker outcome, got %s", m.LastBattle.Outcome)
	}
	if m.Players[1].Life != game.StartingLife-3 {
		t.Fatalf("expected defender life %d, got %d", game.StartingLife-3, m.Players[1].Life)
	}
	if m.Players[0].Bucks != game.StartingBucks-3 || m.Players[1].Bucks != game.StartingBucks-1 {
		t.Fatalf("wagers must stay deducted after resolution: got %d and %d", m.Players[0].Bucks, m.Players[1].Bucks)
	}
	if m.Round != 2 {
		t.Fatalf("expected round 2, got %d", m.Round)
	}
	if m.StartingPlayerUUID != "p2" || m.CurrentActorUUID != "p2" {
		t.Fatalf("attacker role must alternate: starting=%s actor=%s", m.StartingPlayerUUID, m.CurrentActorUUID)
	}
}

func TestResolveRound_TieConsumesBothCardsWithoutDamage(t *testing.T) {
	rs := DefaultRules()
	m := twoPlayerMatch()
	m.Players[0].Field = plainField(4, 2)
	m.Players[1].Field = plainField(4, 2)

	playRound(t, rs, m, 0, 1, 0, 1)

	if m.LastBattle.Outcome != game.OutcomeTie {
		t.Fatalf("expected tie, got %s", m.LastBattle.Outcome)
	}
	if m.LastBattle.Damage != 0 {
		t.Fatalf("tie must deal no damage, got %d", m.LastBattle.Damage)
	}
	if m.Players[0].Life != game.StartingLife || m.Players[1].Life != game.StartingLife {
		t.Fatalf("life must be untouched on a tie")
	}
	if !m.Players[0].Field[0].Used || !m.Players[1].Field[0].Used {
		t.Fatalf("both played cards must be consumed on a tie")
	}
	if m.LastBattle.WinnerUUID != "" {
		t.Fatalf("tie must have no winner, got %q", m.LastBattle.WinnerUUID)
	}
}

func TestResolveRound_EraBonusGatesAbilities(t *testing.T) {
	rs := DefaultRules()

	// Lone era card: power_flex must not fire.
	m := twoPlayerMatch()
	m.Players[0].Field = plainField(4, 2)
	m.Players[0].Field[0] = fieldCard(0, "Siege Captain", game.Era2, 4, 2, TagPowerFlex)
	m.Players[0].Field[1] = fieldCard(1, "Plain", game.Era1, 4, 2, "")
	m.Players[1].Field = plainField(3, 2)
	playRound(t, rs, m, 0, 0, 0, 0)
	if m.LastBattle.AttackerAttack != 4 {
		t.Fatalf("ability must not fire without a second unused card of the era: attack %d", m.LastBattle.AttackerAttack)
	}

	// Two unused cards of the same era: power_flex fires.
	m = twoPlayerMatch()
	m.Players[0].Field = plainField(4, 2)
	m.Players[0].Field[0] = fieldCard(0, "Siege Captain", game.Era2, 4, 2, TagPowerFlex)
	m.Players[0].Field[1] = fieldCard(1, "Castle Cook", game.Era2, 3, 2, "")
	m.Players[1].Field = plainField(3, 2)
	playRound(t, rs, m, 0, 0, 0, 0)
	if m.LastBattle.AttackerAttack != 7 {
		t.Fatalf("expected 4+3=7 with the era bonus, got %d", m.LastBattle.AttackerAttack)
	}
}

func TestResolveRound_SuppressionStopsOpponentAbilities(t *testing.T) {
	rs := DefaultRules()
	m := twoPlayerMatch()
	m.Players[0].Field = plainField(4, 2)
	m.Players[0].Field[0] = fieldCard(0, "Crossbow Sentry", game.Era2, 4, 2, TagPiercingShot)
	m.Players[0].Field[1] = fieldCard(1, "Iron Maiden", game.Era2, 5, 1, "")
	m.Players[1].Field = plainField(4, 2)
	m.Players[1].Field[0] = fieldCard(0, "Siege Captain", game.Era2, 4, 2, TagPowerFlex)
	m.Players[1].Field[1] = fieldCard(1, "Castle Cook", game.Era2, 3, 2, "")

	playRound(t, rs, m, 0, 0, 0, 0)

	// power_flex had its era bonus but was suppressed by piercing_shot.
	if m.LastBattle.DefenderAttack != 4 {
		t.Fatalf("suppressed ability must not fire: defender attack %d", m.LastBattle.DefenderAttack)
	}
}

func TestResolveRound_CancellationNullifiesMultiplierNotPreBattle(t *testing.T) {
	rs := DefaultRules()
	m := twoPlayerMatch()
	m.Players[0].Field = plainField(4, 2)
	m.Players[0].Field[0] = fieldCard(0, "Stock Broker", game.Era3, 3, 2, TagMarketCrash)
	m.Players[0].Field[1] = fieldCard(1, "Street Busker", game.Era3, 2, 2, "")
	m.Players[1].Field = plainField(4, 2)
	m.Players[1].Field[0] = fieldCard(0, "Siege Captain", game.Era2, 4, 2, TagPowerFlex)
	m.Players[1].Field[1] = fieldCard(1, "Castle Cook", game.Era2, 3, 2, "")

	playRound(t, rs, m, 0, 0, 0, 2)

	// Pre-battle strength boost survives (4+3=7) but the wager
	// multiplier is canceled, so 7 instead of 7*(1+2)=21.
	if m.LastBattle.DefenderAttack != 7 {
		t.Fatalf("expected canceled attack 7, got %d", m.LastBattle.DefenderAttack)
	}
	if m.Players[1].Bucks != game.StartingBucks-2 {
		t.Fatalf("a canceled wager is still spent: got %d bucks", m.Players[1].Bucks)
	}
}

func TestResolveRound_BattleBoostSubjectToCancellation(t *testing.T) {
	rs := DefaultRules()
	m := twoPlayerMatch()
	m.Players[0].Field = plainField(4, 2)
	m.Players[0].Field[0] = fieldCard(0, "Stock Broker", game.Era3, 3, 2, TagMarketCrash)
	m.Players[0].Field[1] = fieldCard(1, "Street Busker", game.Era3, 2, 2, "")
	m.Players[1].Field = plainField(4, 2)
	m.Players[1].Field[0] = fieldCard(0, "Saber Stalker", game.Era1, 5, 3, TagAdrenalineRush)
	m.Players[1].Field[1] = fieldCard(1, "Bone Crusher", game.Era1, 4, 2, "")

	playRound(t, rs, m, 0, 0, 0, 0)

	// adrenaline_rush fired but its +5 boost is nullified by
	// market_crash, leaving the raw strength.
	if m.LastBattle.DefenderAttack != 5 {
		t.Fatalf("canceled battle boost must not land: defender attack %d", m.LastBattle.DefenderAttack)
	}
}

func TestResolveRound_AttackReductionHasFloor(t *testing.T) {
	rs := DefaultRules()
	m := twoPlayerMatch()
	m.Players[0].Field = plainField(3, 2)
	m.Players[1].Field = plainField(4, 2)
	m.Players[1].Field[0] = fieldCard(0, "Union Enforcer", game.Era3, 5, 2, TagIntimidate)
	m.Players[1].Field[1] = fieldCard(1, "Boiler Golem", game.Era3, 6, 3, "")

	playRound(t, rs, m, 0, 0, 0, 0)

	if m.LastBattle.AttackerAttack != 0 {
		t.Fatalf("reduced attack must floor at zero, got %d", m.LastBattle.AttackerAttack)
	}
	if m.LastBattle.Outcome != game.OutcomeDefender {
		t.Fatalf("expected defender to win, got %s", m.LastBattle.Outcome)
	}
}

func TestResolveRound_DamageReductionAppliesToLoser(t *testing.T) {
	rs := DefaultRules()
	m := twoPlayerMatch()
	m.Players[0].Field = plainField(6, 3)
	m.Players[1].Field = plainField(2, 2)
	m.Players[1].Field[0] = fieldCard(0, "Spud Mech", game.Era4, 2, 2, TagPotatoShield)
	m.Players[1].Field[1] = fieldCard(1, "Grid Hacker", game.Era4, 3, 3, "")

	playRound(t, rs, m, 0, 0, 0, 0)

	// Winner damage 3 reduced by potato_shield's 2.
	if m.LastBattle.Damage != 1 {
		t.Fatalf("expected damage 3-2=1, got %d", m.LastBattle.Damage)
	}
	if m.Players[1].Life != game.StartingLife-1 {
		t.Fatalf("expected loser life %d, got %d", game.StartingLife-1, m.Players[1].Life)
	}
}

func TestResolveRound_RallyCryBoostsUnusedSameEraCards(t *testing.T) {
	rs := DefaultRules()
	m := twoPlayerMatch()
	m.Players[0].Field = plainField(3, 2)
	m.Players[0].Field[0] = fieldCard(0, "Cave Drummer", game.Era1, 3, 2, TagRallyCry)
	m.Players[0].Field[1] = fieldCard(1, "Flint Hurler", game.Era1, 2, 3, "")
	m.Players[1].Field = plainField(1, 1)

	playRound(t, rs, m, 0, 0, 0, 0)

	if m.LastBattle.AttackerAttack != 4 {
		t.Fatalf("rally_cry must boost the played card too: attack %d", m.LastBattle.AttackerAttack)
	}
	if got := m.Players[0].Field[1].CurrentStrength; got != 3 {
		t.Fatalf("unused same-era card must gain strength, got %d", got)
	}
}

func TestResolveRound_PostWinAndOnLoseEffects(t *testing.T) {
	rs := DefaultRules()
	m := twoPlayerMatch()
	m.Players[0].Field = plainField(6, 3)
	m.Players[0].Field[0] = fieldCard(0, "Boiler Golem", game.Era3, 6, 3, TagFlameAura)
	m.Players[0].Field[1] = fieldCard(1, "Union Enforcer", game.Era3, 5, 2, "")
	m.Players[1].Field = plainField(1, 1)
	m.Players[1].Field[0] = fieldCard(0, "Court Jester", game.Era2, 1, 1, TagLastLaugh)
	m.Players[1].Field[1] = fieldCard(1, "Royal Taster", game.Era2, 3, 2, "")

	playRound(t, rs, m, 0, 0, 0, 0)

	// flame_aura: 3 battle damage plus 2 extra life loss.
	if m.Players[1].Life != game.StartingLife-5 {
		t.Fatalf("expected loser life %d, got %d", game.StartingLife-5, m.Players[1].Life)
	}
	// last_laugh pays the loser one buck.
	if m.Players[1].Bucks != game.StartingBucks+1 {
		t.Fatalf("expected loser bucks %d, got %d", game.StartingBucks+1, m.Players[1].Bucks)
	}
}

func TestResolveRound_RoundLimitEndsMatchOnLife(t *testing.T) {
	rs := DefaultRules()
	m := twoPlayerMatch()
	m.Players[0].Field = plainField(5, 2)
	m.Players[1].Field = plainField(1, 1)

	for i := 0; i < game.MaxRounds; i++ {
		playRound(t, rs, m, i, 0, i, 0)
	}

	if m.Status != game.StatusFinished || m.CurrentPhase != game.PhaseGameOver {
		t.Fatalf("match must finish after %d rounds: status=%s phase=%s", game.MaxRounds, m.Status, m.CurrentPhase)
	}
	if m.Winner != "Ana" {
		t.Fatalf("higher remaining life must win at the round limit, got %q", m.Winner)
	}
}

func TestResolveRound_LifeZeroEndsMatch(t *testing.T) {
	rs := DefaultRules()
	m := twoPlayerMatch()
	m.Players[0].Field = plainField(8, 6)
	m.Players[1].Field = plainField(1, 1)
	m.Players[1].Life = 5

	playRound(t, rs, m, 0, 0, 0, 0)

	if m.Status != game.StatusFinished {
		t.Fatalf("expected finished match, got %s", m.Status)
	}
	if m.Winner != "Ana" {
		t.Fatalf("expected Ana to win, got %q", m.Winner)
	}
	if _, err := SubmitWager(rs, m, "p2", 0); err != ErrMatchAlreadyOver {
		t.Fatalf("intents after game over must fail, got %v", err)
	}
}

func TestResolveRound_UnknownAbilityTagIsInert(t *testing.T) {
	rs := DefaultRules()
	m := twoPlayerMatch()
	m.Players[0].Field = plainField(6, 3)
	m.Players[1].Field = plainField(5, 2)
	// A catalog entry with a tag the rule table does not know behaves
	// exactly like having no ability at all.
	m.Players[0].Field[0].AbilityTag = "solar_flare"

	playRound(t, rs, m, 0, 3, 0, 1)

	if m.LastBattle.AttackerAttack != 24 {
		t.Fatalf("unknown tag must not alter attack: got %d, want 24", m.LastBattle.AttackerAttack)
	}
	if m.LastBattle.Outcome != game.OutcomeAttacker {
		t.Fatalf("expected attacker outcome, got %s", m.LastBattle.Outcome)
	}
	if m.Players[1].Life != game.StartingLife-3 {
		t.Fatalf("damage must follow the winner card: life %d, want %d", m.Players[1].Life, game.StartingLife-3)
	}
	if m.Round != 2 || m.Over() {
		t.Fatalf("round must advance normally: round=%d over=%v", m.Round, m.Over())
	}
}
