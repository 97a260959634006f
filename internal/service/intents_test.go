package service

import (
	"testing"
	"time"

	"github.com/eracards/eraclash/internal/engine"
	"github.com/eracards/eraclash/internal/game"
)

type mockRepo struct {
	matches     map[uint]*game.Match
	updated     *game.Match
	statsCalled bool
}

func (m *mockRepo) GetMatchByID(id uint) (*game.Match, error) {
	if g, ok := m.matches[id]; ok {
		return g, nil
	}
	return nil, ErrMatchNotFound
}

func (m *mockRepo) UpdateMatch(g *game.Match) error {
	m.updated = g
	return nil
}

func (m *mockRepo) UpdateStatsOnMatchEnd(g *game.Match, resignedEmail string) error {
	m.statsCalled = true
	return nil
}

func testField(strength, damage int) []game.CardInstance {
	eras := []game.Era{game.Era1, game.Era2, game.Era3, game.Era4}
	field := make([]game.CardInstance, 4)
	for i := range field {
		field[i] = game.CardInstance{SlotIndex: i, Name: "Plain", Era: eras[i], BaseStrength: strength, BaseDamage: damage, CurrentStrength: strength}
	}
	return field
}

func liveMatch() *game.Match {
	return &game.Match{
		Status:             game.StatusInProgress,
		CurrentPhase:       game.PhaseAttackerSelect,
		Round:              1,
		StartingPlayerUUID: "p1",
		CurrentActorUUID:   "p1",
		Players: []game.Player{
			{PlayerUUID: "p1", PlayerName: "Ana", PlayerEmail: "ana@example.com", Life: game.StartingLife, Bucks: game.StartingBucks, Field: testField(5, 2)},
			{PlayerUUID: "p2", PlayerName: "Bia", PlayerEmail: "bia@example.com", Life: game.StartingLife, Bucks: game.StartingBucks, Field: testField(3, 2)},
		},
	}
}

func TestSubmitWager_ResolvesRound(t *testing.T) {
	rules := engine.DefaultRules()
	m := liveMatch()
	mr := &mockRepo{matches: map[uint]*game.Match{7: m}}

	if _, err := SelectCard(mr, 7, "ana@example.com", 0); err != nil {
		t.Fatalf("SelectCard: %v", err)
	}
	_, resolved, err := SubmitWager(rules, mr, 7, "ana@example.com", 2, time.Minute)
	if err != nil {
		t.Fatalf("attacker SubmitWager: %v", err)
	}
	if resolved {
		t.Fatalf("round must not resolve after only the attacker committed")
	}

	if _, err := SelectCard(mr, 7, "bia@example.com", 0); err != nil {
		t.Fatalf("defender SelectCard: %v", err)
	}
	m2, resolved, err := SubmitWager(rules, mr, 7, "bia@example.com", 0, time.Minute)
	if err != nil {
		t.Fatalf("defender SubmitWager: %v", err)
	}
	if !resolved {
		t.Fatalf("expected the round to resolve")
	}
	if m2.Round != 2 {
		t.Fatalf("expected round 2 after resolution, got %d", m2.Round)
	}
	if m2.ActionDeadline.IsZero() {
		t.Fatalf("a new round must get a fresh action deadline")
	}
	if mr.updated == nil {
		t.Fatalf("the resolved match must be persisted")
	}
}

func TestSubmitWager_NonParticipantRejected(t *testing.T) {
	rules := engine.DefaultRules()
	mr := &mockRepo{matches: map[uint]*game.Match{7: liveMatch()}}
	if _, _, err := SubmitWager(rules, mr, 7, "ghost@example.com", 0, time.Minute); err != ErrPlayerNotInMatch {
		t.Fatalf("expected ErrPlayerNotInMatch, got %v", err)
	}
}

func TestSubmitWager_CountsStatsWhenMatchEnds(t *testing.T) {
	rules := engine.DefaultRules()
	m := liveMatch()
	m.Players[1].Life = 1
	mr := &mockRepo{matches: map[uint]*game.Match{7: m}}

	if _, err := SelectCard(mr, 7, "ana@example.com", 0); err != nil {
		t.Fatalf("SelectCard: %v", err)
	}
	if _, _, err := SubmitWager(rules, mr, 7, "ana@example.com", 0, time.Minute); err != nil {
		t.Fatalf("attacker SubmitWager: %v", err)
	}
	if _, err := SelectCard(mr, 7, "bia@example.com", 0); err != nil {
		t.Fatalf("defender SelectCard: %v", err)
	}
	m2, _, err := SubmitWager(rules, mr, 7, "bia@example.com", 0, time.Minute)
	if err != nil {
		t.Fatalf("defender SubmitWager: %v", err)
	}
	if m2.Status != game.StatusFinished {
		t.Fatalf("expected a finished match, got %s", m2.Status)
	}
	if !mr.statsCalled {
		t.Fatalf("stats must be updated when the match finishes")
	}
	if !m2.StatsCounted {
		t.Fatalf("StatsCounted must be set to avoid double counting")
	}
	if !m2.ActionDeadline.IsZero() {
		t.Fatalf("a finished match must not keep an action deadline")
	}
}

func TestHandleTimedOutMatch_AutoPlaysForIdleActor(t *testing.T) {
	rules := engine.DefaultRules()
	m := liveMatch()
	m.ActionDeadline = time.Now().Add(-time.Minute)
	mr := &mockRepo{matches: map[uint]*game.Match{7: m}}

	if err := HandleTimedOutMatch(rules, mr, 7, time.Minute); err != nil {
		t.Fatalf("HandleTimedOutMatch: %v", err)
	}
	// The idle attacker was auto-played with the first unused card and
	// a zero wager; the defender is now on the clock.
	if m.CurrentPhase != game.PhaseDefenderSelect {
		t.Fatalf("expected defender_select after auto-play, got %s", m.CurrentPhase)
	}
	if m.CurrentActorUUID != "p2" {
		t.Fatalf("expected the defender to act next, got %s", m.CurrentActorUUID)
	}
	if m.Players[0].Bucks != game.StartingBucks {
		t.Fatalf("auto-play must wager zero, balance is %d", m.Players[0].Bucks)
	}
}

func TestHandleTimedOutMatch_FinishedMatchUntouched(t *testing.T) {
	rules := engine.DefaultRules()
	m := liveMatch()
	m.Status = game.StatusFinished
	m.CurrentPhase = game.PhaseGameOver
	mr := &mockRepo{matches: map[uint]*game.Match{7: m}}

	if err := HandleTimedOutMatch(rules, mr, 7, time.Minute); err != nil {
		t.Fatalf("HandleTimedOutMatch: %v", err)
	}
	if mr.updated != nil {
		t.Fatalf("a finished match must not be rewritten")
	}
}
