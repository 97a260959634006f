package engine

import (
	"testing"

	"github.com/eracards/eraclash/internal/game"
)

func TestSelectCard_Validation(t *testing.T) {
	m := twoPlayerMatch()
	m.Players[0].Field = plainField(4, 2)
	m.Players[1].Field = plainField(4, 2)

	if err := SelectCard(m, "p2", 0); err != ErrOutOfTurn {
		t.Fatalf("expected ErrOutOfTurn for the non-actor, got %v", err)
	}
	if err := SelectCard(m, "ghost", 0); err != ErrPlayerNotInMatch {
		t.Fatalf("expected ErrPlayerNotInMatch, got %v", err)
	}
	if err := SelectCard(m, "p1", -1); err != ErrInvalidSelection {
		t.Fatalf("expected ErrInvalidSelection for negative index, got %v", err)
	}
	if err := SelectCard(m, "p1", 4); err != ErrInvalidSelection {
		t.Fatalf("expected ErrInvalidSelection for out-of-range index, got %v", err)
	}
	m.Players[0].Field[2].Used = true
	if err := SelectCard(m, "p1", 2); err != ErrInvalidSelection {
		t.Fatalf("expected ErrInvalidSelection for a used card, got %v", err)
	}
	if err := SelectCard(m, "p1", 0); err != nil {
		t.Fatalf("valid selection rejected: %v", err)
	}
}

func TestSubmitWager_Validation(t *testing.T) {
	rs := DefaultRules()
	m := twoPlayerMatch()
	m.Players[0].Field = plainField(4, 2)
	m.Players[1].Field = plainField(4, 2)

	// Wager before selecting a card.
	if _, err := SubmitWager(rs, m, "p1", 1); err != ErrInvalidWager {
		t.Fatalf("expected ErrInvalidWager without a selection, got %v", err)
	}
	if err := SelectCard(m, "p1", 0); err != nil {
		t.Fatalf("SelectCard: %v", err)
	}
	if _, err := SubmitWager(rs, m, "p1", -1); err != ErrInvalidWager {
		t.Fatalf("expected ErrInvalidWager for a negative amount, got %v", err)
	}
	if _, err := SubmitWager(rs, m, "p1", m.Players[0].Bucks+1); err != ErrInvalidWager {
		t.Fatalf("expected ErrInvalidWager above the balance, got %v", err)
	}
	// A rejected wager must not touch the balance.
	if m.Players[0].Bucks != game.StartingBucks {
		t.Fatalf("rejected wager changed the balance: %d", m.Players[0].Bucks)
	}

	resolved, err := SubmitWager(rs, m, "p1", game.StartingBucks)
	if err != nil || resolved {
		t.Fatalf("all-in wager must be accepted: resolved=%v err=%v", resolved, err)
	}
	if m.Players[0].Bucks != 0 {
		t.Fatalf("expected the full balance deducted, got %d", m.Players[0].Bucks)
	}
	if m.CurrentPhase != game.PhaseDefenderSelect || m.CurrentActorUUID != "p2" {
		t.Fatalf("attacker commit must hand the turn to the defender")
	}
}

func TestCancelSelection_RefundAndIdempotence(t *testing.T) {
	m := twoPlayerMatch()
	m.Players[0].Field = plainField(4, 2)
	m.Players[1].Field = plainField(4, 2)

	if err := CancelSelection(m, "p1"); err != ErrNoActiveSelection {
		t.Fatalf("expected ErrNoActiveSelection with nothing selected, got %v", err)
	}
	if err := SelectCard(m, "p1", 1); err != nil {
		t.Fatalf("SelectCard: %v", err)
	}
	if err := CancelSelection(m, "p1"); err != nil {
		t.Fatalf("CancelSelection: %v", err)
	}
	if m.Players[0].SelectedCardIndex != nil || m.Players[0].SelectedWager != 0 {
		t.Fatalf("cancel must clear the selection")
	}
	if m.Players[0].Bucks != game.StartingBucks {
		t.Fatalf("cancel must leave the balance intact, got %d", m.Players[0].Bucks)
	}
	// Second cancel in a row fails and changes nothing.
	if err := CancelSelection(m, "p1"); err != ErrNoActiveSelection {
		t.Fatalf("expected ErrNoActiveSelection on repeat, got %v", err)
	}
}
