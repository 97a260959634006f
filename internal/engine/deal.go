package engine

import (
	"errors"
	"math/rand"

	"github.com/eracards/eraclash/internal/game"
)

var (
	ErrDeckSize    = errors.New("a deck must contain exactly 8 card names")
	ErrUnknownCard = errors.New("deck references a card missing from the catalog")
)

// DealField draws FieldSize cards without replacement from the player's
// submitted deck and places them on the field. Catalog stats are copied
// onto each instance at deal time; the deck order is irrelevant.
func DealField(p *game.Player, defsByName map[string]game.CardDefinition) error {
	if len(p.Deck) != game.DeckSize {
		return ErrDeckSize
	}
	pool := make([]string, len(p.Deck))
	for i := range p.Deck {
		pool[i] = p.Deck[i].CardName
	}
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	p.Field = make([]game.CardInstance, 0, game.FieldSize)
	for slot := 0; slot < game.FieldSize; slot++ {
		def, ok := defsByName[pool[slot]]
		if !ok {
			return ErrUnknownCard
		}
		p.Field = append(p.Field, game.CardInstance{
			SlotIndex:       slot,
			Name:            def.Name,
			Era:             def.Era,
			BaseStrength:    def.BaseStrength,
			BaseDamage:      def.BaseDamage,
			AbilityTag:      def.AbilityTag,
			ArtRef:          def.ArtRef,
			CurrentStrength: def.BaseStrength,
		})
	}
	return nil
}

// ChooseStartingPlayer picks the first attacker uniformly at random and
// makes them the current actor.
func ChooseStartingPlayer(m *game.Match) {
	if len(m.Players) != 2 {
		return
	}
	m.StartingPlayerUUID = m.Players[rand.Intn(2)].PlayerUUID
	m.CurrentActorUUID = m.StartingPlayerUUID
}
