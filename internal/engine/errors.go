package engine

import "errors"

// Intent rejections. These are reported to the offending caller and
// never mutate match state: every operation is a no-op on failure.
var (
	ErrInvalidSelection  = errors.New("invalid or used card selection")
	ErrInvalidWager      = errors.New("invalid wager")
	ErrNoActiveSelection = errors.New("no active selection to cancel")
	ErrOutOfTurn         = errors.New("caller is not the current actor")
	ErrMatchAlreadyOver  = errors.New("match is already over")
	ErrPlayerNotInMatch  = errors.New("player not in match")
)
