package game

import "errors"

// Rejection kinds for protocol-valid but game-invalid requests. The server
// discards rejected requests without a response frame.
var (
	// ErrWrongPhase reports a bet or cashout outside its valid phase
	ErrWrongPhase = errors.New("wrong phase")

	// ErrBadAmount reports a bet that is not a positive finite number
	ErrBadAmount = errors.New("bad bet amount")

	// ErrDuplicateBet reports a second bet from the same player in one round
	ErrDuplicateBet = errors.New("bet already placed")

	// ErrNoBet reports a cashout from a player with no accepted bet
	ErrNoBet = errors.New("no bet placed")

	// ErrAlreadyCashed reports a second cashout from the same player
	ErrAlreadyCashed = errors.New("already cashed out")

	// ErrTableFull reports that every player slot is occupied
	ErrTableFull = errors.New("table full")

	// ErrNoSlot reports an id that does not map to an occupied slot
	ErrNoSlot = errors.New("no such slot")
)
