package game

import (
	"errors"
	"fmt"
)

// All of these are recoverable conditions surfaced to the caller; the
// engine never panics on bad input.
var (
	ErrInvalidCoordinate = errors.New("coordinate outside board radius")
	ErrNoPieceAtSource   = errors.New("no piece at source cell")
	ErrWrongSideToMove   = errors.New("piece belongs to the side not on turn")
	ErrIllegalMove       = errors.New("illegal move")

	// ErrMovesIntoCheck is the distinguishable sub-case of
	// ErrIllegalMove: errors.Is(ErrMovesIntoCheck, ErrIllegalMove)
	// holds.
	ErrMovesIntoCheck = fmt.Errorf("%w: leaves own king in check", ErrIllegalMove)
)
