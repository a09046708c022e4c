// Package move defines the Move value type. A move is pure data;
// applying it to a board is the move generator's job.
package move

import (
	"fmt"

	"github.com/hexboardgames/hexchess/hexgrid"
	"github.com/hexboardgames/hexchess/piece"
)

// Move describes moving the piece on From to To. Captured records the
// piece removed from To, if any; Promotion is the type a pawn turns
// into on reaching the far edge (piece.NoType for ordinary moves).
type Move struct {
	From      hexgrid.Coord
	To        hexgrid.Coord
	Captured  *piece.Piece
	Promotion piece.Type
}

func New(from, to hexgrid.Coord) Move {
	return Move{From: from, To: to}
}

func (m Move) IsCapture() bool {
	return m.Captured != nil
}

func (m Move) IsPromotion() bool {
	return m.Promotion != piece.NoType
}

// Equals compares source, destination and promotion. Captured state is
// derived from the board and does not participate.
func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

func (m Move) String() string {
	s := fmt.Sprintf("(%d,%d)-(%d,%d)", m.From.Q, m.From.R, m.To.Q, m.To.R)
	if m.IsCapture() {
		s += "x" + m.Captured.Type.Letter()
	}
	if m.IsPromotion() {
		s += "=" + m.Promotion.Letter()
	}
	return s
}
