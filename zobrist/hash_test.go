package zobrist

import (
	"testing"

	"github.com/matryer/is"

	"github.com/hexboardgames/hexchess/board"
	"github.com/hexboardgames/hexchess/hexgrid"
	"github.com/hexboardgames/hexchess/piece"
)

func TestHashDistinguishesSideToMove(t *testing.T) {
	is := is.New(t)
	e := NewEncoder()
	b := board.New()
	b.Place(hexgrid.Coord{}, piece.New(piece.King, piece.White))
	is.True(e.Hash(b, piece.White) != e.Hash(b, piece.Black))
}

func TestHashDependsOnPlacement(t *testing.T) {
	is := is.New(t)
	e := NewEncoder()
	b := board.New()
	b.Place(hexgrid.Coord{}, piece.New(piece.Queen, piece.White))
	h := e.Hash(b, piece.White)

	moved := board.New()
	moved.Place(hexgrid.Coord{Q: 1, R: 0}, piece.New(piece.Queen, piece.White))
	is.True(e.Hash(moved, piece.White) != h)

	recolored := board.New()
	recolored.Place(hexgrid.Coord{}, piece.New(piece.Queen, piece.Black))
	is.True(e.Hash(recolored, piece.White) != h)

	variant := board.New()
	variant.Place(hexgrid.Coord{}, piece.NewVariant(piece.Lance, piece.White, piece.VariantA))
	other := board.New()
	other.Place(hexgrid.Coord{}, piece.NewVariant(piece.Lance, piece.White, piece.VariantB))
	is.True(e.Hash(variant, piece.White) != e.Hash(other, piece.White))
}

func TestHashIsOrderIndependent(t *testing.T) {
	is := is.New(t)
	e := NewEncoder()
	b1 := board.New()
	b1.Place(hexgrid.Coord{Q: 2, R: -1}, piece.New(piece.King, piece.White))
	b1.Place(hexgrid.Coord{Q: -3, R: 3}, piece.New(piece.King, piece.Black))

	b2 := board.New()
	b2.Place(hexgrid.Coord{Q: -3, R: 3}, piece.New(piece.King, piece.Black))
	b2.Place(hexgrid.Coord{Q: 2, R: -1}, piece.New(piece.King, piece.White))

	is.Equal(e.Hash(b1, piece.White), e.Hash(b2, piece.White))
}

func TestSharedEncoderIsStable(t *testing.T) {
	is := is.New(t)
	is.True(Shared() == Shared())

	b := board.New()
	b.Place(hexgrid.Coord{Q: 1, R: 1}, piece.New(piece.Pawn, piece.Black))
	is.Equal(Shared().Hash(b, piece.Black), Shared().Hash(b, piece.Black))
}
