// Package game holds the mutable per-game state: the position, whose
// turn it is, counters and history, with reversible make/unmake.
package game

import (
	"github.com/hexboardgames/hexchess/board"
	"github.com/hexboardgames/hexchess/hexgrid"
	"github.com/hexboardgames/hexchess/move"
	"github.com/hexboardgames/hexchess/movegen"
	"github.com/hexboardgames/hexchess/piece"
	"github.com/hexboardgames/hexchess/zobrist"
)

// Position is a full game state. Make/Unmake mutate it through an undo
// log; no state outside the Position is touched.
type Position struct {
	board         *board.Board
	sideToMove    piece.Color
	moveNumber    int
	halfMoveClock int
	history       []move.Move
	undo          []undoRecord
	encoder       *zobrist.Encoder
}

type undoRecord struct {
	moved         piece.Piece
	halfMoveClock int
}

// New creates a position over an arbitrary board. The caller is
// responsible for king presence.
func New(b *board.Board, sideToMove piece.Color) *Position {
	return &Position{
		board:      b,
		sideToMove: sideToMove,
		moveNumber: 1,
		encoder:    zobrist.Shared(),
	}
}

// NewGame creates the standard opening position, White to move.
func NewGame() *Position {
	return New(StartingBoard(), piece.White)
}

// StartingBoard lays out both armies. Black mirrors White by central
// symmetry, variants preserved.
func StartingBoard() *board.Board {
	b := board.New()
	type placement struct {
		c hexgrid.Coord
		p piece.Piece
	}
	white := []placement{
		{hexgrid.Coord{Q: -5, R: 4}, piece.New(piece.Chariot, piece.White)},
		{hexgrid.Coord{Q: -4, R: 4}, piece.New(piece.Knight, piece.White)},
		{hexgrid.Coord{Q: -3, R: 4}, piece.NewVariant(piece.Lance, piece.White, piece.VariantA)},
		{hexgrid.Coord{Q: -2, R: 4}, piece.New(piece.Queen, piece.White)},
		{hexgrid.Coord{Q: -1, R: 4}, piece.New(piece.King, piece.White)},
		{hexgrid.Coord{Q: 0, R: 4}, piece.NewVariant(piece.Lance, piece.White, piece.VariantB)},
		{hexgrid.Coord{Q: 1, R: 4}, piece.New(piece.Knight, piece.White)},
		{hexgrid.Coord{Q: 2, R: 3}, piece.New(piece.Chariot, piece.White)},
	}
	for q := -3; q <= 3; q++ {
		white = append(white, placement{hexgrid.Coord{Q: q, R: 2}, piece.New(piece.Pawn, piece.White)})
	}
	for _, pl := range white {
		b.Place(pl.c, pl.p)
		mirrored := pl.p
		mirrored.Color = piece.Black
		b.Place(pl.c.Neg(), mirrored)
	}
	return b
}

func (p *Position) Board() *board.Board     { return p.board }
func (p *Position) SideToMove() piece.Color { return p.sideToMove }
func (p *Position) MoveNumber() int         { return p.moveNumber }
func (p *Position) HalfMoveClock() int      { return p.halfMoveClock }
func (p *Position) History() []move.Move    { return p.history }

// Hash is the Zobrist key of (board, side to move).
func (p *Position) Hash() uint64 {
	return p.encoder.Hash(p.board, p.sideToMove)
}

// LegalMoves enumerates the side to move's legal moves.
func (p *Position) LegalMoves() []move.Move {
	return movegen.GenerateLegalMoves(p.board, p.sideToMove)
}

// Validate classifies a proposed move against the current position
// without applying it. It distinguishes the error cases of the
// taxonomy; a nil return means the move is in the legal set.
func (p *Position) Validate(m move.Move) error {
	if !hexgrid.IsValidCell(m.From) || !hexgrid.IsValidCell(m.To) {
		return ErrInvalidCoordinate
	}
	src, ok := p.board.At(m.From)
	if !ok {
		return ErrNoPieceAtSource
	}
	if src.Color != p.sideToMove {
		return ErrWrongSideToMove
	}
	for _, lm := range p.LegalMoves() {
		if lm.Equals(m) {
			return nil
		}
	}
	// Distinguish "would be fine but walks into check" from plainly
	// impossible moves.
	for _, pm := range movegen.PseudoLegalMoves(p.board, p.sideToMove) {
		if pm.Equals(m) {
			return ErrMovesIntoCheck
		}
	}
	return ErrIllegalMove
}

// Make validates and applies m, switching the side to move and
// updating counters and history.
func (p *Position) Make(m move.Move) error {
	if err := p.Validate(m); err != nil {
		return err
	}
	p.MakeUnchecked(m)
	return nil
}

// MakeUnchecked applies a move known to be legal (e.g. one returned by
// LegalMoves). The search uses this on its hot path.
func (p *Position) MakeUnchecked(m move.Move) {
	src, _ := p.board.At(m.From)
	// Derive the captured piece from the board; caller-constructed
	// moves may not carry it, and Unmake needs it.
	if occ, ok := p.board.At(m.To); ok {
		capt := occ
		m.Captured = &capt
	}
	rec := undoRecord{moved: src, halfMoveClock: p.halfMoveClock}
	p.undo = append(p.undo, rec)

	p.board.Remove(m.From)
	placed := src
	if m.IsPromotion() {
		v := piece.VariantNone
		if m.Promotion == piece.Lance {
			v = piece.VariantA
		}
		placed = piece.NewVariant(m.Promotion, src.Color, v)
	}
	p.board.Place(m.To, placed)

	if m.IsCapture() || src.Type == piece.Pawn {
		p.halfMoveClock = 0
	} else {
		p.halfMoveClock++
	}
	if p.sideToMove == piece.Black {
		p.moveNumber++
	}
	p.history = append(p.history, m)
	p.sideToMove = p.sideToMove.Opponent()
}

// Unmake reverses the most recent Make. It is a no-op on a fresh
// position.
func (p *Position) Unmake() {
	if len(p.history) == 0 {
		return
	}
	m := p.history[len(p.history)-1]
	rec := p.undo[len(p.undo)-1]
	p.history = p.history[:len(p.history)-1]
	p.undo = p.undo[:len(p.undo)-1]

	p.sideToMove = p.sideToMove.Opponent()
	if p.sideToMove == piece.Black {
		p.moveNumber--
	}
	p.halfMoveClock = rec.halfMoveClock

	p.board.Remove(m.To)
	p.board.Place(m.From, rec.moved)
	if m.IsCapture() {
		p.board.Place(m.To, *m.Captured)
	}
}

// Copy deep-copies the position. Histories diverge independently.
func (p *Position) Copy() *Position {
	np := &Position{
		board:         p.board.Copy(),
		sideToMove:    p.sideToMove,
		moveNumber:    p.moveNumber,
		halfMoveClock: p.halfMoveClock,
		history:       append([]move.Move(nil), p.history...),
		undo:          append([]undoRecord(nil), p.undo...),
		encoder:       p.encoder,
	}
	return np
}
