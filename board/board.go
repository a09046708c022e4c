// Package board holds the sparse hexagonal board: a mapping from
// coordinates to pieces. The board enforces nothing beyond one piece
// per cell; king presence is the caller's construction invariant.
package board

import (
	"sort"
	"strings"

	"github.com/hexboardgames/hexchess/hexgrid"
	"github.com/hexboardgames/hexchess/piece"
)

type Board struct {
	cells map[hexgrid.Coord]piece.Piece
}

func New() *Board {
	return &Board{cells: make(map[hexgrid.Coord]piece.Piece)}
}

// At returns the piece on c. ok is false for empty cells.
func (b *Board) At(c hexgrid.Coord) (piece.Piece, bool) {
	p, ok := b.cells[c]
	return p, ok
}

func (b *Board) Occupied(c hexgrid.Coord) bool {
	_, ok := b.cells[c]
	return ok
}

// Place puts p on c, replacing any occupant.
func (b *Board) Place(c hexgrid.Coord, p piece.Piece) {
	b.cells[c] = p
}

// Remove clears c and returns the removed piece, if any.
func (b *Board) Remove(c hexgrid.Coord) (piece.Piece, bool) {
	p, ok := b.cells[c]
	if ok {
		delete(b.cells, c)
	}
	return p, ok
}

func (b *Board) PieceCount() int {
	return len(b.cells)
}

func (b *Board) Copy() *Board {
	nb := &Board{cells: make(map[hexgrid.Coord]piece.Piece, len(b.cells))}
	for c, p := range b.cells {
		nb.cells[c] = p
	}
	return nb
}

// Each calls f for every occupied cell. Iteration order is not
// deterministic; callers needing determinism should use EachSorted.
func (b *Board) Each(f func(c hexgrid.Coord, p piece.Piece)) {
	for c, p := range b.cells {
		f(c, p)
	}
}

// EachSorted visits occupied cells in the fixed hexgrid enumeration
// order.
func (b *Board) EachSorted(f func(c hexgrid.Coord, p piece.Piece)) {
	coords := make([]hexgrid.Coord, 0, len(b.cells))
	for c := range b.cells {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		a, _ := hexgrid.Index(coords[i])
		z, _ := hexgrid.Index(coords[j])
		return a < z
	})
	for _, c := range coords {
		f(c, b.cells[c])
	}
}

// KingFor returns the coordinate of the given color's king. ok is false
// if the king is absent (a malformed position).
func (b *Board) KingFor(color piece.Color) (hexgrid.Coord, bool) {
	for c, p := range b.cells {
		if p.Type == piece.King && p.Color == color {
			return c, true
		}
	}
	return hexgrid.Coord{}, false
}

// Equal reports cell-for-cell equality.
func (b *Board) Equal(o *Board) bool {
	if len(b.cells) != len(o.cells) {
		return false
	}
	for c, p := range b.cells {
		if op, ok := o.cells[c]; !ok || op != p {
			return false
		}
	}
	return true
}

// String renders the board as axial rows, top (r = -Radius) to bottom.
// White pieces are uppercase letters, Black lowercase.
func (b *Board) String() string {
	var sb strings.Builder
	for r := -hexgrid.Radius; r <= hexgrid.Radius; r++ {
		sb.WriteString(strings.Repeat(" ", abs(r)))
		for q := -hexgrid.Radius; q <= hexgrid.Radius; q++ {
			c := hexgrid.Coord{Q: q, R: r}
			if !hexgrid.IsValidCell(c) {
				continue
			}
			p, ok := b.cells[c]
			switch {
			case !ok:
				sb.WriteString(". ")
			case p.Color == piece.White:
				sb.WriteString(p.Type.Letter() + " ")
			default:
				sb.WriteString(strings.ToLower(p.Type.Letter()) + " ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
