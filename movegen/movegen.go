// Package movegen generates pseudo-legal and legal moves, detects
// attacked cells and answers the check/checkmate/stalemate predicates.
package movegen

import (
	"github.com/hexboardgames/hexchess/board"
	"github.com/hexboardgames/hexchess/hexgrid"
	"github.com/hexboardgames/hexchess/move"
	"github.com/hexboardgames/hexchess/piece"
)

// PseudoLegalMoves enumerates every move for color that follows the
// movement tables, ignoring whether it leaves the own king in check.
func PseudoLegalMoves(b *board.Board, color piece.Color) []move.Move {
	moves := make([]move.Move, 0, 64)
	b.EachSorted(func(c hexgrid.Coord, p piece.Piece) {
		if p.Color != color {
			return
		}
		moves = appendPieceMoves(moves, b, c, p)
	})
	return moves
}

// GenerateLegalMoves filters the pseudo-legal moves down to those that
// do not leave the moving side's king in check.
func GenerateLegalMoves(b *board.Board, color piece.Color) []move.Move {
	pseudo := PseudoLegalMoves(b, color)
	legal := pseudo[:0:len(pseudo)]
	for _, m := range pseudo {
		nb := ApplyMove(b, m)
		if !IsInCheck(nb, color) {
			legal = append(legal, m)
		}
	}
	return legal
}

func appendPieceMoves(moves []move.Move, b *board.Board, c hexgrid.Coord, p piece.Piece) []move.Move {
	if dirs, ok := p.SlideDirections(); ok {
		for _, d := range dirs {
			for _, dst := range hexgrid.Ray(c, d) {
				occ, found := b.At(dst)
				if !found {
					moves = append(moves, move.New(c, dst))
					continue
				}
				if occ.Color != p.Color {
					capt := occ
					moves = append(moves, move.Move{From: c, To: dst, Captured: &capt})
				}
				break
			}
		}
		return moves
	}
	switch p.Type {
	case piece.King:
		for _, d := range piece.StepDirections() {
			dst := c.Add(hexgrid.Directions[d])
			if !hexgrid.IsValidCell(dst) {
				continue
			}
			moves = appendDestination(moves, b, c, dst, p.Color)
		}
	case piece.Knight:
		for _, off := range piece.KnightOffsets {
			dst := c.Add(off)
			if !hexgrid.IsValidCell(dst) {
				continue
			}
			moves = appendDestination(moves, b, c, dst, p.Color)
		}
	case piece.Pawn:
		moves = appendPawnMoves(moves, b, c, p)
	}
	return moves
}

// appendDestination adds a quiet move or a capture onto dst, for pieces
// whose quiet and capturing destinations coincide.
func appendDestination(moves []move.Move, b *board.Board, from, dst hexgrid.Coord, color piece.Color) []move.Move {
	occ, found := b.At(dst)
	if !found {
		return append(moves, move.New(from, dst))
	}
	if occ.Color == color {
		return moves
	}
	capt := occ
	return append(moves, move.Move{From: from, To: dst, Captured: &capt})
}

func appendPawnMoves(moves []move.Move, b *board.Board, c hexgrid.Coord, p piece.Piece) []move.Move {
	fwd := c.Add(hexgrid.Directions[piece.PawnForward(p.Color)])
	if hexgrid.IsValidCell(fwd) && !b.Occupied(fwd) {
		moves = appendPawnDestination(moves, c, fwd, nil, p.Color)
	}
	for _, d := range piece.PawnCaptureDirections(p.Color) {
		dst := c.Add(hexgrid.Directions[d])
		if !hexgrid.IsValidCell(dst) {
			continue
		}
		occ, found := b.At(dst)
		if !found || occ.Color == p.Color {
			continue
		}
		capt := occ
		moves = appendPawnDestination(moves, c, dst, &capt, p.Color)
	}
	return moves
}

// appendPawnDestination expands a pawn arrival into promotion
// candidates when the destination is on the far edge for that color.
func appendPawnDestination(moves []move.Move, from, to hexgrid.Coord, capt *piece.Piece, color piece.Color) []move.Move {
	if !piece.IsPromotionCell(color, to) {
		return append(moves, move.Move{From: from, To: to, Captured: capt})
	}
	for _, pt := range piece.PromotionTypes {
		moves = append(moves, move.Move{From: from, To: to, Captured: capt, Promotion: pt})
	}
	return moves
}

// ApplyMove lifts the piece off m.From, writes the (possibly promoted)
// piece onto m.To and returns the resulting board. Side-to-move and
// move counters belong to the position, not here.
func ApplyMove(b *board.Board, m move.Move) *board.Board {
	nb := b.Copy()
	p, ok := nb.Remove(m.From)
	if !ok {
		return nb
	}
	if m.IsPromotion() {
		p = promoted(p, m.Promotion)
	}
	nb.Place(m.To, p)
	return nb
}

// promoted returns the pawn reborn as the promotion type. Promoted
// lances take variant A.
func promoted(p piece.Piece, t piece.Type) piece.Piece {
	v := piece.VariantNone
	if t == piece.Lance {
		v = piece.VariantA
	}
	return piece.NewVariant(t, p.Color, v)
}

// IsCellAttacked reports whether any piece of byColor attacks target.
// Sliders are found by walking each direction outward from target and
// testing whether the first occupied cell holds a slider that moves
// back along that line; kings and pawns only count at distance one when
// their capture set includes the reverse direction. Knights are checked
// against the six leap origins.
func IsCellAttacked(b *board.Board, target hexgrid.Coord, byColor piece.Color) bool {
	for dir := hexgrid.Direction(0); dir < hexgrid.NumDirections; dir++ {
		dist := 0
		for _, c := range hexgrid.Ray(target, dir) {
			dist++
			p, ok := b.At(c)
			if !ok {
				continue
			}
			if p.Color == byColor && attacksBack(p, dir, dist) {
				return true
			}
			break
		}
	}
	for _, off := range piece.KnightOffsets {
		origin := target.Add(off)
		if !hexgrid.IsValidCell(origin) {
			continue
		}
		if p, ok := b.At(origin); ok && p.Color == byColor && p.Type == piece.Knight {
			return true
		}
	}
	return false
}

// attacksBack reports whether p, first piece met at distance dist when
// walking dir outward from the target, attacks back along the line.
func attacksBack(p piece.Piece, dir hexgrid.Direction, dist int) bool {
	back := dir.Opposite()
	if dirs, ok := p.SlideDirections(); ok {
		for _, d := range dirs {
			if d == back {
				return true
			}
		}
		return false
	}
	return dist == 1 && p.AttacksAlong(dir)
}

// IsInCheck reports whether color's king is attacked by the opponent.
// A board without the king is never in check.
func IsInCheck(b *board.Board, color piece.Color) bool {
	king, ok := b.KingFor(color)
	if !ok {
		return false
	}
	return IsCellAttacked(b, king, color.Opponent())
}

// IsCheckmate: in check with no legal move.
func IsCheckmate(b *board.Board, color piece.Color) bool {
	return IsInCheck(b, color) && len(GenerateLegalMoves(b, color)) == 0
}

// IsStalemate: not in check, but no legal move either.
func IsStalemate(b *board.Board, color piece.Color) bool {
	return !IsInCheck(b, color) && len(GenerateLegalMoves(b, color)) == 0
}
