// Package eval scores positions statically, from White's perspective.
package eval

import (
	"github.com/hexboardgames/hexchess/board"
	"github.com/hexboardgames/hexchess/hexgrid"
	"github.com/hexboardgames/hexchess/movegen"
	"github.com/hexboardgames/hexchess/piece"
)

const (
	// Infinity bounds every reachable score.
	Infinity = 1_000_000
	// MateValue is the magnitude of a checkmate score; mates found
	// earlier in the search score closer to it.
	MateValue = 900_000
	// MateThreshold separates mate scores from positional ones.
	MateThreshold = MateValue - 1000

	centralityWeight  = 2
	advancementWeight = 3
	mobilityWeight    = 2
	checkPenalty      = 50
)

// Evaluate scores the board from White's perspective, with sideToMove
// deciding the terminal cases: checkmate is a mate score against the
// side to move, stalemate is exactly zero.
func Evaluate(b *board.Board, sideToMove piece.Color) int {
	whiteMoves := movegen.GenerateLegalMoves(b, piece.White)
	blackMoves := movegen.GenerateLegalMoves(b, piece.Black)

	stmMoves := whiteMoves
	if sideToMove == piece.Black {
		stmMoves = blackMoves
	}
	if len(stmMoves) == 0 {
		if !movegen.IsInCheck(b, sideToMove) {
			return 0
		}
		if sideToMove == piece.White {
			return -MateValue
		}
		return MateValue
	}

	score := 0
	b.Each(func(c hexgrid.Coord, p piece.Piece) {
		v := p.Type.Value()
		v += centrality(c) * centralityWeight
		if p.Type == piece.Pawn {
			v += advancement(c, p.Color) * advancementWeight
		}
		if p.Color == piece.White {
			score += v
		} else {
			score -= v
		}
	})

	score += (len(whiteMoves) - len(blackMoves)) * mobilityWeight

	if movegen.IsInCheck(b, piece.White) {
		score -= checkPenalty
	}
	if movegen.IsInCheck(b, piece.Black) {
		score += checkPenalty
	}
	return score
}

// centrality is highest at the board center and zero on the edge.
func centrality(c hexgrid.Coord) int {
	return hexgrid.Radius - hexgrid.Distance(c, hexgrid.Coord{})
}

// advancement counts how far a pawn has marched toward its promotion
// arc. Every forward step decreases both r and q+r for White (mirrored
// for Black), so the remaining step count is governed by whichever is
// closest to the edge.
func advancement(c hexgrid.Coord, color piece.Color) int {
	var remaining int
	if color == piece.White {
		remaining = min(c.R, c.Q+c.R) + hexgrid.Radius
	} else {
		remaining = hexgrid.Radius - max(c.R, c.Q+c.R)
	}
	return 2*hexgrid.Radius - remaining
}
