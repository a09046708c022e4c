// Package zobrist produces a deterministic hash of (board, side to
// move) for use as a cache key.
// https://en.wikipedia.org/wiki/Zobrist_hashing
package zobrist

import (
	"sync"

	"lukechampine.com/frand"

	"github.com/hexboardgames/hexchess/board"
	"github.com/hexboardgames/hexchess/hexgrid"
	"github.com/hexboardgames/hexchess/piece"
)

const bignum = 1<<63 - 2

// Encoder holds the random tables. Separate encoders produce unrelated
// hashes; code that shares hashes across components must share an
// encoder (see Shared).
type Encoder struct {
	posTable  [hexgrid.NumCells][piece.NumIndexes]uint64
	blackTurn uint64
}

func NewEncoder() *Encoder {
	e := &Encoder{}
	for i := 0; i < hexgrid.NumCells; i++ {
		for j := 0; j < piece.NumIndexes; j++ {
			e.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	e.blackTurn = frand.Uint64n(bignum) + 1
	return e
}

var (
	sharedOnce sync.Once
	shared     *Encoder
)

// Shared returns the process-wide encoder, initialized on first use.
// The tablebase cache and the opening book key positions through it.
func Shared() *Encoder {
	sharedOnce.Do(func() {
		shared = NewEncoder()
	})
	return shared
}

// Hash combines every occupied cell's (coordinate, type, color,
// variant) key, XORed with a side-to-move tag.
func (e *Encoder) Hash(b *board.Board, sideToMove piece.Color) uint64 {
	key := uint64(0)
	b.Each(func(c hexgrid.Coord, p piece.Piece) {
		idx, ok := hexgrid.Index(c)
		if !ok {
			return
		}
		key ^= e.posTable[idx][p.Index()]
	})
	if sideToMove == piece.Black {
		key ^= e.blackTurn
	}
	return key
}
