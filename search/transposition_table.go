package search

import (
	"math"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/hexboardgames/hexchess/hexgrid"
	"github.com/hexboardgames/hexchess/move"
)

// The transposition table stores only the best move found at a node, as
// an ordering hint for later visits. It never supplies scores or
// cutoffs, so it cannot change search results, only speed them up.

const entrySize = 12

// tinyMove packs a move into 32 bits: from-cell index, to-cell index
// and promotion type.
type tinyMove uint32

func moveToTiny(m move.Move) tinyMove {
	fi, ok := hexgrid.Index(m.From)
	if !ok {
		return 0
	}
	ti, ok := hexgrid.Index(m.To)
	if !ok {
		return 0
	}
	// +1 so a zero value means "no move".
	return tinyMove(uint32(fi+1)<<16 | uint32(ti+1)<<8 | uint32(m.Promotion))
}

func (t tinyMove) matches(m move.Move) bool {
	return t != 0 && t == moveToTiny(m)
}

type tableEntry struct {
	// Only the top 4 bytes of the hash are stored; the rest is implied
	// by the bucket index.
	top4bytes uint32
	play      tinyMove
	depth     uint8
}

type transpositionTable struct {
	table    []tableEntry
	sizeMask uint64
	lookups  atomic.Uint64
	hits     atomic.Uint64
}

// newTranspositionTable sizes the table to a fraction of system memory,
// rounded down to a power of two.
func newTranspositionTable(fractionOfMemory float64) *transpositionTable {
	t := &transpositionTable{}
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	sizePowerOf2 := int(math.Log2(desiredNElems))
	if sizePowerOf2 > 24 {
		sizePowerOf2 = 24
	}
	if sizePowerOf2 < 16 {
		sizePowerOf2 = 16
	}
	numElems := 1 << sizePowerOf2
	t.table = make([]tableEntry, numElems)
	t.sizeMask = uint64(numElems - 1)
	log.Debug().Int("num-elems", numElems).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("transposition-table-size")
	return t
}

func (t *transpositionTable) lookup(zval uint64) (tinyMove, uint8, bool) {
	t.lookups.Add(1)
	idx := zval & t.sizeMask
	entry := t.table[idx]
	if entry.play == 0 || entry.top4bytes != uint32(zval>>32) {
		return 0, 0, false
	}
	t.hits.Add(1)
	return entry.play, entry.depth, true
}

func (t *transpositionTable) store(zval uint64, m move.Move, depth uint8) {
	idx := zval & t.sizeMask
	t.table[idx] = tableEntry{
		top4bytes: uint32(zval >> 32),
		play:      moveToTiny(m),
		depth:     depth,
	}
}

func (t *transpositionTable) reset() {
	clear(t.table)
	t.lookups.Store(0)
	t.hits.Store(0)
}
