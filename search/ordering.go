package search

import (
	"sort"

	"github.com/hexboardgames/hexchess/board"
	"github.com/hexboardgames/hexchess/hexgrid"
	"github.com/hexboardgames/hexchess/move"
)

// Move-ordering offsets. Ordering only affects pruning efficiency; the
// search result is the same for any permutation.
const (
	hashMoveOffset = 1 << 20
	captureOffset  = 1 << 16
)

// orderMoves sorts moves descending by estimated strength: the hash
// move first, then captures by victim-value-minus-attacker-value,
// promotion bonus, and destination centrality. The sort is stable so
// the generator's deterministic order breaks ties.
func orderMoves(b *board.Board, moves []move.Move, ttMove tinyMove) {
	type scored struct {
		m   move.Move
		est int
	}
	ms := make([]scored, len(moves))
	for i, m := range moves {
		ms[i] = scored{m, estimateMove(b, m, ttMove)}
	}
	sort.SliceStable(ms, func(i, j int) bool {
		return ms[i].est > ms[j].est
	})
	for i := range ms {
		moves[i] = ms[i].m
	}
}

func estimateMove(b *board.Board, m move.Move, ttMove tinyMove) int {
	est := 0
	if ttMove.matches(m) {
		est += hashMoveOffset
	}
	if m.IsCapture() {
		attacker, _ := b.At(m.From)
		est += captureOffset + m.Captured.Type.Value() - attacker.Type.Value()
	}
	if m.IsPromotion() {
		est += m.Promotion.Value()
	}
	est += hexgrid.Radius - hexgrid.Distance(m.To, hexgrid.Coord{})
	return est
}
