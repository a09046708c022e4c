package search

import (
	"fmt"
	"strings"

	"github.com/hexboardgames/hexchess/move"
)

// PVLine is the principal variation: the sequence of best moves the
// search expects from a node downward.
type PVLine struct {
	Moves []move.Move
	score int
}

func (pv *PVLine) Clear() {
	pv.Moves = pv.Moves[:0]
}

// Update replaces the line with m followed by the child's line.
func (pv *PVLine) Update(m move.Move, child PVLine, score int) {
	pv.Clear()
	pv.Moves = append(pv.Moves, m)
	pv.Moves = append(pv.Moves, child.Moves...)
	pv.score = score
}

func (pv PVLine) String() string {
	parts := make([]string, 0, len(pv.Moves))
	for _, m := range pv.Moves {
		parts = append(parts, m.String())
	}
	return fmt.Sprintf("pv (val %d): %s", pv.score, strings.Join(parts, " "))
}
