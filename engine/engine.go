// Package engine ties the tablebase and the search together into the
// move-selection policy the rest of the program talks to.
package engine

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/hexboardgames/hexchess/eval"
	"github.com/hexboardgames/hexchess/game"
	"github.com/hexboardgames/hexchess/movegen"
	"github.com/hexboardgames/hexchess/search"
	"github.com/hexboardgames/hexchess/tablebase"
)

// ErrNoLegalMoves is returned when the side to move has no move at
// all; callers distinguish mate from stalemate via the predicates.
var ErrNoLegalMoves = errors.New("engine: no legal moves")

type Engine struct {
	searcher *search.Engine
	tb       *tablebase.Cache
}

func New() *Engine {
	return &Engine{
		searcher: search.NewEngine(),
		tb:       tablebase.NewCache(),
	}
}

// Tablebase exposes the cache, e.g. for eager warmup at startup.
func (e *Engine) Tablebase() *tablebase.Cache { return e.tb }

// BestMove picks a move for the side on turn. Tablebase-eligible
// positions are probed first: a Win plays the tabled mating line, a
// Draw plays any legal move, and a Loss deliberately falls back to the
// full search to put up the longest practical resistance instead of
// resigning. Everything else is a fixed-depth search.
func (e *Engine) BestMove(ctx context.Context, pos *game.Position, depth int) (search.Result, error) {
	legal := pos.LegalMoves()
	if len(legal) == 0 {
		return search.Result{}, ErrNoLegalMoves
	}

	if entry, ok := e.tb.Probe(pos.Board(), pos.SideToMove()); ok {
		switch entry.WDL {
		case tablebase.Win:
			if entry.BestMove != nil {
				log.Debug().Int("dtm", entry.DTM).Str("move", entry.BestMove.String()).
					Msg("tablebase-win")
				return search.Result{BestMove: entry.BestMove, Score: winScore(entry.DTM)}, nil
			}
		case tablebase.Draw:
			m := legal[frand.Intn(len(legal))]
			log.Debug().Str("move", m.String()).Msg("tablebase-draw")
			return search.Result{BestMove: &m, Score: 0}, nil
		case tablebase.Loss:
			// Lost anyway; search for the most resistant defense.
			log.Debug().Int("dtm", entry.DTM).Msg("tablebase-loss-searching")
		}
	}

	return e.searcher.FindBestMove(ctx, pos, depth)
}

// Evaluate scores the position statically, from White's perspective.
func (e *Engine) Evaluate(pos *game.Position) int {
	return eval.Evaluate(pos.Board(), pos.SideToMove())
}

// Outcome reports whether the position is over for the side to move.
func Outcome(pos *game.Position) (checkmate, stalemate bool) {
	if len(pos.LegalMoves()) != 0 {
		return false, false
	}
	if movegen.IsInCheck(pos.Board(), pos.SideToMove()) {
		return true, false
	}
	return false, true
}

// winScore converts a tablebase mate distance into the search's score
// scale, so tablebase and search results are comparable to callers.
func winScore(dtm int) int {
	return eval.MateValue - dtm
}
