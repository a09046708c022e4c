// Package search implements the fixed-depth negamax alpha-beta search
// with principal variation search, aspiration windows and a
// move-ordering transposition table.
//
// thanks Wikipedia:
/*
function negamax(node, depth, α, β, color) is
    if depth = 0 or node is a terminal node then
        return color × the heuristic value of node
    childNodes := generateMoves(node)
    childNodes := orderMoves(childNodes)
    value := −∞
    foreach child in childNodes do
        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
        α := max(α, value)
        if α ≥ β then
            break (* cut-off *)
    return value
*/
package search

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/hexboardgames/hexchess/eval"
	"github.com/hexboardgames/hexchess/game"
	"github.com/hexboardgames/hexchess/move"
	"github.com/hexboardgames/hexchess/movegen"
	"github.com/hexboardgames/hexchess/piece"
)

const (
	// aspirationMargin is the initial half-width of the aspiration
	// window around the previous iteration's score.
	aspirationMargin = 50
	// aspirationWidenFactor grows the window geometrically on a fail
	// low or fail high.
	aspirationWidenFactor = 4
	// ttMemoryFraction of system memory goes to the transposition
	// table.
	ttMemoryFraction = 0.01
)

// Result is what one search call produces.
type Result struct {
	BestMove      *move.Move
	Score         int
	NodesSearched uint64
}

// Engine is a single search instance. It is not safe for concurrent
// use; run one Engine per game.
type Engine struct {
	pvsOptim        bool
	aspirationOptim bool
	ttOptim         bool

	tt    *transpositionTable
	nodes atomic.Uint64
}

func NewEngine() *Engine {
	return &Engine{
		pvsOptim:        true,
		aspirationOptim: true,
		ttOptim:         true,
	}
}

// SetPVSOptim toggles principal variation search. Purely an
// optimization; results are identical either way.
func (e *Engine) SetPVSOptim(on bool) { e.pvsOptim = on }

// SetAspirationOptim toggles aspiration windows during iterative
// deepening. Purely an optimization.
func (e *Engine) SetAspirationOptim(on bool) { e.aspirationOptim = on }

// SetTTOptim toggles the move-ordering transposition table.
func (e *Engine) SetTTOptim(on bool) { e.ttOptim = on }

func (e *Engine) ensureTT() {
	if e.ttOptim && e.tt == nil {
		e.tt = newTranspositionTable(ttMemoryFraction)
	}
}

// Search runs a single fixed-depth, full-window search and returns the
// best move, its score from the side to move's perspective, and the
// node count.
func (e *Engine) Search(ctx context.Context, pos *game.Position, depth int) (Result, error) {
	e.ensureTT()
	e.nodes.Store(0)
	pv := PVLine{}
	score, err := e.negamax(ctx, pos, depth, 0, -eval.Infinity, eval.Infinity, &pv)
	if err != nil {
		return Result{}, err
	}
	return e.result(score, pv), nil
}

// FindBestMove searches iteratively from depth 1 up to depth, with
// aspiration windows centered on the previous iteration's score. If
// the context is canceled mid-iteration, the result of the last
// completed iteration is returned.
func (e *Engine) FindBestMove(ctx context.Context, pos *game.Position, depth int) (Result, error) {
	e.ensureTT()
	e.nodes.Store(0)

	var best Result
	haveResult := false
	prevScore := 0

	for d := 1; d <= depth; d++ {
		α := -eval.Infinity
		β := eval.Infinity
		margin := aspirationMargin
		// Aspiration narrowing is pointless around mate scores and on
		// the very first iteration.
		if e.aspirationOptim && haveResult && abs(prevScore) < eval.MateThreshold {
			α = prevScore - margin
			β = prevScore + margin
		}

		for {
			pv := PVLine{}
			score, err := e.negamax(ctx, pos, d, 0, α, β, &pv)
			if err != nil {
				if haveResult {
					return best, nil
				}
				return Result{}, err
			}
			if score <= α || score >= β {
				// Fail low or high: widen geometrically and re-search
				// the same depth.
				margin *= aspirationWidenFactor
				α = score - margin
				β = score + margin
				if α < -eval.Infinity {
					α = -eval.Infinity
				}
				if β > eval.Infinity {
					β = eval.Infinity
				}
				continue
			}
			best = e.result(score, pv)
			haveResult = true
			prevScore = score
			log.Debug().Int("depth", d).Int("score", score).
				Uint64("nodes", best.NodesSearched).
				Str("pv", pv.String()).Msg("deepening-iteratively")
			break
		}
	}
	return best, nil
}

func (e *Engine) result(score int, pv PVLine) Result {
	r := Result{Score: score, NodesSearched: e.nodes.Load()}
	if len(pv.Moves) > 0 {
		m := pv.Moves[0]
		r.BestMove = &m
	}
	return r
}

// negamax returns the score of pos from the side to move's
// perspective. Mate scores are offset by the ply so nearer mates score
// higher up the tree.
func (e *Engine) negamax(ctx context.Context, pos *game.Position, depth, ply int, α, β int, pv *PVLine) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	stm := pos.SideToMove()

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		if movegen.IsInCheck(pos.Board(), stm) {
			return -(eval.MateValue - ply), nil
		}
		return 0, nil
	}
	if depth == 0 {
		return signFor(stm) * eval.Evaluate(pos.Board(), stm), nil
	}

	var ttMove tinyMove
	nodeKey := uint64(0)
	if e.ttOptim {
		nodeKey = pos.Hash()
		if play, _, ok := e.tt.lookup(nodeKey); ok {
			ttMove = play
		}
	}
	orderMoves(pos.Board(), moves, ttMove)

	var bestMove move.Move
	haveBest := false
	childPV := PVLine{}

	for i, m := range moves {
		pos.MakeUnchecked(m)
		e.nodes.Add(1)

		var value int
		var err error
		if e.pvsOptim && i > 0 {
			// Null-window probe; re-search in full only if the probe
			// suggests this move beats the current best.
			value, err = e.negamax(ctx, pos, depth-1, ply+1, -α-1, -α, &childPV)
			if err == nil && -value > α && -value < β {
				childPV.Clear()
				value, err = e.negamax(ctx, pos, depth-1, ply+1, -β, -α, &childPV)
			}
		} else {
			value, err = e.negamax(ctx, pos, depth-1, ply+1, -β, -α, &childPV)
		}
		pos.Unmake()
		if err != nil {
			return 0, err
		}

		if -value > α {
			α = -value
			bestMove = m
			haveBest = true
			pv.Update(m, childPV, α)
		}
		if α >= β {
			break // beta cut-off
		}
		childPV.Clear()
	}

	if e.ttOptim && haveBest {
		e.tt.store(nodeKey, bestMove, uint8(depth))
	}
	return α, nil
}

func signFor(c piece.Color) int {
	if c == piece.White {
		return 1
	}
	return -1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
