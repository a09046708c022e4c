package search

import (
	"context"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/hexboardgames/hexchess/board"
	"github.com/hexboardgames/hexchess/eval"
	"github.com/hexboardgames/hexchess/game"
	"github.com/hexboardgames/hexchess/hexgrid"
	"github.com/hexboardgames/hexchess/movegen"
	"github.com/hexboardgames/hexchess/piece"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func coord(q, r int) hexgrid.Coord { return hexgrid.Coord{Q: q, R: r} }

// plainMinimax is the unpruned reference: same terminal and leaf
// conventions as the engine, no cut-offs of any kind.
func plainMinimax(pos *game.Position, depth, ply int) int {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		if movegen.IsInCheck(pos.Board(), pos.SideToMove()) {
			return -(eval.MateValue - ply)
		}
		return 0
	}
	if depth == 0 {
		sign := 1
		if pos.SideToMove() == piece.Black {
			sign = -1
		}
		return sign * eval.Evaluate(pos.Board(), pos.SideToMove())
	}
	best := -eval.Infinity
	for _, m := range moves {
		pos.MakeUnchecked(m)
		v := -plainMinimax(pos, depth-1, ply+1)
		pos.Unmake()
		if v > best {
			best = v
		}
	}
	return best
}

// sparsePosition is a small middlegame-ish setup that keeps reference
// searches affordable.
func sparsePosition(stm piece.Color) *game.Position {
	b := board.New()
	b.Place(coord(-4, 4), piece.New(piece.King, piece.White))
	b.Place(coord(0, 2), piece.New(piece.Queen, piece.White))
	b.Place(coord(4, -4), piece.New(piece.King, piece.Black))
	b.Place(coord(0, -2), piece.New(piece.Chariot, piece.Black))
	return game.New(b, stm)
}

func TestSearchMatchesPlainMinimax(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	for _, stm := range []piece.Color{piece.White, piece.Black} {
		for depth := 1; depth <= 2; depth++ {
			want := plainMinimax(sparsePosition(stm), depth, 0)

			e := NewEngine()
			res, err := e.Search(ctx, sparsePosition(stm), depth)
			is.NoErr(err)
			is.Equal(res.Score, want)
			is.True(res.BestMove != nil)
			is.True(res.NodesSearched > 0)
		}
	}
}

func TestPVSIsPureOptimization(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	run := func(pvs bool) Result {
		e := NewEngine()
		e.SetTTOptim(false) // identical ordering on both runs
		e.SetPVSOptim(pvs)
		res, err := e.Search(ctx, sparsePosition(piece.White), 3)
		is.NoErr(err)
		return res
	}
	with := run(true)
	without := run(false)
	is.Equal(with.Score, without.Score)
	is.Equal(*with.BestMove, *without.BestMove)
}

func TestAspirationIsPureOptimization(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	full := NewEngine()
	full.SetTTOptim(false)
	full.SetPVSOptim(false)
	full.SetAspirationOptim(false)
	want, err := full.Search(ctx, sparsePosition(piece.White), 3)
	is.NoErr(err)

	asp := NewEngine()
	asp.SetTTOptim(false)
	asp.SetPVSOptim(false)
	got, err := asp.FindBestMove(ctx, sparsePosition(piece.White), 3)
	is.NoErr(err)
	is.Equal(got.Score, want.Score)
	is.Equal(*got.BestMove, *want.BestMove)
}

func TestTranspositionTableKeepsScores(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	off := NewEngine()
	off.SetTTOptim(false)
	want, err := off.FindBestMove(ctx, sparsePosition(piece.Black), 3)
	is.NoErr(err)

	on := NewEngine()
	got, err := on.FindBestMove(ctx, sparsePosition(piece.Black), 3)
	is.NoErr(err)
	// The table only reorders moves; the value never changes.
	is.Equal(got.Score, want.Score)
}

func TestFindsMateInOne(t *testing.T) {
	is := is.New(t)
	b := board.New()
	b.Place(coord(1, -4), piece.New(piece.King, piece.White))
	b.Place(coord(-1, -3), piece.New(piece.Queen, piece.White))
	b.Place(coord(0, -5), piece.New(piece.King, piece.Black))
	pos := game.New(b, piece.White)

	e := NewEngine()
	res, err := e.FindBestMove(context.Background(), pos, 3)
	is.NoErr(err)
	is.Equal(res.Score, eval.MateValue-1)
	is.True(res.BestMove != nil)

	nb := movegen.ApplyMove(pos.Board(), *res.BestMove)
	is.True(movegen.IsCheckmate(nb, piece.Black))
}

func TestMatedRootScoresAsLoss(t *testing.T) {
	is := is.New(t)
	b := board.New()
	b.Place(coord(1, -4), piece.New(piece.King, piece.White))
	b.Place(coord(0, -4), piece.New(piece.Queen, piece.White))
	b.Place(coord(0, -5), piece.New(piece.King, piece.Black))
	pos := game.New(b, piece.Black)

	e := NewEngine()
	res, err := e.Search(context.Background(), pos, 3)
	is.NoErr(err)
	is.Equal(res.Score, -eval.MateValue)
	is.True(res.BestMove == nil)
}

func TestPrefersFasterMate(t *testing.T) {
	is := is.New(t)
	// Mate in one is available; a deeper search must not wander off to
	// a slower mate.
	b := board.New()
	b.Place(coord(1, -4), piece.New(piece.King, piece.White))
	b.Place(coord(-1, -3), piece.New(piece.Queen, piece.White))
	b.Place(coord(0, -5), piece.New(piece.King, piece.Black))
	pos := game.New(b, piece.White)

	e := NewEngine()
	res, err := e.FindBestMove(context.Background(), pos, 4)
	is.NoErr(err)
	is.Equal(res.Score, eval.MateValue-1)
}

func TestCanceledContext(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEngine()
	_, err := e.Search(ctx, sparsePosition(piece.White), 2)
	is.True(err != nil)

	_, err = e.FindBestMove(ctx, sparsePosition(piece.White), 2)
	is.True(err != nil)
}

func TestOrderMovesPutsCapturesFirst(t *testing.T) {
	is := is.New(t)
	b := board.New()
	b.Place(coord(0, 0), piece.New(piece.Chariot, piece.White))
	b.Place(coord(2, 0), piece.New(piece.Queen, piece.Black))
	b.Place(coord(-5, 4), piece.New(piece.King, piece.White))
	b.Place(coord(5, -4), piece.New(piece.King, piece.Black))

	moves := movegen.GenerateLegalMoves(b, piece.White)
	orderMoves(b, moves, 0)
	is.True(moves[0].IsCapture())
	is.Equal(moves[0].Captured.Type, piece.Queen)
}
