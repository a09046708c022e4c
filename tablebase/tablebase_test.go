package tablebase

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/hexboardgames/hexchess/board"
	"github.com/hexboardgames/hexchess/hexgrid"
	"github.com/hexboardgames/hexchess/movegen"
	"github.com/hexboardgames/hexchess/piece"
	"github.com/hexboardgames/hexchess/zobrist"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func coord(q, r int) hexgrid.Coord { return hexgrid.Coord{Q: q, R: r} }

func TestConfigurationNames(t *testing.T) {
	is := is.New(t)
	is.Equal(KvK.Name(), "KvK")
	is.Equal(Configuration{Extra: piece.Queen, Owner: piece.White}.Name(), "KQvK:w")
	is.Equal(Configuration{Extra: piece.Lance, ExtraVariant: piece.VariantA, Owner: piece.Black}.Name(), "KLAvK:b")
	is.Equal(Configuration{Extra: piece.Chariot, Owner: piece.Black}.Name(), "KCvK:b")
}

func TestConfigurationKeysAreDistinct(t *testing.T) {
	is := is.New(t)
	seen := make(map[uint64]string)
	for _, cfg := range SupportedConfigurations() {
		key := cfg.Key()
		prev, dup := seen[key]
		if dup {
			t.Fatalf("key collision: %s and %s", prev, cfg.Name())
		}
		seen[key] = cfg.Name()
		is.True(cfg.Supported())
	}
	// Bare kings plus queen/chariot/knight/two lances per color.
	is.Equal(len(seen), 11)
}

func TestUnsupportedConfiguration(t *testing.T) {
	is := is.New(t)
	cfg := Configuration{Extra: piece.Pawn, Owner: piece.White}
	is.True(!cfg.Supported())

	c := NewCache()
	err := c.Generate(cfg)
	is.True(errors.Is(err, ErrUnsupportedConfiguration))
}

func TestDetectConfiguration(t *testing.T) {
	is := is.New(t)

	kvk := board.New()
	kvk.Place(coord(0, 0), piece.New(piece.King, piece.White))
	kvk.Place(coord(0, -3), piece.New(piece.King, piece.Black))
	cfg, ok := DetectConfiguration(kvk)
	is.True(ok)
	is.Equal(cfg, KvK)

	kqvk := kvk.Copy()
	kqvk.Place(coord(3, 1), piece.New(piece.Queen, piece.White))
	cfg, ok = DetectConfiguration(kqvk)
	is.True(ok)
	is.Equal(cfg, Configuration{Extra: piece.Queen, Owner: piece.White})

	pawn := kvk.Copy()
	pawn.Place(coord(3, 1), piece.New(piece.Pawn, piece.Black))
	_, ok = DetectConfiguration(pawn)
	is.True(!ok)

	twoExtras := kqvk.Copy()
	twoExtras.Place(coord(-3, 1), piece.New(piece.Knight, piece.Black))
	_, ok = DetectConfiguration(twoExtras)
	is.True(!ok)

	kingless := board.New()
	kingless.Place(coord(0, 0), piece.New(piece.King, piece.White))
	_, ok = DetectConfiguration(kingless)
	is.True(!ok)
}

func TestBareKingsIsAlwaysDrawn(t *testing.T) {
	is := is.New(t)
	c := NewCache()
	is.NoErr(c.Generate(KvK))

	c.mu.Lock()
	tbl := c.tables[KvK.Key()]
	c.mu.Unlock()
	is.True(tbl != nil)
	is.True(len(tbl.entries) > 0)
	for _, e := range tbl.entries {
		is.Equal(e.WDL, Draw)
		is.Equal(e.DTM, DrawDTM)
	}
}

func TestProbeBareKings(t *testing.T) {
	is := is.New(t)
	c := NewCache()
	b := board.New()
	b.Place(coord(0, 0), piece.New(piece.King, piece.White))
	b.Place(coord(0, -3), piece.New(piece.King, piece.Black))

	for _, stm := range []piece.Color{piece.White, piece.Black} {
		e, ok := c.Probe(b, stm)
		is.True(ok)
		is.Equal(e.WDL, Draw)
		is.Equal(e.DTM, DrawDTM)
		is.True(e.BestMove == nil)
	}
}

func TestProbeRejectsUnsupportedMaterial(t *testing.T) {
	is := is.New(t)
	c := NewCache()
	b := board.New()
	b.Place(coord(0, 0), piece.New(piece.King, piece.White))
	b.Place(coord(0, -3), piece.New(piece.King, piece.Black))
	b.Place(coord(2, 1), piece.New(piece.Pawn, piece.White))

	_, ok := c.Probe(b, piece.White)
	is.True(!ok)
}

func TestGenerateIsIdempotent(t *testing.T) {
	is := is.New(t)
	c := NewCache()
	is.NoErr(c.Generate(KvK))
	c.mu.Lock()
	first := c.tables[KvK.Key()]
	c.mu.Unlock()

	is.NoErr(c.Generate(KvK))
	c.mu.Lock()
	second := c.tables[KvK.Key()]
	c.mu.Unlock()
	is.True(first == second)
}

func TestWarmUpConcurrently(t *testing.T) {
	is := is.New(t)
	c := NewCache()
	// Warm the same cheap configuration from several goroutines;
	// exactly one generation must win.
	cfgs := []Configuration{KvK, KvK, KvK, KvK}
	is.NoErr(c.WarmUp(context.Background(), cfgs))
	c.mu.Lock()
	n := len(c.tables)
	c.mu.Unlock()
	is.Equal(n, 1)
}

func TestEnumerateExcludesIllegalKingPlacements(t *testing.T) {
	is := is.New(t)
	nodes := enumerate(KvK, zobrist.Shared())
	is.True(len(nodes) > 0)
	for _, n := range nodes {
		b := n.build()
		wk, ok := b.KingFor(piece.White)
		is.True(ok)
		bk, ok := b.KingFor(piece.Black)
		is.True(ok)
		is.True(hexgrid.Distance(wk, bk) > 1)
		is.True(!movegen.IsInCheck(b, n.stm.Opponent()))
	}
}

// Queen tables are a few orders of magnitude bigger than bare kings;
// keep them out of -short runs.
func TestQueenTablebase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping KQvK generation in short mode")
	}
	is := is.New(t)
	c := NewCache()

	// The queen mates on the spot: Loss in zero for the mated side.
	mate := board.New()
	mate.Place(coord(1, -4), piece.New(piece.King, piece.White))
	mate.Place(coord(0, -4), piece.New(piece.Queen, piece.White))
	mate.Place(coord(0, -5), piece.New(piece.King, piece.Black))
	e, ok := c.Probe(mate, piece.Black)
	is.True(ok)
	is.Equal(e.WDL, Loss)
	is.Equal(e.DTM, 0)

	// One queen move away from that mate: Win in one, and the stored
	// move delivers it.
	mateIn1 := board.New()
	mateIn1.Place(coord(1, -4), piece.New(piece.King, piece.White))
	mateIn1.Place(coord(-1, -3), piece.New(piece.Queen, piece.White))
	mateIn1.Place(coord(0, -5), piece.New(piece.King, piece.Black))
	e, ok = c.Probe(mateIn1, piece.White)
	is.True(ok)
	is.Equal(e.WDL, Win)
	is.Equal(e.DTM, 1)
	is.True(e.BestMove != nil)
	nb := movegen.ApplyMove(mateIn1, *e.BestMove)
	is.True(movegen.IsCheckmate(nb, piece.Black))

	// King and queen against the bare king force mate from quiet
	// positions too.
	open := board.New()
	open.Place(coord(0, 0), piece.New(piece.King, piece.White))
	open.Place(coord(2, -1), piece.New(piece.Queen, piece.White))
	open.Place(coord(-2, -2), piece.New(piece.King, piece.Black))
	e, ok = c.Probe(open, piece.White)
	is.True(ok)
	is.Equal(e.WDL, Win)
	is.True(e.DTM > 0)
	is.True(e.BestMove != nil)

	e, ok = c.Probe(open, piece.Black)
	is.True(ok)
	is.Equal(e.WDL, Loss)
}
