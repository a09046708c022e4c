package tablebase

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hexboardgames/hexchess/board"
	"github.com/hexboardgames/hexchess/hexgrid"
	"github.com/hexboardgames/hexchess/move"
	"github.com/hexboardgames/hexchess/movegen"
	"github.com/hexboardgames/hexchess/piece"
	"github.com/hexboardgames/hexchess/zobrist"
)

// placement is one piece on one cell.
type placement struct {
	c hexgrid.Coord
	p piece.Piece
}

// node is one enumerated position during generation. Successor hashes
// are precomputed once so the fixed-point passes are pure lookups; the
// board itself is rebuilt from the placements only when needed.
type node struct {
	hash       uint64
	stm        piece.Color
	placements []placement
	succHashes []uint64
}

func (n *node) build() *board.Board {
	b := board.New()
	for _, pl := range n.placements {
		b.Place(pl.c, pl.p)
	}
	return b
}

// generate runs the retrograde analysis for one configuration:
//
//  1. enumerate every legal placement for both sides to move,
//     discarding positions where the side not on turn is in check;
//  2. mark terminal positions (mated: Loss/0, stalemated: Draw/-1);
//  3. iterate to a fixed point, marking Win when some move reaches a
//     Loss and Loss when every move reaches a Win;
//  4. everything still unresolved is a Draw.
func generate(cfg Configuration, enc *zobrist.Encoder, reduced map[uint64]Entry) *table {
	start := time.Now()
	entries := make(map[uint64]Entry)
	nodes := enumerate(cfg, enc)

	// Terminal pass; also precompute successors for the fixed point.
	terminal := 0
	for _, n := range nodes {
		b := n.build()
		moves := movegen.GenerateLegalMoves(b, n.stm)
		if len(moves) == 0 {
			if movegen.IsInCheck(b, n.stm) {
				entries[n.hash] = Entry{WDL: Loss, DTM: 0}
			} else {
				entries[n.hash] = Entry{WDL: Draw, DTM: DrawDTM}
			}
			terminal++
			continue
		}
		n.succHashes = make([]uint64, len(moves))
		for i, m := range moves {
			nb := movegen.ApplyMove(b, m)
			n.succHashes[i] = enc.Hash(nb, n.stm.Opponent())
		}
	}

	// lookup consults this table first, then the reduced configuration
	// a capture collapses into.
	lookup := func(h uint64) (Entry, bool) {
		if e, ok := entries[h]; ok {
			return e, ok
		}
		e, ok := reduced[h]
		return e, ok
	}

	unresolved := make([]*node, 0, len(nodes))
	for _, n := range nodes {
		if _, done := entries[n.hash]; !done {
			unresolved = append(unresolved, n)
		}
	}

	passes := 0
	for {
		passes++
		changed := false
		remaining := unresolved[:0]
		for _, n := range unresolved {
			e, resolved := resolve(n, lookup)
			if !resolved {
				remaining = append(remaining, n)
				continue
			}
			if e.WDL == Win {
				e.BestMove = winningMove(n, e.DTM, enc, lookup)
			}
			entries[n.hash] = e
			changed = true
		}
		unresolved = remaining
		if !changed {
			break
		}
	}

	// Fixed point reached: nothing else can be forced, so the rest is
	// drawn.
	for _, n := range unresolved {
		entries[n.hash] = Entry{WDL: Draw, DTM: DrawDTM}
	}

	t := &table{cfg: cfg, entries: entries}
	log.Info().Str("config", cfg.Name()).
		Int("positions", len(nodes)).
		Int("terminal", terminal).
		Int("passes", passes).
		Int("draws", len(unresolved)).
		Dur("elapsed", time.Since(start)).
		Msg("tablebase-generated")
	return t
}

// resolve classifies n from the current marks: Win if any successor is
// a Loss (taking the quickest mate), Loss if every successor is a Win
// (taking the longest defense).
func resolve(n *node, lookup func(uint64) (Entry, bool)) (Entry, bool) {
	bestWin := -1
	worstLoss := -1
	allWins := true
	for _, h := range n.succHashes {
		e, ok := lookup(h)
		if !ok || e.WDL == Unknown {
			allWins = false
			continue
		}
		switch e.WDL {
		case Loss:
			if bestWin == -1 || e.DTM < bestWin {
				bestWin = e.DTM
			}
			allWins = false
		case Win:
			if e.DTM > worstLoss {
				worstLoss = e.DTM
			}
		default:
			allWins = false
		}
	}
	if bestWin >= 0 {
		return Entry{WDL: Win, DTM: bestWin + 1}, true
	}
	if allWins {
		return Entry{WDL: Loss, DTM: worstLoss + 1}, true
	}
	return Entry{}, false
}

// winningMove re-derives the move that achieves the recorded mate
// distance.
func winningMove(n *node, dtm int, enc *zobrist.Encoder, lookup func(uint64) (Entry, bool)) *move.Move {
	b := n.build()
	for _, m := range movegen.GenerateLegalMoves(b, n.stm) {
		nb := movegen.ApplyMove(b, m)
		h := enc.Hash(nb, n.stm.Opponent())
		if e, ok := lookup(h); ok && e.WDL == Loss && e.DTM == dtm-1 {
			mc := m
			return &mc
		}
	}
	return nil
}

// enumerate lists every legal placement of the configuration's pieces
// for both sides to move. Kings may be neither coincident nor
// adjacent, and the side not on turn may not stand in check.
func enumerate(cfg Configuration, enc *zobrist.Encoder) []*node {
	nodes := make([]*node, 0, 1<<16)
	wk := piece.New(piece.King, piece.White)
	bk := piece.New(piece.King, piece.Black)

	addNode := func(pls []placement, stm piece.Color) {
		n := &node{stm: stm, placements: append([]placement(nil), pls...)}
		b := n.build()
		if movegen.IsInCheck(b, stm.Opponent()) {
			return
		}
		n.hash = enc.Hash(b, stm)
		nodes = append(nodes, n)
	}

	extra := cfg.extraPiece()
	for _, wc := range hexgrid.Cells {
		for _, bc := range hexgrid.Cells {
			if hexgrid.Distance(wc, bc) <= 1 {
				continue
			}
			if cfg.Extra == piece.NoType {
				kings := []placement{{wc, wk}, {bc, bk}}
				addNode(kings, piece.White)
				addNode(kings, piece.Black)
				continue
			}
			for _, xc := range hexgrid.Cells {
				if xc == wc || xc == bc {
					continue
				}
				pls := []placement{{wc, wk}, {bc, bk}, {xc, extra}}
				addNode(pls, piece.White)
				addNode(pls, piece.Black)
			}
		}
	}
	return nodes
}
