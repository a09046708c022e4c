// Package tablebase solves small endgame configurations exhaustively
// by retrograde analysis and answers win/draw/loss probes with
// distance to mate.
//
// A table is generated at most once per configuration and is read-only
// afterward, so concurrent games may probe freely; generation itself
// is single-writer.
package tablebase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hexboardgames/hexchess/board"
	"github.com/hexboardgames/hexchess/move"
	"github.com/hexboardgames/hexchess/piece"
	"github.com/hexboardgames/hexchess/zobrist"
)

// WDL classifies a position from the side to move's perspective.
type WDL uint8

const (
	Unknown WDL = iota
	Win
	Draw
	Loss
)

func (w WDL) String() string {
	switch w {
	case Win:
		return "Win"
	case Draw:
		return "Draw"
	case Loss:
		return "Loss"
	}
	return "Unknown"
}

// DrawDTM marks entries with no forced mate.
const DrawDTM = -1

// Entry is the solved value of one position. DTM is 0 for a position
// already checkmated, DrawDTM for draws, and otherwise the ply count
// to mate under optimal play. BestMove is set for Win entries only.
type Entry struct {
	WDL      WDL
	DTM      int
	BestMove *move.Move
}

var ErrUnsupportedConfiguration = errors.New("tablebase: unsupported configuration")

type table struct {
	cfg     Configuration
	entries map[uint64]Entry
}

// Cache owns the generated tables for the process lifetime.
type Cache struct {
	encoder *zobrist.Encoder

	mu       sync.Mutex
	tables   map[uint64]*table
	building map[uint64]chan struct{}
}

func NewCache() *Cache {
	return &Cache{
		encoder:  zobrist.Shared(),
		tables:   make(map[uint64]*table),
		building: make(map[uint64]chan struct{}),
	}
}

// Clear drops every generated table.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables = make(map[uint64]*table)
}

// Generate builds the table for cfg if it does not exist yet. It is
// idempotent and safe to call redundantly from several goroutines:
// exactly one builds, the rest wait.
func (c *Cache) Generate(cfg Configuration) error {
	if !cfg.Supported() {
		return fmt.Errorf("%w: %s", ErrUnsupportedConfiguration, cfg.Name())
	}
	key := cfg.Key()

	c.mu.Lock()
	if _, ok := c.tables[key]; ok {
		c.mu.Unlock()
		return nil
	}
	if ch, busy := c.building[key]; busy {
		c.mu.Unlock()
		<-ch
		return c.Generate(cfg)
	}
	ch := make(chan struct{})
	c.building[key] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.building, key)
		c.mu.Unlock()
		close(ch)
	}()

	// Capturing the extra piece walks into the reduced configuration,
	// so that table must exist first.
	var reducedEntries map[uint64]Entry
	if red, ok := cfg.reduced(); ok {
		if err := c.Generate(red); err != nil {
			return err
		}
		c.mu.Lock()
		reducedEntries = c.tables[red.Key()].entries
		c.mu.Unlock()
	}

	t := generate(cfg, c.encoder, reducedEntries)

	c.mu.Lock()
	c.tables[key] = t
	c.mu.Unlock()
	return nil
}

// WarmUp generates the given configurations eagerly, one per
// goroutine, before any concurrent probing starts.
func (c *Cache) WarmUp(ctx context.Context, configs []Configuration) error {
	g, _ := errgroup.WithContext(ctx)
	for _, cfg := range configs {
		cfg := cfg
		g.Go(func() error {
			return c.Generate(cfg)
		})
	}
	return g.Wait()
}

// Probe looks up the exact position. It generates the configuration's
// table on first use. ok is false for unsupported material or for
// positions excluded as illegal during generation.
func (c *Cache) Probe(b *board.Board, sideToMove piece.Color) (Entry, bool) {
	cfg, ok := DetectConfiguration(b)
	if !ok {
		return Entry{}, false
	}
	if err := c.Generate(cfg); err != nil {
		return Entry{}, false
	}
	c.mu.Lock()
	t := c.tables[cfg.Key()]
	c.mu.Unlock()
	e, ok := t.entries[c.encoder.Hash(b, sideToMove)]
	return e, ok
}
