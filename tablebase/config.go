package tablebase

import (
	"github.com/cespare/xxhash"

	"github.com/hexboardgames/hexchess/board"
	"github.com/hexboardgames/hexchess/hexgrid"
	"github.com/hexboardgames/hexchess/piece"
)

// Configuration canonically describes which non-king material is on
// the board. The engine's budget is at most one extra piece: bare
// kings, or king+{queen,lance,chariot,knight} versus king.
type Configuration struct {
	// Extra is piece.NoType for the bare-kings configuration.
	Extra        piece.Type
	ExtraVariant piece.Variant
	// Owner is the color holding the extra piece.
	Owner piece.Color
}

// KvK is the bare-kings configuration.
var KvK = Configuration{}

// Name is the canonical descriptor, e.g. "KvK", "KQvK:w", "KLAvK:b".
func (c Configuration) Name() string {
	if c.Extra == piece.NoType {
		return "KvK"
	}
	side := "w"
	if c.Owner == piece.Black {
		side = "b"
	}
	return "K" + c.Extra.Letter() + c.ExtraVariant.String() + "vK:" + side
}

// Key is the cache key for a generated table.
func (c Configuration) Key() uint64 {
	return xxhash.Sum64String(c.Name())
}

// Supported reports whether the engine can generate this
// configuration.
func (c Configuration) Supported() bool {
	switch c.Extra {
	case piece.NoType, piece.Queen, piece.Lance, piece.Chariot, piece.Knight:
		return true
	}
	return false
}

// reduced is the configuration reached when the extra piece gets
// captured.
func (c Configuration) reduced() (Configuration, bool) {
	if c.Extra == piece.NoType {
		return Configuration{}, false
	}
	return KvK, true
}

// extraPiece materializes the extra piece value.
func (c Configuration) extraPiece() piece.Piece {
	return piece.NewVariant(c.Extra, c.Owner, c.ExtraVariant)
}

// SupportedConfigurations lists every configuration the engine can
// generate, for eager warmup.
func SupportedConfigurations() []Configuration {
	configs := []Configuration{KvK}
	for _, col := range []piece.Color{piece.White, piece.Black} {
		for _, t := range []piece.Type{piece.Queen, piece.Chariot, piece.Knight} {
			configs = append(configs, Configuration{Extra: t, Owner: col})
		}
		for _, v := range []piece.Variant{piece.VariantA, piece.VariantB} {
			configs = append(configs, Configuration{Extra: piece.Lance, ExtraVariant: v, Owner: col})
		}
	}
	return configs
}

// DetectConfiguration classifies a board. ok is false when the
// material is outside the supported budget (more than one extra piece,
// a pawn extra, or missing/duplicated kings).
func DetectConfiguration(b *board.Board) (Configuration, bool) {
	var cfg Configuration
	kings := [piece.NumColors]int{}
	extras := 0
	valid := true
	b.Each(func(c hexgrid.Coord, p piece.Piece) {
		if p.Type == piece.King {
			kings[p.Color]++
			return
		}
		extras++
		if extras > 1 {
			valid = false
			return
		}
		cfg.Extra = p.Type
		cfg.ExtraVariant = p.Variant
		cfg.Owner = p.Color
	})
	if !valid || kings[piece.White] != 1 || kings[piece.Black] != 1 {
		return Configuration{}, false
	}
	if !cfg.Supported() {
		return Configuration{}, false
	}
	return cfg, true
}
