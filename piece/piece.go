// Package piece defines piece identity and the per-type movement
// tables. A piece is a closed value type (type, color, variant) rather
// than an interface hierarchy; movement rules are table lookups so that
// hashing, equality and tablebase keys stay trivial.
package piece

import "github.com/hexboardgames/hexchess/hexgrid"

type Type uint8

const (
	NoType Type = iota
	King
	Queen
	Pawn
	Knight
	Lance
	Chariot
	NumTypes
)

var typeNames = [NumTypes]string{"-", "King", "Queen", "Pawn", "Knight", "Lance", "Chariot"}

func (t Type) String() string {
	if t >= NumTypes {
		return "?"
	}
	return typeNames[t]
}

// Letter is the single-letter abbreviation used in configuration names
// and board rendering.
func (t Type) Letter() string {
	switch t {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Pawn:
		return "P"
	case Knight:
		return "N"
	case Lance:
		return "L"
	case Chariot:
		return "C"
	}
	return "?"
}

type Color uint8

const (
	White Color = iota
	Black
	NumColors
)

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

func (c Color) Opponent() Color {
	return 1 - c
}

// Variant disambiguates pieces whose direction subset is not determined
// by type alone. Only the Lance uses it: variants A and B share the
// forward/back axis and split the remaining four directions between
// them. It is immutable once a piece is placed.
type Variant uint8

const (
	VariantNone Variant = iota
	VariantA
	VariantB
	NumVariants
)

func (v Variant) String() string {
	switch v {
	case VariantA:
		return "A"
	case VariantB:
		return "B"
	}
	return ""
}

type Piece struct {
	Type    Type
	Color   Color
	Variant Variant
}

func New(t Type, c Color) Piece {
	return Piece{Type: t, Color: c}
}

func NewVariant(t Type, c Color, v Variant) Piece {
	return Piece{Type: t, Color: c, Variant: v}
}

// Index packs (type, color, variant) into a dense index for hash
// tables. The range is [0, NumIndexes).
func (p Piece) Index() int {
	return (int(p.Type)*int(NumColors)+int(p.Color))*int(NumVariants) + int(p.Variant)
}

const NumIndexes = int(NumTypes) * int(NumColors) * int(NumVariants)

// Value is the material value in centipawns. The king has no material
// value; its safety is handled by the terminal rules.
func (t Type) Value() int {
	switch t {
	case Pawn:
		return 100
	case Knight:
		return 300
	case Lance:
		return 330
	case Chariot:
		return 500
	case Queen:
		return 900
	}
	return 0
}

// PromotionTypes are the types a pawn may promote to.
var PromotionTypes = []Type{Queen, Chariot, Lance, Knight}

// slider direction sets. The vertical axis {NW, SE} is the pawn
// forward/back axis; the other four directions are the "diagonals".
var (
	allDirections     = []hexgrid.Direction{hexgrid.DirE, hexgrid.DirNE, hexgrid.DirNW, hexgrid.DirW, hexgrid.DirSW, hexgrid.DirSE}
	chariotDirections = []hexgrid.Direction{hexgrid.DirE, hexgrid.DirNE, hexgrid.DirW, hexgrid.DirSW}
	lanceADirections  = []hexgrid.Direction{hexgrid.DirNW, hexgrid.DirSE, hexgrid.DirNE, hexgrid.DirSW}
	lanceBDirections  = []hexgrid.Direction{hexgrid.DirNW, hexgrid.DirSE, hexgrid.DirE, hexgrid.DirW}
)

// KnightOffsets are the six fixed leap offsets: compositions of
// adjacent direction pairs. They are independent of variant.
var KnightOffsets = [6]hexgrid.Coord{
	{Q: 2, R: -1}, {Q: 1, R: -2}, {Q: -1, R: -1},
	{Q: -2, R: 1}, {Q: -1, R: 2}, {Q: 1, R: 1},
}

// SlideDirections returns the directions p may slide along, and whether
// p is an unbounded slider at all. Single-step and leaping pieces
// return ok=false.
func (p Piece) SlideDirections() ([]hexgrid.Direction, bool) {
	switch p.Type {
	case Queen:
		return allDirections, true
	case Chariot:
		return chariotDirections, true
	case Lance:
		if p.Variant == VariantB {
			return lanceBDirections, true
		}
		return lanceADirections, true
	}
	return nil, false
}

// StepDirections returns the single-step directions for the king.
func StepDirections() []hexgrid.Direction {
	return allDirections
}

// PawnForward is the pawn's quiet-step direction for a color. White
// advances toward decreasing r, Black toward increasing r.
func PawnForward(c Color) hexgrid.Direction {
	if c == White {
		return hexgrid.DirNW
	}
	return hexgrid.DirSE
}

// PawnCaptureDirections are the directions a pawn of the given color
// captures along: straight forward plus the two diagonal-forward
// directions.
func PawnCaptureDirections(c Color) []hexgrid.Direction {
	if c == White {
		return []hexgrid.Direction{hexgrid.DirNW, hexgrid.DirNE, hexgrid.DirW}
	}
	return []hexgrid.Direction{hexgrid.DirSE, hexgrid.DirSW, hexgrid.DirE}
}

// IsPromotionCell reports whether a pawn of the given color promotes
// upon reaching c: the cell's forward neighbor is off the board.
func IsPromotionCell(c Color, cell hexgrid.Coord) bool {
	next := cell.Add(hexgrid.Directions[PawnForward(c)])
	return !hexgrid.IsValidCell(next)
}

// AttacksAlong reports whether p, sitting adjacent to a target in
// direction d (from the target's point of view p is in direction d, so
// p attacks back along d.Opposite()), threatens the target with a
// single-step capture. Used by attack detection for kings and pawns.
func (p Piece) AttacksAlong(d hexgrid.Direction) bool {
	back := d.Opposite()
	switch p.Type {
	case King:
		return true
	case Pawn:
		for _, cd := range PawnCaptureDirections(p.Color) {
			if cd == back {
				return true
			}
		}
	}
	return false
}
