// Package hexgrid models the hexagonal playing field using axial
// coordinates (q, r). The third cube coordinate s = -q - r is derived
// where needed for distance and validity checks.
package hexgrid

// Radius is the board radius. Cells satisfying
// max(|q|, |r|, |q+r|) <= Radius are on the board.
const Radius = 5

// NumCells is the number of valid cells for the fixed radius.
const NumCells = 1 + 3*Radius*(Radius+1)

// Coord is an axial hex coordinate. It is an immutable value type.
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (c Coord) S() int {
	return -c.Q - c.R
}

func (c Coord) Add(d Coord) Coord {
	return Coord{c.Q + d.Q, c.R + d.R}
}

func (c Coord) Neg() Coord {
	return Coord{-c.Q, -c.R}
}

// Direction indexes the fixed neighbor ring, counterclockwise from east.
type Direction int

const (
	DirE Direction = iota
	DirNE
	DirNW
	DirW
	DirSW
	DirSE
	NumDirections
)

// Directions holds the 6 axial neighbor offsets, indexed by Direction.
var Directions = [NumDirections]Coord{
	{1, 0}, {1, -1}, {0, -1},
	{-1, 0}, {-1, 1}, {0, 1},
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 3) % NumDirections
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// IsValidCell reports whether c lies on the board.
func IsValidCell(c Coord) bool {
	return abs(c.Q) <= Radius && abs(c.R) <= Radius && abs(c.Q+c.R) <= Radius
}

// Distance is the hex distance between two cells.
func Distance(a, b Coord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (abs(dq) + abs(dr) + abs(dq+dr)) / 2
}

// Neighbors returns the valid cells adjacent to c, in ring order.
func Neighbors(c Coord) []Coord {
	out := make([]Coord, 0, NumDirections)
	for _, d := range Directions {
		n := c.Add(d)
		if IsValidCell(n) {
			out = append(out, n)
		}
	}
	return out
}

// Ray walks outward from c along dir, yielding valid cells until the
// board edge. c itself is not included. Callers generating slider moves
// stop early at the first occupied cell.
func Ray(c Coord, dir Direction) []Coord {
	d := Directions[dir]
	out := make([]Coord, 0, 2*Radius)
	for n := c.Add(d); IsValidCell(n); n = n.Add(d) {
		out = append(out, n)
	}
	return out
}

var (
	// Cells lists every valid coordinate in a fixed enumeration order.
	Cells [NumCells]Coord
	// cellIndex maps a coordinate back to its position in Cells.
	cellIndex map[Coord]int
)

func init() {
	cellIndex = make(map[Coord]int, NumCells)
	i := 0
	for q := -Radius; q <= Radius; q++ {
		for r := -Radius; r <= Radius; r++ {
			c := Coord{q, r}
			if IsValidCell(c) {
				Cells[i] = c
				cellIndex[c] = i
				i++
			}
		}
	}
}

// Index returns the dense cell index of c, in [0, NumCells). The second
// return is false for off-board coordinates.
func Index(c Coord) (int, bool) {
	i, ok := cellIndex[c]
	return i, ok
}
