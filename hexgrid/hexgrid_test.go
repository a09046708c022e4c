package hexgrid

import (
	"testing"

	"github.com/matryer/is"
)

// referenceValid is the cube-coordinate definition of the board:
// |q|, |r| and |s| all within Radius, with s = -q-r.
func referenceValid(c Coord) bool {
	abs := func(x int) int {
		if x < 0 {
			return -x
		}
		return x
	}
	return abs(c.Q) <= Radius && abs(c.R) <= Radius && abs(c.S()) <= Radius
}

func TestIsValidCellMatchesCubeDefinition(t *testing.T) {
	is := is.New(t)
	count := 0
	for q := -2 * Radius; q <= 2*Radius; q++ {
		for r := -2 * Radius; r <= 2*Radius; r++ {
			c := Coord{q, r}
			is.Equal(IsValidCell(c), referenceValid(c))
			if IsValidCell(c) {
				count++
			}
		}
	}
	is.Equal(count, NumCells)
}

func TestCellsEnumeration(t *testing.T) {
	is := is.New(t)
	seen := make(map[Coord]bool, NumCells)
	for i, c := range Cells {
		is.True(IsValidCell(c))
		is.True(!seen[c])
		seen[c] = true
		idx, ok := Index(c)
		is.True(ok)
		is.Equal(idx, i)
	}
	_, ok := Index(Coord{Radius + 1, 0})
	is.True(!ok)
}

func TestDistance(t *testing.T) {
	is := is.New(t)
	center := Coord{}
	is.Equal(Distance(center, center), 0)
	is.Equal(Distance(center, Coord{3, 0}), 3)
	is.Equal(Distance(center, Coord{0, -Radius}), Radius)
	// Moving along a third-axis line costs one per step, not two.
	is.Equal(Distance(Coord{2, -2}, Coord{-1, 1}), 3)
	for _, d := range Directions {
		is.Equal(Distance(center, d), 1)
	}
	is.Equal(Distance(Coord{-2, 4}, Coord{3, -1}), Distance(Coord{3, -1}, Coord{-2, 4}))
}

func TestOppositeIsInvolution(t *testing.T) {
	is := is.New(t)
	for d := Direction(0); d < NumDirections; d++ {
		is.Equal(d.Opposite().Opposite(), d)
		is.Equal(Directions[d].Neg(), Directions[d.Opposite()])
	}
}

func TestNeighbors(t *testing.T) {
	is := is.New(t)
	is.Equal(len(Neighbors(Coord{})), 6)
	// A corner cell keeps only three of its six neighbors.
	is.Equal(len(Neighbors(Coord{Radius, -Radius})), 3)
	for _, n := range Neighbors(Coord{Radius, -Radius}) {
		is.True(IsValidCell(n))
		is.Equal(Distance(n, Coord{Radius, -Radius}), 1)
	}
}

func TestRay(t *testing.T) {
	is := is.New(t)
	ray := Ray(Coord{}, DirE)
	is.Equal(len(ray), Radius)
	is.Equal(ray[0], Coord{1, 0})
	is.Equal(ray[Radius-1], Coord{Radius, 0})
	// From the eastern edge, the east ray is empty.
	is.Equal(len(Ray(Coord{Radius, 0}, DirE)), 0)
	// Every ray cell stays on the line and on the board.
	origin := Coord{1, -3}
	for d := Direction(0); d < NumDirections; d++ {
		prev := origin
		for _, c := range Ray(origin, d) {
			is.True(IsValidCell(c))
			is.Equal(Distance(prev, c), 1)
			prev = c
		}
	}
}
