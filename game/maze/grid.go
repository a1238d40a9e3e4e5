/*
Package maze models the static structure of a maze as seen by the solver.

A maze is described by its wall cells only. Everything inside the walls' bounding box that is not
a wall is floor. Each floor cell knows its four cardinal neighbours, computed arithmetically; a
neighbour may itself be a wall, and anything outside the bounding box is treated as a wall too.

The package also carries a Wilson's-algorithm layout generator used to produce perfect mazes.
*/
package maze

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrDegenerateMaze   = errors.New("degenerate maze")
	ErrUnknownCell      = errors.New("cell is not a floor cell of the maze")
	ErrUnknownDirection = errors.New("unknown direction")
)

// Bounds is the inclusive bounding box of a maze.
type Bounds struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Contains reports whether c lies inside the box.
func (b Bounds) Contains(c Cell) bool {
	return c.X >= b.MinX && c.X <= b.MaxX && c.Y >= b.MinY && c.Y <= b.MaxY
}

// Width returns the number of columns in the box.
func (b Bounds) Width() int { return b.MaxX - b.MinX + 1 }

// Height returns the number of rows in the box.
func (b Bounds) Height() int { return b.MaxY - b.MinY + 1 }

// Grid holds the derived, read-only structures of a maze: the wall set, the floor set, the
// neighbour table and the bounding box.
type Grid struct {
	bounds    Bounds
	walls     map[Cell]struct{}
	floors    []Cell // sorted by X then Y
	neighbors map[Cell]map[Direction]Cell
}

// NewGrid derives the grid of a maze from its wall cells.
// It fails with ErrDegenerateMaze when there are no walls or no floor cells.
func NewGrid(walls []Cell) (*Grid, error) {
	if len(walls) == 0 {
		return nil, fmt.Errorf("%w: no walls", ErrDegenerateMaze)
	}

	wallSet := make(map[Cell]struct{}, len(walls))
	bounds := Bounds{MinX: walls[0].X, MinY: walls[0].Y, MaxX: walls[0].X, MaxY: walls[0].Y}
	for _, w := range walls {
		wallSet[w] = struct{}{}
		bounds.MinX = min(bounds.MinX, w.X)
		bounds.MinY = min(bounds.MinY, w.Y)
		bounds.MaxX = max(bounds.MaxX, w.X)
		bounds.MaxY = max(bounds.MaxY, w.Y)
	}

	var floors []Cell
	for x := bounds.MinX; x <= bounds.MaxX; x++ {
		for y := bounds.MinY; y <= bounds.MaxY; y++ {
			c := Cell{X: x, Y: y}
			if _, isWall := wallSet[c]; !isWall {
				floors = append(floors, c)
			}
		}
	}
	if len(floors) == 0 {
		return nil, fmt.Errorf("%w: no floor cells", ErrDegenerateMaze)
	}

	neighbors := make(map[Cell]map[Direction]Cell, len(floors))
	for _, f := range floors {
		table := make(map[Direction]Cell, len(Cardinals))
		for _, d := range Cardinals {
			table[d] = f.Step(d)
		}
		neighbors[f] = table
	}

	return &Grid{
		bounds:    bounds,
		walls:     wallSet,
		floors:    floors,
		neighbors: neighbors,
	}, nil
}

// Bounds returns the bounding box of the walls.
func (g *Grid) Bounds() Bounds {
	return g.bounds
}

// Walls returns the wall cells sorted by X then Y.
func (g *Grid) Walls() []Cell {
	walls := make([]Cell, 0, len(g.walls))
	for w := range g.walls {
		walls = append(walls, w)
	}
	slices.SortFunc(walls, compareCells)
	return walls
}

// Floors returns the floor cells sorted by X then Y.
func (g *Grid) Floors() []Cell {
	return slices.Clone(g.floors)
}

// IsWall reports whether c is one of the maze's wall cells.
func (g *Grid) IsWall(c Cell) bool {
	_, ok := g.walls[c]
	return ok
}

// IsFloor reports whether c is a floor cell.
func (g *Grid) IsFloor(c Cell) bool {
	_, ok := g.neighbors[c]
	return ok
}

// Blocked reports whether the agent can never stand on c: c is a wall or lies outside the box.
func (g *Grid) Blocked(c Cell) bool {
	return g.IsWall(c) || !g.bounds.Contains(c)
}

// Neighbor returns the cell next to floor cell c in direction d.
func (g *Grid) Neighbor(c Cell, d Direction) (Cell, error) {
	table, ok := g.neighbors[c]
	if !ok {
		return Cell{}, fmt.Errorf("%w: %s", ErrUnknownCell, c)
	}
	n, ok := table[d]
	if !ok {
		return Cell{}, fmt.Errorf("%w: %q", ErrUnknownDirection, d)
	}
	return n, nil
}

// Neighbors returns a copy of the four-entry neighbour table of floor cell c.
func (g *Grid) Neighbors(c Cell) (map[Direction]Cell, error) {
	table, ok := g.neighbors[c]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCell, c)
	}
	out := make(map[Direction]Cell, len(table))
	for d, n := range table {
		out[d] = n
	}
	return out, nil
}

// String draws the maze top row first: '#' for walls and '.' for floor.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := g.bounds.MaxY; y >= g.bounds.MinY; y-- {
		for x := g.bounds.MinX; x <= g.bounds.MaxX; x++ {
			if g.IsWall(Cell{X: x, Y: y}) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func compareCells(a, b Cell) int {
	if a.X != b.X {
		return a.X - b.X
	}
	return a.Y - b.Y
}
