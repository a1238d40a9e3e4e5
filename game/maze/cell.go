package maze

import (
	"fmt"
	"math"
)

// Direction is a move on the maze lattice, named the way the host names them.
type Direction string

// Directions understood by the solver. Stop is a pseudo-direction that keeps the agent in place.
const (
	North Direction = "North"
	South Direction = "South"
	East  Direction = "East"
	West  Direction = "West"
	Stop  Direction = "Stop"
)

var (
	// Cardinals lists the four moving directions in the canonical East, West, North, South order.
	Cardinals = [4]Direction{East, West, North, South}

	displacements = map[Direction]Cell{
		East:  {X: 1, Y: 0},
		West:  {X: -1, Y: 0},
		North: {X: 0, Y: 1},
		South: {X: 0, Y: -1},
	}
)

// ParseDirection converts a host direction name into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case North, South, East, West, Stop:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

// Perpendicular returns the directions to the left and right of d.
// Stop has no perpendiculars.
func (d Direction) Perpendicular() (left, right Direction) {
	switch d {
	case East:
		return North, South
	case West:
		return South, North
	case North:
		return West, East
	case South:
		return East, West
	default:
		return Stop, Stop
	}
}

// Cell is a discrete maze coordinate. X grows to the East and Y grows to the North.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the cell adjacent to c in direction d. Stop returns c itself.
func (c Cell) Step(d Direction) Cell {
	delta := displacements[d]
	return Cell{X: c.X + delta.X, Y: c.Y + delta.Y}
}

// String implements fmt.Stringer.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Point is a position that may sit between two cells, as reported for a hazard in transit.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Snap returns the cell a point is attributed to. Coordinates are floored, so a hazard moving
// between two cells is attributed to the cell with the lower coordinate.
func (p Point) Snap() Cell {
	return Cell{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

// PointOf returns the point at the origin of c.
func PointOf(c Cell) Point {
	return Point{X: float64(c.X), Y: float64(c.Y)}
}
