package maze

import (
	"fmt"
	"math/rand"
)

const (
	maxMazeDimenssion = 40
)

// room is a cell of the abstract maze before it is laid out on the lattice.
type room struct {
	row int
	col int
}

type passage struct {
	from room
	to   room
}

// wilson carves a perfect maze over a width*height arrangement of rooms.
type wilson struct {
	width  int
	height int
	rng    *rand.Rand
	open   map[passage]struct{}
}

// GenerateWalls returns the wall cells of a random perfect maze with width*height rooms, carved
// with Wilson's algorithm. Rooms sit on odd lattice coordinates of a (2*width+1)x(2*height+1) box,
// so the result is fully walled at its perimeter.
func GenerateWalls(width, height int, rng *rand.Rand) ([]Cell, error) {
	if min(width, height) <= 0 || max(width, height) > maxMazeDimenssion {
		return nil, fmt.Errorf("invalid maze dimensions %dx%d", width, height)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	w := &wilson{width: width, height: height, rng: rng, open: make(map[passage]struct{})}
	w.carve()
	return w.walls(), nil
}

func (w *wilson) randomRoom() room {
	return room{row: w.rng.Intn(w.height), col: w.rng.Intn(w.width)}
}

func (w *wilson) randomUnvisitedRoom(visited map[room]struct{}) room {
	for {
		r := w.randomRoom()
		if _, included := visited[r]; !included {
			return r
		}
	}
}

// adjacent lists the in-bound rooms next to r in the canonical direction order.
func (w *wilson) adjacent(r room) []room {
	var result []room
	for _, d := range Cardinals {
		delta := displacements[d]
		n := room{row: r.row + delta.Y, col: r.col + delta.X}
		if n.row >= 0 && n.row < w.height && n.col >= 0 && n.col < w.width {
			result = append(result, n)
		}
	}
	return result
}

// randomWalk walks from an unvisited room until it hits the visited tree. Later exits from a room
// overwrite earlier ones, which erases the loops of the walk.
func (w *wilson) randomWalk(visited map[room]struct{}) (room, map[room]room) {
	start := w.randomUnvisitedRoom(visited)
	exits := make(map[room]room)
	r := start

	for {
		adjacent := w.adjacent(r)
		next := adjacent[w.rng.Intn(len(adjacent))]
		exits[r] = next
		if _, included := visited[next]; included {
			break
		}
		r = next
	}

	return start, exits
}

func (w *wilson) carve() {
	visited := make(map[room]struct{})
	visited[w.randomRoom()] = struct{}{}

	for len(visited) < w.width*w.height {
		start, exits := w.randomWalk(visited)
		// Retrace the loop-erased path and attach it to the tree.
		for r := start; ; r = exits[r] {
			if _, included := visited[r]; included {
				break
			}
			visited[r] = struct{}{}
			w.openPassage(r, exits[r])
		}
	}
}

func (w *wilson) openPassage(a, b room) {
	w.open[passage{from: a, to: b}] = struct{}{}
	w.open[passage{from: b, to: a}] = struct{}{}
}

func (w *wilson) walls() []Cell {
	maxX, maxY := 2*w.width, 2*w.height
	var walls []Cell
	for x := 0; x <= maxX; x++ {
		for y := 0; y <= maxY; y++ {
			if !w.isOpen(x, y) {
				walls = append(walls, Cell{X: x, Y: y})
			}
		}
	}
	return walls
}

// isOpen reports whether lattice coordinate (x, y) is a room or a carved passage between rooms.
func (w *wilson) isOpen(x, y int) bool {
	switch {
	case x%2 == 1 && y%2 == 1:
		return true
	case x%2 == 0 && y%2 == 1:
		if x == 0 || x == 2*w.width {
			return false
		}
		a := room{row: (y - 1) / 2, col: x/2 - 1}
		b := room{row: (y - 1) / 2, col: x / 2}
		_, ok := w.open[passage{from: a, to: b}]
		return ok
	case x%2 == 1 && y%2 == 0:
		if y == 0 || y == 2*w.height {
			return false
		}
		a := room{row: y/2 - 1, col: (x - 1) / 2}
		b := room{row: y / 2, col: (x - 1) / 2}
		_, ok := w.open[passage{from: a, to: b}]
		return ok
	default:
		return false
	}
}
