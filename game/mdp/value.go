/*
Package mdp solves the per-step Markov decision problem of a maze agent.

Every decision step builds a fresh ValueMap from the current targets and hazards, runs value
iteration over it under a stochastic intended-direction transition model, and picks the legal
move whose neighbouring cell has the highest expected utility.
*/
package mdp

import (
	"errors"
	"maps"

	"github.com/beka-birhanu/vinom-mdp/game/maze"
)

var (
	ErrCellNotMapped = errors.New("cell is missing from the value map")
	ErrNoLegalMoves  = errors.New("no legal moves")
)

// Kind labels the role of a cell in a value map.
type Kind int

const (
	KindWall Kind = iota
	KindFree
	KindTarget
	KindHazard
	KindConverged
)

// Tag returns the two-letter label used when rendering a value map.
func (k Kind) Tag() string {
	switch k {
	case KindWall:
		return "WL"
	case KindFree:
		return "FR"
	case KindTarget:
		return "TG"
	case KindHazard:
		return "HZ"
	case KindConverged:
		return "CV"
	default:
		return "??"
	}
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindFree:
		return "free"
	case KindTarget:
		return "target"
	case KindHazard:
		return "hazard"
	case KindConverged:
		return "converged"
	default:
		return "unknown"
	}
}

// CellValue is the labelled expected utility of one cell. The set of implementations is closed:
// Wall, Free, Target, Hazard and Converged.
type CellValue interface {
	Kind() Kind
	Value() float64
	cellValue()
}

// Wall is a cell the agent can never enter. Its utility is always zero.
type Wall struct{}

// Free is a floor cell whose utility is still being iterated.
type Free struct{ Score float64 }

// Target is a rewarding cell. Its score is fixed for the whole iteration run.
type Target struct{ Score float64 }

// Hazard is a hazard cell or a cell inside a hazard's decay range. Its score is fixed.
type Hazard struct{ Score float64 }

// Converged is a former Free cell whose score stopped moving. Its score is frozen.
type Converged struct{ Score float64 }

func (Wall) Kind() Kind      { return KindWall }
func (Free) Kind() Kind      { return KindFree }
func (Target) Kind() Kind    { return KindTarget }
func (Hazard) Kind() Kind    { return KindHazard }
func (Converged) Kind() Kind { return KindConverged }

func (Wall) Value() float64        { return 0 }
func (v Free) Value() float64      { return v.Score }
func (v Target) Value() float64    { return v.Score }
func (v Hazard) Value() float64    { return v.Score }
func (v Converged) Value() float64 { return v.Score }

func (Wall) cellValue()      {}
func (Free) cellValue()      {}
func (Target) cellValue()    {}
func (Hazard) cellValue()    {}
func (Converged) cellValue() {}

// ValueMap maps every cell of a maze's bounding box to its labelled utility.
type ValueMap map[maze.Cell]CellValue

// Clone returns a shallow copy. Cell values are immutable, so the copy is independent.
func (vm ValueMap) Clone() ValueMap {
	return maps.Clone(vm)
}

// At returns the value of c or ErrCellNotMapped.
func (vm ValueMap) At(c maze.Cell) (CellValue, error) {
	v, ok := vm[c]
	if !ok {
		return nil, &CellError{Cell: c, Err: ErrCellNotMapped}
	}
	return v, nil
}

// Count returns how many cells carry kind k.
func (vm ValueMap) Count(k Kind) int {
	n := 0
	for _, v := range vm {
		if v.Kind() == k {
			n++
		}
	}
	return n
}

// CellError attaches the offending cell to an error.
type CellError struct {
	Cell maze.Cell
	Err  error
}

func (e *CellError) Error() string {
	return e.Err.Error() + ": " + e.Cell.String()
}

func (e *CellError) Unwrap() error {
	return e.Err
}
