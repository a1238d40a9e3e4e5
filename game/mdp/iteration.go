package mdp

import (
	"math"

	"github.com/beka-birhanu/vinom-mdp/game/maze"
)

// Transition model: the agent moves in the intended direction with intendedProb and slips to
// either perpendicular direction with slipProb each.
const (
	intendedProb = 0.8
	slipProb     = 0.1

	livingReward = -1.0
)

// Objective selects how the candidate action values of a cell are combined.
type Objective int

const (
	Maximize Objective = iota // goal seeking
	Minimize                  // adversarial
)

// IterationParams configures value iteration.
type IterationParams struct {
	Discount  float64
	Tolerance float64
	MaxSteps  int
	Objective Objective
}

// Report summarises a value iteration run.
type Report struct {
	Passes    int  // Bellman passes executed.
	Converged bool // Whether the last pass found no free cell left.
}

// Solve runs Bellman passes until a pass reports convergence or MaxSteps passes have run.
// Running out of passes is not an error: the best-effort map is returned with Converged false.
func Solve(grid *maze.Grid, vm ValueMap, p IterationParams) (ValueMap, Report, error) {
	var report Report
	for report.Passes < p.MaxSteps {
		next, converged, err := Iterate(grid, vm, p)
		if err != nil {
			return vm, report, err
		}
		vm = next
		report.Passes++
		if converged {
			report.Converged = true
			break
		}
	}
	return vm, report, nil
}

// Iterate applies one synchronous Bellman pass. Every read comes from vm and every write goes to
// a copy, so the update order of cells cannot influence the result.
// The returned flag is true when vm held no Free cell at all.
func Iterate(grid *maze.Grid, vm ValueMap, p IterationParams) (ValueMap, bool, error) {
	next := vm.Clone()
	converged := true

	for cell, value := range vm {
		if value.Kind() != KindFree {
			continue
		}
		converged = false

		best, err := bestActionValue(grid, vm, cell, p.Objective)
		if err != nil {
			return nil, false, err
		}

		score := livingReward + p.Discount*best
		if math.Abs(score-value.Value()) < p.Tolerance {
			next[cell] = Converged{Score: score}
		} else {
			next[cell] = Free{Score: score}
		}
	}

	return next, converged, nil
}

// bestActionValue returns the best (or worst, under Minimize) expected value over the four
// intended directions from cell.
func bestActionValue(grid *maze.Grid, vm ValueMap, cell maze.Cell, objective Objective) (float64, error) {
	var best float64
	for i, d := range maze.Cardinals {
		ev, err := ExpectedValue(grid, vm, cell, d)
		if err != nil {
			return 0, err
		}
		switch {
		case i == 0:
			best = ev
		case objective == Minimize:
			best = math.Min(best, ev)
		default:
			best = math.Max(best, ev)
		}
	}
	return best, nil
}

// ExpectedValue returns the expected utility of intending to move from cell in direction d
// under the slip model, with blocked outcomes bouncing back to cell.
func ExpectedValue(grid *maze.Grid, vm ValueMap, cell maze.Cell, d maze.Direction) (float64, error) {
	left, right := d.Perpendicular()
	var ev float64
	for _, outcome := range [3]struct {
		dir  maze.Direction
		prob float64
	}{{d, intendedProb}, {left, slipProb}, {right, slipProb}} {
		v, err := outcomeValue(grid, vm, cell, outcome.dir)
		if err != nil {
			return 0, err
		}
		ev += outcome.prob * v
	}
	return ev, nil
}

// outcomeValue is the utility of landing after a move in direction d from cell.
func outcomeValue(grid *maze.Grid, vm ValueMap, cell maze.Cell, d maze.Direction) (float64, error) {
	target, err := grid.Neighbor(cell, d)
	if err != nil {
		return 0, err
	}
	if grid.Blocked(target) {
		target = cell
	}
	v, err := vm.At(target)
	if err != nil {
		return 0, err
	}
	return v.Value(), nil
}
