package mdp

import (
	"github.com/beka-birhanu/vinom-mdp/game/maze"
)

// RewardParams configures the initial reward map of one decision step.
type RewardParams struct {
	Targets        []maze.Cell  // Cells that carry TargetValue.
	TargetValue    float64      // Reward of a target cell.
	Hazards        []maze.Point // Dangerous hazards; snapped to cells before use.
	HazardValue    float64      // Penalty at a hazard's own cell, e.g. -500.
	SafetyDistance int          // Number of BFS rings, hazard cell included, that carry a penalty.
	DecayRate      float64      // Penalty recovered per BFS step away from a hazard.
}

// floor is the least negative score a cell inside a hazard's range can be expanded from.
func (p RewardParams) floor() float64 {
	return p.HazardValue + p.DecayRate*float64(p.SafetyDistance-1)
}

// BuildRewardMap returns the seed value map for value iteration: walls at zero, free floor at
// zero, targets at TargetValue and a decaying penalty around every hazard.
func BuildRewardMap(grid *maze.Grid, p RewardParams) ValueMap {
	vm := make(ValueMap, grid.Bounds().Width()*grid.Bounds().Height())
	for _, w := range grid.Walls() {
		vm[w] = Wall{}
	}

	for _, f := range grid.Floors() {
		vm[f] = Free{}
	}
	for _, t := range p.Targets {
		if grid.IsFloor(t) {
			vm[t] = Target{Score: p.TargetValue}
		}
	}

	for _, h := range p.Hazards {
		source := h.Snap()
		if !grid.IsFloor(source) {
			continue
		}
		spreadHazard(grid, vm, source, p)
	}
	return vm
}

// spreadHazard marks source as a hazard and propagates its decaying penalty breadth first.
// A cell only takes a candidate penalty that is strictly worse than what it already holds, so a
// closer hazard always wins over a farther one and targets are never touched.
func spreadHazard(grid *maze.Grid, vm ValueMap, source maze.Cell, p RewardParams) {
	vm[source] = Hazard{Score: p.HazardValue}

	queue := []maze.Cell{source}
	visited := map[maze.Cell]struct{}{source: {}}
	floor := p.floor()

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		score := vm[current].Value()
		if score >= floor || score >= -p.DecayRate {
			continue
		}

		for _, d := range maze.Cardinals {
			next := current.Step(d)
			if grid.Blocked(next) {
				continue
			}
			if _, seen := visited[next]; seen {
				continue
			}
			existing := vm[next]
			if existing.Kind() == KindTarget || existing.Value() <= score {
				continue
			}
			vm[next] = Hazard{Score: score + p.DecayRate}
			queue = append(queue, next)
			visited[next] = struct{}{}
		}
	}
}
