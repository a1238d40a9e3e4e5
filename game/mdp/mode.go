package mdp

import (
	"fmt"

	"github.com/beka-birhanu/vinom-mdp/game/maze"
)

// Mode selects which cells the agent is drawn to.
type Mode string

const (
	// ModeInactive chases collectibles and treats every hazard as dangerous.
	ModeInactive Mode = "inactive"
	// ModeDefensive chases vulnerable hazards when there are any, collectibles otherwise.
	ModeDefensive Mode = "defensive"
	// ModeOffensive chases vulnerable hazards, then power pickups, then collectibles.
	ModeOffensive Mode = "offensive"
)

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeInactive, ModeDefensive, ModeOffensive:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// TargetSource names where the targets of a plan came from.
type TargetSource string

const (
	SourceCollectibles     TargetSource = "collectibles"
	SourceVulnerableHazard TargetSource = "vulnerable_hazards"
	SourcePowerPickups     TargetSource = "power_pickups"
)

// HazardState is a hazard as reported by the host.
type HazardState struct {
	Position   maze.Point `json:"position"`
	Vulnerable bool       `json:"vulnerable"`
}

// Planner holds the reward constants and iteration budgets the mode controller picks from.
type Planner struct {
	CollectibleValue      float64
	PowerPickupValue      float64
	VulnerableHazardValue float64
	DefaultBudget         int
	SparseBudget          int
	SparseThreshold       int // collectible count below which the sparse budget applies
}

// Plan is the target set and budget chosen for one decision step.
type Plan struct {
	Source      TargetSource
	Targets     []maze.Cell
	TargetValue float64
	Dangerous   []maze.Point // hazards that radiate a penalty
	Vulnerable  []maze.Point
	Budget      int
}

// Plan chooses the targets, target value, dangerous hazards and iteration budget for mode.
func (p Planner) Plan(mode Mode, collectibles, pickups []maze.Cell, hazards []HazardState) Plan {
	var vulnerable, dangerous, all []maze.Point
	for _, h := range hazards {
		all = append(all, h.Position)
		if h.Vulnerable {
			vulnerable = append(vulnerable, h.Position)
		} else {
			dangerous = append(dangerous, h.Position)
		}
	}

	switch {
	case (mode == ModeDefensive || mode == ModeOffensive) && len(vulnerable) > 0:
		return Plan{
			Source:      SourceVulnerableHazard,
			Targets:     snapAll(vulnerable),
			TargetValue: p.VulnerableHazardValue,
			Dangerous:   dangerous,
			Vulnerable:  vulnerable,
			Budget:      p.SparseBudget,
		}
	case mode == ModeOffensive && len(pickups) > 0:
		return Plan{
			Source:      SourcePowerPickups,
			Targets:     pickups,
			TargetValue: p.PowerPickupValue,
			Dangerous:   all,
			Vulnerable:  vulnerable,
			Budget:      p.SparseBudget,
		}
	}

	budget := p.DefaultBudget
	if len(collectibles) < p.SparseThreshold {
		budget = p.SparseBudget
	}
	return Plan{
		Source:      SourceCollectibles,
		Targets:     collectibles,
		TargetValue: p.CollectibleValue,
		Dangerous:   all,
		Vulnerable:  vulnerable,
		Budget:      budget,
	}
}

func snapAll(points []maze.Point) []maze.Cell {
	cells := make([]maze.Cell, 0, len(points))
	for _, pt := range points {
		cells = append(cells, pt.Snap())
	}
	return cells
}
