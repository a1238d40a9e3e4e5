package game

import (
	"github.com/beka-birhanu/vinom-mdp/game/maze"
	"github.com/beka-birhanu/vinom-mdp/game/mdp"
)

// State is everything the host reports for one decision step.
type State struct {
	Walls        []maze.Cell       `json:"walls"`
	Agent        maze.Cell         `json:"agent"`
	Collectibles []maze.Cell       `json:"collectibles"`
	PowerPickups []maze.Cell       `json:"power_pickups"`
	Hazards      []mdp.HazardState `json:"hazards"`
	Legal        []maze.Direction  `json:"legal"` // legal directions in the host's canonical order
}

// Decision is the move chosen for one step together with how it was reached.
type Decision struct {
	Direction maze.Direction   `json:"direction"`
	Source    mdp.TargetSource `json:"source"`
	Passes    int              `json:"passes"`
	Converged bool             `json:"converged"`
	Options   []mdp.Option     `json:"options"`
	Round     int              `json:"round"`
	Step      int              `json:"step"`
}
