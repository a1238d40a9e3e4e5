package mdp

import (
	"github.com/beka-birhanu/vinom-mdp/game/maze"
)

// Option is one legal direction together with the utility of the cell it leads to.
type Option struct {
	Direction maze.Direction `json:"direction"`
	Utility   float64        `json:"utility"`
}

// Choice is the outcome of SelectAction.
type Choice struct {
	Direction  maze.Direction
	Considered []Option // in the order they were evaluated
}

// SelectAction picks the legal direction whose neighbouring cell has the greatest utility.
// Stop is never chosen. On equal utilities the direction that comes first in legal wins, so
// callers that need reproducible decisions must pass legal directions in a fixed order.
func SelectAction(legal []maze.Direction, vm ValueMap, grid *maze.Grid, current maze.Cell) (Choice, error) {
	var choice Choice
	found := false
	var best float64

	for _, d := range legal {
		if d == maze.Stop {
			continue
		}
		next, err := grid.Neighbor(current, d)
		if err != nil {
			return Choice{}, err
		}
		v, err := vm.At(next)
		if err != nil {
			return Choice{}, err
		}

		utility := v.Value()
		choice.Considered = append(choice.Considered, Option{Direction: d, Utility: utility})
		if !found || utility > best {
			choice.Direction = d
			best = utility
			found = true
		}
	}

	if !found {
		return Choice{}, ErrNoLegalMoves
	}
	return choice, nil
}
