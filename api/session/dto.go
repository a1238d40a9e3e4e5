// Package session exposes solver sessions over HTTP.
package session

import (
	"github.com/beka-birhanu/vinom-mdp/game"
	"github.com/beka-birhanu/vinom-mdp/game/maze"
	"github.com/beka-birhanu/vinom-mdp/game/mdp"
	"github.com/google/uuid"
)

// OpenResponse is returned when a session is opened.
type OpenResponse struct {
	ID    uuid.UUID `json:"id"`
	Round int       `json:"round"`
}

// HazardDTO is a hazard as reported by the host.
type HazardDTO struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Vulnerable bool    `json:"vulnerable"`
}

// DecisionRequest is the host's view of the board for one step.
type DecisionRequest struct {
	Walls        []maze.Cell `json:"walls"`
	Agent        *maze.Cell  `json:"agent" binding:"required"`
	Collectibles []maze.Cell `json:"collectibles"`
	PowerPickups []maze.Cell `json:"power_pickups"`
	Hazards      []HazardDTO `json:"hazards"`
	Legal        []string    `json:"legal" binding:"required"`
}

// State converts the request into a game.State, rejecting unknown direction names.
func (r DecisionRequest) State() (game.State, error) {
	legal := make([]maze.Direction, 0, len(r.Legal))
	for _, name := range r.Legal {
		d, err := maze.ParseDirection(name)
		if err != nil {
			return game.State{}, err
		}
		legal = append(legal, d)
	}

	hazards := make([]mdp.HazardState, 0, len(r.Hazards))
	for _, h := range r.Hazards {
		hazards = append(hazards, mdp.HazardState{
			Position:   maze.Point{X: h.X, Y: h.Y},
			Vulnerable: h.Vulnerable,
		})
	}

	return game.State{
		Walls:        r.Walls,
		Agent:        *r.Agent,
		Collectibles: r.Collectibles,
		PowerPickups: r.PowerPickups,
		Hazards:      hazards,
		Legal:        legal,
	}, nil
}

// RoundRequest ends the current round.
type RoundRequest struct {
	Outcome string  `json:"outcome"`
	Score   float64 `json:"score"`
}
