package game

import (
	"github.com/beka-birhanu/vinom-mdp/game/maze"
	"github.com/google/uuid"
)

// Session is the memory an agent keeps between decision steps. It is owned by the caller and
// handed to every Agent.Decide call. Only the maze grid is cached; it is built on the first step
// of a round and read-only until EndRound drops it.
//
// A Session is not safe for concurrent use. Callers must serialise the steps of one session.
type Session struct {
	ID         uuid.UUID
	OperatorID uuid.UUID

	round int
	steps int
	grid  *maze.Grid
}

// NewSession returns a session at the start of its first round.
func NewSession(id, operatorID uuid.UUID) *Session {
	return &Session{ID: id, OperatorID: operatorID, round: 1}
}

// Grid returns the cached grid of the current round, building it from walls on first use.
// Walls passed on later steps of the same round are ignored.
func (s *Session) Grid(walls []maze.Cell) (*maze.Grid, error) {
	if s.grid != nil {
		return s.grid, nil
	}
	grid, err := maze.NewGrid(walls)
	if err != nil {
		return nil, err
	}
	s.grid = grid
	return grid, nil
}

// Round returns the 1-based number of the current round.
func (s *Session) Round() int {
	return s.round
}

// Steps returns the number of decisions taken in the current round.
func (s *Session) Steps() int {
	return s.steps
}

// EndRound drops the round's cached grid and step count and moves to the next round.
func (s *Session) EndRound() {
	s.grid = nil
	s.steps = 0
	s.round++
}

func (s *Session) step() int {
	s.steps++
	return s.steps
}
