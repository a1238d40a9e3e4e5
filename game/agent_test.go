package game

import (
	"bytes"
	"log"
	"math/rand"
	"slices"
	"testing"

	"github.com/beka-birhanu/vinom-mdp/game/maze"
	"github.com/beka-birhanu/vinom-mdp/game/mdp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgent(t *testing.T, mutate func(*Config)) *Agent {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	agent, err := NewAgent(cfg)
	require.NoError(t, err)
	return agent
}

func corridorState(t *testing.T, row string) State {
	t.Helper()
	border := make([]byte, len(row))
	for i := range border {
		border[i] = '#'
	}
	layout := maze.ParseLayout(string(border), row, string(border))
	agent, ok := layout.Mark('A')
	require.True(t, ok)
	return State{
		Walls:        layout.Walls,
		Agent:        agent,
		Collectibles: layout.Marks['G'],
		Legal:        []maze.Direction{maze.West, maze.Stop, maze.East},
	}
}

func TestNewAgentValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero discount", func(c *Config) { c.Discount = 0 }},
		{"discount above one", func(c *Config) { c.Discount = 1.5 }},
		{"non-positive tolerance", func(c *Config) { c.Tolerance = 0 }},
		{"zero budget", func(c *Config) { c.DefaultBudget = 0 }},
		{"zero sparse budget", func(c *Config) { c.SparseBudget = 0 }},
		{"zero safety distance", func(c *Config) { c.SafetyDistance = 0 }},
		{"zero decay", func(c *Config) { c.DecayRate = 0 }},
		{"positive hazard", func(c *Config) { c.HazardValue = 5 }},
		{"unknown mode", func(c *Config) { c.Mode = "berserk" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			_, err := NewAgent(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	t.Run("defaults are valid", func(t *testing.T) {
		_, err := NewAgent(DefaultConfig())
		assert.NoError(t, err)
	})
}

func TestDefaultConfigSafetyFloor(t *testing.T) {
	assert.Equal(t, -350.0, DefaultConfig().SafetyFloor())
}

func TestDecideMovesTowardsCollectible(t *testing.T) {
	agent := newTestAgent(t, nil)
	session := NewSession(uuid.New(), uuid.New())
	state := corridorState(t, "#.A.G#")

	decision, err := agent.Decide(session, state)
	require.NoError(t, err)
	assert.Equal(t, maze.East, decision.Direction)
	assert.Equal(t, mdp.SourceCollectibles, decision.Source)
	assert.True(t, decision.Converged)
	assert.Equal(t, 1, decision.Round)
	assert.Equal(t, 1, decision.Step)
	require.Len(t, decision.Options, 2)
	assert.Equal(t, maze.West, decision.Options[0].Direction)
	assert.Equal(t, maze.East, decision.Options[1].Direction)
	assert.Greater(t, decision.Options[1].Utility, decision.Options[0].Utility)
}

func TestDecideAvoidsHazard(t *testing.T) {
	agent := newTestAgent(t, nil)
	session := NewSession(uuid.New(), uuid.New())
	state := corridorState(t, "#G.A..#")
	state.Hazards = []mdp.HazardState{{Position: maze.Point{X: 5.4, Y: 1}}}

	decision, err := agent.Decide(session, state)
	require.NoError(t, err)
	assert.Equal(t, maze.West, decision.Direction)
	assert.Less(t, decision.Options[1].Utility, 0.0)
}

func TestDecideDefensiveHuntsVulnerableHazard(t *testing.T) {
	agent := newTestAgent(t, func(c *Config) { c.Mode = mdp.ModeDefensive })
	session := NewSession(uuid.New(), uuid.New())
	state := corridorState(t, "#G.A..#")
	state.Hazards = []mdp.HazardState{{Position: maze.Point{X: 5.5, Y: 1}, Vulnerable: true}}

	decision, err := agent.Decide(session, state)
	require.NoError(t, err)
	assert.Equal(t, mdp.SourceVulnerableHazard, decision.Source)
	assert.Equal(t, maze.East, decision.Direction)
}

func TestDecideReusesRoundGrid(t *testing.T) {
	agent := newTestAgent(t, nil)
	session := NewSession(uuid.New(), uuid.New())
	state := corridorState(t, "#.A.G#")

	_, err := agent.Decide(session, state)
	require.NoError(t, err)

	state.Walls = nil
	state.Agent = maze.Cell{X: 3, Y: 1}
	decision, err := agent.Decide(session, state)
	require.NoError(t, err)
	assert.Equal(t, maze.East, decision.Direction)
	assert.Equal(t, 2, decision.Step)

	session.EndRound()
	_, err = agent.Decide(session, state)
	assert.ErrorIs(t, err, maze.ErrDegenerateMaze)
}

func TestDecideRejectsMalformedStates(t *testing.T) {
	agent := newTestAgent(t, nil)

	t.Run("agent on a wall", func(t *testing.T) {
		state := corridorState(t, "#.A.G#")
		state.Agent = maze.Cell{X: 0, Y: 1}
		_, err := agent.Decide(NewSession(uuid.New(), uuid.New()), state)
		assert.ErrorIs(t, err, maze.ErrUnknownCell)
	})

	t.Run("only stop is legal", func(t *testing.T) {
		state := corridorState(t, "#.A.G#")
		state.Legal = []maze.Direction{maze.Stop}
		_, err := agent.Decide(NewSession(uuid.New(), uuid.New()), state)
		assert.ErrorIs(t, err, mdp.ErrNoLegalMoves)
	})

	t.Run("failed step is not counted", func(t *testing.T) {
		session := NewSession(uuid.New(), uuid.New())
		state := corridorState(t, "#.A.G#")
		state.Legal = nil
		_, err := agent.Decide(session, state)
		require.Error(t, err)
		assert.Zero(t, session.Steps())
	})
}

func TestDecideVerboseLogging(t *testing.T) {
	var buf bytes.Buffer
	agent := newTestAgent(t, func(c *Config) {
		c.Verbose = true
		c.Logger = log.New(&buf, "", 0)
	})

	_, err := agent.Decide(NewSession(uuid.New(), uuid.New()), corridorState(t, "#.A.G#"))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[DEBUG]")
	assert.Contains(t, out, "action=East")
	assert.Contains(t, out, "x=5")
}

func TestDecideOnGeneratedMazes(t *testing.T) {
	agent := newTestAgent(t, nil)

	for seed := int64(1); seed <= 5; seed++ {
		walls, err := maze.GenerateWalls(6, 4, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		grid, err := maze.NewGrid(walls)
		require.NoError(t, err)

		floors := grid.Floors()
		start := floors[0]
		neighbors, err := grid.Neighbors(start)
		require.NoError(t, err)

		legal := []maze.Direction{maze.Stop}
		for _, d := range maze.Cardinals {
			if !grid.Blocked(neighbors[d]) {
				legal = append(legal, d)
			}
		}

		decision, err := agent.Decide(NewSession(uuid.New(), uuid.New()), State{
			Walls:        walls,
			Agent:        start,
			Collectibles: floors[len(floors)-1:],
			Legal:        legal,
		})
		require.NoError(t, err, "seed %d", seed)
		assert.True(t, slices.Contains(legal, decision.Direction), "seed %d", seed)
		assert.NotEqual(t, maze.Stop, decision.Direction)
	}
}
