package game

import (
	"testing"

	"github.com/beka-birhanu/vinom-mdp/game/mdp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutcome(t *testing.T) {
	for _, s := range []string{"", "win", "lose"} {
		o, err := ParseOutcome(s)
		require.NoError(t, err)
		assert.Equal(t, Outcome(s), o)
	}

	_, err := ParseOutcome("draw")
	assert.ErrorIs(t, err, ErrUnknownOutcome)
}

func TestSessionRounds(t *testing.T) {
	session := NewSession(uuid.New(), uuid.New())
	assert.Equal(t, 1, session.Round())
	assert.Zero(t, session.Steps())

	state := corridorState(t, "#.A.G#")
	first, err := session.Grid(state.Walls)
	require.NoError(t, err)
	again, err := session.Grid(nil)
	require.NoError(t, err)
	assert.Same(t, first, again)

	session.step()
	session.step()
	assert.Equal(t, 2, session.Steps())

	session.EndRound()
	assert.Equal(t, 2, session.Round())
	assert.Zero(t, session.Steps())

	rebuilt, err := session.Grid(state.Walls)
	require.NoError(t, err)
	assert.NotSame(t, first, rebuilt)
}

func TestAgentRoundRecord(t *testing.T) {
	agent := newTestAgent(t, func(c *Config) { c.Mode = mdp.ModeOffensive })
	session := NewSession(uuid.New(), uuid.New())

	_, err := agent.Decide(session, corridorState(t, "#.A.G#"))
	require.NoError(t, err)

	rec := agent.RoundRecord(session, OutcomeWin, 1240)
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, session.ID, rec.SessionID)
	assert.Equal(t, session.OperatorID, rec.OperatorID)
	assert.Equal(t, 1, rec.Round)
	assert.Equal(t, 1, rec.Steps)
	assert.Equal(t, -350.0, rec.SafetyFloor)
	assert.Equal(t, 50.0, rec.DecayRate)
	assert.Equal(t, 0.6, rec.Discount)
	assert.Equal(t, 0.0001, rec.Tolerance)
	assert.Equal(t, 100, rec.DefaultBudget)
	assert.Equal(t, 200, rec.SparseBudget)
	assert.Equal(t, mdp.ModeOffensive, rec.Mode)
	assert.Equal(t, OutcomeWin, rec.Outcome)
	assert.Equal(t, 1240.0, rec.Score)
	assert.False(t, rec.EndedAt.IsZero())

	// the record leaves the session untouched
	assert.Equal(t, 1, session.Steps())
}
