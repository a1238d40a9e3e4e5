package session

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-mdp/api/identity"
	"github.com/beka-birhanu/vinom-mdp/game"
	"github.com/beka-birhanu/vinom-mdp/game/maze"
	"github.com/beka-birhanu/vinom-mdp/service"
	"github.com/beka-birhanu/vinom-mdp/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokenizer struct {
	operatorID uuid.UUID
}

func (s staticTokenizer) Generate(map[string]interface{}, time.Duration) (string, error) {
	return "token", nil
}

func (s staticTokenizer) Decode(token string) (map[string]interface{}, error) {
	if token != "token" {
		return nil, assert.AnError
	}
	return map[string]interface{}{service.ClaimOperatorID: s.operatorID.String()}, nil
}

type fakeSessions struct {
	opened    uuid.UUID
	lastState game.State
	outcome   game.Outcome
	limit     int64
	err       error
}

func (f *fakeSessions) Open(uuid.UUID) uuid.UUID { return f.opened }

func (f *fakeSessions) Decide(_ context.Context, _, _ uuid.UUID, st game.State) (game.Decision, error) {
	f.lastState = st
	if f.err != nil {
		return game.Decision{}, f.err
	}
	return game.Decision{Direction: maze.East, Round: 1, Step: 1}, nil
}

func (f *fakeSessions) EndRound(_ context.Context, _, sessionID uuid.UUID, outcome game.Outcome, score float64) (game.RoundRecord, error) {
	f.outcome = outcome
	if f.err != nil {
		return game.RoundRecord{}, f.err
	}
	return game.RoundRecord{SessionID: sessionID, Round: 1, Outcome: outcome, Score: score}, nil
}

func (f *fakeSessions) Rounds(context.Context, uuid.UUID, uuid.UUID) ([]game.RoundRecord, error) {
	return nil, f.err
}

func (f *fakeSessions) Close(uuid.UUID, uuid.UUID) error { return f.err }

func (f *fakeSessions) Leaderboard(_ context.Context, limit int64) ([]i.ScoreEntry, error) {
	f.limit = limit
	return []i.ScoreEntry{{Member: "op", Score: 10}}, f.err
}

func newTestRouter(sessions i.SessionManager, operatorID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	protected := router.Group("/api/v1")
	protected.Use(identity.Authoriz(staticTokenizer{operatorID: operatorID}))
	NewController(sessions).RegisterProtected(protected)
	return router
}

func do(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSessionController(t *testing.T) {
	operatorID := uuid.New()
	sessionID := uuid.New()
	fake := &fakeSessions{opened: sessionID}
	router := newTestRouter(fake, operatorID)
	base := "/api/v1/sessions/" + sessionID.String()

	t.Run("Unauthorized without token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Open", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/api/v1/sessions", nil)
		require.Equal(t, http.StatusCreated, w.Code)
		var resp OpenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, sessionID, resp.ID)
		assert.Equal(t, 1, resp.Round)
	})

	t.Run("Decide", func(t *testing.T) {
		w := do(t, router, http.MethodPost, base+"/decisions", gin.H{
			"walls":   []gin.H{{"x": 0, "y": 0}},
			"agent":   gin.H{"x": 1, "y": 1},
			"hazards": []gin.H{{"x": 2.5, "y": 1, "vulnerable": true}},
			"legal":   []string{"West", "Stop", "East"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"direction":"East"`)
		assert.Equal(t, maze.Cell{X: 1, Y: 1}, fake.lastState.Agent)
		assert.Equal(t, []maze.Direction{maze.West, maze.Stop, maze.East}, fake.lastState.Legal)
		require.Len(t, fake.lastState.Hazards, 1)
		assert.True(t, fake.lastState.Hazards[0].Vulnerable)
	})

	t.Run("Decide rejects unknown directions", func(t *testing.T) {
		w := do(t, router, http.MethodPost, base+"/decisions", gin.H{
			"agent": gin.H{"x": 1, "y": 1},
			"legal": []string{"Up"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Decide needs an agent", func(t *testing.T) {
		w := do(t, router, http.MethodPost, base+"/decisions", gin.H{"legal": []string{"East"}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid session id", func(t *testing.T) {
		w := do(t, router, http.MethodDelete, "/api/v1/sessions/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("End round", func(t *testing.T) {
		w := do(t, router, http.MethodPost, base+"/rounds", gin.H{"outcome": "win", "score": 120})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, game.OutcomeWin, fake.outcome)

		w = do(t, router, http.MethodPost, base+"/rounds", gin.H{"outcome": "draw"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Rounds returns an empty list", func(t *testing.T) {
		w := do(t, router, http.MethodGet, base+"/rounds", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("Leaderboard limit", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/api/v1/leaderboard?limit=500", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(maxBoardLimit), fake.limit)

		w = do(t, router, http.MethodGet, "/api/v1/leaderboard?limit=-1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error mapping", func(t *testing.T) {
		cases := []struct {
			err  error
			code int
		}{
			{service.ErrSessionNotFound, http.StatusNotFound},
			{service.ErrNotOwner, http.StatusForbidden},
			{maze.ErrUnknownCell, http.StatusUnprocessableEntity},
			{assert.AnError, http.StatusInternalServerError},
		}
		for _, tc := range cases {
			fake.err = tc.err
			w := do(t, router, http.MethodDelete, base, nil)
			assert.Equal(t, tc.code, w.Code, tc.err.Error())
		}
		fake.err = nil

		w := do(t, router, http.MethodDelete, base, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
