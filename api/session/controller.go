package session

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/vinom-mdp/api/identity"
	"github.com/beka-birhanu/vinom-mdp/game"
	"github.com/beka-birhanu/vinom-mdp/game/maze"
	"github.com/beka-birhanu/vinom-mdp/game/mdp"
	"github.com/beka-birhanu/vinom-mdp/service"
	"github.com/beka-birhanu/vinom-mdp/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	decisionTimeout   = 2 * time.Second
	storeTimeout      = 3 * time.Second
	defaultBoardLimit = 10
	maxBoardLimit     = 100
)

// Controller serves solver sessions and the leaderboard.
type Controller struct {
	sessions i.SessionManager
}

// NewController creates a session Controller.
func NewController(sm i.SessionManager) *Controller {
	return &Controller{sessions: sm}
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {
	sessions := route.Group("/sessions")
	{
		sessions.POST("", c.open)
		sessions.POST("/:ID/decisions", c.decide)
		sessions.POST("/:ID/rounds", c.endRound)
		sessions.GET("/:ID/rounds", c.rounds)
		sessions.DELETE("/:ID", c.close)
	}
	route.GET("/leaderboard", c.leaderboard)
}

func (c *Controller) open(ctx *gin.Context) {
	operatorID, ok := identity.OperatorID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	id := c.sessions.Open(operatorID)
	ctx.JSON(http.StatusCreated, &OpenResponse{ID: id, Round: 1})
}

func (c *Controller) decide(ctx *gin.Context) {
	operatorID, sessionID, ok := ids(ctx)
	if !ok {
		return
	}

	var request DecisionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, err := request.State()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, decisionTimeout)
	defer cancel()
	decision, err := c.sessions.Decide(timeoutCtx, operatorID, sessionID, st)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, decision)
}

func (c *Controller) endRound(ctx *gin.Context) {
	operatorID, sessionID, ok := ids(ctx)
	if !ok {
		return
	}

	var request RoundRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	outcome, err := game.ParseOutcome(request.Outcome)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	rec, err := c.sessions.EndRound(timeoutCtx, operatorID, sessionID, outcome, request.Score)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, rec)
}

func (c *Controller) rounds(ctx *gin.Context) {
	operatorID, sessionID, ok := ids(ctx)
	if !ok {
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	recs, err := c.sessions.Rounds(timeoutCtx, operatorID, sessionID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if recs == nil {
		recs = []game.RoundRecord{}
	}

	ctx.JSON(http.StatusOK, recs)
}

func (c *Controller) close(ctx *gin.Context) {
	operatorID, sessionID, ok := ids(ctx)
	if !ok {
		return
	}

	if err := c.sessions.Close(operatorID, sessionID); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *Controller) leaderboard(ctx *gin.Context) {
	limit := int64(defaultBoardLimit)
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxBoardLimit)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	entries, err := c.sessions.Leaderboard(timeoutCtx, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if entries == nil {
		entries = []i.ScoreEntry{}
	}

	ctx.JSON(http.StatusOK, entries)
}

func ids(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	operatorID, ok := identity.OperatorID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, uuid.Nil, false
	}
	return operatorID, sessionID, true
}

func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotOwner):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, maze.ErrDegenerateMaze),
		errors.Is(err, maze.ErrUnknownCell),
		errors.Is(err, maze.ErrUnknownDirection),
		errors.Is(err, mdp.ErrNoLegalMoves),
		errors.Is(err, mdp.ErrCellNotMapped),
		errors.Is(err, game.ErrIllegalMove):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
	}
}
