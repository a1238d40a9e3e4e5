package i

import (
	"context"

	"github.com/beka-birhanu/vinom-mdp/game"
	"github.com/google/uuid"
)

// SessionManager owns the live solver sessions of all operators.
type SessionManager interface {
	// Open starts a session for the operator and returns its ID.
	Open(operatorID uuid.UUID) uuid.UUID

	// Decide runs one decision step of the session.
	Decide(ctx context.Context, operatorID, sessionID uuid.UUID, st game.State) (game.Decision, error)

	// EndRound stores the round's record, scores it and starts the next round.
	EndRound(ctx context.Context, operatorID, sessionID uuid.UUID, outcome game.Outcome, score float64) (game.RoundRecord, error)

	// Rounds returns the stored records of the session's finished rounds.
	Rounds(ctx context.Context, operatorID, sessionID uuid.UUID) ([]game.RoundRecord, error)

	// Close drops the session.
	Close(operatorID, sessionID uuid.UUID) error

	// Leaderboard returns the best operators by total round score.
	Leaderboard(ctx context.Context, limit int64) ([]ScoreEntry, error)
}
