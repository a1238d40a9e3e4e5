package i

import (
	"context"

	"github.com/beka-birhanu/vinom-mdp/game"
	"github.com/beka-birhanu/vinom-mdp/identity"
	"github.com/google/uuid"
)

// OperatorRepo defines the interface for operator persistence operations.
type OperatorRepo interface {
	// Save inserts or updates an operator in the repository.
	// If the operator already exists, it updates the record. Otherwise, it creates a new one.
	Save(op *identity.Operator) error

	// ByID retrieves an operator by their unique ID.
	// Returns an error if the operator is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*identity.Operator, error)

	// ByName retrieves an operator by their name.
	// Returns an error if the operator is not found or in case of an unexpected error.
	ByName(name string) (*identity.Operator, error)
}

// RoundRepo stores the records of finished rounds.
type RoundRepo interface {
	Insert(ctx context.Context, rec game.RoundRecord) error

	// BySession returns a session's records in round order.
	BySession(ctx context.Context, sessionID uuid.UUID) ([]game.RoundRecord, error)
}
