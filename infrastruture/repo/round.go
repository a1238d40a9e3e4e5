package repo

import (
	"context"
	"fmt"

	"github.com/beka-birhanu/vinom-mdp/game"
	"github.com/beka-birhanu/vinom-mdp/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.RoundRepo = &RoundRepo{}

// RoundRepo stores finished-round records.
type RoundRepo struct {
	collection *mongo.Collection
}

// NewRoundRepo creates a RoundRepo over the named collection.
func NewRoundRepo(client *mongo.Client, dbName, collectionName string) *RoundRepo {
	return &RoundRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// EnsureIndexes creates the index used to list a session's rounds.
func (r *RoundRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "sessionId", Value: 1}, {Key: "round", Value: 1}},
	})
	return err
}

// Insert stores one record.
func (r *RoundRepo) Insert(ctx context.Context, rec game.RoundRecord) error {
	if _, err := r.collection.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("inserting round record: %w", err)
	}
	return nil
}

// BySession returns the session's records ordered by round.
func (r *RoundRepo) BySession(ctx context.Context, sessionID uuid.UUID) ([]game.RoundRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "round", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("finding round records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []game.RoundRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decoding round records: %w", err)
	}
	return records, nil
}
