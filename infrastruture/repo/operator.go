package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-mdp/identity"
	"github.com/beka-birhanu/vinom-mdp/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.OperatorRepo = &OperatorRepo{}

// OperatorRepo handles the persistence of operators.
type OperatorRepo struct {
	collection *mongo.Collection
}

// NewOperatorRepo creates a new OperatorRepo with the given MongoDB client, database name, and collection name.
func NewOperatorRepo(client *mongo.Client, dbName, collectionName string) *OperatorRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &OperatorRepo{
		collection: collection,
	}
}

// EnsureIndexes creates the unique index on operator names.
func (o *OperatorRepo) EnsureIndexes(ctx context.Context) error {
	_, err := o.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Save inserts or updates an operator in the repository.
func (o *OperatorRepo) Save(op *identity.Operator) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	filter := bson.M{"_id": op.ID}
	update := bson.M{
		"$set": bson.M{
			"name":         op.Name,
			"passwordHash": op.PasswordHash,
			"updatedAt":    time.Now(),
		},
		"$setOnInsert": bson.M{
			"createdAt": op.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := o.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return identity.ErrNameConflict
		}
		return fmt.Errorf("unexpected error: %w", err)
	}

	return nil
}

// ByID retrieves an operator by ID.
func (o *OperatorRepo) ByID(id uuid.UUID) (*identity.Operator, error) {
	return o.findOne(bson.M{"_id": id})
}

// ByName retrieves an operator by name.
func (o *OperatorRepo) ByName(name string) (*identity.Operator, error) {
	return o.findOne(bson.M{"name": name})
}

func (o *OperatorRepo) findOne(filter bson.M) (*identity.Operator, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var op identity.Operator
	if err := o.collection.FindOne(ctx, filter).Decode(&op); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, identity.ErrOperatorMissing
		}
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	return &op, nil
}
