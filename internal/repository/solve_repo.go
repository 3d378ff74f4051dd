package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"flagarena/internal/model"
)

// ErrDuplicateSolve is returned when the unique (challenge, identity) index
// rejects a second solve. The judge relies on this to downgrade the loser of
// a submission race to a duplicate instead of erroring.
var ErrDuplicateSolve = errors.New("solve already exists for this identity")

type SolveRepo interface {
	Create(ctx context.Context, solve *model.Solve) error
	ExistsForIdentity(ctx context.Context, challengeID string, identity model.Identity) (bool, error)
	CountByChallenge(ctx context.Context, challengeID string) (int64, error)
	ListByChallenge(ctx context.Context, challengeID string) ([]*model.Solve, error)
	ListByContest(ctx context.Context, contestID string, until time.Time) ([]*model.Solve, error)
}

type solveRepo struct {
	collection *mongo.Collection
}

func NewSolveRepo(db *mongo.Database) SolveRepo {
	return &solveRepo{
		collection: db.Collection("solves"),
	}
}

// EnsureSolveIndexes creates the unique compound index that makes solve
// uniqueness a storage-layer guarantee rather than an application check.
func EnsureSolveIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("solves").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "challengeId", Value: 1},
			{Key: "identity.kind", Value: 1},
			{Key: "identity.id", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_challenge_identity"),
	})
	return err
}

func (r *solveRepo) Create(ctx context.Context, solve *model.Solve) error {
	_, err := r.collection.InsertOne(ctx, solve)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateSolve
	}
	return err
}

func (r *solveRepo) ExistsForIdentity(ctx context.Context, challengeID string, identity model.Identity) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{
		"challengeId":   challengeID,
		"identity.kind": identity.Kind,
		"identity.id":   identity.ID,
	}, options.Count().SetLimit(1))
	return n > 0, err
}

// CountByChallenge returns the number of distinct identities that solved the
// challenge. One document per identity is enforced by the unique index, so a
// plain document count suffices.
func (r *solveRepo) CountByChallenge(ctx context.Context, challengeID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"challengeId": challengeID})
}

func (r *solveRepo) ListByChallenge(ctx context.Context, challengeID string) ([]*model.Solve, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"challengeId": challengeID},
		options.Find().SetSort(bson.D{{Key: "rank", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var solves []*model.Solve
	if err = cursor.All(ctx, &solves); err != nil {
		return nil, err
	}
	return solves, nil
}

func (r *solveRepo) ListByContest(ctx context.Context, contestID string, until time.Time) ([]*model.Solve, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"contestId": contestID,
		"solvedAt":  bson.M{"$lte": until},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var solves []*model.Solve
	if err = cursor.All(ctx, &solves); err != nil {
		return nil, err
	}
	return solves, nil
}
