package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"flagarena/internal/model"
)

// SubmissionFilter narrows admin audit queries. Zero values are ignored.
type SubmissionFilter struct {
	ContestID     string
	ChallengeID   string
	AccountID     string
	IdentityID    string
	Status        model.SubmissionStatus
	SuspectedOnly bool
	Limit         int64
}

type SubmissionRepo interface {
	Create(ctx context.Context, sub *model.Submission) error
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	List(ctx context.Context, filter SubmissionFilter) ([]*model.Submission, error)
	ListByFlag(ctx context.Context, contestID, flag string) ([]*model.Submission, error)
	SetSuspected(ctx context.Context, id string, suspected bool) (bool, error)
}

type submissionRepo struct {
	collection *mongo.Collection
}

func NewSubmissionRepo(db *mongo.Database) SubmissionRepo {
	return &submissionRepo{
		collection: db.Collection("submissions"),
	}
}

func (r *submissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	_, err := r.collection.InsertOne(ctx, sub)
	return err
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	var sub model.Submission
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepo) List(ctx context.Context, filter SubmissionFilter) ([]*model.Submission, error) {
	query := bson.M{}
	if filter.ContestID != "" {
		query["contestId"] = filter.ContestID
	}
	if filter.ChallengeID != "" {
		query["challengeId"] = filter.ChallengeID
	}
	if filter.AccountID != "" {
		query["accountId"] = filter.AccountID
	}
	if filter.IdentityID != "" {
		query["identity.id"] = filter.IdentityID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.SuspectedOnly {
		query["suspected"] = true
	}

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	cursor, err := r.collection.Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []*model.Submission
	if err = cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// ListByFlag returns every attempt that submitted the given text, oldest
// first. Used to spot identities sharing per-identity derived flags.
func (r *submissionRepo) ListByFlag(ctx context.Context, contestID, flag string) ([]*model.Submission, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"contestId": contestID,
		"flag":      flag,
	}, options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []*model.Submission
	if err = cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *submissionRepo) SetSuspected(ctx context.Context, id string, suspected bool) (bool, error) {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"suspected": suspected}})
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}
