package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"flagarena/internal/model"
)

type ChallengeRepo interface {
	GetByID(ctx context.Context, id string) (*model.Challenge, error)
	GetBySlug(ctx context.Context, contestID, slug string) (*model.Challenge, error)
	ListByContest(ctx context.Context, contestID string) ([]*model.Challenge, error)
	Create(ctx context.Context, challenge *model.Challenge) error
}

type challengeRepo struct {
	collection *mongo.Collection
}

func NewChallengeRepo(db *mongo.Database) ChallengeRepo {
	return &challengeRepo{
		collection: db.Collection("challenges"),
	}
}

func (r *challengeRepo) GetByID(ctx context.Context, id string) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&challenge)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &challenge, nil
}

func (r *challengeRepo) GetBySlug(ctx context.Context, contestID, slug string) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.collection.FindOne(ctx, bson.M{"contestId": contestID, "slug": slug}).Decode(&challenge)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &challenge, nil
}

func (r *challengeRepo) ListByContest(ctx context.Context, contestID string) ([]*model.Challenge, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"contestId": contestID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var challenges []*model.Challenge
	if err = cursor.All(ctx, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

func (r *challengeRepo) Create(ctx context.Context, challenge *model.Challenge) error {
	_, err := r.collection.InsertOne(ctx, challenge)
	return err
}
