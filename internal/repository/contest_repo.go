package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"flagarena/internal/model"
)

type ContestRepo interface {
	GetByID(ctx context.Context, id string) (*model.Contest, error)
	Create(ctx context.Context, contest *model.Contest) error
}

type contestRepo struct {
	collection *mongo.Collection
}

func NewContestRepo(db *mongo.Database) ContestRepo {
	return &contestRepo{
		collection: db.Collection("contests"),
	}
}

func (r *contestRepo) GetByID(ctx context.Context, id string) (*model.Contest, error) {
	var contest model.Contest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&contest)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &contest, nil
}

func (r *contestRepo) Create(ctx context.Context, contest *model.Contest) error {
	_, err := r.collection.InsertOne(ctx, contest)
	return err
}
