package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"flagarena/internal/model"
)

type HintRepo interface {
	// TotalCost sums the hint costs the identity has paid on the challenge
	TotalCost(ctx context.Context, challengeID string, identity model.Identity) (int, error)
	Create(ctx context.Context, unlock *model.HintUnlock) error
}

type hintRepo struct {
	collection *mongo.Collection
}

func NewHintRepo(db *mongo.Database) HintRepo {
	return &hintRepo{
		collection: db.Collection("hint_unlocks"),
	}
}

func (r *hintRepo) TotalCost(ctx context.Context, challengeID string, identity model.Identity) (int, error) {
	cursor, err := r.collection.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"challengeId":   challengeID,
			"identity.kind": identity.Kind,
			"identity.id":   identity.ID,
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$cost"},
		}}},
	})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total int `bson:"total"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func (r *hintRepo) Create(ctx context.Context, unlock *model.HintUnlock) error {
	_, err := r.collection.InsertOne(ctx, unlock)
	return err
}
