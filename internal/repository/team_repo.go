package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"flagarena/internal/model"
)

type TeamRepo interface {
	GetByID(ctx context.Context, id string) (*model.Team, error)
	// GetMemberTeam returns the account's current team in the contest, or
	// (nil, nil) when the account has not joined one.
	GetMemberTeam(ctx context.Context, contestID, accountID string) (*model.Team, error)
	GetMemberName(ctx context.Context, contestID, accountID string) (string, error)
	Create(ctx context.Context, team *model.Team) error
	AddMember(ctx context.Context, member *model.TeamMember) error
}

type teamRepo struct {
	teams   *mongo.Collection
	members *mongo.Collection
}

func NewTeamRepo(db *mongo.Database) TeamRepo {
	return &teamRepo{
		teams:   db.Collection("teams"),
		members: db.Collection("team_members"),
	}
}

func (r *teamRepo) GetByID(ctx context.Context, id string) (*model.Team, error) {
	var team model.Team
	err := r.teams.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepo) GetMemberTeam(ctx context.Context, contestID, accountID string) (*model.Team, error) {
	var member model.TeamMember
	err := r.members.FindOne(ctx, bson.M{"contestId": contestID, "accountId": accountID}).Decode(&member)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return r.GetByID(ctx, member.TeamID)
}

func (r *teamRepo) GetMemberName(ctx context.Context, contestID, accountID string) (string, error) {
	var member model.TeamMember
	err := r.members.FindOne(ctx, bson.M{"contestId": contestID, "accountId": accountID}).Decode(&member)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil
		}
		return "", err
	}
	return member.Username, nil
}

func (r *teamRepo) Create(ctx context.Context, team *model.Team) error {
	_, err := r.teams.InsertOne(ctx, team)
	return err
}

func (r *teamRepo) AddMember(ctx context.Context, member *model.TeamMember) error {
	_, err := r.members.InsertOne(ctx, member)
	return err
}
