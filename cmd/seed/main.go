package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"flagarena/internal/config"
	"flagarena/internal/model"
	"flagarena/internal/repository"
	"flagarena/internal/service"
)

// Seeds a demo contest with one challenge per scoring/flag configuration and
// prints dev tokens for poking the API locally.
func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	if err := repository.EnsureSolveIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create solve indexes: %v", err)
	}

	contests := repository.NewContestRepo(db)
	challenges := repository.NewChallengeRepo(db)
	teams := repository.NewTeamRepo(db)

	now := time.Now()
	freeze := now.Add(47 * time.Hour)

	contest := &model.Contest{
		ID:         uuid.New().String(),
		Name:       "Flagarena Demo CTF",
		TeamBased:  true,
		StartTime:  now.Add(-time.Hour),
		EndTime:    now.Add(48 * time.Hour),
		FreezeTime: &freeze,
		CreatedAt:  now,
	}
	if err := contests.Create(ctx, contest); err != nil {
		log.Fatalf("Failed to create contest: %v", err)
	}

	seedChallenges := []*model.Challenge{
		{
			Slug: "warmup", Title: "Warmup",
			State:       model.ChallengeOpen,
			BasePoints:  100,
			ScoringMode: model.ScoringFixed,
			Flag:        "w3lc0me_t0_th3_ar3na", FlagMode: model.FlagFixed,
			FlagPrefix: "flag", CaseInsensitive: true,
			FirstBlood: model.FirstBloodNone,
		},
		{
			Slug: "heap-feng-shui", Title: "Heap Feng Shui",
			State:       model.ChallengeOpen,
			BasePoints:  1000,
			ScoringMode: model.ScoringDynamic, DecayType: model.DecayPercentage,
			DecayFactor: 0.9, MinScore: 100,
			Flag: "h34p_m4st3ry", FlagMode: model.FlagFixed,
			FlagPrefix: "flag",
			FirstBlood: model.FirstBloodBonus, FirstBloodCount: 3,
			FirstBloodBonus: []int{50, 30, 10},
		},
		{
			Slug: "rusty-rop", Title: "Rusty ROP",
			State:       model.ChallengeOpen,
			BasePoints:  500,
			ScoringMode: model.ScoringDynamic, DecayType: model.DecayFixedStep,
			DecayFactor: 25, MinScore: 150,
			Flag: "r0p_cha1n_g4ng", FlagMode: model.FlagFixed,
			FlagPrefix: "flag",
			FirstBlood: model.FirstBloodNoDecay, FirstBloodCount: 2,
		},
		{
			// per-team derived flag; Flag is the derivation seed
			Slug: "shared-secret", Title: "Shared Secret",
			State:       model.ChallengeOpen,
			BasePoints:  750,
			ScoringMode: model.ScoringDynamic, DecayType: model.DecayPercentage,
			DecayFactor: 0.85, MinScore: 200,
			Flag: "seed-7c1b", FlagMode: model.FlagDerived,
			FlagPrefix: "flag",
			FirstBlood: model.FirstBloodNone,
		},
	}
	for _, ch := range seedChallenges {
		ch.ID = uuid.New().String()
		ch.ContestID = contest.ID
		ch.CreatedAt = now
		ch.UpdatedAt = now
		if err := challenges.Create(ctx, ch); err != nil {
			log.Fatalf("Failed to create challenge %s: %v", ch.Slug, err)
		}
	}

	team := &model.Team{
		ID:        uuid.New().String(),
		ContestID: contest.ID,
		Name:      "Order of the Overflow",
		CreatedAt: now,
	}
	if err := teams.Create(ctx, team); err != nil {
		log.Fatalf("Failed to create team: %v", err)
	}

	accountID := uuid.New().String()
	member := &model.TeamMember{
		ID:        uuid.New().String(),
		TeamID:    team.ID,
		ContestID: contest.ID,
		AccountID: accountID,
		Username:  "pwn_wizard",
		JoinedAt:  now,
	}
	if err := teams.AddMember(ctx, member); err != nil {
		log.Fatalf("Failed to add team member: %v", err)
	}

	authSvc := service.NewAuthService(cfg.JWTSecret)
	userToken, err := authSvc.MintToken(accountID, false, 48*time.Hour)
	if err != nil {
		log.Fatalf("Failed to mint user token: %v", err)
	}
	adminToken, err := authSvc.MintToken(uuid.New().String(), true, 48*time.Hour)
	if err != nil {
		log.Fatalf("Failed to mint admin token: %v", err)
	}

	verifier := service.NewVerifier(cfg.FlagSecret)
	derived := verifier.DeriveFlag(seedChallenges[3], model.Identity{Kind: model.IdentityTeam, ID: team.ID})

	fmt.Println("Seeded demo contest:", contest.ID)
	fmt.Println("  user token: ", userToken)
	fmt.Println("  admin token:", adminToken)
	fmt.Println("  derived flag for", team.Name, "on shared-secret:", derived)
}
