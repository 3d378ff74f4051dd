package model

import "time"

// Solve is the canonical one-time fact that an identity cracked a challenge.
// The (challengeId, identity) pair is unique at the storage layer; once
// written it is never recomputed, even if the challenge config changes later.
type Solve struct {
	ID          string    `json:"id" bson:"_id"`
	ChallengeID string    `json:"challengeId" bson:"challengeId"`
	ContestID   string    `json:"contestId" bson:"contestId"`
	Identity    Identity  `json:"identity" bson:"identity"`
	Points      int       `json:"points" bson:"points"`
	BonusPoints int       `json:"bonusPoints" bson:"bonusPoints"`
	Rank        int       `json:"rank" bson:"rank"` // 1-based order of discovery
	SolvedAt    time.Time `json:"solvedAt" bson:"solvedAt"`
}
