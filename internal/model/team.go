package model

import "time"

// Team is a scoring unit in team-based contests
type Team struct {
	ID        string    `json:"id" bson:"_id"`
	ContestID string    `json:"contestId" bson:"contestId"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// TeamMember links an account to its current team within a contest
type TeamMember struct {
	ID        string    `json:"id" bson:"_id"`
	TeamID    string    `json:"teamId" bson:"teamId"`
	ContestID string    `json:"contestId" bson:"contestId"`
	AccountID string    `json:"accountId" bson:"accountId"`
	Username  string    `json:"username" bson:"username"`
	JoinedAt  time.Time `json:"joinedAt" bson:"joinedAt"`
}

// HintUnlock records that an identity paid for a hint on a challenge.
// The judge only consumes the aggregate cost per (challenge, identity).
type HintUnlock struct {
	ID          string    `json:"id" bson:"_id"`
	ChallengeID string    `json:"challengeId" bson:"challengeId"`
	Identity    Identity  `json:"identity" bson:"identity"`
	Cost        int       `json:"cost" bson:"cost"`
	UnlockedAt  time.Time `json:"unlockedAt" bson:"unlockedAt"`
}
