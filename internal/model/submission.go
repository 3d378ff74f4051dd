package model

import "time"

type SubmissionStatus string

const (
	SubmissionAccepted  SubmissionStatus = "accepted"
	SubmissionRejected  SubmissionStatus = "rejected"
	SubmissionDuplicate SubmissionStatus = "duplicate"
)

// Submission is one judged attempt, correct or not. Submissions are an
// append-only audit trail: immutable once judged, except the Suspected flag
// that admins toggle during anti-abuse review.
type Submission struct {
	ID          string           `json:"id" bson:"_id"`
	ChallengeID string           `json:"challengeId" bson:"challengeId"`
	ContestID   string           `json:"contestId" bson:"contestId"`
	AccountID   string           `json:"accountId" bson:"accountId"`
	Identity    Identity         `json:"identity" bson:"identity"`
	Flag        string           `json:"flag" bson:"flag"` // raw submitted text, kept for audit
	Status      SubmissionStatus `json:"status" bson:"status"`
	Correct     bool             `json:"correct" bson:"correct"`
	Points      int              `json:"points" bson:"points"`
	BonusPoints int              `json:"bonusPoints" bson:"bonusPoints"`
	Rank        int              `json:"rank" bson:"rank"` // 0 unless this attempt produced a solve
	SolveID     string           `json:"solveId,omitempty" bson:"solveId,omitempty"`
	Suspected   bool             `json:"suspected" bson:"suspected"`
	SubmittedAt time.Time        `json:"submittedAt" bson:"submittedAt"`
	JudgedAt    time.Time        `json:"judgedAt" bson:"judgedAt"`
}

// JudgmentResult is what the judge returns to the caller for one attempt
type JudgmentResult struct {
	Status      SubmissionStatus `json:"status"`
	Points      int              `json:"points"`
	BonusPoints int              `json:"bonusPoints"`
	Rank        int              `json:"rank"`
	SolvedAt    *time.Time       `json:"solvedAt,omitempty"`
}
