package model

import "time"

type ChallengeState string
type ScoringMode string
type DecayType string
type FlagMode string
type FirstBloodType string

const (
	ChallengeOpen   ChallengeState = "open"
	ChallengeHidden ChallengeState = "hidden"
	ChallengeClosed ChallengeState = "closed"

	ScoringFixed   ScoringMode = "fixed"
	ScoringDynamic ScoringMode = "dynamic"

	DecayPercentage DecayType = "percentage"
	DecayFixedStep  DecayType = "fixed_step"

	FlagFixed   FlagMode = "fixed"
	FlagDerived FlagMode = "derived"

	FirstBloodNone    FirstBloodType = "none"
	FirstBloodBonus   FirstBloodType = "bonus"
	FirstBloodNoDecay FirstBloodType = "no_decay" // only meaningful for dynamic scoring
)

// Challenge holds the scoring and flag configuration for one task.
// The engine treats it as read-only; editing belongs to the content surface.
type Challenge struct {
	ID              string         `json:"id" bson:"_id"`
	ContestID       string         `json:"contestId" bson:"contestId"`
	Slug            string         `json:"slug" bson:"slug"`
	Title           string         `json:"title" bson:"title"`
	State           ChallengeState `json:"state" bson:"state"`
	BasePoints      int            `json:"basePoints" bson:"basePoints"`
	ScoringMode     ScoringMode    `json:"scoringMode" bson:"scoringMode"`
	DecayType       DecayType      `json:"decayType" bson:"decayType"`
	DecayFactor     float64        `json:"decayFactor" bson:"decayFactor"` // 0<f<1 for percentage, whole points for fixed_step
	MinScore        int            `json:"minScore" bson:"minScore"`
	Flag            string         `json:"-" bson:"flag"` // fixed value, or derivation seed in derived mode
	FlagMode        FlagMode       `json:"flagMode" bson:"flagMode"`
	FlagPrefix      string         `json:"flagPrefix" bson:"flagPrefix"`
	CaseInsensitive bool           `json:"caseInsensitive" bson:"caseInsensitive"`
	FirstBlood      FirstBloodType `json:"firstBlood" bson:"firstBlood"`
	FirstBloodCount int            `json:"firstBloodCount" bson:"firstBloodCount"`
	FirstBloodBonus []int          `json:"firstBloodBonus,omitempty" bson:"firstBloodBonus,omitempty"` // len >= FirstBloodCount when FirstBlood == bonus
	CreatedAt       time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// Open reports whether the challenge currently accepts submissions
func (c *Challenge) Open() bool {
	return c.State == ChallengeOpen
}
