package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flagarena/internal/model"
)

func fixedChallenge(points int) *model.Challenge {
	return &model.Challenge{
		BasePoints:  points,
		ScoringMode: model.ScoringFixed,
		FirstBlood:  model.FirstBloodNone,
	}
}

func percentageChallenge() *model.Challenge {
	return &model.Challenge{
		BasePoints:  1000,
		ScoringMode: model.ScoringDynamic,
		DecayType:   model.DecayPercentage,
		DecayFactor: 0.9,
		MinScore:    100,
		FirstBlood:  model.FirstBloodNone,
	}
}

func TestComputeScoreFixedMode(t *testing.T) {
	ch := fixedChallenge(300)
	for _, prior := range []int{0, 1, 50, 10000} {
		points, bonus := ComputeScore(ch, prior, prior+1, 0)
		assert.Equal(t, 300, points, "prior=%d", prior)
		assert.Equal(t, 0, bonus)
	}
}

func TestComputeScorePercentageDecay(t *testing.T) {
	ch := percentageChallenge()

	tests := []struct {
		prior int
		want  int
	}{
		{0, 1000},
		{1, 900},
		{2, 810},
		{3, 729},
		{21, 109},
		{22, 100}, // round(1000*0.9^22)=98, floored
		{500, 100},
	}
	for _, tt := range tests {
		points, bonus := ComputeScore(ch, tt.prior, tt.prior+1, 0)
		assert.Equal(t, tt.want, points, "prior=%d", tt.prior)
		assert.Equal(t, 0, bonus)
	}
}

func TestComputeScoreFixedStepDecay(t *testing.T) {
	ch := &model.Challenge{
		BasePoints:  500,
		ScoringMode: model.ScoringDynamic,
		DecayType:   model.DecayFixedStep,
		DecayFactor: 25,
		MinScore:    150,
	}

	tests := []struct {
		prior int
		want  int
	}{
		{0, 500},
		{1, 475},
		{14, 150},
		{15, 150}, // 500-25*15=125, floored
		{100, 150},
	}
	for _, tt := range tests {
		points, _ := ComputeScore(ch, tt.prior, tt.prior+1, 0)
		assert.Equal(t, tt.want, points, "prior=%d", tt.prior)
	}
}

func TestComputeScoreFirstBloodBonus(t *testing.T) {
	ch := percentageChallenge()
	ch.FirstBlood = model.FirstBloodBonus
	ch.FirstBloodCount = 3
	ch.FirstBloodBonus = []int{50, 30, 10}

	tests := []struct {
		rank       int
		prior      int
		wantPoints int
		wantBonus  int
	}{
		{1, 0, 1000, 50},
		{2, 1, 900, 30},
		{3, 2, 810, 10},
		{4, 3, 729, 0}, // beyond the rewarded count
	}
	for _, tt := range tests {
		points, bonus := ComputeScore(ch, tt.prior, tt.rank, 0)
		assert.Equal(t, tt.wantPoints, points, "rank=%d", tt.rank)
		assert.Equal(t, tt.wantBonus, bonus, "rank=%d", tt.rank)
	}
}

func TestComputeScoreNoDecayOverride(t *testing.T) {
	ch := percentageChallenge()
	ch.FirstBlood = model.FirstBloodNoDecay
	ch.FirstBloodCount = 2

	// the first two discoverers keep the full base score
	points, _ := ComputeScore(ch, 0, 1, 0)
	assert.Equal(t, 1000, points)
	points, _ = ComputeScore(ch, 1, 2, 0)
	assert.Equal(t, 1000, points)
	// the third decays normally
	points, _ = ComputeScore(ch, 2, 3, 0)
	assert.Equal(t, 810, points)
}

func TestComputeScoreNoDecayIgnoredForFixedScoring(t *testing.T) {
	ch := fixedChallenge(200)
	ch.FirstBlood = model.FirstBloodNoDecay
	ch.FirstBloodCount = 5

	points, bonus := ComputeScore(ch, 0, 1, 0)
	assert.Equal(t, 200, points)
	assert.Equal(t, 0, bonus)
}

func TestComputeScoreHintCost(t *testing.T) {
	ch := percentageChallenge()
	ch.FirstBlood = model.FirstBloodBonus
	ch.FirstBloodCount = 1
	ch.FirstBloodBonus = []int{50}

	// hint cost reduces the base award only
	points, bonus := ComputeScore(ch, 0, 1, 150)
	assert.Equal(t, 850, points)
	assert.Equal(t, 50, bonus)

	// base award floors at zero, bonus survives
	points, bonus = ComputeScore(ch, 0, 1, 5000)
	assert.Equal(t, 0, points)
	assert.Equal(t, 50, bonus)
}

func TestComputeScoreOutputsNonNegative(t *testing.T) {
	ch := &model.Challenge{
		BasePoints:  10,
		ScoringMode: model.ScoringDynamic,
		DecayType:   model.DecayFixedStep,
		DecayFactor: 100,
		MinScore:    5,
	}
	points, bonus := ComputeScore(ch, 50, 51, 99)
	assert.GreaterOrEqual(t, points, 0)
	assert.GreaterOrEqual(t, bonus, 0)
}
