package service

import (
	"math"

	"flagarena/internal/model"
)

// ComputeScore maps scoring config, the number of identities that solved
// before this one, the discovery rank and the identity's accumulated hint
// cost to the (points, bonus) award pair.
//
// Rounding is math.Round, i.e. halves round away from zero; all inputs here
// are non-negative so that behaves as round-half-up.
func ComputeScore(challenge *model.Challenge, priorSolves int, rank int, hintCost int) (points, bonus int) {
	points = basePoints(challenge, priorSolves)

	if rank >= 1 && rank <= challenge.FirstBloodCount {
		switch challenge.FirstBlood {
		case model.FirstBloodNoDecay:
			// undo decay for the earliest solvers; a no-op for fixed scoring
			if challenge.ScoringMode == model.ScoringDynamic {
				points = challenge.BasePoints
			}
		case model.FirstBloodBonus:
			if rank <= len(challenge.FirstBloodBonus) {
				bonus = challenge.FirstBloodBonus[rank-1]
			}
		}
	}

	// hint costs eat into the base award only, never the first-blood bonus
	points -= hintCost
	if points < 0 {
		points = 0
	}
	return points, bonus
}

func basePoints(challenge *model.Challenge, priorSolves int) int {
	if challenge.ScoringMode != model.ScoringDynamic {
		return challenge.BasePoints
	}

	var score int
	switch challenge.DecayType {
	case model.DecayFixedStep:
		score = challenge.BasePoints - int(challenge.DecayFactor)*priorSolves
	default: // percentage
		score = int(math.Round(float64(challenge.BasePoints) * math.Pow(challenge.DecayFactor, float64(priorSolves))))
	}

	if score < challenge.MinScore {
		score = challenge.MinScore
	}
	return score
}
