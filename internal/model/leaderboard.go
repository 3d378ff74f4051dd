package model

import "time"

// Standing is one derived leaderboard row. Standings are never persisted;
// they are recomputed from solves and cached.
type Standing struct {
	Rank        int       `json:"rank"`
	Identity    Identity  `json:"identity"`
	Name        string    `json:"name"`
	Score       int       `json:"score"`
	LastSolveAt time.Time `json:"lastSolveAt"`
}
