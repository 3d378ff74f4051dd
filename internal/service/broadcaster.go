package service

// Event names published by the judge
const (
	EventSubmissionAccepted = "submission_accepted"
	EventFirstBlood         = "first_blood"
	EventLeaderboardUpdate  = "leaderboard_update"
)

// Broadcaster fans domain events out to contest watchers (avoids import
// cycle with the ws hub). Publishing is fire-and-forget: a failed or absent
// broadcaster never affects a judging outcome.
type Broadcaster interface {
	BroadcastToContest(contestID string, event string, payload interface{})
}
