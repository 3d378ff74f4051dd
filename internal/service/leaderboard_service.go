package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"flagarena/internal/cache"
	"flagarena/internal/model"
	"flagarena/internal/repository"
)

// LeaderboardService derives ranked standings from recorded solves. The
// cache in front of it is refreshed by judge invalidations and bounded by
// its TTL; the solves collection alone is the source of truth.
type LeaderboardService struct {
	contests repository.ContestRepo
	solves   repository.SolveRepo
	teams    repository.TeamRepo
	board    cache.LeaderboardCache
	logger   *slog.Logger

	now func() time.Time
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(
	contests repository.ContestRepo,
	solves repository.SolveRepo,
	teams repository.TeamRepo,
	board cache.LeaderboardCache,
	logger *slog.Logger,
) *LeaderboardService {
	return &LeaderboardService{
		contests: contests,
		solves:   solves,
		teams:    teams,
		board:    board,
		logger:   logger,
		now:      time.Now,
	}
}

// Standings returns the ranked leaderboard for the contest. Non-privileged
// callers pass ignoreFreeze=false and stop seeing new solves once the freeze
// is in effect; admin callers pass true for the live board.
func (s *LeaderboardService) Standings(ctx context.Context, contestID string, ignoreFreeze bool) ([]model.Standing, error) {
	if cached, err := s.board.Get(ctx, contestID, ignoreFreeze); err != nil {
		s.logger.Warn("leaderboard cache read failed", "contestId", contestID, "error", err)
	} else if cached != nil {
		return cached, nil
	}

	contest, err := s.contests.GetByID(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("load contest: %w", err)
	}
	if contest == nil {
		return nil, ErrContestNotFound
	}

	cutoff := contest.EndTime
	if !ignoreFreeze && contest.Frozen(s.now()) {
		cutoff = *contest.FreezeTime
	}

	solves, err := s.solves.ListByContest(ctx, contestID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("load solves: %w", err)
	}

	standings := s.aggregate(ctx, contestID, solves)

	if err := s.board.Set(ctx, contestID, ignoreFreeze, standings); err != nil {
		s.logger.Warn("leaderboard cache write failed", "contestId", contestID, "error", err)
	}
	return standings, nil
}

func (s *LeaderboardService) aggregate(ctx context.Context, contestID string, solves []*model.Solve) []model.Standing {
	buckets := make(map[string]*model.Standing)
	for _, solve := range solves {
		key := solve.Identity.String()
		entry, ok := buckets[key]
		if !ok {
			entry = &model.Standing{Identity: solve.Identity}
			buckets[key] = entry
		}
		entry.Score += solve.Points + solve.BonusPoints
		if solve.SolvedAt.After(entry.LastSolveAt) {
			entry.LastSolveAt = solve.SolvedAt
		}
	}

	standings := make([]model.Standing, 0, len(buckets))
	for _, entry := range buckets {
		entry.Name = s.displayName(ctx, contestID, entry.Identity)
		standings = append(standings, *entry)
	}

	// Higher score first; at equal score the identity that finished its set
	// earlier ranks higher. Identity key last for determinism.
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Score != standings[j].Score {
			return standings[i].Score > standings[j].Score
		}
		if !standings[i].LastSolveAt.Equal(standings[j].LastSolveAt) {
			return standings[i].LastSolveAt.Before(standings[j].LastSolveAt)
		}
		return standings[i].Identity.String() < standings[j].Identity.String()
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}

// displayName is best effort; an unresolvable name falls back to the raw id
func (s *LeaderboardService) displayName(ctx context.Context, contestID string, identity model.Identity) string {
	switch identity.Kind {
	case model.IdentityTeam:
		team, err := s.teams.GetByID(ctx, identity.ID)
		if err == nil && team != nil {
			return team.Name
		}
	case model.IdentityUser:
		name, err := s.teams.GetMemberName(ctx, contestID, identity.ID)
		if err == nil && name != "" {
			return name
		}
	}
	return identity.ID
}
