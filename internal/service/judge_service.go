package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"flagarena/internal/cache"
	"flagarena/internal/model"
	"flagarena/internal/repository"
)

// Precondition failures. Surfaced to the caller; no audit record is written
// for them.
var (
	ErrContestNotFound   = errors.New("contest not found")
	ErrContestNotRunning = errors.New("contest is not running")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrChallengeClosed   = errors.New("challenge is not open")
	ErrNoIdentity        = errors.New("account has no team in this contest")
)

// JudgeService is the submission pipeline: preconditions, duplicate check,
// verification, rank assignment, scoring, persistence, cache invalidation
// and event emission. It is the only component that writes to the system of
// record, and any number of workers may run it concurrently.
type JudgeService struct {
	contests    repository.ContestRepo
	challenges  repository.ChallengeRepo
	teams       repository.TeamRepo
	hints       repository.HintRepo
	solves      repository.SolveRepo
	submissions repository.SubmissionRepo
	txn         repository.TxnRunner
	ranks       cache.RankCounter
	board       cache.LeaderboardCache
	verifier    *Verifier
	broadcaster Broadcaster
	logger      *slog.Logger

	// rankFallback allows degrading to a database solve count when the
	// counter store is down. Off by default: a duplicate rank during an
	// outage may be preferable to rejecting solves, but that is a
	// per-deployment anti-cheating call, not ours.
	rankFallback bool

	now func() time.Time
}

// NewJudgeService creates a new judge service
func NewJudgeService(
	contests repository.ContestRepo,
	challenges repository.ChallengeRepo,
	teams repository.TeamRepo,
	hints repository.HintRepo,
	solves repository.SolveRepo,
	submissions repository.SubmissionRepo,
	txn repository.TxnRunner,
	ranks cache.RankCounter,
	board cache.LeaderboardCache,
	verifier *Verifier,
	logger *slog.Logger,
	rankFallback bool,
) *JudgeService {
	return &JudgeService{
		contests:     contests,
		challenges:   challenges,
		teams:        teams,
		hints:        hints,
		solves:       solves,
		submissions:  submissions,
		txn:          txn,
		ranks:        ranks,
		board:        board,
		verifier:     verifier,
		logger:       logger,
		rankFallback: rankFallback,
		now:          time.Now,
	}
}

// SetBroadcaster sets the event sink for accepted-solve fan-out
func (s *JudgeService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit judges one flag submission for the account. Duplicate and wrong
// answers come back as results, not errors; only precondition and
// infrastructure failures are errors.
func (s *JudgeService) Submit(ctx context.Context, accountID, contestID, challengeSlug, flag string) (*model.JudgmentResult, error) {
	contest, err := s.contests.GetByID(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("load contest: %w", err)
	}
	if contest == nil {
		return nil, ErrContestNotFound
	}
	now := s.now()
	if !contest.Running(now) {
		return nil, ErrContestNotRunning
	}

	challenge, err := s.challenges.GetBySlug(ctx, contestID, challengeSlug)
	if err != nil {
		return nil, fmt.Errorf("load challenge: %w", err)
	}
	if challenge == nil {
		return nil, ErrChallengeNotFound
	}
	if !challenge.Open() {
		return nil, ErrChallengeClosed
	}

	identity, err := s.resolveIdentity(ctx, contest, accountID)
	if err != nil {
		return nil, err
	}

	// The duplicate check runs before verification so "already solved" and
	// "wrong answer" are indistinguishable by timing.
	solved, err := s.solves.ExistsForIdentity(ctx, challenge.ID, identity)
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if solved {
		return s.recordMiss(ctx, challenge, accountID, identity, flag, model.SubmissionDuplicate, now)
	}

	if !s.verifier.Verify(challenge, flag, identity) {
		return s.recordMiss(ctx, challenge, accountID, identity, flag, model.SubmissionRejected, now)
	}

	return s.accept(ctx, challenge, accountID, identity, flag, now)
}

func (s *JudgeService) resolveIdentity(ctx context.Context, contest *model.Contest, accountID string) (model.Identity, error) {
	if !contest.TeamBased {
		return model.Identity{Kind: model.IdentityUser, ID: accountID}, nil
	}
	team, err := s.teams.GetMemberTeam(ctx, contest.ID, accountID)
	if err != nil {
		return model.Identity{}, fmt.Errorf("resolve team: %w", err)
	}
	if team == nil {
		return model.Identity{}, ErrNoIdentity
	}
	return model.Identity{Kind: model.IdentityTeam, ID: team.ID}, nil
}

// recordMiss persists the audit trail for duplicate and wrong attempts
func (s *JudgeService) recordMiss(ctx context.Context, challenge *model.Challenge, accountID string, identity model.Identity, flag string, status model.SubmissionStatus, submittedAt time.Time) (*model.JudgmentResult, error) {
	sub := &model.Submission{
		ID:          uuid.New().String(),
		ChallengeID: challenge.ID,
		ContestID:   challenge.ContestID,
		AccountID:   accountID,
		Identity:    identity,
		Flag:        flag,
		Status:      status,
		SubmittedAt: submittedAt,
		JudgedAt:    s.now(),
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("record submission: %w", err)
	}
	return &model.JudgmentResult{Status: status}, nil
}

func (s *JudgeService) accept(ctx context.Context, challenge *model.Challenge, accountID string, identity model.Identity, flag string, submittedAt time.Time) (*model.JudgmentResult, error) {
	// Captured before our own solve lands, so decay is a function of the
	// identities that actually got there first.
	priorSolves, err := s.solves.CountByChallenge(ctx, challenge.ID)
	if err != nil {
		return nil, fmt.Errorf("count prior solves: %w", err)
	}

	rank, err := s.ranks.Next(ctx, challenge.ID)
	if err != nil {
		if !s.rankFallback {
			return nil, fmt.Errorf("assign rank: %w", err)
		}
		// Degraded mode: a concurrent solve during a counter outage can get
		// the same rank. Solve uniqueness still prevents double-scoring, so
		// this is an auditable edge case rather than silent corruption.
		rank = int(priorSolves) + 1
		s.logger.Warn("rank counter unavailable, falling back to solve count",
			"challengeId", challenge.ID, "rank", rank, "error", err)
	}

	hintCost, err := s.hints.TotalCost(ctx, challenge.ID, identity)
	if err != nil {
		return nil, fmt.Errorf("hint cost: %w", err)
	}

	points, bonus := ComputeScore(challenge, int(priorSolves), rank, hintCost)
	solvedAt := s.now()

	solve := &model.Solve{
		ID:          uuid.New().String(),
		ChallengeID: challenge.ID,
		ContestID:   challenge.ContestID,
		Identity:    identity,
		Points:      points,
		BonusPoints: bonus,
		Rank:        rank,
		SolvedAt:    solvedAt,
	}
	sub := &model.Submission{
		ID:          uuid.New().String(),
		ChallengeID: challenge.ID,
		ContestID:   challenge.ContestID,
		AccountID:   accountID,
		Identity:    identity,
		Flag:        flag,
		Status:      model.SubmissionAccepted,
		Correct:     true,
		Points:      points,
		BonusPoints: bonus,
		Rank:        rank,
		SolveID:     solve.ID,
		SubmittedAt: submittedAt,
		JudgedAt:    solvedAt,
	}

	err = s.txn.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.solves.Create(txCtx, solve); err != nil {
			return err
		}
		return s.submissions.Create(txCtx, sub)
	})
	if errors.Is(err, repository.ErrDuplicateSolve) {
		// Lost a same-identity race: someone else's solve landed between our
		// duplicate check and the insert. Downgrade, don't error.
		s.logger.Info("submission race lost, downgrading to duplicate",
			"challengeId", challenge.ID, "identity", identity.String())
		return s.recordMiss(ctx, challenge, accountID, identity, flag, model.SubmissionDuplicate, submittedAt)
	}
	if err != nil {
		return nil, fmt.Errorf("persist solve: %w", err)
	}

	// Everything after persistence is best-effort: the attempt is judged.
	if err := s.board.Invalidate(ctx, challenge.ContestID); err != nil {
		s.logger.Warn("leaderboard cache invalidation failed",
			"contestId", challenge.ContestID, "error", err)
	}
	s.publishAccepted(challenge, solve)

	return &model.JudgmentResult{
		Status:      model.SubmissionAccepted,
		Points:      points,
		BonusPoints: bonus,
		Rank:        rank,
		SolvedAt:    &solvedAt,
	}, nil
}

func (s *JudgeService) publishAccepted(challenge *model.Challenge, solve *model.Solve) {
	if s.broadcaster == nil {
		return
	}
	payload := map[string]interface{}{
		"challengeId": challenge.ID,
		"slug":        challenge.Slug,
		"title":       challenge.Title,
		"identity":    solve.Identity,
		"points":      solve.Points,
		"bonusPoints": solve.BonusPoints,
		"rank":        solve.Rank,
		"solvedAt":    solve.SolvedAt,
	}
	s.broadcaster.BroadcastToContest(challenge.ContestID, EventSubmissionAccepted, payload)
	if solve.Rank == 1 {
		s.broadcaster.BroadcastToContest(challenge.ContestID, EventFirstBlood, payload)
	}
}
