package service

import (
	"context"
	"sync"
	"time"

	"flagarena/internal/model"
	"flagarena/internal/repository"
)

// In-memory fakes for the judge's dependencies. They mirror the contracts
// the mongo/redis implementations provide, including solve uniqueness.

type fakeContestRepo struct {
	contests map[string]*model.Contest
}

func newFakeContestRepo(contests ...*model.Contest) *fakeContestRepo {
	m := make(map[string]*model.Contest)
	for _, c := range contests {
		m[c.ID] = c
	}
	return &fakeContestRepo{contests: m}
}

func (f *fakeContestRepo) GetByID(_ context.Context, id string) (*model.Contest, error) {
	return f.contests[id], nil
}

func (f *fakeContestRepo) Create(_ context.Context, contest *model.Contest) error {
	f.contests[contest.ID] = contest
	return nil
}

type fakeChallengeRepo struct {
	challenges map[string]*model.Challenge
}

func newFakeChallengeRepo(challenges ...*model.Challenge) *fakeChallengeRepo {
	m := make(map[string]*model.Challenge)
	for _, c := range challenges {
		m[c.ID] = c
	}
	return &fakeChallengeRepo{challenges: m}
}

func (f *fakeChallengeRepo) GetByID(_ context.Context, id string) (*model.Challenge, error) {
	return f.challenges[id], nil
}

func (f *fakeChallengeRepo) GetBySlug(_ context.Context, contestID, slug string) (*model.Challenge, error) {
	for _, c := range f.challenges {
		if c.ContestID == contestID && c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeChallengeRepo) ListByContest(_ context.Context, contestID string) ([]*model.Challenge, error) {
	var out []*model.Challenge
	for _, c := range f.challenges {
		if c.ContestID == contestID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeChallengeRepo) Create(_ context.Context, challenge *model.Challenge) error {
	f.challenges[challenge.ID] = challenge
	return nil
}

type fakeTeamRepo struct {
	teams      map[string]*model.Team
	membership map[string]string // contestID+"/"+accountID -> teamID
	names      map[string]string // contestID+"/"+accountID -> username
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		teams:      make(map[string]*model.Team),
		membership: make(map[string]string),
		names:      make(map[string]string),
	}
}

func (f *fakeTeamRepo) addMembership(contestID, accountID string, team *model.Team) {
	f.teams[team.ID] = team
	f.membership[contestID+"/"+accountID] = team.ID
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id string) (*model.Team, error) {
	return f.teams[id], nil
}

func (f *fakeTeamRepo) GetMemberTeam(_ context.Context, contestID, accountID string) (*model.Team, error) {
	teamID, ok := f.membership[contestID+"/"+accountID]
	if !ok {
		return nil, nil
	}
	return f.teams[teamID], nil
}

func (f *fakeTeamRepo) GetMemberName(_ context.Context, contestID, accountID string) (string, error) {
	return f.names[contestID+"/"+accountID], nil
}

func (f *fakeTeamRepo) Create(_ context.Context, team *model.Team) error {
	f.teams[team.ID] = team
	return nil
}

func (f *fakeTeamRepo) AddMember(_ context.Context, member *model.TeamMember) error {
	f.membership[member.ContestID+"/"+member.AccountID] = member.TeamID
	f.names[member.ContestID+"/"+member.AccountID] = member.Username
	return nil
}

type fakeHintRepo struct {
	costs map[string]int // challengeID+"/"+identity -> total cost
	err   error
}

func newFakeHintRepo() *fakeHintRepo {
	return &fakeHintRepo{costs: make(map[string]int)}
}

func (f *fakeHintRepo) TotalCost(_ context.Context, challengeID string, identity model.Identity) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.costs[challengeID+"/"+identity.String()], nil
}

func (f *fakeHintRepo) Create(_ context.Context, unlock *model.HintUnlock) error {
	f.costs[unlock.ChallengeID+"/"+unlock.Identity.String()] += unlock.Cost
	return nil
}

type fakeSolveRepo struct {
	mu     sync.Mutex
	solves []*model.Solve

	// raceLoser makes ExistsForIdentity lie once, simulating a concurrent
	// solve landing between the duplicate check and the insert
	raceLoser bool
}

func newFakeSolveRepo() *fakeSolveRepo {
	return &fakeSolveRepo{}
}

func (f *fakeSolveRepo) Create(_ context.Context, solve *model.Solve) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.solves {
		if s.ChallengeID == solve.ChallengeID && s.Identity == solve.Identity {
			return repository.ErrDuplicateSolve
		}
	}
	f.solves = append(f.solves, solve)
	return nil
}

func (f *fakeSolveRepo) ExistsForIdentity(_ context.Context, challengeID string, identity model.Identity) (bool, error) {
	if f.raceLoser {
		f.raceLoser = false
		return false, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.solves {
		if s.ChallengeID == challengeID && s.Identity == identity {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSolveRepo) CountByChallenge(_ context.Context, challengeID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, s := range f.solves {
		if s.ChallengeID == challengeID {
			n++
		}
	}
	return n, nil
}

func (f *fakeSolveRepo) ListByChallenge(_ context.Context, challengeID string) ([]*model.Solve, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Solve
	for _, s := range f.solves {
		if s.ChallengeID == challengeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSolveRepo) ListByContest(_ context.Context, contestID string, until time.Time) ([]*model.Solve, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Solve
	for _, s := range f.solves {
		if s.ContestID == contestID && !s.SolvedAt.After(until) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeSubmissionRepo struct {
	mu   sync.Mutex
	subs []*model.Submission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{}
}

func (f *fakeSubmissionRepo) Create(_ context.Context, sub *model.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, sub)
	return nil
}

func (f *fakeSubmissionRepo) GetByID(_ context.Context, id string) (*model.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.subs {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSubmissionRepo) List(_ context.Context, filter repository.SubmissionFilter) ([]*model.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Submission
	for _, s := range f.subs {
		if filter.ChallengeID != "" && s.ChallengeID != filter.ChallengeID {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.SuspectedOnly && !s.Suspected {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSubmissionRepo) ListByFlag(_ context.Context, contestID, flag string) ([]*model.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Submission
	for _, s := range f.subs {
		if s.ContestID == contestID && s.Flag == flag {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) SetSuspected(_ context.Context, id string, suspected bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.subs {
		if s.ID == id {
			s.Suspected = suspected
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSubmissionRepo) byStatus(status model.SubmissionStatus) []*model.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Submission
	for _, s := range f.subs {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out
}

type fakeTxnRunner struct{}

func (fakeTxnRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRankCounter struct {
	mu     sync.Mutex
	counts map[string]int
	err    error
}

func newFakeRankCounter() *fakeRankCounter {
	return &fakeRankCounter{counts: make(map[string]int)}
}

func (f *fakeRankCounter) Next(_ context.Context, challengeID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[challengeID]++
	return f.counts[challengeID], nil
}

type fakeBoardCache struct {
	mu            sync.Mutex
	store         map[string][]model.Standing
	invalidations int
	getErr        error
	setErr        error
}

func newFakeBoardCache() *fakeBoardCache {
	return &fakeBoardCache{store: make(map[string][]model.Standing)}
}

func (f *fakeBoardCache) cacheKey(contestID string, ignoreFreeze bool) string {
	if ignoreFreeze {
		return contestID + "/live"
	}
	return contestID + "/frozen"
}

func (f *fakeBoardCache) Get(_ context.Context, contestID string, ignoreFreeze bool) ([]model.Standing, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store[f.cacheKey(contestID, ignoreFreeze)], nil
}

func (f *fakeBoardCache) Set(_ context.Context, contestID string, ignoreFreeze bool, standings []model.Standing) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store[f.cacheKey(contestID, ignoreFreeze)] = standings
	return nil
}

func (f *fakeBoardCache) Invalidate(_ context.Context, contestID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.store, f.cacheKey(contestID, false))
	delete(f.store, f.cacheKey(contestID, true))
	f.invalidations++
	return nil
}

type broadcastEvent struct {
	contestID string
	event     string
	payload   interface{}
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []broadcastEvent
}

func (f *fakeBroadcaster) BroadcastToContest(contestID string, event string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, broadcastEvent{contestID: contestID, event: event, payload: payload})
}

func (f *fakeBroadcaster) byEvent(event string) []broadcastEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []broadcastEvent
	for _, e := range f.events {
		if e.event == event {
			out = append(out, e)
		}
	}
	return out
}
