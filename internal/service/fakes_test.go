package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/talentgate/internal/model"
	"github.com/lshigami/talentgate/internal/notification"
	"github.com/lshigami/talentgate/internal/repository"
)

type fakeCandidateRepo struct {
	candidates map[uuid.UUID]model.Candidate
}

func newFakeCandidateRepo(candidates ...model.Candidate) *fakeCandidateRepo {
	r := &fakeCandidateRepo{candidates: map[uuid.UUID]model.Candidate{}}
	for _, c := range candidates {
		r.candidates[c.ID] = c
	}
	return r
}

func (r *fakeCandidateRepo) FindByIDWithSkills(_ context.Context, id uuid.UUID) (*model.Candidate, error) {
	c, ok := r.candidates[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

type fakeSequenceRepo struct {
	mu   sync.Mutex
	last map[string]int
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{last: map[string]int{}}
}

func (r *fakeSequenceRepo) Next(_ context.Context, candidateID uuid.UUID, kind, key string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := fmt.Sprintf("%s|%s|%s", candidateID, kind, key)
	r.last[k]++
	return r.last[k], nil
}

type fakeSkillAttemptRepo struct {
	mu       sync.Mutex
	attempts map[uuid.UUID]model.SkillAttempt
}

func newFakeSkillAttemptRepo() *fakeSkillAttemptRepo {
	return &fakeSkillAttemptRepo{attempts: map[uuid.UUID]model.SkillAttempt{}}
}

func (r *fakeSkillAttemptRepo) Create(_ context.Context, a *model.SkillAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.Status == model.AttemptInProgress {
		for _, existing := range r.attempts {
			if existing.CandidateID == a.CandidateID && existing.SkillKey == a.SkillKey && existing.Status == model.AttemptInProgress {
				return repository.ErrDuplicate
			}
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.attempts[a.ID] = *a
	return nil
}

func (r *fakeSkillAttemptRepo) FindByID(_ context.Context, id uuid.UUID) (*model.SkillAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attempts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *fakeSkillAttemptRepo) FindInProgress(_ context.Context, candidateID uuid.UUID, key string) (*model.SkillAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.attempts {
		if a.CandidateID == candidateID && a.SkillKey == key && a.Status == model.AttemptInProgress {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeSkillAttemptRepo) list(filter func(model.SkillAttempt) bool) []model.SkillAttempt {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.SkillAttempt
	for _, a := range r.attempts {
		if filter(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].AttemptNumber > out[j].AttemptNumber
	})
	return out
}

func (r *fakeSkillAttemptRepo) ListByCandidate(_ context.Context, candidateID uuid.UUID, key string) ([]model.SkillAttempt, error) {
	return r.list(func(a model.SkillAttempt) bool {
		return a.CandidateID == candidateID && (key == "" || a.SkillKey == key)
	}), nil
}

func (r *fakeSkillAttemptRepo) ListRecent(_ context.Context, candidateID uuid.UUID, key string, limit int) ([]model.SkillAttempt, error) {
	out := r.list(func(a model.SkillAttempt) bool {
		return a.CandidateID == candidateID && a.SkillKey == key
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeSkillAttemptRepo) ListVerified(_ context.Context, candidateID uuid.UUID) ([]model.SkillAttempt, error) {
	return r.list(func(a model.SkillAttempt) bool {
		return a.CandidateID == candidateID && a.Status == model.AttemptSubmitted && a.VerificationStatus == model.TierVerified
	}), nil
}

func (r *fakeSkillAttemptRepo) CompleteSubmission(_ context.Context, a *model.SkillAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.attempts[a.ID]
	if !ok || stored.Status != model.AttemptInProgress {
		return repository.ErrStaleState
	}
	r.attempts[a.ID] = *a
	return nil
}

// put stores a record as-is, bypassing the lifecycle; used to seed legacy rows.
func (r *fakeSkillAttemptRepo) put(a model.SkillAttempt) model.SkillAttempt {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.attempts[a.ID] = a
	return a
}

type fakeJobRepo struct {
	jobs map[uuid.UUID]model.Job
}

func newFakeJobRepo(jobs ...model.Job) *fakeJobRepo {
	r := &fakeJobRepo{jobs: map[uuid.UUID]model.Job{}}
	for _, j := range jobs {
		r.jobs[j.ID] = j
	}
	return r
}

func (r *fakeJobRepo) Create(_ context.Context, job *model.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	job.CreatedAt = time.Now()
	r.jobs[job.ID] = *job
	return nil
}

func (r *fakeJobRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &j, nil
}

func (r *fakeJobRepo) FindAll(_ context.Context) ([]model.Job, error) {
	out := make([]model.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, j)
	}
	return out, nil
}

type fakeJobAttemptRepo struct {
	mu       sync.Mutex
	attempts map[uuid.UUID]model.JobAttempt
}

func newFakeJobAttemptRepo() *fakeJobAttemptRepo {
	return &fakeJobAttemptRepo{attempts: map[uuid.UUID]model.JobAttempt{}}
}

func (r *fakeJobAttemptRepo) Create(_ context.Context, a *model.JobAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.attempts {
		if existing.CandidateID == a.CandidateID && existing.JobID == a.JobID && existing.Status == model.AttemptInProgress && a.Status == model.AttemptInProgress {
			return repository.ErrDuplicate
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.attempts[a.ID] = *a
	return nil
}

func (r *fakeJobAttemptRepo) FindByID(_ context.Context, id uuid.UUID) (*model.JobAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attempts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *fakeJobAttemptRepo) FindInProgress(_ context.Context, candidateID, jobID uuid.UUID) (*model.JobAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.attempts {
		if a.CandidateID == candidateID && a.JobID == jobID && a.Status == model.AttemptInProgress {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeJobAttemptRepo) ListByCandidateAndJob(_ context.Context, candidateID, jobID uuid.UUID) ([]model.JobAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.JobAttempt
	for _, a := range r.attempts {
		if a.CandidateID == candidateID && a.JobID == jobID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttemptNumber > out[j].AttemptNumber })
	return out, nil
}

func (r *fakeJobAttemptRepo) HasPassed(_ context.Context, candidateID, jobID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.attempts {
		if a.CandidateID == candidateID && a.JobID == jobID && a.Status == model.AttemptSubmitted && a.Passed {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeJobAttemptRepo) CompleteSubmission(_ context.Context, a *model.JobAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.attempts[a.ID]
	if !ok || stored.Status != model.AttemptInProgress {
		return repository.ErrStaleState
	}
	r.attempts[a.ID] = *a
	return nil
}

type fakeApplicationRepo struct {
	jobs         *fakeJobRepo
	applications map[uuid.UUID]model.Application
	backfilled   int
}

func newFakeApplicationRepo(jobs *fakeJobRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{jobs: jobs, applications: map[uuid.UUID]model.Application{}}
}

func (r *fakeApplicationRepo) Create(_ context.Context, a *model.Application) error {
	for _, existing := range r.applications {
		if existing.CandidateID == a.CandidateID && existing.JobID == a.JobID {
			return repository.ErrDuplicate
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	r.applications[a.ID] = *a
	return nil
}

func (r *fakeApplicationRepo) Exists(_ context.Context, candidateID, jobID uuid.UUID) (bool, error) {
	for _, a := range r.applications {
		if a.CandidateID == candidateID && a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeApplicationRepo) ListByCandidateWithJob(_ context.Context, candidateID uuid.UUID) ([]model.Application, error) {
	var out []model.Application
	for _, a := range r.applications {
		if a.CandidateID == candidateID {
			a.Job = r.jobs.jobs[a.JobID]
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) SetMatchScoreIfMissing(_ context.Context, id uuid.UUID, score int) error {
	a, ok := r.applications[id]
	if !ok {
		return repository.ErrNotFound
	}
	if a.MatchScore == nil {
		a.MatchScore = &score
		r.applications[id] = a
		r.backfilled++
	}
	return nil
}

type stubSupply struct {
	calls     int
	lastAvoid []string
	generate  func(skill string, count int) ([]model.Question, error)
}

func (s *stubSupply) GenerateQuestions(_ context.Context, skill string, count int, avoid []string) ([]model.Question, error) {
	s.calls++
	s.lastAvoid = avoid
	if s.generate != nil {
		return s.generate(skill, count)
	}
	return makeQuestions(count), nil
}

type recordingSink struct {
	events []notification.Event
}

func (s *recordingSink) Publish(_ context.Context, e notification.Event) {
	s.events = append(s.events, e)
}

// makeQuestions builds n valid questions; question i has correct index i%4.
func makeQuestions(n int) []model.Question {
	qs := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, model.Question{
			QuestionID:   fmt.Sprintf("q%d", i+1),
			Text:         fmt.Sprintf("Question %d", i+1),
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: i % 4,
			Difficulty:   model.DifficultyMedium,
		})
	}
	return qs
}

func intPtr(v int) *int { return &v }
