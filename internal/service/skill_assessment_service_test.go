package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/talentgate/config"
	"github.com/lshigami/talentgate/internal/apperror"
	"github.com/lshigami/talentgate/internal/dto"
	"github.com/lshigami/talentgate/internal/model"
	"github.com/lshigami/talentgate/internal/notification"
	"github.com/lshigami/talentgate/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type skillFixture struct {
	svc       *skillAssessmentService
	attempts  *fakeSkillAttemptRepo
	supply    *stubSupply
	sink      *recordingSink
	candidate model.Candidate
}

func newSkillFixture(t *testing.T) *skillFixture {
	t.Helper()
	candidate := model.Candidate{ID: uuid.New(), Name: "Ada"}
	f := &skillFixture{
		attempts:  newFakeSkillAttemptRepo(),
		supply:    &stubSupply{},
		sink:      &recordingSink{},
		candidate: candidate,
	}
	cfg := &config.Config{}
	cfg.QuestionSupply.RecentHashWindow = 5
	svc := NewSkillAssessmentService(f.attempts, newFakeSequenceRepo(), newFakeCandidateRepo(candidate), f.supply, f.sink, cfg).(*skillAssessmentService)
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	f.svc = svc
	return f
}

// answersFor answers the first `correct` questions of the attempt correctly.
func (f *skillFixture) answersFor(t *testing.T, attemptID uuid.UUID, correct int) []dto.AnswerDTO {
	t.Helper()
	stored, err := f.attempts.FindByID(context.Background(), attemptID)
	require.NoError(t, err)
	answers := make([]dto.AnswerDTO, 0, len(stored.Questions))
	for i, q := range stored.Questions {
		idx := q.CorrectIndex
		if i >= correct {
			idx = (idx + 1) % 4
		}
		answers = append(answers, dto.AnswerDTO{QuestionID: q.QuestionID, SelectedIndex: intPtr(idx)})
	}
	return answers
}

func TestStartSkillAttemptSnapshotsQuestionsWithoutAnswerKey(t *testing.T) {
	f := newSkillFixture(t)
	ctx := context.Background()

	attempt, err := f.svc.StartAttempt(ctx, f.candidate.ID, "  React ")
	require.NoError(t, err)
	assert.Equal(t, "React", attempt.SkillName)
	assert.Equal(t, 1, attempt.AttemptNumber)
	assert.Equal(t, model.AttemptInProgress, attempt.Status)
	assert.Len(t, attempt.Questions, model.SkillQuestionCount)

	stored, err := f.attempts.FindByID(ctx, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, "react", stored.SkillKey)
	for _, q := range stored.Questions {
		assert.NotEmpty(t, q.ContentHash)
	}
}

func TestStartSkillAttemptResumesOpenAttempt(t *testing.T) {
	f := newSkillFixture(t)
	ctx := context.Background()

	first, err := f.svc.StartAttempt(ctx, f.candidate.ID, "React")
	require.NoError(t, err)
	again, err := f.svc.StartAttempt(ctx, f.candidate.ID, "react")
	require.NoError(t, err)

	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 1, again.AttemptNumber)
	assert.Equal(t, 1, f.supply.calls, "resume must not request new questions")
}

func TestStartSkillAttemptNumbersIncreaseAndAvoidRecentQuestions(t *testing.T) {
	f := newSkillFixture(t)
	ctx := context.Background()

	first, err := f.svc.StartAttempt(ctx, f.candidate.ID, "Go")
	require.NoError(t, err)
	assert.Empty(t, f.supply.lastAvoid)

	_, err = f.svc.SubmitAttempt(ctx, f.candidate.ID, first.ID, dto.SubmitSkillAttemptDTO{Answers: f.answersFor(t, first.ID, 3)})
	require.NoError(t, err)

	second, err := f.svc.StartAttempt(ctx, f.candidate.ID, "Go")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, second.AttemptNumber)

	stored, err := f.attempts.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, stored.ContentHashes(), f.supply.lastAvoid)
}

func TestStartSkillAttemptErrors(t *testing.T) {
	ctx := context.Background()

	f := newSkillFixture(t)
	_, err := f.svc.StartAttempt(ctx, f.candidate.ID, "   ")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.svc.StartAttempt(ctx, uuid.New(), "Go")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	f.supply.generate = func(string, int) ([]model.Question, error) { return nil, ErrNoGenerator }
	_, err = f.svc.StartAttempt(ctx, f.candidate.ID, "Go")
	assert.Equal(t, apperror.CodeNoGenerator, apperror.CodeOf(err))
	assert.Equal(t, apperror.KindUpstreamUnavailable, apperror.KindOf(err))

	f.supply.generate = func(string, int) ([]model.Question, error) { return nil, errors.New("timeout") }
	_, err = f.svc.StartAttempt(ctx, f.candidate.ID, "Go")
	assert.Equal(t, apperror.CodeUpstream, apperror.CodeOf(err))

	f.supply.generate = func(string, int) ([]model.Question, error) { return makeQuestions(9), nil }
	_, err = f.svc.StartAttempt(ctx, f.candidate.ID, "Go")
	assert.Equal(t, apperror.CodeUpstream, apperror.CodeOf(err))

	f.supply.generate = func(string, int) ([]model.Question, error) {
		qs := makeQuestions(10)
		qs[3].Options = qs[3].Options[:3]
		return qs, nil
	}
	_, err = f.svc.StartAttempt(ctx, f.candidate.ID, "Go")
	assert.Equal(t, apperror.CodeUpstream, apperror.CodeOf(err))

	f.supply.generate = func(string, int) ([]model.Question, error) {
		qs := makeQuestions(10)
		qs[1].QuestionID = qs[0].QuestionID
		return qs, nil
	}
	_, err = f.svc.StartAttempt(ctx, f.candidate.ID, "Go")
	assert.Equal(t, apperror.CodeUpstream, apperror.CodeOf(err))

	history, err := f.svc.ListHistory(ctx, f.candidate.ID, "Go")
	require.NoError(t, err)
	assert.Empty(t, history, "failed starts must not leave attempts behind")
}

func TestStartSkillAttemptAssignsMissingQuestionIDs(t *testing.T) {
	f := newSkillFixture(t)
	f.supply.generate = func(_ string, n int) ([]model.Question, error) {
		qs := makeQuestions(n)
		for i := range qs {
			qs[i].QuestionID = ""
		}
		return qs, nil
	}
	attempt, err := f.svc.StartAttempt(context.Background(), f.candidate.ID, "Go")
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, q := range attempt.Questions {
		assert.NotEmpty(t, q.QuestionID)
		assert.False(t, seen[q.QuestionID])
		seen[q.QuestionID] = true
	}
}

func TestSubmitSkillAttemptGradesAndNotifies(t *testing.T) {
	f := newSkillFixture(t)
	ctx := context.Background()
	attempt, err := f.svc.StartAttempt(ctx, f.candidate.ID, "React")
	require.NoError(t, err)

	result, err := f.svc.SubmitAttempt(ctx, f.candidate.ID, attempt.ID, dto.SubmitSkillAttemptDTO{
		Answers:        f.answersFor(t, attempt.ID, 7),
		ViolationCount: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AttemptSubmitted, result.Status)
	assert.Equal(t, 7, result.CorrectCount)
	assert.Equal(t, 70, result.Accuracy)
	assert.Equal(t, model.TierVerified, result.VerificationStatus)
	assert.Equal(t, model.SkillQuestionCount, result.TotalQuestions)
	require.NotNil(t, result.SubmittedAt)

	require.Len(t, f.sink.events, 1)
	assert.Equal(t, notification.EventSkillAttemptGraded, f.sink.events[0].Type)
	assert.Equal(t, attempt.ID.String(), f.sink.events[0].SubjectID)
}

func TestSubmitSkillAttemptProctoringFailure(t *testing.T) {
	f := newSkillFixture(t)
	ctx := context.Background()

	attempt, err := f.svc.StartAttempt(ctx, f.candidate.ID, "React")
	require.NoError(t, err)
	result, err := f.svc.SubmitAttempt(ctx, f.candidate.ID, attempt.ID, dto.SubmitSkillAttemptDTO{
		Answers:        f.answersFor(t, attempt.ID, 10),
		ViolationCount: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AttemptFailed, result.Status)
	assert.Equal(t, 0, result.Accuracy)
	assert.Equal(t, 0, result.CorrectCount)
	assert.Equal(t, model.TierNotVerified, result.VerificationStatus)

	attempt, err = f.svc.StartAttempt(ctx, f.candidate.ID, "React")
	require.NoError(t, err)
	result, err = f.svc.SubmitAttempt(ctx, f.candidate.ID, attempt.ID, dto.SubmitSkillAttemptDTO{
		Answers:       f.answersFor(t, attempt.ID, 10),
		AutoSubmitted: true,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AttemptFailed, result.Status)
	assert.Equal(t, 0, result.Accuracy)
}

func TestSubmitSkillAttemptRejections(t *testing.T) {
	f := newSkillFixture(t)
	ctx := context.Background()
	attempt, err := f.svc.StartAttempt(ctx, f.candidate.ID, "React")
	require.NoError(t, err)
	answers := f.answersFor(t, attempt.ID, 10)

	_, err = f.svc.SubmitAttempt(ctx, f.candidate.ID, uuid.New(), dto.SubmitSkillAttemptDTO{Answers: answers})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = f.svc.SubmitAttempt(ctx, uuid.New(), attempt.ID, dto.SubmitSkillAttemptDTO{Answers: answers})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	_, err = f.svc.SubmitAttempt(ctx, f.candidate.ID, attempt.ID, dto.SubmitSkillAttemptDTO{Answers: answers[:9]})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	unknown := append([]dto.AnswerDTO(nil), answers...)
	unknown[4].QuestionID = "not-in-attempt"
	_, err = f.svc.SubmitAttempt(ctx, f.candidate.ID, attempt.ID, dto.SubmitSkillAttemptDTO{Answers: unknown})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	duplicate := append([]dto.AnswerDTO(nil), answers...)
	duplicate[1].QuestionID = duplicate[0].QuestionID
	_, err = f.svc.SubmitAttempt(ctx, f.candidate.ID, attempt.ID, dto.SubmitSkillAttemptDTO{Answers: duplicate})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	outOfRange := append([]dto.AnswerDTO(nil), answers...)
	outOfRange[2].SelectedIndex = intPtr(4)
	_, err = f.svc.SubmitAttempt(ctx, f.candidate.ID, attempt.ID, dto.SubmitSkillAttemptDTO{Answers: outOfRange})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.svc.SubmitAttempt(ctx, f.candidate.ID, attempt.ID, dto.SubmitSkillAttemptDTO{Answers: answers, ViolationCount: -1})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	stored, err := f.attempts.FindByID(ctx, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptInProgress, stored.Status, "rejected submissions leave the attempt open")

	_, err = f.svc.SubmitAttempt(ctx, f.candidate.ID, attempt.ID, dto.SubmitSkillAttemptDTO{Answers: answers})
	require.NoError(t, err)
	_, err = f.svc.SubmitAttempt(ctx, f.candidate.ID, attempt.ID, dto.SubmitSkillAttemptDTO{Answers: answers})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, apperror.CodeAlreadySubmitted, apperror.CodeOf(err))
}

func TestSubmitSkillAttemptLosesRaceAsAlreadySubmitted(t *testing.T) {
	f := newSkillFixture(t)
	ctx := context.Background()
	attempt, err := f.svc.StartAttempt(ctx, f.candidate.ID, "React")
	require.NoError(t, err)
	answers := f.answersFor(t, attempt.ID, 10)

	// Another request completes the attempt between our read and our write.
	stale := &staleSkillAttemptRepo{fakeSkillAttemptRepo: f.attempts}
	f.svc.attemptRepo = stale
	_, err = f.svc.SubmitAttempt(ctx, f.candidate.ID, attempt.ID, dto.SubmitSkillAttemptDTO{Answers: answers})
	assert.Equal(t, apperror.CodeAlreadySubmitted, apperror.CodeOf(err))
}

type staleSkillAttemptRepo struct {
	*fakeSkillAttemptRepo
}

func (r *staleSkillAttemptRepo) CompleteSubmission(ctx context.Context, a *model.SkillAttempt) error {
	done := *a
	done.Status = model.AttemptSubmitted
	r.put(done)
	return r.fakeSkillAttemptRepo.CompleteSubmission(ctx, a)
}

func TestListSkillHistoryAppliesReadTimeOverride(t *testing.T) {
	f := newSkillFixture(t)
	ctx := context.Background()
	submitted := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	f.attempts.put(model.SkillAttempt{
		CandidateID:        f.candidate.ID,
		SkillName:          "React",
		SkillKey:           "react",
		AttemptNumber:      1,
		Status:             model.AttemptSubmitted,
		StartedAt:          submitted.Add(-time.Hour),
		SubmittedAt:        &submitted,
		Questions:          makeQuestions(10),
		ViolationCount:     3,
		CorrectCount:       8,
		Accuracy:           80,
		VerificationStatus: model.TierVerified,
	})
	f.attempts.put(model.SkillAttempt{
		CandidateID:        f.candidate.ID,
		SkillName:          "Go",
		SkillKey:           "go",
		AttemptNumber:      1,
		Status:             model.AttemptSubmitted,
		StartedAt:          submitted,
		Questions:          makeQuestions(10),
		Accuracy:           90,
		CorrectCount:       9,
		VerificationStatus: model.TierVerified,
	})

	history, err := f.svc.ListHistory(ctx, f.candidate.ID, "REACT")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 0, history[0].Accuracy)
	assert.Equal(t, 0, history[0].CorrectCount)
	assert.Equal(t, model.TierNotVerified, history[0].VerificationStatus)
	assert.Equal(t, 3, history[0].ViolationCount)

	all, err := f.svc.ListHistory(ctx, f.candidate.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Go", all[0].SkillName, "newest first")
	assert.Equal(t, 90, all[0].Accuracy)
}

// racingSkillAttemptRepo runs beforeCreate once, just before the insert, to
// stand in for a concurrent start on the same skill.
type racingSkillAttemptRepo struct {
	*fakeSkillAttemptRepo
	beforeCreate func()
}

func (r *racingSkillAttemptRepo) Create(ctx context.Context, a *model.SkillAttempt) error {
	if r.beforeCreate != nil {
		hook := r.beforeCreate
		r.beforeCreate = nil
		hook()
	}
	return r.fakeSkillAttemptRepo.Create(ctx, a)
}

func TestStartSkillAttemptResumesConcurrentWinner(t *testing.T) {
	f := newSkillFixture(t)
	ctx := context.Background()

	var winner model.SkillAttempt
	f.svc.attemptRepo = &racingSkillAttemptRepo{
		fakeSkillAttemptRepo: f.attempts,
		beforeCreate: func() {
			number, err := f.svc.sequenceRepo.Next(ctx, f.candidate.ID, model.SubjectSkill, "react")
			require.NoError(t, err)
			winner = f.attempts.put(model.SkillAttempt{
				CandidateID:        f.candidate.ID,
				SkillName:          "React",
				SkillKey:           "react",
				AttemptNumber:      number,
				Status:             model.AttemptInProgress,
				StartedAt:          time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
				Questions:          makeQuestions(model.SkillQuestionCount),
				VerificationStatus: model.TierNotVerified,
			})
		},
	}

	attempt, err := f.svc.StartAttempt(ctx, f.candidate.ID, "React")
	require.NoError(t, err)
	assert.Equal(t, winner.ID, attempt.ID)
	// The losing start drew number 1 before its insert failed.
	assert.Equal(t, 2, attempt.AttemptNumber)

	all, err := f.attempts.ListByCandidate(ctx, f.candidate.ID, "react")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, model.AttemptInProgress, all[0].Status)

	_, err = f.svc.SubmitAttempt(ctx, f.candidate.ID, winner.ID, dto.SubmitSkillAttemptDTO{Answers: f.answersFor(t, winner.ID, 10)})
	require.NoError(t, err)

	// Number 1 is never used by any row.
	next, err := f.svc.StartAttempt(ctx, f.candidate.ID, "React")
	require.NoError(t, err)
	assert.Equal(t, 3, next.AttemptNumber)
}

type closedRaceSkillAttemptRepo struct {
	*fakeSkillAttemptRepo
}

func (r *closedRaceSkillAttemptRepo) Create(context.Context, *model.SkillAttempt) error {
	return repository.ErrDuplicate
}

func TestStartSkillAttemptConflictWhenWinnerAlreadyClosed(t *testing.T) {
	f := newSkillFixture(t)
	f.svc.attemptRepo = &closedRaceSkillAttemptRepo{fakeSkillAttemptRepo: f.attempts}

	_, err := f.svc.StartAttempt(context.Background(), f.candidate.ID, "React")
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, apperror.CodeStartConflict, apperror.CodeOf(err))
}
