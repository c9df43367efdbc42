package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/talentgate/internal/apperror"
	"github.com/lshigami/talentgate/internal/dto"
	"github.com/lshigami/talentgate/internal/model"
	"github.com/lshigami/talentgate/internal/notification"
	"github.com/lshigami/talentgate/internal/repository"
	"github.com/rs/zerolog/log"
)

// JobAssessmentService runs a job's authored screening assessment.
type JobAssessmentService interface {
	StartAttempt(ctx context.Context, candidateID, jobID uuid.UUID) (*dto.JobAttemptDTO, error)
	SubmitAttempt(ctx context.Context, candidateID, jobID, attemptID uuid.UUID, req dto.SubmitJobAttemptDTO) (*dto.JobAttemptResultDTO, error)
	ListAttempts(ctx context.Context, candidateID, jobID uuid.UUID) ([]dto.JobAttemptResultDTO, error)
}

type jobAssessmentService struct {
	jobRepo       repository.JobRepository
	attemptRepo   repository.JobAttemptRepository
	sequenceRepo  repository.AttemptSequenceRepository
	candidateRepo repository.CandidateRepository
	sink          notification.Sink
	now           func() time.Time
}

func NewJobAssessmentService(
	jobRepo repository.JobRepository,
	attemptRepo repository.JobAttemptRepository,
	sequenceRepo repository.AttemptSequenceRepository,
	candidateRepo repository.CandidateRepository,
	sink notification.Sink,
) JobAssessmentService {
	return &jobAssessmentService{
		jobRepo:       jobRepo,
		attemptRepo:   attemptRepo,
		sequenceRepo:  sequenceRepo,
		candidateRepo: candidateRepo,
		sink:          sink,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *jobAssessmentService) StartAttempt(ctx context.Context, candidateID, jobID uuid.UUID) (*dto.JobAttemptDTO, error) {
	job, err := loadJob(ctx, s.jobRepo, jobID)
	if err != nil {
		return nil, err
	}
	screening := job.Screening.Data()
	if !screening.Active() {
		return nil, apperror.New(apperror.KindPreconditionFailed, apperror.CodeNotConfigured, "job has no screening assessment configured")
	}

	if _, err := s.candidateRepo.FindByIDWithSkills(ctx, candidateID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("candidate %s not found", candidateID)
		}
		log.Error().Err(err).Str("candidateID", candidateID.String()).Msg("StartJobAttempt: Failed to load candidate")
		return nil, apperror.Internal("failed to load candidate", err)
	}

	if open, err := s.findOpen(ctx, candidateID, jobID); err != nil || open != nil {
		return open, err
	}

	number, err := s.sequenceRepo.Next(ctx, candidateID, model.SubjectJob, jobID.String())
	if err != nil {
		log.Error().Err(err).Str("jobID", jobID.String()).Msg("StartJobAttempt: Failed to allocate attempt number")
		return nil, apperror.Internal("failed to allocate attempt number", err)
	}

	attempt := &model.JobAttempt{
		CandidateID:      candidateID,
		JobID:            jobID,
		AttemptNumber:    number,
		Status:           model.AttemptInProgress,
		StartedAt:        s.now(),
		Questions:        snapshotQuestions(screening.Questions),
		Answers:          []model.AnswerSelection{},
		PassPercent:      screening.EffectivePassPercent(),
		MarksPerQuestion: screening.EffectiveMarksPerQuestion(),
	}
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			log.Info().Str("candidateID", candidateID.String()).Str("jobID", jobID.String()).Msg("StartJobAttempt: Concurrent start detected, resuming open attempt")
			if open, findErr := s.findOpen(ctx, candidateID, jobID); findErr != nil || open != nil {
				return open, findErr
			}
			log.Warn().Str("candidateID", candidateID.String()).Str("jobID", jobID.String()).Msg("StartJobAttempt: Concurrent attempt closed before it could be resumed")
			return nil, errStartConflict()
		}
		log.Error().Err(err).Str("jobID", jobID.String()).Msg("StartJobAttempt: Failed to create attempt")
		return nil, apperror.Internal("failed to create attempt", err)
	}

	log.Info().
		Str("attemptID", attempt.ID.String()).
		Str("candidateID", candidateID.String()).
		Str("jobID", jobID.String()).
		Int("attemptNumber", number).
		Msg("Job screening attempt started")
	return toJobAttemptDTO(attempt), nil
}

func (s *jobAssessmentService) findOpen(ctx context.Context, candidateID, jobID uuid.UUID) (*dto.JobAttemptDTO, error) {
	open, err := s.attemptRepo.FindInProgress(ctx, candidateID, jobID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Str("jobID", jobID.String()).Msg("Failed to look up open job attempt")
		return nil, apperror.Internal("failed to look up open attempt", err)
	}
	return toJobAttemptDTO(open), nil
}

func (s *jobAssessmentService) SubmitAttempt(ctx context.Context, candidateID, jobID, attemptID uuid.UUID, req dto.SubmitJobAttemptDTO) (*dto.JobAttemptResultDTO, error) {
	attempt, err := s.attemptRepo.FindByID(ctx, attemptID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && attempt.JobID != jobID) {
		return nil, apperror.NotFound("attempt %s not found for job %s", attemptID, jobID)
	}
	if err != nil {
		log.Error().Err(err).Str("attemptID", attemptID.String()).Msg("SubmitJobAttempt: Failed to load attempt")
		return nil, apperror.Internal("failed to load attempt", err)
	}
	if attempt.CandidateID != candidateID {
		return nil, apperror.Forbidden("attempt %s does not belong to the caller", attemptID)
	}
	if attempt.Status.Terminal() {
		return nil, errAlreadySubmitted()
	}

	answers, err := normalizeAnswers(attempt.Questions, req.Answers, false)
	if err != nil {
		return nil, err
	}
	attempt.Answers = answers

	grade := GradeJobAttempt(attempt)
	submittedAt := s.now()
	attempt.Status = model.AttemptSubmitted
	attempt.SubmittedAt = &submittedAt
	attempt.CorrectCount = grade.CorrectCount
	attempt.ScoreMarks = grade.ScoreMarks
	attempt.TotalMarks = grade.TotalMarks
	attempt.Percent = grade.Percent
	attempt.Passed = grade.Passed

	if err := s.attemptRepo.CompleteSubmission(ctx, attempt); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, errAlreadySubmitted()
		}
		log.Error().Err(err).Str("attemptID", attemptID.String()).Msg("SubmitJobAttempt: Failed to persist graded attempt")
		return nil, apperror.Internal("failed to save attempt", err)
	}

	log.Info().
		Str("attemptID", attemptID.String()).
		Float64("percent", attempt.Percent).
		Float64("passPercent", attempt.PassPercent).
		Bool("passed", attempt.Passed).
		Msg("Job screening attempt graded")

	s.sink.Publish(ctx, notification.Event{
		Type:        notification.EventJobAttemptGraded,
		CandidateID: candidateID.String(),
		SubjectID:   attempt.ID.String(),
		Payload: map[string]interface{}{
			"jobId":   jobID.String(),
			"percent": attempt.Percent,
			"passed":  attempt.Passed,
		},
		OccurredAt: submittedAt,
	})

	return toJobResultDTO(attempt), nil
}

func (s *jobAssessmentService) ListAttempts(ctx context.Context, candidateID, jobID uuid.UUID) ([]dto.JobAttemptResultDTO, error) {
	attempts, err := s.attemptRepo.ListByCandidateAndJob(ctx, candidateID, jobID)
	if err != nil {
		log.Error().Err(err).Str("jobID", jobID.String()).Msg("ListJobAttempts: Failed to list attempts")
		return nil, apperror.Internal("failed to list attempts", err)
	}
	resp := make([]dto.JobAttemptResultDTO, 0, len(attempts))
	for i := range attempts {
		resp = append(resp, *toJobResultDTO(&attempts[i]))
	}
	return resp, nil
}

// snapshotQuestions deep-copies authored questions so later edits to the job
// never reach an existing attempt.
func snapshotQuestions(questions []model.Question) []model.Question {
	out := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		q.Options = append([]string(nil), q.Options...)
		out = append(out, q.WithContentHash())
	}
	return out
}

func loadJob(ctx context.Context, jobRepo repository.JobRepository, jobID uuid.UUID) (*model.Job, error) {
	job, err := jobRepo.FindByID(ctx, jobID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("job %s not found", jobID)
	}
	if err != nil {
		log.Error().Err(err).Str("jobID", jobID.String()).Msg("Failed to load job")
		return nil, apperror.Internal("failed to load job", err)
	}
	return job, nil
}

func toJobAttemptDTO(attempt *model.JobAttempt) *dto.JobAttemptDTO {
	var resp dto.JobAttemptDTO
	if err := copier.Copy(&resp, attempt); err != nil {
		log.Warn().Err(err).Str("attemptID", attempt.ID.String()).Msg("Failed to copy job attempt to DTO")
	}
	resp.Questions = toQuestionDTOs(attempt.Questions)
	return &resp
}

func toJobResultDTO(attempt *model.JobAttempt) *dto.JobAttemptResultDTO {
	var resp dto.JobAttemptResultDTO
	if err := copier.Copy(&resp, attempt); err != nil {
		log.Warn().Err(err).Str("attemptID", attempt.ID.String()).Msg("Failed to copy job attempt result to DTO")
	}
	resp.TotalQuestions = len(attempt.Questions)
	return &resp
}
