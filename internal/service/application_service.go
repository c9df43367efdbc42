package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lshigami/talentgate/internal/apperror"
	"github.com/lshigami/talentgate/internal/dto"
	"github.com/lshigami/talentgate/internal/model"
	"github.com/lshigami/talentgate/internal/notification"
	"github.com/lshigami/talentgate/internal/repository"
	"github.com/rs/zerolog/log"
)

// ApplicationService gates and records job applications.
type ApplicationService interface {
	CheckEligibility(ctx context.Context, candidateID, jobID uuid.UUID) (*dto.EligibilityDTO, error)
	Apply(ctx context.Context, candidateID, jobID uuid.UUID) (*dto.ApplicationDTO, error)
	ListMyApplications(ctx context.Context, candidateID uuid.UUID) ([]dto.MyApplicationDTO, error)
}

type applicationService struct {
	jobRepo         repository.JobRepository
	jobAttemptRepo  repository.JobAttemptRepository
	applicationRepo repository.ApplicationRepository
	verification    VerificationService
	sink            notification.Sink
}

func NewApplicationService(
	jobRepo repository.JobRepository,
	jobAttemptRepo repository.JobAttemptRepository,
	applicationRepo repository.ApplicationRepository,
	verification VerificationService,
	sink notification.Sink,
) ApplicationService {
	return &applicationService{
		jobRepo:         jobRepo,
		jobAttemptRepo:  jobAttemptRepo,
		applicationRepo: applicationRepo,
		verification:    verification,
		sink:            sink,
	}
}

func (s *applicationService) CheckEligibility(ctx context.Context, candidateID, jobID uuid.UUID) (*dto.EligibilityDTO, error) {
	job, err := loadJob(ctx, s.jobRepo, jobID)
	if err != nil {
		return nil, err
	}
	score, err := s.evaluate(ctx, candidateID, job)
	if err != nil {
		return nil, err
	}
	return &dto.EligibilityDTO{JobID: jobID, Eligible: true, MatchScore: score}, nil
}

// evaluate runs the gate in its fixed order and returns the verified match score.
func (s *applicationService) evaluate(ctx context.Context, candidateID uuid.UUID, job *model.Job) (int, error) {
	keys, err := s.verification.VerifiedSkillKeys(ctx, candidateID)
	if err != nil {
		return 0, err
	}

	if job.Screening.Data().Active() {
		passed, err := s.jobAttemptRepo.HasPassed(ctx, candidateID, job.ID)
		if err != nil {
			log.Error().Err(err).Str("jobID", job.ID.String()).Msg("Eligibility: Failed to check screening result")
			return 0, apperror.Internal("failed to check screening result", err)
		}
		if !passed {
			return 0, apperror.New(apperror.KindPreconditionFailed, apperror.CodeAssessmentNotPassed, "the job's screening assessment has not been passed")
		}
	}

	if len(keys) == 0 {
		return 0, apperror.New(apperror.KindPreconditionFailed, apperror.CodeSkillsNotVerified, "candidate has no verified skills")
	}

	match := Score(job.RequiredSkills, keys)
	if match.MatchScore < MinApplyMatchScore {
		return 0, apperror.New(apperror.KindPreconditionFailed, apperror.CodeLowMatch,
			fmt.Sprintf("verified skill match %d is below the required %d", match.MatchScore, MinApplyMatchScore))
	}
	return match.MatchScore, nil
}

func (s *applicationService) Apply(ctx context.Context, candidateID, jobID uuid.UUID) (*dto.ApplicationDTO, error) {
	job, err := loadJob(ctx, s.jobRepo, jobID)
	if err != nil {
		return nil, err
	}

	exists, err := s.applicationRepo.Exists(ctx, candidateID, jobID)
	if err != nil {
		log.Error().Err(err).Str("jobID", jobID.String()).Msg("Apply: Failed to check existing application")
		return nil, apperror.Internal("failed to check existing application", err)
	}
	if exists {
		return nil, errAlreadyApplied()
	}

	score, err := s.evaluate(ctx, candidateID, job)
	if err != nil {
		return nil, err
	}

	application := &model.Application{
		CandidateID: candidateID,
		JobID:       jobID,
		MatchScore:  &score,
		Status:      model.ApplicationApplied,
	}
	if err := s.applicationRepo.Create(ctx, application); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errAlreadyApplied()
		}
		log.Error().Err(err).Str("jobID", jobID.String()).Msg("Apply: Failed to create application")
		return nil, apperror.Internal("failed to create application", err)
	}

	log.Info().
		Str("applicationID", application.ID.String()).
		Str("candidateID", candidateID.String()).
		Str("jobID", jobID.String()).
		Int("matchScore", score).
		Msg("Application created")

	s.sink.Publish(ctx, notification.Event{
		Type:        notification.EventApplicationCreated,
		CandidateID: candidateID.String(),
		SubjectID:   application.ID.String(),
		Payload:     map[string]interface{}{"jobId": jobID.String(), "matchScore": score},
		OccurredAt:  application.CreatedAt,
	})

	return &dto.ApplicationDTO{
		ID:         application.ID,
		JobID:      jobID,
		JobTitle:   job.Title,
		Status:     application.Status,
		MatchScore: application.MatchScore,
		CreatedAt:  application.CreatedAt,
	}, nil
}

// ListMyApplications pairs each stored snapshot with a live verified match and an
// informational profile match. A missing snapshot is back-filled from the live value.
func (s *applicationService) ListMyApplications(ctx context.Context, candidateID uuid.UUID) ([]dto.MyApplicationDTO, error) {
	verified, err := s.verification.VerifiedSkillKeys(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	profile, err := s.verification.ProfileSkillKeys(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	applications, err := s.applicationRepo.ListByCandidateWithJob(ctx, candidateID)
	if err != nil {
		log.Error().Err(err).Str("candidateID", candidateID.String()).Msg("ListMyApplications: Failed to list applications")
		return nil, apperror.Internal("failed to list applications", err)
	}

	resp := make([]dto.MyApplicationDTO, 0, len(applications))
	for _, app := range applications {
		live := Score(app.Job.RequiredSkills, verified)
		if app.MatchScore == nil {
			if err := s.applicationRepo.SetMatchScoreIfMissing(ctx, app.ID, live.MatchScore); err != nil {
				log.Warn().Err(err).Str("applicationID", app.ID.String()).Msg("Failed to back-fill application match score")
			}
			score := live.MatchScore
			app.MatchScore = &score
		}
		resp = append(resp, dto.MyApplicationDTO{
			ApplicationDTO: dto.ApplicationDTO{
				ID:         app.ID,
				JobID:      app.JobID,
				JobTitle:   app.Job.Title,
				Status:     app.Status,
				MatchScore: app.MatchScore,
				CreatedAt:  app.CreatedAt,
			},
			VerifiedMatch: live.toDTO(),
			ProfileMatch:  Score(app.Job.RequiredSkills, profile).toDTO(),
		})
	}
	return resp, nil
}

func errAlreadyApplied() error {
	return apperror.New(apperror.KindConflict, apperror.CodeAlreadyApplied, "candidate has already applied to this job")
}
