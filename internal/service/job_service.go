package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lshigami/talentgate/internal/apperror"
	"github.com/lshigami/talentgate/internal/dto"
	"github.com/lshigami/talentgate/internal/model"
	"github.com/lshigami/talentgate/internal/repository"
	"github.com/rs/zerolog/log"
)

// JobService exposes job configuration to candidates without the screening answer key.
type JobService interface {
	ListJobs(ctx context.Context) ([]dto.JobResponseDTO, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (*dto.JobResponseDTO, error)
}

type jobService struct {
	jobRepo repository.JobRepository
}

func NewJobService(jobRepo repository.JobRepository) JobService {
	return &jobService{jobRepo: jobRepo}
}

func (s *jobService) ListJobs(ctx context.Context) ([]dto.JobResponseDTO, error) {
	jobs, err := s.jobRepo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get all jobs from repository")
		return nil, apperror.Internal("failed to list jobs", err)
	}

	dtos := make([]dto.JobResponseDTO, 0, len(jobs))
	for i := range jobs {
		dtos = append(dtos, *toJobResponseDTO(&jobs[i]))
	}
	return dtos, nil
}

func (s *jobService) GetJob(ctx context.Context, jobID uuid.UUID) (*dto.JobResponseDTO, error) {
	job, err := loadJob(ctx, s.jobRepo, jobID)
	if err != nil {
		return nil, err
	}
	return toJobResponseDTO(job), nil
}

func toJobResponseDTO(job *model.Job) *dto.JobResponseDTO {
	resp := &dto.JobResponseDTO{
		ID:             job.ID,
		Title:          job.Title,
		Company:        job.Company,
		Description:    job.Description,
		RequiredSkills: append([]string{}, job.RequiredSkills...),
		CreatedAt:      job.CreatedAt,
	}
	screening := job.Screening.Data()
	if screening.Enabled || len(screening.Questions) > 0 {
		resp.Screening = &dto.ScreeningSummaryDTO{
			Enabled:          screening.Active(),
			PassPercent:      screening.EffectivePassPercent(),
			MarksPerQuestion: screening.EffectiveMarksPerQuestion(),
			QuestionCount:    len(screening.Questions),
		}
	}
	return resp
}
