package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/talentgate/internal/apperror"
	"github.com/lshigami/talentgate/internal/dto"
	"github.com/lshigami/talentgate/internal/model"
	"github.com/lshigami/talentgate/internal/repository"
	"github.com/lshigami/talentgate/internal/skillkey"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type AdminJobService interface {
	CreateJob(ctx context.Context, req dto.JobCreateDTO) (*dto.JobResponseDTO, error)
}

type adminJobService struct {
	jobRepo repository.JobRepository
}

func NewAdminJobService(jobRepo repository.JobRepository) AdminJobService {
	return &adminJobService{jobRepo: jobRepo}
}

func (s *adminJobService) CreateJob(ctx context.Context, req dto.JobCreateDTO) (*dto.JobResponseDTO, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Validation("title is required")
	}

	// Keep the first spelling of each skill; later spellings of the same key are dropped.
	seen := skillkey.NewSet()
	var required []string
	for _, name := range req.RequiredSkills {
		name = strings.TrimSpace(name)
		if name == "" || seen.Has(skillkey.Normalize(name)) {
			continue
		}
		seen.Add(name)
		required = append(required, name)
	}
	if len(required) == 0 {
		return nil, apperror.Validation("at least one required skill is needed")
	}

	screening, err := buildScreening(req.Screening)
	if err != nil {
		return nil, err
	}

	job := model.Job{
		Title:          title,
		Company:        strings.TrimSpace(req.Company),
		Description:    req.Description,
		RequiredSkills: required,
		Screening:      datatypes.NewJSONType(screening),
	}
	if err := s.jobRepo.Create(ctx, &job); err != nil {
		log.Error().Err(err).Msg("Failed to create job in database")
		return nil, apperror.Internal("failed to create job", err)
	}

	log.Info().
		Str("jobID", job.ID.String()).
		Strs("requiredSkills", required).
		Bool("screening", screening.Active()).
		Msg("Job created")
	return toJobResponseDTO(&job), nil
}

func buildScreening(req *dto.ScreeningCreateDTO) (model.ScreeningAssessment, error) {
	var screening model.ScreeningAssessment
	if req == nil {
		return screening, nil
	}

	screening.Enabled = req.Enabled
	pass := model.DefaultPassPercent
	if req.PassPercent != nil {
		if *req.PassPercent < 0 || *req.PassPercent > 100 {
			return screening, apperror.Validation("passPercent must be within 0..100, got %.1f", *req.PassPercent)
		}
		pass = *req.PassPercent
	}
	screening.PassPercent = &pass
	screening.MarksPerQuestion = model.DefaultMarksPerQuestion
	if req.MarksPerQuestion != nil {
		if *req.MarksPerQuestion <= 0 {
			return screening, apperror.Validation("marksPerQuestion must be positive, got %.2f", *req.MarksPerQuestion)
		}
		screening.MarksPerQuestion = *req.MarksPerQuestion
	}
	if screening.Enabled && len(req.Questions) == 0 {
		return screening, apperror.Validation("an enabled screening assessment needs at least one question")
	}

	ids := make(map[string]bool, len(req.Questions))
	for i, qDto := range req.Questions {
		if qDto.CorrectIndex == nil {
			return screening, apperror.Validation("question %d has no correctIndex", i+1)
		}
		var q model.Question
		if err := copier.Copy(&q, &qDto); err != nil {
			return screening, apperror.Internal("failed to read question", err)
		}
		q.CorrectIndex = *qDto.CorrectIndex
		q.Difficulty = model.Difficulty(strings.ToLower(strings.TrimSpace(qDto.Difficulty)))
		if strings.TrimSpace(q.QuestionID) == "" {
			q.QuestionID = uuid.NewString()
		}
		q = q.WithContentHash()
		if err := q.Validate(); err != nil {
			return screening, apperror.Validation("question %d: %v", i+1, err)
		}
		if ids[q.QuestionID] {
			return screening, apperror.Validation("duplicate questionId %q", q.QuestionID)
		}
		ids[q.QuestionID] = true
		screening.Questions = append(screening.Questions, q)
	}
	return screening, nil
}
