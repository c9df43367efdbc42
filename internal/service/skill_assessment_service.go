package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/talentgate/config"
	"github.com/lshigami/talentgate/internal/apperror"
	"github.com/lshigami/talentgate/internal/dto"
	"github.com/lshigami/talentgate/internal/model"
	"github.com/lshigami/talentgate/internal/notification"
	"github.com/lshigami/talentgate/internal/repository"
	"github.com/lshigami/talentgate/internal/skillkey"
	"github.com/rs/zerolog/log"
)

// SkillAssessmentService runs the per-skill, proctored assessment lifecycle.
type SkillAssessmentService interface {
	StartAttempt(ctx context.Context, candidateID uuid.UUID, skillName string) (*dto.SkillAttemptDTO, error)
	SubmitAttempt(ctx context.Context, candidateID, attemptID uuid.UUID, req dto.SubmitSkillAttemptDTO) (*dto.SkillAttemptResultDTO, error)
	ListHistory(ctx context.Context, candidateID uuid.UUID, skillName string) ([]dto.SkillAttemptResultDTO, error)
}

type skillAssessmentService struct {
	attemptRepo   repository.SkillAttemptRepository
	sequenceRepo  repository.AttemptSequenceRepository
	candidateRepo repository.CandidateRepository
	supply        QuestionSupply
	sink          notification.Sink
	recentWindow  int
	now           func() time.Time
}

func NewSkillAssessmentService(
	attemptRepo repository.SkillAttemptRepository,
	sequenceRepo repository.AttemptSequenceRepository,
	candidateRepo repository.CandidateRepository,
	supply QuestionSupply,
	sink notification.Sink,
	cfg *config.Config,
) SkillAssessmentService {
	return &skillAssessmentService{
		attemptRepo:   attemptRepo,
		sequenceRepo:  sequenceRepo,
		candidateRepo: candidateRepo,
		supply:        supply,
		sink:          sink,
		recentWindow:  cfg.QuestionSupply.RecentHashWindow,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// StartAttempt opens a new attempt, or returns the candidate's open attempt for
// the same skill so a reload never burns an attempt number.
func (s *skillAssessmentService) StartAttempt(ctx context.Context, candidateID uuid.UUID, skillName string) (*dto.SkillAttemptDTO, error) {
	skillName = strings.TrimSpace(skillName)
	key := skillkey.Normalize(skillName)
	if key == "" {
		return nil, apperror.Validation("skill name is required")
	}

	if _, err := s.candidateRepo.FindByIDWithSkills(ctx, candidateID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("candidate %s not found", candidateID)
		}
		log.Error().Err(err).Str("candidateID", candidateID.String()).Msg("StartAttempt: Failed to load candidate")
		return nil, apperror.Internal("failed to load candidate", err)
	}

	if open, err := s.findOpen(ctx, candidateID, key); err != nil || open != nil {
		return open, err
	}

	questions, err := s.generateQuestions(ctx, candidateID, skillName, key)
	if err != nil {
		return nil, err
	}

	number, err := s.sequenceRepo.Next(ctx, candidateID, model.SubjectSkill, key)
	if err != nil {
		log.Error().Err(err).Str("candidateID", candidateID.String()).Str("skill", key).Msg("StartAttempt: Failed to allocate attempt number")
		return nil, apperror.Internal("failed to allocate attempt number", err)
	}

	attempt := &model.SkillAttempt{
		CandidateID:        candidateID,
		SkillName:          skillName,
		SkillKey:           key,
		AttemptNumber:      number,
		Status:             model.AttemptInProgress,
		StartedAt:          s.now(),
		Questions:          questions,
		Answers:            []model.AnswerSelection{},
		VerificationStatus: model.TierNotVerified,
	}
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// A concurrent start won the open-attempt slot; resume it.
			log.Info().Str("candidateID", candidateID.String()).Str("skill", key).Msg("StartAttempt: Concurrent start detected, resuming open attempt")
			if open, findErr := s.findOpen(ctx, candidateID, key); findErr != nil || open != nil {
				return open, findErr
			}
			log.Warn().Str("candidateID", candidateID.String()).Str("skill", key).Msg("StartAttempt: Concurrent attempt closed before it could be resumed")
			return nil, errStartConflict()
		}
		log.Error().Err(err).Str("candidateID", candidateID.String()).Str("skill", key).Msg("StartAttempt: Failed to create attempt")
		return nil, apperror.Internal("failed to create attempt", err)
	}

	log.Info().
		Str("attemptID", attempt.ID.String()).
		Str("candidateID", candidateID.String()).
		Str("skill", key).
		Int("attemptNumber", number).
		Msg("Skill attempt started")
	return toSkillAttemptDTO(attempt), nil
}

func (s *skillAssessmentService) findOpen(ctx context.Context, candidateID uuid.UUID, key string) (*dto.SkillAttemptDTO, error) {
	open, err := s.attemptRepo.FindInProgress(ctx, candidateID, key)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Str("candidateID", candidateID.String()).Str("skill", key).Msg("Failed to look up open skill attempt")
		return nil, apperror.Internal("failed to look up open attempt", err)
	}
	log.Debug().Str("attemptID", open.ID.String()).Msg("Resuming open skill attempt")
	return toSkillAttemptDTO(open), nil
}

// generateQuestions asks the supply for a fresh question set, passing the content
// hashes from the candidate's recent attempts at this skill as the avoid-set.
func (s *skillAssessmentService) generateQuestions(ctx context.Context, candidateID uuid.UUID, skillName, key string) ([]model.Question, error) {
	var avoid []string
	if s.recentWindow > 0 {
		recent, err := s.attemptRepo.ListRecent(ctx, candidateID, key, s.recentWindow)
		if err != nil {
			log.Error().Err(err).Str("candidateID", candidateID.String()).Msg("Failed to load recent attempts")
			return nil, apperror.Internal("failed to load recent attempts", err)
		}
		seen := make(map[string]bool)
		for i := range recent {
			for _, h := range recent[i].ContentHashes() {
				if !seen[h] {
					seen[h] = true
					avoid = append(avoid, h)
				}
			}
		}
	}

	questions, err := s.supply.GenerateQuestions(ctx, skillName, model.SkillQuestionCount, avoid)
	if errors.Is(err, ErrNoGenerator) {
		return nil, apperror.Wrap(apperror.KindUpstreamUnavailable, apperror.CodeNoGenerator, "no question generator is available", err)
	}
	if err != nil {
		log.Error().Err(err).Str("skill", skillName).Msg("Question supply failed")
		return nil, apperror.Wrap(apperror.KindUpstreamUnavailable, apperror.CodeUpstream, "question supply failed", err)
	}
	if len(questions) != model.SkillQuestionCount {
		log.Warn().Int("got", len(questions)).Str("skill", skillName).Msg("Question supply returned the wrong number of questions")
		return nil, apperror.New(apperror.KindUpstreamUnavailable, apperror.CodeUpstream, "question supply returned an incomplete question set")
	}

	ids := make(map[string]bool, len(questions))
	snapshot := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if strings.TrimSpace(q.QuestionID) == "" {
			q.QuestionID = uuid.NewString()
		}
		q = q.WithContentHash()
		if err := q.Validate(); err != nil {
			log.Warn().Err(err).Str("skill", skillName).Msg("Question supply returned an invalid question")
			return nil, apperror.Wrap(apperror.KindUpstreamUnavailable, apperror.CodeUpstream, "question supply returned an invalid question", err)
		}
		if ids[q.QuestionID] {
			return nil, apperror.New(apperror.KindUpstreamUnavailable, apperror.CodeUpstream, "question supply returned duplicate question ids")
		}
		ids[q.QuestionID] = true
		q.Options = append([]string(nil), q.Options...)
		snapshot = append(snapshot, q)
	}
	return snapshot, nil
}

func (s *skillAssessmentService) SubmitAttempt(ctx context.Context, candidateID, attemptID uuid.UUID, req dto.SubmitSkillAttemptDTO) (*dto.SkillAttemptResultDTO, error) {
	attempt, err := s.attemptRepo.FindByID(ctx, attemptID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("skill attempt %s not found", attemptID)
	}
	if err != nil {
		log.Error().Err(err).Str("attemptID", attemptID.String()).Msg("SubmitAttempt: Failed to load attempt")
		return nil, apperror.Internal("failed to load attempt", err)
	}
	if attempt.CandidateID != candidateID {
		log.Warn().Str("attemptID", attemptID.String()).Str("candidateID", candidateID.String()).Msg("SubmitAttempt: Attempt belongs to another candidate")
		return nil, apperror.Forbidden("attempt %s does not belong to the caller", attemptID)
	}
	if attempt.Status.Terminal() {
		return nil, errAlreadySubmitted()
	}
	if req.ViolationCount < 0 {
		return nil, apperror.Validation("violationCount must not be negative")
	}

	answers, err := normalizeAnswers(attempt.Questions, req.Answers, true)
	if err != nil {
		return nil, err
	}

	attempt.Answers = answers
	attempt.ViolationCount = req.ViolationCount
	attempt.AutoSubmitted = req.AutoSubmitted

	grade := GradeSkillAttempt(attempt)
	submittedAt := s.now()
	attempt.Status = grade.Status
	attempt.CorrectCount = grade.CorrectCount
	attempt.Accuracy = grade.Accuracy
	attempt.VerificationStatus = grade.Tier
	attempt.SubmittedAt = &submittedAt

	if err := s.attemptRepo.CompleteSubmission(ctx, attempt); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, errAlreadySubmitted()
		}
		log.Error().Err(err).Str("attemptID", attemptID.String()).Msg("SubmitAttempt: Failed to persist graded attempt")
		return nil, apperror.Internal("failed to save attempt", err)
	}

	log.Info().
		Str("attemptID", attemptID.String()).
		Str("status", string(attempt.Status)).
		Int("accuracy", attempt.Accuracy).
		Str("tier", string(attempt.VerificationStatus)).
		Int("violations", attempt.ViolationCount).
		Bool("autoSubmitted", attempt.AutoSubmitted).
		Msg("Skill attempt graded")

	s.sink.Publish(ctx, notification.Event{
		Type:        notification.EventSkillAttemptGraded,
		CandidateID: candidateID.String(),
		SubjectID:   attempt.ID.String(),
		Payload: map[string]interface{}{
			"skill":              attempt.SkillName,
			"status":             attempt.Status,
			"accuracy":           attempt.Accuracy,
			"verificationStatus": attempt.VerificationStatus,
		},
		OccurredAt: submittedAt,
	})

	return toSkillResultDTO(ViewSkillAttempt(*attempt)), nil
}

// ListHistory lists graded views of the candidate's attempts, newest first.
// An empty skillName lists every skill.
func (s *skillAssessmentService) ListHistory(ctx context.Context, candidateID uuid.UUID, skillName string) ([]dto.SkillAttemptResultDTO, error) {
	attempts, err := s.attemptRepo.ListByCandidate(ctx, candidateID, skillkey.Normalize(skillName))
	if err != nil {
		log.Error().Err(err).Str("candidateID", candidateID.String()).Msg("ListHistory: Failed to list attempts")
		return nil, apperror.Internal("failed to list attempts", err)
	}
	resp := make([]dto.SkillAttemptResultDTO, 0, len(attempts))
	for _, a := range attempts {
		resp = append(resp, *toSkillResultDTO(ViewSkillAttempt(a)))
	}
	return resp, nil
}

func toSkillAttemptDTO(attempt *model.SkillAttempt) *dto.SkillAttemptDTO {
	var resp dto.SkillAttemptDTO
	if err := copier.Copy(&resp, attempt); err != nil {
		log.Warn().Err(err).Str("attemptID", attempt.ID.String()).Msg("Failed to copy skill attempt to DTO")
	}
	resp.Questions = toQuestionDTOs(attempt.Questions)
	return &resp
}

func toSkillResultDTO(attempt model.SkillAttempt) *dto.SkillAttemptResultDTO {
	var resp dto.SkillAttemptResultDTO
	if err := copier.Copy(&resp, &attempt); err != nil {
		log.Warn().Err(err).Str("attemptID", attempt.ID.String()).Msg("Failed to copy skill attempt result to DTO")
	}
	resp.TotalQuestions = len(attempt.Questions)
	if resp.TotalQuestions == 0 {
		resp.TotalQuestions = model.SkillQuestionCount
	}
	return &resp
}
