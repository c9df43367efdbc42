package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lshigami/talentgate/internal/model"
	"gorm.io/gorm"
)

type SkillAttemptRepository interface {
	Create(ctx context.Context, attempt *model.SkillAttempt) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SkillAttempt, error)
	FindInProgress(ctx context.Context, candidateID uuid.UUID, skillKey string) (*model.SkillAttempt, error)
	// ListByCandidate returns attempts newest first. An empty skillKey lists every skill.
	ListByCandidate(ctx context.Context, candidateID uuid.UUID, skillKey string) ([]model.SkillAttempt, error)
	// ListRecent returns at most limit attempts for one skill, newest first.
	ListRecent(ctx context.Context, candidateID uuid.UUID, skillKey string, limit int) ([]model.SkillAttempt, error)
	// ListVerified returns submitted attempts stored with the verified tier.
	ListVerified(ctx context.Context, candidateID uuid.UUID) ([]model.SkillAttempt, error)
	// CompleteSubmission persists the graded fields only if the attempt is still in progress.
	CompleteSubmission(ctx context.Context, attempt *model.SkillAttempt) error
}

type skillAttemptRepository struct {
	db *gorm.DB
}

func NewSkillAttemptRepository(db *gorm.DB) SkillAttemptRepository {
	return &skillAttemptRepository{db: db}
}

func (r *skillAttemptRepository) Create(ctx context.Context, attempt *model.SkillAttempt) error {
	return translate(r.db.WithContext(ctx).Create(attempt).Error)
}

func (r *skillAttemptRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SkillAttempt, error) {
	var attempt model.SkillAttempt
	if err := r.db.WithContext(ctx).First(&attempt, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &attempt, nil
}

func (r *skillAttemptRepository) FindInProgress(ctx context.Context, candidateID uuid.UUID, skillKey string) (*model.SkillAttempt, error) {
	var attempt model.SkillAttempt
	err := r.db.WithContext(ctx).
		Where("candidate_id = ? AND skill_key = ? AND status = ?", candidateID, skillKey, model.AttemptInProgress).
		First(&attempt).Error
	if err != nil {
		return nil, translate(err)
	}
	return &attempt, nil
}

func (r *skillAttemptRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID, skillKey string) ([]model.SkillAttempt, error) {
	var attempts []model.SkillAttempt
	query := r.db.WithContext(ctx).Where("candidate_id = ?", candidateID)
	if skillKey != "" {
		query = query.Where("skill_key = ?", skillKey)
	}
	err := query.Order("started_at DESC").Order("attempt_number DESC").Find(&attempts).Error
	return attempts, translate(err)
}

func (r *skillAttemptRepository) ListRecent(ctx context.Context, candidateID uuid.UUID, skillKey string, limit int) ([]model.SkillAttempt, error) {
	var attempts []model.SkillAttempt
	err := r.db.WithContext(ctx).
		Select("id", "questions").
		Where("candidate_id = ? AND skill_key = ?", candidateID, skillKey).
		Order("attempt_number DESC").
		Limit(limit).
		Find(&attempts).Error
	return attempts, translate(err)
}

func (r *skillAttemptRepository) ListVerified(ctx context.Context, candidateID uuid.UUID) ([]model.SkillAttempt, error) {
	var attempts []model.SkillAttempt
	err := r.db.WithContext(ctx).
		Omit("questions", "answers").
		Where("candidate_id = ? AND status = ? AND verification_status = ?", candidateID, model.AttemptSubmitted, model.TierVerified).
		Find(&attempts).Error
	return attempts, translate(err)
}

func (r *skillAttemptRepository) CompleteSubmission(ctx context.Context, attempt *model.SkillAttempt) error {
	res := r.db.WithContext(ctx).
		Model(&model.SkillAttempt{}).
		Where("id = ? AND status = ?", attempt.ID, model.AttemptInProgress).
		Updates(map[string]interface{}{
			"status":              attempt.Status,
			"submitted_at":        attempt.SubmittedAt,
			"answers":             attempt.Answers,
			"violation_count":     attempt.ViolationCount,
			"auto_submitted":      attempt.AutoSubmitted,
			"correct_count":       attempt.CorrectCount,
			"accuracy":            attempt.Accuracy,
			"verification_status": attempt.VerificationStatus,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStaleState
	}
	return nil
}
