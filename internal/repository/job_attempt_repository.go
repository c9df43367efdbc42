package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lshigami/talentgate/internal/model"
	"gorm.io/gorm"
)

type JobAttemptRepository interface {
	Create(ctx context.Context, attempt *model.JobAttempt) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.JobAttempt, error)
	FindInProgress(ctx context.Context, candidateID, jobID uuid.UUID) (*model.JobAttempt, error)
	ListByCandidateAndJob(ctx context.Context, candidateID, jobID uuid.UUID) ([]model.JobAttempt, error)
	HasPassed(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error)
	CompleteSubmission(ctx context.Context, attempt *model.JobAttempt) error
}

type jobAttemptRepository struct {
	db *gorm.DB
}

func NewJobAttemptRepository(db *gorm.DB) JobAttemptRepository {
	return &jobAttemptRepository{db: db}
}

func (r *jobAttemptRepository) Create(ctx context.Context, attempt *model.JobAttempt) error {
	return translate(r.db.WithContext(ctx).Create(attempt).Error)
}

func (r *jobAttemptRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.JobAttempt, error) {
	var attempt model.JobAttempt
	if err := r.db.WithContext(ctx).First(&attempt, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &attempt, nil
}

func (r *jobAttemptRepository) FindInProgress(ctx context.Context, candidateID, jobID uuid.UUID) (*model.JobAttempt, error) {
	var attempt model.JobAttempt
	err := r.db.WithContext(ctx).
		Where("candidate_id = ? AND job_id = ? AND status = ?", candidateID, jobID, model.AttemptInProgress).
		First(&attempt).Error
	if err != nil {
		return nil, translate(err)
	}
	return &attempt, nil
}

func (r *jobAttemptRepository) ListByCandidateAndJob(ctx context.Context, candidateID, jobID uuid.UUID) ([]model.JobAttempt, error) {
	var attempts []model.JobAttempt
	err := r.db.WithContext(ctx).
		Where("candidate_id = ? AND job_id = ?", candidateID, jobID).
		Order("attempt_number DESC").
		Find(&attempts).Error
	return attempts, translate(err)
}

func (r *jobAttemptRepository) HasPassed(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.JobAttempt{}).
		Where("candidate_id = ? AND job_id = ? AND status = ? AND passed = ?", candidateID, jobID, model.AttemptSubmitted, true).
		Count(&count).Error
	return count > 0, translate(err)
}

func (r *jobAttemptRepository) CompleteSubmission(ctx context.Context, attempt *model.JobAttempt) error {
	res := r.db.WithContext(ctx).
		Model(&model.JobAttempt{}).
		Where("id = ? AND status = ?", attempt.ID, model.AttemptInProgress).
		Updates(map[string]interface{}{
			"status":        attempt.Status,
			"submitted_at":  attempt.SubmittedAt,
			"answers":       attempt.Answers,
			"correct_count": attempt.CorrectCount,
			"score_marks":   attempt.ScoreMarks,
			"total_marks":   attempt.TotalMarks,
			"percent":       attempt.Percent,
			"passed":        attempt.Passed,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStaleState
	}
	return nil
}
