package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lshigami/talentgate/internal/model"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	// Create returns ErrDuplicate when the (candidate, job) pair already applied.
	Create(ctx context.Context, application *model.Application) error
	Exists(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error)
	ListByCandidateWithJob(ctx context.Context, candidateID uuid.UUID) ([]model.Application, error)
	// SetMatchScoreIfMissing never overwrites a recorded snapshot.
	SetMatchScoreIfMissing(ctx context.Context, id uuid.UUID, score int) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, application *model.Application) error {
	return translate(r.db.WithContext(ctx).Omit("Job").Create(application).Error)
}

func (r *applicationRepository) Exists(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("candidate_id = ? AND job_id = ?", candidateID, jobID).
		Count(&count).Error
	return count > 0, translate(err)
}

func (r *applicationRepository) ListByCandidateWithJob(ctx context.Context, candidateID uuid.UUID) ([]model.Application, error) {
	var applications []model.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, translate(err)
}

func (r *applicationRepository) SetMatchScoreIfMissing(ctx context.Context, id uuid.UUID, score int) error {
	return translate(r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("id = ? AND match_score IS NULL", id).
		Update("match_score", score).Error)
}
