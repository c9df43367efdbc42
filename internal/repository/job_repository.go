package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lshigami/talentgate/internal/model"
	"gorm.io/gorm"
)

type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Job, error)
	FindAll(ctx context.Context) ([]model.Job, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *model.Job) error {
	return translate(r.db.WithContext(ctx).Create(job).Error)
}

func (r *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	var job model.Job
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

func (r *jobRepository) FindAll(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&jobs).Error
	return jobs, translate(err)
}
