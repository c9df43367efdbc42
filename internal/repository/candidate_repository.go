package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lshigami/talentgate/internal/model"
	"gorm.io/gorm"
)

type CandidateRepository interface {
	FindByIDWithSkills(ctx context.Context, id uuid.UUID) (*model.Candidate, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) FindByIDWithSkills(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	var candidate model.Candidate
	err := r.db.WithContext(ctx).
		Preload("Skills").
		First(&candidate, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &candidate, nil
}
