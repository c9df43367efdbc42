package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const ApplicationApplied ApplicationStatus = "applied"

// Application is unique per (candidate, job). MatchScore is the snapshot taken at apply time.
type Application struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	CandidateID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_application_candidate_job,priority:1" json:"candidate_id"`
	JobID       uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_application_candidate_job,priority:2" json:"job_id"`
	Job         Job               `gorm:"foreignKey:JobID" json:"job,omitempty"`
	MatchScore  *int              `json:"match_score,omitempty"`
	Status      ApplicationStatus `gorm:"type:varchar(16);not null;default:'applied'" json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
