package model

import (
	"time"

	"github.com/google/uuid"
)

// AttemptSequence holds the last issued attempt number per (candidate, subject).
type AttemptSequence struct {
	CandidateID uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubjectKind string    `gorm:"type:varchar(8);primaryKey"`
	SubjectKey  string    `gorm:"primaryKey"`
	LastNumber  int       `gorm:"not null;default:0"`
	UpdatedAt   time.Time
}
