package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DefaultPassPercent      float64 = 60
	DefaultMarksPerQuestion float64 = 1
)

// ScreeningAssessment is the optional job-specific test a candidate must pass before applying.
type ScreeningAssessment struct {
	Enabled          bool       `json:"enabled"`
	PassPercent      *float64   `json:"passPercent,omitempty"`
	MarksPerQuestion float64    `json:"marksPerQuestion"`
	Questions        []Question `json:"questions"`
}

// Active reports whether the assessment gates applications. An enabled
// assessment without questions cannot be taken and is treated as absent.
func (s ScreeningAssessment) Active() bool {
	return s.Enabled && len(s.Questions) > 0
}

// EffectivePassPercent falls back to the default only when no threshold was
// stored. An explicit 0 passes every submission.
func (s ScreeningAssessment) EffectivePassPercent() float64 {
	if s.PassPercent == nil {
		return DefaultPassPercent
	}
	return *s.PassPercent
}

func (s ScreeningAssessment) EffectiveMarksPerQuestion() float64 {
	if s.MarksPerQuestion <= 0 {
		return DefaultMarksPerQuestion
	}
	return s.MarksPerQuestion
}

type Job struct {
	ID             uuid.UUID                               `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string                                  `gorm:"not null" json:"title"`
	Company        string                                  `json:"company,omitempty"`
	Description    string                                  `gorm:"type:text" json:"description,omitempty"`
	RequiredSkills pq.StringArray                          `gorm:"type:text[];not null;default:'{}'" json:"required_skills"`
	Screening      datatypes.JSONType[ScreeningAssessment] `gorm:"type:jsonb" json:"screening"`
	CreatedAt      time.Time                               `json:"created_at"`
	UpdatedAt      time.Time                               `json:"updated_at"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
