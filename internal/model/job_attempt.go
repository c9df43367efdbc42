package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JobAttempt is a candidate's run through a job's screening assessment.
// Pass threshold and marks are copied from the job at start time.
type JobAttempt struct {
	ID               uuid.UUID                            `gorm:"type:uuid;primaryKey" json:"id"`
	CandidateID      uuid.UUID                            `gorm:"type:uuid;not null;index:idx_job_attempt_owner,priority:1;index:idx_job_attempt_open,unique,where:status = 'in_progress',priority:1" json:"candidate_id"`
	JobID            uuid.UUID                            `gorm:"type:uuid;not null;index:idx_job_attempt_owner,priority:2;index:idx_job_attempt_open,unique,priority:2" json:"job_id"`
	AttemptNumber    int                                  `gorm:"not null" json:"attempt_number"`
	Status           AttemptStatus                        `gorm:"type:varchar(16);not null;default:'in_progress'" json:"status"`
	StartedAt        time.Time                            `gorm:"not null" json:"started_at"`
	SubmittedAt      *time.Time                           `json:"submitted_at,omitempty"`
	Questions        datatypes.JSONSlice[Question]        `gorm:"type:jsonb;not null" json:"questions"`
	Answers          datatypes.JSONSlice[AnswerSelection] `gorm:"type:jsonb" json:"answers"`
	ViolationCount   int                                  `gorm:"not null;default:0" json:"violation_count"`
	AutoSubmitted    bool                                 `gorm:"not null;default:false" json:"auto_submitted"`
	PassPercent      float64                              `gorm:"not null" json:"pass_percent"`
	MarksPerQuestion float64                              `gorm:"not null" json:"marks_per_question"`
	CorrectCount     int                                  `gorm:"not null;default:0" json:"correct_count"`
	ScoreMarks       float64                              `gorm:"not null;default:0" json:"score_marks"`
	TotalMarks       float64                              `gorm:"not null;default:0" json:"total_marks"`
	Percent          float64                              `gorm:"not null;default:0" json:"percent"`
	Passed           bool                                 `gorm:"not null;default:false;index" json:"passed"`
	CreatedAt        time.Time                            `json:"created_at"`
	UpdatedAt        time.Time                            `json:"updated_at"`
}

func (a *JobAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
