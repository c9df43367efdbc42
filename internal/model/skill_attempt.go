package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SkillQuestionCount is the fixed length of a per-skill assessment.
const SkillQuestionCount = 10

// SkillAttempt is one timed, proctored per-skill assessment.
// At most one row per (candidate, skill key) may be in_progress.
type SkillAttempt struct {
	ID                 uuid.UUID                            `gorm:"type:uuid;primaryKey" json:"id"`
	CandidateID        uuid.UUID                            `gorm:"type:uuid;not null;index:idx_skill_attempt_owner,priority:1;index:idx_skill_attempt_open,unique,where:status = 'in_progress',priority:1" json:"candidate_id"`
	SkillName          string                               `gorm:"not null" json:"skill_name"`
	SkillKey           string                               `gorm:"not null;index:idx_skill_attempt_owner,priority:2;index:idx_skill_attempt_open,unique,priority:2" json:"skill_key"`
	AttemptNumber      int                                  `gorm:"not null" json:"attempt_number"`
	Status             AttemptStatus                        `gorm:"type:varchar(16);not null;default:'in_progress';index" json:"status"`
	StartedAt          time.Time                            `gorm:"not null" json:"started_at"`
	SubmittedAt        *time.Time                           `json:"submitted_at,omitempty"`
	Questions          datatypes.JSONSlice[Question]        `gorm:"type:jsonb;not null" json:"questions"`
	Answers            datatypes.JSONSlice[AnswerSelection] `gorm:"type:jsonb" json:"answers"`
	ViolationCount     int                                  `gorm:"not null;default:0" json:"violation_count"`
	AutoSubmitted      bool                                 `gorm:"not null;default:false" json:"auto_submitted"`
	CorrectCount       int                                  `gorm:"not null;default:0" json:"correct_count"`
	Accuracy           int                                  `gorm:"not null;default:0" json:"accuracy"`
	VerificationStatus VerificationTier                     `gorm:"type:varchar(24);not null;default:'not_verified'" json:"verification_status"`
	CreatedAt          time.Time                            `json:"created_at"`
	UpdatedAt          time.Time                            `json:"updated_at"`
}

func (a *SkillAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ContentHashes lists the content hashes of the embedded question snapshot.
func (a *SkillAttempt) ContentHashes() []string {
	hashes := make([]string, 0, len(a.Questions))
	for _, q := range a.Questions {
		if q.ContentHash != "" {
			hashes = append(hashes, q.ContentHash)
		}
	}
	return hashes
}
