package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Candidate is the slice of the profile store the engine reads.
type Candidate struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string           `json:"name"`
	Email        string           `gorm:"uniqueIndex" json:"email"`
	Skills       []CandidateSkill `gorm:"foreignKey:CandidateID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"skills,omitempty"`
	ResumeSkills pq.StringArray   `gorm:"type:text[];not null;default:'{}'" json:"resume_skills,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// CandidateSkill is a skill listed on the profile. Verified is the legacy/manual flag.
type CandidateSkill struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;index" json:"candidate_id"`
	Name        string    `gorm:"not null" json:"name"`
	Verified    bool      `gorm:"not null;default:false" json:"verified"`
}
