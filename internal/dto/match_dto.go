package dto

import (
	"github.com/google/uuid"
	"github.com/lshigami/talentgate/internal/model"
)

type MatchRequestDTO struct {
	RequiredSkills []string `json:"requiredSkills" binding:"required"`
	// Mode is "verified" (default) or "claimed".
	Mode string `json:"mode" binding:"omitempty,oneof=verified claimed"`
}

type MatchResultDTO struct {
	MatchScore    int      `json:"matchScore"`
	MatchedSkills []string `json:"matchedSkills"`
	MissingSkills []string `json:"missingSkills"`
}

type VerifiedSkillsDTO struct {
	CandidateID uuid.UUID `json:"candidateId"`
	SkillKeys   []string  `json:"skillKeys"`
}

// VerificationRecordDTO is the best outcome a candidate has reached for one skill key.
type VerificationRecordDTO struct {
	SkillKey       string                 `json:"skillKey"`
	SkillName      string                 `json:"skillName"`
	Status         model.VerificationTier `json:"status"`
	BestAccuracy   int                    `json:"bestAccuracy"`
	AttemptCount   int                    `json:"attemptCount"`
	LegacyVerified bool                   `json:"legacyVerified"`
}

type VerificationRecordsDTO struct {
	CandidateID uuid.UUID               `json:"candidateId"`
	Records     []VerificationRecordDTO `json:"records"`
}
