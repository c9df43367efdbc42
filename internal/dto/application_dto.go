package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/talentgate/internal/model"
)

type EligibilityDTO struct {
	JobID      uuid.UUID `json:"jobId"`
	Eligible   bool      `json:"eligible"`
	MatchScore int       `json:"matchScore"`
}

type ApplicationDTO struct {
	ID         uuid.UUID               `json:"id"`
	JobID      uuid.UUID               `json:"jobId"`
	JobTitle   string                  `json:"jobTitle,omitempty"`
	Status     model.ApplicationStatus `json:"status"`
	MatchScore *int                    `json:"matchScore,omitempty"`
	CreatedAt  time.Time               `json:"createdAt"`
}

// MyApplicationDTO pairs the stored snapshot with live recomputations.
// VerifiedMatch is authoritative; ProfileMatch is informational only.
type MyApplicationDTO struct {
	ApplicationDTO
	VerifiedMatch MatchResultDTO `json:"verifiedMatch"`
	ProfileMatch  MatchResultDTO `json:"profileMatch"`
}
