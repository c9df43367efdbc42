package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/lshigami/talentgate/internal/apperror"
	"github.com/lshigami/talentgate/internal/dto"
	"github.com/lshigami/talentgate/internal/skillkey"
)

// MinApplyMatchScore is the fixed policy threshold for applying to a job.
const MinApplyMatchScore = 60

// MatchMode selects which candidate skill set a match is computed against.
type MatchMode int

const (
	// MatchModeVerified uses verified skills and feeds enforcement.
	MatchModeVerified MatchMode = iota + 1
	// MatchModeClaimed uses every listed skill and is informational only.
	MatchModeClaimed
)

func (m MatchMode) String() string {
	switch m {
	case MatchModeVerified:
		return "verified"
	case MatchModeClaimed:
		return "claimed"
	default:
		return fmt.Sprintf("MatchMode(%d)", int(m))
	}
}

// ParseMatchMode accepts "verified", "claimed", or "" (verified).
func ParseMatchMode(s string) (MatchMode, error) {
	switch skillkey.Normalize(s) {
	case "", "verified":
		return MatchModeVerified, nil
	case "claimed":
		return MatchModeClaimed, nil
	default:
		return 0, apperror.Validation("unknown match mode %q", s)
	}
}

// MatchResult is the overlap of required skills with a candidate's skill keys.
// Matched and missing skills keep the required-skill strings as written.
type MatchResult struct {
	MatchScore    int
	MatchedSkills []string
	MissingSkills []string
}

// Score computes the match of requiredSkills against candidateKeys. It is pure
// and total. Required entries that normalize to an empty key are ignored; with
// no requirements left the score is 0.
func Score(requiredSkills []string, candidateKeys skillkey.Set) MatchResult {
	result := MatchResult{MatchedSkills: []string{}, MissingSkills: []string{}}
	total := 0
	for _, skill := range requiredSkills {
		key := skillkey.Normalize(skill)
		if key == "" {
			continue
		}
		total++
		if candidateKeys.Has(key) {
			result.MatchedSkills = append(result.MatchedSkills, skill)
		} else {
			result.MissingSkills = append(result.MissingSkills, skill)
		}
	}
	if total == 0 {
		return result
	}
	result.MatchScore = int(math.Round(float64(len(result.MatchedSkills)) / float64(total) * 100))
	return result
}

func (r MatchResult) toDTO() dto.MatchResultDTO {
	return dto.MatchResultDTO{
		MatchScore:    r.MatchScore,
		MatchedSkills: r.MatchedSkills,
		MissingSkills: r.MissingSkills,
	}
}

type MatchService interface {
	ComputeMatch(ctx context.Context, requiredSkills []string, candidateID uuid.UUID, mode MatchMode) (*dto.MatchResultDTO, error)
}

type matchService struct {
	verification VerificationService
}

func NewMatchService(verification VerificationService) MatchService {
	return &matchService{verification: verification}
}

func (s *matchService) ComputeMatch(ctx context.Context, requiredSkills []string, candidateID uuid.UUID, mode MatchMode) (*dto.MatchResultDTO, error) {
	var (
		keys skillkey.Set
		err  error
	)
	switch mode {
	case MatchModeVerified:
		keys, err = s.verification.VerifiedSkillKeys(ctx, candidateID)
	case MatchModeClaimed:
		keys, err = s.verification.ClaimedSkillKeys(ctx, candidateID)
	default:
		return nil, apperror.Validation("unsupported match mode %s", mode)
	}
	if err != nil {
		return nil, err
	}
	resp := Score(requiredSkills, keys).toDTO()
	return &resp, nil
}
