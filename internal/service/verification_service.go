package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/lshigami/talentgate/internal/apperror"
	"github.com/lshigami/talentgate/internal/dto"
	"github.com/lshigami/talentgate/internal/model"
	"github.com/lshigami/talentgate/internal/repository"
	"github.com/lshigami/talentgate/internal/skillkey"
	"github.com/rs/zerolog/log"
)

// VerificationService derives candidate skill-key sets from the profile and attempt history.
type VerificationService interface {
	// VerifiedSkillKeys is the enforcement set: legacy verified profile flags plus
	// every skill with a submitted, verified attempt.
	VerifiedSkillKeys(ctx context.Context, candidateID uuid.UUID) (skillkey.Set, error)
	// ClaimedSkillKeys is every skill listed on the profile, verified or not.
	ClaimedSkillKeys(ctx context.Context, candidateID uuid.UUID) (skillkey.Set, error)
	// ProfileSkillKeys widens the claimed set with resume-derived skills. Display only.
	ProfileSkillKeys(ctx context.Context, candidateID uuid.UUID) (skillkey.Set, error)
	// VerificationRecords reports the most favourable tier per skill key across
	// graded attempts, plus claimed profile skills that were never graded.
	VerificationRecords(ctx context.Context, candidateID uuid.UUID) ([]dto.VerificationRecordDTO, error)
}

type verificationService struct {
	candidateRepo repository.CandidateRepository
	attemptRepo   repository.SkillAttemptRepository
}

func NewVerificationService(candidateRepo repository.CandidateRepository, attemptRepo repository.SkillAttemptRepository) VerificationService {
	return &verificationService{candidateRepo: candidateRepo, attemptRepo: attemptRepo}
}

func (s *verificationService) VerifiedSkillKeys(ctx context.Context, candidateID uuid.UUID) (skillkey.Set, error) {
	candidate, err := s.loadCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	keys := skillkey.NewSet()
	for _, sk := range candidate.Skills {
		if sk.Verified {
			keys.Add(sk.Name)
		}
	}

	attempts, err := s.attemptRepo.ListVerified(ctx, candidateID)
	if err != nil {
		log.Error().Err(err).Str("candidateID", candidateID.String()).Msg("VerifiedSkillKeys: Failed to load verified attempts")
		return nil, apperror.Internal("failed to load skill attempts", err)
	}
	for _, a := range attempts {
		view := ViewSkillAttempt(a)
		if view.Status == model.AttemptSubmitted && view.VerificationStatus == model.TierVerified {
			keys.Add(view.SkillName)
		}
	}
	return keys, nil
}

func (s *verificationService) ClaimedSkillKeys(ctx context.Context, candidateID uuid.UUID) (skillkey.Set, error) {
	candidate, err := s.loadCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	return claimedKeys(candidate), nil
}

func (s *verificationService) ProfileSkillKeys(ctx context.Context, candidateID uuid.UUID) (skillkey.Set, error) {
	candidate, err := s.loadCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	return claimedKeys(candidate).Union(skillkey.NewSet(candidate.ResumeSkills...)), nil
}

func (s *verificationService) VerificationRecords(ctx context.Context, candidateID uuid.UUID) ([]dto.VerificationRecordDTO, error) {
	candidate, err := s.loadCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	attempts, err := s.attemptRepo.ListByCandidate(ctx, candidateID, "")
	if err != nil {
		log.Error().Err(err).Str("candidateID", candidateID.String()).Msg("VerificationRecords: Failed to list attempts")
		return nil, apperror.Internal("failed to load skill attempts", err)
	}
	return foldVerificationRecords(candidate, attempts), nil
}

var tierRank = map[model.VerificationTier]int{
	model.TierNotVerified:       0,
	model.TierPartiallyVerified: 1,
	model.TierVerified:          2,
}

// foldVerificationRecords keeps the best viewed outcome per skill key. Open
// attempts have no outcome yet and are skipped. A legacy verified flag on the
// profile counts as verified.
func foldVerificationRecords(candidate *model.Candidate, attempts []model.SkillAttempt) []dto.VerificationRecordDTO {
	records := make(map[string]*dto.VerificationRecordDTO)
	record := func(key, name string) *dto.VerificationRecordDTO {
		r, ok := records[key]
		if !ok {
			r = &dto.VerificationRecordDTO{SkillKey: key, SkillName: name, Status: model.TierNotVerified}
			records[key] = r
		}
		return r
	}

	for _, sk := range candidate.Skills {
		key := skillkey.Normalize(sk.Name)
		if key == "" {
			continue
		}
		r := record(key, sk.Name)
		if sk.Verified {
			r.LegacyVerified = true
			r.Status = model.TierVerified
		}
	}

	for _, a := range attempts {
		if !a.Status.Terminal() {
			continue
		}
		view := ViewSkillAttempt(a)
		key := skillkey.Normalize(view.SkillKey)
		if key == "" {
			key = skillkey.Normalize(view.SkillName)
		}
		if key == "" {
			continue
		}
		r := record(key, view.SkillName)
		r.AttemptCount++
		if view.Accuracy > r.BestAccuracy {
			r.BestAccuracy = view.Accuracy
		}
		if tierRank[view.VerificationStatus] > tierRank[r.Status] {
			r.Status = view.VerificationStatus
		}
	}

	out := make([]dto.VerificationRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SkillKey < out[j].SkillKey })
	return out
}

func claimedKeys(candidate *model.Candidate) skillkey.Set {
	keys := skillkey.NewSet()
	for _, sk := range candidate.Skills {
		keys.Add(sk.Name)
	}
	return keys
}

func (s *verificationService) loadCandidate(ctx context.Context, candidateID uuid.UUID) (*model.Candidate, error) {
	candidate, err := s.candidateRepo.FindByIDWithSkills(ctx, candidateID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("candidate %s not found", candidateID)
	}
	if err != nil {
		log.Error().Err(err).Str("candidateID", candidateID.String()).Msg("Failed to load candidate profile")
		return nil, apperror.Internal(fmt.Sprintf("failed to load candidate %s", candidateID), err)
	}
	return candidate, nil
}
