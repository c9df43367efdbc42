package model

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptSubmitted  AttemptStatus = "submitted"
	AttemptFailed     AttemptStatus = "failed"
)

// Terminal reports whether no further transition is allowed.
func (s AttemptStatus) Terminal() bool {
	return s == AttemptSubmitted || s == AttemptFailed
}

type VerificationTier string

const (
	TierVerified          VerificationTier = "verified"
	TierPartiallyVerified VerificationTier = "partially_verified"
	TierNotVerified       VerificationTier = "not_verified"
)

// Subject kinds used to key attempt numbering.
const (
	SubjectSkill = "skill"
	SubjectJob   = "job"
)
