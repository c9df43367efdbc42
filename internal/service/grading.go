package service

import (
	"math"

	"github.com/lshigami/talentgate/internal/model"
)

const (
	// ViolationLimit is the number of proctoring violations that fails an attempt.
	ViolationLimit = 2

	VerifiedAccuracy          = 70
	PartiallyVerifiedAccuracy = 50
)

// SkillGrade is the outcome of grading a per-skill attempt.
type SkillGrade struct {
	Status       model.AttemptStatus
	CorrectCount int
	Accuracy     int
	Tier         model.VerificationTier
}

// JobGrade is the outcome of grading a per-job screening attempt.
type JobGrade struct {
	CorrectCount int
	ScoreMarks   float64
	TotalMarks   float64
	Percent      float64
	Passed       bool
}

// ProctoringFailed reports whether cheating signals veto the answers.
func ProctoringFailed(violationCount int, autoSubmitted bool) bool {
	return violationCount >= ViolationLimit || autoSubmitted
}

// ClassifyAccuracy maps a 0..100 accuracy to its verification tier.
func ClassifyAccuracy(accuracy int) model.VerificationTier {
	switch {
	case accuracy >= VerifiedAccuracy:
		return model.TierVerified
	case accuracy >= PartiallyVerifiedAccuracy:
		return model.TierPartiallyVerified
	default:
		return model.TierNotVerified
	}
}

// CountCorrect counts answers matching the snapshot's correct index.
// Answers for questions outside the snapshot are ignored.
func CountCorrect(questions []model.Question, answers []model.AnswerSelection) int {
	byID := make(map[string]model.Question, len(questions))
	for _, q := range questions {
		byID[q.QuestionID] = q
	}
	seen := make(map[string]bool, len(answers))
	correct := 0
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok || seen[a.QuestionID] {
			continue
		}
		seen[a.QuestionID] = true
		if a.IsCorrect(q) {
			correct++
		}
	}
	return correct
}

// GradeSkillAttempt scores a per-skill attempt out of SkillQuestionCount.
// A proctoring failure forces zero accuracy and the failed status.
func GradeSkillAttempt(attempt *model.SkillAttempt) SkillGrade {
	if ProctoringFailed(attempt.ViolationCount, attempt.AutoSubmitted) {
		return SkillGrade{
			Status:       model.AttemptFailed,
			CorrectCount: 0,
			Accuracy:     0,
			Tier:         model.TierNotVerified,
		}
	}
	correct := CountCorrect(attempt.Questions, attempt.Answers)
	accuracy := int(math.Round(float64(correct) / float64(model.SkillQuestionCount) * 100))
	return SkillGrade{
		Status:       model.AttemptSubmitted,
		CorrectCount: correct,
		Accuracy:     accuracy,
		Tier:         ClassifyAccuracy(accuracy),
	}
}

// GradeJobAttempt applies weighted marks. Screening attempts are not proctored,
// so violations never override the result.
func GradeJobAttempt(attempt *model.JobAttempt) JobGrade {
	marks := attempt.MarksPerQuestion
	if marks <= 0 {
		marks = model.DefaultMarksPerQuestion
	}
	correct := CountCorrect(attempt.Questions, attempt.Answers)
	total := marks * float64(len(attempt.Questions))
	score := marks * float64(correct)

	var percent float64
	if total > 0 {
		percent = round1(score / total * 100)
	}
	return JobGrade{
		CorrectCount: correct,
		ScoreMarks:   score,
		TotalMarks:   total,
		Percent:      percent,
		Passed:       percent >= attempt.PassPercent,
	}
}

// ViewSkillAttempt is the single read-side rule for per-skill attempts: any
// record that failed proctoring or was stored as failed shows zero accuracy
// and not_verified, whatever legacy values it was persisted with.
func ViewSkillAttempt(attempt model.SkillAttempt) model.SkillAttempt {
	if attempt.Status == model.AttemptFailed || ProctoringFailed(attempt.ViolationCount, attempt.AutoSubmitted) {
		attempt.Accuracy = 0
		attempt.CorrectCount = 0
		attempt.VerificationStatus = model.TierNotVerified
	}
	return attempt
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
