package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/talentgate/internal/model"
)

// QuestionDTO is the candidate-facing view of a question; it never carries the answer key.
type QuestionDTO struct {
	QuestionID string           `json:"questionId"`
	Text       string           `json:"text"`
	Options    []string         `json:"options"`
	Difficulty model.Difficulty `json:"difficulty"`
}

// AnswerDTO is one selection in a submission. Omit selectedIndex to leave a question unanswered.
type AnswerDTO struct {
	QuestionID    string `json:"questionId" binding:"required"`
	SelectedIndex *int   `json:"selectedIndex"`
}

// --- Per-skill assessments ---

type SkillAttemptDTO struct {
	ID            uuid.UUID           `json:"attemptId"`
	SkillName     string              `json:"skillName"`
	AttemptNumber int                 `json:"attemptNumber"`
	Status        model.AttemptStatus `json:"status"`
	StartedAt     time.Time           `json:"startedAt"`
	Questions     []QuestionDTO       `json:"questions"`
}

type SubmitSkillAttemptDTO struct {
	Answers        []AnswerDTO `json:"answers" binding:"required,dive"`
	ViolationCount int         `json:"violationCount" binding:"min=0"`
	AutoSubmitted  bool        `json:"autoSubmitted"`
}

// SkillAttemptResultDTO is the graded view used for submit responses and history.
type SkillAttemptResultDTO struct {
	ID                 uuid.UUID              `json:"attemptId"`
	SkillName          string                 `json:"skillName"`
	AttemptNumber      int                    `json:"attemptNumber"`
	Status             model.AttemptStatus    `json:"status"`
	CorrectCount       int                    `json:"correctCount"`
	TotalQuestions     int                    `json:"totalQuestions"`
	Accuracy           int                    `json:"accuracy"`
	VerificationStatus model.VerificationTier `json:"verificationStatus"`
	ViolationCount     int                    `json:"violationCount"`
	AutoSubmitted      bool                   `json:"autoSubmitted"`
	StartedAt          time.Time              `json:"startedAt"`
	SubmittedAt        *time.Time             `json:"submittedAt,omitempty"`
}

// --- Per-job screening assessments ---

type JobAttemptDTO struct {
	ID               uuid.UUID           `json:"attemptId"`
	JobID            uuid.UUID           `json:"jobId"`
	AttemptNumber    int                 `json:"attemptNumber"`
	Status           model.AttemptStatus `json:"status"`
	StartedAt        time.Time           `json:"startedAt"`
	PassPercent      float64             `json:"passPercent"`
	MarksPerQuestion float64             `json:"marksPerQuestion"`
	Questions        []QuestionDTO       `json:"questions"`
}

type SubmitJobAttemptDTO struct {
	Answers []AnswerDTO `json:"answers" binding:"dive"`
}

type JobAttemptResultDTO struct {
	ID             uuid.UUID           `json:"attemptId"`
	JobID          uuid.UUID           `json:"jobId"`
	AttemptNumber  int                 `json:"attemptNumber"`
	Status         model.AttemptStatus `json:"status"`
	CorrectCount   int                 `json:"correctCount"`
	TotalQuestions int                 `json:"totalQuestions"`
	ScoreMarks     float64             `json:"scoreMarks"`
	TotalMarks     float64             `json:"totalMarks"`
	Percent        float64             `json:"percent"`
	PassPercent    float64             `json:"passPercent"`
	Passed         bool                `json:"passed"`
	StartedAt      time.Time           `json:"startedAt"`
	SubmittedAt    *time.Time          `json:"submittedAt,omitempty"`
}
