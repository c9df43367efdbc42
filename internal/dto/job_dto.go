package dto

import (
	"time"

	"github.com/google/uuid"
)

// QuestionCreateDTO is an authored screening question.
type QuestionCreateDTO struct {
	QuestionID   string   `json:"questionId"`
	Text         string   `json:"text" binding:"required"`
	Options      []string `json:"options" binding:"required,len=4"`
	CorrectIndex *int     `json:"correctIndex" binding:"required,min=0,max=3"`
	Difficulty   string   `json:"difficulty" binding:"required,oneof=easy medium hard"`
}

type ScreeningCreateDTO struct {
	Enabled          bool                `json:"enabled"`
	PassPercent      *float64            `json:"passPercent" binding:"omitempty,min=0,max=100"`
	MarksPerQuestion *float64            `json:"marksPerQuestion" binding:"omitempty,gt=0"`
	Questions        []QuestionCreateDTO `json:"questions" binding:"omitempty,dive"`
}

// JobCreateDTO is for admin to configure a job with its requirements and optional screening.
type JobCreateDTO struct {
	Title          string              `json:"title" binding:"required"`
	Company        string              `json:"company,omitempty"`
	Description    string              `json:"description,omitempty"`
	RequiredSkills []string            `json:"requiredSkills" binding:"required,min=1"`
	Screening      *ScreeningCreateDTO `json:"screening,omitempty"`
}

type ScreeningSummaryDTO struct {
	Enabled          bool    `json:"enabled"`
	PassPercent      float64 `json:"passPercent"`
	MarksPerQuestion float64 `json:"marksPerQuestion"`
	QuestionCount    int     `json:"questionCount"`
}

type JobResponseDTO struct {
	ID             uuid.UUID            `json:"id"`
	Title          string               `json:"title"`
	Company        string               `json:"company,omitempty"`
	Description    string               `json:"description,omitempty"`
	RequiredSkills []string             `json:"requiredSkills"`
	Screening      *ScreeningSummaryDTO `json:"screening,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
}

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
