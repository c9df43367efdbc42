// Package notification publishes engine events to the notification sink.
// Delivery is fire-and-forget: failures are logged and never reach the caller.
package notification

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	EventSkillAttemptGraded = "skill_attempt.graded"
	EventJobAttemptGraded   = "job_attempt.graded"
	EventApplicationCreated = "application.created"
)

type Event struct {
	Type        string                 `json:"type"`
	CandidateID string                 `json:"candidate_id"`
	SubjectID   string                 `json:"subject_id"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
	OccurredAt  time.Time              `json:"occurred_at"`
}

type Sink interface {
	Publish(ctx context.Context, event Event)
}

// LogSink records events in the application log only.
type LogSink struct{}

func NewLogSink() *LogSink { return &LogSink{} }

func (LogSink) Publish(_ context.Context, event Event) {
	log.Info().
		Str("event", event.Type).
		Str("candidateID", event.CandidateID).
		Str("subjectID", event.SubjectID).
		Interface("payload", event.Payload).
		Msg("notification event")
}
