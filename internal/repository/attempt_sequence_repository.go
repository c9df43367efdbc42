package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lshigami/talentgate/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttemptSequenceRepository issues attempt numbers with a single atomic upsert,
// so concurrent starts for the same subject never reuse a number.
type AttemptSequenceRepository interface {
	Next(ctx context.Context, candidateID uuid.UUID, subjectKind, subjectKey string) (int, error)
}

type attemptSequenceRepository struct {
	db *gorm.DB
}

func NewAttemptSequenceRepository(db *gorm.DB) AttemptSequenceRepository {
	return &attemptSequenceRepository{db: db}
}

func (r *attemptSequenceRepository) Next(ctx context.Context, candidateID uuid.UUID, subjectKind, subjectKey string) (int, error) {
	seq := model.AttemptSequence{
		CandidateID: candidateID,
		SubjectKind: subjectKind,
		SubjectKey:  subjectKey,
		LastNumber:  1,
	}
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "candidate_id"}, {Name: "subject_kind"}, {Name: "subject_key"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"last_number": gorm.Expr("attempt_sequences.last_number + 1"),
					"updated_at":  gorm.Expr("NOW()"),
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "last_number"}}},
		).
		Create(&seq).Error
	if err != nil {
		return 0, translate(err)
	}
	return seq.LastNumber, nil
}
