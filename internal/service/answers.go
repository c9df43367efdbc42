package service

import (
	"github.com/lshigami/talentgate/internal/apperror"
	"github.com/lshigami/talentgate/internal/dto"
	"github.com/lshigami/talentgate/internal/model"
)

// normalizeAnswers validates a submission against the attempt's question snapshot
// and returns one selection per question in snapshot order. With requireAll every
// question must be answered exactly once; otherwise missing questions are
// back-filled as unanswered. Any bad entry rejects the whole submission.
func normalizeAnswers(questions []model.Question, answers []dto.AnswerDTO, requireAll bool) ([]model.AnswerSelection, error) {
	if requireAll && len(answers) != len(questions) {
		return nil, apperror.Validation("expected %d answers, got %d", len(questions), len(answers))
	}
	if len(answers) > len(questions) {
		return nil, apperror.Validation("expected at most %d answers, got %d", len(questions), len(answers))
	}

	known := make(map[string]bool, len(questions))
	for _, q := range questions {
		known[q.QuestionID] = true
	}

	selected := make(map[string]*int, len(answers))
	for _, a := range answers {
		if !known[a.QuestionID] {
			return nil, apperror.Validation("question %q is not part of this attempt", a.QuestionID)
		}
		if _, dup := selected[a.QuestionID]; dup {
			return nil, apperror.Validation("question %q answered more than once", a.QuestionID)
		}
		if a.SelectedIndex != nil && (*a.SelectedIndex < 0 || *a.SelectedIndex >= model.OptionsPerQuestion) {
			return nil, apperror.Validation("selectedIndex %d for question %q is outside 0..%d", *a.SelectedIndex, a.QuestionID, model.OptionsPerQuestion-1)
		}
		selected[a.QuestionID] = a.SelectedIndex
	}

	out := make([]model.AnswerSelection, 0, len(questions))
	for _, q := range questions {
		out = append(out, model.AnswerSelection{QuestionID: q.QuestionID, SelectedIndex: selected[q.QuestionID]})
	}
	return out, nil
}

// toQuestionDTOs strips the answer key from a snapshot.
func toQuestionDTOs(questions []model.Question) []dto.QuestionDTO {
	out := make([]dto.QuestionDTO, 0, len(questions))
	for _, q := range questions {
		out = append(out, dto.QuestionDTO{
			QuestionID: q.QuestionID,
			Text:       q.Text,
			Options:    append([]string(nil), q.Options...),
			Difficulty: q.Difficulty,
		})
	}
	return out
}

func errAlreadySubmitted() error {
	return apperror.New(apperror.KindConflict, apperror.CodeAlreadySubmitted, "attempt has already been submitted")
}

func errStartConflict() error {
	return apperror.New(apperror.KindConflict, apperror.CodeStartConflict, "another start for this assessment finished first; retry the start")
}
