package model

// AnswerSelection is a candidate's choice for one question of an attempt.
// A nil SelectedIndex means the question was left unanswered.
type AnswerSelection struct {
	QuestionID    string `json:"questionId"`
	SelectedIndex *int   `json:"selectedIndex"`
}

func (a AnswerSelection) IsCorrect(q Question) bool {
	return a.SelectedIndex != nil && *a.SelectedIndex == q.CorrectIndex
}
