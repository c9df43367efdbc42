package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// OptionsPerQuestion is the fixed number of choices on every multiple-choice question.
const OptionsPerQuestion = 4

// Question is an immutable multiple-choice item. Attempts embed a copy of it,
// never a reference, so a submitted attempt can always be re-graded.
type Question struct {
	QuestionID   string     `json:"questionId"`
	Text         string     `json:"text"`
	Options      []string   `json:"options"`
	CorrectIndex int        `json:"correctIndex"`
	Difficulty   Difficulty `json:"difficulty"`
	ContentHash  string     `json:"contentHash"`
}

func (q Question) Validate() error {
	if strings.TrimSpace(q.QuestionID) == "" {
		return fmt.Errorf("question id is empty")
	}
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question %s has no text", q.QuestionID)
	}
	if len(q.Options) != OptionsPerQuestion {
		return fmt.Errorf("question %s must have exactly %d options, got %d", q.QuestionID, OptionsPerQuestion, len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= OptionsPerQuestion {
		return fmt.Errorf("question %s has correctIndex %d outside 0..%d", q.QuestionID, q.CorrectIndex, OptionsPerQuestion-1)
	}
	switch q.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("question %s has unknown difficulty %q", q.QuestionID, q.Difficulty)
	}
	return nil
}

// ComputeContentHash fingerprints the question text and options, ignoring case and
// surrounding whitespace, so reworded ids of the same content collide.
func ComputeContentHash(text string, options []string) string {
	h := sha256.New()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(text))))
	for _, o := range options {
		h.Write([]byte{0})
		h.Write([]byte(strings.ToLower(strings.TrimSpace(o))))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// WithContentHash fills ContentHash when the supplier left it blank.
func (q Question) WithContentHash() Question {
	if q.ContentHash == "" {
		q.ContentHash = ComputeContentHash(q.Text, q.Options)
	}
	return q
}
