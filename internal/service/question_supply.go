package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/talentgate/config"
	"github.com/lshigami/talentgate/internal/model"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// ErrNoGenerator is returned by a supply that has no backing generator configured.
var ErrNoGenerator = errors.New("no question generator available")

// QuestionSupply produces multiple-choice questions for a skill, avoiding the
// given content hashes where it can.
type QuestionSupply interface {
	GenerateQuestions(ctx context.Context, skillName string, count int, avoidHashes []string) ([]model.Question, error)
}

type unavailableQuestionSupply struct{}

func (unavailableQuestionSupply) GenerateQuestions(context.Context, string, int, []string) ([]model.Question, error) {
	return nil, ErrNoGenerator
}

// NewQuestionSupply selects the configured provider. A provider that lacks its
// credentials or endpoint degrades to one that always reports ErrNoGenerator.
func NewQuestionSupply(cfg *config.Config) (QuestionSupply, error) {
	switch strings.ToLower(cfg.QuestionSupply.Provider) {
	case "gemini":
		if cfg.GeminiApiKey == "" {
			log.Warn().Msg("GEMINI_API_KEY is not set. Skill assessments cannot be started.")
			return unavailableQuestionSupply{}, nil
		}
		return NewGeminiQuestionSupply(cfg)
	case "http":
		if cfg.QuestionSupply.ServiceURL == "" {
			log.Warn().Msg("QUESTION_SERVICE_URL is not set. Skill assessments cannot be started.")
			return unavailableQuestionSupply{}, nil
		}
		return NewHTTPQuestionSupply(cfg.QuestionSupply.ServiceURL, cfg.QuestionSupply.Timeout), nil
	case "", "none":
		log.Warn().Msg("No question supply configured. Skill assessments cannot be started.")
		return unavailableQuestionSupply{}, nil
	default:
		return nil, fmt.Errorf("unknown QUESTION_SUPPLY provider %q", cfg.QuestionSupply.Provider)
	}
}

// parseQuestions reads a {"questions":[...]} document produced by a supplier.
// A bare top-level array is accepted too.
func parseQuestions(raw string) ([]model.Question, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("question payload is not valid JSON")
	}

	list := gjson.Get(raw, "questions")
	if !list.Exists() {
		list = gjson.Parse(raw)
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("question payload has no questions array")
	}

	var questions []model.Question
	for i, item := range list.Array() {
		opts := item.Get("options").Array()
		options := make([]string, 0, len(opts))
		for _, o := range opts {
			options = append(options, o.String())
		}
		correct := item.Get("correctIndex")
		if !correct.Exists() {
			return nil, fmt.Errorf("question %d has no correctIndex", i)
		}
		q := model.Question{
			QuestionID:   item.Get("questionId").String(),
			Text:         item.Get("text").String(),
			Options:      options,
			CorrectIndex: int(correct.Int()),
			Difficulty:   model.Difficulty(strings.ToLower(item.Get("difficulty").String())),
			ContentHash:  item.Get("contentHash").String(),
		}
		questions = append(questions, q)
	}
	return questions, nil
}
