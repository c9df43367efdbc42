package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/lshigami/talentgate/internal/model"
	"github.com/rs/zerolog/log"
)

// httpQuestionSupply calls an external question service:
// POST {baseURL}/questions/generate {"skill","count","excludeHashes"} -> {"questions":[...]}
type httpQuestionSupply struct {
	client *resty.Client
}

type generateQuestionsRequest struct {
	Skill         string   `json:"skill"`
	Count         int      `json:"count"`
	ExcludeHashes []string `json:"excludeHashes"`
}

func NewHTTPQuestionSupply(baseURL string, timeout time.Duration) QuestionSupply {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &httpQuestionSupply{client: client}
}

func (s *httpQuestionSupply) GenerateQuestions(ctx context.Context, skillName string, count int, avoidHashes []string) ([]model.Question, error) {
	if avoidHashes == nil {
		avoidHashes = []string{}
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(generateQuestionsRequest{Skill: skillName, Count: count, ExcludeHashes: avoidHashes}).
		Post("/questions/generate")
	if err != nil {
		log.Error().Err(err).Str("skill", skillName).Msg("Question service request failed")
		return nil, fmt.Errorf("question service request: %w", err)
	}
	if resp.IsError() {
		log.Warn().Int("status", resp.StatusCode()).Str("skill", skillName).Msg("Question service returned an error status")
		return nil, fmt.Errorf("question service returned status %d", resp.StatusCode())
	}
	return parseQuestions(resp.String())
}
