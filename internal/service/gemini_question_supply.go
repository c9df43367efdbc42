package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/talentgate/config"
	"github.com/lshigami/talentgate/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// spareQuestions is how many extra questions are requested so that dropping
// recently seen ones still leaves a full set.
const spareQuestions = 3

type geminiQuestionSupply struct {
	client *genai.GenerativeModel
}

func NewGeminiQuestionSupply(cfg *config.Config) (QuestionSupply, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	m := client.GenerativeModel(cfg.QuestionSupply.GeminiModel)
	m.ResponseMIMEType = "application/json"
	return &geminiQuestionSupply{client: m}, nil
}

func buildQuestionPrompt(skillName string, count int, avoidHashes []string) string {
	var b strings.Builder
	b.WriteString("You are an expert technical interviewer writing a skill verification test.\n")
	fmt.Fprintf(&b, "Write exactly %d multiple-choice questions that assess practical knowledge of %q.\n", count, skillName)
	b.WriteString("Mix difficulties: roughly a third each of easy, medium and hard.\n")
	fmt.Fprintf(&b, "Every question must have exactly %d options and exactly one correct option.\n", model.OptionsPerQuestion)
	if len(avoidHashes) > 0 {
		b.WriteString("The candidate has recently seen questions with these content fingerprints; write different questions:\n")
		for _, h := range avoidHashes {
			b.WriteString("- ")
			b.WriteString(h)
			b.WriteString("\n")
		}
	}
	b.WriteString(`
Respond with JSON only, in this shape:
{"questions":[{"questionId":"q1","text":"...","options":["...","...","...","..."],"correctIndex":0,"difficulty":"easy"}]}
`)
	return b.String()
}

func (s *geminiQuestionSupply) GenerateQuestions(ctx context.Context, skillName string, count int, avoidHashes []string) ([]model.Question, error) {
	if s.client == nil {
		return nil, ErrNoGenerator
	}

	resp, err := s.client.GenerateContent(ctx, genai.Text(buildQuestionPrompt(skillName, count+spareQuestions, avoidHashes)))
	if err != nil {
		log.Error().Err(err).Str("skill", skillName).Msg("Gemini API error during question generation")
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Str("skill", skillName).Msg("Gemini returned no candidates or parts in response.")
		return nil, fmt.Errorf("gemini returned no content")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}

	questions, err := parseQuestions(text.String())
	if err != nil {
		log.Warn().Err(err).Str("skill", skillName).Msg("Failed to parse questions from Gemini response")
		return nil, err
	}
	questions = dropAvoided(questions, avoidHashes)
	if len(questions) > count {
		questions = questions[:count]
	}
	return questions, nil
}

// dropAvoided removes questions whose content hash is in avoidHashes.
func dropAvoided(questions []model.Question, avoidHashes []string) []model.Question {
	if len(avoidHashes) == 0 {
		return questions
	}
	avoid := make(map[string]bool, len(avoidHashes))
	for _, h := range avoidHashes {
		avoid[h] = true
	}
	kept := questions[:0]
	for _, q := range questions {
		if avoid[q.WithContentHash().ContentHash] {
			continue
		}
		kept = append(kept, q)
	}
	return kept
}
