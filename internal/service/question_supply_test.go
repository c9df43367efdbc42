package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lshigami/talentgate/config"
	"github.com/lshigami/talentgate/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const questionPayload = `{"questions":[
 {"questionId":"q1","text":"What is a goroutine?","options":["a thread","a lightweight thread","a process","a fiber"],"correctIndex":1,"difficulty":"Easy"},
 {"text":"Which keyword defers?","options":["go","defer","later","wait"],"correctIndex":1,"difficulty":"medium","contentHash":"abc"}
]}`

func TestParseQuestions(t *testing.T) {
	questions, err := parseQuestions("```json\n" + questionPayload + "\n```")
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "q1", questions[0].QuestionID)
	assert.Equal(t, 1, questions[0].CorrectIndex)
	assert.Equal(t, model.DifficultyEasy, questions[0].Difficulty)
	assert.Len(t, questions[0].Options, 4)
	assert.Equal(t, "", questions[1].QuestionID)
	assert.Equal(t, "abc", questions[1].ContentHash)

	bare, err := parseQuestions(`[{"text":"t","options":["1","2","3","4"],"correctIndex":0,"difficulty":"hard"}]`)
	require.NoError(t, err)
	assert.Len(t, bare, 1)

	_, err = parseQuestions("not json")
	assert.Error(t, err)
	_, err = parseQuestions(`{"questions":[{"text":"t","options":["1","2","3","4"]}]}`)
	assert.Error(t, err, "a question without correctIndex is rejected")
}

func TestHTTPQuestionSupply(t *testing.T) {
	var got generateQuestionsRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/questions/generate", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(questionPayload))
	}))
	defer server.Close()

	supply := NewHTTPQuestionSupply(server.URL, time.Second)
	questions, err := supply.GenerateQuestions(context.Background(), "Go", 10, []string{"h1"})
	require.NoError(t, err)
	assert.Len(t, questions, 2)
	assert.Equal(t, "Go", got.Skill)
	assert.Equal(t, 10, got.Count)
	assert.Equal(t, []string{"h1"}, got.ExcludeHashes)
}

func TestHTTPQuestionSupplyErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewHTTPQuestionSupply(server.URL, time.Second).GenerateQuestions(context.Background(), "Go", 10, nil)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoGenerator)
}

func TestNewQuestionSupplyWithoutGenerator(t *testing.T) {
	for _, provider := range []string{"none", "", "gemini", "http"} {
		cfg := &config.Config{}
		cfg.QuestionSupply.Provider = provider
		supply, err := NewQuestionSupply(cfg)
		require.NoError(t, err, provider)
		_, err = supply.GenerateQuestions(context.Background(), "Go", 10, nil)
		assert.ErrorIs(t, err, ErrNoGenerator, provider)
	}

	cfg := &config.Config{}
	cfg.QuestionSupply.Provider = "carrier-pigeon"
	_, err := NewQuestionSupply(cfg)
	assert.Error(t, err)
}

func TestDropAvoidedAndPrompt(t *testing.T) {
	qs := makeQuestions(3)
	avoid := qs[1].WithContentHash().ContentHash
	kept := dropAvoided(append([]model.Question(nil), qs...), []string{avoid})
	require.Len(t, kept, 2)
	assert.Equal(t, "q1", kept[0].QuestionID)
	assert.Equal(t, "q3", kept[1].QuestionID)

	prompt := buildQuestionPrompt("Kubernetes", 10, []string{avoid})
	assert.Contains(t, prompt, `"Kubernetes"`)
	assert.Contains(t, prompt, "exactly 10")
	assert.Contains(t, prompt, avoid)
}
