package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/talentgate/internal/apperror"
	"github.com/lshigami/talentgate/internal/controller"
	"github.com/lshigami/talentgate/internal/dto"
	"github.com/lshigami/talentgate/internal/model"
	"github.com/lshigami/talentgate/internal/service"
	"github.com/lshigami/talentgate/internal/skillkey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubApplicationService struct {
	service.ApplicationService
	applied map[uuid.UUID]bool
}

func (s *stubApplicationService) CheckEligibility(_ context.Context, _, jobID uuid.UUID) (*dto.EligibilityDTO, error) {
	return nil, apperror.New(apperror.KindPreconditionFailed, apperror.CodeLowMatch, "verified skill match 50 is below the required 60")
}

func (s *stubApplicationService) Apply(_ context.Context, _, jobID uuid.UUID) (*dto.ApplicationDTO, error) {
	if s.applied[jobID] {
		return nil, apperror.New(apperror.KindConflict, apperror.CodeAlreadyApplied, "already applied")
	}
	s.applied[jobID] = true
	score := 100
	return &dto.ApplicationDTO{ID: uuid.New(), JobID: jobID, MatchScore: &score}, nil
}

type stubSkillService struct {
	service.SkillAssessmentService
	submitted *dto.SubmitSkillAttemptDTO
}

func (s *stubSkillService) StartAttempt(_ context.Context, _ uuid.UUID, skill string) (*dto.SkillAttemptDTO, error) {
	return &dto.SkillAttemptDTO{ID: uuid.New(), SkillName: skill, AttemptNumber: 1}, nil
}

func (s *stubSkillService) SubmitAttempt(_ context.Context, _, attemptID uuid.UUID, req dto.SubmitSkillAttemptDTO) (*dto.SkillAttemptResultDTO, error) {
	s.submitted = &req
	return &dto.SkillAttemptResultDTO{ID: attemptID, Accuracy: 70}, nil
}

type stubVerificationService struct {
	service.VerificationService
}

func (stubVerificationService) VerifiedSkillKeys(context.Context, uuid.UUID) (skillkey.Set, error) {
	return skillkey.NewSet("React", "go"), nil
}

func (stubVerificationService) VerificationRecords(context.Context, uuid.UUID) ([]dto.VerificationRecordDTO, error) {
	return []dto.VerificationRecordDTO{
		{SkillKey: "go", SkillName: "Go", Status: model.TierVerified, BestAccuracy: 90, AttemptCount: 1},
		{SkillKey: "vue", SkillName: "Vue", Status: model.TierPartiallyVerified, BestAccuracy: 60, AttemptCount: 2},
	}, nil
}

func newTestRouter(apps service.ApplicationService, skills service.SkillAssessmentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	jobCtrl := NewJobController(nil, nil, apps)
	skillCtrl := NewSkillAssessmentController(skills)
	matchCtrl := NewMatchController(nil, stubVerificationService{})
	api := r.Group("/api/v1")
	api.GET("/jobs/:job_id/eligibility", jobCtrl.CheckEligibility)
	api.POST("/jobs/:job_id/applications", jobCtrl.Apply)
	api.POST("/skills/:skill/attempts", skillCtrl.StartAttempt)
	api.POST("/skill-attempts/:attempt_id/submit", skillCtrl.SubmitAttempt)
	api.GET("/skills/verified", matchCtrl.VerifiedSkills)
	api.GET("/skills/verification-records", matchCtrl.VerificationRecords)
	return r
}

func doRequest(r http.Handler, method, path string, candidate uuid.UUID, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if candidate != uuid.Nil {
		req.Header.Set(controller.CandidateHeader, candidate.String())
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestApplyTwiceReturnsConflict(t *testing.T) {
	r := newTestRouter(&stubApplicationService{applied: map[uuid.UUID]bool{}}, &stubSkillService{})
	candidate, job := uuid.New(), uuid.New()

	w := doRequest(r, http.MethodPost, "/api/v1/jobs/"+job.String()+"/applications", candidate, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodPost, "/api/v1/jobs/"+job.String()+"/applications", candidate, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apperror.CodeAlreadyApplied, body.Code)
}

func TestEligibilityFailureIsPreconditionFailed(t *testing.T) {
	r := newTestRouter(&stubApplicationService{}, &stubSkillService{})
	w := doRequest(r, http.MethodGet, "/api/v1/jobs/"+uuid.NewString()+"/eligibility", uuid.New(), nil)
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Contains(t, w.Body.String(), apperror.CodeLowMatch)
}

func TestRequestsWithoutCandidateOrBadIDs(t *testing.T) {
	r := newTestRouter(&stubApplicationService{}, &stubSkillService{})

	w := doRequest(r, http.MethodGet, "/api/v1/jobs/"+uuid.NewString()+"/eligibility", uuid.Nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/jobs/42/eligibility", uuid.New(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSkillAttemptRoutes(t *testing.T) {
	skills := &stubSkillService{}
	r := newTestRouter(&stubApplicationService{}, skills)
	candidate := uuid.New()

	w := doRequest(r, http.MethodPost, "/api/v1/skills/React/attempts", candidate, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	var attempt dto.SkillAttemptDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &attempt))
	assert.Equal(t, "React", attempt.SkillName)

	w = doRequest(r, http.MethodPost, "/api/v1/skill-attempts/"+uuid.NewString()+"/submit", candidate, map[string]interface{}{
		"answers":        []map[string]interface{}{{"questionId": "q1", "selectedIndex": 2}},
		"violationCount": 1,
		"autoSubmitted":  true,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, skills.submitted)
	assert.Equal(t, 1, skills.submitted.ViolationCount)
	assert.True(t, skills.submitted.AutoSubmitted)

	w = doRequest(r, http.MethodPost, "/api/v1/skill-attempts/"+uuid.NewString()+"/submit", candidate, map[string]interface{}{
		"answers":        []map[string]interface{}{{"questionId": "q1"}},
		"violationCount": -1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifiedSkills(t *testing.T) {
	r := newTestRouter(&stubApplicationService{}, &stubSkillService{})
	candidate := uuid.New()
	w := doRequest(r, http.MethodGet, "/api/v1/skills/verified", candidate, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var body dto.VerifiedSkillsDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, candidate, body.CandidateID)
	assert.Equal(t, []string{"go", "react"}, body.SkillKeys)
}

func TestVerificationRecordsRoute(t *testing.T) {
	r := newTestRouter(&stubApplicationService{}, &stubSkillService{})

	w := doRequest(r, http.MethodGet, "/api/v1/skills/verification-records", uuid.Nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	candidate := uuid.New()
	w = doRequest(r, http.MethodGet, "/api/v1/skills/verification-records", candidate, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var body dto.VerificationRecordsDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, candidate, body.CandidateID)
	require.Len(t, body.Records, 2)
	assert.Equal(t, model.TierPartiallyVerified, body.Records[1].Status)
}
