package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/talentgate/internal/controller"
	"github.com/lshigami/talentgate/internal/dto"
	"github.com/lshigami/talentgate/internal/service"
	"github.com/rs/zerolog/log"
)

type JobController struct {
	jobService           service.JobService
	jobAssessmentService service.JobAssessmentService
	applicationService   service.ApplicationService
}

func NewJobController(
	jobService service.JobService,
	jobAssessmentService service.JobAssessmentService,
	applicationService service.ApplicationService,
) *JobController {
	return &JobController{
		jobService:           jobService,
		jobAssessmentService: jobAssessmentService,
		applicationService:   applicationService,
	}
}

// ListJobs godoc
// @Summary (Candidate) List jobs
// @Tags Candidate - Jobs
// @Produce json
// @Success 200 {array} dto.JobResponseDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs [get]
func (c *JobController) ListJobs(ctx *gin.Context) {
	jobs, err := c.jobService.ListJobs(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, jobs)
}

// GetJob godoc
// @Summary (Candidate) Get a job
// @Description Returns the job's requirements and a summary of its screening assessment, never the answer key.
// @Tags Candidate - Jobs
// @Produce json
// @Param job_id path string true "Job ID"
// @Success 200 {object} dto.JobResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Job ID format"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{job_id} [get]
func (c *JobController) GetJob(ctx *gin.Context) {
	jobID, ok := controller.UUIDParam(ctx, "job_id")
	if !ok {
		return
	}
	job, err := c.jobService.GetJob(ctx.Request.Context(), jobID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, job)
}

// StartAttempt godoc
// @Summary (Candidate) Start or resume a job screening assessment
// @Tags Candidate - Jobs
// @Produce json
// @Param X-Candidate-ID header string true "Candidate ID"
// @Param job_id path string true "Job ID"
// @Success 201 {object} dto.JobAttemptDTO
// @Failure 404 {object} dto.ErrorResponse "Job or candidate not found"
// @Failure 412 {object} dto.ErrorResponse "Job has no screening assessment"
// @Router /jobs/{job_id}/attempts [post]
func (c *JobController) StartAttempt(ctx *gin.Context) {
	candidateID, ok := controller.CandidateID(ctx)
	if !ok {
		return
	}
	jobID, ok := controller.UUIDParam(ctx, "job_id")
	if !ok {
		return
	}
	attempt, err := c.jobAssessmentService.StartAttempt(ctx.Request.Context(), candidateID, jobID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, attempt)
}

// SubmitAttempt godoc
// @Summary (Candidate) Submit a job screening assessment
// @Description Unanswered questions count as no selection. The result is weighted by the job's marks per question.
// @Tags Candidate - Jobs
// @Accept json
// @Produce json
// @Param X-Candidate-ID header string true "Candidate ID"
// @Param job_id path string true "Job ID"
// @Param attempt_id path string true "Attempt ID"
// @Param submission body dto.SubmitJobAttemptDTO true "Answers (may be partial)"
// @Success 200 {object} dto.JobAttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse "Malformed submission"
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another candidate"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Router /jobs/{job_id}/attempts/{attempt_id}/submit [post]
func (c *JobController) SubmitAttempt(ctx *gin.Context) {
	candidateID, ok := controller.CandidateID(ctx)
	if !ok {
		return
	}
	jobID, ok := controller.UUIDParam(ctx, "job_id")
	if !ok {
		return
	}
	attemptID, ok := controller.UUIDParam(ctx, "attempt_id")
	if !ok {
		return
	}

	var req dto.SubmitJobAttemptDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}

	result, err := c.jobAssessmentService.SubmitAttempt(ctx.Request.Context(), candidateID, jobID, attemptID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ListAttempts godoc
// @Summary (Candidate) List the caller's screening attempts for a job
// @Tags Candidate - Jobs
// @Produce json
// @Param X-Candidate-ID header string true "Candidate ID"
// @Param job_id path string true "Job ID"
// @Success 200 {array} dto.JobAttemptResultDTO
// @Router /jobs/{job_id}/attempts [get]
func (c *JobController) ListAttempts(ctx *gin.Context) {
	candidateID, ok := controller.CandidateID(ctx)
	if !ok {
		return
	}
	jobID, ok := controller.UUIDParam(ctx, "job_id")
	if !ok {
		return
	}
	attempts, err := c.jobAssessmentService.ListAttempts(ctx.Request.Context(), candidateID, jobID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// CheckEligibility godoc
// @Summary (Candidate) Check whether the caller may apply to a job
// @Description Gates in order: screening passed, at least one verified skill, verified match of 60 or more.
// @Tags Candidate - Applications
// @Produce json
// @Param X-Candidate-ID header string true "Candidate ID"
// @Param job_id path string true "Job ID"
// @Success 200 {object} dto.EligibilityDTO
// @Failure 404 {object} dto.ErrorResponse "Job or candidate not found"
// @Failure 412 {object} dto.ErrorResponse "ASSESSMENT_NOT_PASSED, SKILLS_NOT_VERIFIED or LOW_MATCH"
// @Router /jobs/{job_id}/eligibility [get]
func (c *JobController) CheckEligibility(ctx *gin.Context) {
	candidateID, ok := controller.CandidateID(ctx)
	if !ok {
		return
	}
	jobID, ok := controller.UUIDParam(ctx, "job_id")
	if !ok {
		return
	}
	eligibility, err := c.applicationService.CheckEligibility(ctx.Request.Context(), candidateID, jobID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, eligibility)
}

// Apply godoc
// @Summary (Candidate) Apply to a job
// @Description Runs the eligibility gate and records the verified match score as a snapshot.
// @Tags Candidate - Applications
// @Produce json
// @Param X-Candidate-ID header string true "Candidate ID"
// @Param job_id path string true "Job ID"
// @Success 201 {object} dto.ApplicationDTO
// @Failure 404 {object} dto.ErrorResponse "Job or candidate not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied"
// @Failure 412 {object} dto.ErrorResponse "Not eligible"
// @Router /jobs/{job_id}/applications [post]
func (c *JobController) Apply(ctx *gin.Context) {
	candidateID, ok := controller.CandidateID(ctx)
	if !ok {
		return
	}
	jobID, ok := controller.UUIDParam(ctx, "job_id")
	if !ok {
		return
	}
	application, err := c.applicationService.Apply(ctx.Request.Context(), candidateID, jobID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	log.Info().Str("candidateID", candidateID.String()).Str("jobID", jobID.String()).Msg("User Apply: Application recorded")
	ctx.JSON(http.StatusCreated, application)
}

// MyApplications godoc
// @Summary (Candidate) List the caller's applications
// @Description Each entry carries the stored match snapshot, a live verified match, and an informational profile match.
// @Tags Candidate - Applications
// @Produce json
// @Param X-Candidate-ID header string true "Candidate ID"
// @Success 200 {array} dto.MyApplicationDTO
// @Failure 404 {object} dto.ErrorResponse "Candidate not found"
// @Router /applications/mine [get]
func (c *JobController) MyApplications(ctx *gin.Context) {
	candidateID, ok := controller.CandidateID(ctx)
	if !ok {
		return
	}
	applications, err := c.applicationService.ListMyApplications(ctx.Request.Context(), candidateID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, applications)
}

