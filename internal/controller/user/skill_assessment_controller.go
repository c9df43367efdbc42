package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/talentgate/internal/controller"
	"github.com/lshigami/talentgate/internal/dto"
	"github.com/lshigami/talentgate/internal/service"
	"github.com/rs/zerolog/log"
)

type SkillAssessmentController struct {
	skillAssessmentService service.SkillAssessmentService
}

func NewSkillAssessmentController(skillAssessmentService service.SkillAssessmentService) *SkillAssessmentController {
	return &SkillAssessmentController{skillAssessmentService: skillAssessmentService}
}

// StartAttempt godoc
// @Summary (Candidate) Start or resume a skill assessment
// @Description Starts a 10-question assessment for the skill. If an attempt for the same skill is still in progress it is returned instead.
// @Tags Candidate - Skill Assessments
// @Produce json
// @Param X-Candidate-ID header string true "Candidate ID"
// @Param skill path string true "Skill name"
// @Success 201 {object} dto.SkillAttemptDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid candidate or skill"
// @Failure 404 {object} dto.ErrorResponse "Candidate not found"
// @Failure 503 {object} dto.ErrorResponse "No question generator or question supply unavailable"
// @Router /skills/{skill}/attempts [post]
func (c *SkillAssessmentController) StartAttempt(ctx *gin.Context) {
	candidateID, ok := controller.CandidateID(ctx)
	if !ok {
		return
	}
	attempt, err := c.skillAssessmentService.StartAttempt(ctx.Request.Context(), candidateID, ctx.Param("skill"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, attempt)
}

// SubmitAttempt godoc
// @Summary (Candidate) Submit a skill assessment
// @Description Grades the attempt. Two or more violations, or an auto-submission, fail the attempt regardless of answers.
// @Tags Candidate - Skill Assessments
// @Accept json
// @Produce json
// @Param X-Candidate-ID header string true "Candidate ID"
// @Param attempt_id path string true "Attempt ID"
// @Param submission body dto.SubmitSkillAttemptDTO true "Exactly 10 answers plus proctoring signals"
// @Success 200 {object} dto.SkillAttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse "Malformed submission"
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another candidate"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Router /skill-attempts/{attempt_id}/submit [post]
func (c *SkillAssessmentController) SubmitAttempt(ctx *gin.Context) {
	candidateID, ok := controller.CandidateID(ctx)
	if !ok {
		return
	}
	attemptID, ok := controller.UUIDParam(ctx, "attempt_id")
	if !ok {
		return
	}

	var req dto.SubmitSkillAttemptDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}

	result, err := c.skillAssessmentService.SubmitAttempt(ctx.Request.Context(), candidateID, attemptID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ListHistory godoc
// @Summary (Candidate) List skill assessment history
// @Description Lists the caller's graded attempts, newest first. Failed or flagged attempts always show accuracy 0 and not_verified.
// @Tags Candidate - Skill Assessments
// @Produce json
// @Param X-Candidate-ID header string true "Candidate ID"
// @Param skill query string false "Restrict to one skill"
// @Success 200 {array} dto.SkillAttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid candidate"
// @Router /skill-attempts [get]
func (c *SkillAssessmentController) ListHistory(ctx *gin.Context) {
	candidateID, ok := controller.CandidateID(ctx)
	if !ok {
		return
	}
	history, err := c.skillAssessmentService.ListHistory(ctx.Request.Context(), candidateID, ctx.Query("skill"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	log.Debug().Str("candidateID", candidateID.String()).Int("count", len(history)).Msg("Skill history listed")
	ctx.JSON(http.StatusOK, history)
}
