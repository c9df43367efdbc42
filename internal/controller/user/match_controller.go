package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/talentgate/internal/controller"
	"github.com/lshigami/talentgate/internal/dto"
	"github.com/lshigami/talentgate/internal/service"
)

type MatchController struct {
	matchService        service.MatchService
	verificationService service.VerificationService
}

func NewMatchController(matchService service.MatchService, verificationService service.VerificationService) *MatchController {
	return &MatchController{matchService: matchService, verificationService: verificationService}
}

// ComputeMatch godoc
// @Summary (Candidate) Score the caller against a list of required skills
// @Description Mode "verified" (default) uses verified skills only; "claimed" uses every listed skill and is informational.
// @Tags Candidate - Matching
// @Accept json
// @Produce json
// @Param X-Candidate-ID header string true "Candidate ID"
// @Param request body dto.MatchRequestDTO true "Required skills and mode"
// @Success 200 {object} dto.MatchResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 404 {object} dto.ErrorResponse "Candidate not found"
// @Router /match [post]
func (c *MatchController) ComputeMatch(ctx *gin.Context) {
	candidateID, ok := controller.CandidateID(ctx)
	if !ok {
		return
	}
	var req dto.MatchRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	mode, err := service.ParseMatchMode(req.Mode)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}

	result, err := c.matchService.ComputeMatch(ctx.Request.Context(), req.RequiredSkills, candidateID, mode)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// VerifiedSkills godoc
// @Summary (Candidate) List the caller's verified skill keys
// @Tags Candidate - Matching
// @Produce json
// @Param X-Candidate-ID header string true "Candidate ID"
// @Success 200 {object} dto.VerifiedSkillsDTO
// @Failure 404 {object} dto.ErrorResponse "Candidate not found"
// @Router /skills/verified [get]
func (c *MatchController) VerifiedSkills(ctx *gin.Context) {
	candidateID, ok := controller.CandidateID(ctx)
	if !ok {
		return
	}
	keys, err := c.verificationService.VerifiedSkillKeys(ctx.Request.Context(), candidateID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.VerifiedSkillsDTO{CandidateID: candidateID, SkillKeys: keys.Keys()})
}

// VerificationRecords godoc
// @Summary (Candidate) List the caller's best verification outcome per skill
// @Description One record per skill key with the most favourable tier across graded attempts. Claimed skills with no attempts are listed as not_verified.
// @Tags Candidate - Matching
// @Produce json
// @Param X-Candidate-ID header string true "Candidate ID"
// @Success 200 {object} dto.VerificationRecordsDTO
// @Failure 404 {object} dto.ErrorResponse "Candidate not found"
// @Router /skills/verification-records [get]
func (c *MatchController) VerificationRecords(ctx *gin.Context) {
	candidateID, ok := controller.CandidateID(ctx)
	if !ok {
		return
	}
	records, err := c.verificationService.VerificationRecords(ctx.Request.Context(), candidateID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.VerificationRecordsDTO{CandidateID: candidateID, Records: records})
}
