package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/talentgate/internal/controller"
	"github.com/lshigami/talentgate/internal/dto"
	"github.com/lshigami/talentgate/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminJobController struct {
	adminJobService service.AdminJobService
}

func NewAdminJobController(adminJobService service.AdminJobService) *AdminJobController {
	return &AdminJobController{adminJobService: adminJobService}
}

// CreateJob godoc
// @Summary (Admin) Create a job
// @Description Admin creates a job with its required skills and an optional screening assessment. Pass percent defaults to 60 and marks per question to 1.
// @Tags Admin - Jobs
// @Accept json
// @Produce json
// @Param job_data body dto.JobCreateDTO true "Job configuration"
// @Success 201 {object} dto.JobResponseDTO "Job created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/jobs [post]
func (c *AdminJobController) CreateJob(ctx *gin.Context) {
	var req dto.JobCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}

	jobResp, err := c.adminJobService.CreateJob(ctx.Request.Context(), req)
	if err != nil {
		log.Warn().Err(err).Str("title", req.Title).Msg("Admin CreateJob: Service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, jobResp)
}
