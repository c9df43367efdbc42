package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/talentgate/config"
	"github.com/lshigami/talentgate/database"
	_ "github.com/lshigami/talentgate/docs" // Swagger docs
	"github.com/lshigami/talentgate/internal/controller"
	adminctrl "github.com/lshigami/talentgate/internal/controller/admin"
	userctrl "github.com/lshigami/talentgate/internal/controller/user"
	"github.com/lshigami/talentgate/internal/logger"
	"github.com/lshigami/talentgate/internal/model"
	"github.com/lshigami/talentgate/internal/notification"
	"github.com/lshigami/talentgate/internal/repository"
	"github.com/lshigami/talentgate/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title TalentGate Skill Verification API
// @version 1.0
// @description Skill assessments, verification ledger, match scoring and application gating.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			notification.NewSink,
			service.NewQuestionSupply,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewCandidateRepository,
			repository.NewJobRepository,
			repository.NewSkillAttemptRepository,
			repository.NewJobAttemptRepository,
			repository.NewAttemptSequenceRepository,
			repository.NewApplicationRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewVerificationService,
			service.NewMatchService,
			service.NewSkillAssessmentService,
			service.NewJobAssessmentService,
			service.NewApplicationService,
			service.NewAdminJobService,
			service.NewJobService,
		),

		// API Controllers Layer
		fx.Provide(
			adminctrl.NewAdminJobController,
			userctrl.NewSkillAssessmentController,
			userctrl.NewMatchController,
			userctrl.NewJobController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	logger.Init(cfg.Log.Level)
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", controller.CandidateHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutes mounts every API route on router.
func RegisterRoutes(
	router *gin.Engine,
	adminJobCtrl *adminctrl.AdminJobController,
	skillCtrl *userctrl.SkillAssessmentController,
	matchCtrl *userctrl.MatchController,
	jobCtrl *userctrl.JobController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/jobs", adminJobCtrl.CreateJob)
	}

	userAPIGroup := router.Group("/api/v1")
	{
		// Per-skill assessments
		userAPIGroup.POST("/skills/:skill/attempts", skillCtrl.StartAttempt)
		userAPIGroup.POST("/skill-attempts/:attempt_id/submit", skillCtrl.SubmitAttempt)
		userAPIGroup.GET("/skill-attempts", skillCtrl.ListHistory)

		// Verification and matching
		userAPIGroup.GET("/skills/verified", matchCtrl.VerifiedSkills)
		userAPIGroup.GET("/skills/verification-records", matchCtrl.VerificationRecords)
		userAPIGroup.POST("/match", matchCtrl.ComputeMatch)

		// Jobs, screening and applications
		userAPIGroup.GET("/jobs", jobCtrl.ListJobs)
		userAPIGroup.GET("/jobs/:job_id", jobCtrl.GetJob)
		userAPIGroup.POST("/jobs/:job_id/attempts", jobCtrl.StartAttempt)
		userAPIGroup.GET("/jobs/:job_id/attempts", jobCtrl.ListAttempts)
		userAPIGroup.POST("/jobs/:job_id/attempts/:attempt_id/submit", jobCtrl.SubmitAttempt)
		userAPIGroup.GET("/jobs/:job_id/eligibility", jobCtrl.CheckEligibility)
		userAPIGroup.POST("/jobs/:job_id/applications", jobCtrl.Apply)
		userAPIGroup.GET("/applications/mine", jobCtrl.MyApplications)
	}
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminJobCtrl *adminctrl.AdminJobController,
	skillCtrl *userctrl.SkillAssessmentController,
	matchCtrl *userctrl.MatchController,
	jobCtrl *userctrl.JobController,
) {
	RegisterRoutes(router, adminJobCtrl, skillCtrl, matchCtrl, jobCtrl)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("TalentGate API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Candidate{},
		&model.CandidateSkill{},
		&model.Job{},
		&model.SkillAttempt{},
		&model.JobAttempt{},
		&model.Application{},
		&model.AttemptSequence{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
