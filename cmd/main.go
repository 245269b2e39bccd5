package main

import (
	"context"
	"net/http"
	"time"

	"github.com/davitran/applyassist/config"
	"github.com/davitran/applyassist/database"
	_ "github.com/davitran/applyassist/docs" // Swagger docs - auto-generated
	"github.com/davitran/applyassist/internal/controller"
	"github.com/davitran/applyassist/internal/logger"
	"github.com/davitran/applyassist/internal/middleware"
	"github.com/davitran/applyassist/internal/model"
	"github.com/davitran/applyassist/internal/repository"
	"github.com/davitran/applyassist/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title ApplyAssist API
// @version 1.0
// @description AI-powered interview training platform: practice sessions from job postings with generated questions and scored answers.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewSessionRepository,
			repository.NewQuestionRepository,
			repository.NewAnswerRepository,
			repository.NewFeedbackRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewGeminiTextGenerator,
			service.NewQuestionGeneratorService,
			service.NewAnswerEvaluatorService,
			service.NewJobParserService,
			service.NewInterviewService,
			service.NewDashboardService,
		),

		// API Controllers Layer
		fx.Provide(
			controller.NewInterviewController,
			controller.NewDashboardController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	// Request logging through the global zerolog instance.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	interviewCtrl *controller.InterviewController,
	dashboardCtrl *controller.DashboardController,
) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		interviews := api.Group("/interviews")
		interviews.POST("", interviewCtrl.CreateSession)
		interviews.GET("", interviewCtrl.ListSessions)
		interviews.GET("/:session_id", interviewCtrl.GetSessionDetail)
		interviews.POST("/:session_id/questions", interviewCtrl.GenerateQuestions)
		interviews.POST("/:session_id/answer", interviewCtrl.SubmitAnswer)

		api.POST("/jobs/parse-file", interviewCtrl.ParseJobFile)

		dashboard := api.Group("/dashboard")
		dashboard.GET("/stats", dashboardCtrl.GetStats)
		dashboard.GET("/history", dashboardCtrl.GetHistory)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("ApplyAssist API server starting on port %s", cfg.Server.Port)
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
		&model.User{},
		&model.InterviewSession{},
		&model.Question{},
		&model.Answer{},
		&model.Feedback{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
