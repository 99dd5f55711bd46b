package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/lshigami/certpool/config"
	"github.com/lshigami/certpool/database"
	_ "github.com/lshigami/certpool/docs" // Swagger docs
	"github.com/lshigami/certpool/internal/cache"
	"github.com/lshigami/certpool/internal/controller"
	adminctrl "github.com/lshigami/certpool/internal/controller/admin"
	userctrl "github.com/lshigami/certpool/internal/controller/user"
	"github.com/lshigami/certpool/internal/llm"
	"github.com/lshigami/certpool/internal/logger"
	"github.com/lshigami/certpool/internal/middleware"
	"github.com/lshigami/certpool/internal/model"
	"github.com/lshigami/certpool/internal/monitoring"
	"github.com/lshigami/certpool/internal/repository"
	"github.com/lshigami/certpool/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Certification Question Pool API
// @version 1.0
// @description Practice exams for cloud certifications: random question sets served from a cached pool, with AI-assisted question generation.
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.url http://example.com/support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewRedisClient,
			cache.New,
			NewProviders,
			NewGinEngine,
		),

		// Repositories
		fx.Provide(
			repository.NewExamRepository,
			repository.NewQuestionRepository,
			repository.NewReviewRepository,
		),

		// Services
		fx.Provide(
			service.NewGenerationService,
			service.NewQuestionPoolService,
			service.NewExamService,
			service.NewAdminExamService,
			service.NewReviewService,
		),

		// Controllers
		fx.Provide(
			controller.NewHealthController,
			userctrl.NewExamController,
			userctrl.NewQuestionController,
			userctrl.NewReviewController,
			adminctrl.NewAdminExamController,
		),

		fx.Invoke(logger.Configure),
		fx.Invoke(monitoring.Init),
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

// NewRedisClient wraps database.NewRedisClient with a close hook. The client
// may be nil, in which case cache.New picks the in-process backend.
func NewRedisClient(lc fx.Lifecycle, cfg *config.Config) *redis.Client {
	rdb := database.NewRedisClient(cfg)
	if rdb != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return rdb.Close()
			},
		})
	}
	return rdb
}

// NewProviders builds every provider in the default fallback order.
// Unconfigured providers are kept; the generation service skips them.
func NewProviders(lc fx.Lifecycle, cfg *config.Config) ([]llm.Provider, error) {
	gemini, err := llm.NewGeminiProvider(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return gemini.Close()
		},
	})

	providers := []llm.Provider{
		llm.NewManusProvider(cfg),
		llm.NewOpenAIProvider(cfg),
		gemini,
	}
	for _, p := range providers {
		log.Info().Str("provider", p.Name()).Bool("configured", p.Configured()).Msg("Question provider registered")
	}
	return providers, nil
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	switch cfg.Server.GinMode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.GinMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		requestID, _ := param.Keys[middleware.RequestIDKey].(string)
		log.Info().
			Str("request_id", requestID).
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
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(monitoring.MetricsMiddleware())

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", monitoring.PrometheusHandler())

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	healthCtrl *controller.HealthController,
	examCtrl *userctrl.ExamController,
	questionCtrl *userctrl.QuestionController,
	reviewCtrl *userctrl.ReviewController,
	adminExamCtrl *adminctrl.AdminExamController,
) {
	stop := make(chan struct{})
	generationLimit := middleware.RateLimiter(cfg.Generation.RatePerMinute, time.Minute, stop)

	router.GET("/health", healthCtrl.Health)

	// Admin Routes (prefixed with /api/v1/admin)
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		examsAdminGroup := adminAPIGroup.Group("/exams")
		examsAdminGroup.POST("", adminExamCtrl.CreateExam)
		examsAdminGroup.POST("/pre-generate", generationLimit, adminExamCtrl.PreGenerate)
		examsAdminGroup.POST("/:exam_id/generate-questions", generationLimit, adminExamCtrl.GenerateQuestions)
		examsAdminGroup.POST("/:exam_id/import", adminExamCtrl.ImportQuestions)
	}

	// User Routes (prefixed with /api/v1)
	userAPIGroup := router.Group("/api/v1")
	{
		userAPIGroup.GET("/health", healthCtrl.Health)

		userAPIGroup.GET("/exams", examCtrl.GetAllExams)
		userAPIGroup.GET("/exams/by-type/:exam_type", examCtrl.GetExamsByType)
		userAPIGroup.GET("/exams/:exam_id", examCtrl.GetExam)
		userAPIGroup.GET("/exams/:exam_id/random-questions", examCtrl.GetRandomQuestions)
		userAPIGroup.GET("/exams/:exam_id/questions", examCtrl.GetExamQuestions)

		userAPIGroup.GET("/questions", questionCtrl.ListQuestions)

		userAPIGroup.GET("/reviews", reviewCtrl.ListReviews)
		userAPIGroup.POST("/reviews", reviewCtrl.SubmitReview)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Question pool API server starting on port %s", cfg.Server.Port)
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
			close(stop)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Exam{},
		&model.Question{},
		&model.Answer{},
		&model.Review{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
