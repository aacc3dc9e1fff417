package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dnc-edu/conduct-backend/internal/config"
	"github.com/dnc-edu/conduct-backend/internal/database"
	"github.com/dnc-edu/conduct-backend/internal/handler"
	"github.com/dnc-edu/conduct-backend/internal/logger"
	"github.com/dnc-edu/conduct-backend/internal/repository"
	"github.com/dnc-edu/conduct-backend/internal/router"
	"github.com/dnc-edu/conduct-backend/internal/service"
	"github.com/dnc-edu/conduct-backend/internal/validator"
	"github.com/dnc-edu/conduct-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting conduct backend")

	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Repositories
	studentRepo := repository.NewStudentRepository(pool)
	lecturerRepo := repository.NewLecturerRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	accountRepo := repository.NewAccountRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	semesterRepo := repository.NewSemesterRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	answerRepo := repository.NewAnswerRepository(pool)
	evaluationRepo := repository.NewEvaluationRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	profiles := repository.NewProfileRegistry(studentRepo, lecturerRepo, adminRepo)

	// Services
	authService := service.NewAuthService(cfg, rdb, roleRepo)
	accountService := service.NewAccountService(pool, profiles, accountRepo, authService, log)
	evaluationService := service.NewEvaluationService(cfg, evaluationRepo, answerRepo, semesterRepo, studentRepo, classRepo, rdb, log)
	semesterService := service.NewSemesterService(semesterRepo, log)
	departmentService := service.NewDepartmentService(departmentRepo, log)
	classService := service.NewClassService(classRepo, studentRepo, log)
	questionService := service.NewQuestionService(questionRepo, answerRepo, log)
	roleService := service.NewRoleService(roleRepo, authService, log)
	dashboardService := service.NewDashboardService(dashboardRepo, semesterRepo, evaluationRepo, log)
	importService := service.NewImportService(accountService, log)

	// Handlers
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(cfg, authService, accountService),
		Evaluation: handler.NewEvaluationHandler(evaluationService),
		Monitor:    handler.NewMonitorHandler(rdb, evaluationService, log),
		WS:         handler.NewWSHandler(rdb, evaluationService, log, cfg.AllowedOrigins),
		User:       handler.NewUserHandler(accountService, importService),
		Department: handler.NewDepartmentHandler(departmentService),
		Class:      handler.NewClassHandler(classService),
		Semester:   handler.NewSemesterHandler(semesterService),
		Question:   handler.NewQuestionHandler(questionService),
		Role:       handler.NewRoleHandler(roleService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		System:     handler.NewSystemHandler(pool, rdb),
	}

	// Background workers
	workerCtx, workerCancel := context.WithCancel(context.Background())

	summaryWorker := worker.NewSummaryWorker(rdb, evaluationService, log)
	go summaryWorker.Start(workerCtx)

	r := router.SetupRouter(authService, handlers, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// Stop accepting new HTTP requests first, then let the worker drain.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()
	time.Sleep(2 * time.Second)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
