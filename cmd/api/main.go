package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbadapter "taskpulse/internal/adapter/db"
	httpadapter "taskpulse/internal/adapter/http"
	"taskpulse/internal/adapter/http/handlers"
	httpmiddleware "taskpulse/internal/adapter/http/middleware"
	appservice "taskpulse/internal/app/service"
	"taskpulse/internal/config"
	"taskpulse/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()
	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to mysql", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close mysql connection", zap.Error(err))
		}
	}()

	txManager := dbadapter.NewTxManager(db)
	taskRepository := dbadapter.NewTaskRepository(db)
	subtaskRepository := dbadapter.NewSubtaskRepository(db)
	assignmentRepository := dbadapter.NewAssignmentRepository(db)
	timeLogRepository := dbadapter.NewTimeLogRepository(db)
	reviewRepository := dbadapter.NewReviewRepository(db)
	membershipRepository := dbadapter.NewMembershipRepository(db)

	trackingService := appservice.NewTrackingService(
		txManager, timeLogRepository, taskRepository, subtaskRepository, assignmentRepository, membershipRepository)
	propagator := appservice.NewStatusPropagator(txManager, taskRepository, subtaskRepository)
	reviewService := appservice.NewReviewService(
		txManager, reviewRepository, taskRepository, assignmentRepository, membershipRepository)
	taskService := appservice.NewTaskService(
		txManager, taskRepository, subtaskRepository, membershipRepository, propagator)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))

	healthHandler := handlers.NewHealthHandler(db)
	sessionHandler := handlers.NewSessionHandler(trackingService)
	taskHandler := handlers.NewTaskHandler(taskService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	httpadapter.RegisterRoutes(r, healthHandler, sessionHandler, taskHandler, reviewHandler)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}
