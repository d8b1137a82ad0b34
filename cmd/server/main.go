package main

import (
	"log"
	"time"

	"github.com/brightpath-lms/quiz-engine/internal/config"
	"github.com/brightpath-lms/quiz-engine/internal/events"
	"github.com/brightpath-lms/quiz-engine/internal/handlers"
	"github.com/brightpath-lms/quiz-engine/internal/models"
	"github.com/brightpath-lms/quiz-engine/internal/repositories"
	"github.com/brightpath-lms/quiz-engine/internal/repositories/postgres"
	"github.com/brightpath-lms/quiz-engine/internal/services"
	"github.com/brightpath-lms/quiz-engine/internal/utils"
	"github.com/brightpath-lms/quiz-engine/internal/validator"
	"github.com/brightpath-lms/quiz-engine/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogLogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}
	if err := db.AutoMigrate(&models.Quiz{}); err != nil {
		logger.Error("failed to run migrations", "error", err)
		log.Fatal(err)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		log.Fatal(err)
	}
	defer redisClient.Close()

	publisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
		KafkaBrokers: cfg.KafkaBrokers,
		TopicName:    cfg.EventsTopic,
		Logger:       slogLogger,
	})
	if err != nil {
		logger.Error("failed to create event publisher", "error", err)
		log.Fatal(err)
	}
	defer publisher.Close()

	repo := repositories.New(
		postgres.NewQuizPostgreSQL(db),
		repositories.NewRedisSessionStore(redisClient, time.Duration(cfg.SessionTTLHours)*time.Hour),
	)

	v := validator.New()
	quizService := services.NewQuizService(repo, slogLogger, v)
	attemptService := services.NewAttemptService(repo, publisher, slogLogger, v)
	exportService := services.NewExportService(repo, slogLogger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(gin.Recovery())

	handlerManager := handlers.NewHandlerManager(quizService, attemptService, exportService, logger)
	handlerManager.SetupRoutes(router)

	logger.Info("starting quiz engine server", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("server exited", "error", err)
		log.Fatal(err)
	}
}
