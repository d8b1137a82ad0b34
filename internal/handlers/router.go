package handlers

import (
	"github.com/brightpath-lms/quiz-engine/internal/services"
	"github.com/brightpath-lms/quiz-engine/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	quizHandler    *QuizHandler
	attemptHandler *AttemptHandler
}

func NewHandlerManager(
	quizService services.QuizService,
	attemptService services.AttemptService,
	exportService services.ExportService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler:    NewQuizHandler(quizService, exportService, logger),
		attemptHandler: NewAttemptHandler(attemptService, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Quiz authoring routes
		quizzes := v1.Group("/quizzes")
		{
			quizzes.POST("", hm.quizHandler.CreateQuiz)
			quizzes.GET("", hm.quizHandler.ListQuizzes)
			quizzes.GET("/:id", hm.quizHandler.GetQuiz)
			quizzes.PUT("/:id", hm.quizHandler.UpdateQuiz)
			quizzes.DELETE("/:id", hm.quizHandler.DeleteQuiz)

			// Question management
			quizzes.POST("/:id/questions", hm.quizHandler.AddQuestion)
			quizzes.PUT("/:id/questions/:question_id", hm.quizHandler.UpdateQuestion)
			quizzes.DELETE("/:id/questions/:question_id", hm.quizHandler.RemoveQuestion)
			quizzes.PUT("/:id/questions/reorder", hm.quizHandler.ReorderQuestions)

			// Settings and export
			quizzes.PUT("/:id/settings", hm.quizHandler.UpdateSettings)
			quizzes.GET("/:id/export", hm.quizHandler.ExportQuiz)
		}

		// Lesson-scoped lookup
		v1.GET("/lessons/:lesson_id/quiz", hm.quizHandler.GetQuizByLesson)

		// Attempt routes
		attempts := v1.Group("/attempts")
		{
			attempts.POST("", hm.attemptHandler.StartAttempt)
			attempts.GET("/:id", hm.attemptHandler.GetAttempt)
			attempts.PUT("/:id/answers", hm.attemptHandler.SaveAnswer)
			attempts.POST("/:id/submit", hm.attemptHandler.SubmitAttempt)
			attempts.POST("/:id/retry", hm.attemptHandler.RetryAttempt)
			attempts.GET("/:id/result", hm.attemptHandler.GetResult)
		}
	}
}
