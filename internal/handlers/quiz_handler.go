package handlers

import (
	"net/http"
	"time"

	"github.com/brightpath-lms/quiz-engine/internal/models"
	"github.com/brightpath-lms/quiz-engine/internal/repositories"
	"github.com/brightpath-lms/quiz-engine/internal/services"
	"github.com/brightpath-lms/quiz-engine/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	BaseHandler
	quizService   services.QuizService
	exportService services.ExportService
}

func NewQuizHandler(
	quizService services.QuizService,
	exportService services.ExportService,
	logger utils.Logger,
) *QuizHandler {
	return &QuizHandler{
		BaseHandler:   NewBaseHandler(logger),
		quizService:   quizService,
		exportService: exportService,
	}
}

// CreateQuiz creates a new quiz
// @Summary Create quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Success 201 {object} models.Quiz
// @Failure 400 {object} ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req services.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	creatorID := c.GetHeader("X-User-ID")

	quiz, err := h.quizService.Create(c.Request.Context(), &req, creatorID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

// GetQuiz retrieves a quiz by ID
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quiz, err := h.quizService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// GetQuizByLesson retrieves the quiz attached to a lesson
func (h *QuizHandler) GetQuizByLesson(c *gin.Context) {
	quiz, err := h.quizService.GetByLesson(c.Request.Context(), c.Param("lesson_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// ListQuizzes lists quizzes with optional filters
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	filters := repositories.QuizFilters{
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if courseID := c.Query("course_id"); courseID != "" {
		filters.CourseID = &courseID
	}
	if lessonID := c.Query("lesson_id"); lessonID != "" {
		filters.LessonID = &lessonID
	}
	if createdBy := c.Query("created_by"); createdBy != "" {
		filters.CreatedBy = &createdBy
	}

	quizzes, total, err := h.quizService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quizzes": quizzes,
		"total":   total,
	})
}

// UpdateQuiz updates quiz metadata and/or its definition
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	var req services.UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	quiz, err := h.quizService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// DeleteQuiz deletes a quiz
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	if err := h.quizService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Quiz deleted"})
}

// ===== QUESTION MANAGEMENT =====

// AddQuestion adds a question to a quiz definition
func (h *QuizHandler) AddQuestion(c *gin.Context) {
	var req services.AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if req.Question == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Question payload is required"})
		return
	}

	quiz, err := h.quizService.AddQuestion(c.Request.Context(), c.Param("id"), req.Question)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

// UpdateQuestion replaces a question in a quiz definition. Option, pair and
// accepted-answer edits all arrive as a full question document.
func (h *QuizHandler) UpdateQuestion(c *gin.Context) {
	var req services.AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if req.Question == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Question payload is required"})
		return
	}
	req.Question.ID = c.Param("question_id")

	quiz, err := h.quizService.UpdateQuestion(c.Request.Context(), c.Param("id"), req.Question)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// RemoveQuestion removes a question from a quiz definition
func (h *QuizHandler) RemoveQuestion(c *gin.Context) {
	quiz, err := h.quizService.RemoveQuestion(c.Request.Context(), c.Param("id"), c.Param("question_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// ReorderQuestions permutes the canonical question order
func (h *QuizHandler) ReorderQuestions(c *gin.Context) {
	var req struct {
		Order []string `json:"order" validate:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	quiz, err := h.quizService.ReorderQuestions(c.Request.Context(), c.Param("id"), req.Order)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// UpdateSettings replaces the quiz settings
func (h *QuizHandler) UpdateSettings(c *gin.Context) {
	var settings models.QuizSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	quiz, err := h.quizService.UpdateSettings(c.Request.Context(), c.Param("id"), settings)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// ===== EXPORT =====

// ExportQuiz renders the quiz in the requested format (xlsx, csv or json)
func (h *QuizHandler) ExportQuiz(c *gin.Context) {
	quizID := c.Param("id")
	format := c.DefaultQuery("format", "xlsx")

	h.LogRequest(c, "Exporting quiz", "quiz_id", quizID, "format", format)

	var (
		data        []byte
		err         error
		contentType string
	)

	filename := "quiz-" + quizID + "-" + time.Now().Format("20060102")
	switch format {
	case "xlsx":
		data, err = h.exportService.ExportQuizToExcel(c.Request.Context(), quizID)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename += ".xlsx"
	case "csv":
		data, err = h.exportService.ExportQuizToCSV(c.Request.Context(), quizID)
		contentType = "text/csv"
		filename += ".csv"
	case "json":
		data, err = h.exportService.ExportQuizToJSON(c.Request.Context(), quizID)
		contentType = "application/json"
		filename += ".json"
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unsupported export format",
			Details: format,
		})
		return
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
