package handlers

import (
	"net/http"

	"github.com/brightpath-lms/quiz-engine/internal/services"
	"github.com/brightpath-lms/quiz-engine/internal/utils"
	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	BaseHandler
	attemptService services.AttemptService
}

func NewAttemptHandler(attemptService services.AttemptService, logger utils.Logger) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler:    NewBaseHandler(logger),
		attemptService: attemptService,
	}
}

// StartAttempt starts a new attempt on a quiz for a student
// @Summary Start attempt
// @Tags attempts
// @Accept json
// @Produce json
// @Success 201 {object} services.AttemptResponse
// @Failure 400 {object} ErrorResponse
// @Router /attempts [post]
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	var req services.StartAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if req.StudentID == "" {
		req.StudentID = c.GetHeader("X-User-ID")
	}

	resp, err := h.attemptService.Start(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetAttempt returns the current attempt state
func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	resp, err := h.attemptService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SaveAnswer records a student's answer to one question
func (h *AttemptHandler) SaveAnswer(c *gin.Context) {
	var req services.SaveAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.attemptService.SaveAnswer(c.Request.Context(), c.Param("id"), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Answer saved"})
}

// SubmitAttempt grades the attempt and returns the result view
func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	result, err := h.attemptService.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RetryAttempt resets a failed attempt with a fresh presentation
func (h *AttemptHandler) RetryAttempt(c *gin.Context) {
	resp, err := h.attemptService.Retry(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetResult returns the graded result view of a submitted attempt
func (h *AttemptHandler) GetResult(c *gin.Context) {
	result, err := h.attemptService.GetResult(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
