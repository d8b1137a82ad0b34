package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brightpath-lms/quiz-engine/internal/models"
	"github.com/brightpath-lms/quiz-engine/internal/repositories"
	"github.com/brightpath-lms/quiz-engine/internal/validator"
	"github.com/google/uuid"
)

type quizService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewQuizService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) QuizService {
	return &quizService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ===== CRUD OPERATIONS =====

func (s *quizService) Create(ctx context.Context, req *CreateQuizRequest, creatorID string) (*models.Quiz, error) {
	s.logger.Info("Creating quiz",
		"lesson_id", req.LessonID,
		"creator_id", creatorID)

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	definition := req.Definition
	if definition == nil {
		definition = &models.QuizDefinition{
			Questions: []*models.Question{},
			Settings:  models.DefaultQuizSettings(),
		}
	}
	if err := s.validator.Validate(definition); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	quiz := &models.Quiz{
		ID:          uuid.NewString(),
		CourseID:    req.CourseID,
		LessonID:    req.LessonID,
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   creatorID,
	}
	if err := quiz.EncodeDefinition(definition); err != nil {
		return nil, fmt.Errorf("failed to encode definition: %w", err)
	}

	if err := s.repo.Quiz().Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.logger.Info("Quiz created successfully", "quiz_id", quiz.ID)
	return quiz, nil
}

func (s *quizService) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		return nil, wrapStoreError(err, ErrQuizNotFound, "get quiz")
	}
	return quiz, nil
}

func (s *quizService) GetByLesson(ctx context.Context, lessonID string) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByLesson(ctx, lessonID)
	if err != nil {
		return nil, wrapStoreError(err, ErrQuizNotFound, "get quiz by lesson")
	}
	return quiz, nil
}

func (s *quizService) Update(ctx context.Context, id string, req *UpdateQuizRequest) (*models.Quiz, error) {
	s.logger.Info("Updating quiz", "quiz_id", id)

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		return nil, wrapStoreError(err, ErrQuizNotFound, "get quiz")
	}

	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = req.Description
	}
	if req.Definition != nil {
		if err := s.validator.Validate(req.Definition); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}
		if err := quiz.EncodeDefinition(req.Definition); err != nil {
			return nil, fmt.Errorf("failed to encode definition: %w", err)
		}
	}

	if err := s.repo.Quiz().Update(ctx, quiz); err != nil {
		return nil, wrapStoreError(err, ErrQuizNotFound, "update quiz")
	}

	s.logger.Info("Quiz updated successfully", "quiz_id", id, "version", quiz.Version)
	return quiz, nil
}

func (s *quizService) Delete(ctx context.Context, id string) error {
	s.logger.Info("Deleting quiz", "quiz_id", id)

	if err := s.repo.Quiz().Delete(ctx, id); err != nil {
		return wrapStoreError(err, ErrQuizNotFound, "delete quiz")
	}
	return nil
}

func (s *quizService) List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	quizzes, total, err := s.repo.Quiz().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return quizzes, total, nil
}

// ===== QUESTION MANAGEMENT =====

func (s *quizService) AddQuestion(ctx context.Context, quizID string, question *models.Question) (*models.Quiz, error) {
	s.logger.Info("Adding question to quiz",
		"quiz_id", quizID,
		"question_type", question.Type)

	if question.ID == "" {
		question.ID = uuid.NewString()
	}
	if err := s.validator.Validate(question); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return s.mutateDefinition(ctx, quizID, func(def *models.QuizDefinition) error {
		if def.QuestionByID(question.ID) != nil {
			return ErrQuestionExists
		}
		def.Questions = append(def.Questions, question)
		return nil
	})
}

func (s *quizService) UpdateQuestion(ctx context.Context, quizID string, question *models.Question) (*models.Quiz, error) {
	s.logger.Info("Updating quiz question",
		"quiz_id", quizID,
		"question_id", question.ID)

	if err := s.validator.Validate(question); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return s.mutateDefinition(ctx, quizID, func(def *models.QuizDefinition) error {
		for i, existing := range def.Questions {
			if existing.ID == question.ID {
				def.Questions[i] = question
				return nil
			}
		}
		return ErrQuestionNotFound
	})
}

func (s *quizService) RemoveQuestion(ctx context.Context, quizID, questionID string) (*models.Quiz, error) {
	s.logger.Info("Removing question from quiz",
		"quiz_id", quizID,
		"question_id", questionID)

	return s.mutateDefinition(ctx, quizID, func(def *models.QuizDefinition) error {
		if def.QuestionByID(questionID) == nil {
			return ErrQuestionNotFound
		}
		def.RemoveQuestion(questionID)
		return nil
	})
}

func (s *quizService) ReorderQuestions(ctx context.Context, quizID string, order []string) (*models.Quiz, error) {
	s.logger.Info("Reordering quiz questions", "quiz_id", quizID)

	return s.mutateDefinition(ctx, quizID, func(def *models.QuizDefinition) error {
		def.ReorderQuestions(order)
		return nil
	})
}

func (s *quizService) UpdateSettings(ctx context.Context, quizID string, settings models.QuizSettings) (*models.Quiz, error) {
	s.logger.Info("Updating quiz settings", "quiz_id", quizID)

	if err := s.validator.ValidateStruct(&settings); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return s.mutateDefinition(ctx, quizID, func(def *models.QuizDefinition) error {
		def.Settings = settings
		return nil
	})
}

// mutateDefinition runs one decode-mutate-validate-encode cycle against the
// stored definition document.
func (s *quizService) mutateDefinition(ctx context.Context, quizID string, mutate func(*models.QuizDefinition) error) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		return nil, wrapStoreError(err, ErrQuizNotFound, "get quiz")
	}

	def := quiz.DecodeDefinition()
	if err := mutate(def); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(def); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := quiz.EncodeDefinition(def); err != nil {
		return nil, fmt.Errorf("failed to encode definition: %w", err)
	}

	if err := s.repo.Quiz().Update(ctx, quiz); err != nil {
		return nil, wrapStoreError(err, ErrQuizNotFound, "update quiz")
	}
	return quiz, nil
}
