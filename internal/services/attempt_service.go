package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brightpath-lms/quiz-engine/internal/events"
	"github.com/brightpath-lms/quiz-engine/internal/models"
	"github.com/brightpath-lms/quiz-engine/internal/repositories"
	"github.com/brightpath-lms/quiz-engine/internal/session"
	"github.com/brightpath-lms/quiz-engine/internal/validator"
	"github.com/google/uuid"
)

type attemptService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAttemptService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) AttemptService {
	return &attemptService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// ===== CORE ATTEMPT OPERATIONS =====

func (s *attemptService) Start(ctx context.Context, req *StartAttemptRequest) (*AttemptResponse, error) {
	s.logger.Info("Starting quiz attempt",
		"quiz_id", req.QuizID,
		"student_id", req.StudentID)

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, req.QuizID)
	if err != nil {
		return nil, wrapStoreError(err, ErrQuizNotFound, "get quiz")
	}

	// A corrupt stored definition degrades to an empty quiz here; the
	// attempt surface then reports "no questions configured" instead of
	// failing the host lesson.
	sess := session.Load(quiz.Definition)
	if err := sess.Start(); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	record := &repositories.AttemptRecord{
		AttemptID: uuid.NewString(),
		QuizID:    quiz.ID,
		LessonID:  quiz.LessonID,
		StudentID: req.StudentID,
		StartedAt: time.Now(),
		Session:   sess,
	}

	if err := s.repo.Session().Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save attempt: %w", err)
	}

	s.publishEvent(ctx, events.EventAttemptStarted, record, events.AttemptStartedEvent{
		AttemptID: record.AttemptID,
		QuizID:    record.QuizID,
		StudentID: record.StudentID,
		StartedAt: record.StartedAt,
	})

	s.logger.Info("Quiz attempt started successfully",
		"attempt_id", record.AttemptID,
		"quiz_id", record.QuizID,
		"empty", sess.IsEmpty())

	return s.buildAttemptResponse(record), nil
}

func (s *attemptService) SaveAnswer(ctx context.Context, attemptID string, req *SaveAnswerRequest) error {
	if err := s.validator.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	record, err := s.getRecord(ctx, attemptID)
	if err != nil {
		return err
	}

	if err := record.Session.SetAnswer(req.QuestionID, req.Answer); err != nil {
		switch err {
		case session.ErrNotInProgress:
			return ErrAttemptNotActive
		case session.ErrUnknownQuestion:
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to set answer: %w", err)
	}

	if err := s.repo.Session().Save(ctx, record); err != nil {
		return fmt.Errorf("failed to save attempt: %w", err)
	}
	return nil
}

func (s *attemptService) Submit(ctx context.Context, attemptID string) (*session.ResultView, error) {
	s.logger.Info("Submitting quiz attempt", "attempt_id", attemptID)

	record, err := s.getRecord(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	if record.Session.Status == session.StatusSubmitted {
		return nil, ErrAttemptAlreadySubmitted
	}

	// The completion notifier publishes the at-most-once lesson-completed
	// event. Publish failures are the collaborator's concern: they are
	// logged and never fail the submission.
	notifier := session.NotifierFunc(func(ctx context.Context) {
		s.publishEvent(ctx, events.EventQuizCompleted, record, events.QuizCompletedEvent{
			AttemptID:   record.AttemptID,
			QuizID:      record.QuizID,
			LessonID:    record.LessonID,
			StudentID:   record.StudentID,
			CompletedAt: time.Now(),
		})
	})

	result, err := record.Session.Submit(ctx, notifier)
	if err != nil {
		if err == session.ErrNotInProgress {
			return nil, ErrAttemptNotActive
		}
		return nil, fmt.Errorf("failed to submit attempt: %w", err)
	}

	if err := s.repo.Session().Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save attempt: %w", err)
	}

	s.publishEvent(ctx, events.EventAttemptSubmitted, record, events.AttemptSubmittedEvent{
		AttemptID:    record.AttemptID,
		QuizID:       record.QuizID,
		StudentID:    record.StudentID,
		SubmittedAt:  time.Now(),
		Percentage:   result.Percentage,
		EarnedPoints: result.EarnedPoints,
		TotalPoints:  result.TotalPoints,
		Passed:       result.Passed,
	})

	s.logger.Info("Quiz attempt submitted successfully",
		"attempt_id", attemptID,
		"percentage", result.Percentage,
		"passed", result.Passed)

	return record.Session.View()
}

func (s *attemptService) Retry(ctx context.Context, attemptID string) (*AttemptResponse, error) {
	s.logger.Info("Retrying quiz attempt", "attempt_id", attemptID)

	record, err := s.getRecord(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	if err := record.Session.Retry(); err != nil {
		switch err {
		case session.ErrNotSubmitted:
			return nil, ErrAttemptNotSubmitted
		case session.ErrRetryAfterPass:
			return nil, ErrRetryNotAllowed
		}
		return nil, fmt.Errorf("failed to retry attempt: %w", err)
	}

	if err := s.repo.Session().Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save attempt: %w", err)
	}

	s.logger.Info("Quiz attempt reset for retry", "attempt_id", attemptID)
	return s.buildAttemptResponse(record), nil
}

// ===== GET OPERATIONS =====

func (s *attemptService) Get(ctx context.Context, attemptID string) (*AttemptResponse, error) {
	record, err := s.getRecord(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	return s.buildAttemptResponse(record), nil
}

func (s *attemptService) GetResult(ctx context.Context, attemptID string) (*session.ResultView, error) {
	record, err := s.getRecord(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	view, err := record.Session.View()
	if err != nil {
		return nil, ErrAttemptNotSubmitted
	}
	return view, nil
}

// ===== HELPERS =====

func (s *attemptService) getRecord(ctx context.Context, attemptID string) (*repositories.AttemptRecord, error) {
	record, err := s.repo.Session().Get(ctx, attemptID)
	if err != nil {
		return nil, wrapStoreError(err, ErrAttemptNotFound, "get attempt")
	}
	return record, nil
}

func (s *attemptService) publishEvent(ctx context.Context, eventType events.EventType, record *repositories.AttemptRecord, data interface{}) {
	if s.publisher == nil {
		return
	}
	event := &events.QuizEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "quiz-engine",
		Data:      data,
	}
	if err := s.publisher.PublishQuizEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish quiz event",
			"event_type", eventType,
			"attempt_id", record.AttemptID,
			"error", err)
	}
}

// buildAttemptResponse projects the session into what the student may see:
// questions in presentation order with correctness bookkeeping stripped.
func (s *attemptService) buildAttemptResponse(record *repositories.AttemptRecord) *AttemptResponse {
	sess := record.Session
	response := &AttemptResponse{
		AttemptID:     record.AttemptID,
		QuizID:        record.QuizID,
		Status:        sess.Status,
		Empty:         sess.IsEmpty(),
		QuestionOrder: sess.Presentation.QuestionOrder,
		Answers:       sess.Answers,
	}

	for _, questionID := range sess.Presentation.QuestionOrder {
		q := sess.Definition.QuestionByID(questionID)
		if q == nil {
			continue
		}
		response.Questions = append(response.Questions, s.buildAttemptQuestion(sess, q))
	}
	return response
}

func (s *attemptService) buildAttemptQuestion(sess *session.Session, q *models.Question) QuestionForAttempt {
	qa := QuestionForAttempt{
		ID:     q.ID,
		Type:   q.Type,
		Prompt: q.Prompt,
		Points: q.Points,
	}

	switch q.Type {
	case models.SingleChoice, models.MultipleChoice:
		for _, optionID := range sess.Presentation.OptionOrder[q.ID] {
			for _, opt := range q.Options {
				if opt.ID == optionID {
					qa.Options = append(qa.Options, AttemptOption{ID: opt.ID, Text: opt.Text})
					break
				}
			}
		}
	case models.MatchDrag, models.MatchDropdown:
		// Left side keeps canonical order; only the right-hand values are
		// shown in drawn order.
		for _, pair := range q.Pairs {
			qa.PairsLeft = append(qa.PairsLeft, AttemptPairLeft{PairID: pair.ID, Left: pair.Left})
		}
		qa.RightValues = sess.Presentation.RightOrder[q.ID]
	case models.TrueFalse, models.OpenAnswer:
		// Prompt only.
	}
	return qa
}
