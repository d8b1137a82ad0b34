package validator

import (
	"fmt"

	"github.com/brightpath-lms/quiz-engine/internal/models"
)

// QuestionValidator enforces the structural invariants of each question
// type at the write boundary, so definitions handed to the grading path can
// assume option/pair/accepted-answer minimums hold.
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestion validates a complete question object
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if question.ID == "" {
		return fmt.Errorf("question id is required")
	}
	if question.Prompt == "" {
		return fmt.Errorf("question prompt is required")
	}
	if question.Points < 1 || question.Points > 100 {
		return fmt.Errorf("question points must be between 1 and 100")
	}

	switch question.Type {
	case models.TrueFalse:
		return v.validateTrueFalse(question)
	case models.SingleChoice:
		return v.validateSingleChoice(question)
	case models.MultipleChoice:
		return v.validateMultipleChoice(question)
	case models.MatchDrag, models.MatchDropdown:
		return v.validateMatching(question)
	case models.OpenAnswer:
		return v.validateOpenAnswer(question)
	default:
		return fmt.Errorf("unsupported question type: %s", question.Type)
	}
}

// ValidateDefinition validates every question of a definition plus the
// settings range.
func (v *QuestionValidator) ValidateDefinition(def *models.QuizDefinition) error {
	if def.Settings.PassingScore < 0 || def.Settings.PassingScore > 100 {
		return fmt.Errorf("passing score must be between 0 and 100")
	}

	seen := make(map[string]bool, len(def.Questions))
	for i, question := range def.Questions {
		if err := v.ValidateQuestion(question); err != nil {
			return fmt.Errorf("validation failed for question %d: %w", i+1, err)
		}
		if seen[question.ID] {
			return fmt.Errorf("duplicate question id: %s", question.ID)
		}
		seen[question.ID] = true
	}
	return nil
}

// ===== PRIVATE VALIDATION METHODS =====

func (v *QuestionValidator) validateTrueFalse(q *models.Question) error {
	if q.CorrectBool == nil {
		return fmt.Errorf("true/false questions must declare the correct answer")
	}
	return nil
}

func (v *QuestionValidator) validateSingleChoice(q *models.Question) error {
	if err := v.validateOptions(q); err != nil {
		return err
	}

	correctCount := 0
	for _, opt := range q.Options {
		if opt.IsCorrect {
			correctCount++
		}
	}
	if correctCount != 1 {
		return fmt.Errorf("single choice questions must have exactly 1 correct option, got %d", correctCount)
	}
	return nil
}

func (v *QuestionValidator) validateMultipleChoice(q *models.Question) error {
	if err := v.validateOptions(q); err != nil {
		return err
	}

	for _, opt := range q.Options {
		if opt.IsCorrect {
			return nil
		}
	}
	return fmt.Errorf("multiple choice questions must have at least 1 correct option")
}

func (v *QuestionValidator) validateOptions(q *models.Question) error {
	if len(q.Options) < models.MinChoiceOptions {
		return fmt.Errorf("choice questions must have at least %d options", models.MinChoiceOptions)
	}
	if len(q.Options) > models.MaxChoiceOptions {
		return fmt.Errorf("choice questions cannot have more than %d options", models.MaxChoiceOptions)
	}

	optionIDs := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if opt.ID == "" {
			return fmt.Errorf("options must have an id")
		}
		if optionIDs[opt.ID] {
			return fmt.Errorf("duplicate option id: %s", opt.ID)
		}
		optionIDs[opt.ID] = true
	}
	return nil
}

func (v *QuestionValidator) validateMatching(q *models.Question) error {
	if len(q.Pairs) < models.MinMatchPairs {
		return fmt.Errorf("matching questions must have at least %d pairs", models.MinMatchPairs)
	}
	if len(q.Pairs) > models.MaxMatchPairs {
		return fmt.Errorf("matching questions cannot have more than %d pairs", models.MaxMatchPairs)
	}

	pairIDs := make(map[string]bool, len(q.Pairs))
	for _, pair := range q.Pairs {
		if pair.ID == "" {
			return fmt.Errorf("pairs must have an id")
		}
		if pairIDs[pair.ID] {
			return fmt.Errorf("duplicate pair id: %s", pair.ID)
		}
		pairIDs[pair.ID] = true
	}
	return nil
}

func (v *QuestionValidator) validateOpenAnswer(q *models.Question) error {
	if len(q.AcceptedAnswers) < models.MinAcceptedAnswers {
		return fmt.Errorf("open answer questions must have at least %d accepted answer", models.MinAcceptedAnswers)
	}
	return nil
}
